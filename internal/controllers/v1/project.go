package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tesouraria/backend/internal/httputil"
	"github.com/tesouraria/backend/internal/models"
)

type ProjectEditable struct {
	Name string `json:"name" example:"Festa junina 2024"`
	Note string `json:"note" default:""`
}

func (editable ProjectEditable) model() models.Project {
	return models.Project{Name: editable.Name, Note: editable.Note}
}

type Project struct {
	models.DefaultModel
	ProjectEditable
}

func newProject(model models.Project) Project {
	return Project{
		DefaultModel:    model.DefaultModel,
		ProjectEditable: ProjectEditable{Name: model.Name, Note: model.Note},
	}
}

type ProjectResponse struct {
	Data  *Project `json:"data"`
	Error *string  `json:"error" example:"there is no project matching your query"`
}

type ProjectListResponse struct {
	Data  []Project `json:"data"`
	Error *string   `json:"error" example:"there is no project matching your query"`
}

func (co Controller) RegisterProjectRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", co.GetProjects)
	r.POST("", co.CreateProject)

	r.OPTIONS("/:id", func(c *gin.Context) { resourceOptionsDetail(c, models.Project{}) })
	r.GET("/:id", co.GetProject)
	r.PATCH("/:id", co.UpdateProject)
	r.DELETE("/:id", co.DeleteProject)
}

// @Summary		List projects
// @Tags			Projects
// @Produce		json
// @Success		200	{object}	ProjectListResponse
// @Failure		500	{object}	ProjectListResponse
// @Router			/v1/projects [get]
func (co Controller) GetProjects(c *gin.Context) {
	var projects []models.Project
	err := models.DB.Order("name ASC").Find(&projects).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProjectListResponse{Error: &e})
		return
	}

	data := make([]Project, 0, len(projects))
	for _, project := range projects {
		data = append(data, newProject(project))
	}

	c.JSON(http.StatusOK, ProjectListResponse{Data: data})
}

// @Summary		Get project
// @Tags			Projects
// @Produce		json
// @Success		200	{object}	ProjectResponse
// @Failure		400	{object}	ProjectResponse
// @Failure		404	{object}	ProjectResponse
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/projects/{id} [get]
func (co Controller) GetProject(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, ProjectResponse{Error: &e})
		return
	}

	var project models.Project
	err := models.DB.First(&project, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProjectResponse{Error: &e})
		return
	}

	data := newProject(project)
	c.JSON(http.StatusOK, ProjectResponse{Data: &data})
}

// @Summary		Create project
// @Tags			Projects
// @Accept			json
// @Produce		json
// @Success		201	{object}	ProjectResponse
// @Failure		400	{object}	ProjectResponse
// @Param			project	body	ProjectEditable	true	"Project"
// @Router			/v1/projects [post]
func (co Controller) CreateProject(c *gin.Context) {
	var editable ProjectEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, ProjectResponse{Error: &e})
		return
	}

	project := editable.model()
	err := models.DB.Create(&project).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProjectResponse{Error: &e})
		return
	}

	co.invalidate("projects", project.ID)

	data := newProject(project)
	c.JSON(http.StatusCreated, ProjectResponse{Data: &data})
}

// @Summary		Update project
// @Tags			Projects
// @Accept			json
// @Produce		json
// @Success		200	{object}	ProjectResponse
// @Failure		400	{object}	ProjectResponse
// @Failure		404	{object}	ProjectResponse
// @Param			id		path	string			true	"ID formatted as string"
// @Param			project	body	ProjectEditable	true	"Project"
// @Router			/v1/projects/{id} [patch]
func (co Controller) UpdateProject(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, ProjectResponse{Error: &e})
		return
	}

	var project models.Project
	err := models.DB.First(&project, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProjectResponse{Error: &e})
		return
	}

	updateFields, err := httputil.BodyFields(c, ProjectEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, ProjectResponse{Error: &e})
		return
	}

	var editable ProjectEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, ProjectResponse{Error: &e})
		return
	}

	err = models.DB.Model(&project).Select("", updateFields...).Updates(editable.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProjectResponse{Error: &e})
		return
	}

	co.invalidate("projects", project.ID)

	data := newProject(project)
	c.JSON(http.StatusOK, ProjectResponse{Data: &data})
}

// @Summary		Delete project
// @Tags			Projects
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/projects/{id} [delete]
func (co Controller) DeleteProject(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var project models.Project
	err := models.DB.First(&project, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&project).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	co.invalidate("projects", project.ID)

	c.Status(http.StatusNoContent)
}

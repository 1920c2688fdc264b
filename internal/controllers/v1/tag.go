package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tesouraria/backend/internal/httputil"
	"github.com/tesouraria/backend/internal/models"
)

type TagEditable struct {
	Name string `json:"name" example:"urgente"`
	Note string `json:"note" default:""`
}

func (editable TagEditable) model() models.Tag {
	return models.Tag{Name: editable.Name, Note: editable.Note}
}

type Tag struct {
	models.DefaultModel
	TagEditable
}

func newTag(model models.Tag) Tag {
	return Tag{
		DefaultModel: model.DefaultModel,
		TagEditable:  TagEditable{Name: model.Name, Note: model.Note},
	}
}

type TagResponse struct {
	Data  *Tag    `json:"data"`
	Error *string `json:"error" example:"there is no tag matching your query"`
}

type TagListResponse struct {
	Data  []Tag   `json:"data"`
	Error *string `json:"error" example:"there is no tag matching your query"`
}

func (co Controller) RegisterTagRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", co.GetTags)
	r.POST("", co.CreateTag)

	r.OPTIONS("/:id", func(c *gin.Context) { resourceOptionsDetail(c, models.Tag{}) })
	r.GET("/:id", co.GetTag)
	r.PATCH("/:id", co.UpdateTag)
	r.DELETE("/:id", co.DeleteTag)
}

// @Summary		List tags
// @Tags			Tags
// @Produce		json
// @Success		200	{object}	TagListResponse
// @Failure		500	{object}	TagListResponse
// @Router			/v1/tags [get]
func (co Controller) GetTags(c *gin.Context) {
	var tags []models.Tag
	err := models.DB.Order("name ASC").Find(&tags).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TagListResponse{Error: &e})
		return
	}

	data := make([]Tag, 0, len(tags))
	for _, tag := range tags {
		data = append(data, newTag(tag))
	}

	c.JSON(http.StatusOK, TagListResponse{Data: data})
}

// @Summary		Get tag
// @Tags			Tags
// @Produce		json
// @Success		200	{object}	TagResponse
// @Failure		400	{object}	TagResponse
// @Failure		404	{object}	TagResponse
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/tags/{id} [get]
func (co Controller) GetTag(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, TagResponse{Error: &e})
		return
	}

	var tag models.Tag
	err := models.DB.First(&tag, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TagResponse{Error: &e})
		return
	}

	data := newTag(tag)
	c.JSON(http.StatusOK, TagResponse{Data: &data})
}

// @Summary		Create tag
// @Tags			Tags
// @Accept			json
// @Produce		json
// @Success		201	{object}	TagResponse
// @Failure		400	{object}	TagResponse
// @Param			tag	body	TagEditable	true	"Tag"
// @Router			/v1/tags [post]
func (co Controller) CreateTag(c *gin.Context) {
	var editable TagEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, TagResponse{Error: &e})
		return
	}

	tag := editable.model()
	err := models.DB.Create(&tag).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TagResponse{Error: &e})
		return
	}

	co.invalidate("tags", tag.ID)

	data := newTag(tag)
	c.JSON(http.StatusCreated, TagResponse{Data: &data})
}

// @Summary		Update tag
// @Tags			Tags
// @Accept			json
// @Produce		json
// @Success		200	{object}	TagResponse
// @Failure		400	{object}	TagResponse
// @Failure		404	{object}	TagResponse
// @Param			id	path	string		true	"ID formatted as string"
// @Param			tag	body	TagEditable	true	"Tag"
// @Router			/v1/tags/{id} [patch]
func (co Controller) UpdateTag(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, TagResponse{Error: &e})
		return
	}

	var tag models.Tag
	err := models.DB.First(&tag, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TagResponse{Error: &e})
		return
	}

	updateFields, err := httputil.BodyFields(c, TagEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, TagResponse{Error: &e})
		return
	}

	var editable TagEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, TagResponse{Error: &e})
		return
	}

	err = models.DB.Model(&tag).Select("", updateFields...).Updates(editable.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TagResponse{Error: &e})
		return
	}

	co.invalidate("tags", tag.ID)

	data := newTag(tag)
	c.JSON(http.StatusOK, TagResponse{Data: &data})
}

// @Summary		Delete tag
// @Tags			Tags
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/tags/{id} [delete]
func (co Controller) DeleteTag(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var tag models.Tag
	err := models.DB.First(&tag, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&tag).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	co.invalidate("tags", tag.ID)

	c.Status(http.StatusNoContent)
}

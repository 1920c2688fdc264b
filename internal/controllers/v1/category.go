package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tesouraria/backend/internal/httputil"
	"github.com/tesouraria/backend/internal/models"
)

type CategoryEditable struct {
	Name         string              `json:"name" example:"Mensalidades"`
	Type         models.CategoryType `json:"type" example:"income" default:"both"`
	Note         string              `json:"note" default:""`
	GrossRevenue bool                `json:"grossRevenue" default:"false"`
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:         editable.Name,
		Type:         editable.Type,
		Note:         editable.Note,
		GrossRevenue: editable.GrossRevenue,
	}
}

type Category struct {
	models.DefaultModel
	CategoryEditable
}

func newCategory(model models.Category) Category {
	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:         model.Name,
			Type:         model.Type,
			Note:         model.Note,
			GrossRevenue: model.GrossRevenue,
		},
	}
}

type CategoryResponse struct {
	Data  *Category `json:"data"`
	Error *string   `json:"error" example:"there is no category matching your query"`
}

type CategoryListResponse struct {
	Data  []Category `json:"data"`
	Error *string    `json:"error" example:"there is no category matching your query"`
}

// RegisterCategoryRoutes registers the routes for categories with the
// RouterGroup that is passed.
func (co Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", co.GetCategories)
	r.POST("", co.CreateCategory)

	r.OPTIONS("/:id", func(c *gin.Context) { resourceOptionsDetail(c, models.Category{}) })
	r.GET("/:id", co.GetCategory)
	r.PATCH("/:id", co.UpdateCategory)
	r.DELETE("/:id", co.DeleteCategory)
}

// @Summary		List categories
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryListResponse
// @Failure		500	{object}	CategoryListResponse
// @Router			/v1/categories [get]
func (co Controller) GetCategories(c *gin.Context) {
	var categories []models.Category
	err := models.DB.Order("name ASC").Find(&categories).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryListResponse{Error: &e})
		return
	}

	data := make([]Category, 0, len(categories))
	for _, category := range categories {
		data = append(data, newCategory(category))
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: data})
}

// @Summary		Get category
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryResponse
// @Failure		400	{object}	CategoryResponse
// @Failure		404	{object}	CategoryResponse
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/categories/{id} [get]
func (co Controller) GetCategory(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, CategoryResponse{Error: &e})
		return
	}

	var category models.Category
	err := models.DB.First(&category, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	data := newCategory(category)
	c.JSON(http.StatusOK, CategoryResponse{Data: &data})
}

// @Summary		Create category
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		201	{object}	CategoryResponse
// @Failure		400	{object}	CategoryResponse
// @Param			category	body	CategoryEditable	true	"Category"
// @Router			/v1/categories [post]
func (co Controller) CreateCategory(c *gin.Context) {
	var editable CategoryEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, CategoryResponse{Error: &e})
		return
	}

	category := editable.model()
	err := models.DB.Create(&category).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	co.invalidate("categories", category.ID)

	data := newCategory(category)
	c.JSON(http.StatusCreated, CategoryResponse{Data: &data})
}

// @Summary		Update category
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		200	{object}	CategoryResponse
// @Failure		400	{object}	CategoryResponse
// @Failure		404	{object}	CategoryResponse
// @Param			id			path	string				true	"ID formatted as string"
// @Param			category	body	CategoryEditable	true	"Category"
// @Router			/v1/categories/{id} [patch]
func (co Controller) UpdateCategory(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, CategoryResponse{Error: &e})
		return
	}

	var category models.Category
	err := models.DB.First(&category, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	updateFields, err := httputil.BodyFields(c, CategoryEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, CategoryResponse{Error: &e})
		return
	}

	var editable CategoryEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, CategoryResponse{Error: &e})
		return
	}

	err = models.DB.Model(&category).Select("", updateFields...).Updates(editable.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	co.invalidate("categories", category.ID)

	data := newCategory(category)
	c.JSON(http.StatusOK, CategoryResponse{Data: &data})
}

// @Summary		Delete category
// @Description	Deletes a category. Categories referenced by transactions or bills cannot be deleted.
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		409	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/categories/{id} [delete]
func (co Controller) DeleteCategory(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var category models.Category
	err := models.DB.First(&category, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var count int64
	err = models.DB.Model(&models.Transaction{}).Where("category_id = ?", category.ID).Count(&count).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if count > 0 {
		c.JSON(http.StatusConflict, httpError{Error: "the category is referenced by transactions, delete them first"})
		return
	}

	err = models.DB.Delete(&category).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	co.invalidate("categories", category.ID)

	c.Status(http.StatusNoContent)
}

package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tesouraria/backend/internal/httputil"
	"github.com/tesouraria/backend/internal/models"
)

type PayeeEditable struct {
	Name string `json:"name" example:"Companhia de energia"`
	Note string `json:"note" default:""`
}

func (editable PayeeEditable) model() models.Payee {
	return models.Payee{Name: editable.Name, Note: editable.Note}
}

type Payee struct {
	models.DefaultModel
	PayeeEditable
}

func newPayee(model models.Payee) Payee {
	return Payee{
		DefaultModel:  model.DefaultModel,
		PayeeEditable: PayeeEditable{Name: model.Name, Note: model.Note},
	}
}

type PayeeResponse struct {
	Data  *Payee  `json:"data"`
	Error *string `json:"error" example:"there is no payee matching your query"`
}

type PayeeListResponse struct {
	Data  []Payee `json:"data"`
	Error *string `json:"error" example:"there is no payee matching your query"`
}

func (co Controller) RegisterPayeeRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", co.GetPayees)
	r.POST("", co.CreatePayee)

	r.OPTIONS("/:id", func(c *gin.Context) { resourceOptionsDetail(c, models.Payee{}) })
	r.GET("/:id", co.GetPayee)
	r.PATCH("/:id", co.UpdatePayee)
	r.DELETE("/:id", co.DeletePayee)
}

// @Summary		List payees
// @Tags			Payees
// @Produce		json
// @Success		200	{object}	PayeeListResponse
// @Failure		500	{object}	PayeeListResponse
// @Router			/v1/payees [get]
func (co Controller) GetPayees(c *gin.Context) {
	var payees []models.Payee
	err := models.DB.Order("name ASC").Find(&payees).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayeeListResponse{Error: &e})
		return
	}

	data := make([]Payee, 0, len(payees))
	for _, payee := range payees {
		data = append(data, newPayee(payee))
	}

	c.JSON(http.StatusOK, PayeeListResponse{Data: data})
}

// @Summary		Get payee
// @Tags			Payees
// @Produce		json
// @Success		200	{object}	PayeeResponse
// @Failure		400	{object}	PayeeResponse
// @Failure		404	{object}	PayeeResponse
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/payees/{id} [get]
func (co Controller) GetPayee(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, PayeeResponse{Error: &e})
		return
	}

	var payee models.Payee
	err := models.DB.First(&payee, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayeeResponse{Error: &e})
		return
	}

	data := newPayee(payee)
	c.JSON(http.StatusOK, PayeeResponse{Data: &data})
}

// @Summary		Create payee
// @Tags			Payees
// @Accept			json
// @Produce		json
// @Success		201	{object}	PayeeResponse
// @Failure		400	{object}	PayeeResponse
// @Param			payee	body	PayeeEditable	true	"Payee"
// @Router			/v1/payees [post]
func (co Controller) CreatePayee(c *gin.Context) {
	var editable PayeeEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, PayeeResponse{Error: &e})
		return
	}

	payee := editable.model()
	err := models.DB.Create(&payee).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayeeResponse{Error: &e})
		return
	}

	co.invalidate("payees", payee.ID)

	data := newPayee(payee)
	c.JSON(http.StatusCreated, PayeeResponse{Data: &data})
}

// @Summary		Update payee
// @Tags			Payees
// @Accept			json
// @Produce		json
// @Success		200	{object}	PayeeResponse
// @Failure		400	{object}	PayeeResponse
// @Failure		404	{object}	PayeeResponse
// @Param			id		path	string			true	"ID formatted as string"
// @Param			payee	body	PayeeEditable	true	"Payee"
// @Router			/v1/payees/{id} [patch]
func (co Controller) UpdatePayee(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, PayeeResponse{Error: &e})
		return
	}

	var payee models.Payee
	err := models.DB.First(&payee, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayeeResponse{Error: &e})
		return
	}

	updateFields, err := httputil.BodyFields(c, PayeeEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, PayeeResponse{Error: &e})
		return
	}

	var editable PayeeEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, PayeeResponse{Error: &e})
		return
	}

	err = models.DB.Model(&payee).Select("", updateFields...).Updates(editable.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayeeResponse{Error: &e})
		return
	}

	co.invalidate("payees", payee.ID)

	data := newPayee(payee)
	c.JSON(http.StatusOK, PayeeResponse{Data: &data})
}

// @Summary		Delete payee
// @Tags			Payees
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/payees/{id} [delete]
func (co Controller) DeletePayee(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var payee models.Payee
	err := models.DB.First(&payee, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&payee).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	co.invalidate("payees", payee.ID)

	c.Status(http.StatusNoContent)
}

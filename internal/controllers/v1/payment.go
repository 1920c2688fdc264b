package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tesouraria/backend/internal/httputil"
	"github.com/tesouraria/backend/internal/models"
	"github.com/tesouraria/backend/internal/types"
	ez_uuid "github.com/tesouraria/backend/internal/uuid"
	"gorm.io/gorm"
)

type PaymentEditable struct {
	MemberID       ez_uuid.UUID    `json:"memberId"`
	ReferenceMonth types.Month     `json:"referenceMonth" example:"2024-01"`
	Amount         decimal.Decimal `json:"amount" example:"50"`
	PaidOn         time.Time       `json:"paidOn" example:"2024-01-07T00:00:00Z"`
}

func (editable PaymentEditable) model() models.Payment {
	return models.Payment{
		MemberID:       editable.MemberID.UUID,
		ReferenceMonth: editable.ReferenceMonth,
		Amount:         editable.Amount,
		PaidOn:         editable.PaidOn,
	}
}

// Payment is the API representation of a dues payment. TransactionID is
// managed through the payment links of a transaction, not through this
// resource.
type Payment struct {
	models.DefaultModel
	PaymentEditable
	TransactionID *ez_uuid.UUID `json:"transactionId"`
}

func newPayment(model models.Payment) Payment {
	payment := Payment{
		DefaultModel: model.DefaultModel,
		PaymentEditable: PaymentEditable{
			MemberID:       ez_uuid.UUID{UUID: model.MemberID},
			ReferenceMonth: model.ReferenceMonth,
			Amount:         model.Amount,
			PaidOn:         model.PaidOn,
		},
	}

	if model.TransactionID != nil {
		payment.TransactionID = &ez_uuid.UUID{UUID: *model.TransactionID}
	}

	return payment
}

type PaymentResponse struct {
	Data  *Payment `json:"data"`
	Error *string  `json:"error" example:"there is no payment matching your query"`
}

type PaymentListResponse struct {
	Data       []Payment   `json:"data"`
	Error      *string     `json:"error" example:"there is no payment matching your query"`
	Pagination *Pagination `json:"pagination"`
}

// PaymentQueryFilter contains the fields payments can be filtered with.
type PaymentQueryFilter struct {
	MemberID       ez_uuid.UUID `form:"member"`
	ReferenceMonth types.Month  `form:"month"`
	Unlinked       bool         `form:"unlinked" filterField:"false"`
	Offset         uint         `form:"offset" filterField:"false"`
	Limit          int          `form:"limit" filterField:"false"`
}

func (f PaymentQueryFilter) model() models.Payment {
	return models.Payment{
		MemberID:       f.MemberID.UUID,
		ReferenceMonth: f.ReferenceMonth,
	}
}

// RegisterPaymentRoutes registers the routes for payments with the
// RouterGroup that is passed.
func (co Controller) RegisterPaymentRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", co.GetPayments)
	r.POST("", co.CreatePayment)

	r.OPTIONS("/:id", func(c *gin.Context) { resourceOptionsDetail(c, models.Payment{}) })
	r.GET("/:id", co.GetPayment)
	r.PATCH("/:id", co.UpdatePayment)
	r.DELETE("/:id", co.DeletePayment)
}

// @Summary		List payments
// @Description	Returns a list of dues payments
// @Tags			Payments
// @Produce		json
// @Success		200	{object}	PaymentListResponse
// @Failure		500	{object}	PaymentListResponse
// @Router			/v1/payments [get]
// @Param			member		query	string	false	"Filter by member ID"
// @Param			month		query	string	false	"Filter by reference month"
// @Param			unlinked	query	bool	false	"Only payments not linked to a transaction"
// @Param			offset		query	uint	false	"The offset of the first payment returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of payments to return. Defaults to 50."
func (co Controller) GetPayments(c *gin.Context) {
	var filter PaymentQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, PaymentListResponse{Error: &e})
		return
	}

	queryFields, _ := httputil.URLFields(c.Request.URL, filter)

	query := models.DB.Where(filter.model(), queryFields...)
	if filter.Unlinked {
		query = query.Where("transaction_id IS NULL")
	}

	// The query is reused for the count and the page.
	query = query.Session(&gorm.Session{})

	var count int64
	err := query.Model(&models.Payment{}).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentListResponse{Error: &e})
		return
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 50
	}

	var payments []models.Payment
	err = query.
		Order("reference_month ASC, paid_on ASC").
		Offset(int(filter.Offset)).
		Limit(limit).
		Find(&payments).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentListResponse{Error: &e})
		return
	}

	data := make([]Payment, 0, len(payments))
	for _, payment := range payments {
		data = append(data, newPayment(payment))
	}

	c.JSON(http.StatusOK, PaymentListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Offset: filter.Offset,
			Limit:  limit,
			Total:  count,
		},
	})
}

// @Summary		Get payment
// @Description	Returns a specific dues payment
// @Tags			Payments
// @Produce		json
// @Success		200	{object}	PaymentResponse
// @Failure		400	{object}	PaymentResponse
// @Failure		404	{object}	PaymentResponse
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/payments/{id} [get]
func (co Controller) GetPayment(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, PaymentResponse{Error: &e})
		return
	}

	var payment models.Payment
	err := models.DB.First(&payment, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{Error: &e})
		return
	}

	data := newPayment(payment)
	c.JSON(http.StatusOK, PaymentResponse{Data: &data})
}

// @Summary		Create payment
// @Description	Records a dues payment for a member
// @Tags			Payments
// @Accept			json
// @Produce		json
// @Success		201	{object}	PaymentResponse
// @Failure		400	{object}	PaymentResponse
// @Failure		404	{object}	PaymentResponse
// @Param			payment	body	PaymentEditable	true	"Payment"
// @Router			/v1/payments [post]
func (co Controller) CreatePayment(c *gin.Context) {
	var editable PaymentEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, PaymentResponse{Error: &e})
		return
	}

	payment := editable.model()
	err := models.DB.Create(&payment).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{Error: &e})
		return
	}

	co.invalidate("payments", payment.ID)
	co.invalidate("members", payment.MemberID)

	data := newPayment(payment)
	c.JSON(http.StatusCreated, PaymentResponse{Data: &data})
}

// @Summary		Update payment
// @Description	Updates a payment. Only values to be updated need to be specified.
// @Tags			Payments
// @Accept			json
// @Produce		json
// @Success		200	{object}	PaymentResponse
// @Failure		400	{object}	PaymentResponse
// @Failure		404	{object}	PaymentResponse
// @Param			id		path	string			true	"ID formatted as string"
// @Param			payment	body	PaymentEditable	true	"Payment"
// @Router			/v1/payments/{id} [patch]
func (co Controller) UpdatePayment(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, PaymentResponse{Error: &e})
		return
	}

	var payment models.Payment
	err := models.DB.First(&payment, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{Error: &e})
		return
	}

	updateFields, err := httputil.BodyFields(c, PaymentEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, PaymentResponse{Error: &e})
		return
	}

	var editable PaymentEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, PaymentResponse{Error: &e})
		return
	}

	err = models.DB.Model(&payment).Select("", updateFields...).Updates(editable.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{Error: &e})
		return
	}

	co.invalidate("payments", payment.ID)
	co.invalidate("members", payment.MemberID)

	data := newPayment(payment)
	c.JSON(http.StatusOK, PaymentResponse{Data: &data})
}

// @Summary		Delete payment
// @Description	Deletes a payment
// @Tags			Payments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/payments/{id} [delete]
func (co Controller) DeletePayment(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var payment models.Payment
	err := models.DB.First(&payment, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&payment).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	co.invalidate("payments", payment.ID)
	co.invalidate("members", payment.MemberID)

	c.Status(http.StatusNoContent)
}

package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tesouraria/backend/internal/httputil"
	"github.com/tesouraria/backend/internal/ledger"
	"github.com/tesouraria/backend/internal/models"
	"github.com/tesouraria/backend/internal/types"
	ez_uuid "github.com/tesouraria/backend/internal/uuid"
)

type PayableBillEditable struct {
	Description string          `json:"description" example:"Conta de luz"`
	Amount      decimal.Decimal `json:"amount" example:"215.38"`
	DueDate     time.Time       `json:"dueDate" example:"2024-02-10T00:00:00Z"`
	Note        string          `json:"note" default:""`
	CategoryID  *ez_uuid.UUID   `json:"categoryId"`
	PayeeID     *ez_uuid.UUID   `json:"payeeId"`

	// Recurring marks the bill as the first occurrence of a recurring
	// series on creation. It cannot be changed afterwards.
	Recurring bool `json:"recurring" default:"false"`
}

func (editable PayableBillEditable) model() models.PayableBill {
	bill := models.PayableBill{
		Description: editable.Description,
		Amount:      editable.Amount,
		DueDate:     editable.DueDate,
		Note:        editable.Note,
	}

	if editable.CategoryID != nil {
		bill.CategoryID = &editable.CategoryID.UUID
	}
	if editable.PayeeID != nil {
		bill.PayeeID = &editable.PayeeID.UUID
	}

	return bill
}

// PayableBill is the API representation of a payable bill. Status is
// computed from the due date and the paid flag on every read, a bill
// becomes overdue without any writes happening.
type PayableBill struct {
	models.DefaultModel
	PayableBillEditable
	Status        models.BillStatus `json:"status" example:"overdue"`
	Paid          bool              `json:"paid" example:"false"`
	TransactionID *ez_uuid.UUID     `json:"transactionId"`

	InstallmentGroupID *ez_uuid.UUID `json:"installmentGroupId"`
	InstallmentNumber  int           `json:"installmentNumber" example:"3"`
	InstallmentTotal   int           `json:"installmentTotal" example:"12"`
	RecurringID        *ez_uuid.UUID `json:"recurringId"`
}

func newPayableBill(model models.PayableBill) PayableBill {
	bill := PayableBill{
		DefaultModel: model.DefaultModel,
		PayableBillEditable: PayableBillEditable{
			Description: model.Description,
			Amount:      model.Amount,
			DueDate:     model.DueDate,
			Note:        model.Note,
			Recurring:   model.RecurringID != nil,
		},
		Status:            model.Status(time.Now()),
		Paid:              model.Paid,
		InstallmentNumber: model.InstallmentNumber,
		InstallmentTotal:  model.InstallmentTotal,
	}

	if model.CategoryID != nil {
		bill.CategoryID = &ez_uuid.UUID{UUID: *model.CategoryID}
	}
	if model.PayeeID != nil {
		bill.PayeeID = &ez_uuid.UUID{UUID: *model.PayeeID}
	}
	if model.TransactionID != nil {
		bill.TransactionID = &ez_uuid.UUID{UUID: *model.TransactionID}
	}
	if model.InstallmentGroupID != nil {
		bill.InstallmentGroupID = &ez_uuid.UUID{UUID: *model.InstallmentGroupID}
	}
	if model.RecurringID != nil {
		bill.RecurringID = &ez_uuid.UUID{UUID: *model.RecurringID}
	}

	return bill
}

type PayableBillResponse struct {
	Data  *PayableBill `json:"data"`
	Error *string      `json:"error" example:"there is no payable bill matching your query"`
}

type PayableBillListResponse struct {
	Data  []PayableBill `json:"data"`
	Error *string       `json:"error" example:"there is no payable bill matching your query"`
}

// InstallmentsEditable is the request body for creating a series of
// installment bills. The total is split evenly, rounding differences go
// into the last installment.
type InstallmentsEditable struct {
	Description string          `json:"description" example:"Reforma da cozinha"`
	Total       decimal.Decimal `json:"total" example:"1200"`
	Count       int             `json:"count" example:"12"`
	FirstDue    time.Time       `json:"firstDue" example:"2024-02-10T00:00:00Z"`
	CategoryID  *ez_uuid.UUID   `json:"categoryId"`
	PayeeID     *ez_uuid.UUID   `json:"payeeId"`
}

// GenerateEditable is the request body for extending a recurring series.
type GenerateEditable struct {
	Through types.Month `json:"through" example:"2024-12"`
}

// PayableBillQueryFilter contains the fields payable bills can be
// filtered with.
type PayableBillQueryFilter struct {
	Status     models.BillStatus `form:"status" filterField:"false"`
	CategoryID ez_uuid.UUID      `form:"category" filterField:"false"`
	PayeeID    ez_uuid.UUID      `form:"payee" filterField:"false"`
	From       time.Time         `form:"from" filterField:"false" time_format:"2006-01-02"`
	Until      time.Time         `form:"until" filterField:"false" time_format:"2006-01-02"`
}

// RegisterPayableBillRoutes registers the routes for payable bills with the
// RouterGroup that is passed.
func (co Controller) RegisterPayableBillRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", co.GetPayableBills)
	r.POST("", co.CreatePayableBill)

	r.OPTIONS("/installments", httputil.OptionsPost)
	r.POST("/installments", co.CreateInstallments)

	r.OPTIONS("/:id", func(c *gin.Context) { resourceOptionsDetail(c, models.PayableBill{}) })
	r.GET("/:id", co.GetPayableBill)
	r.PATCH("/:id", co.UpdatePayableBill)
	r.DELETE("/:id", co.DeletePayableBill)

	r.OPTIONS("/:id/unlink", httputil.OptionsPost)
	r.POST("/:id/unlink", co.UnlinkPayableBill)

	r.OPTIONS("/:id/generate", httputil.OptionsPost)
	r.POST("/:id/generate", co.GenerateRecurringBills)
}

// @Summary		List payable bills
// @Description	Returns a list of payable bills
// @Tags			PayableBills
// @Produce		json
// @Success		200	{object}	PayableBillListResponse
// @Failure		400	{object}	PayableBillListResponse
// @Failure		500	{object}	PayableBillListResponse
// @Router			/v1/payable-bills [get]
// @Param			status		query	string	false	"Filter by computed status"
// @Param			category	query	string	false	"Filter by category ID"
// @Param			payee		query	string	false	"Filter by payee ID"
// @Param			from		query	string	false	"Only bills due on or after this date"
// @Param			until		query	string	false	"Only bills due on or before this date"
func (co Controller) GetPayableBills(c *gin.Context) {
	var filter PayableBillQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, PayableBillListResponse{Error: &e})
		return
	}

	query := models.DB.Order("datetime(due_date) ASC")

	if filter.CategoryID != ez_uuid.Nil {
		query = query.Where("category_id = ?", filter.CategoryID.UUID)
	}

	if filter.PayeeID != ez_uuid.Nil {
		query = query.Where("payee_id = ?", filter.PayeeID.UUID)
	}

	if !filter.From.IsZero() {
		query = query.Where("datetime(due_date) >= datetime(?)", filter.From)
	}

	if !filter.Until.IsZero() {
		query = query.Where("datetime(due_date) <= datetime(?)", filter.Until)
	}

	var bills []models.PayableBill
	err := query.Find(&bills).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayableBillListResponse{Error: &e})
		return
	}

	// The status filter operates on the computed status, it cannot be
	// part of the database query.
	data := make([]PayableBill, 0, len(bills))
	for _, bill := range bills {
		b := newPayableBill(bill)
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		data = append(data, b)
	}

	c.JSON(http.StatusOK, PayableBillListResponse{Data: data})
}

// @Summary		Get payable bill
// @Description	Returns a specific payable bill
// @Tags			PayableBills
// @Produce		json
// @Success		200	{object}	PayableBillResponse
// @Failure		400	{object}	PayableBillResponse
// @Failure		404	{object}	PayableBillResponse
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/payable-bills/{id} [get]
func (co Controller) GetPayableBill(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, PayableBillResponse{Error: &e})
		return
	}

	var bill models.PayableBill
	err := models.DB.First(&bill, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayableBillResponse{Error: &e})
		return
	}

	data := newPayableBill(bill)
	c.JSON(http.StatusOK, PayableBillResponse{Data: &data})
}

// @Summary		Create payable bill
// @Description	Creates a new payable bill. With recurring set, the bill starts a recurring series that can be extended with the generate operation.
// @Tags			PayableBills
// @Accept			json
// @Produce		json
// @Success		201	{object}	PayableBillResponse
// @Failure		400	{object}	PayableBillResponse
// @Param			bill	body	PayableBillEditable	true	"PayableBill"
// @Router			/v1/payable-bills [post]
func (co Controller) CreatePayableBill(c *gin.Context) {
	var editable PayableBillEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, PayableBillResponse{Error: &e})
		return
	}

	bill := editable.model()
	if editable.Recurring {
		recurringID := ez_uuid.New()
		bill.RecurringID = &recurringID.UUID
	}

	err := models.DB.Create(&bill).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayableBillResponse{Error: &e})
		return
	}

	co.invalidate("payable-bills", bill.ID)

	data := newPayableBill(bill)
	c.JSON(http.StatusCreated, PayableBillResponse{Data: &data})
}

// @Summary		Create installments
// @Description	Splits a total amount into monthly installment bills sharing a group. The installments add up to the total exactly.
// @Tags			PayableBills
// @Accept			json
// @Produce		json
// @Success		201	{object}	PayableBillListResponse
// @Failure		400	{object}	PayableBillListResponse
// @Param			installments	body	InstallmentsEditable	true	"Installments"
// @Router			/v1/payable-bills/installments [post]
func (co Controller) CreateInstallments(c *gin.Context) {
	var editable InstallmentsEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, PayableBillListResponse{Error: &e})
		return
	}

	bills, err := ledger.CreateInstallments(
		models.DB,
		editable.Description,
		editable.Total,
		editable.Count,
		editable.FirstDue,
		uuidPointer(editable.CategoryID),
		uuidPointer(editable.PayeeID),
	)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayableBillListResponse{Error: &e})
		return
	}

	co.invalidate("payable-bills")

	data := make([]PayableBill, 0, len(bills))
	for _, bill := range bills {
		data = append(data, newPayableBill(bill))
	}

	c.JSON(http.StatusCreated, PayableBillListResponse{Data: data})
}

// @Summary		Update payable bill
// @Description	Updates a payable bill. Only values to be updated need to be specified. Edits do not propagate to a transaction the bill is linked to.
// @Tags			PayableBills
// @Accept			json
// @Produce		json
// @Success		200	{object}	PayableBillResponse
// @Failure		400	{object}	PayableBillResponse
// @Failure		404	{object}	PayableBillResponse
// @Param			id		path	string				true	"ID formatted as string"
// @Param			bill	body	PayableBillEditable	true	"PayableBill"
// @Router			/v1/payable-bills/{id} [patch]
func (co Controller) UpdatePayableBill(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, PayableBillResponse{Error: &e})
		return
	}

	var bill models.PayableBill
	err := models.DB.First(&bill, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayableBillResponse{Error: &e})
		return
	}

	updateFields, err := httputil.BodyFields(c, PayableBillEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, PayableBillResponse{Error: &e})
		return
	}

	var editable PayableBillEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, PayableBillResponse{Error: &e})
		return
	}

	err = models.DB.Model(&bill).Select("", updateFields...).Updates(editable.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayableBillResponse{Error: &e})
		return
	}

	co.invalidate("payable-bills", bill.ID)

	data := newPayableBill(bill)
	c.JSON(http.StatusOK, PayableBillResponse{Data: &data})
}

// @Summary		Delete payable bill
// @Description	Deletes a payable bill. Bills of an installment or recurring series require the scope query parameter. The this-and-future scope deletes every bill of the series due at or after this one.
// @Tags			PayableBills
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		409	{object}	httpError
// @Param			id		path	string	true	"ID formatted as string"
// @Param			scope	query	string	false	"single or this-and-future"
// @Router			/v1/payable-bills/{id} [delete]
func (co Controller) DeletePayableBill(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	scope := ledger.DeleteScope(c.Query("scope"))
	err := ledger.DeleteBillWithScope(models.DB, uri.ID.UUID, scope)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	co.invalidate("payable-bills", uri.ID.UUID)

	c.Status(http.StatusNoContent)
}

// @Summary		Unlink payable bill
// @Description	Reverses the link to the transaction that settled the bill. This is the only way out of the paid status.
// @Tags			PayableBills
// @Produce		json
// @Success		200	{object}	PayableBillResponse
// @Failure		400	{object}	PayableBillResponse
// @Failure		404	{object}	PayableBillResponse
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/payable-bills/{id}/unlink [post]
func (co Controller) UnlinkPayableBill(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, PayableBillResponse{Error: &e})
		return
	}

	err := ledger.UnlinkBill(models.DB, uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayableBillResponse{Error: &e})
		return
	}

	co.invalidate("payable-bills", uri.ID.UUID)
	co.invalidate("transactions")

	var bill models.PayableBill
	err = models.DB.First(&bill, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayableBillResponse{Error: &e})
		return
	}

	data := newPayableBill(bill)
	c.JSON(http.StatusOK, PayableBillResponse{Data: &data})
}

// @Summary		Generate recurring bills
// @Description	Extends the recurring series this bill belongs to with one bill per month through the given month.
// @Tags			PayableBills
// @Accept			json
// @Produce		json
// @Success		201	{object}	PayableBillListResponse
// @Failure		400	{object}	PayableBillListResponse
// @Failure		404	{object}	PayableBillListResponse
// @Param			id			path	string				true	"ID formatted as string"
// @Param			generate	body	GenerateEditable	true	"Generation range"
// @Router			/v1/payable-bills/{id}/generate [post]
func (co Controller) GenerateRecurringBills(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, PayableBillListResponse{Error: &e})
		return
	}

	var editable GenerateEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, PayableBillListResponse{Error: &e})
		return
	}

	var bill models.PayableBill
	err := models.DB.First(&bill, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayableBillListResponse{Error: &e})
		return
	}

	if bill.RecurringID == nil {
		e := "the bill does not belong to a recurring series"
		c.JSON(http.StatusBadRequest, PayableBillListResponse{Error: &e})
		return
	}

	bills, err := ledger.GenerateRecurring(models.DB, *bill.RecurringID, editable.Through)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PayableBillListResponse{Error: &e})
		return
	}

	co.invalidate("payable-bills")

	data := make([]PayableBill, 0, len(bills))
	for _, bill := range bills {
		data = append(data, newPayableBill(bill))
	}

	c.JSON(http.StatusCreated, PayableBillListResponse{Data: data})
}

// uuidPointer unwraps an optional bound UUID for the engine APIs.
func uuidPointer(id *ez_uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}

	return &id.UUID
}

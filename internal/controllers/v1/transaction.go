package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tesouraria/backend/internal/httputil"
	"github.com/tesouraria/backend/internal/ledger"
	"github.com/tesouraria/backend/internal/models"
	ez_uuid "github.com/tesouraria/backend/internal/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type TransactionEditable struct {
	Type          models.TransactionType `json:"type" example:"expense"`
	Date          time.Time              `json:"date" example:"2024-01-07T00:00:00Z"`
	Amount        decimal.Decimal        `json:"amount" example:"137.50"`
	Note          string                 `json:"note" example:"Aluguel do salão" default:""`
	AttachmentURL string                 `json:"attachmentUrl" default:""`
	AccountID     ez_uuid.UUID           `json:"accountId"`
	CategoryID    ez_uuid.UUID           `json:"categoryId"`
	PayeeID       *ez_uuid.UUID          `json:"payeeId"`
	ProjectID     *ez_uuid.UUID          `json:"projectId"`
	TagIDs        []ez_uuid.UUID         `json:"tagIds"`
}

func (editable TransactionEditable) model() models.Transaction {
	transaction := models.Transaction{
		Type:          editable.Type,
		Date:          editable.Date,
		Amount:        editable.Amount,
		Note:          editable.Note,
		AttachmentURL: editable.AttachmentURL,
		AccountID:     editable.AccountID.UUID,
		CategoryID:    editable.CategoryID.UUID,
	}

	if editable.PayeeID != nil {
		transaction.PayeeID = &editable.PayeeID.UUID
	}
	if editable.ProjectID != nil {
		transaction.ProjectID = &editable.ProjectID.UUID
	}

	return transaction
}

// Transaction is the API representation of a transaction. PayableBillID and
// TransferID are read-only, they are set by linking and transfers.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	PayableBillID *ez_uuid.UUID `json:"payableBillId"`
	TransferID    *ez_uuid.UUID `json:"transferId"`
}

func newTransaction(model models.Transaction) Transaction {
	transaction := Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Type:          model.Type,
			Date:          model.Date,
			Amount:        model.Amount,
			Note:          model.Note,
			AttachmentURL: model.AttachmentURL,
			AccountID:     ez_uuid.UUID{UUID: model.AccountID},
			CategoryID:    ez_uuid.UUID{UUID: model.CategoryID},
			TagIDs:        make([]ez_uuid.UUID, 0, len(model.Tags)),
		},
	}

	if model.PayeeID != nil {
		transaction.PayeeID = &ez_uuid.UUID{UUID: *model.PayeeID}
	}
	if model.ProjectID != nil {
		transaction.ProjectID = &ez_uuid.UUID{UUID: *model.ProjectID}
	}
	if model.PayableBillID != nil {
		transaction.PayableBillID = &ez_uuid.UUID{UUID: *model.PayableBillID}
	}
	if model.TransferID != nil {
		transaction.TransferID = &ez_uuid.UUID{UUID: *model.TransferID}
	}

	for _, tag := range model.Tags {
		transaction.TagIDs = append(transaction.TagIDs, ez_uuid.UUID{UUID: tag.ID})
	}

	return transaction
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`
	Error *string      `json:"error" example:"there is no transaction matching your query"`
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`
	Error      *string       `json:"error" example:"there is no transaction matching your query"`
	Pagination *Pagination   `json:"pagination"`
}

// PaymentLinksEditable is the request body for replacing the payments linked
// to an income transaction.
type PaymentLinksEditable struct {
	Links  []ledger.PaymentLink `json:"links"`
	PaidOn time.Time            `json:"paidOn" example:"2024-01-07T00:00:00Z"`
}

// PaymentLinksResult reports the committed payment links. Warning is set
// when more than one payment is linked and the amounts do not add up to the
// transaction amount.
type PaymentLinksResult struct {
	Payments []Payment `json:"payments"`
	Warning  *string   `json:"warning" example:"the linked payments do not add up to the transaction amount: linked 90, transaction amount 100"`
}

type PaymentLinksResponse struct {
	Data  *PaymentLinksResult `json:"data"`
	Error *string             `json:"error" example:"only income transactions can be linked to payments"`
}

// BillLinkEditable is the request body for settling a payable bill with an
// expense transaction.
type BillLinkEditable struct {
	BillID ez_uuid.UUID `json:"billId" binding:"required"`
}

// TransactionQueryFilter contains the fields transactions can be filtered with.
type TransactionQueryFilter struct {
	Type       models.TransactionType `form:"type"`
	AccountID  ez_uuid.UUID           `form:"account"`
	CategoryID ez_uuid.UUID           `form:"category"`
	PayeeID    ez_uuid.UUID           `form:"payee" filterField:"false"`
	ProjectID  ez_uuid.UUID           `form:"project" filterField:"false"`
	TagID      ez_uuid.UUID           `form:"tag" filterField:"false"`
	From       time.Time              `form:"from" filterField:"false" time_format:"2006-01-02"`
	Until      time.Time              `form:"until" filterField:"false" time_format:"2006-01-02"`
	Offset     uint                   `form:"offset" filterField:"false"`
	Limit      int                    `form:"limit" filterField:"false"`
}

func (f TransactionQueryFilter) model() models.Transaction {
	return models.Transaction{
		Type:       f.Type,
		AccountID:  f.AccountID.UUID,
		CategoryID: f.CategoryID.UUID,
	}
}

// RegisterTransactionRoutes registers the routes for transactions with the
// RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", co.GetTransactions)
	r.POST("", co.CreateTransaction)

	r.OPTIONS("/:id", func(c *gin.Context) { resourceOptionsDetail(c, models.Transaction{}) })
	r.GET("/:id", co.GetTransaction)
	r.PATCH("/:id", co.UpdateTransaction)
	r.DELETE("/:id", co.DeleteTransaction)

	r.OPTIONS("/:id/payment-links", httputil.OptionsPost)
	r.POST("/:id/payment-links", co.SetPaymentLinks)

	r.OPTIONS("/:id/link-bill", httputil.OptionsPost)
	r.POST("/:id/link-bill", co.LinkBill)
}

// @Summary		List transactions
// @Description	Returns a list of transactions
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		500	{object}	TransactionListResponse
// @Router			/v1/transactions [get]
// @Param			type		query	string	false	"Filter by type"
// @Param			account		query	string	false	"Filter by account ID"
// @Param			category	query	string	false	"Filter by category ID"
// @Param			payee		query	string	false	"Filter by payee ID"
// @Param			project		query	string	false	"Filter by project ID"
// @Param			tag			query	string	false	"Filter by tag ID"
// @Param			from		query	string	false	"Only transactions on or after this date"
// @Param			until		query	string	false	"Only transactions on or before this date"
// @Param			offset		query	uint	false	"The offset of the first transaction returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of transactions to return. Defaults to 50."
func (co Controller) GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &e})
		return
	}

	queryFields, _ := httputil.URLFields(c.Request.URL, filter)

	query := models.DB.Where(filter.model(), queryFields...)

	if filter.PayeeID != ez_uuid.Nil {
		query = query.Where("payee_id = ?", filter.PayeeID.UUID)
	}

	if filter.ProjectID != ez_uuid.Nil {
		query = query.Where("project_id = ?", filter.ProjectID.UUID)
	}

	if filter.TagID != ez_uuid.Nil {
		query = query.Where(
			"id IN (SELECT transaction_id FROM transaction_tags WHERE tag_id = ?)",
			filter.TagID.UUID,
		)
	}

	if !filter.From.IsZero() {
		query = query.Where("datetime(date) >= datetime(?)", filter.From)
	}

	if !filter.Until.IsZero() {
		query = query.Where("datetime(date) <= datetime(?)", filter.Until)
	}

	// The query is reused for the count and the page.
	query = query.Session(&gorm.Session{})

	var count int64
	err := query.Model(&models.Transaction{}).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 50
	}

	var transactions []models.Transaction
	err = query.
		Preload("Tags").
		Order("datetime(date) DESC").
		Offset(int(filter.Offset)).
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Offset: filter.Offset,
			Limit:  limit,
			Total:  count,
		},
	})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, TransactionResponse{Error: &e})
		return
	}

	var transaction models.Transaction
	err := models.DB.Preload("Tags").First(&transaction, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	data := newTransaction(transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Create transaction
// @Description	Creates a new transaction
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Param			transaction	body	TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, TransactionResponse{Error: &e})
		return
	}

	transaction := editable.model()

	tags, err := tagsByID(editable.TagIDs)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}
	transaction.Tags = tags

	err = models.DB.Create(&transaction).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	co.invalidate("transactions", transaction.ID)
	co.invalidate("accounts", transaction.AccountID)

	data := newTransaction(transaction)
	c.JSON(http.StatusCreated, TransactionResponse{Data: &data})
}

// @Summary		Update transaction
// @Description	Updates a transaction. Only values to be updated need to be specified.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Param			id			path	string				true	"ID formatted as string"
// @Param			transaction	body	TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func (co Controller) UpdateTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, TransactionResponse{Error: &e})
		return
	}

	var transaction models.Transaction
	err := models.DB.Preload("Tags").First(&transaction, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	updateFields, err := httputil.BodyFields(c, TransactionEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, TransactionResponse{Error: &e})
		return
	}

	var editable TransactionEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, TransactionResponse{Error: &e})
		return
	}

	// The tag association is replaced separately, it is not a column.
	if i := slices.Index(updateFields, any("TagIDs")); i >= 0 {
		updateFields = slices.Delete(updateFields, i, i+1)

		tags, err := tagsByID(editable.TagIDs)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), TransactionResponse{Error: &e})
			return
		}

		err = models.DB.Model(&transaction).Association("Tags").Replace(tags)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), TransactionResponse{Error: &e})
			return
		}
		transaction.Tags = tags
	}

	if len(updateFields) > 0 {
		err = models.DB.Model(&transaction).Select("", updateFields...).Updates(editable.model()).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), TransactionResponse{Error: &e})
			return
		}
	}

	co.invalidate("transactions", transaction.ID)
	co.invalidate("accounts", transaction.AccountID)

	data := newTransaction(transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction. Linked payments are kept but unlinked, a settled bill goes back to unpaid. Transfer legs cannot be deleted individually.
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		409	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	err := ledger.DeleteTransaction(models.DB, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	co.invalidate("transactions", uri.ID.UUID)
	co.invalidate("accounts")
	co.invalidate("payments")
	co.invalidate("payable-bills")

	c.Status(http.StatusNoContent)
}

// @Summary		Set payment links
// @Description	Replaces the set of dues payments linked to an income transaction. The operation is idempotent, posting the same links twice does not create duplicates.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200	{object}	PaymentLinksResponse
// @Failure		400	{object}	PaymentLinksResponse
// @Failure		404	{object}	PaymentLinksResponse
// @Param			id		path	string					true	"ID formatted as string"
// @Param			links	body	PaymentLinksEditable	true	"Payment links"
// @Router			/v1/transactions/{id}/payment-links [post]
func (co Controller) SetPaymentLinks(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, PaymentLinksResponse{Error: &e})
		return
	}

	var editable PaymentLinksEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, PaymentLinksResponse{Error: &e})
		return
	}

	date := editable.PaidOn
	if date.IsZero() {
		date = time.Now().In(time.UTC)
	}

	result, err := ledger.SetPaymentLinks(models.DB, uri.ID.UUID, editable.Links, date)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentLinksResponse{Error: &e})
		return
	}

	co.invalidate("transactions", uri.ID.UUID)
	co.invalidate("payments")
	co.invalidate("members")

	data := PaymentLinksResult{Payments: make([]Payment, 0, len(result.Payments))}
	for _, payment := range result.Payments {
		data.Payments = append(data.Payments, newPayment(payment))
	}

	if result.Warning != nil {
		w := result.Warning.Error()
		data.Warning = &w
	}

	c.JSON(http.StatusOK, PaymentLinksResponse{Data: &data})
}

// @Summary		Link bill
// @Description	Settles a payable bill with this expense transaction. The bill's description, amount, category and payee are copied onto the transaction.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		409	{object}	TransactionResponse
// @Param			id		path	string				true	"ID formatted as string"
// @Param			link	body	BillLinkEditable	true	"Bill link"
// @Router			/v1/transactions/{id}/link-bill [post]
func (co Controller) LinkBill(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, TransactionResponse{Error: &e})
		return
	}

	var editable BillLinkEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, TransactionResponse{Error: &e})
		return
	}

	err := ledger.LinkToBill(models.DB, uri.ID.UUID, editable.BillID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	co.invalidate("transactions", uri.ID.UUID)
	co.invalidate("payable-bills", editable.BillID.UUID)

	var transaction models.Transaction
	err = models.DB.Preload("Tags").First(&transaction, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	data := newTransaction(transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// tagsByID resolves tag IDs to tags, failing when any of them does not exist.
func tagsByID(ids []ez_uuid.UUID) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(ids))
	for _, id := range ids {
		var tag models.Tag
		err := models.DB.First(&tag, id.UUID).Error
		if err != nil {
			return nil, err
		}

		tags = append(tags, tag)
	}

	return tags, nil
}

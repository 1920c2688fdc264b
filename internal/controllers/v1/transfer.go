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
)

// TransferEditable is the request body for booking a transfer between two
// owned accounts.
type TransferEditable struct {
	FromAccountID ez_uuid.UUID    `json:"fromAccountId" binding:"required"`
	ToAccountID   ez_uuid.UUID    `json:"toAccountId" binding:"required"`
	Amount        decimal.Decimal `json:"amount" example:"500"`
	Date          time.Time       `json:"date" example:"2024-01-07T00:00:00Z"`
	Note          string          `json:"note" default:""`
}

// Transfer is the API representation of a transfer pair: an expense leg on
// the source account and an income leg on the destination account.
type Transfer struct {
	TransferID ez_uuid.UUID `json:"transferId"`
	Outgoing   Transaction  `json:"outgoing"`
	Incoming   Transaction  `json:"incoming"`
}

func newTransfer(pair ledger.TransferPair) Transfer {
	return Transfer{
		TransferID: ez_uuid.UUID{UUID: pair.TransferID},
		Outgoing:   newTransaction(pair.Outgoing),
		Incoming:   newTransaction(pair.Incoming),
	}
}

type TransferResponse struct {
	Data  *Transfer `json:"data"`
	Error *string   `json:"error" example:"the source and destination account of a transfer must be different"`
}

// RegisterTransferRoutes registers the routes for transfers with the
// RouterGroup that is passed.
func (co Controller) RegisterTransferRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsPost)
	r.POST("", co.CreateTransfer)

	r.OPTIONS("/:id", func(c *gin.Context) {
		c.Header("allow", "DELETE")
		c.Status(http.StatusNoContent)
	})
	r.DELETE("/:id", co.DeleteTransfer)
}

// @Summary		Create transfer
// @Description	Books a transfer between two accounts as two transactions sharing a transfer ID. Transfers never appear in revenue or result reports.
// @Tags			Transfers
// @Accept			json
// @Produce		json
// @Success		201	{object}	TransferResponse
// @Failure		400	{object}	TransferResponse
// @Failure		404	{object}	TransferResponse
// @Param			transfer	body	TransferEditable	true	"Transfer"
// @Router			/v1/transfers [post]
func (co Controller) CreateTransfer(c *gin.Context) {
	var editable TransferEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, TransferResponse{Error: &e})
		return
	}

	pair, err := ledger.CreateTransferPair(
		models.DB,
		editable.FromAccountID.UUID,
		editable.ToAccountID.UUID,
		editable.Amount,
		editable.Date,
		editable.Note,
	)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransferResponse{Error: &e})
		return
	}

	co.invalidate("transactions", pair.Outgoing.ID, pair.Incoming.ID)
	co.invalidate("accounts", editable.FromAccountID.UUID, editable.ToAccountID.UUID)

	data := newTransfer(pair)
	c.JSON(http.StatusCreated, TransferResponse{Data: &data})
}

// @Summary		Delete transfer
// @Description	Deletes both legs of a transfer pair. A lone transfer leg is never left behind.
// @Tags			Transfers
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path	string	true	"Transfer ID formatted as string"
// @Router			/v1/transfers/{id} [delete]
func (co Controller) DeleteTransfer(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	err := ledger.DeleteTransfer(models.DB, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	co.invalidate("transactions")
	co.invalidate("accounts")

	c.Status(http.StatusNoContent)
}

package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tesouraria/backend/internal/httputil"
	"github.com/tesouraria/backend/internal/models"
)

type AccountEditable struct {
	Name           string          `json:"name" example:"Conta corrente"`
	Note           string          `json:"note" example:"Banco do Brasil" default:""`
	InitialBalance decimal.Decimal `json:"initialBalance" example:"1000.00"`
	Archived       bool            `json:"archived" example:"false" default:"false"`
}

func (editable AccountEditable) model() models.Account {
	return models.Account{
		Name:           editable.Name,
		Note:           editable.Note,
		InitialBalance: editable.InitialBalance,
		Archived:       editable.Archived,
	}
}

// Account is the API representation of an account. Balance is derived from
// the initial balance and all transactions, it is never stored.
type Account struct {
	models.DefaultModel
	AccountEditable
	Balance decimal.Decimal `json:"balance" example:"1486.17"`
}

func newAccount(model models.Account) (Account, error) {
	balance, err := model.Balance(models.DB, time.Now())
	if err != nil {
		return Account{}, err
	}

	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			Name:           model.Name,
			Note:           model.Note,
			InitialBalance: model.InitialBalance,
			Archived:       model.Archived,
		},
		Balance: balance,
	}, nil
}

type AccountResponse struct {
	Data  *Account `json:"data"`
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"`
}

type AccountListResponse struct {
	Data  []Account `json:"data"`
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// RegisterAccountRoutes registers the routes for accounts with the
// RouterGroup that is passed.
func (co Controller) RegisterAccountRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", co.GetAccounts)
	r.POST("", co.CreateAccount)

	r.OPTIONS("/:id", func(c *gin.Context) { resourceOptionsDetail(c, models.Account{}) })
	r.GET("/:id", co.GetAccount)
	r.PATCH("/:id", co.UpdateAccount)
	r.DELETE("/:id", co.DeleteAccount)
}

// @Summary		List accounts
// @Description	Returns a list of accounts with derived balances
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	AccountListResponse
// @Failure		500	{object}	AccountListResponse
// @Router			/v1/accounts [get]
// @Param			archived	query	bool	false	"Is the account archived?"
func (co Controller) GetAccounts(c *gin.Context) {
	var query struct {
		Archived bool `form:"archived"`
	}
	if err := c.Bind(&query); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, AccountListResponse{Error: &e})
		return
	}

	var accounts []models.Account
	err := models.DB.Where(models.Account{Archived: query.Archived}).Order("name ASC").Find(&accounts).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountListResponse{Error: &e})
		return
	}

	data := make([]Account, 0, len(accounts))
	for _, account := range accounts {
		a, err := newAccount(account)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), AccountListResponse{Error: &e})
			return
		}
		data = append(data, a)
	}

	c.JSON(http.StatusOK, AccountListResponse{Data: data})
}

// @Summary		Get account
// @Description	Returns a specific account with its derived balance
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	AccountResponse
// @Failure		400	{object}	AccountResponse
// @Failure		404	{object}	AccountResponse
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/accounts/{id} [get]
func (co Controller) GetAccount(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, AccountResponse{Error: &e})
		return
	}

	var account models.Account
	err := models.DB.First(&account, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	data, err := newAccount(account)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Data: &data})
}

// @Summary		Create account
// @Description	Creates a new account
// @Tags			Accounts
// @Accept			json
// @Produce		json
// @Success		201	{object}	AccountResponse
// @Failure		400	{object}	AccountResponse
// @Param			account	body	AccountEditable	true	"Account"
// @Router			/v1/accounts [post]
func (co Controller) CreateAccount(c *gin.Context) {
	var editable AccountEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, AccountResponse{Error: &e})
		return
	}

	account := editable.model()
	err := models.DB.Create(&account).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	co.invalidate("accounts", account.ID)

	data, err := newAccount(account)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, AccountResponse{Data: &data})
}

// @Summary		Update account
// @Description	Updates an account. Only values to be updated need to be specified.
// @Tags			Accounts
// @Accept			json
// @Produce		json
// @Success		200	{object}	AccountResponse
// @Failure		400	{object}	AccountResponse
// @Failure		404	{object}	AccountResponse
// @Param			id		path	string			true	"ID formatted as string"
// @Param			account	body	AccountEditable	true	"Account"
// @Router			/v1/accounts/{id} [patch]
func (co Controller) UpdateAccount(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, AccountResponse{Error: &e})
		return
	}

	var account models.Account
	err := models.DB.First(&account, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	updateFields, err := httputil.BodyFields(c, AccountEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, AccountResponse{Error: &e})
		return
	}

	var editable AccountEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, AccountResponse{Error: &e})
		return
	}

	err = models.DB.Model(&account).Select("", updateFields...).Updates(editable.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	co.invalidate("accounts", account.ID)

	data, err := newAccount(account)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Data: &data})
}

// @Summary		Delete account
// @Description	Deletes an account. Accounts with transactions cannot be deleted.
// @Tags			Accounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		409	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/accounts/{id} [delete]
func (co Controller) DeleteAccount(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var account models.Account
	err := models.DB.First(&account, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if len(account.Transactions(models.DB)) > 0 {
		c.JSON(http.StatusConflict, httpError{Error: "the account still has transactions, delete them first"})
		return
	}

	err = models.DB.Delete(&account).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	co.invalidate("accounts", account.ID)

	c.Status(http.StatusNoContent)
}

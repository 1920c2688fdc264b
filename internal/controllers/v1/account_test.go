package v1_test

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	v1 "github.com/tesouraria/backend/internal/controllers/v1"
	"github.com/tesouraria/backend/test"
)

func (suite *TestSuiteStandard) TestAccountOptions() {
	recorder := test.Request(suite.T(), suite.router, http.MethodOptions, "/v1/accounts", "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &recorder)
	assert.Equal(suite.T(), "GET, POST", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestAccountCreate() {
	account := suite.createTestAccount(v1.AccountEditable{
		Name:           "Caixa",
		InitialBalance: decimal.NewFromInt(1000),
	})

	assert.NotEqual(suite.T(), uuid.Nil, account.ID)
	assert.True(suite.T(), account.Balance.Equal(decimal.NewFromInt(1000)), "the balance of a fresh account is the initial balance")
}

func (suite *TestSuiteStandard) TestAccountCreateBrokenJSON() {
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/accounts", `{ "name": "broken`)
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &recorder)
}

func (suite *TestSuiteStandard) TestAccountNameNotUnique() {
	_ = suite.createTestAccount(v1.AccountEditable{Name: "Caixa"})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/accounts", v1.AccountEditable{Name: "Caixa"})
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &recorder)

	var response v1.AccountResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Contains(suite.T(), *response.Error, "account name")
}

func (suite *TestSuiteStandard) TestAccountGetNonexistent() {
	recorder := test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/v1/accounts/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &recorder)
}

func (suite *TestSuiteStandard) TestAccountGetInvalidUUID() {
	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/accounts/not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &recorder)
}

func (suite *TestSuiteStandard) TestAccountUpdate() {
	account := suite.createTestAccount(v1.AccountEditable{Name: "Caixa"})

	recorder := test.Request(suite.T(), suite.router, http.MethodPatch,
		fmt.Sprintf("/v1/accounts/%s", account.ID),
		map[string]any{"note": "Dinheiro em espécie"})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.AccountResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "Dinheiro em espécie", response.Data.Note)
	assert.Equal(suite.T(), "Caixa", response.Data.Name, "fields not in the request body stay untouched")
}

func (suite *TestSuiteStandard) TestAccountDelete() {
	account := suite.createTestAccount(v1.AccountEditable{})

	recorder := test.Request(suite.T(), suite.router, http.MethodDelete, fmt.Sprintf("/v1/accounts/%s", account.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &recorder)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/v1/accounts/%s", account.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &recorder)
}

func (suite *TestSuiteStandard) TestAccountDeleteWithTransactions() {
	transaction := suite.createTestTransaction(v1.TransactionEditable{})

	recorder := test.Request(suite.T(), suite.router, http.MethodDelete, fmt.Sprintf("/v1/accounts/%s", transaction.AccountID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusConflict, &recorder)
}

func (suite *TestSuiteStandard) TestAccountBalanceReflectsTransactions() {
	account := suite.createTestAccount(v1.AccountEditable{InitialBalance: decimal.NewFromInt(100)})

	_ = suite.createTestTransaction(v1.TransactionEditable{
		Type:      "income",
		Amount:    decimal.NewFromFloat(32.17),
		AccountID: ezID(account.ID),
	})
	_ = suite.createTestTransaction(v1.TransactionEditable{
		Type:      "expense",
		Amount:    decimal.NewFromFloat(17.45),
		AccountID: ezID(account.ID),
	})

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/v1/accounts/%s", account.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.AccountResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.Data.Balance.Equal(decimal.NewFromFloat(114.72)), "balance is %s", response.Data.Balance)
}

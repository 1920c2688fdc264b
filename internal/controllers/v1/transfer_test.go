package v1_test

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	v1 "github.com/tesouraria/backend/internal/controllers/v1"
	"github.com/tesouraria/backend/internal/models"
	"github.com/tesouraria/backend/test"
)

func (suite *TestSuiteStandard) createTestTransfer(amount decimal.Decimal) v1.Transfer {
	from := suite.createTestAccount(v1.AccountEditable{Name: "Origem", InitialBalance: decimal.NewFromInt(1000)})
	to := suite.createTestAccount(v1.AccountEditable{Name: "Destino"})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/transfers", v1.TransferEditable{
		FromAccountID: ezID(from.ID),
		ToAccountID:   ezID(to.ID),
		Amount:        amount,
	})
	test.AssertHTTPStatus(suite.T(), http.StatusCreated, &recorder)

	var response v1.TransferResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	return *response.Data
}

func (suite *TestSuiteStandard) TestTransferCreate() {
	transfer := suite.createTestTransfer(decimal.NewFromInt(500))

	assert.Equal(suite.T(), models.TransactionExpense, transfer.Outgoing.Type)
	assert.Equal(suite.T(), models.TransactionIncome, transfer.Incoming.Type)
	assert.True(suite.T(), transfer.Outgoing.Amount.Equal(transfer.Incoming.Amount))
	assert.Equal(suite.T(), transfer.TransferID, *transfer.Outgoing.TransferID)
	assert.Equal(suite.T(), transfer.TransferID, *transfer.Incoming.TransferID)
}

func (suite *TestSuiteStandard) TestTransferSameAccount() {
	account := suite.createTestAccount(v1.AccountEditable{})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/transfers", v1.TransferEditable{
		FromAccountID: ezID(account.ID),
		ToAccountID:   ezID(account.ID),
		Amount:        decimal.NewFromInt(10),
	})
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &recorder)
}

func (suite *TestSuiteStandard) TestTransferDelete() {
	transfer := suite.createTestTransfer(decimal.NewFromInt(500))

	recorder := test.Request(suite.T(), suite.router, http.MethodDelete,
		fmt.Sprintf("/v1/transfers/%s", transfer.TransferID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &recorder)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet,
		fmt.Sprintf("/v1/transactions/%s", transfer.Outgoing.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &recorder)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet,
		fmt.Sprintf("/v1/transactions/%s", transfer.Incoming.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &recorder)
}

func (suite *TestSuiteStandard) TestTransferLegDeleteRefused() {
	transfer := suite.createTestTransfer(decimal.NewFromInt(500))

	recorder := test.Request(suite.T(), suite.router, http.MethodDelete,
		fmt.Sprintf("/v1/transactions/%s", transfer.Outgoing.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusConflict, &recorder)
}

package v1_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	v1 "github.com/tesouraria/backend/internal/controllers/v1"
	"github.com/tesouraria/backend/internal/ledger"
	"github.com/tesouraria/backend/internal/types"
	ez_uuid "github.com/tesouraria/backend/internal/uuid"
	"github.com/tesouraria/backend/test"
)

func (suite *TestSuiteStandard) createTestTag(name string) v1.Tag {
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/tags", v1.TagEditable{Name: name})
	test.AssertHTTPStatus(suite.T(), http.StatusCreated, &recorder)

	var response v1.TagResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	return *response.Data
}

func (suite *TestSuiteStandard) TestTransactionCreateWithTags() {
	urgent := suite.createTestTag("urgente")
	event := suite.createTestTag("evento")

	transaction := suite.createTestTransaction(v1.TransactionEditable{
		Note:   "Compra do churrasco",
		TagIDs: []ez_uuid.UUID{ezID(urgent.ID), ezID(event.ID)},
	})

	assert.Len(suite.T(), transaction.TagIDs, 2)
}

func (suite *TestSuiteStandard) TestTransactionAmountNotPositive() {
	account := suite.createTestAccount(v1.AccountEditable{})
	category := suite.createTestCategory(v1.CategoryEditable{})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/transactions", v1.TransactionEditable{
		Type:       "expense",
		Amount:     decimal.Zero,
		AccountID:  ezID(account.ID),
		CategoryID: ezID(category.ID),
	})
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &recorder)
}

func (suite *TestSuiteStandard) TestTransactionUpdateTags() {
	urgent := suite.createTestTag("urgente")
	transaction := suite.createTestTransaction(v1.TransactionEditable{
		TagIDs: []ez_uuid.UUID{ezID(urgent.ID)},
	})

	other := suite.createTestTag("outro")
	recorder := test.Request(suite.T(), suite.router, http.MethodPatch,
		fmt.Sprintf("/v1/transactions/%s", transaction.ID),
		map[string]any{"tagIds": []string{other.ID.String()}})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data.TagIDs, 1, "the tag set is replaced, not merged")
	assert.Equal(suite.T(), other.ID, response.Data.TagIDs[0].UUID)
}

func (suite *TestSuiteStandard) TestTransactionFilterByTag() {
	urgent := suite.createTestTag("urgente")
	tagged := suite.createTestTransaction(v1.TransactionEditable{
		TagIDs: []ez_uuid.UUID{ezID(urgent.ID)},
	})
	_ = suite.createTestTransaction(v1.TransactionEditable{})

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/v1/transactions?tag=%s", urgent.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), tagged.ID, response.Data[0].ID)
}

func (suite *TestSuiteStandard) TestPaymentLinks() {
	maria := suite.createTestMember(v1.MemberEditable{Name: "Maria"})
	joana := suite.createTestMember(v1.MemberEditable{Name: "Joana"})

	transaction := suite.createTestTransaction(v1.TransactionEditable{
		Type:   "income",
		Amount: decimal.NewFromInt(100),
	})

	links := v1.PaymentLinksEditable{Links: []ledger.PaymentLink{
		{MemberID: maria.ID, ReferenceMonth: types.NewMonth(2024, 1), Amount: decimal.NewFromInt(50)},
		{MemberID: joana.ID, ReferenceMonth: types.NewMonth(2024, 1), Amount: decimal.NewFromInt(50)},
	}}

	recorder := test.Request(suite.T(), suite.router, http.MethodPost,
		fmt.Sprintf("/v1/transactions/%s/payment-links", transaction.ID), links)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.PaymentLinksResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data.Payments, 2)
	assert.Nil(suite.T(), response.Data.Warning)

	// Posting the same links again does not create duplicates.
	recorder = test.Request(suite.T(), suite.router, http.MethodPost,
		fmt.Sprintf("/v1/transactions/%s/payment-links", transaction.ID), links)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/payments", "")
	var list v1.PaymentListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	assert.Len(suite.T(), list.Data, 2)
}

func (suite *TestSuiteStandard) TestPaymentLinksWarning() {
	maria := suite.createTestMember(v1.MemberEditable{Name: "Maria"})
	joana := suite.createTestMember(v1.MemberEditable{Name: "Joana"})

	transaction := suite.createTestTransaction(v1.TransactionEditable{
		Type:   "income",
		Amount: decimal.NewFromInt(100),
	})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost,
		fmt.Sprintf("/v1/transactions/%s/payment-links", transaction.ID),
		v1.PaymentLinksEditable{Links: []ledger.PaymentLink{
			{MemberID: maria.ID, ReferenceMonth: types.NewMonth(2024, 1), Amount: decimal.NewFromInt(60)},
			{MemberID: joana.ID, ReferenceMonth: types.NewMonth(2024, 1), Amount: decimal.NewFromInt(30)},
		}})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.PaymentLinksResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.NotNil(suite.T(), response.Data.Warning, "mismatching amounts warn but the links commit")
	assert.Len(suite.T(), response.Data.Payments, 2)
}

func (suite *TestSuiteStandard) TestPaymentLinksExpenseRefused() {
	maria := suite.createTestMember(v1.MemberEditable{Name: "Maria"})
	transaction := suite.createTestTransaction(v1.TransactionEditable{Type: "expense"})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost,
		fmt.Sprintf("/v1/transactions/%s/payment-links", transaction.ID),
		v1.PaymentLinksEditable{Links: []ledger.PaymentLink{
			{MemberID: maria.ID, ReferenceMonth: types.NewMonth(2024, 1), Amount: decimal.NewFromInt(50)},
		}})
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &recorder)
}

func (suite *TestSuiteStandard) TestLinkBill() {
	bill := suite.createTestBill(v1.PayableBillEditable{Description: "Conta de luz"})
	transaction := suite.createTestTransaction(v1.TransactionEditable{
		Type:   "expense",
		Amount: decimal.NewFromInt(100),
	})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost,
		fmt.Sprintf("/v1/transactions/%s/link-bill", transaction.ID),
		v1.BillLinkEditable{BillID: ezID(bill.ID)})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.NotNil(suite.T(), response.Data.PayableBillID)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/v1/payable-bills/%s", bill.ID), "")
	var billResponse v1.PayableBillResponse
	test.DecodeResponse(suite.T(), &recorder, &billResponse)
	assert.True(suite.T(), billResponse.Data.Paid)
	assert.Equal(suite.T(), "paid", string(billResponse.Data.Status))
}

func (suite *TestSuiteStandard) TestLinkBillAlreadyLinked() {
	bill := suite.createTestBill(v1.PayableBillEditable{Description: "Conta de luz"})
	first := suite.createTestTransaction(v1.TransactionEditable{Type: "expense", Amount: decimal.NewFromInt(100)})
	second := suite.createTestTransaction(v1.TransactionEditable{Type: "expense", Amount: decimal.NewFromInt(100)})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost,
		fmt.Sprintf("/v1/transactions/%s/link-bill", first.ID),
		v1.BillLinkEditable{BillID: ezID(bill.ID)})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	recorder = test.Request(suite.T(), suite.router, http.MethodPost,
		fmt.Sprintf("/v1/transactions/%s/link-bill", second.ID),
		v1.BillLinkEditable{BillID: ezID(bill.ID)})
	test.AssertHTTPStatus(suite.T(), http.StatusConflict, &recorder)
}

func (suite *TestSuiteStandard) TestTransactionDeleteUnwindsLinks() {
	maria := suite.createTestMember(v1.MemberEditable{Name: "Maria"})
	transaction := suite.createTestTransaction(v1.TransactionEditable{
		Type:   "income",
		Amount: decimal.NewFromInt(50),
	})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost,
		fmt.Sprintf("/v1/transactions/%s/payment-links", transaction.ID),
		v1.PaymentLinksEditable{Links: []ledger.PaymentLink{
			{MemberID: maria.ID, ReferenceMonth: types.NewMonth(2024, 1), Amount: decimal.NewFromInt(50)},
		}})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	recorder = test.Request(suite.T(), suite.router, http.MethodDelete, fmt.Sprintf("/v1/transactions/%s", transaction.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &recorder)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/payments?unlinked=true", "")
	var list v1.PaymentListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	assert.Len(suite.T(), list.Data, 1, "the payment survives the transaction, it is only unlinked")
}

func (suite *TestSuiteStandard) TestTransactionPagination() {
	account := suite.createTestAccount(v1.AccountEditable{})
	category := suite.createTestCategory(v1.CategoryEditable{})

	for _, day := range []int{1, 2, 3} {
		_ = suite.createTestTransaction(v1.TransactionEditable{
			Date:       time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
			AccountID:  ezID(account.ID),
			CategoryID: ezID(category.ID),
		})
	}

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/transactions?limit=2", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), 2, response.Pagination.Count)
	assert.Equal(suite.T(), int64(3), response.Pagination.Total)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/transactions?limit=2&offset=2", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), uint(2), response.Pagination.Offset)
	assert.Equal(suite.T(), int64(3), response.Pagination.Total)
}

func (suite *TestSuiteStandard) TestTransactionFilterDateRange() {
	account := suite.createTestAccount(v1.AccountEditable{})
	category := suite.createTestCategory(v1.CategoryEditable{})

	for _, day := range []int{5, 15, 25} {
		_ = suite.createTestTransaction(v1.TransactionEditable{
			Date:       time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
			AccountID:  ezID(account.ID),
			CategoryID: ezID(category.ID),
		})
	}

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/transactions?from=2024-01-10&until=2024-01-20", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 1)
}

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
	"github.com/tesouraria/backend/test"
)

func (suite *TestSuiteStandard) TestOverdueReport() {
	_ = suite.createTestMember(v1.MemberEditable{
		Name:     "Maria",
		JoinedOn: time.Now().AddDate(0, -2, 0),
	})
	_ = suite.createTestMember(v1.MemberEditable{Name: "Isenta", Exempt: true})

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/reports/overdue", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.OverdueReportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data.Rows, 1, "exempt members never owe dues")
	assert.Equal(suite.T(), "Maria", response.Data.Rows[0].Name)
	assert.True(suite.T(), response.Data.GrandTotal.IsPositive())
}

func (suite *TestSuiteStandard) TestOverdueReportInvalidation() {
	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/reports/overdue", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var before v1.OverdueReportResponse
	test.DecodeResponse(suite.T(), &recorder, &before)
	assert.Empty(suite.T(), before.Data.Rows)

	// A member mutation drops the cached report.
	_ = suite.createTestMember(v1.MemberEditable{
		Name:     "Nova",
		JoinedOn: time.Now().AddDate(0, -1, 0),
	})

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/reports/overdue", "")
	var after v1.OverdueReportResponse
	test.DecodeResponse(suite.T(), &recorder, &after)
	assert.Len(suite.T(), after.Data.Rows, 1)
}

func (suite *TestSuiteStandard) TestRevenueReportRangeRequired() {
	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/reports/revenue", "")
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &recorder)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/reports/revenue?start=2024-01-01", "")
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &recorder)
}

func (suite *TestSuiteStandard) TestRevenueReport() {
	maria := suite.createTestMember(v1.MemberEditable{Name: "Maria"})
	transaction := suite.createTestTransaction(v1.TransactionEditable{
		Type:   "income",
		Date:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Amount: decimal.NewFromInt(50),
	})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost,
		fmt.Sprintf("/v1/transactions/%s/payment-links", transaction.ID),
		v1.PaymentLinksEditable{Links: []ledger.PaymentLink{
			{MemberID: maria.ID, ReferenceMonth: types.NewMonth(2024, 1), Amount: decimal.NewFromInt(50)},
		}})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/reports/revenue?start=2024-01-01&end=2024-01-31", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.RevenueReportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data.Rows, 1)
	assert.Equal(suite.T(), "Maria", response.Data.Rows[0].MemberName)
	assert.True(suite.T(), response.Data.Total.Equal(decimal.NewFromInt(50)))
}

func (suite *TestSuiteStandard) TestRevenueReportEndDateInclusive() {
	_ = suite.createTestTransaction(v1.TransactionEditable{
		Type:   "income",
		Date:   time.Date(2024, 1, 31, 18, 30, 0, 0, time.UTC),
		Amount: decimal.NewFromInt(50),
	})

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/reports/revenue?start=2024-01-01&end=2024-01-31", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.RevenueReportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data.Rows, 1, "a transaction late on the end date is inside the range")
}

func (suite *TestSuiteStandard) TestFinancialReportDimensionInvalid() {
	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/reports/financial?dimension=color", "")
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &recorder)
}

func (suite *TestSuiteStandard) TestFinancialReport() {
	account := suite.createTestAccount(v1.AccountEditable{})
	food := suite.createTestCategory(v1.CategoryEditable{Name: "Alimentação"})
	rent := suite.createTestCategory(v1.CategoryEditable{Name: "Aluguel"})

	_ = suite.createTestTransaction(v1.TransactionEditable{
		Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(100),
		AccountID: ezID(account.ID), CategoryID: ezID(food.ID),
	})
	_ = suite.createTestTransaction(v1.TransactionEditable{
		Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(800),
		AccountID: ezID(account.ID), CategoryID: ezID(rent.ID),
	})

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/reports/financial?dimension=category", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.FinancialReportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data.Groups, 2)
	assert.Equal(suite.T(), "Aluguel", response.Data.Groups[0].Name, "groups are ranked by total descending")
	assert.True(suite.T(), response.Data.Total.Equal(decimal.NewFromInt(900)))
}

func (suite *TestSuiteStandard) TestDREReport() {
	account := suite.createTestAccount(v1.AccountEditable{})
	duesCategory := suite.createTestCategory(v1.CategoryEditable{Name: "Mensalidades", GrossRevenue: true})
	rent := suite.createTestCategory(v1.CategoryEditable{Name: "Aluguel"})

	_ = suite.createTestTransaction(v1.TransactionEditable{
		Type: "income", Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Amount: decimal.NewFromInt(1500), AccountID: ezID(account.ID), CategoryID: ezID(duesCategory.ID),
	})
	_ = suite.createTestTransaction(v1.TransactionEditable{
		Type: "expense", Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Amount: decimal.NewFromInt(800), AccountID: ezID(account.ID), CategoryID: ezID(rent.ID),
	})

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/reports/dre?start=2024-01-01&end=2024-01-31", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.DREReportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.Data.GrossRevenue.Total.Equal(decimal.NewFromInt(1500)))
	assert.True(suite.T(), response.Data.OperatingExpenses.Total.Equal(decimal.NewFromInt(800)))
	assert.True(suite.T(), response.Data.NetResult.Equal(decimal.NewFromInt(700)))
}

package v1_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	v1 "github.com/tesouraria/backend/internal/controllers/v1"
	"github.com/tesouraria/backend/internal/types"
	"github.com/tesouraria/backend/test"
)

func (suite *TestSuiteStandard) TestPayableBillStatusComputed() {
	overdue := suite.createTestBill(v1.PayableBillEditable{
		Description: "Vencida",
		DueDate:     time.Now().AddDate(0, 0, -5),
	})
	assert.Equal(suite.T(), "overdue", string(overdue.Status))

	pending := suite.createTestBill(v1.PayableBillEditable{
		Description: "A vencer",
		DueDate:     time.Now().AddDate(0, 0, 5),
	})
	assert.Equal(suite.T(), "pending", string(pending.Status))
}

func (suite *TestSuiteStandard) TestPayableBillStatusFilter() {
	_ = suite.createTestBill(v1.PayableBillEditable{
		Description: "Vencida",
		DueDate:     time.Now().AddDate(0, 0, -5),
	})
	_ = suite.createTestBill(v1.PayableBillEditable{
		Description: "A vencer",
		DueDate:     time.Now().AddDate(0, 0, 5),
	})

	recorder := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/payable-bills?status=overdue", "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.PayableBillListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "Vencida", response.Data[0].Description)
}

func (suite *TestSuiteStandard) TestInstallments() {
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/payable-bills/installments", v1.InstallmentsEditable{
		Description: "Reforma da cozinha",
		Total:       decimal.NewFromInt(100),
		Count:       3,
		FirstDue:    time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
	})
	test.AssertHTTPStatus(suite.T(), http.StatusCreated, &recorder)

	var response v1.PayableBillListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 3)

	sum := decimal.Zero
	for _, bill := range response.Data {
		sum = sum.Add(bill.Amount)
	}
	assert.True(suite.T(), sum.Equal(decimal.NewFromInt(100)), "the installments add up to the total exactly")
	assert.True(suite.T(), response.Data[2].Amount.Equal(decimal.NewFromFloat(33.34)), "the rounding difference goes into the last installment")
}

func (suite *TestSuiteStandard) TestInstallmentsCountTooLow() {
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/payable-bills/installments", v1.InstallmentsEditable{
		Description: "Parcela única",
		Total:       decimal.NewFromInt(100),
		Count:       1,
		FirstDue:    time.Now(),
	})
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &recorder)
}

func (suite *TestSuiteStandard) TestGroupedBillDeleteNeedsScope() {
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/payable-bills/installments", v1.InstallmentsEditable{
		Description: "Reforma",
		Total:       decimal.NewFromInt(300),
		Count:       3,
		FirstDue:    time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
	})
	test.AssertHTTPStatus(suite.T(), http.StatusCreated, &recorder)

	var response v1.PayableBillListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	recorder = test.Request(suite.T(), suite.router, http.MethodDelete,
		fmt.Sprintf("/v1/payable-bills/%s", response.Data[0].ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusConflict, &recorder)

	recorder = test.Request(suite.T(), suite.router, http.MethodDelete,
		fmt.Sprintf("/v1/payable-bills/%s?scope=single", response.Data[0].ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &recorder)
}

func (suite *TestSuiteStandard) TestGroupedBillDeleteThisAndFuture() {
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/payable-bills/installments", v1.InstallmentsEditable{
		Description: "Reforma",
		Total:       decimal.NewFromInt(400),
		Count:       4,
		FirstDue:    time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
	})
	test.AssertHTTPStatus(suite.T(), http.StatusCreated, &recorder)

	var response v1.PayableBillListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	recorder = test.Request(suite.T(), suite.router, http.MethodDelete,
		fmt.Sprintf("/v1/payable-bills/%s?scope=this-and-future", response.Data[1].ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &recorder)

	recorder = test.Request(suite.T(), suite.router, http.MethodGet, "/v1/payable-bills", "")
	var list v1.PayableBillListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	assert.Len(suite.T(), list.Data, 1, "only the first installment remains")
}

func (suite *TestSuiteStandard) TestRecurringGenerate() {
	bill := suite.createTestBill(v1.PayableBillEditable{
		Description: "Aluguel",
		DueDate:     time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Recurring:   true,
	})
	assert.NotNil(suite.T(), bill.RecurringID)

	recorder := test.Request(suite.T(), suite.router, http.MethodPost,
		fmt.Sprintf("/v1/payable-bills/%s/generate", bill.ID),
		v1.GenerateEditable{Through: types.NewMonth(2024, 4)})
	test.AssertHTTPStatus(suite.T(), http.StatusCreated, &recorder)

	var response v1.PayableBillListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 3, "one bill per month from February through April")

	// Generating again through the same month is a no-op.
	recorder = test.Request(suite.T(), suite.router, http.MethodPost,
		fmt.Sprintf("/v1/payable-bills/%s/generate", bill.ID),
		v1.GenerateEditable{Through: types.NewMonth(2024, 4)})
	test.AssertHTTPStatus(suite.T(), http.StatusCreated, &recorder)

	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Empty(suite.T(), response.Data)
}

func (suite *TestSuiteStandard) TestGenerateOnPlainBill() {
	bill := suite.createTestBill(v1.PayableBillEditable{Description: "Avulsa"})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost,
		fmt.Sprintf("/v1/payable-bills/%s/generate", bill.ID),
		v1.GenerateEditable{Through: types.NewMonth(2024, 4)})
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &recorder)
}

func (suite *TestSuiteStandard) TestUnlinkBill() {
	bill := suite.createTestBill(v1.PayableBillEditable{Description: "Conta de luz"})
	transaction := suite.createTestTransaction(v1.TransactionEditable{Type: "expense", Amount: decimal.NewFromInt(100)})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost,
		fmt.Sprintf("/v1/transactions/%s/link-bill", transaction.ID),
		v1.BillLinkEditable{BillID: ezID(bill.ID)})
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	recorder = test.Request(suite.T(), suite.router, http.MethodPost,
		fmt.Sprintf("/v1/payable-bills/%s/unlink", bill.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &recorder)

	var response v1.PayableBillResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.False(suite.T(), response.Data.Paid)
	assert.Nil(suite.T(), response.Data.TransactionID)
}

func (suite *TestSuiteStandard) TestUnlinkBillNotLinked() {
	bill := suite.createTestBill(v1.PayableBillEditable{Description: "Nunca paga"})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost,
		fmt.Sprintf("/v1/payable-bills/%s/unlink", bill.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &recorder)
}

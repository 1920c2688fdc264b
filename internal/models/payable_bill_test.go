package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tesouraria/backend/internal/models"
)

func (suite *TestSuiteStandard) TestPayableBillStatus() {
	due := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	bill := suite.createTestPayableBill(models.PayableBill{DueDate: due})

	assert.Equal(suite.T(), models.BillPending, bill.Status(due.AddDate(0, 0, -1)))
	assert.Equal(suite.T(), models.BillOverdue, bill.Status(due.AddDate(0, 0, 1)))

	bill.Paid = true
	assert.Equal(suite.T(), models.BillPaid, bill.Status(due.AddDate(0, 0, 1)), "paid wins over overdue")
}

func (suite *TestSuiteStandard) TestPayableBillAmountNotPositive() {
	bill := models.PayableBill{
		Description: "free lunch",
		Amount:      decimal.Zero,
		DueDate:     time.Now(),
	}
	err := models.DB.Create(&bill).Error

	assert.ErrorIs(suite.T(), err, models.ErrAmountNotPositive)
}

func (suite *TestSuiteStandard) TestPayableBillGrouped() {
	plain := suite.createTestPayableBill(models.PayableBill{})
	assert.False(suite.T(), plain.Grouped())

	groupID := uuid.New()
	installment := suite.createTestPayableBill(models.PayableBill{
		InstallmentGroupID: &groupID,
		InstallmentNumber:  1,
		InstallmentTotal:   3,
	})
	assert.True(suite.T(), installment.Grouped())

	recurringID := uuid.New()
	recurring := suite.createTestPayableBill(models.PayableBill{RecurringID: &recurringID})
	assert.True(suite.T(), recurring.Grouped())
}

func (suite *TestSuiteStandard) TestCategoryTypeDefaultsToBoth() {
	category := suite.createTestCategory(models.Category{Name: "Diversos"})
	assert.Equal(suite.T(), models.CategoryBoth, category.Type)
}

func (suite *TestSuiteStandard) TestCategoryTypeInvalid() {
	category := models.Category{Name: "Inválida", Type: "sideways"}
	err := models.DB.Create(&category).Error

	assert.ErrorIs(suite.T(), err, models.ErrCategoryTypeInvalid)
}

func (suite *TestSuiteStandard) TestCategoryNameNotUnique() {
	_ = suite.createTestCategory(models.Category{Name: "Eventos"})

	category := models.Category{Name: "Eventos"}
	err := models.DB.Create(&category).Error

	assert.ErrorIs(suite.T(), err, models.ErrCategoryNameNotUnique)
}

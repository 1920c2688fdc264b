package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tesouraria/backend/internal/models"
)

func (suite *TestSuiteStandard) TestTransactionTypeInvalid() {
	account := suite.createTestAccount(models.Account{})
	category := suite.createTestCategory(models.Category{})

	transaction := models.Transaction{
		Type:       "refund",
		Amount:     decimal.NewFromInt(10),
		AccountID:  account.ID,
		CategoryID: category.ID,
	}
	err := models.DB.Create(&transaction).Error

	assert.ErrorIs(suite.T(), err, models.ErrTransactionTypeInvalid)
}

func (suite *TestSuiteStandard) TestTransactionAmountNotPositive() {
	account := suite.createTestAccount(models.Account{})
	category := suite.createTestCategory(models.Category{})

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-7)} {
		transaction := models.Transaction{
			Type:       models.TransactionExpense,
			Amount:     amount,
			AccountID:  account.ID,
			CategoryID: category.ID,
		}
		err := models.DB.Create(&transaction).Error

		assert.ErrorIs(suite.T(), err, models.ErrAmountNotPositive)
	}
}

func (suite *TestSuiteStandard) TestTransactionReferences() {
	account := suite.createTestAccount(models.Account{})
	category := suite.createTestCategory(models.Category{})

	transaction := models.Transaction{
		Type:       models.TransactionExpense,
		Amount:     decimal.NewFromInt(10),
		AccountID:  uuid.New(),
		CategoryID: category.ID,
	}
	err := models.DB.Create(&transaction).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound, "creation must fail for a non-existing account")

	transaction = models.Transaction{
		Type:       models.TransactionExpense,
		Amount:     decimal.NewFromInt(10),
		AccountID:  account.ID,
		CategoryID: uuid.New(),
	}
	err = models.DB.Create(&transaction).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound, "creation must fail for a non-existing category")
}

func (suite *TestSuiteStandard) TestTransactionDateDefaultsToNow() {
	account := suite.createTestAccount(models.Account{})
	category := suite.createTestCategory(models.Category{})

	transaction := suite.createTestTransaction(models.Transaction{
		AccountID:  account.ID,
		CategoryID: category.ID,
	})

	assert.WithinDuration(suite.T(), time.Now(), transaction.Date, time.Minute)
	assert.Equal(suite.T(), time.UTC, transaction.Date.Location())
}

func (suite *TestSuiteStandard) TestTransactionDateUTC() {
	account := suite.createTestAccount(models.Account{})
	category := suite.createTestCategory(models.Category{})

	tz, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		suite.Assert().FailNow("Timezone could not be loaded", err)
	}

	transaction := suite.createTestTransaction(models.Transaction{
		Date:       time.Date(2024, 1, 7, 21, 0, 0, 0, tz),
		AccountID:  account.ID,
		CategoryID: category.ID,
	})

	var reloaded models.Transaction
	err = models.DB.First(&reloaded, transaction.ID).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), time.UTC, reloaded.Date.Location())
}

func (suite *TestSuiteStandard) TestTransactionTags() {
	account := suite.createTestAccount(models.Account{})
	category := suite.createTestCategory(models.Category{})
	urgent := suite.createTestTag(models.Tag{Name: "urgente"})
	event := suite.createTestTag(models.Tag{Name: "evento"})

	transaction := suite.createTestTransaction(models.Transaction{
		AccountID:  account.ID,
		CategoryID: category.ID,
		Tags:       []models.Tag{urgent, event},
	})

	var reloaded models.Transaction
	err := models.DB.Preload("Tags").First(&reloaded, transaction.ID).Error
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), reloaded.Tags, 2)
}

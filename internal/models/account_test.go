package models_test

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tesouraria/backend/internal/models"
)

func (suite *TestSuiteStandard) TestAccountTrimWhitespace() {
	name := "\t Conta corrente   "
	note := " Some more whitespace in the notes    "

	account := suite.createTestAccount(models.Account{
		Name: name,
		Note: note,
	})

	assert.Equal(suite.T(), strings.TrimSpace(name), account.Name)
	assert.Equal(suite.T(), strings.TrimSpace(note), account.Note)
}

func (suite *TestSuiteStandard) TestAccountNameNotUnique() {
	_ = suite.createTestAccount(models.Account{Name: "Caixa"})

	account := models.Account{Name: "Caixa"}
	err := models.DB.Create(&account).Error

	assert.ErrorIs(suite.T(), err, models.ErrAccountNameNotUnique)
}

func (suite *TestSuiteStandard) TestAccountBalance() {
	account := suite.createTestAccount(models.Account{
		Name:           "TestAccountBalance",
		InitialBalance: decimal.NewFromInt(170),
	})
	category := suite.createTestCategory(models.Category{})

	_ = suite.createTestTransaction(models.Transaction{
		Type:       models.TransactionIncome,
		Amount:     decimal.NewFromFloat(32.17),
		Date:       time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		AccountID:  account.ID,
		CategoryID: category.ID,
	})

	_ = suite.createTestTransaction(models.Transaction{
		Type:       models.TransactionExpense,
		Amount:     decimal.NewFromFloat(17.45),
		Date:       time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		AccountID:  account.ID,
		CategoryID: category.ID,
	})

	// A transaction after the balance date must not be counted
	_ = suite.createTestTransaction(models.Transaction{
		Type:       models.TransactionExpense,
		Amount:     decimal.NewFromInt(1000),
		Date:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		AccountID:  account.ID,
		CategoryID: category.ID,
	})

	balance, err := account.Balance(models.DB, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.Nil(suite.T(), err)

	expected := decimal.NewFromFloat(184.72)
	assert.True(suite.T(), balance.Equal(expected), "Balance for account is not correct. Should be: %v but is %v", expected, balance)
}

func (suite *TestSuiteStandard) TestAccountBalanceEmpty() {
	account := suite.createTestAccount(models.Account{
		Name:           "TestAccountBalanceEmpty",
		InitialBalance: decimal.NewFromFloat(12.34),
	})

	balance, err := account.Balance(models.DB, time.Now())
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), balance.Equal(decimal.NewFromFloat(12.34)))
}

func (suite *TestSuiteStandard) TestAccountTransactions() {
	account := suite.createTestAccount(models.Account{Name: "TestAccountTransactions"})
	category := suite.createTestCategory(models.Category{})

	_ = suite.createTestTransaction(models.Transaction{AccountID: account.ID, CategoryID: category.ID})
	_ = suite.createTestTransaction(models.Transaction{AccountID: account.ID, CategoryID: category.ID})

	assert.Len(suite.T(), account.Transactions(models.DB), 2)
}

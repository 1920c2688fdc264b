package models_test

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/tesouraria/backend/internal/models"
)

func (suite *TestSuiteStandard) TestIDGenerated() {
	account := suite.createTestAccount(models.Account{Name: "ID generation"})
	assert.NotEqual(suite.T(), uuid.Nil, account.ID)
}

func (suite *TestSuiteStandard) TestIDKept() {
	id := uuid.New()
	account := suite.createTestAccount(models.Account{
		DefaultModel: models.DefaultModel{ID: id},
		Name:         "ID kept",
	})
	assert.Equal(suite.T(), id, account.ID)
}

func (suite *TestSuiteStandard) TestResourceNotFoundMessage() {
	var bill models.PayableBill
	err := models.DB.First(&bill, uuid.New()).Error

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Contains(suite.T(), err.Error(), "payable bill", "the table name is part of the message")
}

func (suite *TestSuiteStandard) TestClosedDatabase() {
	suite.CloseDB()

	var accounts []models.Account
	err := models.DB.Find(&accounts).Error

	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}

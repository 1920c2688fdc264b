package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tesouraria/backend/internal/models"
	"github.com/tesouraria/backend/internal/types"
)

func (suite *TestSuiteStandard) TestMemberJoinDateRequired() {
	member := models.Member{Name: "No join date"}
	err := models.DB.Create(&member).Error

	assert.ErrorIs(suite.T(), err, models.ErrMemberJoinDateMissing)
}

func (suite *TestSuiteStandard) TestMemberEffectiveStart() {
	joined := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	member := suite.createTestMember(models.Member{JoinedOn: joined})
	assert.True(suite.T(), member.EffectiveStart().Equal(joined))

	reactivated := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	member.ReactivatedOn = &reactivated
	err := models.DB.Save(&member).Error
	assert.Nil(suite.T(), err)

	assert.True(suite.T(), member.EffectiveStart().Equal(reactivated), "the reactivation date replaces the join date as the effective start")
}

func (suite *TestSuiteStandard) TestMemberPayments() {
	member := suite.createTestMember(models.Member{})

	_ = suite.createTestPayment(models.Payment{
		MemberID:       member.ID,
		ReferenceMonth: types.NewMonth(2023, 1),
	})
	_ = suite.createTestPayment(models.Payment{
		MemberID:       member.ID,
		ReferenceMonth: types.NewMonth(2023, 2),
	})

	payments, err := member.Payments(models.DB)
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), payments, 2)
}

func (suite *TestSuiteStandard) TestPaymentMemberRequired() {
	payment := models.Payment{
		MemberID:       uuid.New(),
		ReferenceMonth: types.NewMonth(2023, 1),
		Amount:         decimal.NewFromInt(50),
	}
	err := models.DB.Create(&payment).Error

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestPaymentMonthRequired() {
	member := suite.createTestMember(models.Member{})

	payment := models.Payment{
		MemberID: member.ID,
		Amount:   decimal.NewFromInt(50),
	}
	err := models.DB.Create(&payment).Error

	assert.ErrorIs(suite.T(), err, models.ErrPaymentMonthMissing)
}

func (suite *TestSuiteStandard) TestPaymentAmountNotPositive() {
	member := suite.createTestMember(models.Member{})

	payment := models.Payment{
		MemberID:       member.ID,
		ReferenceMonth: types.NewMonth(2023, 1),
		Amount:         decimal.NewFromInt(-50),
	}
	err := models.DB.Create(&payment).Error

	assert.ErrorIs(suite.T(), err, models.ErrAmountNotPositive)
}

func (suite *TestSuiteStandard) TestPaymentPaidOnDefaultsToNow() {
	member := suite.createTestMember(models.Member{})

	payment := suite.createTestPayment(models.Payment{MemberID: member.ID})

	assert.WithinDuration(suite.T(), time.Now(), payment.PaidOn, time.Minute)
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tesouraria/backend/internal/types"
	"gorm.io/gorm"
)

// Payment represents a member's dues payment for one reference month.
//
// TransactionID stays nil until the payment is linked to the income
// transaction that settled it.
type Payment struct {
	DefaultModel
	MemberID       uuid.UUID `gorm:"index"`
	Member         Member    `json:"-"`
	ReferenceMonth types.Month
	Amount         decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	PaidOn         time.Time
	TransactionID  *uuid.UUID `gorm:"index"`
}

// BeforeSave validates the amount and the reference month and normalizes
// the payment date to UTC.
func (p *Payment) BeforeSave(_ *gorm.DB) error {
	if !p.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if p.ReferenceMonth.IsZero() {
		return ErrPaymentMonthMissing
	}

	if p.PaidOn.IsZero() {
		p.PaidOn = time.Now().In(time.UTC)
	} else {
		p.PaidOn = p.PaidOn.In(time.UTC)
	}

	return nil
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Payment)
	return tx.First(&Member{}, toSave.MemberID).Error
}

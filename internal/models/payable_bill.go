package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BillStatus is the state of a payable bill.
//
// Only "paid" is stored. "pending" and "overdue" are computed from the due
// date whenever the bill is read, so a bill becomes overdue without any
// writes happening.
type BillStatus string

const (
	BillPending BillStatus = "pending"
	BillOverdue BillStatus = "overdue"
	BillPaid    BillStatus = "paid"
)

// PayableBill represents an obligation to pay a third party. Bills can be
// one of a series of installments or occurrences of a recurring bill, in
// which case they share an InstallmentGroupID or RecurringID.
type PayableBill struct {
	DefaultModel
	Description string
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	DueDate     time.Time
	Note        string

	Paid          bool
	TransactionID *uuid.UUID `gorm:"index"` // the expense transaction that settled the bill

	CategoryID *uuid.UUID
	Category   *Category `json:"-"`
	PayeeID    *uuid.UUID
	Payee      *Payee `json:"-"`

	InstallmentGroupID *uuid.UUID `gorm:"index"`
	InstallmentNumber  int
	InstallmentTotal   int
	RecurringID        *uuid.UUID `gorm:"index"`
}

// BeforeSave validates the amount, trims strings and normalizes the due
// date to UTC.
func (b *PayableBill) BeforeSave(_ *gorm.DB) error {
	b.Description = strings.TrimSpace(b.Description)
	b.Note = strings.TrimSpace(b.Note)

	if !b.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	b.DueDate = b.DueDate.In(time.UTC)

	return nil
}

// AfterFind updates the due date to use UTC as timezone, not +0000.
func (b *PayableBill) AfterFind(_ *gorm.DB) error {
	b.DueDate = b.DueDate.In(time.UTC)
	return nil
}

// Status computes the state of the bill at the given time.
// paid is terminal except for an explicit unlink.
func (b PayableBill) Status(now time.Time) BillStatus {
	if b.Paid {
		return BillPaid
	}

	if now.After(b.DueDate) {
		return BillOverdue
	}

	return BillPending
}

// Grouped reports whether the bill belongs to an installment or
// recurring series.
func (b PayableBill) Grouped() bool {
	return b.InstallmentGroupID != nil || b.RecurringID != nil
}

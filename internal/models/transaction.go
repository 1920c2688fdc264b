package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// TransactionType classifies the effect a transaction has on its account.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction represents money entering or leaving one of the
// organization's accounts.
type Transaction struct {
	DefaultModel
	Type          TransactionType `gorm:"index"`
	Date          time.Time
	Amount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Note          string
	AttachmentURL string
	AccountID     uuid.UUID
	Account       Account `json:"-"`
	CategoryID    uuid.UUID
	Category      Category `json:"-"`
	PayeeID       *uuid.UUID
	Payee         *Payee `json:"-"`
	ProjectID     *uuid.UUID
	Project       *Project `json:"-"`
	Tags          []Tag    `gorm:"many2many:transaction_tags"`

	// Set when the transaction settles a payable bill. The bill's
	// description, amount, category and payee are copied onto the
	// transaction when the link is made, not referenced live.
	PayableBillID *uuid.UUID `gorm:"index"`

	// Transactions of a transfer pair share a TransferID. One is the
	// expense leg on the source account, the other the income leg on
	// the destination account.
	TransferID *uuid.UUID `gorm:"index"`
}

// BeforeSave normalizes the date to UTC and validates type and amount.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	if !slices.Contains([]TransactionType{TransactionIncome, TransactionExpense}, t.Type) {
		return ErrTransactionTypeInvalid
	}

	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Transaction)
	return t.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the transaction before
// committing an update to the database.
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Transaction)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("AccountID") {
		err := tx.First(&Account{}, toSave.AccountID).Error
		if err != nil {
			return err
		}
	}

	if tx.Statement.Changed("CategoryID") {
		return tx.First(&Category{}, toSave.CategoryID).Error
	}

	return nil
}

// AfterFind updates the date to use UTC as timezone, not +0000.
func (t *Transaction) AfterFind(_ *gorm.DB) error {
	t.Date = t.Date.In(time.UTC)
	return nil
}

// checkIntegrity verifies references to other resources
func (t *Transaction) checkIntegrity(tx *gorm.DB, toSave Transaction) error {
	err := tx.First(&Account{}, toSave.AccountID).Error
	if err != nil {
		return err
	}

	return tx.First(&Category{}, toSave.CategoryID).Error
}

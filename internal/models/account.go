package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account represents a bank account or cash box of the organization.
type Account struct {
	DefaultModel
	Name           string `gorm:"uniqueIndex:account_name"`
	Note           string
	InitialBalance decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Archived       bool
}

// BeforeSave trims whitespace from all strings.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Note = strings.TrimSpace(a.Note)

	return nil
}

// Transactions returns all transactions for this account.
func (a Account) Transactions(db *gorm.DB) []Transaction {
	var transactions []Transaction

	db.Where(Transaction{AccountID: a.ID}).Find(&transactions)
	return transactions
}

// Balance calculates the balance of the account at a specific point in time,
// derived from the initial balance and all transactions up to that point.
// Income transactions add to the balance, expense transactions subtract.
func (a Account) Balance(db *gorm.DB, at time.Time) (balance decimal.Decimal, err error) {
	var transactions []Transaction

	err = db.
		Where(Transaction{AccountID: a.ID}).
		Where("datetime(transactions.date) <= datetime(?)", at).
		Find(&transactions).Error
	if err != nil {
		return decimal.Zero, err
	}

	balance = a.InitialBalance
	for _, t := range transactions {
		if t.Type == TransactionIncome {
			balance = balance.Add(t.Amount)
		} else {
			balance = balance.Sub(t.Amount)
		}
	}

	return
}

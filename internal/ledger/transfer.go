package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tesouraria/backend/internal/models"
	"gorm.io/gorm"
)

// TransferPair is the two legs of a transfer between two owned accounts.
type TransferPair struct {
	TransferID uuid.UUID          `json:"transferId"`
	Outgoing   models.Transaction `json:"outgoing"`
	Incoming   models.Transaction `json:"incoming"`
}

// CreateTransferPair books a transfer between two accounts as two
// transactions sharing a transfer ID: an expense on the source account and
// an income on the destination account with identical amount and date.
func CreateTransferPair(db *gorm.DB, fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal, date time.Time, note string) (TransferPair, error) {
	if fromAccountID == toAccountID {
		return TransferPair{}, ErrInvalidTransfer
	}

	if !amount.IsPositive() {
		return TransferPair{}, models.ErrAmountNotPositive
	}

	transferID := uuid.New()
	pair := TransferPair{TransferID: transferID}

	err := db.Transaction(func(tx *gorm.DB) error {
		category, err := transferCategory(tx)
		if err != nil {
			return err
		}

		pair.Outgoing = models.Transaction{
			Type:       models.TransactionExpense,
			Date:       date,
			Amount:     amount,
			Note:       note,
			AccountID:  fromAccountID,
			CategoryID: category.ID,
			TransferID: &transferID,
		}
		err = tx.Create(&pair.Outgoing).Error
		if err != nil {
			return err
		}

		pair.Incoming = models.Transaction{
			Type:       models.TransactionIncome,
			Date:       date,
			Amount:     amount,
			Note:       note,
			AccountID:  toAccountID,
			CategoryID: category.ID,
			TransferID: &transferID,
		}
		return tx.Create(&pair.Incoming).Error
	})
	if err != nil {
		return TransferPair{}, err
	}

	return pair, nil
}

// DeleteTransfer removes both legs of a transfer pair. A lone transfer leg
// is never left behind.
func DeleteTransfer(db *gorm.DB, transferID uuid.UUID) error {
	var legs []models.Transaction
	err := db.Where("transfer_id = ?", transferID).Find(&legs).Error
	if err != nil {
		return err
	}

	if len(legs) == 0 {
		return db.Where("transfer_id = ?", transferID).First(&models.Transaction{}).Error
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, leg := range legs {
			leg := leg
			err := tx.Delete(&leg).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// transferCategory resolves the category transfer legs are booked under,
// creating it on first use.
func transferCategory(tx *gorm.DB) (models.Category, error) {
	var category models.Category
	err := tx.Where(models.Category{Name: models.TransferCategoryName}).First(&category).Error
	if err == nil {
		return category, nil
	}

	if !errors.Is(err, models.ErrResourceNotFound) {
		return models.Category{}, err
	}

	category = models.Category{
		Name: models.TransferCategoryName,
		Type: models.CategoryBoth,
	}
	err = tx.Create(&category).Error

	return category, err
}

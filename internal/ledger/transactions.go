package ledger

import (
	"github.com/google/uuid"
	"github.com/tesouraria/backend/internal/models"
	"gorm.io/gorm"
)

// DeleteTransaction removes a transaction and unwinds its links: payments it
// settled are kept but unlinked, a settled bill goes back to unpaid.
//
// Transfer legs are refused, a transfer is deleted as a pair through
// DeleteTransfer.
func DeleteTransaction(db *gorm.DB, transactionID uuid.UUID) error {
	var transaction models.Transaction
	err := db.First(&transaction, transactionID).Error
	if err != nil {
		return err
	}

	if transaction.TransferID != nil {
		return ErrTransferLeg
	}

	return db.Transaction(func(tx *gorm.DB) error {
		// Column-only updates: validation hooks must not run against the
		// empty model values.
		err := tx.Session(&gorm.Session{SkipHooks: true}).
			Model(&models.Payment{}).
			Where("transaction_id = ?", transactionID).
			Update("transaction_id", nil).Error
		if err != nil {
			return err
		}

		err = tx.Session(&gorm.Session{SkipHooks: true}).
			Model(&models.PayableBill{}).
			Where("transaction_id = ?", transactionID).
			Updates(map[string]any{"paid": false, "transaction_id": nil}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&transaction).Error
	})
}

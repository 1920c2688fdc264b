package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tesouraria/backend/internal/models"
	"github.com/tesouraria/backend/internal/types"
	"gorm.io/gorm"
)

// DeleteScope selects how many bills of a series a delete affects.
type DeleteScope string

const (
	ScopeSingle        DeleteScope = "single"
	ScopeThisAndFuture DeleteScope = "this-and-future"
)

// LinkToBill marks a payable bill as settled by an expense transaction.
//
// The bill's description, amount, category and payee are copied onto the
// transaction at link time. Later edits of the bill do not propagate.
func LinkToBill(db *gorm.DB, transactionID, billID uuid.UUID) error {
	var transaction models.Transaction
	err := db.First(&transaction, transactionID).Error
	if err != nil {
		return err
	}

	if transaction.Type != models.TransactionExpense {
		return ErrNotExpense
	}

	var bill models.PayableBill
	err = db.First(&bill, billID).Error
	if err != nil {
		return err
	}

	if bill.TransactionID != nil && *bill.TransactionID != transactionID {
		return ErrBillAlreadyLinked
	}

	// A transaction settles at most one bill.
	if transaction.PayableBillID != nil && *transaction.PayableBillID != billID {
		return ErrReferentialConflict
	}

	return db.Transaction(func(tx *gorm.DB) error {
		bill.Paid = true
		bill.TransactionID = &transactionID
		err := tx.Save(&bill).Error
		if err != nil {
			return err
		}

		transaction.Note = bill.Description
		transaction.Amount = bill.Amount
		if bill.CategoryID != nil {
			transaction.CategoryID = *bill.CategoryID
		}
		if bill.PayeeID != nil {
			transaction.PayeeID = bill.PayeeID
		}
		transaction.PayableBillID = &bill.ID

		return tx.Save(&transaction).Error
	})
}

// UnlinkBill reverses a bill link. This is the only way out of the
// paid state.
func UnlinkBill(db *gorm.DB, billID uuid.UUID) error {
	var bill models.PayableBill
	err := db.First(&bill, billID).Error
	if err != nil {
		return err
	}

	if bill.TransactionID == nil {
		return ErrBillNotLinked
	}

	return db.Transaction(func(tx *gorm.DB) error {
		// Column-only update: validation hooks must not run against the
		// empty model value.
		err := tx.Session(&gorm.Session{SkipHooks: true}).
			Model(&models.Transaction{}).
			Where("id = ?", *bill.TransactionID).
			Update("payable_bill_id", nil).Error
		if err != nil {
			return err
		}

		bill.Paid = false
		bill.TransactionID = nil
		return tx.Save(&bill).Error
	})
}

// DeleteBillWithScope deletes a payable bill.
//
// Bills of an installment or recurring series require an explicit scope.
// The this-and-future scope deletes every bill of the series with a due
// date at or after the given bill's. Bills linked to a transaction are
// never deleted, the caller has to unlink first.
func DeleteBillWithScope(db *gorm.DB, billID uuid.UUID, scope DeleteScope) error {
	var bill models.PayableBill
	err := db.First(&bill, billID).Error
	if err != nil {
		return err
	}

	switch scope {
	case ScopeSingle, ScopeThisAndFuture:
	case "":
		if bill.Grouped() {
			return ErrScopeRequired
		}
		scope = ScopeSingle
	default:
		return ErrScopeInvalid
	}

	if scope == ScopeSingle {
		if bill.TransactionID != nil {
			return ErrReferentialConflict
		}

		return db.Delete(&bill).Error
	}

	if !bill.Grouped() {
		return ErrScopeNeedsGroup
	}

	return db.Transaction(func(tx *gorm.DB) error {
		query := tx.Where("datetime(due_date) >= datetime(?)", bill.DueDate)
		if bill.InstallmentGroupID != nil {
			query = query.Where("installment_group_id = ?", *bill.InstallmentGroupID)
		} else {
			query = query.Where("recurring_id = ?", *bill.RecurringID)
		}

		var bills []models.PayableBill
		err := query.Find(&bills).Error
		if err != nil {
			return err
		}

		for _, b := range bills {
			if b.TransactionID != nil {
				return ErrReferentialConflict
			}
		}

		for _, b := range bills {
			b := b
			err := tx.Delete(&b).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// CreateInstallments splits an amount into count monthly bills sharing an
// installment group. Rounding differences go into the last installment so
// the installments add up to the total exactly.
func CreateInstallments(db *gorm.DB, description string, total decimal.Decimal, count int, firstDue time.Time, categoryID, payeeID *uuid.UUID) ([]models.PayableBill, error) {
	if count < 2 {
		return nil, ErrInstallmentCount
	}

	if !total.IsPositive() {
		return nil, models.ErrAmountNotPositive
	}

	groupID := uuid.New()
	each := total.DivRound(decimal.NewFromInt(int64(count)), 2)
	last := total.Sub(each.Mul(decimal.NewFromInt(int64(count - 1))))

	var bills []models.PayableBill
	err := db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < count; i++ {
			amount := each
			if i == count-1 {
				amount = last
			}

			bill := models.PayableBill{
				Description:        description,
				Amount:             amount,
				DueDate:            firstDue.AddDate(0, i, 0),
				CategoryID:         categoryID,
				PayeeID:            payeeID,
				InstallmentGroupID: &groupID,
				InstallmentNumber:  i + 1,
				InstallmentTotal:   count,
			}
			err := tx.Create(&bill).Error
			if err != nil {
				return err
			}

			bills = append(bills, bill)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return bills, nil
}

// GenerateRecurring extends a recurring bill series with one bill per month
// through the given month. The newest existing occurrence is the template.
func GenerateRecurring(db *gorm.DB, recurringID uuid.UUID, through types.Month) ([]models.PayableBill, error) {
	var latest models.PayableBill
	err := db.
		Where("recurring_id = ?", recurringID).
		Order("datetime(due_date) DESC").
		First(&latest).Error
	if err != nil {
		return nil, err
	}

	var created []models.PayableBill
	err = db.Transaction(func(tx *gorm.DB) error {
		due := latest.DueDate.AddDate(0, 1, 0)
		for !types.MonthOf(due).After(through) {
			bill := models.PayableBill{
				Description: latest.Description,
				Amount:      latest.Amount,
				DueDate:     due,
				CategoryID:  latest.CategoryID,
				PayeeID:     latest.PayeeID,
				RecurringID: latest.RecurringID,
			}
			err := tx.Create(&bill).Error
			if err != nil {
				return err
			}

			created = append(created, bill)
			due = due.AddDate(0, 1, 0)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Package ledger keeps transactions consistent with the payments, bills and
// transfer siblings they settle.
//
// Every multi-step operation runs inside one database transaction. On any
// failure mid-sequence the whole operation rolls back, a partially applied
// link set is never observable.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tesouraria/backend/internal/models"
	"github.com/tesouraria/backend/internal/types"
	"gorm.io/gorm"
)

// PaymentLink is one requested link between an income transaction and a
// member's dues payment for a reference month.
type PaymentLink struct {
	MemberID       uuid.UUID       `json:"memberId"`
	ReferenceMonth types.Month     `json:"referenceMonth" example:"2024-01"`
	Amount         decimal.Decimal `json:"amount" example:"50"`
}

// LinkResult is the committed state after SetPaymentLinks.
//
// Warning is ErrInconsistentLinkAmount when the linked payments do not add
// up to the transaction amount. The operation has committed regardless.
type LinkResult struct {
	Payments []models.Payment
	Warning  error
}

type linkKey struct {
	member uuid.UUID
	month  string
}

// SetPaymentLinks replaces the set of payments linked to an income
// transaction with the requested set.
//
// The requested set is diffed against the currently linked payments by
// member and reference month: new links create payment rows, matched rows
// are updated, rows no longer requested are deleted. The operation is
// idempotent.
func SetPaymentLinks(db *gorm.DB, transactionID uuid.UUID, links []PaymentLink, date time.Time) (LinkResult, error) {
	var transaction models.Transaction
	err := db.First(&transaction, transactionID).Error
	if err != nil {
		return LinkResult{}, err
	}

	if transaction.Type != models.TransactionIncome {
		return LinkResult{}, ErrNotIncome
	}

	requested := make(map[linkKey]PaymentLink, len(links))
	for _, link := range links {
		key := linkKey{member: link.MemberID, month: link.ReferenceMonth.String()}
		if _, ok := requested[key]; ok {
			return LinkResult{}, fmt.Errorf("%w: member %s, month %s", ErrDuplicateLink, link.MemberID, link.ReferenceMonth)
		}
		requested[key] = link
	}

	var result LinkResult
	err = db.Transaction(func(tx *gorm.DB) error {
		var existing []models.Payment
		err := tx.Where(models.Payment{TransactionID: &transactionID}).Find(&existing).Error
		if err != nil {
			return err
		}

		matched := make(map[linkKey]bool, len(existing))
		for _, payment := range existing {
			payment := payment
			key := linkKey{member: payment.MemberID, month: payment.ReferenceMonth.String()}

			link, keep := requested[key]
			if !keep {
				err := tx.Delete(&payment).Error
				if err != nil {
					return err
				}
				continue
			}

			matched[key] = true
			if !payment.Amount.Equal(link.Amount) || !payment.PaidOn.Equal(date) {
				payment.Amount = link.Amount
				payment.PaidOn = date
				err := tx.Save(&payment).Error
				if err != nil {
					return err
				}
			}

			result.Payments = append(result.Payments, payment)
		}

		for _, link := range links {
			key := linkKey{member: link.MemberID, month: link.ReferenceMonth.String()}
			if matched[key] {
				continue
			}

			payment := models.Payment{
				MemberID:       link.MemberID,
				ReferenceMonth: link.ReferenceMonth,
				Amount:         link.Amount,
				PaidOn:         date,
				TransactionID:  &transactionID,
			}
			err := tx.Create(&payment).Error
			if err != nil {
				return err
			}

			result.Payments = append(result.Payments, payment)
		}

		return nil
	})
	if err != nil {
		return LinkResult{}, err
	}

	linked := decimal.Zero
	for _, payment := range result.Payments {
		linked = linked.Add(payment.Amount)
	}

	// A single partial payment is a regular partial dues payment. Only a
	// split across multiple payments is expected to add up to the
	// transaction amount.
	if len(result.Payments) > 1 && !linked.Equal(transaction.Amount) {
		result.Warning = fmt.Errorf("%w: linked %s, transaction amount %s", ErrInconsistentLinkAmount, linked, transaction.Amount)
	}

	return result, nil
}

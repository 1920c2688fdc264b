package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tesouraria/backend/internal/models"
)

// RevenueReport lists the income transactions of a date range. Rows that
// settle dues payments carry the paying member's name.
type RevenueReport struct {
	Kind  Kind            `json:"kind" example:"revenue"`
	Start time.Time       `json:"start"`
	End   time.Time       `json:"end"`
	Rows  []RevenueRow    `json:"rows"`
	Total decimal.Decimal `json:"total" example:"1250"`
}

type RevenueRow struct {
	TransactionID uuid.UUID       `json:"transactionId"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount" example:"50"`
	Note          string          `json:"note" example:"Mensalidade janeiro"`
	MemberName    string          `json:"memberName,omitempty" example:"Maria Souza"`
}

// BuildRevenue aggregates the income transactions within [start, end].
// Transfer legs are not revenue and are skipped. The member name is joined
// through the payments linked to each transaction.
func BuildRevenue(transactions []models.Transaction, payments []models.Payment, members []models.Member, start, end time.Time) RevenueReport {
	memberNames := make(map[uuid.UUID]string, len(members))
	for _, member := range members {
		memberNames[member.ID] = member.Name
	}

	// First linked payment wins. A transaction split across members is
	// displayed under the member it was recorded for first.
	nameByTransaction := make(map[uuid.UUID]string)
	for _, payment := range payments {
		if payment.TransactionID == nil {
			continue
		}
		if _, ok := nameByTransaction[*payment.TransactionID]; ok {
			continue
		}
		nameByTransaction[*payment.TransactionID] = memberNames[payment.MemberID]
	}

	report := RevenueReport{
		Kind:  KindRevenue,
		Start: start,
		End:   end,
		Rows:  []RevenueRow{},
		Total: decimal.Zero,
	}

	for _, transaction := range transactions {
		if transaction.Type != models.TransactionIncome || transaction.TransferID != nil {
			continue
		}

		if transaction.Date.Before(start) || transaction.Date.After(end) {
			continue
		}

		report.Rows = append(report.Rows, RevenueRow{
			TransactionID: transaction.ID,
			Date:          transaction.Date,
			Amount:        transaction.Amount,
			Note:          transaction.Note,
			MemberName:    nameByTransaction[transaction.ID],
		})
		report.Total = report.Total.Add(transaction.Amount)
	}

	return report
}

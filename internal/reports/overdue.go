package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tesouraria/backend/internal/dues"
)

// OverdueReport is a snapshot of every non-archived member that owes dues.
type OverdueReport struct {
	Kind        Kind            `json:"kind" example:"overdue"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Rows        []OverdueRow    `json:"rows"`
	GrandTotal  decimal.Decimal `json:"grandTotal" example:"350"`
}

type OverdueRow struct {
	MemberID      uuid.UUID           `json:"memberId"`
	Name          string              `json:"name" example:"Maria Souza"`
	Status        dues.PaymentStatus  `json:"paymentStatus" example:"Atrasado"`
	OverdueMonths []dues.OverdueMonth `json:"overdueMonths"`
	TotalDue      decimal.Decimal     `json:"totalDue" example:"150"`
}

// BuildOverdue filters the derived member standings down to the members
// that owe anything and sums the grand total.
func BuildOverdue(standings []dues.Standing, now time.Time) OverdueReport {
	report := OverdueReport{
		Kind:        KindOverdue,
		GeneratedAt: now,
		Rows:        []OverdueRow{},
		GrandTotal:  decimal.Zero,
	}

	for _, standing := range standings {
		if standing.Member.Archived || !standing.TotalDue.IsPositive() {
			continue
		}

		report.Rows = append(report.Rows, OverdueRow{
			MemberID:      standing.Member.ID,
			Name:          standing.Member.Name,
			Status:        standing.Status,
			OverdueMonths: standing.OverdueMonths,
			TotalDue:      standing.TotalDue,
		})
		report.GrandTotal = report.GrandTotal.Add(standing.TotalDue)
	}

	return report
}

package reports

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tesouraria/backend/internal/models"
)

// DREReport is the income statement (Demonstrativo de Resultados).
//
// Income is partitioned into gross revenue and other income by the
// GrossRevenue flag on the categories. All expenses are flattened into
// operating expenses. Every section total equals the sum of its lines
// exactly, decimal arithmetic leaves no rounding drift.
type DREReport struct {
	Kind              Kind            `json:"kind" example:"dre"`
	Start             time.Time       `json:"start"`
	End               time.Time       `json:"end"`
	GrossRevenue      DRESection      `json:"grossRevenue"`
	OtherIncome       DRESection      `json:"otherIncome"`
	OperatingExpenses DRESection      `json:"operatingExpenses"`
	NetResult         decimal.Decimal `json:"netResult" example:"1730.45"`
}

type DRESection struct {
	Lines []DRELine       `json:"lines"`
	Total decimal.Decimal `json:"total" example:"2100"`
}

type DRELine struct {
	CategoryID uuid.UUID       `json:"categoryId"`
	Name       string          `json:"name" example:"Mensalidades"`
	Total      decimal.Decimal `json:"total" example:"1500"`
}

// BuildDRE aggregates the transactions of [start, end] into the income
// statement. Transfer legs move money between owned accounts and are
// skipped.
func BuildDRE(transactions []models.Transaction, categories []models.Category, start, end time.Time) DREReport {
	grossRevenue := make(map[uuid.UUID]bool, len(categories))
	names := make(map[uuid.UUID]string, len(categories))
	order := make(map[uuid.UUID]int, len(categories))
	for i, category := range categories {
		grossRevenue[category.ID] = category.GrossRevenue
		names[category.ID] = category.Name
		order[category.ID] = i
	}

	gross := map[uuid.UUID]decimal.Decimal{}
	other := map[uuid.UUID]decimal.Decimal{}
	operating := map[uuid.UUID]decimal.Decimal{}

	for _, transaction := range transactions {
		if transaction.TransferID != nil {
			continue
		}

		if transaction.Date.Before(start) || transaction.Date.After(end) {
			continue
		}

		switch {
		case transaction.Type == models.TransactionExpense:
			add(operating, transaction.CategoryID, transaction.Amount)
		case grossRevenue[transaction.CategoryID]:
			add(gross, transaction.CategoryID, transaction.Amount)
		default:
			add(other, transaction.CategoryID, transaction.Amount)
		}
	}

	report := DREReport{
		Kind:              KindDRE,
		Start:             start,
		End:               end,
		GrossRevenue:      section(gross, names, order),
		OtherIncome:       section(other, names, order),
		OperatingExpenses: section(operating, names, order),
	}
	report.NetResult = report.GrossRevenue.Total.
		Add(report.OtherIncome.Total).
		Sub(report.OperatingExpenses.Total)

	return report
}

func add(totals map[uuid.UUID]decimal.Decimal, categoryID uuid.UUID, amount decimal.Decimal) {
	totals[categoryID] = totals[categoryID].Add(amount)
}

// section turns per-category totals into a DRE section with lines ranked by
// total descending, ties in catalog order.
func section(totals map[uuid.UUID]decimal.Decimal, names map[uuid.UUID]string, order map[uuid.UUID]int) DRESection {
	result := DRESection{
		Lines: make([]DRELine, 0, len(totals)),
		Total: decimal.Zero,
	}

	for categoryID, total := range totals {
		result.Lines = append(result.Lines, DRELine{
			CategoryID: categoryID,
			Name:       names[categoryID],
			Total:      total,
		})
		result.Total = result.Total.Add(total)
	}

	sort.SliceStable(result.Lines, func(i, j int) bool {
		if !result.Lines[i].Total.Equal(result.Lines[j].Total) {
			return result.Lines[i].Total.GreaterThan(result.Lines[j].Total)
		}

		return order[result.Lines[i].CategoryID] < order[result.Lines[j].CategoryID]
	})

	return result
}

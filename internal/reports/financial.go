package reports

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tesouraria/backend/internal/models"
	"github.com/tesouraria/backend/internal/types"
	"golang.org/x/exp/slices"
)

// Dimension is the grouping axis of a financial report.
type Dimension string

const (
	DimensionCategory Dimension = "category"
	DimensionProject  Dimension = "project"
	DimensionTag      Dimension = "tag"
)

// FinancialFilter narrows the transaction set before grouping. Zero values
// mean "no restriction".
type FinancialFilter struct {
	Start      time.Time
	End        time.Time
	Type       models.TransactionType
	AccountIDs []uuid.UUID
	CategoryID *uuid.UUID
	ProjectID  *uuid.UUID
	TagIDs     []uuid.UUID
}

// CatalogEntry is one entry of the dimension's catalog, in first-seen
// (creation) order.
type CatalogEntry struct {
	ID   uuid.UUID
	Name string
}

// FinancialReport groups the filtered transactions by one dimension.
// Every catalog entry appears exactly once, entries without any matching
// activity are marked with NoActivity.
type FinancialReport struct {
	Kind      Kind             `json:"kind" example:"financial"`
	Dimension Dimension        `json:"dimension" example:"category"`
	Groups    []FinancialGroup `json:"groups"`
	Total     decimal.Decimal  `json:"total" example:"812.55"`
}

type FinancialGroup struct {
	EntryID    uuid.UUID       `json:"entryId"`
	Name       string          `json:"name" example:"Eventos"`
	Total      decimal.Decimal `json:"total" example:"310"`
	Count      int             `json:"count" example:"4"`
	NoActivity bool            `json:"noActivity" example:"false"`
	Months     []MonthTotal    `json:"months"`
}

type MonthTotal struct {
	Month types.Month     `json:"month" example:"2024-01"`
	Total decimal.Decimal `json:"total" example:"120"`
}

func (f FinancialFilter) matches(t models.Transaction) bool {
	if !f.Start.IsZero() && t.Date.Before(f.Start) {
		return false
	}

	if !f.End.IsZero() && t.Date.After(f.End) {
		return false
	}

	if f.Type != "" && t.Type != f.Type {
		return false
	}

	if len(f.AccountIDs) > 0 && !slices.Contains(f.AccountIDs, t.AccountID) {
		return false
	}

	if f.CategoryID != nil && t.CategoryID != *f.CategoryID {
		return false
	}

	if f.ProjectID != nil && (t.ProjectID == nil || *t.ProjectID != *f.ProjectID) {
		return false
	}

	for _, tagID := range f.TagIDs {
		if !hasTag(t, tagID) {
			return false
		}
	}

	return true
}

// BuildFinancial filters the transaction set and groups it along the given
// dimension. Groups are ranked by total descending, ties stay in catalog
// (first-seen) order.
func BuildFinancial(transactions []models.Transaction, catalog []CatalogEntry, dimension Dimension, filter FinancialFilter) FinancialReport {
	report := FinancialReport{
		Kind:      KindFinancial,
		Dimension: dimension,
		Groups:    make([]FinancialGroup, 0, len(catalog)),
		Total:     decimal.Zero,
	}

	groupIndex := make(map[uuid.UUID]int, len(catalog))
	for i, entry := range catalog {
		groupIndex[entry.ID] = i
		report.Groups = append(report.Groups, FinancialGroup{
			EntryID:    entry.ID,
			Name:       entry.Name,
			Total:      decimal.Zero,
			NoActivity: true,
			Months:     []MonthTotal{},
		})
	}

	for _, transaction := range transactions {
		if !filter.matches(transaction) {
			continue
		}

		for _, entryID := range dimensionEntries(transaction, dimension) {
			i, ok := groupIndex[entryID]
			if !ok {
				continue
			}

			group := &report.Groups[i]
			group.Total = group.Total.Add(transaction.Amount)
			group.Count++
			group.NoActivity = false
			addMonthTotal(group, types.MonthOf(transaction.Date), transaction.Amount)

			report.Total = report.Total.Add(transaction.Amount)
		}
	}

	// Rank by total descending. The stable sort keeps ties in catalog
	// order.
	sort.SliceStable(report.Groups, func(i, j int) bool {
		return report.Groups[i].Total.GreaterThan(report.Groups[j].Total)
	})

	return report
}

// dimensionEntries returns the catalog entries a transaction counts
// towards. For tags that can be more than one.
func dimensionEntries(t models.Transaction, dimension Dimension) []uuid.UUID {
	switch dimension {
	case DimensionCategory:
		return []uuid.UUID{t.CategoryID}
	case DimensionProject:
		if t.ProjectID == nil {
			return nil
		}
		return []uuid.UUID{*t.ProjectID}
	case DimensionTag:
		ids := make([]uuid.UUID, 0, len(t.Tags))
		for _, tag := range t.Tags {
			ids = append(ids, tag.ID)
		}
		return ids
	}

	return nil
}

func addMonthTotal(group *FinancialGroup, month types.Month, amount decimal.Decimal) {
	for i := range group.Months {
		if group.Months[i].Month.Equal(month) {
			group.Months[i].Total = group.Months[i].Total.Add(amount)
			return
		}
	}

	group.Months = append(group.Months, MonthTotal{Month: month, Total: amount})
	sort.SliceStable(group.Months, func(i, j int) bool {
		return group.Months[i].Month.Before(group.Months[j].Month)
	})
}

func hasTag(t models.Transaction, tagID uuid.UUID) bool {
	return slices.ContainsFunc(t.Tags, func(tag models.Tag) bool {
		return tag.ID == tagID
	})
}

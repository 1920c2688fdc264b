package models

import (
	"strings"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// CategoryType restricts which transaction types a category applies to.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
	CategoryBoth    CategoryType = "both"
)

// TransferCategoryName is the category transfer pairs are booked under.
// It is resolved by name and created on demand.
const TransferCategoryName = "Transferência"

// Category classifies transactions.
//
// GrossRevenue marks income categories that count towards gross revenue in
// the income statement. Income categories without it are reported as other
// income.
type Category struct {
	DefaultModel
	Name         string `gorm:"uniqueIndex:category_name"`
	Type         CategoryType
	Note         string
	GrossRevenue bool
}

// BeforeSave trims whitespace, defaults the type and validates it.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	if c.Type == "" {
		c.Type = CategoryBoth
	}

	if !slices.Contains([]CategoryType{CategoryIncome, CategoryExpense, CategoryBoth}, c.Type) {
		return ErrCategoryTypeInvalid
	}

	return nil
}

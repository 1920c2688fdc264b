package models

import (
	"strings"

	"gorm.io/gorm"
)

// Tag is a free-form label for transactions.
type Tag struct {
	DefaultModel
	Name string `gorm:"uniqueIndex:tag_name"`
	Note string
}

func (t *Tag) BeforeSave(_ *gorm.DB) error {
	t.Name = strings.TrimSpace(t.Name)
	t.Note = strings.TrimSpace(t.Note)

	return nil
}

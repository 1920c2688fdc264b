package models

import (
	"strings"

	"gorm.io/gorm"
)

// Payee is a third party money is paid to or received from.
type Payee struct {
	DefaultModel
	Name string `gorm:"uniqueIndex:payee_name"`
	Note string
}

func (p *Payee) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Note = strings.TrimSpace(p.Note)

	return nil
}

package models

import (
	"strings"

	"gorm.io/gorm"
)

// Project groups transactions that belong to one initiative of the
// organization, e.g. an event or a campaign.
type Project struct {
	DefaultModel
	Name string `gorm:"uniqueIndex:project_name"`
	Note string
}

func (p *Project) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Note = strings.TrimSpace(p.Note)

	return nil
}

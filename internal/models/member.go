package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Member represents a dues-paying member of the organization.
//
// Overdue months and the payment status are never stored. They are derived
// from the dues history and the recorded payments on every read, see the
// dues package.
type Member struct {
	DefaultModel
	Name       string
	Email      string
	Note       string
	MonthlyFee decimal.Decimal `gorm:"type:DECIMAL(20,8)"`

	// JoinedOn is the start of the dues history. When ReactivatedOn is
	// set, it replaces JoinedOn as the effective start.
	JoinedOn      time.Time
	ReactivatedOn *time.Time

	Departed bool // left the organization (Desligado)
	OnLeave  bool // temporarily on leave (EmLicenca)
	Exempt   bool // exempt from dues (Isento)
	Archived bool
}

// BeforeSave trims whitespace and normalizes dates to UTC.
func (m *Member) BeforeSave(_ *gorm.DB) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Note = strings.TrimSpace(m.Note)

	if m.JoinedOn.IsZero() {
		return ErrMemberJoinDateMissing
	}
	m.JoinedOn = m.JoinedOn.In(time.UTC)

	if m.ReactivatedOn != nil {
		reactivated := m.ReactivatedOn.In(time.UTC)
		m.ReactivatedOn = &reactivated
	}

	return nil
}

// EffectiveStart returns the date the current dues history starts at.
func (m Member) EffectiveStart() time.Time {
	if m.ReactivatedOn != nil {
		return *m.ReactivatedOn
	}

	return m.JoinedOn
}

// Payments returns all recorded payments for this member.
func (m Member) Payments(db *gorm.DB) ([]Payment, error) {
	var payments []Payment

	err := db.Where(Payment{MemberID: m.ID}).Find(&payments).Error
	return payments, err
}

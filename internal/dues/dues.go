// Package dues derives a member's overdue months, total due and payment
// status from the dues history and the recorded payments.
//
// Nothing in this package is stored. The derivation runs on every read so
// that adding, editing or removing a payment is immediately reflected.
package dues

import (
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tesouraria/backend/internal/models"
	"github.com/tesouraria/backend/internal/types"
)

// PaymentStatus is the derived standing of a member.
type PaymentStatus string

const (
	StatusEmDia     PaymentStatus = "EmDia"     // no open dues
	StatusAtrasado  PaymentStatus = "Atrasado"  // at least one month overdue
	StatusAdiantado PaymentStatus = "Adiantado" // paid for a future month
	StatusDesligado PaymentStatus = "Desligado" // left the organization
	StatusIsento    PaymentStatus = "Isento"    // exempt from dues
	StatusArquivado PaymentStatus = "Arquivado" // archived record
	StatusEmLicenca PaymentStatus = "EmLicenca" // on leave
)

// Policy carries the dues rules that are configuration, not derivation.
type Policy struct {
	// AccrueOnLeave controls whether dues keep accruing while a member
	// is on leave.
	AccrueOnLeave bool
}

// PolicyFromEnv reads the dues policy from the environment.
// DUES_ACCRUE_ON_LEAVE defaults to false.
func PolicyFromEnv() Policy {
	accrue, _ := strconv.ParseBool(os.Getenv("DUES_ACCRUE_ON_LEAVE"))
	return Policy{AccrueOnLeave: accrue}
}

// OverdueMonth is one month with an open remainder on the member's dues.
type OverdueMonth struct {
	Month  types.Month     `json:"month" example:"2024-01"`
	Amount decimal.Decimal `json:"amount" example:"50"`
}

// Standing is the derived view of a member.
type Standing struct {
	Member        models.Member  `json:"member"`
	OverdueMonths []OverdueMonth `json:"overdueMonths"`
	TotalDue      decimal.Decimal `json:"totalDue" example:"150"`
	Status        PaymentStatus   `json:"paymentStatus" example:"Atrasado"`
}

// accrues reports whether dues accrue for the member at all.
func accrues(member models.Member, policy Policy) bool {
	if member.Archived || member.Departed || member.Exempt {
		return false
	}

	if member.OnLeave && !policy.AccrueOnLeave {
		return false
	}

	return true
}

// Overdue enumerates every calendar month from the member's effective start
// through the month of now and returns the months with a positive remainder
// after subtracting the payments recorded for them.
//
// A missing monthly fee yields no overdue entries, it is not an error.
func Overdue(member models.Member, payments []models.Payment, now time.Time, policy Policy) []OverdueMonth {
	if !accrues(member, policy) {
		return nil
	}

	if !member.MonthlyFee.IsPositive() {
		return nil
	}

	start := types.MonthOf(member.EffectiveStart().In(time.UTC))
	current := types.MonthOf(now.In(time.UTC))

	var overdue []OverdueMonth
	for _, month := range start.Until(current) {
		paid := decimal.Zero
		for _, payment := range payments {
			if payment.ReferenceMonth.Equal(month) {
				paid = paid.Add(payment.Amount)
			}
		}

		remainder := member.MonthlyFee.Sub(paid)
		if remainder.IsPositive() {
			overdue = append(overdue, OverdueMonth{Month: month, Amount: remainder})
		}
	}

	return overdue
}

// TotalDue is the sum of all overdue month remainders.
func TotalDue(overdue []OverdueMonth) decimal.Decimal {
	total := decimal.Zero
	for _, month := range overdue {
		total = total.Add(month.Amount)
	}

	return total
}

// Status derives the payment status for a member. The stored flags
// short-circuit, then the open dues and the recorded payments decide.
//
// EmLicenca only short-circuits while dues do not accrue on leave. With
// accrual enabled an on-leave member owes like anyone else and shows
// Atrasado; EmLicenca is the resting status once they are paid up.
func Status(member models.Member, overdue []OverdueMonth, payments []models.Payment, now time.Time, policy Policy) PaymentStatus {
	switch {
	case member.Archived:
		return StatusArquivado
	case member.Departed:
		return StatusDesligado
	case member.OnLeave && !policy.AccrueOnLeave:
		return StatusEmLicenca
	case member.Exempt:
		return StatusIsento
	}

	if len(overdue) > 0 {
		return StatusAtrasado
	}

	if member.OnLeave {
		return StatusEmLicenca
	}

	current := types.MonthOf(now.In(time.UTC))
	for _, payment := range payments {
		if payment.ReferenceMonth.After(current) {
			return StatusAdiantado
		}
	}

	return StatusEmDia
}

// StandingFor derives the full member view.
func StandingFor(member models.Member, payments []models.Payment, now time.Time, policy Policy) Standing {
	overdue := Overdue(member, payments, now, policy)

	return Standing{
		Member:        member,
		OverdueMonths: overdue,
		TotalDue:      TotalDue(overdue),
		Status:        Status(member, overdue, payments, now, policy),
	}
}

package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gemsaccurate/billing-api/internal/domain/entity"
)

// DueFigures are derived per-invoice amounts, never persisted: recomputed
// from the invoice principal and the full payment history on every read.
type DueFigures struct {
	PrincipalPaid decimal.Decimal
	InterestPaid  decimal.Decimal
	PrincipalDue  decimal.Decimal
	InterestDue   decimal.Decimal
	TotalDue      decimal.Decimal
}

// ComputeDue derives what an invoice owes as of a given date.
//
// Interest compounds on the currently outstanding principal at the invoice
// rate, once per whole elapsed compounding period since the original due
// date. Partial periods do not accrue: the accrual is a strict step function
// over period boundaries. Periods are always counted from the original due
// date, not re-based after partial payments; with mid-period principal
// payments this understates day-weighted interest, which is the accepted
// trade-off for a model that reconciles exactly on recomputation.
//
//	interestDue = max(0, round2(principalDue * ((1+rate/100)^periods - 1) - interestPaid))
//
// A fully paid principal reports zero interest due even if the invoice is
// still past due by date; interest already paid stays in InterestPaid.
func ComputeDue(inv *entity.Invoice, payments []*entity.Payment, asOf time.Time) DueFigures {
	var principalPaid, interestPaid decimal.Decimal
	for _, p := range payments {
		if p == nil {
			continue
		}
		if alloc, ok := p.Allocations[inv.ID]; ok {
			principalPaid = principalPaid.Add(alloc.PrincipalApplied)
			interestPaid = interestPaid.Add(alloc.InterestApplied)
		}
	}

	figures := DueFigures{
		PrincipalPaid: principalPaid,
		InterestPaid:  interestPaid,
		PrincipalDue:  inv.Principal.Sub(principalPaid),
		InterestDue:   decimal.Zero,
	}

	if figures.PrincipalDue.GreaterThan(decimal.Zero) &&
		asOf.After(inv.DueDate) &&
		inv.InterestRate.GreaterThan(decimal.Zero) {
		periods := elapsedPeriods(inv.DueDate, asOf, inv.InterestCompoundPeriod)
		if periods > 0 {
			factor := decimal.NewFromInt(1).
				Add(inv.InterestRate.Div(hundred)).
				Pow(decimal.NewFromInt(periods))
			accrued := figures.PrincipalDue.Mul(factor.Sub(decimal.NewFromInt(1)))
			due := accrued.Sub(interestPaid).Round(2)
			if due.GreaterThan(decimal.Zero) {
				figures.InterestDue = due
			}
		}
	}

	figures.TotalDue = figures.PrincipalDue.Add(figures.InterestDue)
	return figures
}

// elapsedPeriods counts whole compounding periods between from and to,
// calendar-month based. An unrecognized period compounds never.
func elapsedPeriods(from, to time.Time, compoundPeriod string) int64 {
	months := monthsBetween(from, to)
	switch compoundPeriod {
	case entity.CompoundMonthly:
		return months
	case entity.CompoundQuarterly:
		return months / 3
	case entity.CompoundHalfYearly:
		return months / 6
	case entity.CompoundAnnually:
		return months / 12
	default:
		return 0
	}
}

// monthsBetween counts whole calendar months from one date to another.
// The day-of-month must be reached for a month to count: Jan 15 -> Feb 14 is
// zero months, Jan 15 -> Feb 15 is one.
func monthsBetween(from, to time.Time) int64 {
	if to.Before(from) {
		return 0
	}
	months := int64(to.Year()-from.Year())*12 + int64(to.Month()) - int64(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

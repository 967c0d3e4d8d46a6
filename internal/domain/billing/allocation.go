package billing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gemsaccurate/billing-api/internal/domain/entity"
)

// Epsilon absorbs 2-decimal rounding when reconciling a payment against its
// allocations: 0.01 currency units.
var Epsilon = decimal.RequireFromString("0.01")

// ErrNoAllocation: a nonzero payment with nothing allocated after dropping
// zero entries. Reported, never silently dropped.
var ErrNoAllocation = errors.New("payment amount has no allocation")

// AllocationMismatchError: the allocations do not sum to the declared payment
// amount beyond Epsilon. Carries both figures for user-facing correction.
type AllocationMismatchError struct {
	Declared  decimal.Decimal
	Allocated decimal.Decimal
}

func (e *AllocationMismatchError) Error() string {
	return fmt.Sprintf("allocation mismatch: declared %s but allocated %s",
		e.Declared.StringFixed(2), e.Allocated.StringFixed(2))
}

// AllocationExceedsDueError: a single invoice allocation exceeds its due
// amount beyond Epsilon. MaxAllowed lets the caller clamp or prompt.
type AllocationExceedsDueError struct {
	InvoiceID  string
	Component  string // "principal" or "interest"
	Allocated  decimal.Decimal
	MaxAllowed decimal.Decimal
}

func (e *AllocationExceedsDueError) Error() string {
	return fmt.Sprintf("allocation for invoice %s exceeds %s due: allocated %s, max %s",
		e.InvoiceID, e.Component, e.Allocated.StringFixed(2), e.MaxAllowed.StringFixed(2))
}

// ValidateAllocation checks a proposed split of one payment across invoices
// against the current due figures and returns the cleaned allocation map,
// ready to persist as a Payment record.
//
// Cleaning: negative components count as zero, and entries left with 0/0 are
// dropped (an invoice with nothing applied is not recorded against it).
// Each surviving component is capped by its invoice's due figure within
// Epsilon, and the surviving sum must equal totalAmount within Epsilon.
//
// When editing an existing payment, pass dues through CreditBack first so the
// caps exclude that payment's own prior contribution.
func ValidateAllocation(
	totalAmount decimal.Decimal,
	proposed map[string]entity.AllocationEntry,
	dues map[string]DueFigures,
) (map[string]entity.AllocationEntry, error) {
	clean := make(map[string]entity.AllocationEntry, len(proposed))
	var allocated decimal.Decimal

	for invoiceID, alloc := range proposed {
		principal := floorZero(alloc.PrincipalApplied)
		interest := floorZero(alloc.InterestApplied)
		if principal.IsZero() && interest.IsZero() {
			continue
		}

		due := dues[invoiceID] // zero figures for unknown invoices
		if principal.Sub(due.PrincipalDue).GreaterThan(Epsilon) {
			return nil, &AllocationExceedsDueError{
				InvoiceID:  invoiceID,
				Component:  "principal",
				Allocated:  principal,
				MaxAllowed: due.PrincipalDue,
			}
		}
		if interest.Sub(due.InterestDue).GreaterThan(Epsilon) {
			return nil, &AllocationExceedsDueError{
				InvoiceID:  invoiceID,
				Component:  "interest",
				Allocated:  interest,
				MaxAllowed: due.InterestDue,
			}
		}

		clean[invoiceID] = entity.AllocationEntry{
			PrincipalApplied: principal,
			InterestApplied:  interest,
		}
		allocated = allocated.Add(principal).Add(interest)
	}

	if len(clean) == 0 && totalAmount.GreaterThan(decimal.Zero) {
		return nil, ErrNoAllocation
	}
	if totalAmount.Sub(allocated).Abs().GreaterThan(Epsilon) {
		return nil, &AllocationMismatchError{Declared: totalAmount, Allocated: allocated}
	}
	return clean, nil
}

// CreditBack returns a copy of dues with a prior payment's own allocations
// restored. Editing a payment validates against "due excluding this payment",
// otherwise a legitimate unchanged edit would be rejected as over-allocation.
func CreditBack(dues map[string]DueFigures, prior map[string]entity.AllocationEntry) map[string]DueFigures {
	credited := make(map[string]DueFigures, len(dues))
	for id, d := range dues {
		credited[id] = d
	}
	for invoiceID, alloc := range prior {
		d := credited[invoiceID]
		d.PrincipalDue = d.PrincipalDue.Add(alloc.PrincipalApplied)
		d.InterestDue = d.InterestDue.Add(alloc.InterestApplied)
		d.TotalDue = d.PrincipalDue.Add(d.InterestDue)
		credited[invoiceID] = d
	}
	return credited
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return d
}

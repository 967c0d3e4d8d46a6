package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllocationEntry is the slice of a payment applied to one invoice, split
// between principal and interest.
type AllocationEntry struct {
	PrincipalApplied decimal.Decimal
	InterestApplied  decimal.Decimal
}

// Total returns principal + interest applied.
func (a AllocationEntry) Total() decimal.Decimal {
	return a.PrincipalApplied.Add(a.InterestApplied)
}

// Payment is one recorded payment event against a customer, possibly spanning
// many invoices. Allocations maps invoice id to the applied amounts.
//
// A payment may be edited (replacing amount and allocations) or deleted; due
// figures are always re-derived from the full history on read, so no stored
// balance can go stale.
type Payment struct {
	ID          string
	CompanyID   string
	CustomerID  string
	Date        time.Time // server-assigned at creation
	TotalAmount decimal.Decimal
	Allocations map[string]AllocationEntry
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Package billing is the pricing and interest-accrual engine: pure domain
// services over immutable invoice/payment snapshots. Nothing here touches
// storage, a clock, or the network; callers pass everything in (including the
// as-of date for interest) and round only at display boundaries.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/gemsaccurate/billing-api/internal/domain/entity"
)

// Statutory GST rate for jewelry (HSN 7113), split evenly CGST/SGST.
var gstRate = decimal.RequireFromString("0.03")

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// PriceLine computes one line's monetary total:
//
//	amount = netWeight*rate + makingCharge(type, value)
//
// Negative inputs are not validated here; the function stays total and
// computes literal arithmetic. Validation belongs to the input layer.
func PriceLine(item entity.LineItem) decimal.Decimal {
	base := item.NetWeight.Mul(item.Rate)
	return base.Add(makingCharge(item, base))
}

// makingCharge resolves the labor/fabrication fee for a line. A value <= 0
// contributes nothing regardless of type, and an unrecognized type is treated
// as no charge: one malformed line must not fail the whole invoice.
func makingCharge(item entity.LineItem, base decimal.Decimal) decimal.Decimal {
	v := item.MakingChargeValue
	if v.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	switch item.MakingChargeType {
	case entity.MakingChargePercentage:
		return base.Mul(v).Div(hundred)
	case entity.MakingChargeFlat:
		return v
	case entity.MakingChargePerGram:
		// Zero net weight (labor-only line) yields zero here; Flat and
		// PerItem are the types that can still charge such a line.
		return v.Mul(item.NetWeight)
	case entity.MakingChargePerItem:
		return v.Mul(decimal.NewFromInt(item.Quantity))
	default:
		return decimal.Zero
	}
}

// Totals is the aggregated money of one invoice.
type Totals struct {
	Subtotal decimal.Decimal
	CGST     decimal.Decimal
	SGST     decimal.Decimal
	Total    decimal.Decimal
}

// Aggregate sums priced lines and applies discount and GST.
//
// Without a customer GSTIN the invoice is a cash memo: tax is zero no matter
// what the per-line ApplyTax flags say. With a GSTIN, only lines flagged
// ApplyTax enter the taxable base. SGST is derived as tax - CGST so that
// total == subtotal + cgst + sgst - discount holds exactly.
//
// Total is intentionally not clamped: a discount larger than subtotal+tax
// surfaces as a negative total for the caller to decide on.
func Aggregate(items []entity.LineItem, discount decimal.Decimal, customerHasGSTIN bool) Totals {
	var subtotal, taxable decimal.Decimal
	for _, item := range items {
		amount := PriceLine(item)
		subtotal = subtotal.Add(amount)
		if customerHasGSTIN && item.ApplyTax {
			taxable = taxable.Add(amount)
		}
	}
	tax := taxable.Mul(gstRate)
	cgst := tax.Div(two)
	sgst := tax.Sub(cgst)
	return Totals{
		Subtotal: subtotal,
		CGST:     cgst,
		SGST:     sgst,
		Total:    subtotal.Add(cgst).Add(sgst).Sub(discount),
	}
}

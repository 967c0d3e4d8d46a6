package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Making charge types for a line item. The value's meaning depends on type:
// Percentage of the material base, a Flat amount, an amount PerGram of net
// weight, or an amount PerItem.
const (
	MakingChargePercentage = "percentage"
	MakingChargeFlat       = "flat"
	MakingChargePerGram    = "per_gram"
	MakingChargePerItem    = "per_item"
)

// Compounding periods for overdue interest.
const (
	CompoundMonthly    = "monthly"
	CompoundQuarterly  = "quarterly"
	CompoundHalfYearly = "half_yearly"
	CompoundAnnually   = "annually"
)

// Invoice number prefixes. INV = tax invoice (customer has GSTIN),
// CSH = cash memo (no GST ever).
const (
	PrefixTaxInvoice = "INV"
	PrefixCashMemo   = "CSH"
)

// LineItem is one priced entry on an invoice.
//
// NetWeight is the weight of priced material; GrossWeight is display-only and
// may include stones or other non-priced material. A zero-net-weight line is a
// labor-only line: it still carries Flat or PerItem making charges.
type LineItem struct {
	ID                string
	InvoiceID         string
	ItemName          string
	HSN               string // HSN/SAC code, e.g. 7113 for jewelry
	Purity            string // display only, e.g. "22K" or "91.6"
	Quantity          int64
	GrossWeight       decimal.Decimal // grams
	NetWeight         decimal.Decimal // grams, used for pricing
	Rate              decimal.Decimal // currency per gram
	MakingChargeType  string
	MakingChargeValue decimal.Decimal
	ApplyTax          bool // contributes to the taxable base (tax invoices only)
}

// Invoice is a priced bill issued to a customer.
//
// Principal is the total amount owed at issuance. It is immutable except by
// full edit, which re-runs pricing. Amounts currently due are never stored;
// they are derived from Principal plus the full payment history.
type Invoice struct {
	ID         string
	CompanyID  string
	CustomerID string

	// Number is {PREFIX}-{YY}{MM}{seq:05d}; Prefix, Period and Sequence are
	// its components, kept for per-period sequence assignment.
	Number   string
	Prefix   string
	Period   string // YYMM of the issue date
	Sequence int

	Items    []LineItem
	Discount decimal.Decimal
	Subtotal decimal.Decimal
	CGST     decimal.Decimal
	SGST     decimal.Decimal

	Principal decimal.Decimal // issued total = subtotal + cgst + sgst - discount

	IssueDate time.Time
	DueDate   time.Time

	InterestRate          decimal.Decimal // percent per compounding period once overdue
	InterestCompoundPeriod string

	PaymentMode string // Cash, Card, Online
	IsDeleted   bool   // soft delete; excluded from dues, recoverable

	CreatedAt time.Time
	UpdatedAt time.Time
}

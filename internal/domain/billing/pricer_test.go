package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/gemsaccurate/billing-api/internal/domain/billing"
	"github.com/gemsaccurate/billing-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// goldLine is a baseline line: 10g of priced gold at 5000/g.
func goldLine() entity.LineItem {
	return entity.LineItem{
		ItemName:    "Gold Ring",
		Quantity:    1,
		GrossWeight: dec("11.2"),
		NetWeight:   dec("10"),
		Rate:        dec("5000"),
	}
}

// ── PriceLine ─────────────────────────────────────────────────────────────────

// A zero making charge contributes nothing regardless of type: the line is
// exactly netWeight * rate.
func TestPriceLine_ZeroMakingChargeIsBaseOnly(t *testing.T) {
	types := []string{
		entity.MakingChargePercentage,
		entity.MakingChargeFlat,
		entity.MakingChargePerGram,
		entity.MakingChargePerItem,
	}
	for _, mcType := range types {
		item := goldLine()
		item.MakingChargeType = mcType
		item.MakingChargeValue = decimal.Zero
		assert.True(t, dec("50000").Equal(billing.PriceLine(item)),
			"type %s with zero value must price at netWeight*rate", mcType)
	}
}

func TestPriceLine_PercentageCharge(t *testing.T) {
	item := goldLine()
	item.MakingChargeType = entity.MakingChargePercentage
	item.MakingChargeValue = dec("10")

	// 50000 + 10% of 50000
	assert.True(t, dec("55000").Equal(billing.PriceLine(item)))
}

// A flat charge is independent of quantity and weight.
func TestPriceLine_FlatChargeIndependentOfQtyAndWeight(t *testing.T) {
	item := goldLine()
	item.MakingChargeType = entity.MakingChargeFlat
	item.MakingChargeValue = dec("1200")
	assert.True(t, dec("51200").Equal(billing.PriceLine(item)))

	item.Quantity = 7
	item.NetWeight = dec("3.5")
	// base changes with weight, but the charge component stays 1200
	assert.True(t, dec("17500").Add(dec("1200")).Equal(billing.PriceLine(item)))
}

func TestPriceLine_PerGramCharge(t *testing.T) {
	item := goldLine()
	item.MakingChargeType = entity.MakingChargePerGram
	item.MakingChargeValue = dec("150")

	// 50000 + 150 * 10g
	assert.True(t, dec("51500").Equal(billing.PriceLine(item)))
}

func TestPriceLine_PerItemCharge(t *testing.T) {
	item := goldLine()
	item.Quantity = 3
	item.MakingChargeType = entity.MakingChargePerItem
	item.MakingChargeValue = dec("250")

	// 50000 + 250 * 3
	assert.True(t, dec("50750").Equal(billing.PriceLine(item)))
}

// An unrecognized making charge type must not fail the invoice; it simply
// charges nothing.
func TestPriceLine_UnknownTypeChargesNothing(t *testing.T) {
	item := goldLine()
	item.MakingChargeType = "per_carat"
	item.MakingChargeValue = dec("999")
	assert.True(t, dec("50000").Equal(billing.PriceLine(item)))
}

// Labor-only lines (zero net weight) still carry Flat and PerItem charges,
// while PerGram collapses to zero with the base. This is how pure making
// charge entries (repairs, polishing) are billed.
func TestPriceLine_LaborOnlyLine(t *testing.T) {
	item := entity.LineItem{ItemName: "Polishing", Quantity: 3, NetWeight: decimal.Zero, Rate: dec("5000")}

	item.MakingChargeType = entity.MakingChargeFlat
	item.MakingChargeValue = dec("1000")
	assert.True(t, dec("1000").Equal(billing.PriceLine(item)))

	item.MakingChargeType = entity.MakingChargePerItem
	item.MakingChargeValue = dec("250")
	assert.True(t, dec("750").Equal(billing.PriceLine(item)))

	item.MakingChargeType = entity.MakingChargePerGram
	item.MakingChargeValue = dec("150")
	assert.True(t, billing.PriceLine(item).IsZero())
}

// The pricer is total: negative inputs are computed literally, not clamped.
// Rejecting them is the input layer's job.
func TestPriceLine_NegativeWeightComputesLiterally(t *testing.T) {
	item := entity.LineItem{Quantity: 1, NetWeight: dec("-2"), Rate: dec("100")}
	assert.True(t, dec("-200").Equal(billing.PriceLine(item)))
}

// ── Aggregate ─────────────────────────────────────────────────────────────────

// Without a customer GSTIN the invoice is a cash memo: zero tax even when
// every line is flagged taxable.
func TestAggregate_CashMemoNeverTaxed(t *testing.T) {
	a := goldLine()
	a.ApplyTax = true
	b := goldLine()
	b.ApplyTax = true

	totals := billing.Aggregate([]entity.LineItem{a, b}, decimal.Zero, false)

	assert.True(t, totals.CGST.IsZero())
	assert.True(t, totals.SGST.IsZero())
	assert.True(t, dec("100000").Equal(totals.Total))
}

// Exact vector: 10g * 5000 + 1000 flat = 51000; GST 3% = 1530 split 765/765;
// minus 500 discount.
func TestAggregate_TaxInvoiceVector(t *testing.T) {
	item := goldLine()
	item.ApplyTax = true
	item.MakingChargeType = entity.MakingChargeFlat
	item.MakingChargeValue = dec("1000")

	totals := billing.Aggregate([]entity.LineItem{item}, dec("500"), true)

	assert.True(t, dec("51000").Equal(totals.Subtotal))
	assert.True(t, dec("765").Equal(totals.CGST))
	assert.True(t, dec("765").Equal(totals.SGST))
	assert.True(t, dec("52030").Equal(totals.Total))
}

// Only lines flagged ApplyTax enter the taxable base on a tax invoice.
func TestAggregate_MixedTaxableLines(t *testing.T) {
	taxed := goldLine()
	taxed.ApplyTax = true
	untaxed := goldLine()
	untaxed.ApplyTax = false

	totals := billing.Aggregate([]entity.LineItem{taxed, untaxed}, decimal.Zero, true)

	assert.True(t, dec("100000").Equal(totals.Subtotal))
	// 3% of the taxed 50000 only
	assert.True(t, dec("1500").Equal(totals.CGST.Add(totals.SGST)))
}

// Definitional identity: total == subtotal + cgst + sgst - discount, exactly.
func TestAggregate_TotalIdentity(t *testing.T) {
	items := []entity.LineItem{}
	weights := []string{"0.33", "7.77", "12.125"}
	for _, w := range weights {
		item := goldLine()
		item.NetWeight = dec(w)
		item.Rate = dec("6133.33")
		item.ApplyTax = true
		item.MakingChargeType = entity.MakingChargePercentage
		item.MakingChargeValue = dec("12.5")
		items = append(items, item)
	}
	discount := dec("123.45")

	totals := billing.Aggregate(items, discount, true)

	want := totals.Subtotal.Add(totals.CGST).Add(totals.SGST).Sub(discount)
	assert.True(t, want.Equal(totals.Total), "identity must hold exactly, got %s vs %s", totals.Total, want)
}

// A discount above subtotal+tax yields a negative total, surfaced as-is.
func TestAggregate_NegativeTotalNotClamped(t *testing.T) {
	item := goldLine()
	totals := billing.Aggregate([]entity.LineItem{item}, dec("60000"), false)
	assert.True(t, dec("-10000").Equal(totals.Total))
}

func TestAggregate_EmptyInvoiceIsAllZero(t *testing.T) {
	totals := billing.Aggregate(nil, decimal.Zero, true)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Total.IsZero())
}

package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gemsaccurate/billing-api/internal/domain/billing"
	"github.com/gemsaccurate/billing-api/internal/domain/entity"
)

func dues(principalDue, interestDue string) billing.DueFigures {
	return billing.DueFigures{
		PrincipalDue: dec(principalDue),
		InterestDue:  dec(interestDue),
		TotalDue:     dec(principalDue).Add(dec(interestDue)),
	}
}

func alloc(principal, interest string) entity.AllocationEntry {
	return entity.AllocationEntry{
		PrincipalApplied: dec(principal),
		InterestApplied:  dec(interest),
	}
}

// ── Happy path ────────────────────────────────────────────────────────────────

// An allocation summing exactly to the payment and within every cap passes
// and comes back unchanged.
func TestValidateAllocation_ExactMatchSucceeds(t *testing.T) {
	proposed := map[string]entity.AllocationEntry{
		"INV-240100001": alloc("300", "200"),
	}
	dueMap := map[string]billing.DueFigures{
		"INV-240100001": dues("300", "200"),
	}

	committed, err := billing.ValidateAllocation(dec("500"), proposed, dueMap)

	require.NoError(t, err)
	require.Len(t, committed, 1)
	entry := committed["INV-240100001"]
	assert.True(t, dec("300").Equal(entry.PrincipalApplied))
	assert.True(t, dec("200").Equal(entry.InterestApplied))
}

// One payment can cover several invoices; partial allocations below the caps
// are fine as long as the sum reconciles.
func TestValidateAllocation_SpansMultipleInvoices(t *testing.T) {
	proposed := map[string]entity.AllocationEntry{
		"INV-240100001": alloc("700", "50"),
		"CSH-240100002": alloc("250", "0"),
	}
	dueMap := map[string]billing.DueFigures{
		"INV-240100001": dues("1000", "61.21"),
		"CSH-240100002": dues("400", "0"),
	}

	committed, err := billing.ValidateAllocation(dec("1000"), proposed, dueMap)

	require.NoError(t, err)
	assert.Len(t, committed, 2)
}

// Zero and negative entries are dropped, not recorded against the invoice.
func TestValidateAllocation_DropsZeroAndNegativeEntries(t *testing.T) {
	proposed := map[string]entity.AllocationEntry{
		"INV-240100001": alloc("500", "0"),
		"CSH-240100002": alloc("0", "0"),
		"CSH-240100003": alloc("-25", "-1"),
	}
	dueMap := map[string]billing.DueFigures{
		"INV-240100001": dues("500", "0"),
	}

	committed, err := billing.ValidateAllocation(dec("500"), proposed, dueMap)

	require.NoError(t, err)
	require.Len(t, committed, 1)
	_, kept := committed["INV-240100001"]
	assert.True(t, kept)
}

// The epsilon absorbs display rounding: a 0.01 discrepancy reconciles.
func TestValidateAllocation_WithinEpsilonReconciles(t *testing.T) {
	proposed := map[string]entity.AllocationEntry{
		"INV-240100001": alloc("499.99", "0"),
	}
	dueMap := map[string]billing.DueFigures{
		"INV-240100001": dues("500", "0"),
	}

	_, err := billing.ValidateAllocation(dec("500"), proposed, dueMap)

	assert.NoError(t, err)
}

// ── Errors ────────────────────────────────────────────────────────────────────

// Perturbing the sum beyond epsilon is always a mismatch, reported with both
// figures for user display.
func TestValidateAllocation_SumMismatch(t *testing.T) {
	proposed := map[string]entity.AllocationEntry{
		"INV-240100001": alloc("450", "0"),
	}
	dueMap := map[string]billing.DueFigures{
		"INV-240100001": dues("1000", "0"),
	}

	_, err := billing.ValidateAllocation(dec("500"), proposed, dueMap)

	var mismatch *billing.AllocationMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.True(t, dec("500").Equal(mismatch.Declared))
	assert.True(t, dec("450").Equal(mismatch.Allocated))
}

// Allocating more principal than an invoice owes is rejected per invoice,
// carrying the maximum allowed so the caller can clamp or prompt.
func TestValidateAllocation_PrincipalExceedsDue(t *testing.T) {
	proposed := map[string]entity.AllocationEntry{
		"INV-240100001": alloc("600", "0"),
	}
	dueMap := map[string]billing.DueFigures{
		"INV-240100001": dues("500", "0"),
	}

	_, err := billing.ValidateAllocation(dec("600"), proposed, dueMap)

	var exceeds *billing.AllocationExceedsDueError
	require.ErrorAs(t, err, &exceeds)
	assert.Equal(t, "INV-240100001", exceeds.InvoiceID)
	assert.Equal(t, "principal", exceeds.Component)
	assert.True(t, dec("500").Equal(exceeds.MaxAllowed))
}

func TestValidateAllocation_InterestExceedsDue(t *testing.T) {
	proposed := map[string]entity.AllocationEntry{
		"INV-240100001": alloc("0", "75"),
	}
	dueMap := map[string]billing.DueFigures{
		"INV-240100001": dues("1000", "61.21"),
	}

	_, err := billing.ValidateAllocation(dec("75"), proposed, dueMap)

	var exceeds *billing.AllocationExceedsDueError
	require.ErrorAs(t, err, &exceeds)
	assert.Equal(t, "interest", exceeds.Component)
}

// An invoice id with no due figures owes nothing; any allocation to it
// exceeds its (zero) due.
func TestValidateAllocation_UnknownInvoiceOwesNothing(t *testing.T) {
	proposed := map[string]entity.AllocationEntry{
		"INV-999999999": alloc("100", "0"),
	}

	_, err := billing.ValidateAllocation(dec("100"), proposed, map[string]billing.DueFigures{})

	var exceeds *billing.AllocationExceedsDueError
	require.ErrorAs(t, err, &exceeds)
}

// A nonzero payment where everything was dropped is NoAllocation, not a
// silent accept.
func TestValidateAllocation_NoAllocation(t *testing.T) {
	proposed := map[string]entity.AllocationEntry{
		"INV-240100001": alloc("0", "0"),
	}
	dueMap := map[string]billing.DueFigures{
		"INV-240100001": dues("500", "0"),
	}

	_, err := billing.ValidateAllocation(dec("500"), proposed, dueMap)

	assert.ErrorIs(t, err, billing.ErrNoAllocation)
}

// ── Editing: credit-back ──────────────────────────────────────────────────────

// Editing a payment must validate against dues that exclude that payment's
// own prior contribution. Re-submitting the identical allocation after
// CreditBack passes; without it the caps would reject a legitimate edit.
func TestCreditBack_AllowsUnchangedEdit(t *testing.T) {
	prior := map[string]entity.AllocationEntry{
		"INV-240100001": alloc("300", "50"),
	}
	// Dues as derived today, i.e. already net of the prior payment.
	current := map[string]billing.DueFigures{
		"INV-240100001": dues("0", "0"),
	}

	_, err := billing.ValidateAllocation(dec("350"), prior, current)
	require.Error(t, err, "without credit-back the edit must be rejected")

	credited := billing.CreditBack(current, prior)
	committed, err := billing.ValidateAllocation(dec("350"), prior, credited)

	require.NoError(t, err)
	assert.Len(t, committed, 1)
}

// CreditBack copies; the caller's due map stays untouched.
func TestCreditBack_DoesNotMutateInput(t *testing.T) {
	current := map[string]billing.DueFigures{
		"INV-240100001": dues("100", "0"),
	}
	prior := map[string]entity.AllocationEntry{
		"INV-240100001": alloc("300", "0"),
	}

	credited := billing.CreditBack(current, prior)

	assert.True(t, dec("100").Equal(current["INV-240100001"].PrincipalDue))
	assert.True(t, dec("400").Equal(credited["INV-240100001"].PrincipalDue))
}

// A zero-amount payment with nothing allocated is a valid no-op record.
func TestValidateAllocation_ZeroPaymentEmptyAllocation(t *testing.T) {
	committed, err := billing.ValidateAllocation(decimal.Zero, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, committed)
}

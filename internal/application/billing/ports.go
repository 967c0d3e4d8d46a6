package billing

import (
	"context"

	"github.com/gemsaccurate/billing-api/internal/domain/repository"
)

// BillingTxRunner runs a function inside one transaction with invoice and
// payment repositories bound to it. Invoice creation claims its number
// sequence and writes header+lines atomically; payment recording derives due
// figures and writes the allocation against the same snapshot.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// Defaults are company-wide fallbacks applied when an invoice omits its
// credit terms. Loaded from configuration.
type Defaults struct {
	DueDays                int
	InterestRate           string // percent per period, decimal string
	InterestCompoundPeriod string
}

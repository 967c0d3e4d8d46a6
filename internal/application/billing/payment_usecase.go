package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gemsaccurate/billing-api/internal/application/dto"
	"github.com/gemsaccurate/billing-api/internal/domain"
	domainbilling "github.com/gemsaccurate/billing-api/internal/domain/billing"
	"github.com/gemsaccurate/billing-api/internal/domain/entity"
	"github.com/gemsaccurate/billing-api/internal/domain/repository"
)

// PaymentUseCase records, edits and deletes payments. Each write derives the
// customer's due figures inside the same transaction it writes in, runs the
// allocation validator against them, and persists the committed allocation as
// one unit, so concurrent readers never see a half-written split.
type PaymentUseCase struct {
	txRunner     BillingTxRunner
	customerRepo repository.CustomerRepository
	paymentRepo  repository.PaymentRepository
}

// NewPaymentUseCase builds the use case.
func NewPaymentUseCase(
	txRunner BillingTxRunner,
	customerRepo repository.CustomerRepository,
	paymentRepo repository.PaymentRepository,
) *PaymentUseCase {
	return &PaymentUseCase{txRunner: txRunner, customerRepo: customerRepo, paymentRepo: paymentRepo}
}

// Record validates and persists a new payment. The allocation is checked
// against dues derived at the as-of date (default: now). Validation errors
// (AllocationMismatch, AllocationExceedsDue, NoAllocation) pass through for
// the handler to surface with their figures.
func (uc *PaymentUseCase) Record(ctx context.Context, companyID string, in dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	customer, err := uc.ownedCustomer(companyID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if in.TotalAmount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	asOf, err := resolveAsOf(in.AsOf)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payment := &entity.Payment{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		CustomerID:  customer.ID,
		Date:        now,
		TotalAmount: in.TotalAmount,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, paymentRepo repository.PaymentRepository) error {
		invoices, payments, err := loadLedger(invoiceRepo, paymentRepo, companyID, customer.ID)
		if err != nil {
			return err
		}
		dues := deriveDueMap(invoices, payments, asOf)
		committed, err := domainbilling.ValidateAllocation(in.TotalAmount, toEntityAllocations(in.Allocations), dues)
		if err != nil {
			return err
		}
		payment.Allocations = committed
		return paymentRepo.Create(payment)
	})
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// Edit replaces a payment's amount and allocation map. The due figures are
// first credited back by what this payment previously contributed, so an
// unchanged re-submission always validates.
func (uc *PaymentUseCase) Edit(ctx context.Context, companyID, paymentID string, in dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	existing, err := uc.ownedPayment(companyID, paymentID)
	if err != nil {
		return nil, err
	}
	// A payment never moves between customers; a request naming a different
	// one is malformed, not a reassignment.
	if in.CustomerID != "" && in.CustomerID != existing.CustomerID {
		return nil, domain.ErrInvalidInput
	}
	if in.TotalAmount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	asOf, err := resolveAsOf(in.AsOf)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, paymentRepo repository.PaymentRepository) error {
		invoices, payments, err := loadLedger(invoiceRepo, paymentRepo, companyID, existing.CustomerID)
		if err != nil {
			return err
		}
		dues := domainbilling.CreditBack(
			deriveDueMap(invoices, payments, asOf),
			existing.Allocations,
		)
		committed, err := domainbilling.ValidateAllocation(in.TotalAmount, toEntityAllocations(in.Allocations), dues)
		if err != nil {
			return err
		}
		existing.TotalAmount = in.TotalAmount
		existing.Allocations = committed
		existing.Notes = in.Notes
		existing.UpdatedAt = time.Now()
		return paymentRepo.Update(existing)
	})
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(existing), nil
}

// Delete removes a payment and its allocations in one transaction, so a
// concurrent dues read never sees the header without its split. Due figures
// self-correct on the next read since they are always re-derived from the
// remaining history.
func (uc *PaymentUseCase) Delete(ctx context.Context, companyID, paymentID string) error {
	existing, err := uc.ownedPayment(companyID, paymentID)
	if err != nil {
		return err
	}
	return uc.txRunner.RunBilling(ctx, func(_ repository.InvoiceRepository, paymentRepo repository.PaymentRepository) error {
		return paymentRepo.Delete(existing.ID)
	})
}

// ListByCustomer lists a customer's payments with committed allocations.
func (uc *PaymentUseCase) ListByCustomer(ctx context.Context, companyID, customerID string) ([]*dto.PaymentResponse, error) {
	if _, err := uc.ownedCustomer(companyID, customerID); err != nil {
		return nil, err
	}
	payments, err := uc.paymentRepo.ListByCustomer(companyID, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	return out, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (uc *PaymentUseCase) ownedCustomer(companyID, customerID string) (*entity.Customer, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return customer, nil
}

func (uc *PaymentUseCase) ownedPayment(companyID, paymentID string) (*entity.Payment, error) {
	if paymentID == "" {
		return nil, domain.ErrInvalidInput
	}
	payment, err := uc.paymentRepo.GetByID(paymentID)
	if err != nil || payment == nil {
		return nil, domain.ErrNotFound
	}
	if payment.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return payment, nil
}

func resolveAsOf(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	asOf, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return asOf, nil
}

func toEntityAllocations(in map[string]dto.AllocationRequest) map[string]entity.AllocationEntry {
	out := make(map[string]entity.AllocationEntry, len(in))
	for invoiceID, a := range in {
		out[invoiceID] = entity.AllocationEntry{
			PrincipalApplied: a.Principal,
			InterestApplied:  a.Interest,
		}
	}
	return out
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	resp := &dto.PaymentResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		CustomerID:  p.CustomerID,
		Date:        p.Date.Format(dateLayout),
		TotalAmount: p.TotalAmount,
		Allocations: make(map[string]dto.AllocationResponse, len(p.Allocations)),
		Notes:       p.Notes,
	}
	for invoiceID, a := range p.Allocations {
		resp.Allocations[invoiceID] = dto.AllocationResponse{
			Principal: a.PrincipalApplied,
			Interest:  a.InterestApplied,
		}
	}
	return resp
}

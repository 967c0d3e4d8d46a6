package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/gemsaccurate/billing-api/internal/application/billing"
	"github.com/gemsaccurate/billing-api/internal/application/dto"
	"github.com/gemsaccurate/billing-api/internal/domain"
	"github.com/gemsaccurate/billing-api/internal/domain/entity"
	"github.com/gemsaccurate/billing-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes
// ──────────────────────────────────────────────────────────────────────────────

const (
	fixCompanyID  = "00000000-0000-0000-0000-00000000c001"
	fixCustomerID = "00000000-0000-0000-0000-00000000cu01"
	fixInvoiceID  = "00000000-0000-0000-0000-00000000in01"
)

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (f *fakeCustomerRepo) Create(c *entity.Customer) error {
	f.customers[c.ID] = c
	return nil
}

func (f *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return f.customers[id], nil
}

func (f *fakeCustomerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range f.customers {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCustomerRepo) Update(c *entity.Customer) error {
	if _, ok := f.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	f.customers[c.ID] = c
	return nil
}

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
}

func (f *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	f.invoices[inv.ID] = inv
	return nil
}

func (f *fakeInvoiceRepo) CreateItem(*entity.LineItem) error { return nil }

func (f *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return f.invoices[id], nil
}

func (f *fakeInvoiceRepo) GetItemsByInvoiceID(string) ([]entity.LineItem, error) { return nil, nil }

func (f *fakeInvoiceRepo) ListByCompany(companyID string, includeDeleted bool, limit, offset int) ([]*entity.Invoice, error) {
	return nil, nil
}

func (f *fakeInvoiceRepo) ListActiveByCustomer(companyID, customerID string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range f.invoices {
		if inv.CompanyID == companyID && inv.CustomerID == customerID && !inv.IsDeleted {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvoiceRepo) Update(inv *entity.Invoice) error {
	f.invoices[inv.ID] = inv
	return nil
}

func (f *fakeInvoiceRepo) DeleteItems(string) error { return nil }

func (f *fakeInvoiceRepo) SetDeleted(id string, deleted bool, at time.Time) error {
	inv, ok := f.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.IsDeleted = deleted
	return nil
}

func (f *fakeInvoiceRepo) NextSequence(companyID, prefix, period string) (int, error) {
	return len(f.invoices) + 1, nil
}

type fakePaymentRepo struct {
	payments map[string]*entity.Payment
}

func (f *fakePaymentRepo) Create(p *entity.Payment) error {
	f.payments[p.ID] = p
	return nil
}

func (f *fakePaymentRepo) GetByID(id string) (*entity.Payment, error) {
	return f.payments[id], nil
}

func (f *fakePaymentRepo) ListByCustomer(companyID, customerID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range f.payments {
		if p.CompanyID == companyID && p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) Update(p *entity.Payment) error {
	if _, ok := f.payments[p.ID]; !ok {
		return domain.ErrNotFound
	}
	f.payments[p.ID] = p
	return nil
}

func (f *fakePaymentRepo) Delete(id string) error {
	if _, ok := f.payments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.payments, id)
	return nil
}

// fakeTxRunner invokes the callback with the fixture repos and counts runs,
// so tests can assert which writes go through the transaction boundary.
type fakeTxRunner struct {
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	runs        int
}

func (f *fakeTxRunner) RunBilling(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	f.runs++
	return fn(f.invoiceRepo, f.paymentRepo)
}

// paymentFixture wires a PaymentUseCase over one customer with one open
// invoice of principal 1000, not yet due (so no interest complicates sums).
func paymentFixture() (*appbilling.PaymentUseCase, *fakeTxRunner, *fakePaymentRepo) {
	customerRepo := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		fixCustomerID: {ID: fixCustomerID, CompanyID: fixCompanyID, Name: "Asha Jewellers", GSTIN: "27AAPFU0939F1ZV"},
	}}
	invoiceRepo := &fakeInvoiceRepo{invoices: map[string]*entity.Invoice{
		fixInvoiceID: {
			ID:         fixInvoiceID,
			CompanyID:  fixCompanyID,
			CustomerID: fixCustomerID,
			Number:     "INV-260100001",
			Principal:  decimal.RequireFromString("1000"),
			IssueDate:  time.Now(),
			DueDate:    time.Now().AddDate(0, 1, 0),
		},
	}}
	paymentRepo := &fakePaymentRepo{payments: map[string]*entity.Payment{}}
	tx := &fakeTxRunner{invoiceRepo: invoiceRepo, paymentRepo: paymentRepo}
	uc := appbilling.NewPaymentUseCase(tx, customerRepo, paymentRepo)
	return uc, tx, paymentRepo
}

func recordFixture(t *testing.T, uc *appbilling.PaymentUseCase, notes string) *dto.PaymentResponse {
	t.Helper()
	resp, err := uc.Record(context.Background(), fixCompanyID, dto.RecordPaymentRequest{
		CustomerID:  fixCustomerID,
		TotalAmount: decimal.RequireFromString("400"),
		Allocations: map[string]dto.AllocationRequest{
			fixInvoiceID: {Principal: decimal.RequireFromString("400"), Interest: decimal.Zero},
		},
		Notes: notes,
	})
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

// Deleting a payment must go through the same transactional boundary as
// Record and Edit: header and allocation rows leave the book together, never
// one without the other.
func TestPaymentUseCase_DeleteRunsInOneTransaction(t *testing.T) {
	uc, tx, paymentRepo := paymentFixture()
	payment := recordFixture(t, uc, "first instalment")
	runsAfterRecord := tx.runs

	require.NoError(t, uc.Delete(context.Background(), fixCompanyID, payment.ID))

	assert.Equal(t, runsAfterRecord+1, tx.runs,
		"delete must execute inside the transaction runner")
	_, ok := paymentRepo.payments[payment.ID]
	assert.False(t, ok, "payment must be gone after delete")

	err := uc.Delete(context.Background(), fixCompanyID, payment.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "second delete must not find the payment")
}

// ──────────────────────────────────────────────────────────────────────────────
// Edit
// ──────────────────────────────────────────────────────────────────────────────

// A full edit replaces every field from the request, so submitting empty
// notes clears the stored note instead of keeping the old one.
func TestPaymentUseCase_EditClearsNotes(t *testing.T) {
	uc, _, paymentRepo := paymentFixture()
	payment := recordFixture(t, uc, "first instalment")

	resp, err := uc.Edit(context.Background(), fixCompanyID, payment.ID, dto.RecordPaymentRequest{
		TotalAmount: decimal.RequireFromString("400"),
		Allocations: map[string]dto.AllocationRequest{
			fixInvoiceID: {Principal: decimal.RequireFromString("400"), Interest: decimal.Zero},
		},
		Notes: "",
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Notes)
	assert.Empty(t, paymentRepo.payments[payment.ID].Notes, "stored note must be cleared")
}

// An edit naming a different customer than the stored payment is malformed:
// payments never move between customers.
func TestPaymentUseCase_EditRejectsMismatchedCustomer(t *testing.T) {
	uc, _, paymentRepo := paymentFixture()
	payment := recordFixture(t, uc, "")

	_, err := uc.Edit(context.Background(), fixCompanyID, payment.ID, dto.RecordPaymentRequest{
		CustomerID:  "00000000-0000-0000-0000-00000000cu99",
		TotalAmount: decimal.RequireFromString("400"),
		Allocations: map[string]dto.AllocationRequest{
			fixInvoiceID: {Principal: decimal.RequireFromString("400"), Interest: decimal.Zero},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, decimal.RequireFromString("400").Equal(paymentRepo.payments[payment.ID].TotalAmount),
		"rejected edit must leave the payment untouched")

	// Naming the payment's own customer stays valid.
	_, err = uc.Edit(context.Background(), fixCompanyID, payment.ID, dto.RecordPaymentRequest{
		CustomerID:  fixCustomerID,
		TotalAmount: decimal.RequireFromString("400"),
		Allocations: map[string]dto.AllocationRequest{
			fixInvoiceID: {Principal: decimal.RequireFromString("400"), Interest: decimal.Zero},
		},
	})
	assert.NoError(t, err)
}

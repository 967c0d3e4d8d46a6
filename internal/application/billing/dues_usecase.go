package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gemsaccurate/billing-api/internal/application/dto"
	"github.com/gemsaccurate/billing-api/internal/domain"
	domainbilling "github.com/gemsaccurate/billing-api/internal/domain/billing"
	"github.com/gemsaccurate/billing-api/internal/domain/entity"
	"github.com/gemsaccurate/billing-api/internal/domain/repository"
)

// DuesUseCase derives per-invoice due figures for a customer. Nothing here is
// cached or stored: every call recomputes from the invoice principals and the
// full payment history, so edits and deletions of payments are reflected on
// the next read with no invalidation logic.
type DuesUseCase struct {
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
	paymentRepo  repository.PaymentRepository
}

// NewDuesUseCase builds the use case.
func NewDuesUseCase(
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) *DuesUseCase {
	return &DuesUseCase{customerRepo: customerRepo, invoiceRepo: invoiceRepo, paymentRepo: paymentRepo}
}

// CustomerDues returns the statement: every non-deleted invoice of the
// customer with amounts paid and due as of the given date.
func (uc *DuesUseCase) CustomerDues(ctx context.Context, companyID, customerID string, asOf time.Time) (*dto.CustomerDuesResponse, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	invoices, payments, err := loadLedger(uc.invoiceRepo, uc.paymentRepo, companyID, customerID)
	if err != nil {
		return nil, err
	}

	resp := &dto.CustomerDuesResponse{
		CustomerID:        customerID,
		CustomerName:      customer.Name,
		AsOf:              asOf.Format(dateLayout),
		Invoices:          make([]dto.InvoiceDuesResponse, 0, len(invoices)),
		TotalPrincipalDue: decimal.Zero,
		TotalInterestDue:  decimal.Zero,
		TotalDue:          decimal.Zero,
	}
	for _, inv := range invoices {
		figures := domainbilling.ComputeDue(inv, payments, asOf)
		resp.Invoices = append(resp.Invoices, dto.InvoiceDuesResponse{
			InvoiceID:     inv.ID,
			Number:        inv.Number,
			IssueDate:     inv.IssueDate.Format(dateLayout),
			DueDate:       inv.DueDate.Format(dateLayout),
			Principal:     inv.Principal,
			PrincipalPaid: figures.PrincipalPaid,
			InterestPaid:  figures.InterestPaid,
			PrincipalDue:  figures.PrincipalDue,
			InterestDue:   figures.InterestDue,
			TotalDue:      figures.TotalDue,
		})
		resp.TotalPrincipalDue = resp.TotalPrincipalDue.Add(figures.PrincipalDue)
		resp.TotalInterestDue = resp.TotalInterestDue.Add(figures.InterestDue)
		resp.TotalDue = resp.TotalDue.Add(figures.TotalDue)
	}
	return resp, nil
}

// loadLedger fetches the customer's active invoices and complete payment
// history, the consistent snapshot every derivation runs on.
func loadLedger(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	companyID, customerID string,
) ([]*entity.Invoice, []*entity.Payment, error) {
	invoices, err := invoiceRepo.ListActiveByCustomer(companyID, customerID)
	if err != nil {
		return nil, nil, err
	}
	payments, err := paymentRepo.ListByCustomer(companyID, customerID)
	if err != nil {
		return nil, nil, err
	}
	return invoices, payments, nil
}

// deriveDueMap computes due figures for a set of invoices, keyed by invoice
// id, as the allocation validator consumes them.
func deriveDueMap(invoices []*entity.Invoice, payments []*entity.Payment, asOf time.Time) map[string]domainbilling.DueFigures {
	dues := make(map[string]domainbilling.DueFigures, len(invoices))
	for _, inv := range invoices {
		dues[inv.ID] = domainbilling.ComputeDue(inv, payments, asOf)
	}
	return dues
}

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

const dateLayout = "2006-01-02"

// InvoiceUseCase creates, edits and soft-deletes invoices. Pricing runs
// through the billing engine once at creation and again on full edit; the
// computed total becomes the invoice principal.
type InvoiceUseCase struct {
	txRunner     BillingTxRunner
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
	defaults     Defaults
}

// NewInvoiceUseCase builds the use case.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	defaults Defaults,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		defaults:     defaults,
	}
}

// CreateInvoice prices the lines, aggregates totals, claims the next number
// for the prefix+period and persists header and lines in one transaction.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, companyID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	customer, err := uc.ownedCustomer(companyID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	items, err := buildLineItems(in.Items)
	if err != nil {
		return nil, err
	}
	issueDate, dueDate, err := uc.resolveDates(in.IssueDate, in.DueDate)
	if err != nil {
		return nil, err
	}
	if in.Discount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	totals := domainbilling.Aggregate(items, in.Discount, customer.HasGSTIN())

	now := time.Now()
	inv := &entity.Invoice{
		ID:                     uuid.New().String(),
		CompanyID:              companyID,
		CustomerID:             customer.ID,
		Prefix:                 domainbilling.NumberPrefix(customer.HasGSTIN()),
		Period:                 domainbilling.NumberPeriod(issueDate),
		Items:                  items,
		Discount:               in.Discount,
		Subtotal:               totals.Subtotal,
		CGST:                   totals.CGST,
		SGST:                   totals.SGST,
		Principal:              totals.Total,
		IssueDate:              issueDate,
		DueDate:                dueDate,
		InterestRate:           uc.resolveInterestRate(in.InterestRate),
		InterestCompoundPeriod: uc.resolveCompoundPeriod(in.InterestCompoundPeriod),
		PaymentMode:            in.PaymentMode,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, _ repository.PaymentRepository) error {
		seq, err := invoiceRepo.NextSequence(companyID, inv.Prefix, inv.Period)
		if err != nil {
			return err
		}
		inv.Sequence = seq
		inv.Number = domainbilling.FormatNumber(inv.Prefix, issueDate, seq)
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for i := range inv.Items {
			inv.Items[i].ID = uuid.New().String()
			inv.Items[i].InvoiceID = inv.ID
			if err := invoiceRepo.CreateItem(&inv.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, customer.Name), nil
}

// UpdateInvoice is a full edit: all lines are replaced and pricing re-runs,
// replacing the principal. The invoice keeps its id and number.
func (uc *InvoiceUseCase) UpdateInvoice(ctx context.Context, companyID, id string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.ownedInvoice(companyID, id)
	if err != nil {
		return nil, err
	}
	if inv.IsDeleted {
		return nil, domain.ErrInvoiceDeleted
	}
	customer, err := uc.ownedCustomer(companyID, inv.CustomerID)
	if err != nil {
		return nil, err
	}
	items, err := buildLineItems(in.Items)
	if err != nil {
		return nil, err
	}
	issueDate, dueDate, err := uc.resolveDates(in.IssueDate, in.DueDate)
	if err != nil {
		return nil, err
	}
	if in.Discount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	totals := domainbilling.Aggregate(items, in.Discount, customer.HasGSTIN())

	inv.Items = items
	inv.Discount = in.Discount
	inv.Subtotal = totals.Subtotal
	inv.CGST = totals.CGST
	inv.SGST = totals.SGST
	inv.Principal = totals.Total
	inv.IssueDate = issueDate
	inv.DueDate = dueDate
	inv.InterestRate = uc.resolveInterestRate(in.InterestRate)
	inv.InterestCompoundPeriod = uc.resolveCompoundPeriod(in.InterestCompoundPeriod)
	if in.PaymentMode != "" {
		inv.PaymentMode = in.PaymentMode
	}
	inv.UpdatedAt = time.Now()

	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, _ repository.PaymentRepository) error {
		if err := invoiceRepo.Update(inv); err != nil {
			return err
		}
		if err := invoiceRepo.DeleteItems(inv.ID); err != nil {
			return err
		}
		for i := range inv.Items {
			inv.Items[i].ID = uuid.New().String()
			inv.Items[i].InvoiceID = inv.ID
			if err := invoiceRepo.CreateItem(&inv.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, customer.Name), nil
}

// GetInvoice returns an invoice with its lines.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.ownedInvoice(companyID, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(inv.CustomerID); customer != nil {
		customerName = customer.Name
	}
	return toInvoiceResponse(inv, customerName), nil
}

// ListInvoices lists the company's invoices; deleted ones only on request.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, companyID string, includeDeleted bool, limit, offset int) ([]*dto.InvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.ListByCompany(companyID, includeDeleted, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv, ""))
	}
	return out, nil
}

// DeleteInvoice soft-deletes: the invoice drops out of dues but stays
// recoverable. The core never hard-deletes invoices.
func (uc *InvoiceUseCase) DeleteInvoice(ctx context.Context, companyID, id string) error {
	inv, err := uc.ownedInvoice(companyID, id)
	if err != nil {
		return err
	}
	return uc.invoiceRepo.SetDeleted(inv.ID, true, time.Now())
}

// RecoverInvoice clears the soft-delete flag.
func (uc *InvoiceUseCase) RecoverInvoice(ctx context.Context, companyID, id string) error {
	inv, err := uc.ownedInvoice(companyID, id)
	if err != nil {
		return err
	}
	return uc.invoiceRepo.SetDeleted(inv.ID, false, time.Now())
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (uc *InvoiceUseCase) ownedCustomer(companyID, customerID string) (*entity.Customer, error) {
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

func (uc *InvoiceUseCase) ownedInvoice(companyID, id string) (*entity.Invoice, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil || inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return inv, nil
}

// buildLineItems validates the submitted lines. The engine itself computes
// literal arithmetic on whatever it gets; rejecting malformed input is this
// boundary's job.
func buildLineItems(in []dto.LineItemRequest) ([]entity.LineItem, error) {
	if len(in) == 0 {
		return nil, domain.ErrInvalidInput
	}
	items := make([]entity.LineItem, 0, len(in))
	for _, it := range in {
		if it.ItemName == "" || it.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		if it.NetWeight.LessThan(decimal.Zero) ||
			it.Rate.LessThan(decimal.Zero) ||
			it.MakingChargeValue.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, entity.LineItem{
			ItemName:          it.ItemName,
			HSN:               it.HSN,
			Purity:            it.Purity,
			Quantity:          it.Quantity,
			GrossWeight:       it.GrossWeight,
			NetWeight:         it.NetWeight,
			Rate:              it.Rate,
			MakingChargeType:  it.MakingChargeType,
			MakingChargeValue: it.MakingChargeValue,
			ApplyTax:          it.ApplyTax,
		})
	}
	return items, nil
}

// resolveDates parses issue and due dates, defaulting issue to today and due
// to issue + the configured credit days. A due date before issue is rejected.
func (uc *InvoiceUseCase) resolveDates(issueStr, dueStr string) (issue, due time.Time, err error) {
	issue = time.Now().Truncate(24 * time.Hour)
	if issueStr != "" {
		issue, err = time.Parse(dateLayout, issueStr)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
	}
	due = issue.AddDate(0, 0, uc.defaults.DueDays)
	if dueStr != "" {
		due, err = time.Parse(dateLayout, dueStr)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
	}
	if due.Before(issue) {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	return issue, due, nil
}

func (uc *InvoiceUseCase) resolveInterestRate(rate *decimal.Decimal) decimal.Decimal {
	if rate != nil {
		return *rate
	}
	if d, err := decimal.NewFromString(uc.defaults.InterestRate); err == nil {
		return d
	}
	return decimal.Zero
}

func (uc *InvoiceUseCase) resolveCompoundPeriod(period string) string {
	switch period {
	case entity.CompoundMonthly, entity.CompoundQuarterly, entity.CompoundHalfYearly, entity.CompoundAnnually:
		return period
	}
	if uc.defaults.InterestCompoundPeriod != "" {
		return uc.defaults.InterestCompoundPeriod
	}
	return entity.CompoundMonthly
}

func toInvoiceResponse(inv *entity.Invoice, customerName string) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:                     inv.ID,
		CompanyID:              inv.CompanyID,
		CustomerID:             inv.CustomerID,
		CustomerName:           customerName,
		Number:                 inv.Number,
		IsTaxInvoice:           inv.Prefix == entity.PrefixTaxInvoice,
		Items:                  make([]dto.LineItemResponse, 0, len(inv.Items)),
		Subtotal:               inv.Subtotal,
		CGST:                   inv.CGST,
		SGST:                   inv.SGST,
		Discount:               inv.Discount,
		Total:                  inv.Principal,
		IssueDate:              inv.IssueDate.Format(dateLayout),
		DueDate:                inv.DueDate.Format(dateLayout),
		InterestRate:           inv.InterestRate,
		InterestCompoundPeriod: inv.InterestCompoundPeriod,
		PaymentMode:            inv.PaymentMode,
		IsDeleted:              inv.IsDeleted,
	}
	for _, item := range inv.Items {
		resp.Items = append(resp.Items, dto.LineItemResponse{
			ID:                item.ID,
			ItemName:          item.ItemName,
			HSN:               item.HSN,
			Purity:            item.Purity,
			Quantity:          item.Quantity,
			GrossWeight:       item.GrossWeight,
			NetWeight:         item.NetWeight,
			Rate:              item.Rate,
			MakingChargeType:  item.MakingChargeType,
			MakingChargeValue: item.MakingChargeValue,
			ApplyTax:          item.ApplyTax,
			Amount:            domainbilling.PriceLine(item),
		})
	}
	return resp
}

package repository

import (
	"time"

	"github.com/gemsaccurate/billing-api/internal/domain/entity"
)

// InvoiceRepository persistence port for invoice headers and line items.
//
// NextSequence returns the next number sequence for a company+prefix+period
// combination, starting at 1. Implementations must be safe to call inside the
// same transaction that inserts the invoice, so two concurrent creations
// cannot claim the same number.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateItem(item *entity.LineItem) error
	GetByID(id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]entity.LineItem, error)
	ListByCompany(companyID string, includeDeleted bool, limit, offset int) ([]*entity.Invoice, error)
	ListActiveByCustomer(companyID, customerID string) ([]*entity.Invoice, error)
	Update(invoice *entity.Invoice) error
	DeleteItems(invoiceID string) error
	SetDeleted(id string, deleted bool, at time.Time) error
	NextSequence(companyID, prefix, period string) (int, error)
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gemsaccurate/billing-api/internal/domain"
	"github.com/gemsaccurate/billing-api/internal/domain/entity"
	"github.com/gemsaccurate/billing-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository (usable with pool or tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass a pool or tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, company_id, customer_id, number, prefix, period, sequence,
		discount, subtotal, cgst, sgst, principal, issue_date, due_date,
		interest_rate, interest_compound_period, payment_mode, is_deleted, created_at, updated_at`

// Create persists an invoice header. Line items go through CreateItem within
// the same transaction.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CompanyID, invoice.CustomerID, invoice.Number, invoice.Prefix,
		invoice.Period, invoice.Sequence, invoice.Discount, invoice.Subtotal, invoice.CGST,
		invoice.SGST, invoice.Principal, invoice.IssueDate, invoice.DueDate,
		invoice.InterestRate, invoice.InterestCompoundPeriod, invoice.PaymentMode,
		invoice.IsDeleted, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		// unique (company_id, prefix, period, sequence) backs NextSequence
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem persists one line item. Display order follows insertion order.
func (r *InvoiceRepo) CreateItem(item *entity.LineItem) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, item_name, hsn, purity, quantity,
			gross_weight, net_weight, rate, making_charge_type, making_charge_value, apply_tax)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, item.ItemName, item.HSN, item.Purity, item.Quantity,
		item.GrossWeight, item.NetWeight, item.Rate, item.MakingChargeType,
		item.MakingChargeValue, item.ApplyTax,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// GetByID fetches an invoice header with its line items. Deleted invoices are
// returned too; callers decide what a soft-deleted invoice means for them.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	items, err := r.GetItemsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return inv, nil
}

// GetItemsByInvoiceID fetches line items in display order.
func (r *InvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]entity.LineItem, error) {
	query := `
		SELECT id, invoice_id, item_name, hsn, purity, quantity,
			gross_weight, net_weight, rate, making_charge_type, making_charge_value, apply_tax
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()

	var items []entity.LineItem
	for rows.Next() {
		var it entity.LineItem
		err := rows.Scan(
			&it.ID, &it.InvoiceID, &it.ItemName, &it.HSN, &it.Purity, &it.Quantity,
			&it.GrossWeight, &it.NetWeight, &it.Rate, &it.MakingChargeType,
			&it.MakingChargeValue, &it.ApplyTax,
		)
		if err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListByCompany lists invoice headers, newest first. Soft-deleted invoices are
// excluded unless includeDeleted is set. Items are not loaded.
func (r *InvoiceRepo) ListByCompany(companyID string, includeDeleted bool, limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE company_id = $1 AND ($2 OR NOT is_deleted)
		ORDER BY issue_date DESC, number DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, includeDeleted, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	return collectInvoices(rows)
}

// ListActiveByCustomer lists all non-deleted invoices of one customer with
// their items. This is the ledger the dues derivation walks, so it is not
// paginated.
func (r *InvoiceRepo) ListActiveByCustomer(companyID, customerID string) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE company_id = $1 AND customer_id = $2 AND NOT is_deleted
		ORDER BY issue_date, number`
	rows, err := r.q.Query(context.Background(), query, companyID, customerID)
	if err != nil {
		return nil, fmt.Errorf("list customer invoices: %w", err)
	}
	defer rows.Close()

	invoices, err := collectInvoices(rows)
	if err != nil {
		return nil, err
	}
	for _, inv := range invoices {
		items, err := r.GetItemsByInvoiceID(inv.ID)
		if err != nil {
			return nil, err
		}
		inv.Items = items
	}
	return invoices, nil
}

// Update rewrites the invoice header. Number components never change on edit;
// only the repriced amounts, dates, terms and mode do.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET customer_id = $1, discount = $2, subtotal = $3, cgst = $4, sgst = $5,
			principal = $6, issue_date = $7, due_date = $8, interest_rate = $9,
			interest_compound_period = $10, payment_mode = $11, updated_at = $12
		WHERE id = $13`
	tag, err := r.q.Exec(context.Background(), query,
		invoice.CustomerID, invoice.Discount, invoice.Subtotal, invoice.CGST, invoice.SGST,
		invoice.Principal, invoice.IssueDate, invoice.DueDate, invoice.InterestRate,
		invoice.InterestCompoundPeriod, invoice.PaymentMode, invoice.UpdatedAt, invoice.ID,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteItems removes all line items of an invoice (full-edit re-create).
func (r *InvoiceRepo) DeleteItems(invoiceID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	return nil
}

// SetDeleted flips the soft-delete flag (delete or recover).
func (r *InvoiceRepo) SetDeleted(id string, deleted bool, at time.Time) error {
	query := `UPDATE invoices SET is_deleted = $1, updated_at = $2 WHERE id = $3`
	tag, err := r.q.Exec(context.Background(), query, deleted, at, id)
	if err != nil {
		return fmt.Errorf("set invoice deleted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// NextSequence returns the next invoice sequence for company+prefix+period.
// Call it inside the transaction that inserts the invoice; the unique index
// on (company_id, prefix, period, sequence) rejects a lost race.
func (r *InvoiceRepo) NextSequence(companyID, prefix, period string) (int, error) {
	query := `
		SELECT COALESCE(MAX(sequence), 0) + 1
		FROM invoices
		WHERE company_id = $1 AND prefix = $2 AND period = $3`
	var next int
	err := r.q.QueryRow(context.Background(), query, companyID, prefix, period).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next invoice sequence: %w", err)
	}
	return next, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.Number, &inv.Prefix,
		&inv.Period, &inv.Sequence, &inv.Discount, &inv.Subtotal, &inv.CGST,
		&inv.SGST, &inv.Principal, &inv.IssueDate, &inv.DueDate,
		&inv.InterestRate, &inv.InterestCompoundPeriod, &inv.PaymentMode,
		&inv.IsDeleted, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func collectInvoices(rows pgx.Rows) ([]*entity.Invoice, error) {
	var invoices []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

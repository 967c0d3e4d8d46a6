package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gemsaccurate/billing-api/internal/domain"
	"github.com/gemsaccurate/billing-api/internal/domain/entity"
	"github.com/gemsaccurate/billing-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implements PaymentRepository (usable with pool or tx).
//
// A payment is a header row plus one payment_allocations row per invoice.
// Create and Update must run inside a transaction (TxRunner.RunBilling) so
// the header and its allocations land together.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository builds the adapter. Pass a pool or tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, company_id, customer_id, date, total_amount, notes, created_at, updated_at`

// Create persists the payment and its allocation rows.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.CompanyID, payment.CustomerID, payment.Date,
		payment.TotalAmount, payment.Notes, payment.CreatedAt, payment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return r.insertAllocations(payment)
}

// GetByID fetches a payment with its allocations.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	p, err := scanPayment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	if p.Allocations, err = r.loadAllocations(p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// ListByCustomer lists all payments of one customer with allocations, oldest
// first. Dues derivation walks the full history, so it is not paginated.
func (r *PaymentRepo) ListByCustomer(companyID, customerID string) ([]*entity.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE company_id = $1 AND customer_id = $2
		ORDER BY date, created_at`
	rows, err := r.q.Query(context.Background(), query, companyID, customerID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range payments {
		if p.Allocations, err = r.loadAllocations(p.ID); err != nil {
			return nil, err
		}
	}
	return payments, nil
}

// Update rewrites the payment header and replaces its allocation rows.
func (r *PaymentRepo) Update(payment *entity.Payment) error {
	query := `
		UPDATE payments
		SET total_amount = $1, notes = $2, updated_at = $3
		WHERE id = $4`
	tag, err := r.q.Exec(context.Background(), query,
		payment.TotalAmount, payment.Notes, payment.UpdatedAt, payment.ID,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM payment_allocations WHERE payment_id = $1`, payment.ID); err != nil {
		return fmt.Errorf("delete payment allocations: %w", err)
	}
	return r.insertAllocations(payment)
}

// Delete removes the payment and its allocations.
func (r *PaymentRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM payment_allocations WHERE payment_id = $1`, id); err != nil {
		return fmt.Errorf("delete payment allocations: %w", err)
	}
	tag, err := r.q.Exec(context.Background(), `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PaymentRepo) insertAllocations(payment *entity.Payment) error {
	query := `
		INSERT INTO payment_allocations (payment_id, invoice_id, principal_applied, interest_applied)
		VALUES ($1, $2, $3, $4)`
	for invoiceID, entry := range payment.Allocations {
		_, err := r.q.Exec(context.Background(), query,
			payment.ID, invoiceID, entry.PrincipalApplied, entry.InterestApplied,
		)
		if err != nil {
			return fmt.Errorf("insert payment allocation: %w", err)
		}
	}
	return nil
}

func (r *PaymentRepo) loadAllocations(paymentID string) (map[string]entity.AllocationEntry, error) {
	query := `
		SELECT invoice_id, principal_applied, interest_applied
		FROM payment_allocations
		WHERE payment_id = $1`
	rows, err := r.q.Query(context.Background(), query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("list payment allocations: %w", err)
	}
	defer rows.Close()

	allocations := make(map[string]entity.AllocationEntry)
	for rows.Next() {
		var invoiceID string
		var entry entity.AllocationEntry
		if err := rows.Scan(&invoiceID, &entry.PrincipalApplied, &entry.InterestApplied); err != nil {
			return nil, fmt.Errorf("scan payment allocation: %w", err)
		}
		allocations[invoiceID] = entry
	}
	return allocations, rows.Err()
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.CustomerID, &p.Date,
		&p.TotalAmount, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

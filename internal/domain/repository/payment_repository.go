package repository

import "github.com/gemsaccurate/billing-api/internal/domain/entity"

// PaymentRepository persistence port for payments and their allocations.
// Create and Update persist the payment and its allocation rows as one unit,
// and Delete removes both as one unit; readers must never observe a
// partially written allocation.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	ListByCustomer(companyID, customerID string) ([]*entity.Payment, error)
	Update(payment *entity.Payment) error
	Delete(id string) error
}

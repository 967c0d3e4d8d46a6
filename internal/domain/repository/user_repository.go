package repository

import "github.com/gemsaccurate/billing-api/internal/domain/entity"

// UserRepository persistence port for users.
type UserRepository interface {
	Create(user *entity.User) error
	FindByEmail(email string) (*entity.User, error)
	GetByEmailAndCompany(email, companyID string) (*entity.User, error)
}

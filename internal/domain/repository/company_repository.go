package repository

import "github.com/gemsaccurate/billing-api/internal/domain/entity"

// CompanyRepository persistence port for tenants (shops).
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	Update(company *entity.Company) error
}

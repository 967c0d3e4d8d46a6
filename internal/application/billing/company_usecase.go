package billing

import (
	"time"

	"github.com/gemsaccurate/billing-api/internal/application/dto"
	"github.com/gemsaccurate/billing-api/internal/domain"
	"github.com/gemsaccurate/billing-api/internal/domain/entity"
	"github.com/gemsaccurate/billing-api/internal/domain/repository"
)

// CompanyUseCase shop settings. The details managed here feed the seller
// header of every invoice PDF; changing GSTIN does not re-prefix invoices
// already issued.
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyUseCase builds the use case.
func NewCompanyUseCase(companyRepo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo}
}

// Get returns the caller's own company.
func (uc *CompanyUseCase) Get(companyID string) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// Update replaces the shop's business details.
func (uc *CompanyUseCase) Update(companyID string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	company.Name = in.Name
	company.Address = in.Address
	company.Phone = in.Phone
	company.GSTIN = in.GSTIN
	company.UpdatedAt = time.Now()
	if err := uc.companyRepo.Update(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:      c.ID,
		Name:    c.Name,
		Address: c.Address,
		Phone:   c.Phone,
		GSTIN:   c.GSTIN,
	}
}

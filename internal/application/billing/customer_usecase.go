package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/gemsaccurate/billing-api/internal/application/dto"
	"github.com/gemsaccurate/billing-api/internal/domain"
	"github.com/gemsaccurate/billing-api/internal/domain/entity"
	"github.com/gemsaccurate/billing-api/internal/domain/repository"
)

// CustomerUseCase customer record management.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerUseCase builds the use case.
func NewCustomerUseCase(customerRepo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo}
}

// Create registers a customer for the company.
func (uc *CustomerUseCase) Create(companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Name:         in.Name,
		FatherName:   in.FatherName,
		BusinessName: in.BusinessName,
		Address:      in.Address,
		Phone:        in.Phone,
		GSTIN:        in.GSTIN,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID returns a customer, scoped to the company.
func (uc *CustomerUseCase) GetByID(companyID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toCustomerResponse(customer), nil
}

// List lists the company's customers with pagination.
func (uc *CustomerUseCase) List(companyID string, limit, offset int) ([]*dto.CustomerResponse, error) {
	customers, err := uc.customerRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Update replaces a customer's details. Changing GSTIN only affects invoices
// issued afterwards; existing invoices keep their prefix and tax treatment.
func (uc *CustomerUseCase) Update(companyID, id string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	customer.Name = in.Name
	customer.FatherName = in.FatherName
	customer.BusinessName = in.BusinessName
	customer.Address = in.Address
	customer.Phone = in.Phone
	customer.GSTIN = in.GSTIN
	customer.UpdatedAt = time.Now()
	if err := uc.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:           c.ID,
		CompanyID:    c.CompanyID,
		Name:         c.Name,
		FatherName:   c.FatherName,
		BusinessName: c.BusinessName,
		Address:      c.Address,
		Phone:        c.Phone,
		GSTIN:        c.GSTIN,
	}
}

package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/gemsaccurate/billing-api/internal/application/billing"
	"github.com/gemsaccurate/billing-api/internal/application/dto"
	"github.com/gemsaccurate/billing-api/internal/domain"
	"github.com/gemsaccurate/billing-api/internal/domain/entity"
)

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func (f *fakeCompanyRepo) Create(c *entity.Company) error {
	f.companies[c.ID] = c
	return nil
}

func (f *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return f.companies[id], nil
}

func (f *fakeCompanyRepo) Update(c *entity.Company) error {
	if _, ok := f.companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	f.companies[c.ID] = c
	return nil
}

func companyFixture() (*appbilling.CompanyUseCase, *fakeCompanyRepo) {
	repo := &fakeCompanyRepo{companies: map[string]*entity.Company{
		fixCompanyID: {
			ID:      fixCompanyID,
			Name:    "Old Name Jewellers",
			Address: "12 Zaveri Bazaar",
			Phone:   "022-0000000",
			GSTIN:   "27AAPFU0939F1ZV",
		},
	}}
	return appbilling.NewCompanyUseCase(repo), repo
}

// Updating the shop settings replaces the business details that the invoice
// PDF header renders.
func TestCompanyUseCase_UpdateReplacesDetails(t *testing.T) {
	uc, repo := companyFixture()

	resp, err := uc.Update(fixCompanyID, dto.UpdateCompanyRequest{
		Name:    "New Name Jewellers",
		Address: "14 Zaveri Bazaar",
		Phone:   "022-1111111",
		GSTIN:   "27AABCU9603R1ZX",
	})
	require.NoError(t, err)

	assert.Equal(t, "New Name Jewellers", resp.Name)
	assert.Equal(t, "27AABCU9603R1ZX", resp.GSTIN)
	stored := repo.companies[fixCompanyID]
	assert.Equal(t, "New Name Jewellers", stored.Name)
	assert.Equal(t, "14 Zaveri Bazaar", stored.Address)
	assert.Equal(t, "022-1111111", stored.Phone)
}

func TestCompanyUseCase_UpdateRequiresName(t *testing.T) {
	uc, repo := companyFixture()

	_, err := uc.Update(fixCompanyID, dto.UpdateCompanyRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Old Name Jewellers", repo.companies[fixCompanyID].Name,
		"rejected update must leave the company untouched")
}

func TestCompanyUseCase_UnknownCompanyNotFound(t *testing.T) {
	uc, _ := companyFixture()

	_, err := uc.Get("00000000-0000-0000-0000-00000000c099")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Update("00000000-0000-0000-0000-00000000c099", dto.UpdateCompanyRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

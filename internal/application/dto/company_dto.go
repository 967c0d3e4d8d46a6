package dto

// UpdateCompanyRequest body for PUT /api/company: the shop's business
// details printed in the header of every invoice PDF.
type UpdateCompanyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	GSTIN   string `json:"gstin,omitempty"`
}

// CompanyResponse company in responses.
type CompanyResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	GSTIN   string `json:"gstin,omitempty"`
}

package entity

import "time"

// Company is a tenant: one jewelry shop. Every customer, invoice, payment and
// user belongs to exactly one company.
type Company struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	GSTIN     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

package entity

import "time"

// Customer is a client of the shop. GSTIN empty means the customer buys on
// cash memos and never pays GST; a non-empty GSTIN switches invoices for this
// customer to tax-invoice mode.
type Customer struct {
	ID           string
	CompanyID    string
	Name         string
	FatherName   string
	BusinessName string
	Address      string
	Phone        string
	GSTIN        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasGSTIN reports whether invoices for this customer are tax invoices.
func (c *Customer) HasGSTIN() bool {
	return c != nil && c.GSTIN != ""
}

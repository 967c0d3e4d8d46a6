package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest body for POST /api/customers.
type CreateCustomerRequest struct {
	Name         string `json:"name"`
	FatherName   string `json:"father_name,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	GSTIN        string `json:"gstin,omitempty"` // empty = cash-memo customer
}

// CustomerResponse customer in responses.
type CustomerResponse struct {
	ID           string `json:"id"`
	CompanyID    string `json:"company_id"`
	Name         string `json:"name"`
	FatherName   string `json:"father_name,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	GSTIN        string `json:"gstin,omitempty"`
}

// LineItemRequest one invoice line as submitted.
type LineItemRequest struct {
	ItemName          string          `json:"item_name"`
	HSN               string          `json:"hsn,omitempty"`
	Purity            string          `json:"purity,omitempty"`
	Quantity          int64           `json:"qty"`
	GrossWeight       decimal.Decimal `json:"gross_weight"`
	NetWeight         decimal.Decimal `json:"net_weight"`
	Rate              decimal.Decimal `json:"rate"`
	MakingChargeType  string          `json:"making_charge_type"`
	MakingChargeValue decimal.Decimal `json:"making_charge_value"`
	ApplyTax          bool            `json:"apply_tax"`
}

// CreateInvoiceRequest body for POST /api/invoices and PUT /api/invoices/:id
// (a full edit replaces everything and re-runs pricing).
//
// IssueDate/DueDate use YYYY-MM-DD. Empty interest fields fall back to the
// company defaults from configuration.
type CreateInvoiceRequest struct {
	CustomerID             string            `json:"customer_id"`
	Items                  []LineItemRequest `json:"items"`
	Discount               decimal.Decimal   `json:"discount"`
	IssueDate              string            `json:"issue_date,omitempty"`
	DueDate                string            `json:"due_date,omitempty"`
	InterestRate           *decimal.Decimal  `json:"interest_rate,omitempty"`
	InterestCompoundPeriod string            `json:"interest_compound_period,omitempty"`
	PaymentMode            string            `json:"payment_mode,omitempty"`
}

// LineItemResponse one priced line in responses.
type LineItemResponse struct {
	ID                string          `json:"id"`
	ItemName          string          `json:"item_name"`
	HSN               string          `json:"hsn,omitempty"`
	Purity            string          `json:"purity,omitempty"`
	Quantity          int64           `json:"qty"`
	GrossWeight       decimal.Decimal `json:"gross_weight"`
	NetWeight         decimal.Decimal `json:"net_weight"`
	Rate              decimal.Decimal `json:"rate"`
	MakingChargeType  string          `json:"making_charge_type"`
	MakingChargeValue decimal.Decimal `json:"making_charge_value"`
	ApplyTax          bool            `json:"apply_tax"`
	Amount            decimal.Decimal `json:"amount"` // priced line total
}

// InvoiceResponse invoice with lines and totals.
type InvoiceResponse struct {
	ID                     string             `json:"id"`
	CompanyID              string             `json:"company_id"`
	CustomerID             string             `json:"customer_id"`
	CustomerName           string             `json:"customer_name,omitempty"`
	Number                 string             `json:"number"`
	IsTaxInvoice           bool               `json:"is_tax_invoice"`
	Items                  []LineItemResponse `json:"items"`
	Subtotal               decimal.Decimal    `json:"subtotal"`
	CGST                   decimal.Decimal    `json:"cgst"`
	SGST                   decimal.Decimal    `json:"sgst"`
	Discount               decimal.Decimal    `json:"discount"`
	Total                  decimal.Decimal    `json:"total"`
	IssueDate              string             `json:"issue_date"`
	DueDate                string             `json:"due_date"`
	InterestRate           decimal.Decimal    `json:"interest_rate"`
	InterestCompoundPeriod string             `json:"interest_compound_period"`
	PaymentMode            string             `json:"payment_mode,omitempty"`
	IsDeleted              bool               `json:"is_deleted,omitempty"`
}

// AllocationRequest split of a payment applied to one invoice.
type AllocationRequest struct {
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
}

// RecordPaymentRequest body for POST /api/payments and PUT /api/payments/:id.
// Allocations maps invoice id to the proposed split; AsOf (YYYY-MM-DD,
// optional) fixes the evaluation date the dues are validated against.
type RecordPaymentRequest struct {
	CustomerID  string                       `json:"customer_id"`
	TotalAmount decimal.Decimal              `json:"total_amount"`
	Allocations map[string]AllocationRequest `json:"allocations"`
	AsOf        string                       `json:"as_of,omitempty"`
	Notes       string                       `json:"notes,omitempty"`
}

// AllocationResponse committed split in responses.
type AllocationResponse struct {
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
}

// PaymentResponse payment with committed allocations.
type PaymentResponse struct {
	ID          string                        `json:"id"`
	CompanyID   string                        `json:"company_id"`
	CustomerID  string                        `json:"customer_id"`
	Date        string                        `json:"date"`
	TotalAmount decimal.Decimal               `json:"total_amount"`
	Allocations map[string]AllocationResponse `json:"allocations"`
	Notes       string                        `json:"notes,omitempty"`
}

// InvoiceDuesResponse derived amounts for one invoice at the as-of date.
type InvoiceDuesResponse struct {
	InvoiceID     string          `json:"invoice_id"`
	Number        string          `json:"number"`
	IssueDate     string          `json:"issue_date"`
	DueDate       string          `json:"due_date"`
	Principal     decimal.Decimal `json:"principal"`
	PrincipalPaid decimal.Decimal `json:"principal_paid"`
	InterestPaid  decimal.Decimal `json:"interest_paid"`
	PrincipalDue  decimal.Decimal `json:"principal_due"`
	InterestDue   decimal.Decimal `json:"interest_due"`
	TotalDue      decimal.Decimal `json:"total_due"`
}

// CustomerDuesResponse statement for GET /api/customers/:id/dues.
type CustomerDuesResponse struct {
	CustomerID        string                `json:"customer_id"`
	CustomerName      string                `json:"customer_name"`
	AsOf              string                `json:"as_of"`
	Invoices          []InvoiceDuesResponse `json:"invoices"`
	TotalPrincipalDue decimal.Decimal       `json:"total_principal_due"`
	TotalInterestDue  decimal.Decimal       `json:"total_interest_due"`
	TotalDue          decimal.Decimal       `json:"total_due"`
}

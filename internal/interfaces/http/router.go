package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gemsaccurate/billing-api/internal/application/auth"
	"github.com/gemsaccurate/billing-api/internal/application/billing"
	"github.com/gemsaccurate/billing-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CompanyUC  *billing.CompanyUseCase
	CustomerUC *billing.CustomerUseCase
	InvoiceUC  *billing.InvoiceUseCase
	PaymentUC  *billing.PaymentUseCase
	DuesUC     *billing.DuesUseCase
	PDFUC      *billing.PDFUseCase
	JWTSecret  string
}

// Router registers the API routes.
//
// Role policy: salespeople issue invoices and manage customers; accountants
// additionally handle money (payments, invoice edits); deleting or
// recovering invoices is admin work.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register-company", authHandler.RegisterCompany)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// User management (admin)
	protected.Post("/auth/register", RequireRole(entity.RoleAdmin), authHandler.Register)

	// Company settings
	company := protected.Group("/company")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	company.Get("/", companyHandler.Get)
	company.Put("/", RequireRole(entity.RoleAdmin), companyHandler.Update)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.DuesUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Get("/:id/dues", customerHandler.Dues)

	// Invoices
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleAccountant), invoiceHandler.Update)
	invoices.Delete("/:id", RequireRole(entity.RoleAdmin), invoiceHandler.Delete)
	invoices.Post("/:id/recover", RequireRole(entity.RoleAdmin), invoiceHandler.Recover)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)

	// Payments
	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments.Post("/", RequireRole(entity.RoleAdmin, entity.RoleAccountant), paymentHandler.Record)
	payments.Get("/", paymentHandler.ListByCustomer)
	payments.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleAccountant), paymentHandler.Edit)
	payments.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleAccountant), paymentHandler.Delete)
}

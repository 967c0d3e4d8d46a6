package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	appbilling "github.com/gemsaccurate/billing-api/internal/application/billing"
	"github.com/gemsaccurate/billing-api/internal/application/dto"
	"github.com/gemsaccurate/billing-api/internal/domain"
	"github.com/gemsaccurate/billing-api/internal/domain/billing"
)

// PaymentHandler handles payment recording, edits and deletion.
type PaymentHandler struct {
	uc *appbilling.PaymentUseCase
}

// NewPaymentHandler builds the handler.
func NewPaymentHandler(uc *appbilling.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Record validates the allocation against the dues derived inside the same
// transaction and persists the payment.
// POST /api/payments
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	payment, err := h.uc.Record(c.Context(), companyID, in)
	if err != nil {
		return paymentError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// Edit replaces the amount and allocations of a payment. The prior
// allocations are credited back before the new ones are validated.
// PUT /api/payments/:id
func (h *PaymentHandler) Edit(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	payment, err := h.uc.Edit(c.Context(), companyID, c.Params("id"), in)
	if err != nil {
		return paymentError(c, err)
	}
	return c.JSON(payment)
}

// Delete removes a payment; the customer's dues rise accordingly on the next
// derivation.
// DELETE /api/payments/:id
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	if err := h.uc.Delete(c.Context(), companyID, c.Params("id")); err != nil {
		return paymentError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListByCustomer lists a customer's payments, oldest first.
// GET /api/payments?customer_id=
func (h *PaymentHandler) ListByCustomer(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	customerID := c.Query("customer_id")
	if customerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "customer_id is required"})
	}
	payments, err := h.uc.ListByCustomer(c.Context(), companyID, customerID)
	if err != nil {
		return paymentError(c, err)
	}
	return c.JSON(payments)
}

// paymentError maps allocation failures to 422 with the figures the client
// needs to correct the split, and the shared sentinels to their usual codes.
func paymentError(c *fiber.Ctx, err error) error {
	var mismatch *billing.AllocationMismatchError
	if errors.As(err, &mismatch) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "ALLOCATION_MISMATCH",
			Message: fmt.Sprintf("allocated %s does not match payment amount %s", mismatch.Allocated, mismatch.Declared),
		})
	}
	var exceeds *billing.AllocationExceedsDueError
	if errors.As(err, &exceeds) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "ALLOCATION_EXCEEDS_DUE",
			Message: fmt.Sprintf("invoice %s: %s allocation %s exceeds due %s", exceeds.InvoiceID, exceeds.Component, exceeds.Allocated, exceeds.MaxAllowed),
		})
	}
	switch err {
	case billing.ErrNoAllocation:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NO_ALLOCATION", Message: "payment allocates nothing"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid payment data"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "payment or customer not found"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "access denied"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

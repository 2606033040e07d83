package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EddyKilonzo/shopie/internal/application/checkout"
	"github.com/EddyKilonzo/shopie/internal/application/dto"
)

// OrderHandler exposes checkout and purchase history.
type OrderHandler struct {
	checkoutUC *checkout.CheckoutUseCase
}

// NewOrderHandler builds the handler.
func NewOrderHandler(checkoutUC *checkout.CheckoutUseCase) *OrderHandler {
	return &OrderHandler{checkoutUC: checkoutUC}
}

// Checkout handles POST /api/orders/checkout.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	result, err := h.checkoutUC.Checkout(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Order placed", result))
}

// PurchaseHistory handles GET /api/orders.
func (h *OrderHandler) PurchaseHistory(c *fiber.Ctx) error {
	orders, err := h.checkoutUC.PurchaseHistory(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Purchase history retrieved", orders))
}

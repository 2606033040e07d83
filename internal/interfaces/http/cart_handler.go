package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EddyKilonzo/shopie/internal/application/cart"
	"github.com/EddyKilonzo/shopie/internal/application/dto"
	"github.com/EddyKilonzo/shopie/internal/domain"
)

// CartHandler exposes the cart endpoints. Every route resolves the acting
// user from the JWT middleware; the line ID in the path only selects which
// line, ownership is enforced in the use case.
type CartHandler struct {
	cartUC *cart.CartUseCase
}

// NewCartHandler builds the handler.
func NewCartHandler(cartUC *cart.CartUseCase) *CartHandler {
	return &CartHandler{cartUC: cartUC}
}

// AddToCart handles POST /api/cart/add.
func (h *CartHandler) AddToCart(c *fiber.Ctx) error {
	var req dto.AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	line, err := h.cartUC.AddToCart(c.Context(), GetUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Product added to cart", line))
}

// ListCart handles GET /api/cart.
func (h *CartHandler) ListCart(c *fiber.Ctx) error {
	lines, err := h.cartUC.ListCart(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Cart retrieved", lines))
}

// CartTotal handles GET /api/cart/total.
func (h *CartHandler) CartTotal(c *fiber.Ctx) error {
	totals, err := h.cartUC.CartTotal(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Cart total calculated", totals))
}

// IncreaseQuantity handles PUT /api/cart/:id/increase.
func (h *CartHandler) IncreaseQuantity(c *fiber.Ctx) error {
	line, err := h.cartUC.IncreaseQuantity(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Quantity increased", line))
}

// DecreaseQuantity handles PUT /api/cart/:id/decrease. Decreasing a
// single-unit line removes it; the response carries no line in that case.
func (h *CartHandler) DecreaseQuantity(c *fiber.Ctx) error {
	line, err := h.cartUC.DecreaseQuantity(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if line == nil {
		return c.JSON(dto.OK("Item removed from cart", nil))
	}
	return c.JSON(dto.OK("Quantity decreased", line))
}

// RemoveFromCart handles DELETE /api/cart/:id.
func (h *CartHandler) RemoveFromCart(c *fiber.Ctx) error {
	if err := h.cartUC.RemoveFromCart(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Item removed from cart", nil))
}

// ClearCart handles DELETE /api/cart.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	if err := h.cartUC.ClearCart(c.Context(), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Cart cleared", nil))
}

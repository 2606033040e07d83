package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/EddyKilonzo/shopie/internal/application/dto"
	"github.com/EddyKilonzo/shopie/internal/domain"
)

// respondError maps domain errors to HTTP statuses and the shared envelope.
// Every handler funnels use-case errors through here so status codes stay
// consistent across the API.
func respondError(c *fiber.Ctx, err error) error {
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		resp := dto.Fail("INSUFFICIENT_STOCK", fmt.Sprintf("insufficient stock: %d available", stockErr.Available))
		resp.Data = fiber.Map{"productId": stockErr.ProductID, "available": stockErr.Available}
		return c.Status(fiber.StatusConflict).JSON(resp)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION_ERROR", "invalid request"))
	case errors.Is(err, domain.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("EMPTY_CART", "cart is empty"))
	case errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("PRODUCT_NOT_FOUND", "product not found"))
	case errors.Is(err, domain.ErrCartLineNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("CART_ITEM_NOT_FOUND", "cart item not found"))
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("USER_NOT_FOUND", "user not found"))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("NOT_FOUND", "resource not found"))
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("EMAIL_EXISTS", "email already registered"))
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("DUPLICATE", "resource already exists"))
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("UNAUTHORIZED", "invalid credentials"))
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("FORBIDDEN", "access denied"))
	case errors.Is(err, domain.ErrStore):
		// Transient storage failure; nothing was committed, the client may retry.
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Fail("STORE_UNAVAILABLE", "storage temporarily unavailable, retry"))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("INTERNAL_ERROR", "internal server error"))
	}
}

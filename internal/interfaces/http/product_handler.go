package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EddyKilonzo/shopie/internal/application/dto"
	"github.com/EddyKilonzo/shopie/internal/application/usecase"
	"github.com/EddyKilonzo/shopie/internal/domain"
)

// ProductHandler exposes the catalog endpoints. Reads are public, writes
// require the admin role (enforced in the router).
type ProductHandler struct {
	productUC *usecase.ProductUseCase
}

// NewProductHandler builds the handler.
func NewProductHandler(productUC *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{productUC: productUC}
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	product, err := h.productUC.Create(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Product created", product))
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	products, err := h.productUC.List(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Products retrieved", products))
}

// GetByID handles GET /api/products/:id.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.productUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Product retrieved", product))
}

// Update handles PUT /api/products/:id. Stock is not updatable through this
// route; the reservation flow owns the stock counter.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	product, err := h.productUC.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Product updated", product))
}

// Delete handles DELETE /api/products/:id.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.productUC.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Product deleted", nil))
}

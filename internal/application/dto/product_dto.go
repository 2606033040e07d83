package dto

import (
	"time"

	"github.com/EddyKilonzo/shopie/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateProductRequest body for POST /api/products. StockQuantity seeds the
// ledger; later stock changes only happen through cart operations.
type CreateProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	ImageURL      string          `json:"imageUrl"`
}

// UpdateProductRequest body for PUT /api/products/:id. Stock is not updatable here.
type UpdateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
}

// ProductResponse API shape for a product.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	ImageURL      string          `json:"imageUrl"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ToProductResponse maps the entity to its API shape.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToProductResponses maps a list of products.
func ToProductResponses(products []*entity.Product) []*ProductResponse {
	out := make([]*ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out
}

package dto

import (
	"time"

	"github.com/EddyKilonzo/shopie/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AddToCartRequest body for POST /api/cart/add.
type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartLineResponse mirrors the CartItem shape the web client consumes.
type CartLineResponse struct {
	ID          string          `json:"id"`
	Quantity    int             `json:"quantity"`
	ProductName string          `json:"productName"`
	Total       decimal.Decimal `json:"total"`
	ProductID   string          `json:"productId"`
	UserID      string          `json:"userId"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CartTotalResponse aggregate for GET /api/cart/total.
type CartTotalResponse struct {
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

// ToCartLineResponse maps the entity to its API shape.
func ToCartLineResponse(l *entity.CartLine) *CartLineResponse {
	if l == nil {
		return nil
	}
	return &CartLineResponse{
		ID:          l.ID,
		Quantity:    l.Quantity,
		ProductName: l.ProductName,
		Total:       l.Total,
		ProductID:   l.ProductID,
		UserID:      l.UserID,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// ToCartLineResponses maps a list of lines.
func ToCartLineResponses(lines []*entity.CartLine) []*CartLineResponse {
	out := make([]*CartLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, ToCartLineResponse(l))
	}
	return out
}

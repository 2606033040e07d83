package dto

import (
	"time"

	"github.com/EddyKilonzo/shopie/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CheckoutResponse result of POST /api/orders/checkout.
type CheckoutResponse struct {
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}

// OrderResponse one purchase record with its line snapshots.
type OrderResponse struct {
	ID          string               `json:"id"`
	UserID      string               `json:"userId"`
	TotalAmount decimal.Decimal      `json:"totalAmount"`
	Status      string               `json:"status"`
	Items       []*OrderLineResponse `json:"items"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// OrderLineResponse one snapshot line of an order.
type OrderLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// ToOrderResponse maps the entity to its API shape.
func ToOrderResponse(o *entity.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]*OrderLineResponse, 0, len(o.Lines))
	for i := range o.Lines {
		l := &o.Lines[i]
		items = append(items, &OrderLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		})
	}
	return &OrderResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		Items:       items,
		CreatedAt:   o.CreatedAt,
	}
}

// ToOrderResponses maps a list of orders.
func ToOrderResponses(orders []*entity.Order) []*OrderResponse {
	out := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderResponse(o))
	}
	return out
}

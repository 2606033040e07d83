package repository

import (
	"context"

	"github.com/EddyKilonzo/shopie/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CartTotals aggregates a user's cart: sum of line totals and sum of quantities.
type CartTotals struct {
	Total     decimal.Decimal
	ItemCount int
}

// CartRepository is the persistence port for cart lines. It never touches
// product stock; that coordination belongs to the cart use case.
type CartRepository interface {
	// FindLine returns the line for (user, product), or nil if none exists.
	FindLine(ctx context.Context, userID, productID string) (*entity.CartLine, error)
	// GetLine returns a line by ID regardless of owner, or nil if missing.
	GetLine(ctx context.Context, lineID string) (*entity.CartLine, error)
	Create(ctx context.Context, line *entity.CartLine) error
	UpdateLine(ctx context.Context, lineID string, quantity int, total decimal.Decimal) error
	// ListByUser returns the user's lines, most recently created first.
	ListByUser(ctx context.Context, userID string) ([]*entity.CartLine, error)
	Delete(ctx context.Context, lineID string) error
	// DeleteByUser removes every line for the user; deleting an empty cart succeeds.
	DeleteByUser(ctx context.Context, userID string) error
	Totals(ctx context.Context, userID string) (*CartTotals, error)
}

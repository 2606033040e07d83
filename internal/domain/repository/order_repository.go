package repository

import (
	"context"

	"github.com/EddyKilonzo/shopie/internal/domain/entity"
)

// OrderRepository is the persistence port for orders. Orders are insert-only.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateLine(ctx context.Context, line *entity.OrderLine) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// ListByUser returns the user's orders, newest first, with their lines.
	ListByUser(ctx context.Context, userID string) ([]*entity.Order, error)
}

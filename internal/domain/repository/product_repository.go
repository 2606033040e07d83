package repository

import (
	"context"

	"github.com/EddyKilonzo/shopie/internal/domain/entity"
)

// ProductRepository is the persistence port for Product, stock counter included.
// GetForUpdate locks the product row (SELECT FOR UPDATE) so check-then-act
// stock sequences serialize inside a transaction.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error

	// UpdateStock writes an absolute stock quantity for a row already locked
	// with GetForUpdate.
	UpdateStock(ctx context.Context, productID string, quantity int) error
	// IncrementStock returns reserved stock to the pool. A missing product is
	// a silent no-op (the line's snapshot outlives catalog deletion).
	IncrementStock(ctx context.Context, productID string, by int) error
}

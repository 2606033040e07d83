package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EddyKilonzo/shopie/internal/application/cart"
	"github.com/EddyKilonzo/shopie/internal/application/checkout"
	"github.com/EddyKilonzo/shopie/internal/domain"
	"github.com/EddyKilonzo/shopie/internal/domain/repository"
)

// Ensure TxRunner implements cart.TxRunner and checkout.TxRunner.
var _ cart.TxRunner = (*TxRunner)(nil)
var _ checkout.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with tx-bound repositories and
// commits, or rolls back when fn errors. Begin/commit failures surface as
// StoreError so callers can distinguish infrastructure trouble from business
// rejections.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return &domain.StoreError{Op: "begin transaction", Err: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	cartRepo := NewCartRepository(tx)

	if err := fn(productRepo, cartRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return &domain.StoreError{Op: "commit transaction", Err: err}
	}
	return nil
}

// RunCheckout begins a transaction covering cart, order and notification
// repositories (for Checkout).
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	notifRepo repository.NotificationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return &domain.StoreError{Op: "begin transaction", Err: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cartRepo := NewCartRepository(tx)
	orderRepo := NewOrderRepository(tx)
	notifRepo := NewNotificationRepository(tx)

	if err := fn(cartRepo, orderRepo, notifRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return &domain.StoreError{Op: "commit transaction", Err: err}
	}
	return nil
}

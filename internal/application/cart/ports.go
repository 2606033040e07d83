package cart

import (
	"context"

	"github.com/EddyKilonzo/shopie/internal/domain/repository"
)

// TxRunner executes a function inside a DB transaction, handing it repositories
// bound to that transaction. Every cart mutation runs through it so the
// ledger-read, ledger-write and cart-write serialize as one unit; concurrent
// reservations against the same product queue up on the row lock instead of
// racing a stale stock read.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		cartRepo repository.CartRepository,
	) error) error
}

package checkout

import (
	"context"

	"github.com/EddyKilonzo/shopie/internal/domain/repository"
)

// TxRunner executes a function inside a DB transaction spanning the order
// write, the notification enqueue and the cart purge, so a confirmed order
// can never exist alongside a non-empty cart.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		cartRepo repository.CartRepository,
		orderRepo repository.OrderRepository,
		notifRepo repository.NotificationRepository,
	) error) error
}

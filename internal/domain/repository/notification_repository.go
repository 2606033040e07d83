package repository

import (
	"context"
	"time"

	"github.com/EddyKilonzo/shopie/internal/domain/entity"
)

// NotificationRepository is the outbox port for order-confirmation jobs.
// Enqueue runs inside the checkout transaction; the rest is used by the
// delivery worker only.
type NotificationRepository interface {
	Enqueue(ctx context.Context, n *entity.Notification) error
	// Due returns pending jobs whose next_run_at has passed, oldest first.
	Due(ctx context.Context, limit int) ([]*entity.Notification, error)
	MarkSent(ctx context.Context, id string) error
	// Reschedule bumps the attempt counter and sets the next delivery time.
	Reschedule(ctx context.Context, id string, attempts int, nextRun time.Time) error
	MarkFailed(ctx context.Context, id string) error
}

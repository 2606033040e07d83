package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/EddyKilonzo/shopie/internal/domain/entity"
	"github.com/EddyKilonzo/shopie/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implements the order-confirmation outbox over PostgreSQL
// (usable with pool or tx).
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository builds the outbox adapter. Pass pool or tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Enqueue inserts a pending job. Called inside the checkout transaction.
func (r *NotificationRepo) Enqueue(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, order_id, recipient, user_name, payload, status, attempts, next_run_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		n.ID, n.OrderID, n.Recipient, n.UserName, n.Payload,
		n.Status, n.Attempts, n.NextRunAt, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}
	return nil
}

// Due returns pending jobs ready to deliver, oldest first. SKIP LOCKED keeps
// concurrent workers off the same rows.
func (r *NotificationRepo) Due(ctx context.Context, limit int) ([]*entity.Notification, error) {
	query := `
		SELECT id, order_id, recipient, user_name, payload, status, attempts, next_run_at, created_at, updated_at
		FROM notifications
		WHERE status = $1 AND next_run_at <= now()
		ORDER BY created_at ASC
		LIMIT $2
		FOR UPDATE SKIP LOCKED`
	rows, err := r.q.Query(ctx, query, entity.NotificationPending, limit)
	if err != nil {
		return nil, fmt.Errorf("due notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.OrderID, &n.Recipient, &n.UserName, &n.Payload,
			&n.Status, &n.Attempts, &n.NextRunAt, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// MarkSent finalizes a delivered job.
func (r *NotificationRepo) MarkSent(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE notifications SET status = $2, updated_at = now() WHERE id = $1`,
		id, entity.NotificationSent,
	)
	if err != nil {
		return fmt.Errorf("mark notification sent: %w", err)
	}
	return nil
}

// Reschedule bumps the attempt counter and delays the next delivery.
func (r *NotificationRepo) Reschedule(ctx context.Context, id string, attempts int, nextRun time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE notifications SET attempts = $2, next_run_at = $3, updated_at = now() WHERE id = $1`,
		id, attempts, nextRun,
	)
	if err != nil {
		return fmt.Errorf("reschedule notification: %w", err)
	}
	return nil
}

// MarkFailed gives up on a job after the attempt limit is reached.
func (r *NotificationRepo) MarkFailed(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE notifications SET status = $2, updated_at = now() WHERE id = $1`,
		id, entity.NotificationFailed,
	)
	if err != nil {
		return fmt.Errorf("mark notification failed: %w", err)
	}
	return nil
}

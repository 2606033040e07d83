package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/EddyKilonzo/shopie/internal/domain/entity"
	"github.com/EddyKilonzo/shopie/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implements OrderRepository over PostgreSQL (usable with pool or tx).
// Orders are insert-only; there is no update path.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository builds the order persistence adapter. Pass pool or tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persists the order header.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (id, user_id, total_amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.UserID, order.TotalAmount, order.Status, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateLine persists one snapshot line.
func (r *OrderRepo) CreateLine(ctx context.Context, line *entity.OrderLine) error {
	query := `
		INSERT INTO order_lines (id, order_id, product_id, product_name, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		line.ID, line.OrderID, line.ProductID, line.ProductName,
		line.Quantity, line.UnitPrice, line.LineTotal,
	)
	if err != nil {
		return fmt.Errorf("insert order line: %w", err)
	}
	return nil
}

// GetByID returns one order with its lines, or nil if absent.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `
		SELECT id, user_id, total_amount, status, created_at
		FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	lines, err := r.linesFor(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Lines = lines[o.ID]
	return &o, nil
}

// ListByUser returns the user's orders, newest first, with their lines.
func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	query := `
		SELECT id, user_id, total_amount, status, created_at
		FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	var ids []string
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, &o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	byOrder, err := r.linesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		o.Lines = byOrder[o.ID]
	}
	return orders, nil
}

func (r *OrderRepo) linesFor(ctx context.Context, orderIDs []string) (map[string][]entity.OrderLine, error) {
	query := `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, line_total
		FROM order_lines WHERE order_id = ANY($1)`
	rows, err := r.q.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()

	byOrder := make(map[string][]entity.OrderLine)
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.ProductName,
			&l.Quantity, &l.UnitPrice, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		byOrder[l.OrderID] = append(byOrder[l.OrderID], l)
	}
	return byOrder, rows.Err()
}

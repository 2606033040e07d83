package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/EddyKilonzo/shopie/internal/domain/entity"
	"github.com/EddyKilonzo/shopie/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implements CartRepository over PostgreSQL (usable with pool or tx).
type CartRepo struct {
	q Querier
}

// NewCartRepository builds the cart persistence adapter. Pass pool or tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

const cartLineColumns = `id, user_id, product_id, product_name, quantity, total, created_at, updated_at`

func scanCartLine(row pgx.Row) (*entity.CartLine, error) {
	var l entity.CartLine
	err := row.Scan(&l.ID, &l.UserID, &l.ProductID, &l.ProductName, &l.Quantity,
		&l.Total, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan cart line: %w", err)
	}
	return &l, nil
}

// FindLine returns the line for (user, product), or nil if none exists.
func (r *CartRepo) FindLine(ctx context.Context, userID, productID string) (*entity.CartLine, error) {
	query := `SELECT ` + cartLineColumns + ` FROM cart_lines WHERE user_id = $1 AND product_id = $2`
	return scanCartLine(r.q.QueryRow(ctx, query, userID, productID))
}

// GetLine returns a line by ID, or nil if missing.
func (r *CartRepo) GetLine(ctx context.Context, lineID string) (*entity.CartLine, error) {
	query := `SELECT ` + cartLineColumns + ` FROM cart_lines WHERE id = $1`
	return scanCartLine(r.q.QueryRow(ctx, query, lineID))
}

// Create persists a new cart line. The (user_id, product_id) unique constraint
// backs the one-line-per-product rule.
func (r *CartRepo) Create(ctx context.Context, line *entity.CartLine) error {
	query := `
		INSERT INTO cart_lines (id, user_id, product_id, product_name, quantity, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		line.ID, line.UserID, line.ProductID, line.ProductName,
		line.Quantity, line.Total, line.CreatedAt, line.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cart line: %w", err)
	}
	return nil
}

// UpdateLine replaces a line's quantity and total.
func (r *CartRepo) UpdateLine(ctx context.Context, lineID string, quantity int, total decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE cart_lines SET quantity = $2, total = $3, updated_at = now() WHERE id = $1`,
		lineID, quantity, total,
	)
	if err != nil {
		return fmt.Errorf("update cart line: %w", err)
	}
	return nil
}

// ListByUser returns the user's lines, most recently created first.
func (r *CartRepo) ListByUser(ctx context.Context, userID string) ([]*entity.CartLine, error) {
	query := `SELECT ` + cartLineColumns + ` FROM cart_lines WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.CartLine
	for rows.Next() {
		var l entity.CartLine
		if err := rows.Scan(&l.ID, &l.UserID, &l.ProductID, &l.ProductName, &l.Quantity,
			&l.Total, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Delete removes a line by ID.
func (r *CartRepo) Delete(ctx context.Context, lineID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM cart_lines WHERE id = $1`, lineID)
	if err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	return nil
}

// DeleteByUser removes every line for the user. Zero rows is fine.
func (r *CartRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Totals aggregates the user's cart in one query.
func (r *CartRepo) Totals(ctx context.Context, userID string) (*repository.CartTotals, error) {
	query := `
		SELECT COALESCE(SUM(total), 0), COALESCE(SUM(quantity), 0)
		FROM cart_lines WHERE user_id = $1`
	var t repository.CartTotals
	if err := r.q.QueryRow(ctx, query, userID).Scan(&t.Total, &t.ItemCount); err != nil {
		return nil, fmt.Errorf("cart totals: %w", err)
	}
	return &t, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/EddyKilonzo/shopie/internal/domain"
	"github.com/EddyKilonzo/shopie/internal/domain/entity"
	"github.com/EddyKilonzo/shopie/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implements ProductRepository over PostgreSQL (usable with pool or tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the product persistence adapter. Pass pool or tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persists a new product.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, stock_quantity, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		product.StockQuantity, product.ImageURL, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID returns a product by ID, or nil if absent.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate returns the product with its row locked (SELECT FOR UPDATE),
// or nil if absent. Only meaningful inside a transaction.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, id, true)
}

func (r *ProductRepo) get(ctx context.Context, id string, lock bool) (*entity.Product, error) {
	query := `
		SELECT id, name, description, price, stock_quantity, image_url, created_at, updated_at
		FROM products WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity,
		&p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List returns products with pagination, newest first.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, name, description, price, stock_quantity, image_url, created_at, updated_at
		FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity,
			&p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update modifies catalog fields. Stock stays untouched; it moves only through
// UpdateStock/IncrementStock.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, price = $4, image_url = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		product.ImageURL, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock writes an absolute stock quantity. Callers hold the row lock
// from GetForUpdate; a CHECK constraint still rejects negatives as a backstop.
func (r *ProductRepo) UpdateStock(ctx context.Context, productID string, quantity int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET stock_quantity = $2, updated_at = now() WHERE id = $1`,
		productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// IncrementStock returns quantity to the pool. Zero rows affected means the
// product is gone from the catalog; that is a silent no-op.
func (r *ProductRepo) IncrementStock(ctx context.Context, productID string, by int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET stock_quantity = stock_quantity + $2, updated_at = now() WHERE id = $1`,
		productID, by,
	)
	if err != nil {
		return fmt.Errorf("increment product stock: %w", err)
	}
	return nil
}

// Delete removes a product by ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

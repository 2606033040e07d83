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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implements UserRepository over PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository builds the user persistence adapter.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persists a new user.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID returns a user by ID, or nil if absent.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

// GetByEmail returns a user by email, or nil if absent.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.get(ctx, `WHERE email = $1`, email)
}

func (r *UserRepo) get(ctx context.Context, where string, arg any) (*entity.User, error) {
	query := `
		SELECT id, email, password_hash, name, role, created_at, updated_at
		FROM users ` + where
	var u entity.User
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

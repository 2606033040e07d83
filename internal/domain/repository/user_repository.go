package repository

import (
	"context"

	"github.com/EddyKilonzo/shopie/internal/domain/entity"
)

// UserRepository is the persistence port for users.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

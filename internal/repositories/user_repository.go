package repositories

import (
	"context"

	"tokoadmin/internal/models"
)

// UserRepository defines the interface for user data access.
// Lookups return an apperror.ErrNotFound error when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

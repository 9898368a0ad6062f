package store

import (
	"context"

	"github.com/phrazzld/todo-api/internal/domain"
)

// UserStore defines the interface for credential persistence.
// Users are never updated or deleted.
type UserStore interface {
	// Create saves a new user. The user must already carry a HashedPassword.
	// Returns ErrEmailExists if the email is already registered.
	// Returns ErrInvalidEntity wrapping the domain error if the user is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by exact, case-sensitive email match.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

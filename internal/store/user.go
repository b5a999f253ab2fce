package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/notes-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// List returns every user. Returns an empty slice when there are none.
	List(ctx context.Context) ([]*domain.User, error)

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by username, compared case-insensitively.
	// Returns ErrUserNotFound if no user has that username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// Create saves a new user and assigns its ID when empty.
	// Returns ErrUsernameExists if the username is already taken.
	Create(ctx context.Context, user *domain.User) error

	// Update saves a complete user record.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrUsernameExists if the new username collides with another user.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

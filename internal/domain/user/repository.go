package user

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the persistence contract for user aggregates.
type UserRepository interface {
	// FindByID retrieves a user by id, failing with a not-found error if absent.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindAll retrieves every user.
	FindAll(ctx context.Context) ([]*User, error)

	// Save persists a new user.
	Save(ctx context.Context, user *User) error

	// Update persists changes to an existing user.
	Update(ctx context.Context, user *User) error

	// Delete removes a user by id.
	Delete(ctx context.Context, id uuid.UUID) error
}

package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shareloop/service-rental/internal/domain"
)

// User is the aggregate root for a marketplace account. The booking
// lifecycle only resolves users; it never mutates them.
type User struct {
	id        uuid.UUID
	email     string
	name      string
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a new user with validated fields.
func NewUser(email, name string) (*User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, domain.NewValidationError("user email is required")
	}
	if !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("user email is malformed")
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("user name is required")
	}

	now := time.Now().UTC()
	return &User{
		id:        uuid.New(),
		email:     email,
		name:      name,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, email, name string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		email:     email,
		name:      name,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) Name() string         { return u.name }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Update applies partial updates; blank fields are ignored.
func (u *User) Update(email, name string) {
	if strings.TrimSpace(email) != "" {
		u.email = email
	}
	if strings.TrimSpace(name) != "" {
		u.name = name
	}
	u.updatedAt = time.Now().UTC()
}

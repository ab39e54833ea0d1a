package request

import (
	"context"

	"github.com/google/uuid"
)

// RequestRepository defines the persistence contract for item requests.
type RequestRepository interface {
	// FindByID retrieves a request by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*ItemRequest, error)

	// FindByRequesterID retrieves a user's requests, newest first.
	FindByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]*ItemRequest, error)

	// Save persists a new request.
	Save(ctx context.Context, req *ItemRequest) error
}

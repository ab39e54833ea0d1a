package item

import (
	"context"

	"github.com/google/uuid"
)

// ItemRepository defines the persistence contract for item aggregates.
type ItemRepository interface {
	// FindByID retrieves an item by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindByOwnerID retrieves all items listed by a user.
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Item, error)

	// FindByRequestIDs retrieves the items answering any of the given requests.
	FindByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) ([]*Item, error)

	// Search retrieves available items whose name or description contains
	// text, case-insensitively.
	Search(ctx context.Context, text string) ([]*Item, error)

	// Save persists a new item.
	Save(ctx context.Context, item *Item) error

	// Update persists changes to an existing item.
	Update(ctx context.Context, item *Item) error
}

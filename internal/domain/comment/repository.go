package comment

import (
	"context"

	"github.com/google/uuid"
)

// CommentRepository defines the persistence contract for comments.
type CommentRepository interface {
	// FindByItemID retrieves an item's comments, oldest first.
	FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*Comment, error)

	// FindByItemIDs retrieves the comments of any of the given items.
	FindByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]*Comment, error)

	// Save persists a new comment.
	Save(ctx context.Context, comment *Comment) error
}

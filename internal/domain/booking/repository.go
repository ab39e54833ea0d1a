package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingRepository defines the persistence contract for booking aggregates.
// The temporal finders take the reference instant explicitly so that one
// "now" anchors a whole classification query.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByItemID retrieves every booking of an item, regardless of status.
	FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*Booking, error)

	// FindByBookerID retrieves all bookings made by a user.
	FindByBookerID(ctx context.Context, bookerID uuid.UUID) ([]*Booking, error)

	// FindByBookerIDAndStatus retrieves a user's bookings in a given status.
	FindByBookerIDAndStatus(ctx context.Context, bookerID uuid.UUID, status BookingStatus) ([]*Booking, error)

	// FindCurrentByBookerID retrieves a user's bookings whose interval covers at.
	FindCurrentByBookerID(ctx context.Context, bookerID uuid.UUID, at time.Time) ([]*Booking, error)

	// FindFutureByBookerID retrieves a user's bookings starting after at.
	FindFutureByBookerID(ctx context.Context, bookerID uuid.UUID, at time.Time) ([]*Booking, error)

	// FindPastByBookerID retrieves a user's bookings ending before at.
	FindPastByBookerID(ctx context.Context, bookerID uuid.UUID, at time.Time) ([]*Booking, error)

	// FindPageByBookerID retrieves one zero-based page of a user's bookings
	// ordered by start descending.
	FindPageByBookerID(ctx context.Context, bookerID uuid.UUID, page, size int) ([]*Booking, error)

	// FindByOwnerID retrieves all bookings of items owned by a user.
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Booking, error)

	// FindByOwnerIDAndStatus retrieves bookings of a user's items in a given status.
	FindByOwnerIDAndStatus(ctx context.Context, ownerID uuid.UUID, status BookingStatus) ([]*Booking, error)

	// FindCurrentByOwnerID retrieves bookings of a user's items covering at.
	FindCurrentByOwnerID(ctx context.Context, ownerID uuid.UUID, at time.Time) ([]*Booking, error)

	// FindFutureByOwnerID retrieves bookings of a user's items starting after at.
	FindFutureByOwnerID(ctx context.Context, ownerID uuid.UUID, at time.Time) ([]*Booking, error)

	// FindPastByOwnerID retrieves bookings of a user's items ending before at.
	FindPastByOwnerID(ctx context.Context, ownerID uuid.UUID, at time.Time) ([]*Booking, error)

	// FindPageByOwnerID retrieves one zero-based page of bookings of a
	// user's items ordered by start descending.
	FindPageByOwnerID(ctx context.Context, ownerID uuid.UUID, page, size int) ([]*Booking, error)

	// FindPastByBookerAndItem retrieves a user's bookings of one item that
	// ended before at. Used to gate comment authoring on finished rentals.
	FindPastByBookerAndItem(ctx context.Context, bookerID, itemID uuid.UUID, at time.Time) ([]*Booking, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// Update persists status changes to an existing booking.
	Update(ctx context.Context, booking *Booking) error
}

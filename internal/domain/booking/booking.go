package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/shareloop/service-rental/internal/domain"
)

// ItemRef is the reserved item as the booking aggregate sees it. Ownership
// is never transferred by a booking.
type ItemRef struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Available   bool
}

// BookerRef is the reserving user as the booking aggregate sees it.
type BookerRef struct {
	ID    uuid.UUID
	Email string
	Name  string
}

// Booking is the aggregate root for a reservation of one item by one user
// over the half-open interval [start, end).
type Booking struct {
	id        uuid.UUID
	start     time.Time
	end       time.Time
	item      ItemRef
	booker    BookerRef
	status    BookingStatus
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a booking in status WAITING. The interval must be
// strictly ordered: start < end.
func NewBooking(item ItemRef, booker BookerRef, start, end time.Time) (*Booking, error) {
	if !start.Before(end) {
		return nil, domain.NewValidationError("booking start must be strictly before its end")
	}

	now := time.Now().UTC()
	return &Booking{
		id:        uuid.New(),
		start:     start,
		end:       end,
		item:      item,
		booker:    booker,
		status:    StatusWaiting,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	start, end time.Time,
	item ItemRef,
	booker BookerRef,
	status BookingStatus,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		start:     start,
		end:       end,
		item:      item,
		booker:    booker,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// Start returns the beginning of the reservation interval.
func (b *Booking) Start() time.Time { return b.start }

// End returns the end of the reservation interval (exclusive).
func (b *Booking) End() time.Time { return b.end }

// Item returns the reserved item snapshot.
func (b *Booking) Item() ItemRef { return b.item }

// Booker returns the reserving user snapshot.
func (b *Booking) Booker() BookerRef { return b.booker }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// Approve transitions the booking to APPROVED. Re-approving an already
// approved booking is invalid.
func (b *Booking) Approve() error {
	if b.status == StatusApproved {
		return domain.NewValidationError("booking is already approved")
	}
	b.status = StatusApproved
	b.updatedAt = time.Now().UTC()
	return nil
}

// Reject transitions the booking to REJECTED unconditionally. There is no
// guard against re-rejecting.
func (b *Booking) Reject() {
	b.status = StatusRejected
	b.updatedAt = time.Now().UTC()
}

// ContainsStrictly reports whether t lies strictly between the booking's
// start and end. The creation conflict scan tests only the new start point
// against existing intervals, so an interval that surrounds this booking
// while starting earlier does not register as a conflict.
func (b *Booking) ContainsStrictly(t time.Time) bool {
	return t.After(b.start) && t.Before(b.end)
}

// IsBooker reports whether userID is the reserving user.
func (b *Booking) IsBooker(userID uuid.UUID) bool {
	return b.booker.ID == userID
}

// IsItemOwner reports whether userID owns the reserved item.
func (b *Booking) IsItemOwner(userID uuid.UUID) bool {
	return b.item.OwnerID == userID
}

package booking

import "fmt"

// BookingStatus is a persisted booking state. The temporal buckets used by
// listing queries live in StateFilter, never here.
type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
	StatusCanceled BookingStatus = "CANCELED"
)

var persistedStatuses = map[BookingStatus]struct{}{
	StatusWaiting:  {},
	StatusApproved: {},
	StatusRejected: {},
	StatusCanceled: {},
}

// IsValid returns true if the status is a recognized persisted status.
func (s BookingStatus) IsValid() bool {
	_, exists := persistedStatuses[s]
	return exists
}

// String returns the string representation of the status.
func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a string to a BookingStatus, returning an
// error if it names no persisted status. Matching is case-sensitive.
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}

package booking

import "github.com/shareloop/service-rental/internal/domain"

// StateFilter is a query-only classification token for listing bookings.
// It is either a temporal bucket (ALL, CURRENT, FUTURE, PAST) or the name
// of a persisted status. Filters are never stored.
type StateFilter string

const (
	FilterAll     StateFilter = "ALL"
	FilterCurrent StateFilter = "CURRENT"
	FilterFuture  StateFilter = "FUTURE"
	FilterPast    StateFilter = "PAST"
)

// ParseStateFilter matches s case-sensitively against the temporal buckets
// and the persisted status names. Any other token yields the dedicated
// unknown-state error so callers can distinguish a bad filter value from
// other validation failures.
func ParseStateFilter(s string) (StateFilter, error) {
	switch f := StateFilter(s); f {
	case FilterAll, FilterCurrent, FilterFuture, FilterPast:
		return f, nil
	}
	if BookingStatus(s).IsValid() {
		return StateFilter(s), nil
	}
	return "", domain.NewUnknownStateError(s)
}

// AsStatus returns the persisted status this filter names, if it is a
// status filter rather than a temporal bucket.
func (f StateFilter) AsStatus() (BookingStatus, bool) {
	status := BookingStatus(f)
	return status, status.IsValid()
}

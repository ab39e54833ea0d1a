package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shareloop/service-rental/internal/domain"
	bookingDomain "github.com/shareloop/service-rental/internal/domain/booking"
	itemDomain "github.com/shareloop/service-rental/internal/domain/item"
	userDomain "github.com/shareloop/service-rental/internal/domain/user"
	"github.com/shareloop/service-rental/internal/events"
)

// EventPublisher publishes booking lifecycle events.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event events.CloudEvent) error
}

// CreateBookingRequest holds the data needed to reserve an item.
type CreateBookingRequest struct {
	ItemID uuid.UUID `json:"itemId" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// BookerDTO is the denormalized booker view inside a booking response.
type BookerDTO struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// BookedItemDTO is the denormalized item view inside a booking response.
type BookedItemDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID     uuid.UUID     `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Status string        `json:"status"`
	Booker BookerDTO     `json:"booker"`
	Item   BookedItemDTO `json:"item"`
}

// BookingService orchestrates the booking lifecycle: creation with conflict
// detection, owner approval, retrieval, and classified listing.
type BookingService struct {
	bookings  bookingDomain.BookingRepository
	items     itemDomain.ItemRepository
	users     userDomain.UserRepository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.BookingRepository,
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	publisher EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		items:     items,
		users:     users,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateBooking reserves an item for the requesting user over [start, end).
// The conflict scan checks whether the new start falls strictly inside any
// existing booking's interval; it deliberately does not catch a new interval
// that fully contains an existing one while starting earlier.
func (s *BookingService) CreateBooking(ctx context.Context, requesterID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	if !req.Start.Before(req.End) {
		return nil, domain.NewValidationError("booking start must be strictly before its end")
	}

	existing, err := s.bookings.FindByItemID(ctx, req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load item bookings: %w", err)
	}
	for _, b := range existing {
		if b.ContainsStrictly(req.Start) {
			return nil, domain.NewValidationError("item already has an overlapping reservation")
		}
	}

	requester, err := s.users.FindByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if it.IsOwnedBy(requester.ID()) {
		return nil, domain.NewConflictError("cannot book own item")
	}
	if !it.Available() {
		return nil, domain.NewValidationError("item is not available for booking")
	}

	bk, err := bookingDomain.NewBooking(
		bookingDomain.ItemRef{
			ID:          it.ID(),
			OwnerID:     it.OwnerID(),
			Name:        it.Name(),
			Description: it.Description(),
			Available:   it.Available(),
		},
		bookingDomain.BookerRef{
			ID:    requester.ID(),
			Email: requester.Email(),
			Name:  requester.Name(),
		},
		req.Start, req.End,
	)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.logger.Info("booking created",
		zap.String("booking_id", bk.ID().String()),
		zap.String("item_id", it.ID().String()),
		zap.String("booker_id", requester.ID().String()),
	)
	s.publishRequested(ctx, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// ConfirmBooking lets the item's owner approve or reject a waiting booking.
// A booker attempting the decision gets an entity-not-found-shaped failure
// rather than a forbidden one, so the existence of foreign bookings is not
// leaked.
func (s *BookingService) ConfirmBooking(ctx context.Context, actorID, bookingID uuid.UUID, approve bool) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if bk.IsBooker(actorID) {
		return nil, domain.NewEntityNotFoundError("only the item's owner may decide a booking")
	}
	if !bk.IsItemOwner(actorID) {
		return nil, domain.NewValidationError("item does not belong to this user")
	}

	if approve {
		if err := bk.Approve(); err != nil {
			return nil, err
		}
	} else {
		bk.Reject()
	}

	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	s.logger.Info("booking decided",
		zap.String("booking_id", bk.ID().String()),
		zap.String("status", bk.Status().String()),
	)
	s.publishDecided(ctx, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking retrieves a single booking, visible only to the item's owner
// or the booker. Anyone else gets a plain not-found.
func (s *BookingService) GetBooking(ctx context.Context, requesterID, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !bk.IsItemOwner(requesterID) && !bk.IsBooker(requesterID) {
		return nil, domain.NewNotFoundError("booking", bookingID.String())
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// ListByBooker returns the anchor user's own bookings, classified by state
// and ordered by start descending.
func (s *BookingService) ListByBooker(ctx context.Context, bookerID uuid.UUID, state string, from, size int) ([]BookingDTO, error) {
	if _, err := s.users.FindByID(ctx, bookerID); err != nil {
		return nil, err
	}

	shortCircuit, err := validatePage(from, size)
	if err != nil {
		return nil, err
	}
	if shortCircuit {
		return []BookingDTO{}, nil
	}

	filter, err := bookingDomain.ParseStateFilter(state)
	if err != nil {
		return nil, err
	}

	// ALL with a nonzero offset is served as a database-level page; every
	// other combination fetches the matching set and sorts it in memory.
	if filter == bookingDomain.FilterAll && from > 0 {
		page, err := s.bookings.FindPageByBookerID(ctx, bookerID, from/size, size)
		if err != nil {
			return nil, fmt.Errorf("failed to page booker bookings: %w", err)
		}
		return toBookingDTOs(page), nil
	}

	now := time.Now().UTC()
	var list []*bookingDomain.Booking
	switch filter {
	case bookingDomain.FilterAll:
		list, err = s.bookings.FindByBookerID(ctx, bookerID)
	case bookingDomain.FilterCurrent:
		list, err = s.bookings.FindCurrentByBookerID(ctx, bookerID, now)
	case bookingDomain.FilterFuture:
		list, err = s.bookings.FindFutureByBookerID(ctx, bookerID, now)
	case bookingDomain.FilterPast:
		list, err = s.bookings.FindPastByBookerID(ctx, bookerID, now)
	default:
		status, _ := filter.AsStatus()
		list, err = s.bookings.FindByBookerIDAndStatus(ctx, bookerID, status)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list booker bookings: %w", err)
	}

	sortByStartDesc(list)
	return toBookingDTOs(list), nil
}

// ListByOwner returns the bookings of items the anchor user owns, with the
// same classification and ordering as ListByBooker.
func (s *BookingService) ListByOwner(ctx context.Context, ownerID uuid.UUID, state string, from, size int) ([]BookingDTO, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	shortCircuit, err := validatePage(from, size)
	if err != nil {
		return nil, err
	}
	if shortCircuit {
		return []BookingDTO{}, nil
	}

	filter, err := bookingDomain.ParseStateFilter(state)
	if err != nil {
		return nil, err
	}

	if filter == bookingDomain.FilterAll && from > 0 {
		page, err := s.bookings.FindPageByOwnerID(ctx, ownerID, from/size, size)
		if err != nil {
			return nil, fmt.Errorf("failed to page owner bookings: %w", err)
		}
		return toBookingDTOs(page), nil
	}

	now := time.Now().UTC()
	var list []*bookingDomain.Booking
	switch filter {
	case bookingDomain.FilterAll:
		list, err = s.bookings.FindByOwnerID(ctx, ownerID)
	case bookingDomain.FilterCurrent:
		list, err = s.bookings.FindCurrentByOwnerID(ctx, ownerID, now)
	case bookingDomain.FilterFuture:
		list, err = s.bookings.FindFutureByOwnerID(ctx, ownerID, now)
	case bookingDomain.FilterPast:
		list, err = s.bookings.FindPastByOwnerID(ctx, ownerID, now)
	default:
		status, _ := filter.AsStatus()
		list, err = s.bookings.FindByOwnerIDAndStatus(ctx, ownerID, status)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list owner bookings: %w", err)
	}

	sortByStartDesc(list)
	return toBookingDTOs(list), nil
}

// --- Helpers ---

// validatePage enforces the pagination contract: from and size may not both
// be zero, from may not be negative, and a non-positive size with a nonzero
// offset short-circuits to an empty result instead of failing.
func validatePage(from, size int) (bool, error) {
	if from == 0 && size == 0 {
		return false, domain.NewValidationError("from and size must not both be zero")
	}
	if from < 0 {
		return false, domain.NewValidationError("from must not be negative")
	}
	if size <= 0 {
		if from == 0 {
			return false, domain.NewValidationError("size must be positive")
		}
		return true, nil
	}
	return false, nil
}

func sortByStartDesc(list []*bookingDomain.Booking) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].Start().After(list[j].Start())
	})
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:     bk.ID(),
		Start:  bk.Start(),
		End:    bk.End(),
		Status: bk.Status().String(),
		Booker: BookerDTO{
			ID:    bk.Booker().ID,
			Email: bk.Booker().Email,
			Name:  bk.Booker().Name,
		},
		Item: BookedItemDTO{
			ID:          bk.Item().ID,
			Name:        bk.Item().Name,
			Description: bk.Item().Description,
			Available:   bk.Item().Available,
		},
	}
}

func toBookingDTOs(list []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(list))
	for i, bk := range list {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}

func (s *BookingService) publishRequested(ctx context.Context, bk *bookingDomain.Booking) {
	evt := events.BookingRequestedEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.Item().ID,
		OwnerID:    bk.Item().OwnerID,
		BookerID:   bk.Booker().ID,
		Start:      bk.Start(),
		End:        bk.End(),
		OccurredAt: time.Now().UTC(),
	}
	s.publish(ctx, events.BookingRequested, bk.ID().String(), evt)
}

func (s *BookingService) publishDecided(ctx context.Context, bk *bookingDomain.Booking) {
	eventType := events.BookingRejected
	if bk.Status() == bookingDomain.StatusApproved {
		eventType = events.BookingApproved
	}
	evt := events.BookingDecidedEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.Item().ID,
		OwnerID:    bk.Item().OwnerID,
		BookerID:   bk.Booker().ID,
		Status:     bk.Status().String(),
		OccurredAt: time.Now().UTC(),
	}
	s.publish(ctx, eventType, bk.ID().String(), evt)
}

func (s *BookingService) publish(ctx context.Context, eventType, key string, data interface{}) {
	cloudEvent, err := events.NewCloudEvent("service-rental", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	if err := s.publisher.PublishEvent(ctx, events.TopicBookingEvents, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", events.TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

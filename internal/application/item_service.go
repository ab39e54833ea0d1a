package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shareloop/service-rental/internal/domain"
	bookingDomain "github.com/shareloop/service-rental/internal/domain/booking"
	commentDomain "github.com/shareloop/service-rental/internal/domain/comment"
	itemDomain "github.com/shareloop/service-rental/internal/domain/item"
	userDomain "github.com/shareloop/service-rental/internal/domain/user"
)

// CreateItemRequest is the request DTO for listing an item.
type CreateItemRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Available   *bool      `json:"available" binding:"required"`
	RequestID   *uuid.UUID `json:"requestId"`
}

// UpdateItemRequest is the request DTO for a partial item update.
type UpdateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
}

// AddCommentRequest is the request DTO for commenting on an item.
type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CommentDTO is the response representation of a comment.
type CommentDTO struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// BookingBriefDTO is the compact booking view embedded in item responses.
type BookingBriefDTO struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Status   string    `json:"status"`
}

// ItemDTO is the response representation of an item. LastBooking and
// NextBooking are populated only when the requester owns the item.
type ItemDTO struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Available   bool             `json:"available"`
	RequestID   *uuid.UUID       `json:"requestId,omitempty"`
	LastBooking *BookingBriefDTO `json:"lastBooking,omitempty"`
	NextBooking *BookingBriefDTO `json:"nextBooking,omitempty"`
	Comments    []CommentDTO     `json:"comments"`
}

// ItemService implements the item catalog: listing, partial updates,
// enriched views, search, and post-rental comment authoring.
type ItemService struct {
	items    itemDomain.ItemRepository
	users    userDomain.UserRepository
	bookings bookingDomain.BookingRepository
	comments commentDomain.CommentRepository
	logger   *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	bookings bookingDomain.BookingRepository,
	comments commentDomain.CommentRepository,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		bookings: bookings,
		comments: comments,
		logger:   logger,
	}
}

// CreateItem lists a new item for the given owner.
func (s *ItemService) CreateItem(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	it, err := itemDomain.NewItem(owner.ID(), req.Name, req.Description, req.Available, req.RequestID)
	if err != nil {
		return nil, err
	}

	if err := s.items.Save(ctx, it); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	s.logger.Info("item listed",
		zap.String("item_id", it.ID().String()),
		zap.String("owner_id", ownerID.String()),
	)
	result := toItemDTO(it, nil, nil, []CommentDTO{})
	return &result, nil
}

// UpdateItem applies a partial update. A requester who does not own the
// item gets a not-found, hiding the item's existence.
func (s *ItemService) UpdateItem(ctx context.Context, ownerID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(ownerID) {
		return nil, domain.NewNotFoundError("item", itemID.String())
	}

	it.Update(req.Name, req.Description, req.Available)
	if err := s.items.Update(ctx, it); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	result := toItemDTO(it, nil, nil, []CommentDTO{})
	return &result, nil
}

// GetItem returns the enriched item view: comments for everyone, last and
// next booking only for the owner.
func (s *ItemService) GetItem(ctx context.Context, requesterID, itemID uuid.UUID) (*ItemDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}

	var last, next *BookingBriefDTO
	if it.IsOwnedBy(requesterID) {
		last, next, err = s.itemBookingBriefs(ctx, itemID)
		if err != nil {
			return nil, err
		}
	}

	result := toItemDTO(it, last, next, toCommentDTOs(comments))
	return &result, nil
}

// ListByOwner returns the enriched views of every item the user owns.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]ItemDTO, error) {
	list, err := s.items.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	dtos := make([]ItemDTO, len(list))
	for i, it := range list {
		comments, err := s.comments.FindByItemID(ctx, it.ID())
		if err != nil {
			return nil, fmt.Errorf("failed to load comments: %w", err)
		}
		last, next, err := s.itemBookingBriefs(ctx, it.ID())
		if err != nil {
			return nil, err
		}
		dtos[i] = toItemDTO(it, last, next, toCommentDTOs(comments))
	}
	return dtos, nil
}

// Search returns available items matching text in name or description.
// Blank text yields an empty result, not an error.
func (s *ItemService) Search(ctx context.Context, text string) ([]ItemDTO, error) {
	if strings.TrimSpace(text) == "" {
		return []ItemDTO{}, nil
	}

	list, err := s.items.Search(ctx, strings.ToLower(text))
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}

	dtos := make([]ItemDTO, len(list))
	for i, it := range list {
		dtos[i] = toItemDTO(it, nil, nil, []CommentDTO{})
	}
	return dtos, nil
}

// AddComment lets a renter comment on an item after at least one of their
// bookings of it has ended.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID uuid.UUID, req AddCommentRequest) (*CommentDTO, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return nil, err
	}

	finished, err := s.bookings.FindPastByBookerAndItem(ctx, authorID, itemID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to load finished bookings: %w", err)
	}
	if len(finished) == 0 {
		return nil, domain.NewValidationError("user has no finished booking of this item")
	}

	cm, err := commentDomain.NewComment(itemID, author.ID(), author.Name(), req.Text)
	if err != nil {
		return nil, err
	}
	if err := s.comments.Save(ctx, cm); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	result := toCommentDTO(cm)
	return &result, nil
}

// --- Helpers ---

// itemBookingBriefs picks the latest booking started at or before now and
// the earliest one starting after now.
func (s *ItemService) itemBookingBriefs(ctx context.Context, itemID uuid.UUID) (last, next *BookingBriefDTO, err error) {
	bookings, err := s.bookings.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load item bookings: %w", err)
	}

	now := time.Now().UTC()
	var lastBk, nextBk *bookingDomain.Booking
	for _, bk := range bookings {
		if bk.Start().After(now) {
			if nextBk == nil || bk.Start().Before(nextBk.Start()) {
				nextBk = bk
			}
		} else {
			if lastBk == nil || bk.Start().After(lastBk.Start()) {
				lastBk = bk
			}
		}
	}
	return toBookingBrief(lastBk), toBookingBrief(nextBk), nil
}

func toBookingBrief(bk *bookingDomain.Booking) *BookingBriefDTO {
	if bk == nil {
		return nil
	}
	return &BookingBriefDTO{
		ID:       bk.ID(),
		BookerID: bk.Booker().ID,
		Start:    bk.Start(),
		End:      bk.End(),
		Status:   bk.Status().String(),
	}
}

func toItemDTO(it *itemDomain.Item, last, next *BookingBriefDTO, comments []CommentDTO) ItemDTO {
	return ItemDTO{
		ID:          it.ID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		RequestID:   it.RequestID(),
		LastBooking: last,
		NextBooking: next,
		Comments:    comments,
	}
}

func toCommentDTO(cm *commentDomain.Comment) CommentDTO {
	return CommentDTO{
		ID:         cm.ID(),
		Text:       cm.Text(),
		AuthorName: cm.AuthorName(),
		Created:    cm.CreatedAt(),
	}
}

func toCommentDTOs(list []*commentDomain.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(list))
	for i, cm := range list {
		dtos[i] = toCommentDTO(cm)
	}
	return dtos
}

package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	itemDomain "github.com/shareloop/service-rental/internal/domain/item"
	requestDomain "github.com/shareloop/service-rental/internal/domain/request"
	userDomain "github.com/shareloop/service-rental/internal/domain/user"
)

// CreateRequestRequest is the request DTO for posting an item request.
type CreateRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

// RequestItemDTO is the compact item view embedded in request responses.
type RequestItemDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Available bool      `json:"available"`
}

// RequestDTO is the response representation of an item request, with the
// items listed in answer to it.
type RequestDTO struct {
	ID          uuid.UUID        `json:"id"`
	Description string           `json:"description"`
	Created     time.Time        `json:"created"`
	Items       []RequestItemDTO `json:"items"`
}

// RequestService implements the item-request surface: posting a request and
// seeing which listings answer it.
type RequestService struct {
	requests requestDomain.RequestRepository
	items    itemDomain.ItemRepository
	users    userDomain.UserRepository
	logger   *zap.Logger
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requests requestDomain.RequestRepository,
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		items:    items,
		users:    users,
		logger:   logger,
	}
}

// CreateRequest posts a new item request for the given user.
func (s *RequestService) CreateRequest(ctx context.Context, requesterID uuid.UUID, req CreateRequestRequest) (*RequestDTO, error) {
	requester, err := s.users.FindByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	ir, err := requestDomain.NewItemRequest(requester.ID(), req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.requests.Save(ctx, ir); err != nil {
		return nil, fmt.Errorf("failed to save request: %w", err)
	}

	s.logger.Info("item request posted",
		zap.String("request_id", ir.ID().String()),
		zap.String("requester_id", requesterID.String()),
	)
	result := toRequestDTO(ir, nil)
	return &result, nil
}

// ListOwn returns the user's requests, newest first, each with the items
// answering it.
func (s *RequestService) ListOwn(ctx context.Context, requesterID uuid.UUID) ([]RequestDTO, error) {
	if _, err := s.users.FindByID(ctx, requesterID); err != nil {
		return nil, err
	}

	list, err := s.requests.FindByRequesterID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	ids := make([]uuid.UUID, len(list))
	for i, ir := range list {
		ids[i] = ir.ID()
	}
	answers, err := s.items.FindByRequestIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load answering items: %w", err)
	}

	byRequest := make(map[uuid.UUID][]*itemDomain.Item)
	for _, it := range answers {
		if rid := it.RequestID(); rid != nil {
			byRequest[*rid] = append(byRequest[*rid], it)
		}
	}

	dtos := make([]RequestDTO, len(list))
	for i, ir := range list {
		dtos[i] = toRequestDTO(ir, byRequest[ir.ID()])
	}
	return dtos, nil
}

// GetRequest retrieves one request, visible to any existing user.
func (s *RequestService) GetRequest(ctx context.Context, requesterID, requestID uuid.UUID) (*RequestDTO, error) {
	if _, err := s.users.FindByID(ctx, requesterID); err != nil {
		return nil, err
	}

	ir, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	answers, err := s.items.FindByRequestIDs(ctx, []uuid.UUID{ir.ID()})
	if err != nil {
		return nil, fmt.Errorf("failed to load answering items: %w", err)
	}

	result := toRequestDTO(ir, answers)
	return &result, nil
}

func toRequestDTO(ir *requestDomain.ItemRequest, answers []*itemDomain.Item) RequestDTO {
	items := make([]RequestItemDTO, len(answers))
	for i, it := range answers {
		items[i] = RequestItemDTO{
			ID:        it.ID(),
			Name:      it.Name(),
			OwnerID:   it.OwnerID(),
			Available: it.Available(),
		}
	}
	return RequestDTO{
		ID:          ir.ID(),
		Description: ir.Description(),
		Created:     ir.CreatedAt(),
		Items:       items,
	}
}

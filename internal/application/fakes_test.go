package application

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shareloop/service-rental/internal/domain"
	bookingDomain "github.com/shareloop/service-rental/internal/domain/booking"
	commentDomain "github.com/shareloop/service-rental/internal/domain/comment"
	itemDomain "github.com/shareloop/service-rental/internal/domain/item"
	requestDomain "github.com/shareloop/service-rental/internal/domain/request"
	userDomain "github.com/shareloop/service-rental/internal/domain/user"
	"github.com/shareloop/service-rental/internal/events"
)

// fakeBookingRepo is an in-memory BookingRepository keyed on booking id.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*bookingDomain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[uuid.UUID]*bookingDomain.Booking{}}
}

func (r *fakeBookingRepo) put(b *bookingDomain.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID()] = b
}

func (r *fakeBookingRepo) all() []*bookingDomain.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*bookingDomain.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		out = append(out, b)
	}
	return out
}

func (r *fakeBookingRepo) filter(pred func(*bookingDomain.Booking) bool) []*bookingDomain.Booking {
	out := []*bookingDomain.Booking{}
	for _, b := range r.all() {
		if pred(b) {
			out = append(out, b)
		}
	}
	return out
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("booking", id.String())
	}
	return b, nil
}

func (r *fakeBookingRepo) FindByItemID(_ context.Context, itemID uuid.UUID) ([]*bookingDomain.Booking, error) {
	return r.filter(func(b *bookingDomain.Booking) bool { return b.Item().ID == itemID }), nil
}

func (r *fakeBookingRepo) FindByBookerID(_ context.Context, bookerID uuid.UUID) ([]*bookingDomain.Booking, error) {
	return r.filter(func(b *bookingDomain.Booking) bool { return b.IsBooker(bookerID) }), nil
}

func (r *fakeBookingRepo) FindByBookerIDAndStatus(_ context.Context, bookerID uuid.UUID, status bookingDomain.BookingStatus) ([]*bookingDomain.Booking, error) {
	return r.filter(func(b *bookingDomain.Booking) bool {
		return b.IsBooker(bookerID) && b.Status() == status
	}), nil
}

func (r *fakeBookingRepo) FindCurrentByBookerID(_ context.Context, bookerID uuid.UUID, at time.Time) ([]*bookingDomain.Booking, error) {
	return r.filter(func(b *bookingDomain.Booking) bool {
		return b.IsBooker(bookerID) && b.Start().Before(at) && b.End().After(at)
	}), nil
}

func (r *fakeBookingRepo) FindFutureByBookerID(_ context.Context, bookerID uuid.UUID, at time.Time) ([]*bookingDomain.Booking, error) {
	return r.filter(func(b *bookingDomain.Booking) bool {
		return b.IsBooker(bookerID) && b.Start().After(at)
	}), nil
}

func (r *fakeBookingRepo) FindPastByBookerID(_ context.Context, bookerID uuid.UUID, at time.Time) ([]*bookingDomain.Booking, error) {
	return r.filter(func(b *bookingDomain.Booking) bool {
		return b.IsBooker(bookerID) && b.End().Before(at)
	}), nil
}

func (r *fakeBookingRepo) FindPageByBookerID(_ context.Context, bookerID uuid.UUID, page, size int) ([]*bookingDomain.Booking, error) {
	return pageOf(sortedDesc(r.filter(func(b *bookingDomain.Booking) bool { return b.IsBooker(bookerID) })), page, size), nil
}

func (r *fakeBookingRepo) FindByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*bookingDomain.Booking, error) {
	return r.filter(func(b *bookingDomain.Booking) bool { return b.IsItemOwner(ownerID) }), nil
}

func (r *fakeBookingRepo) FindByOwnerIDAndStatus(_ context.Context, ownerID uuid.UUID, status bookingDomain.BookingStatus) ([]*bookingDomain.Booking, error) {
	return r.filter(func(b *bookingDomain.Booking) bool {
		return b.IsItemOwner(ownerID) && b.Status() == status
	}), nil
}

func (r *fakeBookingRepo) FindCurrentByOwnerID(_ context.Context, ownerID uuid.UUID, at time.Time) ([]*bookingDomain.Booking, error) {
	return r.filter(func(b *bookingDomain.Booking) bool {
		return b.IsItemOwner(ownerID) && b.Start().Before(at) && b.End().After(at)
	}), nil
}

func (r *fakeBookingRepo) FindFutureByOwnerID(_ context.Context, ownerID uuid.UUID, at time.Time) ([]*bookingDomain.Booking, error) {
	return r.filter(func(b *bookingDomain.Booking) bool {
		return b.IsItemOwner(ownerID) && b.Start().After(at)
	}), nil
}

func (r *fakeBookingRepo) FindPastByOwnerID(_ context.Context, ownerID uuid.UUID, at time.Time) ([]*bookingDomain.Booking, error) {
	return r.filter(func(b *bookingDomain.Booking) bool {
		return b.IsItemOwner(ownerID) && b.End().Before(at)
	}), nil
}

func (r *fakeBookingRepo) FindPageByOwnerID(_ context.Context, ownerID uuid.UUID, page, size int) ([]*bookingDomain.Booking, error) {
	return pageOf(sortedDesc(r.filter(func(b *bookingDomain.Booking) bool { return b.IsItemOwner(ownerID) })), page, size), nil
}

func (r *fakeBookingRepo) FindPastByBookerAndItem(_ context.Context, bookerID, itemID uuid.UUID, at time.Time) ([]*bookingDomain.Booking, error) {
	return r.filter(func(b *bookingDomain.Booking) bool {
		return b.IsBooker(bookerID) && b.Item().ID == itemID && b.End().Before(at)
	}), nil
}

func (r *fakeBookingRepo) Save(_ context.Context, b *bookingDomain.Booking) error {
	r.put(b)
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, b *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.ID()]; !ok {
		return domain.NewNotFoundError("booking", b.ID().String())
	}
	r.bookings[b.ID()] = b
	return nil
}

func sortedDesc(list []*bookingDomain.Booking) []*bookingDomain.Booking {
	sortByStartDesc(list)
	return list
}

func pageOf(list []*bookingDomain.Booking, page, size int) []*bookingDomain.Booking {
	start := page * size
	if start >= len(list) {
		return []*bookingDomain.Booking{}
	}
	end := start + size
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}

// fakeItemRepo is an in-memory ItemRepository.
type fakeItemRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*itemDomain.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[uuid.UUID]*itemDomain.Item{}}
}

func (r *fakeItemRepo) put(it *itemDomain.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[it.ID()] = it
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("item", id.String())
	}
	return it, nil
}

func (r *fakeItemRepo) FindByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*itemDomain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*itemDomain.Item{}
	for _, it := range r.items {
		if it.IsOwnedBy(ownerID) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) FindByRequestIDs(_ context.Context, requestIDs []uuid.UUID) ([]*itemDomain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := map[uuid.UUID]struct{}{}
	for _, id := range requestIDs {
		wanted[id] = struct{}{}
	}
	out := []*itemDomain.Item{}
	for _, it := range r.items {
		if it.RequestID() == nil {
			continue
		}
		if _, ok := wanted[*it.RequestID()]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Search(_ context.Context, text string) ([]*itemDomain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*itemDomain.Item{}
	for _, it := range r.items {
		if !it.Available() {
			continue
		}
		if containsFold(it.Name(), text) || containsFold(it.Description(), text) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Save(_ context.Context, it *itemDomain.Item) error {
	r.put(it)
	return nil
}

func (r *fakeItemRepo) Update(_ context.Context, it *itemDomain.Item) error {
	r.put(it)
	return nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*userDomain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*userDomain.User{}}
}

func (r *fakeUserRepo) put(u *userDomain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID()] = u
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", id.String())
	}
	return u, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*userDomain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Save(_ context.Context, u *userDomain.User) error {
	r.put(u)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID()]; !ok {
		return domain.NewNotFoundError("user", u.ID().String())
	}
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.NewNotFoundError("user", id.String())
	}
	delete(r.users, id)
	return nil
}

// fakeCommentRepo is an in-memory CommentRepository.
type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []*commentDomain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{}
}

func (r *fakeCommentRepo) FindByItemID(_ context.Context, itemID uuid.UUID) ([]*commentDomain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*commentDomain.Comment{}
	for _, c := range r.comments {
		if c.ItemID() == itemID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) FindByItemIDs(_ context.Context, itemIDs []uuid.UUID) ([]*commentDomain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := map[uuid.UUID]struct{}{}
	for _, id := range itemIDs {
		wanted[id] = struct{}{}
	}
	out := []*commentDomain.Comment{}
	for _, c := range r.comments {
		if _, ok := wanted[c.ItemID()]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) Save(_ context.Context, c *commentDomain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments = append(r.comments, c)
	return nil
}

// fakeRequestRepo is an in-memory RequestRepository.
type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*requestDomain.ItemRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: map[uuid.UUID]*requestDomain.ItemRequest{}}
}

func (r *fakeRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*requestDomain.ItemRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.NewNotFoundError("item request", id.String())
	}
	return req, nil
}

func (r *fakeRequestRepo) FindByRequesterID(_ context.Context, requesterID uuid.UUID) ([]*requestDomain.ItemRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*requestDomain.ItemRequest{}
	for _, req := range r.requests {
		if req.RequesterID() == requesterID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) Save(_ context.Context, req *requestDomain.ItemRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[req.ID()] = req
	return nil
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu        sync.Mutex
	published []events.CloudEvent
}

func (p *recordingPublisher) PublishEvent(_ context.Context, _, _ string, event events.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.published))
	for i, e := range p.published {
		out[i] = e.Type
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

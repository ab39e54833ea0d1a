package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shareloop/service-rental/internal/domain"
	bookingDomain "github.com/shareloop/service-rental/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table. Item and Booker are
// loaded alongside every booking so listings never issue follow-up queries.
type BookingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	StartDate time.Time `gorm:"column:start_date;not null;index"`
	EndDate   time.Time `gorm:"column:end_date;not null"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Item      ItemModel `gorm:"foreignKey:ItemID"`
	BookerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Booker    UserModel `gorm:"foreignKey:BookerID"`
	Status    string    `gorm:"not null;size:32"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Item").
		Preload("Booker")
}

// ownerScope narrows a booking query to bookings of items owned by ownerID.
func ownerScope(db *gorm.DB, ownerID uuid.UUID) *gorm.DB {
	return db.
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID)
}

// FindByID retrieves a booking by id with its item and booker.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.base(ctx).Where("bookings.id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByItemID retrieves every booking of an item, regardless of status.
func (r *GormBookingRepository) FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.base(ctx).
		Where("bookings.item_id = ?", itemID).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by item: %w", err)
	}
	return toDomainBookings(models)
}

// FindByBookerID retrieves all bookings made by a user.
func (r *GormBookingRepository) FindByBookerID(ctx context.Context, bookerID uuid.UUID) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.base(ctx).
		Where("bookings.booker_id = ?", bookerID).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by booker: %w", err)
	}
	return toDomainBookings(models)
}

// FindByBookerIDAndStatus retrieves a user's bookings in a given status.
func (r *GormBookingRepository) FindByBookerIDAndStatus(ctx context.Context, bookerID uuid.UUID, status bookingDomain.BookingStatus) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.base(ctx).
		Where("bookings.booker_id = ? AND bookings.status = ?", bookerID, string(status)).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by booker and status: %w", err)
	}
	return toDomainBookings(models)
}

// FindCurrentByBookerID retrieves a user's bookings whose interval strictly
// covers at.
func (r *GormBookingRepository) FindCurrentByBookerID(ctx context.Context, bookerID uuid.UUID, at time.Time) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.base(ctx).
		Where("bookings.booker_id = ? AND bookings.start_date < ? AND bookings.end_date > ?", bookerID, at, at).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find current bookings by booker: %w", err)
	}
	return toDomainBookings(models)
}

// FindFutureByBookerID retrieves a user's bookings starting after at.
func (r *GormBookingRepository) FindFutureByBookerID(ctx context.Context, bookerID uuid.UUID, at time.Time) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.base(ctx).
		Where("bookings.booker_id = ? AND bookings.start_date > ?", bookerID, at).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find future bookings by booker: %w", err)
	}
	return toDomainBookings(models)
}

// FindPastByBookerID retrieves a user's bookings ending before at.
func (r *GormBookingRepository) FindPastByBookerID(ctx context.Context, bookerID uuid.UUID, at time.Time) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.base(ctx).
		Where("bookings.booker_id = ? AND bookings.end_date < ?", bookerID, at).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find past bookings by booker: %w", err)
	}
	return toDomainBookings(models)
}

// FindPageByBookerID retrieves one zero-based page of a user's bookings
// ordered by start descending.
func (r *GormBookingRepository) FindPageByBookerID(ctx context.Context, bookerID uuid.UUID, page, size int) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.base(ctx).
		Where("bookings.booker_id = ?", bookerID).
		Order("bookings.start_date DESC").
		Offset(page * size).
		Limit(size).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find booking page by booker: %w", err)
	}
	return toDomainBookings(models)
}

// FindByOwnerID retrieves all bookings of items owned by a user.
func (r *GormBookingRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := ownerScope(r.base(ctx), ownerID).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by owner: %w", err)
	}
	return toDomainBookings(models)
}

// FindByOwnerIDAndStatus retrieves bookings of a user's items in a given status.
func (r *GormBookingRepository) FindByOwnerIDAndStatus(ctx context.Context, ownerID uuid.UUID, status bookingDomain.BookingStatus) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := ownerScope(r.base(ctx), ownerID).
		Where("bookings.status = ?", string(status)).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by owner and status: %w", err)
	}
	return toDomainBookings(models)
}

// FindCurrentByOwnerID retrieves bookings of a user's items strictly covering at.
func (r *GormBookingRepository) FindCurrentByOwnerID(ctx context.Context, ownerID uuid.UUID, at time.Time) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := ownerScope(r.base(ctx), ownerID).
		Where("bookings.start_date < ? AND bookings.end_date > ?", at, at).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find current bookings by owner: %w", err)
	}
	return toDomainBookings(models)
}

// FindFutureByOwnerID retrieves bookings of a user's items starting after at.
func (r *GormBookingRepository) FindFutureByOwnerID(ctx context.Context, ownerID uuid.UUID, at time.Time) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := ownerScope(r.base(ctx), ownerID).
		Where("bookings.start_date > ?", at).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find future bookings by owner: %w", err)
	}
	return toDomainBookings(models)
}

// FindPastByOwnerID retrieves bookings of a user's items ending before at.
func (r *GormBookingRepository) FindPastByOwnerID(ctx context.Context, ownerID uuid.UUID, at time.Time) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := ownerScope(r.base(ctx), ownerID).
		Where("bookings.end_date < ?", at).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find past bookings by owner: %w", err)
	}
	return toDomainBookings(models)
}

// FindPageByOwnerID retrieves one zero-based page of bookings of a user's
// items ordered by start descending.
func (r *GormBookingRepository) FindPageByOwnerID(ctx context.Context, ownerID uuid.UUID, page, size int) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := ownerScope(r.base(ctx), ownerID).
		Order("bookings.start_date DESC").
		Offset(page * size).
		Limit(size).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find booking page by owner: %w", err)
	}
	return toDomainBookings(models)
}

// FindPastByBookerAndItem retrieves a user's bookings of one item that ended
// before at.
func (r *GormBookingRepository) FindPastByBookerAndItem(ctx context.Context, bookerID, itemID uuid.UUID, at time.Time) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.base(ctx).
		Where("bookings.booker_id = ? AND bookings.item_id = ? AND bookings.end_date < ?", bookerID, itemID, at).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find finished bookings by booker and item: %w", err)
	}
	return toDomainBookings(models)
}

// Save persists a new booking. Only the row itself is written; the referenced
// item and user already exist.
func (r *GormBookingRepository) Save(ctx context.Context, b *bookingDomain.Booking) error {
	if err := r.db.WithContext(ctx).
		Omit("Item", "Booker").
		Create(toBookingModel(b)).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists status changes to an existing booking.
func (r *GormBookingRepository) Update(ctx context.Context, b *bookingDomain.Booking) error {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ?", b.ID()).
		Updates(map[string]interface{}{
			"status":     string(b.Status()),
			"updated_at": b.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("booking", b.ID().String())
	}
	return nil
}

// --- Conversion Helpers ---

func toBookingModel(b *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        b.ID(),
		StartDate: b.Start(),
		EndDate:   b.End(),
		ItemID:    b.Item().ID,
		BookerID:  b.Booker().ID,
		Status:    string(b.Status()),
		CreatedAt: b.CreatedAt(),
		UpdatedAt: b.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, fmt.Errorf("corrupt booking %s: %w", m.ID, err)
	}

	item := bookingDomain.ItemRef{
		ID:          m.Item.ID,
		OwnerID:     m.Item.OwnerID,
		Name:        m.Item.Name,
		Description: m.Item.Description,
		Available:   m.Item.Available,
	}
	booker := bookingDomain.BookerRef{
		ID:    m.Booker.ID,
		Email: m.Booker.Email,
		Name:  m.Booker.Name,
	}

	return bookingDomain.Reconstruct(
		m.ID,
		m.StartDate, m.EndDate,
		item, booker,
		status,
		m.CreatedAt, m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		b, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = b
	}
	return bookings, nil
}

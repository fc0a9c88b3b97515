package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/domain/booking"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Restaurant
// --------------------------------------------------

func (r *BookingGormRepository) GetRestaurantByID(
	ctx context.Context,
	id string,
) (*models.Restaurant, error) {

	var rest models.Restaurant
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&rest).Error; err != nil {
		return nil, notFound(err)
	}
	return &rest, nil
}

func (r *BookingGormRepository) GetRestaurantByOwner(
	ctx context.Context,
	ownerID string,
) (*models.Restaurant, error) {

	var rest models.Restaurant
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&rest).Error; err != nil {
		return nil, notFound(err)
	}
	return &rest, nil
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (r *BookingGormRepository) GetUserByID(
	ctx context.Context,
	id string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(b).Error
}

func (r *BookingGormRepository) GetBookingByID(
	ctx context.Context,
	id string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&b).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBookingByPaymentLink(
	ctx context.Context,
	paymentLinkID string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("payment_link_id = ?", paymentLinkID).
		First(&b).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBookingForRestaurant(
	ctx context.Context,
	id string,
	restaurantID string,
	status domain.Status,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND restaurant_id = ? AND status = ?", id, restaurantID, string(status)).
		First(&b).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

// ApplyChange is a compare-and-swap on status: the UPDATE only matches while
// the booking is still in the transition's source state.
func (r *BookingGormRepository) ApplyChange(
	ctx context.Context,
	bookingID string,
	ch domain.Change,
) (bool, error) {

	from := ch.Transition.From()
	if err := ch.Validate(from); err != nil {
		return false, err
	}

	updates := map[string]any{
		"status":     string(ch.Transition.To()),
		"updated_at": time.Now(),
	}
	if ch.Link != nil {
		updates["payment_link_id"] = ch.Link.ID
		updates["payment_link_url"] = ch.Link.URL
	}

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", bookingID, string(from)).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected == 1, nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsByRestaurant(
	ctx context.Context,
	restaurantID string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("restaurant_id = ?", restaurantID).
		Order("booking_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsByUser(
	ctx context.Context,
	userID string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Restaurant").
		Where("user_id = ?", userID).
		Order("booking_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)

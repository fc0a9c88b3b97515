package booking

import (
	"context"
	"errors"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/models"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	// -------- Restaurant --------
	GetRestaurantByID(
		ctx context.Context,
		id string,
	) (*models.Restaurant, error)

	GetRestaurantByOwner(
		ctx context.Context,
		ownerID string,
	) (*models.Restaurant, error)

	// -------- User --------
	GetUserByID(
		ctx context.Context,
		id string,
	) (*models.User, error)

	// -------- Booking (create / read) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBookingByID(
		ctx context.Context,
		id string,
	) (*models.Booking, error)

	GetBookingByPaymentLink(
		ctx context.Context,
		paymentLinkID string,
	) (*models.Booking, error)

	GetBookingForRestaurant(
		ctx context.Context,
		id string,
		restaurantID string,
		status Status,
	) (*models.Booking, error)

	// -------- Booking (state change) --------

	// ApplyChange writes the change only if the booking is still in
	// ch.Transition.From(). It reports false when no row matched.
	ApplyChange(
		ctx context.Context,
		bookingID string,
		ch Change,
	) (bool, error)

	// -------- Listing --------
	ListBookingsByRestaurant(
		ctx context.Context,
		restaurantID string,
	) ([]models.Booking, error)

	ListBookingsByUser(
		ctx context.Context,
		userID string,
	) ([]models.Booking, error)
}

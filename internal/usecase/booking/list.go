package booking

import (
	"context"
	"errors"

	domain "github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/domain/booking"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/dto"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httperr"
)

// ======================================================
// RESTAURANT
// ======================================================

type ListRestaurantBookings struct {
	repo domain.Repository
}

func NewListRestaurantBookings(repo domain.Repository) *ListRestaurantBookings {
	return &ListRestaurantBookings{repo: repo}
}

func (uc *ListRestaurantBookings) Execute(
	ctx context.Context,
	ownerID string,
) ([]dto.BookingDTO, error) {

	rest, err := uc.repo.GetRestaurantByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrForbidden("no_restaurant", "You do not own a restaurant.")
		}
		return nil, err
	}

	bookings, err := uc.repo.ListBookingsByRestaurant(ctx, rest.ID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingDTO, 0, len(bookings))
	for i := range bookings {
		d := dto.NewBookingDTO(&bookings[i])
		d.CustomerName = bookings[i].User.Name
		d.CustomerEmail = bookings[i].User.Email
		d.RestaurantName = rest.Name
		out = append(out, d)
	}
	return out, nil
}

// ======================================================
// CUSTOMER
// ======================================================

type ListCustomerBookings struct {
	repo domain.Repository
}

func NewListCustomerBookings(repo domain.Repository) *ListCustomerBookings {
	return &ListCustomerBookings{repo: repo}
}

func (uc *ListCustomerBookings) Execute(
	ctx context.Context,
	customerID string,
) ([]dto.BookingDTO, error) {

	bookings, err := uc.repo.ListBookingsByUser(ctx, customerID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingDTO, 0, len(bookings))
	for i := range bookings {
		d := dto.NewBookingDTO(&bookings[i])
		d.RestaurantName = bookings[i].Restaurant.Name
		out = append(out, d)
	}
	return out, nil
}

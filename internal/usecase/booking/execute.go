package booking

import (
	"context"
	"errors"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/audit"
	domain "github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/domain/booking"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httperr"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/models"
)

type ExecuteBooking struct {
	repo    domain.Repository
	pricing domain.Pricing
	audit   audit.Sink
	now     Clock
}

type ExecuteResult struct {
	Booking *models.Booking
	// Note is the advisory payout, e.g. "3 × 40 = 120".
	Note string
}

func NewExecuteBooking(
	repo domain.Repository,
	pricing domain.Pricing,
	audit audit.Sink,
	now Clock,
) *ExecuteBooking {
	return &ExecuteBooking{
		repo:    repo,
		pricing: pricing,
		audit:   audit,
		now:     orNow(now),
	}
}

func (uc *ExecuteBooking) Execute(
	ctx context.Context,
	ownerID string,
	in domain.ExecuteInput,
) (*ExecuteResult, error) {

	bookingID, err := domain.ValidateExecute(in)
	if err != nil {
		return nil, err
	}

	rest, err := uc.repo.GetRestaurantByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrForbidden("no_restaurant", "You do not own a restaurant.")
		}
		return nil, err
	}

	// Ownership is checked before status, so a foreign booking is always 403.
	existing, err := uc.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, notFound(err, "booking_not_found", "Booking not found.")
	}
	if existing.RestaurantID != rest.ID {
		return nil, httperr.ErrForbidden("not_restaurant_owner", "You do not own this booking's restaurant.")
	}

	b, err := uc.repo.GetBookingForRestaurant(ctx, bookingID, rest.ID, domain.StatusConfirmed)
	if err != nil {
		return nil, notFound(err, "booking_not_found", "No confirmed booking with this id.")
	}

	if err := domain.CanExecuteAt(b, uc.now()); err != nil {
		return nil, err
	}

	change := domain.Execute()
	ok, err := uc.repo.ApplyChange(ctx, b.ID, change)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrInvalidTransition(
			"booking_already_updated",
			"Booking was updated by another request.",
		)
	}
	if err := domain.Apply(b, change); err != nil {
		return nil, err
	}

	note := uc.pricing.PayoutNote(b.NumberOfGuests)

	uc.audit.Dispatch(audit.Event{
		RestaurantID: rest.ID,
		UserID:       strPtr(ownerID),
		Action:       "booking_executed",
		Entity:       "booking",
		EntityID:     strPtr(b.ID),
		Metadata: map[string]any{
			"payout": uc.pricing.Payout(b.NumberOfGuests),
		},
	})

	return &ExecuteResult{Booking: b, Note: note}, nil
}

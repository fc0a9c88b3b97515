package booking

import (
	"context"
	"log"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/audit"
	domain "github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/domain/booking"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/dto"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httperr"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/models"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/realtime"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/timezone"
)

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo   domain.Repository
	broker realtime.Broker
	audit  audit.Sink
	now    Clock
}

func NewCreateBooking(
	repo domain.Repository,
	broker realtime.Broker,
	audit audit.Sink,
	now Clock,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		broker: broker,
		audit:  audit,
		now:    orNow(now),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	customerID string,
	in domain.CreateInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	cmd, err := domain.ValidateCreate(in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Restaurant and customer
	// --------------------------------------------------
	rest, err := uc.repo.GetRestaurantByID(ctx, cmd.RestaurantID)
	if err != nil {
		return nil, notFound(err, "restaurant_not_found", "Restaurant not found.")
	}

	customer, err := uc.repo.GetUserByID(ctx, customerID)
	if err != nil {
		return nil, notFound(err, "user_not_found", "User not found.")
	}

	// --------------------------------------------------
	// 3. Visit time, in the restaurant's timezone
	// --------------------------------------------------
	at, err := domain.ParseBookingAt(cmd.BookingAt, timezone.Location(rest.Timezone))
	if err != nil {
		return nil, httperr.ErrValidation("invalid_request", map[string]string{"bookingAt": "must be a valid date"})
	}
	if !at.After(uc.now()) {
		return nil, httperr.ErrValidation("invalid_request", map[string]string{"bookingAt": "must be in the future"})
	}

	// --------------------------------------------------
	// 4. Persist
	// --------------------------------------------------
	b := &models.Booking{
		UserID:         customer.ID,
		RestaurantID:   rest.ID,
		BookingAt:      at,
		NumberOfGuests: cmd.NumberOfGuests,
		Message:        cmd.Message,
		Category:       string(cmd.Category),
		PhoneNumber:    cmd.PhoneNumber,
		Status:         string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Live feed + audit
	// --------------------------------------------------
	out := dto.NewBookingDTO(b)
	out.CustomerName = customer.Name
	out.CustomerEmail = customer.Email
	if err := uc.broker.Publish(ctx, rest.ID, realtime.Event{
		Event:   realtime.EventNewBooking,
		Payload: out,
	}); err != nil {
		log.Printf("booking %s: publish new-booking: %v", b.ID, err)
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: rest.ID,
		UserID:       strPtr(customer.ID),
		Action:       "booking_created",
		Entity:       "booking",
		EntityID:     strPtr(b.ID),
		Metadata: map[string]any{
			"guests":     b.NumberOfGuests,
			"booking_at": b.BookingAt,
		},
	})

	return b, nil
}

package booking

import (
	"context"
	"log"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/audit"
	domain "github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/domain/booking"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httperr"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/models"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/notify"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/payment"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/timezone"
)

// ======================================================
// USE CASE
// ======================================================

type ChangeStatus struct {
	repo        domain.Repository
	gateway     payment.Gateway
	notifier    Notifier
	pricing     domain.Pricing
	callbackURL string
	audit       audit.Sink
}

type StatusChangeResult struct {
	Booking *models.Booking
	// EmailSent is false when the customer could not be notified;
	// the status change itself still stands.
	EmailSent bool
}

func NewChangeStatus(
	repo domain.Repository,
	gateway payment.Gateway,
	notifier Notifier,
	pricing domain.Pricing,
	callbackURL string,
	audit audit.Sink,
) *ChangeStatus {
	return &ChangeStatus{
		repo:        repo,
		gateway:     gateway,
		notifier:    notifier,
		pricing:     pricing,
		callbackURL: callbackURL,
		audit:       audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	ownerID string,
	in domain.StatusChangeInput,
) (*StatusChangeResult, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	cmd, err := domain.ValidateStatusChange(in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Booking and ownership
	// --------------------------------------------------
	b, err := uc.repo.GetBookingByID(ctx, cmd.BookingID)
	if err != nil {
		return nil, notFound(err, "booking_not_found", "Booking not found.")
	}

	rest, err := uc.repo.GetRestaurantByID(ctx, b.RestaurantID)
	if err != nil {
		return nil, notFound(err, "restaurant_not_found", "Restaurant not found.")
	}
	if rest.OwnerID != ownerID {
		return nil, httperr.ErrForbidden("not_restaurant_owner", "You do not own this booking's restaurant.")
	}

	// --------------------------------------------------
	// 3. Only pending bookings take an owner decision
	// --------------------------------------------------
	if domain.Status(b.Status) != domain.StatusPending {
		return nil, httperr.ErrInvalidTransition(
			"booking_not_pending",
			"Only pending bookings can be accepted or rejected.",
		)
	}

	transition, err := domain.OwnerDecision(cmd.NewStatus)
	if err != nil {
		return nil, err
	}

	customer, err := uc.repo.GetUserByID(ctx, b.UserID)
	if err != nil {
		return nil, notFound(err, "user_not_found", "Customer not found.")
	}

	notice := notify.BookingNotice{
		BookingID:      b.ID,
		CustomerName:   customer.Name,
		CustomerEmail:  customer.Email,
		RestaurantName: rest.Name,
		BookingAt:      b.BookingAt.In(timezone.Location(rest.Timezone)),
		Guests:         b.NumberOfGuests,
		Category:       b.Category,
	}

	// --------------------------------------------------
	// 4. Build the change (accepting mints the link first)
	// --------------------------------------------------
	var change domain.Change
	switch transition {
	case domain.TransitionAccept:
		link, err := uc.gateway.CreatePaymentLink(ctx, payment.LinkRequest{
			BookingID:      b.ID,
			NumberOfGuests: b.NumberOfGuests,
			CustomerName:   customer.Name,
			CustomerEmail:  customer.Email,
			CallbackURL:    uc.callbackURL,
		})
		if err != nil {
			return nil, err
		}
		change = domain.Accept(domain.PaymentLinkRef{ID: link.ID, URL: link.ShortURL})
		notice.PaymentURL = link.ShortURL
		notice.Deposit = domain.FormatRupees(uc.pricing.Deposit(b.NumberOfGuests))

	case domain.TransitionReject:
		change = domain.Reject()

	default:
		return nil, httperr.ErrInvalidTransition("invalid_status", "Unsupported status change.")
	}

	// --------------------------------------------------
	// 5. Conditional write
	// --------------------------------------------------
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

	// --------------------------------------------------
	// 6. Notify customer (best effort)
	// --------------------------------------------------
	var mailErr error
	if transition == domain.TransitionAccept {
		mailErr = uc.notifier.BookingAccepted(ctx, notice)
	} else {
		mailErr = uc.notifier.BookingRejected(ctx, notice)
	}
	if mailErr != nil {
		log.Printf("booking %s: %s email to %s failed: %v", b.ID, transition, customer.Email, mailErr)
	}

	uc.audit.Dispatch(audit.Event{
		RestaurantID: rest.ID,
		UserID:       strPtr(ownerID),
		Action:       "booking_" + transition.String(),
		Entity:       "booking",
		EntityID:     strPtr(b.ID),
		Metadata: map[string]any{
			"from":       string(transition.From()),
			"to":         string(transition.To()),
			"email_sent": mailErr == nil,
		},
	})

	return &StatusChangeResult{Booking: b, EmailSent: mailErr == nil}, nil
}

package booking

import (
	"time"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httperr"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/models"
)

// PaymentLinkRef is the part of a gateway payment link kept on the booking.
type PaymentLinkRef struct {
	ID  string
	URL string
}

// Change is one status transition, plus the link minted when accepting.
type Change struct {
	Transition Transition
	Link       *PaymentLinkRef
}

// ===============================
// Domain Actions
// ===============================

func Accept(link PaymentLinkRef) Change {
	return Change{Transition: TransitionAccept, Link: &link}
}

func Reject() Change {
	return Change{Transition: TransitionReject}
}

func Confirm() Change {
	return Change{Transition: TransitionConfirm}
}

func FailPayment() Change {
	return Change{Transition: TransitionPaymentFailed}
}

func Execute() Change {
	return Change{Transition: TransitionExecute}
}

// Validate checks the change against the booking's current status.
func (ch Change) Validate(current Status) error {
	if err := CanApply(ch.Transition, current); err != nil {
		return err
	}
	if (ch.Transition == TransitionAccept) != (ch.Link != nil) {
		return httperr.ErrInvalidTransition("invalid_payment_link", "Payment link must be set exactly when accepting.")
	}
	return nil
}

// Apply mirrors a persisted change on the in-memory booking.
func Apply(b *models.Booking, ch Change) error {
	if err := ch.Validate(Status(b.Status)); err != nil {
		return err
	}
	b.Status = string(ch.Transition.To())
	if ch.Link != nil {
		id, url := ch.Link.ID, ch.Link.URL
		b.PaymentLinkID = &id
		b.PaymentLinkURL = &url
	}
	return nil
}

// CanExecuteAt enforces that a booking is executed only after its scheduled time.
func CanExecuteAt(b *models.Booking, now time.Time) error {
	if !now.After(b.BookingAt) {
		return httperr.ErrInvalidTransition(
			"booking_not_due",
			"Booking cannot be marked executed before its scheduled time.",
		)
	}
	return nil
}

package booking

import (
	"context"
	"time"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/audit"
	domain "github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/domain/booking"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httperr"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/infra/cache"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/models"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/payment"
)

const callbackLockTTL = 30 * time.Second

// ======================================================
// USE CASE
// ======================================================

type ReconcilePayment struct {
	repo     domain.Repository
	verifier *payment.Verifier
	locker   cache.Locker
	audit    audit.Sink
}

type ReconcileResult struct {
	Booking     *models.Booking
	BookingDone bool
	Message     string
}

func NewReconcilePayment(
	repo domain.Repository,
	verifier *payment.Verifier,
	locker cache.Locker,
	audit audit.Sink,
) *ReconcilePayment {
	return &ReconcilePayment{
		repo:     repo,
		verifier: verifier,
		locker:   locker,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ReconcilePayment) Execute(
	ctx context.Context,
	raw map[string]any,
) (*ReconcileResult, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	in, err := domain.ValidateCallback(raw)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Booking behind the link
	// --------------------------------------------------
	b, err := uc.repo.GetBookingByPaymentLink(ctx, in.PaymentLinkID)
	if err != nil {
		return nil, notFound(err, "booking_not_found", "No booking for this payment link.")
	}

	// --------------------------------------------------
	// 3. One callback per link at a time
	// --------------------------------------------------
	release, ok, err := uc.locker.TryLock(ctx, "payment-callback:"+in.PaymentLinkID, callbackLockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrConflict(
			"callback_in_progress",
			"Another callback for this payment link is being processed.",
		)
	}
	defer release()

	// --------------------------------------------------
	// 4. Not paid: reject, no signature involved
	// --------------------------------------------------
	if in.PaymentLinkStatus != domain.PaymentLinkStatusPaid {
		b, err := uc.settle(ctx, b, domain.FailPayment(), domain.StatusRejected)
		if err != nil {
			return nil, err
		}
		uc.record(b, "payment_failed", in)
		return &ReconcileResult{
			Booking:     b,
			BookingDone: false,
			Message:     "Payment was not completed, booking rejected.",
		}, nil
	}

	// --------------------------------------------------
	// 5. Paid: the signature must match
	// --------------------------------------------------
	if !uc.verifier.Verify(payment.LinkPayload{
		PaymentLinkID:     in.PaymentLinkID,
		ReferenceID:       in.ReferenceID,
		PaymentLinkStatus: in.PaymentLinkStatus,
		PaymentID:         in.PaymentID,
	}, in.Signature) {
		return nil, httperr.ErrSignature("invalid_signature", "Payment signature verification failed.")
	}

	b, err = uc.settle(ctx, b, domain.Confirm(), domain.StatusConfirmed, domain.StatusExecuted)
	if err != nil {
		return nil, err
	}
	uc.record(b, "payment_confirmed", in)

	return &ReconcileResult{
		Booking:     b,
		BookingDone: true,
		Message:     "Payment verified, booking confirmed.",
	}, nil
}

// settle applies ch. When the conditional write misses, a booking that
// already sits in one of done is a repeated callback and succeeds unchanged.
func (uc *ReconcilePayment) settle(
	ctx context.Context,
	b *models.Booking,
	ch domain.Change,
	done ...domain.Status,
) (*models.Booking, error) {

	ok, err := uc.repo.ApplyChange(ctx, b.ID, ch)
	if err != nil {
		return nil, err
	}
	if ok {
		b.Status = string(ch.Transition.To())
		return b, nil
	}

	current, err := uc.repo.GetBookingByID(ctx, b.ID)
	if err != nil {
		return nil, notFound(err, "booking_not_found", "Booking not found.")
	}
	for _, st := range done {
		if domain.Status(current.Status) == st {
			return current, nil
		}
	}
	return nil, httperr.ErrInvalidTransition(
		"booking_already_settled",
		"Booking is "+current.Status+" and no longer awaits payment.",
	)
}

func (uc *ReconcilePayment) record(b *models.Booking, action string, in *domain.CallbackInput) {
	uc.audit.Dispatch(audit.Event{
		RestaurantID: b.RestaurantID,
		Action:       action,
		Entity:       "booking",
		EntityID:     strPtr(b.ID),
		Metadata: map[string]any{
			"payment_id":      in.PaymentID,
			"payment_link_id": in.PaymentLinkID,
			"link_status":     in.PaymentLinkStatus,
		},
	})
}

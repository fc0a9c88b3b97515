package booking

import (
	"context"
	"errors"
	"time"

	domain "github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/domain/booking"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httperr"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/notify"
)

// Notifier sends the customer-facing emails of owner decisions.
type Notifier interface {
	BookingAccepted(ctx context.Context, notice notify.BookingNotice) error
	BookingRejected(ctx context.Context, notice notify.BookingNotice) error
}

// Clock returns the current time; swapped in tests.
type Clock func() time.Time

func orNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// notFound turns a repository miss into a 404 business error and passes
// every other error through.
func notFound(err error, code, message string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrNotFound(code, message)
	}
	return err
}

func strPtr(s string) *string {
	return &s
}

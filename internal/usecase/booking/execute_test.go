package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/domain/booking"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httperr"
)

func TestExecuteIsTimeGated(t *testing.T) {
	repo := newFixture()
	seedBooking(repo, "b1", domain.StatusConfirmed)
	now := visitAt.Add(-time.Minute)
	uc := NewExecuteBooking(repo, testPricing, &auditRecorder{}, func() time.Time { return now })

	_, err := uc.Execute(context.Background(), ownerID, domain.ExecuteInput{BookingID: "b1"})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "booking_not_due"))
	assert.Equal(t, 400, httperrStatus(err))
	assert.Equal(t, string(domain.StatusConfirmed), repo.booking("b1").Status)

	now = visitAt.Add(time.Minute)
	res, err := uc.Execute(context.Background(), ownerID, domain.ExecuteInput{BookingID: "b1"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusExecuted), res.Booking.Status)
	assert.Equal(t, string(domain.StatusExecuted), repo.booking("b1").Status)
	assert.Equal(t, "3 × 40 = 120", res.Note)
}

func TestExecuteRequiresConfirmed(t *testing.T) {
	for _, st := range []domain.Status{
		domain.StatusPending,
		domain.StatusPaymentPending,
		domain.StatusExecuted,
		domain.StatusRejected,
	} {
		repo := newFixture()
		seedBooking(repo, "b1", st)
		uc := NewExecuteBooking(repo, testPricing, &auditRecorder{}, fixedClock(visitAt.Add(time.Hour)))

		_, err := uc.Execute(context.Background(), ownerID, domain.ExecuteInput{BookingID: "b1"})
		assert.True(t, httperr.IsKind(err, httperr.KindNotFound), string(st))
		assert.Equal(t, string(st), repo.booking("b1").Status)
	}
}

func TestExecuteRequiresOwnership(t *testing.T) {
	for _, st := range []domain.Status{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusExecuted,
	} {
		repo := newFixture()
		seedBooking(repo, "b1", st)
		uc := NewExecuteBooking(repo, testPricing, &auditRecorder{}, fixedClock(visitAt.Add(time.Hour)))

		_, err := uc.Execute(context.Background(), otherOwnerID, domain.ExecuteInput{BookingID: "b1"})
		assert.True(t, httperr.IsKind(err, httperr.KindForbidden), string(st))

		_, err = uc.Execute(context.Background(), customerID, domain.ExecuteInput{BookingID: "b1"})
		assert.True(t, httperr.IsBusiness(err, "no_restaurant"), string(st))

		assert.Equal(t, string(st), repo.booking("b1").Status)
	}
}

func TestExecuteValidatesInput(t *testing.T) {
	uc := NewExecuteBooking(newFixture(), testPricing, &auditRecorder{}, nil)

	_, err := uc.Execute(context.Background(), ownerID, domain.ExecuteInput{})
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}

func httperrStatus(err error) int {
	status, _ := httperr.Describe("test", err)
	return status
}

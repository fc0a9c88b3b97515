package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httperr"
	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/models"
)

func TestApplyAcceptSetsLinkTogether(t *testing.T) {
	b := &models.Booking{Status: string(StatusPending)}

	require.NoError(t, Apply(b, Accept(PaymentLinkRef{ID: "plink_1", URL: "https://rzp.io/l/x"})))

	assert.Equal(t, string(StatusPaymentPending), b.Status)
	require.NotNil(t, b.PaymentLinkID)
	require.NotNil(t, b.PaymentLinkURL)
	assert.Equal(t, "plink_1", *b.PaymentLinkID)
	assert.Equal(t, "https://rzp.io/l/x", *b.PaymentLinkURL)
}

func TestApplyKeepsLinkAfterSettlement(t *testing.T) {
	id, url := "plink_1", "https://rzp.io/l/x"
	b := &models.Booking{Status: string(StatusPaymentPending), PaymentLinkID: &id, PaymentLinkURL: &url}

	require.NoError(t, Apply(b, Confirm()))
	assert.Equal(t, string(StatusConfirmed), b.Status)
	assert.Equal(t, "plink_1", *b.PaymentLinkID)
}

func TestApplyRejectsWrongSourceStatus(t *testing.T) {
	b := &models.Booking{Status: string(StatusRejected)}

	err := Apply(b, Accept(PaymentLinkRef{ID: "plink_1", URL: "u"}))
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))
	assert.Equal(t, string(StatusRejected), b.Status)
	assert.Nil(t, b.PaymentLinkID)
}

func TestChangeRequiresLinkOnlyWhenAccepting(t *testing.T) {
	assert.Error(t, Change{Transition: TransitionAccept}.Validate(StatusPending))

	link := PaymentLinkRef{ID: "x", URL: "y"}
	err := Change{Transition: TransitionReject, Link: &link}.Validate(StatusPending)
	assert.True(t, httperr.IsBusiness(err, "invalid_payment_link"))

	assert.NoError(t, Reject().Validate(StatusPending))
}

func TestCanExecuteAt(t *testing.T) {
	at := time.Date(2030, 1, 2, 19, 30, 0, 0, time.UTC)
	b := &models.Booking{BookingAt: at}

	assert.True(t, httperr.IsBusiness(CanExecuteAt(b, at.Add(-time.Hour)), "booking_not_due"))
	assert.True(t, httperr.IsBusiness(CanExecuteAt(b, at), "booking_not_due"))
	assert.NoError(t, CanExecuteAt(b, at.Add(time.Second)))
}

func TestPricing(t *testing.T) {
	p := Pricing{DepositPerGuest: 5000, PayoutPerGuest: 40}

	assert.Equal(t, int64(15000), p.Deposit(3))
	assert.Equal(t, int64(120), p.Payout(3))
	assert.Equal(t, "3 × 40 = 120", p.PayoutNote(3))
	assert.Equal(t, "₹150.00", FormatRupees(p.Deposit(3)))
	assert.Equal(t, "₹0.05", FormatRupees(5))
}

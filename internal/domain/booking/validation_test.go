package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httperr"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var be httperr.BusinessError
	require.True(t, errors.As(err, &be), "want BusinessError, got %v", err)
	require.Equal(t, httperr.KindValidation, be.Kind)
	return be.Fields
}

func validCreate() CreateInput {
	return CreateInput{
		RestaurantID:   "r-1",
		BookingAt:      "2030-01-02T19:30:00+05:30",
		NumberOfGuests: 3,
		Category:       "dinner",
		PhoneNumber:    "9876543210",
	}
}

func TestValidateCreateDefaultsMessage(t *testing.T) {
	cmd, err := ValidateCreate(validCreate())
	require.NoError(t, err)
	assert.Equal(t, "", cmd.Message)
	assert.Equal(t, CategoryDinner, cmd.Category)
	assert.Equal(t, 3, cmd.NumberOfGuests)

	in := validCreate()
	msg := "window seat"
	in.Message = &msg
	cmd, err = ValidateCreate(in)
	require.NoError(t, err)
	assert.Equal(t, "window seat", cmd.Message)
}

func TestValidateCreateListsEveryViolatedField(t *testing.T) {
	_, err := ValidateCreate(CreateInput{
		BookingAt:      "next tuesday",
		NumberOfGuests: 0,
		Category:       "brunch",
		PhoneNumber:    "12345",
	})
	require.Error(t, err)

	fields := fieldsOf(t, err)
	assert.Len(t, fields, 5)
	assert.Equal(t, "is required", fields["restaurantID"])
	assert.Equal(t, "must be a valid date", fields["bookingAt"])
	assert.Equal(t, "must be at least 1", fields["numberOfGuests"])
	assert.Contains(t, fields["category"], "breakfast")
	assert.Equal(t, "must be exactly 10 digits", fields["phoneNumber"])
}

func TestDecodeCreateReportsTypeErrorsWithOtherViolations(t *testing.T) {
	_, err := DecodeCreate(map[string]any{
		"restaurantID":   "r-1",
		"bookingAt":      "not-a-date",
		"numberOfGuests": "two",
		"category":       "brunch",
		"phoneNumber":    "123",
		"message":        42.0,
	})
	require.Error(t, err)

	fields := fieldsOf(t, err)
	assert.Len(t, fields, 5)
	assert.Equal(t, "must be a number", fields["numberOfGuests"])
	assert.Equal(t, "must be a string", fields["message"])
	assert.Equal(t, "must be a valid date", fields["bookingAt"])
	assert.Equal(t, "must be one of breakfast, lunch, dinner", fields["category"])
	assert.Equal(t, "must be exactly 10 digits", fields["phoneNumber"])
}

func TestDecodeCreate(t *testing.T) {
	in, err := DecodeCreate(map[string]any{
		"restaurantID":   "r-1",
		"bookingAt":      "2030-01-02T19:30",
		"numberOfGuests": 3.0,
		"category":       "dinner",
		"phoneNumber":    "9876543210",
		"message":        "window seat",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, in.NumberOfGuests)
	require.NotNil(t, in.Message)
	assert.Equal(t, "window seat", *in.Message)

	_, err = DecodeCreate(map[string]any{
		"restaurantID":   123.0,
		"bookingAt":      "2030-01-02T19:30",
		"numberOfGuests": 2.5,
		"category":       "dinner",
		"phoneNumber":    "9876543210",
	})
	fields := fieldsOf(t, err)
	assert.Equal(t, "must be a string", fields["restaurantID"])
	assert.Equal(t, "must be a whole number", fields["numberOfGuests"])
	assert.Len(t, fields, 2)
}

func TestValidateCreatePhoneNumber(t *testing.T) {
	for _, phone := range []string{"98765432100", "98765-4321", "abcdefghij", ""} {
		in := validCreate()
		in.PhoneNumber = phone
		_, err := ValidateCreate(in)
		require.Error(t, err, phone)
		assert.Contains(t, fieldsOf(t, err), "phoneNumber", phone)
	}
}

func TestValidateStatusChange(t *testing.T) {
	for _, st := range []string{"payment pending", "rejected", "executed"} {
		cmd, err := ValidateStatusChange(StatusChangeInput{BookingID: "b-1", NewStatus: st})
		require.NoError(t, err, st)
		assert.Equal(t, Status(st), cmd.NewStatus)
	}

	_, err := ValidateStatusChange(StatusChangeInput{NewStatus: "confirmed"})
	fields := fieldsOf(t, err)
	assert.Equal(t, "is required", fields["bookingID"])
	assert.Contains(t, fields["newStatus"], "must be one of")
}

func TestValidateExecute(t *testing.T) {
	id, err := ValidateExecute(ExecuteInput{BookingID: "b-1"})
	require.NoError(t, err)
	assert.Equal(t, "b-1", id)

	_, err = ValidateExecute(ExecuteInput{})
	assert.Contains(t, fieldsOf(t, err), "bookingID")
}

func TestValidateCallback(t *testing.T) {
	raw := map[string]any{
		FieldPaymentID:     "pay_1",
		FieldPaymentLinkID: "plink_1",
		FieldReferenceID:   "",
		FieldPaymentStatus: "paid",
		FieldSignature:     "abc",
	}
	in, err := ValidateCallback(raw)
	require.NoError(t, err)
	assert.Equal(t, "plink_1", in.PaymentLinkID)
	assert.Equal(t, "", in.ReferenceID)

	_, err = ValidateCallback(map[string]any{
		FieldPaymentID:     42,
		FieldPaymentLinkID: "plink_1",
		FieldPaymentStatus: "paid",
	})
	require.Error(t, err)
	var be httperr.BusinessError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "invalid_callback", be.Code)
	assert.Equal(t, "must be a string", be.Fields[FieldPaymentID])
	assert.Equal(t, "is required", be.Fields[FieldReferenceID])
	assert.Equal(t, "is required", be.Fields[FieldSignature])
	assert.NotContains(t, be.Fields, FieldPaymentLinkID)
}

func TestParseBookingAt(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	local, err := ParseBookingAt("2030-01-02T19:30", kolkata)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 1, 2, 14, 0, 0, 0, time.UTC), local.UTC())

	spaced, err := ParseBookingAt("2030-01-02 19:30", kolkata)
	require.NoError(t, err)
	assert.True(t, spaced.Equal(local))

	zoned, err := ParseBookingAt("2030-01-02T14:00:00Z", kolkata)
	require.NoError(t, err)
	assert.True(t, zoned.Equal(local))

	_, err = ParseBookingAt("02/01/2030", kolkata)
	assert.Error(t, err)
}

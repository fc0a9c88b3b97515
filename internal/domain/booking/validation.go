package booking

import (
	"math"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httperr"
)

var (
	tenDigits = regexp.MustCompile(`^[0-9]{10}$`)

	bookingAtLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
	}

	validate = newValidator()
)

// ======================================================
// INPUTS
// ======================================================

type CreateInput struct {
	RestaurantID   string  `json:"restaurantID" validate:"required"`
	BookingAt      string  `json:"bookingAt" validate:"required,bookingdate"`
	NumberOfGuests int     `json:"numberOfGuests" validate:"gte=1"`
	Category       string  `json:"category" validate:"required,bookingcategory"`
	PhoneNumber    string  `json:"phoneNumber" validate:"required,tendigits"`
	Message        *string `json:"message"`
}

type CreateCommand struct {
	RestaurantID   string
	BookingAt      string
	NumberOfGuests int
	Category       Category
	PhoneNumber    string
	Message        string
}

type StatusChangeInput struct {
	BookingID string `json:"bookingID" validate:"required"`
	NewStatus string `json:"newStatus" validate:"required,statuschange"`
}

type StatusChangeCommand struct {
	BookingID string
	NewStatus Status
}

type ExecuteInput struct {
	BookingID string `json:"bookingID" validate:"required"`
}

// Callback field names as sent by the gateway.
const (
	FieldPaymentID     = "razorpay_payment_id"
	FieldPaymentLinkID = "razorpay_payment_link_id"
	FieldReferenceID   = "razorpay_payment_link_reference_id"
	FieldPaymentStatus = "razorpay_payment_link_status"
	FieldSignature     = "razorpay_signature"
)

const PaymentLinkStatusPaid = "paid"

type CallbackInput struct {
	PaymentID         string `json:"razorpay_payment_id" validate:"required"`
	PaymentLinkID     string `json:"razorpay_payment_link_id" validate:"required"`
	ReferenceID       string `json:"razorpay_payment_link_reference_id"`
	PaymentLinkStatus string `json:"razorpay_payment_link_status" validate:"required"`
	Signature         string `json:"razorpay_signature" validate:"required"`
}

// ======================================================
// VALIDATION
// ======================================================

func ValidateCreate(in CreateInput) (*CreateCommand, error) {
	if err := check(in); err != nil {
		return nil, err
	}

	msg := ""
	if in.Message != nil {
		msg = *in.Message
	}

	return &CreateCommand{
		RestaurantID:   strings.TrimSpace(in.RestaurantID),
		BookingAt:      strings.TrimSpace(in.BookingAt),
		NumberOfGuests: in.NumberOfGuests,
		Category:       Category(in.Category),
		PhoneNumber:    in.PhoneNumber,
		Message:        msg,
	}, nil
}

func ValidateStatusChange(in StatusChangeInput) (*StatusChangeCommand, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	return &StatusChangeCommand{
		BookingID: in.BookingID,
		NewStatus: Status(in.NewStatus),
	}, nil
}

func ValidateExecute(in ExecuteInput) (string, error) {
	if err := check(in); err != nil {
		return "", err
	}
	return in.BookingID, nil
}

// DecodeCreate reads a raw JSON object into a CreateInput. Wrongly typed
// fields are reported together with every other violation.
func DecodeCreate(raw map[string]any) (CreateInput, error) {
	fields := map[string]string{}

	str := func(key string) string {
		v, ok := raw[key]
		if !ok || v == nil {
			return ""
		}
		s, ok := v.(string)
		if !ok {
			fields[key] = "must be a string"
		}
		return s
	}

	in := CreateInput{
		RestaurantID: str("restaurantID"),
		BookingAt:    str("bookingAt"),
		Category:     str("category"),
		PhoneNumber:  str("phoneNumber"),
	}

	switch v := raw["numberOfGuests"].(type) {
	case nil:
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
			fields["numberOfGuests"] = "must be a whole number"
		} else {
			in.NumberOfGuests = int(v)
		}
	default:
		fields["numberOfGuests"] = "must be a number"
	}

	if v, ok := raw["message"]; ok && v != nil {
		if msg, ok := v.(string); ok {
			in.Message = &msg
		} else {
			fields["message"] = "must be a string"
		}
	}

	// type errors win over the rule the zero value then breaks
	if err := validate.Struct(in); err != nil {
		collect(err, fields)
	}
	if len(fields) > 0 {
		return in, httperr.ErrValidation("invalid_request", fields)
	}
	return in, nil
}

// ValidateCallback checks the raw callback body: every field must be present
// and a string. The reference id may be empty (test-mode links carry none).
func ValidateCallback(raw map[string]any) (*CallbackInput, error) {
	fields := map[string]string{}
	get := func(key string) string {
		v, ok := raw[key]
		if !ok || v == nil {
			fields[key] = "is required"
			return ""
		}
		s, ok := v.(string)
		if !ok {
			fields[key] = "must be a string"
			return ""
		}
		return s
	}

	in := CallbackInput{
		PaymentID:         get(FieldPaymentID),
		PaymentLinkID:     get(FieldPaymentLinkID),
		ReferenceID:       get(FieldReferenceID),
		PaymentLinkStatus: get(FieldPaymentStatus),
		Signature:         get(FieldSignature),
	}

	if err := validate.Struct(in); err != nil {
		collect(err, fields)
	}
	if len(fields) > 0 {
		return nil, httperr.ErrValidation("invalid_callback", fields)
	}
	return &in, nil
}

// ParseBookingAt accepts RFC 3339 timestamps and zone-less local times, the
// latter interpreted in loc.
func ParseBookingAt(s string, loc *time.Location) (time.Time, error) {
	var lastErr error
	for _, layout := range bookingAtLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ======================================================
// VALIDATOR
// ======================================================

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	must(v.RegisterValidation("tendigits", TenDigits))
	must(v.RegisterValidation("bookingdate", BookingDate))
	must(v.RegisterValidation("bookingcategory", BookingCategory))
	must(v.RegisterValidation("statuschange", StatusChange))

	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

var TenDigits validator.Func = func(fl validator.FieldLevel) bool {
	return tenDigits.MatchString(fl.Field().String())
}

var BookingDate validator.Func = func(fl validator.FieldLevel) bool {
	_, err := ParseBookingAt(fl.Field().String(), time.UTC)
	return err == nil
}

var BookingCategory validator.Func = func(fl validator.FieldLevel) bool {
	return Category(fl.Field().String()).IsValid()
}

var StatusChange validator.Func = func(fl validator.FieldLevel) bool {
	switch Status(fl.Field().String()) {
	case StatusPaymentPending, StatusRejected, StatusExecuted:
		return true
	}
	return false
}

func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	fields := map[string]string{}
	collect(err, fields)
	return httperr.ErrValidation("invalid_request", fields)
}

func collect(err error, fields map[string]string) {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["_"] = err.Error()
		return
	}
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = describe(fe)
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "tendigits":
		return "must be exactly 10 digits"
	case "bookingdate":
		return "must be a valid date"
	case "bookingcategory":
		return "must be one of breakfast, lunch, dinner"
	case "statuschange":
		return "must be one of payment pending, rejected, executed"
	}
	return "is invalid"
}

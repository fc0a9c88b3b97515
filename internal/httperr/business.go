package httperr

import (
	"errors"
	"net/http"
)

// Kind classifies a business error and decides its HTTP status.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindForbidden
	KindInvalidTransition
	KindSignature
	KindConflict
	KindUpstream
)

func (k Kind) Status() int {
	switch k {
	case KindValidation, KindInvalidTransition, KindSignature:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindUpstream:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
	// Fields lists every violated input field for validation errors.
	Fields map[string]string
	Err    error
}

func (e BusinessError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

func ErrValidation(code string, fields map[string]string) error {
	return BusinessError{Kind: KindValidation, Code: code, Message: "Invalid request.", Fields: fields}
}

func ErrNotFound(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func ErrForbidden(code, message string) error {
	return BusinessError{Kind: KindForbidden, Code: code, Message: message}
}

func ErrInvalidTransition(code, message string) error {
	return BusinessError{Kind: KindInvalidTransition, Code: code, Message: message}
}

func ErrSignature(code, message string) error {
	return BusinessError{Kind: KindSignature, Code: code, Message: message}
}

func ErrConflict(code, message string) error {
	return BusinessError{Kind: KindConflict, Code: code, Message: message}
}

func ErrUpstream(code string, err error) error {
	return BusinessError{Kind: KindUpstream, Code: code, Message: "Payment provider unavailable.", Err: err}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

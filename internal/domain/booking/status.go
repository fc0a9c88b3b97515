package booking

import (
	"fmt"

	"github.com/ShreyShah11/Restaurant-Management-and-Reservation-System-sub000/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending        Status = "pending"
	StatusPaymentPending Status = "payment pending"
	StatusConfirmed      Status = "confirmed"
	StatusExecuted       Status = "executed"
	StatusRejected       Status = "rejected"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusPaymentPending, StatusConfirmed, StatusExecuted, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("invalid booking status: %q", s)
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusExecuted:
		return true
	case StatusPending, StatusPaymentPending, StatusConfirmed:
		return false
	}
	return true
}

// CanTransitionTo reports whether some edge of the status graph leads from s to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range Transitions() {
		if t.From() == s && t.To() == target {
			return true
		}
	}
	return false
}

// InitialStatus of every new booking.
func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Transitions
// ===============================

// Transition is one edge of the booking status graph.
type Transition int

const (
	TransitionAccept Transition = iota + 1
	TransitionReject
	TransitionConfirm
	TransitionPaymentFailed
	TransitionExecute
)

func Transitions() []Transition {
	return []Transition{
		TransitionAccept,
		TransitionReject,
		TransitionConfirm,
		TransitionPaymentFailed,
		TransitionExecute,
	}
}

func (t Transition) From() Status {
	switch t {
	case TransitionAccept, TransitionReject:
		return StatusPending
	case TransitionConfirm, TransitionPaymentFailed:
		return StatusPaymentPending
	case TransitionExecute:
		return StatusConfirmed
	}
	panic(fmt.Sprintf("booking: unknown transition %d", int(t)))
}

func (t Transition) To() Status {
	switch t {
	case TransitionAccept:
		return StatusPaymentPending
	case TransitionReject, TransitionPaymentFailed:
		return StatusRejected
	case TransitionConfirm:
		return StatusConfirmed
	case TransitionExecute:
		return StatusExecuted
	}
	panic(fmt.Sprintf("booking: unknown transition %d", int(t)))
}

func (t Transition) String() string {
	switch t {
	case TransitionAccept:
		return "accept"
	case TransitionReject:
		return "reject"
	case TransitionConfirm:
		return "confirm"
	case TransitionPaymentFailed:
		return "payment_failed"
	case TransitionExecute:
		return "execute"
	}
	return fmt.Sprintf("transition(%d)", int(t))
}

// ===============================
// Validations
// ===============================

// CanApply checks that a booking currently in status current may take edge t.
func CanApply(t Transition, current Status) error {
	if current != t.From() {
		return httperr.ErrInvalidTransition(
			"invalid_state",
			fmt.Sprintf("Booking is %s and cannot be moved to %s.", current, t.To()),
		)
	}
	return nil
}

// OwnerDecision maps the status requested by an owner onto its edge.
// Only accept and reject are owner decisions; execution has its own entrypoint.
func OwnerDecision(requested Status) (Transition, error) {
	switch requested {
	case StatusPaymentPending:
		return TransitionAccept, nil
	case StatusRejected:
		return TransitionReject, nil
	case StatusExecuted:
		return 0, httperr.ErrInvalidTransition(
			"use_execute_endpoint",
			"Bookings are marked executed through the execute-booking endpoint.",
		)
	case StatusPending, StatusConfirmed:
	}
	return 0, httperr.ErrInvalidTransition(
		"invalid_status",
		fmt.Sprintf("Status %q cannot be set by the restaurant.", requested),
	)
}

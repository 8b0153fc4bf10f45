package scheduling

import (
	"errors"
	"fmt"
)

// Kind discriminates placement and lifecycle failures.
type Kind string

const (
	KindInvalidWindow            Kind = "invalid_window"
	KindSlotNotFound             Kind = "slot_not_found"
	KindModelNotFound            Kind = "model_not_found"
	KindReservationNotFound      Kind = "reservation_not_found"
	KindUserNotFound             Kind = "user_not_found"
	KindSlotInactive             Kind = "slot_inactive"
	KindOutsideSlotWindow        Kind = "outside_slot_window"
	KindOverlapConflict          Kind = "overlap_conflict"
	KindReservationOverlap       Kind = "reservation_overlap"
	KindDuplicateUserReservation Kind = "duplicate_user_reservation"
	KindSlotInUse                Kind = "slot_in_use"
	KindInternal                 Kind = "internal"
)

// Error is a typed scheduling failure. Two errors match with errors.Is when
// their kinds are equal, so the sentinels below work with any message.
type Error struct {
	Kind    Kind
	Message string
	err     error
}

var (
	ErrInvalidWindow            = &Error{Kind: KindInvalidWindow, Message: "startDateTime must be before endDateTime"}
	ErrSlotNotFound             = &Error{Kind: KindSlotNotFound, Message: "slot not found"}
	ErrModelNotFound            = &Error{Kind: KindModelNotFound, Message: "model not found"}
	ErrReservationNotFound      = &Error{Kind: KindReservationNotFound, Message: "reservation not found"}
	ErrUserNotFound             = &Error{Kind: KindUserNotFound, Message: "user not found"}
	ErrSlotInactive             = &Error{Kind: KindSlotInactive, Message: "slot is not active"}
	ErrOutsideSlotWindow        = &Error{Kind: KindOutsideSlotWindow, Message: "reservation must be inside the slot window"}
	ErrOverlapConflict          = &Error{Kind: KindOverlapConflict, Message: "overlaps an existing active slot"}
	ErrReservationOverlap       = &Error{Kind: KindReservationOverlap, Message: "overlaps an existing reservation in this slot"}
	ErrDuplicateUserReservation = &Error{Kind: KindDuplicateUserReservation, Message: "user already holds a reservation in this slot"}
	ErrSlotInUse                = &Error{Kind: KindSlotInUse, Message: "slot still has reservations"}
)

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Internal wraps a storage or infrastructure failure. The cause is kept for
// logs and errors.Unwrap but never rendered by Error.
func Internal(err error) error {
	if err == nil {
		return nil
	}

	return &Error{Kind: KindInternal, Message: "internal error", err: err}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}

	return e.Kind == other.Kind
}

// Cause returns the wrapped error for logging, formatted with the kind.
func (e *Error) Cause() string {
	if e.err == nil {
		return string(e.Kind)
	}

	return fmt.Sprintf("%s: %v", e.Kind, e.err)
}

// KindOf extracts the kind of a scheduling error anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var schedErr *Error
	if errors.As(err, &schedErr) {
		return schedErr.Kind, true
	}

	return "", false
}

// Classify keeps scheduling errors as they are and wraps anything else as
// internal.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := KindOf(err); ok {
		return err
	}

	return Internal(err)
}

// Package fault defines the error kinds shared across the engine. Packages
// wrap these sentinels so callers can branch with errors.Is without knowing
// which layer produced the failure.
package fault

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed input: bad date range, missing field.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks an unknown room, guest or reservation id.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a room unavailable for the requested range.
	ErrConflict = errors.New("conflict")
	// ErrState marks an illegal lifecycle transition.
	ErrState = errors.New("illegal state transition")
)

func Validationf(format string, args ...any) error {
	return wrapf(ErrValidation, format, args...)
}

func NotFoundf(format string, args ...any) error {
	return wrapf(ErrNotFound, format, args...)
}

func Conflictf(format string, args ...any) error {
	return wrapf(ErrConflict, format, args...)
}

func wrapf(kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}

// TransitionError reports an attempted lifecycle action that is not legal
// from the reservation's current status. It unwraps to ErrState.
type TransitionError struct {
	Action string
	Status string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a %s reservation: %s", e.Action, e.Status, ErrState)
}

func (e *TransitionError) Unwrap() error {
	return ErrState
}

// Package repository defines the data access layer and the error types
// shared across it.  These sentinel values let handlers distinguish
// failure scenarios: ErrForbidden means the caller does not own the
// booking it is trying to cancel, ErrAlreadyCancelled that the booking
// has already reached its terminal state, and so on.  SeatConflictError
// is the one structured error: it names every seat that was already
// confirmed-booked so the caller can resubmit the rest.
package repository

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTripNotFound is returned when a referenced trip does not exist.
var ErrTripNotFound = errors.New("trip not found")

// ErrRouteNotFound is returned when a referenced route does not exist.
var ErrRouteNotFound = errors.New("route not found")

// ErrHolderNotFound is returned when the booking user does not exist or
// is inactive.
var ErrHolderNotFound = errors.New("holder not found")

// ErrBookingNotFound is returned when no booking matches the given id or
// code.
var ErrBookingNotFound = errors.New("booking not found")

// ErrAlreadyCancelled is returned when cancelling a booking that is not
// in the confirmed state.  Cancellation is not idempotent by design: the
// second attempt fails and cancelled_at keeps its original value.
var ErrAlreadyCancelled = errors.New("booking already cancelled")

// ErrForbidden is returned when the caller attempts an operation on a
// booking held by someone else.  Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrEmailExists is returned when registering a user whose email is
// already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrUnavailable marks transient storage failures (connectivity,
// timeouts).  Every mutating path runs in a transaction, so nothing
// partial is ever committed and callers may simply retry.
var ErrUnavailable = errors.New("storage unavailable")

// SeatConflictError reports that one or more requested seats already
// carry a confirmed booking.  For a multi-seat request the whole
// operation is rolled back and Seats lists each conflicting label.
type SeatConflictError struct {
	Seats []string
}

func (e *SeatConflictError) Error() string {
	if len(e.Seats) == 1 {
		return fmt.Sprintf("seat %s already booked", e.Seats[0])
	}
	return fmt.Sprintf("seats %s already booked", strings.Join(e.Seats, ", "))
}

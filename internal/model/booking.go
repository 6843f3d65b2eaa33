package model

import "time"

// Booking statuses.  A booking is created confirmed and may transition to
// cancelled exactly once; cancelled is terminal.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Booking records one seat held on one trip by one user.  The booking
// code is a human-facing sequential reference (P0001, P0002, ...) that is
// unique across the whole ledger and never reused, even after
// cancellation.
//
// Fields:
//
//	ID          - primary key identifier.
//	Code        - sequential booking reference, assigned at confirmation.
//	TripID      - trip being booked.
//	UserID      - holder of the seat.
//	SeatNumber  - seat label such as "1A" or "10B".
//	Status      - confirmed or cancelled.
//	BookedAt    - confirmation timestamp (UTC).
//	CancelledAt - set only when the booking is cancelled.
type Booking struct {
	ID          uint64     `json:"id"`                     // bookings.id
	Code        string     `json:"booking_code"`           // bookings.booking_code
	TripID      uint64     `json:"trip_id"`                // bookings.trip_id
	UserID      uint64     `json:"user_id"`                // bookings.user_id
	SeatNumber  string     `json:"seat_number"`            // bookings.seat_number
	Status      string     `json:"status"`                 // bookings.status
	BookedAt    time.Time  `json:"booked_at"`              // bookings.booked_at
	CancelledAt *time.Time `json:"cancelled_at,omitempty"` // bookings.cancelled_at (nullable)
}

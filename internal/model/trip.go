package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Route is one shuttle line, identified by its color.  Routes are
// reference data managed outside the booking core.
//
// Fields:
//
//	ID          - primary key identifier.
//	Name        - display name of the line.
//	Color       - unique color key (green, purple, orange, red, yellow, blue).
//	Description - free-form text shown to passengers.
//	CreatedAt   - creation timestamp.
type Route struct {
	ID          uint64    `json:"id"`          // routes.id
	Name        string    `json:"name"`        // routes.name
	Color       string    `json:"color"`       // routes.color
	Description string    `json:"description"` // routes.description
	CreatedAt   time.Time `json:"-"`           // routes.created_at
}

// Trip is one scheduled, dated run of a route.  A trip carries a fixed,
// finite seat inventory; seat labels are derived from TotalSeats and are
// known before any booking is made.
//
// Fields:
//
//	ID            - primary key identifier.
//	RouteID       - route this run belongs to.
//	TripNumber    - ordinal of the run within its day (1, 2, 3, ...).
//	TripDate      - calendar date of the run ("2006-01-02").
//	DepartureTime - departure wall-clock time ("15:04").
//	ArrivalTime   - arrival wall-clock time ("15:04").
//	TotalSeats    - fixed seat count, 20 on the standard shuttle.
type Trip struct {
	ID            uint64    `json:"id"`             // trips.id
	RouteID       uint64    `json:"route_id"`       // trips.route_id
	TripNumber    int       `json:"trip_number"`    // trips.trip_number
	TripDate      string    `json:"trip_date"`      // trips.trip_date
	DepartureTime string    `json:"departure_time"` // trips.departure_time
	ArrivalTime   string    `json:"arrival_time"`   // trips.arrival_time
	TotalSeats    int       `json:"total_seats"`    // trips.total_seats
	CreatedAt     time.Time `json:"-"`              // trips.created_at
}

// DefaultTotalSeats is the seat count of the standard shuttle: rows 1-10,
// columns A and B.
const DefaultTotalSeats = 20

// SeatNumbers enumerates every seat label for a trip with the given
// capacity, row-major: 1A, 1B, 2A, 2B, ...  Capacity is rounded down to
// an even number of seats; a non-positive capacity yields no seats.
func SeatNumbers(totalSeats int) []string {
	rows := totalSeats / 2
	if rows <= 0 {
		return nil
	}
	seats := make([]string, 0, rows*2)
	for row := 1; row <= rows; row++ {
		seats = append(seats, fmt.Sprintf("%dA", row), fmt.Sprintf("%dB", row))
	}
	return seats
}

// NormalizeSeat canonicalizes a seat label to the exact form SeatNumbers
// produces: trimmed, upper-cased, leading zeros stripped from the row
// ("  01a " -> "1A").  Seat labels are compared as strings all the way
// down to the unique index, so two spellings of the same physical seat
// must never survive to the insert.  Labels that do not look like a seat
// at all are returned as-is for ValidSeat to reject.
func NormalizeSeat(seat string) string {
	s := strings.ToUpper(strings.TrimSpace(seat))
	row, col, ok := splitSeat(s)
	if !ok {
		return s
	}
	return fmt.Sprintf("%d%c", row, col)
}

// ValidSeat reports whether the (normalized) seat label addresses a seat
// that exists on a trip with the given capacity.  Only canonical labels
// pass: the row must be plain digits, so aliases like "01A" or "+1A"
// never reach the ledger as distinct strings for the same seat.
func ValidSeat(seat string, totalSeats int) bool {
	row, _, ok := splitSeat(seat)
	if !ok {
		return false
	}
	return seat == NormalizeSeat(seat) && row <= totalSeats/2
}

// splitSeat parses a label into row and column.  The row must be one or
// more digits (no sign, Atoi would happily take "+1") and at least 1.
func splitSeat(seat string) (row int, col byte, ok bool) {
	if len(seat) < 2 {
		return 0, 0, false
	}
	col = seat[len(seat)-1]
	if col != 'A' && col != 'B' {
		return 0, 0, false
	}
	digits := seat[:len(seat)-1]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, 0, false
		}
	}
	row, err := strconv.Atoi(digits)
	if err != nil || row < 1 {
		return 0, 0, false
	}
	return row, col, true
}

// Package queue defines message payloads exchanged over the message
// broker and the background consumer that turns them into passenger
// notifications.
package queue

// Queue names.  Both queues are declared durable.
const (
	ConfirmedQueue = "booking.confirmed"
	CancelledQueue = "booking.cancelled"
)

// BookingConfirmedEvent is published after a reservation transaction
// commits.  It carries enough for downstream consumers to notify the
// passenger and write audit logs without touching the primary database.
type BookingConfirmedEvent struct {
	BookingCodes  []string `json:"booking_codes"`
	TripID        uint64   `json:"trip_id"`
	UserID        uint64   `json:"user_id"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	RouteName     string   `json:"route_name"`
	TripDate      string   `json:"trip_date"`
	DepartureTime string   `json:"departure_time"`
	SeatNumbers   []string `json:"seats"`
	ConfirmedAt   string   `json:"confirmed_at"`
}

// BookingCancelledEvent is published after a cancellation commits.
type BookingCancelledEvent struct {
	BookingCode string `json:"booking_code"`
	TripID      uint64 `json:"trip_id"`
	UserID      uint64 `json:"user_id"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	SeatNumber  string `json:"seat_number"`
	CancelledAt string `json:"cancelled_at"`
}

package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/yeep/bus-reservation/internal/model"
)

// BookingRepo is the booking ledger: the authoritative store of booking
// records and the sole arbiter of the seat-uniqueness invariant.  The
// invariant itself lives in the uq_trip_seat unique index on
// (trip_id, active_seat); active_seat mirrors seat_number while the
// booking is confirmed and becomes NULL on cancellation, so cancelled
// rows never block a seat.  All timestamps are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying sql.DB so callers can begin transactions
// spanning the ledger and the code counter.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = `id, booking_code, trip_id, user_id, seat_number, status, booked_at, cancelled_at`

// SeatHeldTx reports whether a confirmed booking exists for the seat.
// It must run inside the same transaction as the subsequent insert;
// on its own it is only a pre-check, the unique index has the last word.
func (r *BookingRepo) SeatHeldTx(ctx context.Context, tx *sql.Tx, tripID uint64, seat string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM bookings WHERE trip_id = ? AND active_seat = ?)`
	var held bool
	if err := tx.QueryRowContext(ctx, q, tripID, seat).Scan(&held); err != nil {
		return false, err
	}
	return held, nil
}

// InsertConfirmedTx inserts a confirmed booking row within the caller's
// transaction, populating the generated ID on the record.  A duplicate
// key on (trip_id, active_seat) means another booking won the seat; it
// is translated into a SeatConflictError naming the seat.  The caller
// must commit or roll back.
func (r *BookingRepo) InsertConfirmedTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (booking_code, trip_id, user_id, seat_number, active_seat, status, booked_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.Code, b.TripID, b.UserID, b.SeatNumber, b.SeatNumber, model.StatusConfirmed, b.BookedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return &SeatConflictError{Seats: []string{b.SeatNumber}}
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	b.Status = model.StatusConfirmed
	return nil
}

// FindByID returns the booking with the given id or ErrBookingNotFound.
func (r *BookingRepo) FindByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// FindByCode returns the booking with the given reference code or
// ErrBookingNotFound.
func (r *BookingRepo) FindByCode(ctx context.Context, code string) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_code = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, code))
}

// GetByIDForUpdateTx loads a booking inside the caller's transaction with
// a row lock, so a concurrent cancel of the same booking serializes
// behind it.  Returns ErrBookingNotFound when absent.
func (r *BookingRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ? FOR UPDATE`
	return r.scanOne(tx.QueryRowContext(ctx, q, id))
}

// MarkCancelledTx flips a confirmed booking to cancelled, records the
// cancellation time and clears active_seat so the seat immediately
// re-enters the bookable pool.  The status guard in the WHERE clause
// makes the transition single-shot: a second cancel updates zero rows
// and yields ErrAlreadyCancelled (or ErrBookingNotFound when the row
// never existed).
func (r *BookingRepo) MarkCancelledTx(ctx context.Context, tx *sql.Tx, id uint64, at time.Time) error {
	const q = `UPDATE bookings SET status = ?, cancelled_at = ?, active_seat = NULL WHERE id = ? AND status = ?`
	res, err := tx.ExecContext(ctx, q, model.StatusCancelled, at, id, model.StatusConfirmed)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	const check = `SELECT EXISTS(SELECT 1 FROM bookings WHERE id = ?)`
	var exists bool
	if err := tx.QueryRowContext(ctx, check, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrBookingNotFound
	}
	return ErrAlreadyCancelled
}

// CountConfirmed returns the number of confirmed bookings on a trip.
func (r *BookingRepo) CountConfirmed(ctx context.Context, tripID uint64) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings WHERE trip_id = ? AND status = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, tripID, model.StatusConfirmed).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ListConfirmedSeats returns the seat labels currently confirmed-booked
// on a trip, ordered for deterministic output.
func (r *BookingRepo) ListConfirmedSeats(ctx context.Context, tripID uint64) ([]string, error) {
	const q = `SELECT seat_number FROM bookings WHERE trip_id = ? AND status = ? ORDER BY seat_number`
	rows, err := r.db.QueryContext(ctx, q, tripID, model.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seats := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

// Sort keys accepted by ListByHolder.  Anything else falls back to the
// booking date so request parameters can never reach the ORDER BY as
// raw SQL.
const (
	SortByDate   = "date"
	SortByStatus = "status"
	SortBySeat   = "seat"
	SortByRoute  = "route"
)

// orderClause maps a (sortBy, order) pair onto a whitelisted ORDER BY
// fragment.  Default is booked_at descending, newest first.
func orderClause(sortBy, order string) string {
	col := "b.booked_at"
	dir := "DESC"
	switch strings.ToLower(sortBy) {
	case SortByStatus:
		col, dir = "b.status", "ASC"
	case SortBySeat:
		col, dir = "b.seat_number", "ASC"
	case SortByRoute:
		col, dir = "r.name", "ASC"
	}
	if strings.EqualFold(order, "asc") {
		dir = "ASC"
	} else if strings.EqualFold(order, "desc") {
		dir = "DESC"
	}
	return " ORDER BY " + col + " " + dir + ", b.id " + dir
}

// ListByHolder returns a user's bookings, optionally restricted to one
// status, sorted per the whitelists above (most recent first by
// default).
func (r *BookingRepo) ListByHolder(ctx context.Context, userID uint64, status, sortBy, order string) ([]model.Booking, error) {
	q := `SELECT b.id, b.booking_code, b.trip_id, b.user_id, b.seat_number, b.status, b.booked_at, b.cancelled_at
	      FROM bookings b
	      JOIN trips t ON t.id = b.trip_id
	      JOIN routes r ON r.id = t.route_id
	      WHERE b.user_id = ?`
	args := []interface{}{userID}
	if status != "" {
		q += ` AND b.status = ?`
		args = append(args, status)
	}
	q += orderClause(sortBy, order)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// ManifestEntry is one line of the driver manifest: who sits where on
// which run of the route.
type ManifestEntry struct {
	BookingCode   string `json:"booking_code"`
	TripID        uint64 `json:"trip_id"`
	TripNumber    int    `json:"trip_number"`
	DepartureTime string `json:"departure_time"`
	SeatNumber    string `json:"seat_number"`
	Passenger     string `json:"passenger"`
}

// ListByRouteAndDate returns the confirmed bookings for every trip of a
// route on a given date, ordered by departure time then seat.  Used by
// drivers to check passengers in.
func (r *BookingRepo) ListByRouteAndDate(ctx context.Context, routeID uint64, date string) ([]ManifestEntry, error) {
	const q = `SELECT b.booking_code, b.trip_id, t.trip_number, t.departure_time, b.seat_number, u.full_name
	           FROM bookings b
	           JOIN trips t ON t.id = b.trip_id
	           JOIN users u ON u.id = b.user_id
	           WHERE t.route_id = ? AND t.trip_date = ? AND b.status = ?
	           ORDER BY t.departure_time, b.seat_number`
	rows, err := r.db.QueryContext(ctx, q, routeID, date, model.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ManifestEntry, 0)
	for rows.Next() {
		var e ManifestEntry
		var dep string
		if err := rows.Scan(&e.BookingCode, &e.TripID, &e.TripNumber, &dep, &e.SeatNumber, &e.Passenger); err != nil {
			return nil, err
		}
		e.DepartureTime = clockOf(dep)
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteBefore removes bookings whose trip ran before the given date.
// The retention sweep never touches future trips, so it cannot interact
// with the uniqueness invariant of live seat inventory.
func (r *BookingRepo) DeleteBefore(ctx context.Context, date string) (int64, error) {
	const q = `DELETE b FROM bookings b JOIN trips t ON t.id = b.trip_id WHERE t.trip_date < ?`
	res, err := r.db.ExecContext(ctx, q, date)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*model.Booking, error) {
	var b model.Booking
	var cancelledAt sql.NullTime
	if err := row.Scan(&b.ID, &b.Code, &b.TripID, &b.UserID, &b.SeatNumber, &b.Status, &b.BookedAt, &cancelledAt); err != nil {
		return nil, err
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time
		b.CancelledAt = &t
	}
	return &b, nil
}

func (r *BookingRepo) scanOne(row *sql.Row) (*model.Booking, error) {
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// isDuplicateKey detects MySQL error 1062 (duplicate entry for a unique
// key) without binding the repository to the driver's error type.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

// clockOf trims a TIME column value ("07:07:00") to HH:MM.
func clockOf(t string) string {
	if len(t) >= 5 {
		return t[:5]
	}
	return t
}

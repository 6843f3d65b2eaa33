package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/yeep/bus-reservation/internal/model"
)

// TripRepo manages persistence for scheduled trips.  Trips are reference
// data to the booking core: immutable once seeded, except for the
// retention sweep that removes runs already in the past.
// Dates are DATE columns ("2006-01-02"), clock times TIME columns; both
// travel as strings on the model.
type TripRepo struct {
	db *sql.DB
}

// NewTripRepo returns a TripRepo bound to the given database.
func NewTripRepo(db *sql.DB) *TripRepo { return &TripRepo{db: db} }

const tripColumns = `id, route_id, trip_number, trip_date, departure_time, arrival_time, total_seats`

// GetByID returns the trip with the given id or ErrTripNotFound.
func (r *TripRepo) GetByID(ctx context.Context, id uint64) (*model.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = ?`
	t, err := scanTrip(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrTripNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListByRouteAndDate returns the trips of a route on a date, ordered by
// departure time.
func (r *TripRepo) ListByRouteAndDate(ctx context.Context, routeID uint64, date string) ([]model.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE route_id = ? AND trip_date = ? ORDER BY departure_time`
	rows, err := r.db.QueryContext(ctx, q, routeID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Trip, 0)
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// Create inserts a trip.  The unique key on (route_id, trip_date,
// departure_time) makes schedule seeding idempotent: re-seeding a day
// that already exists inserts nothing and reports no error.
func (r *TripRepo) Create(ctx context.Context, t *model.Trip) error {
	const q = `INSERT IGNORE INTO trips (route_id, trip_number, trip_date, departure_time, arrival_time, total_seats)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.RouteID, t.TripNumber, t.TripDate, t.DepartureTime, t.ArrivalTime, t.TotalSeats)
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil && id > 0 {
		t.ID = uint64(id)
	}
	return nil
}

// DeleteBefore removes trips dated before the given date.  Bookings on
// those trips go first (the ledger sweep), then the trips themselves.
func (r *TripRepo) DeleteBefore(ctx context.Context, date string) (int64, error) {
	const q = `DELETE FROM trips WHERE trip_date < ?`
	res, err := r.db.ExecContext(ctx, q, date)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanTrip(row rowScanner) (*model.Trip, error) {
	var t model.Trip
	var tripDate time.Time
	var dep, arr string
	if err := row.Scan(&t.ID, &t.RouteID, &t.TripNumber, &tripDate, &dep, &arr, &t.TotalSeats); err != nil {
		return nil, err
	}
	t.TripDate = tripDate.Format("2006-01-02")
	t.DepartureTime = clockOf(dep)
	t.ArrivalTime = clockOf(arr)
	return &t, nil
}

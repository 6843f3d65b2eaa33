// Package service orchestrates the booking core: reservations,
// availability, schedule seeding and event publication.  Handlers stay
// thin; every multi-statement mutation here runs inside one database
// transaction so that the ledger is never left partially updated.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yeep/bus-reservation/internal/model"
	"github.com/yeep/bus-reservation/internal/queue"
	"github.com/yeep/bus-reservation/internal/repository"
)

// ErrNoSeats is returned when a booking request names no seats.
var ErrNoSeats = errors.New("no seats requested")

// ErrInvalidSeat is returned when a seat label does not exist on the
// trip's seat plan.
var ErrInvalidSeat = errors.New("invalid seat number")

// ReservationService commits and cancels bookings with all-or-nothing
// semantics.  It owns orchestration only: the seat-uniqueness invariant
// itself is enforced by the ledger's unique index, and this service
// never writes around the repository layer.
type ReservationService struct {
	db       *sql.DB
	bookings *repository.BookingRepo
	codes    *repository.CodeRepo
	trips    *repository.TripRepo
	routes   *repository.RouteRepo
	users    *repository.UserRepo

	// seams for tests; production wiring uses the defaults
	now     func() time.Time
	publish func(ctx context.Context, queueName string, event interface{}) error
}

// NewReservationService wires the service to its repositories.
func NewReservationService(db *sql.DB, bookings *repository.BookingRepo, codes *repository.CodeRepo,
	trips *repository.TripRepo, routes *repository.RouteRepo, users *repository.UserRepo) *ReservationService {
	return &ReservationService{
		db:       db,
		bookings: bookings,
		codes:    codes,
		trips:    trips,
		routes:   routes,
		users:    users,
		now:      func() time.Time { return time.Now().UTC() },
		publish:  publishEvent,
	}
}

// BookSeats books one or more seats on a trip for a holder.  The request
// covers both the single and the multi-seat case: validation happens up
// front (trip exists, holder exists, every label addresses a real seat),
// then one transaction checks every seat, draws one code per seat and
// inserts all rows.  Any conflict rolls the whole transaction back and
// surfaces a SeatConflictError naming every seat that was taken, so the
// caller can resubmit the rest.  Confirmed bookings are returned in the
// caller's seat order and an event is published after commit.
func (s *ReservationService) BookSeats(ctx context.Context, tripID, userID uint64, seatNumbers []string) ([]model.Booking, error) {
	seats := dedupeSeats(seatNumbers)
	if len(seats) == 0 {
		return nil, ErrNoSeats
	}

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, storageErr(err)
	}
	for _, seat := range seats {
		if !model.ValidSeat(seat, trip.TotalSeats) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSeat, seat)
		}
	}
	holder, err := s.users.GetActive(ctx, userID)
	if err != nil {
		return nil, storageErr(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageErr(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Pre-check every seat so a multi-seat conflict can name all losers
	// at once.  The unique index still backstops the race window between
	// this check and the inserts below.
	var conflicts []string
	for _, seat := range seats {
		held, err := s.bookings.SeatHeldTx(ctx, tx, tripID, seat)
		if err != nil {
			return nil, storageErr(err)
		}
		if held {
			conflicts = append(conflicts, seat)
		}
	}
	if len(conflicts) > 0 {
		return nil, &repository.SeatConflictError{Seats: conflicts}
	}

	bookedAt := s.now()
	out := make([]model.Booking, 0, len(seats))
	for _, seat := range seats {
		code, err := s.codes.NextTx(ctx, tx)
		if err != nil {
			return nil, storageErr(err)
		}
		b := model.Booking{
			Code:       code,
			TripID:     tripID,
			UserID:     userID,
			SeatNumber: seat,
			BookedAt:   bookedAt,
		}
		if err := s.bookings.InsertConfirmedTx(ctx, tx, &b); err != nil {
			var conflict *repository.SeatConflictError
			if errors.As(err, &conflict) {
				// lost a race after the pre-check; nothing from this
				// call survives
				return nil, conflict
			}
			return nil, storageErr(err)
		}
		out = append(out, b)
	}

	if err := tx.Commit(); err != nil {
		return nil, storageErr(err)
	}
	committed = true

	s.publishConfirmed(ctx, trip, holder, out)
	return out, nil
}

// Cancel cancels a booking on behalf of its holder.  Failure precedence
// is fixed: unknown booking, then foreign booking, then already
// cancelled.  On success the freed seat is immediately bookable again
// and a cancellation event is published after commit.
func (s *ReservationService) Cancel(ctx context.Context, bookingID, userID uint64) (*model.Booking, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageErr(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := s.bookings.GetByIDForUpdateTx(ctx, tx, bookingID)
	if err != nil {
		return nil, storageErr(err)
	}
	if b.UserID != userID {
		return nil, repository.ErrForbidden
	}
	cancelledAt := s.now()
	if err := s.bookings.MarkCancelledTx(ctx, tx, bookingID, cancelledAt); err != nil {
		return nil, storageErr(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, storageErr(err)
	}
	committed = true

	b.Status = model.StatusCancelled
	b.CancelledAt = &cancelledAt
	s.publishCancelled(ctx, b)
	return b, nil
}

// BookingsByHolder lists a holder's bookings.  status narrows to one
// state, sortBy/order follow the ledger's whitelists (newest first by
// default).
func (s *ReservationService) BookingsByHolder(ctx context.Context, userID uint64, status, sortBy, order string) ([]model.Booking, error) {
	out, err := s.bookings.ListByHolder(ctx, userID, status, sortBy, order)
	if err != nil {
		return nil, storageErr(err)
	}
	return out, nil
}

// BookingByCode resolves a booking from its human-facing reference.
func (s *ReservationService) BookingByCode(ctx context.Context, code string) (*model.Booking, error) {
	b, err := s.bookings.FindByCode(ctx, code)
	if err != nil {
		return nil, storageErr(err)
	}
	return b, nil
}

// Manifest returns the confirmed bookings for all trips of a route on a
// date, for drivers checking passengers in.
func (s *ReservationService) Manifest(ctx context.Context, routeID uint64, date string) ([]repository.ManifestEntry, error) {
	if _, err := s.routes.GetByID(ctx, routeID); err != nil {
		return nil, storageErr(err)
	}
	entries, err := s.bookings.ListByRouteAndDate(ctx, routeID, date)
	if err != nil {
		return nil, storageErr(err)
	}
	return entries, nil
}

func (s *ReservationService) publishConfirmed(ctx context.Context, trip *model.Trip, holder model.User, bookings []model.Booking) {
	routeName := ""
	if rt, err := s.routes.GetByID(ctx, trip.RouteID); err == nil {
		routeName = rt.Name
	}
	ev := queue.BookingConfirmedEvent{
		TripID:        trip.ID,
		UserID:        holder.ID,
		Email:         holder.Email,
		Phone:         holder.Phone,
		RouteName:     routeName,
		TripDate:      trip.TripDate,
		DepartureTime: trip.DepartureTime,
		ConfirmedAt:   s.now().Format(time.RFC3339),
	}
	for _, b := range bookings {
		ev.BookingCodes = append(ev.BookingCodes, b.Code)
		ev.SeatNumbers = append(ev.SeatNumbers, b.SeatNumber)
	}
	_ = s.publish(ctx, queue.ConfirmedQueue, ev) // best effort, never fails the booking
}

func (s *ReservationService) publishCancelled(ctx context.Context, b *model.Booking) {
	ev := queue.BookingCancelledEvent{
		BookingCode: b.Code,
		TripID:      b.TripID,
		UserID:      b.UserID,
		SeatNumber:  b.SeatNumber,
		CancelledAt: s.now().Format(time.RFC3339),
	}
	if u, err := s.users.GetByID(ctx, b.UserID); err == nil {
		ev.Email = u.Email
		ev.Phone = u.Phone
	}
	_ = s.publish(ctx, queue.CancelledQueue, ev)
}

// dedupeSeats normalizes seat labels and drops duplicates while keeping
// the caller's order, so the response lines up with the request.
func dedupeSeats(seats []string) []string {
	out := make([]string, 0, len(seats))
	seen := make(map[string]struct{}, len(seats))
	for _, s := range seats {
		n := model.NormalizeSeat(s)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// storageErr passes domain errors through untouched and wraps everything
// else as ErrUnavailable.  Since every mutating path rolls back on
// failure, an unavailable answer is always safe to retry.
func storageErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrTripNotFound),
		errors.Is(err, repository.ErrRouteNotFound),
		errors.Is(err, repository.ErrHolderNotFound),
		errors.Is(err, repository.ErrBookingNotFound),
		errors.Is(err, repository.ErrAlreadyCancelled),
		errors.Is(err, repository.ErrForbidden):
		return err
	}
	var conflict *repository.SeatConflictError
	if errors.As(err, &conflict) {
		return err
	}
	return fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
}

package service

import (
	"context"

	"github.com/yeep/bus-reservation/internal/model"
	"github.com/yeep/bus-reservation/internal/repository"
)

// Availability is the live seat count for one trip.
type Availability struct {
	TripID         uint64 `json:"trip_id"`
	TotalSeats     int    `json:"total_seats"`
	BookedSeats    int    `json:"booked_seats"`
	AvailableSeats int    `json:"available_seats"`
}

// SeatStatus is one entry of a trip's seat map.
type SeatStatus struct {
	SeatNumber string `json:"seat_number"`
	Booked     bool   `json:"booked"`
}

// TripAvailability pairs a trip with its live availability for list
// endpoints.
type TripAvailability struct {
	Trip           model.Trip `json:"trip"`
	AvailableSeats int        `json:"available_seats"`
}

// AvailabilityService answers read-only seat questions.  Counts come
// straight from the ledger, so a booking committed by anyone is visible
// here immediately.
type AvailabilityService struct {
	trips    *repository.TripRepo
	bookings *repository.BookingRepo
}

func NewAvailabilityService(trips *repository.TripRepo, bookings *repository.BookingRepo) *AvailabilityService {
	return &AvailabilityService{trips: trips, bookings: bookings}
}

// Availability returns the seat counts for a trip.
func (s *AvailabilityService) Availability(ctx context.Context, tripID uint64) (*Availability, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, storageErr(err)
	}
	booked, err := s.bookings.CountConfirmed(ctx, tripID)
	if err != nil {
		return nil, storageErr(err)
	}
	return &Availability{
		TripID:         trip.ID,
		TotalSeats:     trip.TotalSeats,
		BookedSeats:    booked,
		AvailableSeats: trip.TotalSeats - booked,
	}, nil
}

// TripByID returns one trip with its live availability.
func (s *AvailabilityService) TripByID(ctx context.Context, tripID uint64) (*TripAvailability, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, storageErr(err)
	}
	booked, err := s.bookings.CountConfirmed(ctx, tripID)
	if err != nil {
		return nil, storageErr(err)
	}
	return &TripAvailability{Trip: *trip, AvailableSeats: trip.TotalSeats - booked}, nil
}

// SeatMap returns every seat of a trip's plan with its booked flag, in
// plan order.
func (s *AvailabilityService) SeatMap(ctx context.Context, tripID uint64) ([]SeatStatus, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, storageErr(err)
	}
	held, err := s.bookings.ListConfirmedSeats(ctx, tripID)
	if err != nil {
		return nil, storageErr(err)
	}
	taken := make(map[string]struct{}, len(held))
	for _, seat := range held {
		taken[seat] = struct{}{}
	}
	plan := model.SeatNumbers(trip.TotalSeats)
	out := make([]SeatStatus, 0, len(plan))
	for _, seat := range plan {
		_, booked := taken[seat]
		out = append(out, SeatStatus{SeatNumber: seat, Booked: booked})
	}
	return out, nil
}

// TripsForRouteDate lists a route's trips on a date together with their
// remaining seats.
func (s *AvailabilityService) TripsForRouteDate(ctx context.Context, routeID uint64, date string) ([]TripAvailability, error) {
	trips, err := s.trips.ListByRouteAndDate(ctx, routeID, date)
	if err != nil {
		return nil, storageErr(err)
	}
	out := make([]TripAvailability, 0, len(trips))
	for _, t := range trips {
		booked, err := s.bookings.CountConfirmed(ctx, t.ID)
		if err != nil {
			return nil, storageErr(err)
		}
		out = append(out, TripAvailability{Trip: t, AvailableSeats: t.TotalSeats - booked})
	}
	return out, nil
}

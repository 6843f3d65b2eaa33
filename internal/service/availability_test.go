package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/yeep/bus-reservation/internal/repository"
)

func newTestAvailability(t *testing.T) (*AvailabilityService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAvailabilityService(repository.NewTripRepo(db), repository.NewBookingRepo(db)), mock
}

func TestAvailability(t *testing.T) {
	svc, mock := newTestAvailability(t)

	mock.ExpectQuery("FROM trips WHERE id").WithArgs(uint64(7)).WillReturnRows(tripRows())
	mock.ExpectQuery("SELECT COUNT").WithArgs(uint64(7), "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(5))

	av, err := svc.Availability(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 20, av.TotalSeats)
	require.Equal(t, 5, av.BookedSeats)
	require.Equal(t, 15, av.AvailableSeats)
}

func TestAvailabilityUnknownTrip(t *testing.T) {
	svc, mock := newTestAvailability(t)

	mock.ExpectQuery("FROM trips WHERE id").WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Availability(context.Background(), 99)
	require.ErrorIs(t, err, repository.ErrTripNotFound)
}

func TestSeatMap(t *testing.T) {
	svc, mock := newTestAvailability(t)

	mock.ExpectQuery("FROM trips WHERE id").WithArgs(uint64(7)).WillReturnRows(tripRows())
	mock.ExpectQuery("SELECT seat_number FROM bookings").WithArgs(uint64(7), "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow("1A").AddRow("2B"))

	seats, err := svc.SeatMap(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, seats, 20)

	byLabel := make(map[string]bool, len(seats))
	for _, s := range seats {
		byLabel[s.SeatNumber] = s.Booked
	}
	require.True(t, byLabel["1A"])
	require.True(t, byLabel["2B"])
	require.False(t, byLabel["1B"])
	require.False(t, byLabel["10A"])

	// plan order is row-major
	require.Equal(t, "1A", seats[0].SeatNumber)
	require.Equal(t, "10B", seats[19].SeatNumber)
}

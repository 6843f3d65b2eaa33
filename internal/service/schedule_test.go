package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/yeep/bus-reservation/internal/repository"
)

func TestRoutePlansConsistent(t *testing.T) {
	require.Len(t, routePlans, 6)

	colors := make(map[string]bool)
	for _, plan := range routePlans {
		require.False(t, colors[plan.Color], "duplicate color %s", plan.Color)
		colors[plan.Color] = true
		require.NotEmpty(t, plan.Times, "route %s has no timetable", plan.Color)

		for _, tt := range plan.Times {
			dep, err := time.Parse("15:04", tt.Departure)
			require.NoError(t, err, "route %s departure %q", plan.Color, tt.Departure)
			arr, err := time.Parse("15:04", tt.Arrival)
			require.NoError(t, err, "route %s arrival %q", plan.Color, tt.Arrival)
			require.True(t, arr.After(dep), "route %s trip %s-%s runs backwards", plan.Color, tt.Departure, tt.Arrival)
		}
	}
}

func TestPurgeSweepsBookingsBeforeTrips(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewScheduleService(
		repository.NewRouteRepo(db),
		repository.NewTripRepo(db),
		repository.NewBookingRepo(db),
	)

	mock.ExpectExec("DELETE b FROM bookings").WithArgs("2026-03-14").
		WillReturnResult(sqlmock.NewResult(0, 8))
	mock.ExpectExec("DELETE FROM trips").WithArgs("2026-03-14").
		WillReturnResult(sqlmock.NewResult(0, 37))

	bookings, trips, err := svc.Purge(context.Background(), "2026-03-14")
	require.NoError(t, err)
	require.Equal(t, int64(8), bookings)
	require.Equal(t, int64(37), trips)
	require.NoError(t, mock.ExpectationsWereMet())
}

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/yeep/bus-reservation/internal/model"
)

func newMock(t *testing.T) (*BookingRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBookingRepo(db), mock
}

func TestInsertConfirmedTx(t *testing.T) {
	repo, mock := newMock(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs("P0001", uint64(7), uint64(3), "4A", "4A", model.StatusConfirmed, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(12, 1))

	tx, err := repo.DB().BeginTx(ctx, nil)
	require.NoError(t, err)

	b := model.Booking{Code: "P0001", TripID: 7, UserID: 3, SeatNumber: "4A", BookedAt: time.Now().UTC()}
	require.NoError(t, repo.InsertConfirmedTx(ctx, tx, &b))
	require.Equal(t, uint64(12), b.ID)
	require.Equal(t, model.StatusConfirmed, b.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertConfirmedTxSeatConflict(t *testing.T) {
	repo, mock := newMock(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '7-4A' for key 'uq_trip_seat'"))

	tx, err := repo.DB().BeginTx(ctx, nil)
	require.NoError(t, err)

	b := model.Booking{Code: "P0002", TripID: 7, UserID: 3, SeatNumber: "4A", BookedAt: time.Now().UTC()}
	err = repo.InsertConfirmedTx(ctx, tx, &b)

	var conflict *SeatConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, []string{"4A"}, conflict.Seats)
}

func TestSeatHeldTx(t *testing.T) {
	repo, mock := newMock(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(uint64(7), "4A").
		WillReturnRows(sqlmock.NewRows([]string{"held"}).AddRow(true))

	tx, err := repo.DB().BeginTx(ctx, nil)
	require.NoError(t, err)

	held, err := repo.SeatHeldTx(ctx, tx, 7, "4A")
	require.NoError(t, err)
	require.True(t, held)
}

func TestMarkCancelledTx(t *testing.T) {
	at := time.Now().UTC()

	t.Run("success", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE bookings SET").
			WithArgs(model.StatusCancelled, at, uint64(5), model.StatusConfirmed).
			WillReturnResult(sqlmock.NewResult(0, 1))

		tx, err := repo.DB().BeginTx(context.Background(), nil)
		require.NoError(t, err)
		require.NoError(t, repo.MarkCancelledTx(context.Background(), tx, 5, at))
	})

	t.Run("already cancelled", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE bookings SET").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(uint64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"e"}).AddRow(true))

		tx, err := repo.DB().BeginTx(context.Background(), nil)
		require.NoError(t, err)
		require.ErrorIs(t, repo.MarkCancelledTx(context.Background(), tx, 5, at), ErrAlreadyCancelled)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE bookings SET").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(uint64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"e"}).AddRow(false))

		tx, err := repo.DB().BeginTx(context.Background(), nil)
		require.NoError(t, err)
		require.ErrorIs(t, repo.MarkCancelledTx(context.Background(), tx, 99, at), ErrBookingNotFound)
	})
}

func TestFindByCodeNotFound(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE booking_code").
		WithArgs("P9999").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "booking_code", "trip_id", "user_id", "seat_number", "status", "booked_at", "cancelled_at",
		}))

	_, err := repo.FindByCode(context.Background(), "P9999")
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestOrderClause(t *testing.T) {
	cases := []struct {
		sortBy, order, want string
	}{
		{"", "", " ORDER BY b.booked_at DESC, b.id DESC"},
		{"date", "", " ORDER BY b.booked_at DESC, b.id DESC"},
		{"date", "asc", " ORDER BY b.booked_at ASC, b.id ASC"},
		{"status", "", " ORDER BY b.status ASC, b.id ASC"},
		{"seat", "desc", " ORDER BY b.seat_number DESC, b.id DESC"},
		{"route", "asc", " ORDER BY r.name ASC, b.id ASC"},
		// injection attempts fall back to whitelisted columns
		{"booked_at; DROP TABLE bookings", "", " ORDER BY b.booked_at DESC, b.id DESC"},
		{"seat", "1; DELETE", " ORDER BY b.seat_number ASC, b.id ASC"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, orderClause(tc.sortBy, tc.order), "sort=%q order=%q", tc.sortBy, tc.order)
	}
}

func TestIsDuplicateKey(t *testing.T) {
	require.True(t, isDuplicateKey(errors.New("Error 1062: Duplicate entry")))
	require.False(t, isDuplicateKey(errors.New("Error 1213: Deadlock found")))
	require.False(t, isDuplicateKey(nil))
}

package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestNextTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewCodeRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT value FROM booking_counters").
		WithArgs("booking_code").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(41))
	mock.ExpectExec("UPDATE booking_counters SET value").
		WithArgs(uint64(42), "booking_code").
		WillReturnResult(sqlmock.NewResult(0, 1))

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	code, err := repo.NextTx(context.Background(), tx)
	require.NoError(t, err)
	require.Equal(t, "P0042", code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFormatCode(t *testing.T) {
	require.Equal(t, "P0001", formatCode(1))
	require.Equal(t, "P0042", formatCode(42))
	require.Equal(t, "P9999", formatCode(9999))
	// the sequence keeps going past four digits
	require.Equal(t, "P10000", formatCode(10000))
}

package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newTokenMock(t *testing.T) (*TokenRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTokenRepo(db), mock
}

func TestValidateRefresh(t *testing.T) {
	t.Run("live token", func(t *testing.T) {
		repo, mock := newTokenMock(t)
		mock.ExpectQuery("SELECT user_id FROM refresh_tokens").
			WithArgs("abc123").
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(uint64(8)))

		uid, err := repo.ValidateRefresh(context.Background(), "abc123")
		require.NoError(t, err)
		require.Equal(t, uint64(8), uid)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	// revoked and expired rows are filtered by the query, so they look
	// exactly like an unknown hash
	t.Run("dead token", func(t *testing.T) {
		repo, mock := newTokenMock(t)
		mock.ExpectQuery("SELECT user_id FROM refresh_tokens").
			WithArgs("stale").
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

		_, err := repo.ValidateRefresh(context.Background(), "stale")
		require.ErrorIs(t, err, sql.ErrNoRows)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPurgeExpired(t *testing.T) {
	repo, mock := newTokenMock(t)
	mock.ExpectExec("DELETE FROM refresh_tokens").
		WithArgs(int64(86400)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.PurgeExpired(context.Background(), 24*time.Hour)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

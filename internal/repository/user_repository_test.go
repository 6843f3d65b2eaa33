package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newUserMock(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepo(db), mock
}

func userRow(id uint64, active bool) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "full_name", "phone", "role",
		"is_active", "created_at", "updated_at",
	}).AddRow(id, "rider@example.com", "x", "Rider", "0400", "CUSTOMER", active, now, now)
}

func TestGetActive(t *testing.T) {
	t.Run("active account", func(t *testing.T) {
		repo, mock := newUserMock(t)
		mock.ExpectQuery("SELECT .* FROM users WHERE id=").
			WithArgs(uint64(3)).
			WillReturnRows(userRow(3, true))

		u, err := repo.GetActive(context.Background(), 3)
		require.NoError(t, err)
		require.Equal(t, uint64(3), u.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deactivated account", func(t *testing.T) {
		repo, mock := newUserMock(t)
		mock.ExpectQuery("SELECT .* FROM users WHERE id=").
			WithArgs(uint64(3)).
			WillReturnRows(userRow(3, false))

		_, err := repo.GetActive(context.Background(), 3)
		require.ErrorIs(t, err, ErrHolderNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no such account", func(t *testing.T) {
		repo, mock := newUserMock(t)
		mock.ExpectQuery("SELECT .* FROM users WHERE id=").
			WithArgs(uint64(99)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "email", "password_hash", "full_name", "phone", "role",
				"is_active", "created_at", "updated_at",
			}))

		_, err := repo.GetActive(context.Background(), 99)
		require.ErrorIs(t, err, ErrHolderNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

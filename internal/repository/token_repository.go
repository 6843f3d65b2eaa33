package repository

import (
	"context"
	"database/sql"
	"time"
)

// TokenRepo persists refresh token hashes. Only the SHA-256 hash of a
// token is stored; the raw value never touches the database, so a dump
// of this table cannot be replayed against the API.
type TokenRepo struct {
	db *sql.DB
}

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{db: db} }

// StoreRefresh records a freshly issued token hash for userID.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES (?,?,?)`,
		userID, tokenHash, exp)
	return err
}

// ValidateRefresh resolves a token hash to its owner. Revoked and
// expired tokens are filtered in the query itself, so all three failure
// modes (unknown, revoked, expired) surface as the same sql.ErrNoRows
// and a caller cannot tell them apart.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	var userID uint64
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id FROM refresh_tokens
		WHERE token_hash=? AND revoked_at IS NULL AND expires_at > UTC_TIMESTAMP()
		LIMIT 1`,
		tokenHash).Scan(&userID)
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// RevokeByHash retires one token, keeping the row for audit.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE refresh_tokens SET revoked_at=UTC_TIMESTAMP()
		WHERE token_hash=? AND revoked_at IS NULL`,
		tokenHash)
	return err
}

// RevokeAllForUser retires every live token a user holds. Used on
// logout so a stolen refresh token dies with the session.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE refresh_tokens SET revoked_at=UTC_TIMESTAMP()
		WHERE user_id=? AND revoked_at IS NULL`,
		userID)
	return err
}

// PurgeExpired deletes token rows whose expiry passed more than the
// given grace period ago. Returns the number of rows removed.
func (r *TokenRepo) PurgeExpired(ctx context.Context, grace time.Duration) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM refresh_tokens
		WHERE expires_at < UTC_TIMESTAMP() - INTERVAL ? SECOND`,
		int64(grace.Seconds()))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

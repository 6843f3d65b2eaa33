package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// codePrefix is the leading character of every booking reference.
const codePrefix = "P"

// counterName is the booking_counters row backing the code sequence.
const counterName = "booking_code"

// CodeRepo issues sequential booking reference codes (P0001, P0002, ...).
// The sequence lives in a single booking_counters row that is read FOR
// UPDATE inside the booking transaction: two concurrent bookings queue
// on the row lock, so no code is ever issued twice, and a rolled-back
// booking rolls the counter back with it, leaving no orphaned codes.
// Reading the last issued code and adding one outside a lock is exactly
// the race this design exists to rule out.
type CodeRepo struct {
	db *sql.DB
}

// NewCodeRepo returns a CodeRepo bound to the given database.
func NewCodeRepo(db *sql.DB) *CodeRepo { return &CodeRepo{db: db} }

// NextTx draws the next booking code within the caller's transaction.
// The caller must commit for the code to be consumed.
func (r *CodeRepo) NextTx(ctx context.Context, tx *sql.Tx) (string, error) {
	const sel = `SELECT value FROM booking_counters WHERE name = ? FOR UPDATE`
	var current uint64
	if err := tx.QueryRowContext(ctx, sel, counterName).Scan(&current); err != nil {
		return "", fmt.Errorf("booking code counter: %w", err)
	}
	next := current + 1
	const upd = `UPDATE booking_counters SET value = ? WHERE name = ?`
	if _, err := tx.ExecContext(ctx, upd, next, counterName); err != nil {
		return "", fmt.Errorf("booking code counter: %w", err)
	}
	return formatCode(next), nil
}

// formatCode renders a sequence number as a booking reference.  Codes
// are zero-padded to four digits and simply grow wider past P9999.
func formatCode(n uint64) string {
	return fmt.Sprintf("%s%04d", codePrefix, n)
}

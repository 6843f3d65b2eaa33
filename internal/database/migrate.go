package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema holds the DDL executed at startup.  Statements are idempotent
// (CREATE TABLE IF NOT EXISTS / INSERT IGNORE) so restarts are safe.
//
// The bookings table carries the seat-uniqueness invariant: active_seat
// mirrors seat_number while the booking is confirmed and is set to NULL
// on cancellation.  MySQL unique indexes skip NULLs, so uq_trip_seat
// admits at most one confirmed booking per (trip_id, seat) while any
// number of cancelled rows for the same seat may accumulate.  Racing
// inserts for the same seat therefore resolve in the storage engine:
// one commits, the other fails with a duplicate-key error.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		full_name VARCHAR(255) NOT NULL DEFAULT '',
		phone VARCHAR(32) NOT NULL DEFAULT '',
		role VARCHAR(16) NOT NULL DEFAULT 'CUSTOMER',
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_refresh_token_hash (token_hash),
		KEY idx_refresh_user (user_id),
		CONSTRAINT fk_refresh_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS routes (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		color VARCHAR(16) NOT NULL,
		description TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_routes_color (color)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS trips (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		route_id BIGINT UNSIGNED NOT NULL,
		trip_number INT NOT NULL,
		trip_date DATE NOT NULL,
		departure_time TIME NOT NULL,
		arrival_time TIME NOT NULL,
		total_seats INT NOT NULL DEFAULT 20,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_trip_schedule (route_id, trip_date, departure_time),
		CONSTRAINT fk_trips_route FOREIGN KEY (route_id) REFERENCES routes (id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		booking_code VARCHAR(16) NOT NULL,
		trip_id BIGINT UNSIGNED NOT NULL,
		user_id BIGINT UNSIGNED NOT NULL,
		seat_number VARCHAR(8) NOT NULL,
		active_seat VARCHAR(8) NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'confirmed',
		booked_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		cancelled_at DATETIME NULL,
		UNIQUE KEY uq_booking_code (booking_code),
		UNIQUE KEY uq_trip_seat (trip_id, active_seat),
		KEY idx_bookings_user (user_id, booked_at),
		CONSTRAINT fk_bookings_trip FOREIGN KEY (trip_id) REFERENCES trips (id) ON DELETE CASCADE,
		CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS booking_counters (
		name VARCHAR(32) NOT NULL PRIMARY KEY,
		value BIGINT UNSIGNED NOT NULL DEFAULT 0
	) ENGINE=InnoDB`,

	`INSERT IGNORE INTO booking_counters (name, value) VALUES ('booking_code', 0)`,
}

// EnsureSchema creates all tables and seeds the booking code counter.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

package model

import "time"

// Roles recognised by the API.  Customers book seats; drivers read the
// passenger manifest for their line.
const (
	RoleCustomer = "CUSTOMER"
	RoleDriver   = "DRIVER"
)

// User represents an application user record as stored in the `users`
// table.  Passwords are bcrypt-hashed for every role; the hash is never
// serialized in API responses.
//
// Fields:
//
//	ID           - primary key identifier.
//	Email        - unique email address.
//	PasswordHash - bcrypt hashed password.
//	FullName     - display name of the passenger or driver.
//	Phone        - contact number used by the SMS notification channel.
//	Role         - CUSTOMER or DRIVER.
//	IsActive     - whether the account is active.
//	CreatedAt    - timestamp of creation.
//	UpdatedAt    - timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user; only the SHA-256 hash of the raw
// token is stored.
//
// Fields:
//
//	ID        - primary key identifier.
//	UserID    - owner of the token.
//	TokenHash - SHA-256 hex digest of the token value.
//	ExpiresAt - expiration timestamp of the token.
//	RevokedAt - when the token was revoked (null if still active).
//	CreatedAt - timestamp of creation.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

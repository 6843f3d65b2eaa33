package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/yeep/bus-reservation/internal/model"
	"github.com/yeep/bus-reservation/internal/utils"
)

// UserRepo persists passenger and driver accounts.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a user and returns its ID.  The password is bcrypt
// hashed for every role; drivers get no special treatment.
func (r *UserRepo) Create(ctx context.Context, email, password, fullName, phone, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, full_name, phone, role) VALUES (?,?,?,?,?)",
		email, hash, fullName, phone, role)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

const userColumns = "id,email,password_hash,full_name,phone,role,is_active,created_at,updated_at"

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetActive fetches a user by id, treating inactive accounts as absent.
// The reservation service uses this as its holder-exists check; both
// the missing and deactivated cases come back as ErrHolderNotFound so
// callers never see a raw storage error.
func (r *UserRepo) GetActive(ctx context.Context, id uint64) (model.User, error) {
	u, err := r.GetByID(ctx, id)
	if err == sql.ErrNoRows {
		return u, ErrHolderNotFound
	}
	if err != nil {
		return u, err
	}
	if !u.IsActive {
		return u, ErrHolderNotFound
	}
	return u, nil
}

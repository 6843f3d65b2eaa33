package repository

import (
	"context"
	"database/sql"

	"github.com/yeep/bus-reservation/internal/model"
)

// RouteRepo manages the shuttle lines.
type RouteRepo struct {
	db *sql.DB
}

// NewRouteRepo returns a RouteRepo bound to the given database.
func NewRouteRepo(db *sql.DB) *RouteRepo { return &RouteRepo{db: db} }

// List returns every route ordered by id.
func (r *RouteRepo) List(ctx context.Context) ([]model.Route, error) {
	const q = `SELECT id, name, color, description FROM routes ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Route, 0)
	for rows.Next() {
		var rt model.Route
		var desc sql.NullString
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.Color, &desc); err != nil {
			return nil, err
		}
		rt.Description = desc.String
		out = append(out, rt)
	}
	return out, rows.Err()
}

// GetByID returns the route with the given id or ErrRouteNotFound.
func (r *RouteRepo) GetByID(ctx context.Context, id uint64) (*model.Route, error) {
	const q = `SELECT id, name, color, description FROM routes WHERE id = ?`
	var rt model.Route
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(&rt.ID, &rt.Name, &rt.Color, &desc)
	if err == sql.ErrNoRows {
		return nil, ErrRouteNotFound
	}
	if err != nil {
		return nil, err
	}
	rt.Description = desc.String
	return &rt, nil
}

// Upsert inserts a route keyed by its color, or looks up the existing
// row.  Either way the ID is populated on return, so schedule seeding
// can run against a fresh or an already-seeded database.
func (r *RouteRepo) Upsert(ctx context.Context, rt *model.Route) error {
	const ins = `INSERT IGNORE INTO routes (name, color, description) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, ins, rt.Name, rt.Color, rt.Description)
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil && id > 0 {
		rt.ID = uint64(id)
		return nil
	}
	const sel = `SELECT id FROM routes WHERE color = ?`
	return r.db.QueryRowContext(ctx, sel, rt.Color).Scan(&rt.ID)
}

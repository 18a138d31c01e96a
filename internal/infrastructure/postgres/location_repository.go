package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo is the Postgres adapter for locations.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository builds the adapter.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create inserts a Location.
func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	const query = `
		INSERT INTO locations (site_id, name, type)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, l.SiteID, l.Name, l.Type).Scan(&l.ID); err != nil {
		return mapWriteError(err)
	}
	return nil
}

// GetByID reads a Location by id.
func (r *LocationRepo) GetByID(ctx context.Context, id int64) (*entity.Location, error) {
	const query = `SELECT id, site_id, name, type FROM locations WHERE id = $1`
	var l entity.Location
	err := r.q.QueryRow(ctx, query, id).Scan(&l.ID, &l.SiteID, &l.Name, &l.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapWriteError(err)
	}
	return &l, nil
}

// List returns locations, optionally restricted to one site.
func (r *LocationRepo) List(ctx context.Context, siteID *int64) ([]*entity.Location, error) {
	query := `SELECT id, site_id, name, type FROM locations`
	args := []any{}
	if siteID != nil {
		query += ` WHERE site_id = $1`
		args = append(args, *siteID)
	}
	query += ` ORDER BY id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapWriteError(err)
	}
	defer rows.Close()

	var out []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.SiteID, &l.Name, &l.Type); err != nil {
			return nil, mapWriteError(err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// DockForSite returns candidate dock locations for a site, lowest id
// first, used by the rebuilder (spec.md §4.2 step 1).
func (r *LocationRepo) DockForSite(ctx context.Context, siteID int64) ([]*entity.Location, error) {
	const query = `
		SELECT id, site_id, name, type
		FROM locations
		WHERE site_id = $1 AND type = 'dock'
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, siteID)
	if err != nil {
		return nil, mapWriteError(err)
	}
	defer rows.Close()

	var out []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.SiteID, &l.Name, &l.Type); err != nil {
			return nil, mapWriteError(err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

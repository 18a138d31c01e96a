package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/repository"
)

var _ repository.SiteRepository = (*SiteRepo)(nil)

// SiteRepo is the Postgres adapter for sites. Usable over a pool or an
// open transaction (Querier).
type SiteRepo struct {
	q Querier
}

// NewSiteRepository builds the adapter.
func NewSiteRepository(q Querier) *SiteRepo {
	return &SiteRepo{q: q}
}

// Create inserts a Site.
func (r *SiteRepo) Create(ctx context.Context, s *entity.Site) error {
	const query = `
		INSERT INTO sites (name, timezone, active)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, s.Name, s.Timezone, s.Active).Scan(&s.ID); err != nil {
		return mapWriteError(err)
	}
	return nil
}

// GetByID reads a Site by id.
func (r *SiteRepo) GetByID(ctx context.Context, id int64) (*entity.Site, error) {
	const query = `SELECT id, name, timezone, active FROM sites WHERE id = $1`
	var s entity.Site
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Timezone, &s.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapWriteError(err)
	}
	return &s, nil
}

// List returns every site.
func (r *SiteRepo) List(ctx context.Context) ([]*entity.Site, error) {
	const query = `SELECT id, name, timezone, active FROM sites ORDER BY id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, mapWriteError(err)
	}
	defer rows.Close()

	var out []*entity.Site
	for rows.Next() {
		var s entity.Site
		if err := rows.Scan(&s.ID, &s.Name, &s.Timezone, &s.Active); err != nil {
			return nil, mapWriteError(err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

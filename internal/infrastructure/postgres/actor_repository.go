package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/repository"
)

var _ repository.ActorRepository = (*ActorRepo)(nil)

// ActorRepo is the Postgres adapter for actors.
type ActorRepo struct {
	q Querier
}

// NewActorRepository builds the adapter.
func NewActorRepository(q Querier) *ActorRepo {
	return &ActorRepo{q: q}
}

// Create inserts an Actor.
func (r *ActorRepo) Create(ctx context.Context, a *entity.Actor) error {
	const query = `
		INSERT INTO actors (site_id, display_name, role)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, a.SiteID, a.DisplayName, a.Role).Scan(&a.ID); err != nil {
		return mapWriteError(err)
	}
	return nil
}

// GetByID reads an Actor by id.
func (r *ActorRepo) GetByID(ctx context.Context, id int64) (*entity.Actor, error) {
	const query = `SELECT id, site_id, display_name, role FROM actors WHERE id = $1`
	var a entity.Actor
	err := r.q.QueryRow(ctx, query, id).Scan(&a.ID, &a.SiteID, &a.DisplayName, &a.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapWriteError(err)
	}
	return &a, nil
}

// List returns actors, optionally restricted to one site.
func (r *ActorRepo) List(ctx context.Context, siteID *int64) ([]*entity.Actor, error) {
	query := `SELECT id, site_id, display_name, role FROM actors`
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

	var out []*entity.Actor
	for rows.Next() {
		var a entity.Actor
		if err := rows.Scan(&a.ID, &a.SiteID, &a.DisplayName, &a.Role); err != nil {
			return nil, mapWriteError(err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

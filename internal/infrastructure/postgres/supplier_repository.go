package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo is the Postgres adapter for suppliers.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository builds the adapter.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create inserts a Supplier.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	const query = `
		INSERT INTO suppliers (name, country, lead_time_days, reliability_score)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, s.Name, s.Country, s.LeadTimeDays, s.ReliabilityScore).Scan(&s.ID); err != nil {
		return mapWriteError(err)
	}
	return nil
}

// GetByID reads a Supplier by id.
func (r *SupplierRepo) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	const query = `SELECT id, name, country, lead_time_days, reliability_score FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Country, &s.LeadTimeDays, &s.ReliabilityScore)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapWriteError(err)
	}
	return &s, nil
}

// List returns every supplier.
func (r *SupplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	const query = `SELECT id, name, country, lead_time_days, reliability_score FROM suppliers ORDER BY id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, mapWriteError(err)
	}
	defer rows.Close()

	var out []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Country, &s.LeadTimeDays, &s.ReliabilityScore); err != nil {
			return nil, mapWriteError(err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

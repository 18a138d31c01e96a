package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo is the Postgres adapter for the stock_movements audit
// spine (spec.md §3).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository builds the adapter.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserts a StockMovement. A unique_violation on idempotency_key
// surfaces as domain.Conflict so the engine can read back the winner.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	const query = `
		INSERT INTO stock_movements
			(product_id, from_location_id, to_location_id, type, quantity, reason, happened_at, created_by, idempotency_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.ProductID, m.FromLocationID, m.ToLocationID, m.Type, m.Quantity,
		m.Reason, m.HappenedAt, m.CreatedBy, m.IdempotencyKey, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

// GetByIdempotencyKey reads a movement by its unique key, or nil if none.
func (r *StockMovementRepo) GetByIdempotencyKey(ctx context.Context, key string) (*entity.StockMovement, error) {
	const query = `
		SELECT id, product_id, from_location_id, to_location_id, type, quantity, reason, happened_at, created_by, idempotency_key, created_at
		FROM stock_movements WHERE idempotency_key = $1`
	var m entity.StockMovement
	err := r.q.QueryRow(ctx, query, key).Scan(
		&m.ID, &m.ProductID, &m.FromLocationID, &m.ToLocationID, &m.Type, &m.Quantity,
		&m.Reason, &m.HappenedAt, &m.CreatedBy, &m.IdempotencyKey, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapWriteError(err)
	}
	return &m, nil
}

// ListByProduct paginates the movement history of one product, newest first.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	const query = `
		SELECT id, product_id, from_location_id, to_location_id, type, quantity, reason, happened_at, created_by, idempotency_key, created_at
		FROM stock_movements
		WHERE product_id = $1
		ORDER BY happened_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, mapWriteError(err)
	}
	defer rows.Close()

	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.FromLocationID, &m.ToLocationID, &m.Type, &m.Quantity,
			&m.Reason, &m.HappenedAt, &m.CreatedBy, &m.IdempotencyKey, &m.CreatedAt,
		); err != nil {
			return nil, mapWriteError(err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo is the Postgres adapter for stock_levels, the engine's
// exclusive write surface (spec.md §3 "Ownership"). Usable over a pool
// (Get/List) or an open transaction (GetForUpdate/Upsert).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository builds the adapter.
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// Get reads without locking.
func (r *StockLevelRepo) Get(ctx context.Context, productID, locationID int64) (*entity.StockLevel, error) {
	const query = `
		SELECT product_id, location_id, qty_on_hand, qty_reserved, qty_on_order, updated_at
		FROM stock_levels WHERE product_id = $1 AND location_id = $2`
	var s entity.StockLevel
	err := r.q.QueryRow(ctx, query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.QtyOnHand, &s.QtyReserved, &s.QtyOnOrder, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.NewStockLevel(productID, locationID), nil
		}
		return nil, mapWriteError(err)
	}
	return &s, nil
}

// GetForUpdate locks the row (SELECT ... FOR UPDATE), returning a
// zero-quantity in-memory row (not yet persisted) if it has never been
// touched — the caller's subsequent Upsert creates it.
func (r *StockLevelRepo) GetForUpdate(ctx context.Context, productID, locationID int64) (*entity.StockLevel, error) {
	const query = `
		SELECT product_id, location_id, qty_on_hand, qty_reserved, qty_on_order, updated_at
		FROM stock_levels WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	var s entity.StockLevel
	err := r.q.QueryRow(ctx, query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.QtyOnHand, &s.QtyReserved, &s.QtyOnOrder, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.NewStockLevel(productID, locationID), nil
		}
		return nil, mapWriteError(err)
	}
	return &s, nil
}

// Upsert inserts or updates a StockLevel row.
func (r *StockLevelRepo) Upsert(ctx context.Context, s *entity.StockLevel) error {
	const query = `
		INSERT INTO stock_levels (product_id, location_id, qty_on_hand, qty_reserved, qty_on_order, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET qty_on_hand = EXCLUDED.qty_on_hand,
		              qty_reserved = EXCLUDED.qty_reserved,
		              qty_on_order = EXCLUDED.qty_on_order,
		              updated_at = EXCLUDED.updated_at`
	updatedAt := s.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	_, err := r.q.Exec(ctx, query, s.ProductID, s.LocationID, s.QtyOnHand, s.QtyReserved, s.QtyOnOrder, updatedAt)
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

// List returns stock levels matching an AND-composed filter (spec.md §6).
func (r *StockLevelRepo) List(ctx context.Context, filter repository.StockFilter) ([]*entity.StockLevel, error) {
	query := `
		SELECT sl.product_id, sl.location_id, sl.qty_on_hand, sl.qty_reserved, sl.qty_on_order, sl.updated_at
		FROM stock_levels sl
		JOIN locations loc ON loc.id = sl.location_id
		WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.SiteID != nil {
		query += fmt.Sprintf(" AND loc.site_id = $%d", pos)
		args = append(args, *filter.SiteID)
		pos++
	}
	if filter.LocationID != nil {
		query += fmt.Sprintf(" AND sl.location_id = $%d", pos)
		args = append(args, *filter.LocationID)
		pos++
	}
	if filter.ProductID != nil {
		query += fmt.Sprintf(" AND sl.product_id = $%d", pos)
		args = append(args, *filter.ProductID)
		pos++
	}
	query += " ORDER BY sl.product_id, sl.location_id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapWriteError(err)
	}
	defer rows.Close()

	var out []*entity.StockLevel
	for rows.Next() {
		var s entity.StockLevel
		if err := rows.Scan(&s.ProductID, &s.LocationID, &s.QtyOnHand, &s.QtyReserved, &s.QtyOnOrder, &s.UpdatedAt); err != nil {
			return nil, mapWriteError(err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

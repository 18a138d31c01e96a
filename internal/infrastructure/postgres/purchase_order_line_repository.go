package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/repository"
)

var _ repository.PurchaseOrderLineRepository = (*PurchaseOrderLineRepo)(nil)

// PurchaseOrderLineRepo is the Postgres adapter for PO lines, immutable
// once created (spec.md §3).
type PurchaseOrderLineRepo struct {
	q Querier
}

// NewPurchaseOrderLineRepository builds the adapter.
func NewPurchaseOrderLineRepository(q Querier) *PurchaseOrderLineRepo {
	return &PurchaseOrderLineRepo{q: q}
}

// Create inserts a PurchaseOrderLine.
func (r *PurchaseOrderLineRepo) Create(ctx context.Context, l *entity.PurchaseOrderLine) error {
	const query = `
		INSERT INTO purchase_order_lines (po_id, product_id, qty_ordered, unit_cost)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, l.POID, l.ProductID, l.QtyOrdered, l.UnitCost)
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

// ListByPO returns every line of a PO.
func (r *PurchaseOrderLineRepo) ListByPO(ctx context.Context, poID int64) ([]*entity.PurchaseOrderLine, error) {
	const query = `SELECT po_id, product_id, qty_ordered, unit_cost FROM purchase_order_lines WHERE po_id = $1 ORDER BY product_id`
	rows, err := r.q.Query(ctx, query, poID)
	if err != nil {
		return nil, mapWriteError(err)
	}
	defer rows.Close()

	var out []*entity.PurchaseOrderLine
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.POID, &l.ProductID, &l.QtyOrdered, &l.UnitCost); err != nil {
			return nil, mapWriteError(err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// HasProduct reports whether productID appears as a line of poID (I5).
func (r *PurchaseOrderLineRepo) HasProduct(ctx context.Context, poID, productID int64) (bool, error) {
	const query = `SELECT 1 FROM purchase_order_lines WHERE po_id = $1 AND product_id = $2`
	var one int
	err := r.q.QueryRow(ctx, query, poID, productID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, mapWriteError(err)
	}
	return true, nil
}

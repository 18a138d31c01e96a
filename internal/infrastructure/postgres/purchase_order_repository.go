package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo is the Postgres adapter for purchase orders.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository builds the adapter.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create inserts a PurchaseOrder in status draft.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	const query = `
		INSERT INTO purchase_orders (po_number, supplier_id, site_id, status, expected_eta, shipment_id, created_at, approved_at, approved_by)
		VALUES ($1, $2, $3, $4, $5, $6, now(), $7, $8)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		po.PONumber, po.SupplierID, po.SiteID, po.Status, po.ExpectedETA, po.ShipmentID, po.ApprovedAt, po.ApprovedBy,
	).Scan(&po.ID, &po.CreatedAt)
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

func scanPO(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := row.Scan(&po.ID, &po.PONumber, &po.SupplierID, &po.SiteID, &po.Status, &po.ExpectedETA,
		&po.ShipmentID, &po.CreatedAt, &po.ApprovedAt, &po.ApprovedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapWriteError(err)
	}
	return &po, nil
}

const selectPO = `
	SELECT id, po_number, supplier_id, site_id, status, expected_eta, shipment_id, created_at, approved_at, approved_by
	FROM purchase_orders WHERE id = $1`

// GetByID reads a PurchaseOrder by id.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	return scanPO(r.q.QueryRow(ctx, selectPO, id))
}

// GetForUpdate locks the PO row; status transitions must serialise.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	return scanPO(r.q.QueryRow(ctx, selectPO+" FOR UPDATE", id))
}

// Update persists status/approval fields.
func (r *PurchaseOrderRepo) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	const query = `
		UPDATE purchase_orders
		SET status = $2, shipment_id = $3, approved_at = $4, approved_by = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, po.ID, po.Status, po.ShipmentID, po.ApprovedAt, po.ApprovedBy)
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

// List returns purchase orders, optionally restricted to one site.
func (r *PurchaseOrderRepo) List(ctx context.Context, siteID *int64) ([]*entity.PurchaseOrder, error) {
	query := `SELECT id, po_number, supplier_id, site_id, status, expected_eta, shipment_id, created_at, approved_at, approved_by FROM purchase_orders`
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

	var out []*entity.PurchaseOrder
	for rows.Next() {
		var po entity.PurchaseOrder
		if err := rows.Scan(&po.ID, &po.PONumber, &po.SupplierID, &po.SiteID, &po.Status, &po.ExpectedETA,
			&po.ShipmentID, &po.CreatedAt, &po.ApprovedAt, &po.ApprovedBy); err != nil {
			return nil, mapWriteError(err)
		}
		out = append(out, &po)
	}
	return out, rows.Err()
}

// SumEngagedOrderedBySiteAndProducts sums qty_ordered per product over
// POs in the engaged set {approved, shipped, partial} (spec.md §4.2 step 2).
func (r *PurchaseOrderRepo) SumEngagedOrderedBySiteAndProducts(ctx context.Context, siteID int64, productIDs []int64) (map[int64]decimal.Decimal, error) {
	query := `
		SELECT l.product_id, SUM(l.qty_ordered)
		FROM purchase_order_lines l
		JOIN purchase_orders po ON po.id = l.po_id
		WHERE po.site_id = $1 AND po.status IN ('approved', 'shipped', 'partial')`
	args := []any{siteID}
	if len(productIDs) > 0 {
		query += ` AND l.product_id = ANY($2)`
		args = append(args, productIDs)
	}
	query += ` GROUP BY l.product_id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapWriteError(err)
	}
	defer rows.Close()

	out := make(map[int64]decimal.Decimal)
	for rows.Next() {
		var productID int64
		var sum decimal.Decimal
		if err := rows.Scan(&productID, &sum); err != nil {
			return nil, mapWriteError(err)
		}
		out[productID] = sum
	}
	return out, rows.Err()
}

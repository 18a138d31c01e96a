package postgres

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/repository"
)

var _ repository.GoodsReceiptLineRepository = (*GoodsReceiptLineRepo)(nil)

// GoodsReceiptLineRepo is the Postgres adapter for goods receipt lines.
type GoodsReceiptLineRepo struct {
	q Querier
}

// NewGoodsReceiptLineRepository builds the adapter.
func NewGoodsReceiptLineRepository(q Querier) *GoodsReceiptLineRepo {
	return &GoodsReceiptLineRepo{q: q}
}

// Create inserts a GoodsReceiptLine.
func (r *GoodsReceiptLineRepo) Create(ctx context.Context, l *entity.GoodsReceiptLine) error {
	const query = `
		INSERT INTO goods_receipt_lines (receipt_id, product_id, qty_received, qty_damaged)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, l.ReceiptID, l.ProductID, l.QtyReceived, l.QtyDamaged)
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

// ListByReceipt returns every line of a receipt.
func (r *GoodsReceiptLineRepo) ListByReceipt(ctx context.Context, receiptID int64) ([]*entity.GoodsReceiptLine, error) {
	const query = `SELECT receipt_id, product_id, qty_received, qty_damaged FROM goods_receipt_lines WHERE receipt_id = $1 ORDER BY product_id`
	rows, err := r.q.Query(ctx, query, receiptID)
	if err != nil {
		return nil, mapWriteError(err)
	}
	defer rows.Close()

	var out []*entity.GoodsReceiptLine
	for rows.Next() {
		var l entity.GoodsReceiptLine
		if err := rows.Scan(&l.ReceiptID, &l.ProductID, &l.QtyReceived, &l.QtyDamaged); err != nil {
			return nil, mapWriteError(err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// SumPostedReceivedBySiteAndProducts sums (qty_received - qty_damaged)
// over lines of POSTED receipts at siteID (spec.md §4.2 step 3).
func (r *GoodsReceiptLineRepo) SumPostedReceivedBySiteAndProducts(ctx context.Context, siteID int64, productIDs []int64) (map[int64]decimal.Decimal, error) {
	query := `
		SELECT l.product_id, SUM(l.qty_received - l.qty_damaged)
		FROM goods_receipt_lines l
		JOIN goods_receipts gr ON gr.id = l.receipt_id
		WHERE gr.site_id = $1 AND gr.status = 'posted'`
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

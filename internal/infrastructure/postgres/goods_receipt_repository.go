package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/repository"
)

var _ repository.GoodsReceiptRepository = (*GoodsReceiptRepo)(nil)

// GoodsReceiptRepo is the Postgres adapter for goods receipts.
type GoodsReceiptRepo struct {
	q Querier
}

// NewGoodsReceiptRepository builds the adapter.
func NewGoodsReceiptRepository(q Querier) *GoodsReceiptRepo {
	return &GoodsReceiptRepo{q: q}
}

const selectGoodsReceipt = `
	SELECT id, po_id, site_id, status, received_at, received_by, container_id, idempotency_key
	FROM goods_receipts`

func scanGoodsReceipt(row pgx.Row) (*entity.GoodsReceipt, error) {
	var gr entity.GoodsReceipt
	err := row.Scan(&gr.ID, &gr.POID, &gr.SiteID, &gr.Status, &gr.ReceivedAt, &gr.ReceivedBy, &gr.ContainerID, &gr.IdempotencyKey)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapWriteError(err)
	}
	return &gr, nil
}

// Create inserts a GoodsReceipt. A unique_violation on idempotency_key
// surfaces as domain.Conflict so the caller can roll back and read the
// winner (spec.md §4.1 step 3).
func (r *GoodsReceiptRepo) Create(ctx context.Context, gr *entity.GoodsReceipt) error {
	const query = `
		INSERT INTO goods_receipts (po_id, site_id, status, received_at, received_by, container_id, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, gr.POID, gr.SiteID, gr.Status, gr.ReceivedAt, gr.ReceivedBy, gr.ContainerID, gr.IdempotencyKey).Scan(&gr.ID)
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

// GetByID reads a GoodsReceipt by id.
func (r *GoodsReceiptRepo) GetByID(ctx context.Context, id int64) (*entity.GoodsReceipt, error) {
	return scanGoodsReceipt(r.q.QueryRow(ctx, selectGoodsReceipt+" WHERE id = $1", id))
}

// GetByIdempotencyKey reads a GoodsReceipt by its unique key, or nil if none.
func (r *GoodsReceiptRepo) GetByIdempotencyKey(ctx context.Context, key string) (*entity.GoodsReceipt, error) {
	return scanGoodsReceipt(r.q.QueryRow(ctx, selectGoodsReceipt+" WHERE idempotency_key = $1", key))
}

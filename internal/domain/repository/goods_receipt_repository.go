package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
)

// GoodsReceiptRepository is the persistence port for goods receipts.
type GoodsReceiptRepository interface {
	// Create inserts a goods receipt. Returns domain.ErrConflict (via the
	// *domain.Error kind) if idempotency_key already exists.
	Create(ctx context.Context, gr *entity.GoodsReceipt) error
	GetByID(ctx context.Context, id int64) (*entity.GoodsReceipt, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*entity.GoodsReceipt, error)
}

// GoodsReceiptLineRepository is the persistence port for goods receipt lines.
type GoodsReceiptLineRepository interface {
	Create(ctx context.Context, l *entity.GoodsReceiptLine) error
	ListByReceipt(ctx context.Context, receiptID int64) ([]*entity.GoodsReceiptLine, error)
	// SumPostedReceivedBySiteAndProducts sums (qty_received - qty_damaged)
	// over lines of POSTED receipts at siteID, restricted to productIDs if
	// non-empty, for the rebuilder (spec.md §4.2 step 3).
	SumPostedReceivedBySiteAndProducts(ctx context.Context, siteID int64, productIDs []int64) (map[int64]decimal.Decimal, error)
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// GRStatus is the lifecycle state of a GoodsReceipt.
type GRStatus string

const (
	GRStatusDraft     GRStatus = "draft"
	GRStatusPosted    GRStatus = "posted"
	GRStatusCancelled GRStatus = "cancelled"
)

// GoodsReceipt records goods physically arriving against a PurchaseOrder.
// POSTED is terminal-positive; CANCELLED is terminal-negative.
type GoodsReceipt struct {
	ID             int64
	POID           int64
	SiteID         int64
	Status         GRStatus
	ReceivedAt     time.Time
	ReceivedBy     int64
	ContainerID    *int64
	IdempotencyKey *string // unique, nullable
}

// GoodsReceiptLine is a per-product line of a GoodsReceipt.
type GoodsReceiptLine struct {
	ReceiptID   int64
	ProductID   int64
	QtyReceived decimal.Decimal // >= 0
	QtyDamaged  decimal.Decimal // >= 0
}

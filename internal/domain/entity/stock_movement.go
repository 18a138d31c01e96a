package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType enumerates the kinds of StockMovement the engine can append.
type MovementType string

const (
	MovementReceipt   MovementType = "receipt"
	MovementIssue     MovementType = "issue"
	MovementTransfer  MovementType = "transfer"
	MovementAdjustment MovementType = "adjustment"
	MovementScrap     MovementType = "scrap"
	MovementReserve   MovementType = "reserve"
	MovementUnreserve MovementType = "unreserve"
)

// StockMovement is the append-only audit spine: one row per successful
// first-application of an idempotency key (spec.md §3, §4.1).
type StockMovement struct {
	ID             int64
	ProductID      int64
	FromLocationID *int64
	ToLocationID   *int64
	Type           MovementType
	Quantity       decimal.Decimal // > 0
	Reason         string
	HappenedAt     time.Time
	CreatedBy      int64
	IdempotencyKey string // unique, not null
	CreatedAt      time.Time
}

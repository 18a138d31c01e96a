package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevelResponse is a StockLevel row in GET /stock.
type StockLevelResponse struct {
	ProductID   int64           `json:"product_id"`
	LocationID  int64           `json:"location_id"`
	QtyOnHand   decimal.Decimal `json:"qty_on_hand"`
	QtyReserved decimal.Decimal `json:"qty_reserved"`
	QtyOnOrder  decimal.Decimal `json:"qty_on_order"`
	Available   decimal.Decimal `json:"available"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TransferRequest is the body for POST /stock-movements/transfer.
type TransferRequest struct {
	ProductID      int64           `json:"product_id"`
	FromLocationID int64           `json:"from_location_id"`
	ToLocationID   int64           `json:"to_location_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	HappenedAt     *time.Time      `json:"happened_at,omitempty"`
	Reason         string          `json:"reason,omitempty"`
}

// ReserveRequest is the body for POST /stock-movements/reserve and
// /stock-movements/unreserve.
type ReserveRequest struct {
	ProductID  int64           `json:"product_id"`
	LocationID int64           `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	HappenedAt *time.Time      `json:"happened_at,omitempty"`
	Reason     string          `json:"reason,omitempty"`
}

// IssueRequest is the body for POST /stock-movements/issue.
type IssueRequest struct {
	ProductID  int64           `json:"product_id"`
	LocationID int64           `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	HappenedAt *time.Time      `json:"happened_at,omitempty"`
	Reason     string          `json:"reason,omitempty"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderLineRequest is one line of CreatePurchaseOrderRequest.
type CreatePurchaseOrderLineRequest struct {
	ProductID  int64           `json:"product_id"`
	QtyOrdered decimal.Decimal `json:"qty_ordered"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseOrderRequest is the body for POST /purchase-orders.
type CreatePurchaseOrderRequest struct {
	PONumber    string                           `json:"po_number"`
	SupplierID  int64                            `json:"supplier_id"`
	SiteID      int64                            `json:"site_id"`
	ExpectedETA time.Time                        `json:"expected_eta"`
	Lines       []CreatePurchaseOrderLineRequest `json:"lines"`
}

// TransitionPurchaseOrderRequest is the body for POST
// /purchase-orders/{id}/transition.
type TransitionPurchaseOrderRequest struct {
	To string `json:"to"`
}

// PurchaseOrderResponse is a PurchaseOrder in list/read responses.
type PurchaseOrderResponse struct {
	ID          int64      `json:"id"`
	PONumber    string     `json:"po_number"`
	SupplierID  int64      `json:"supplier_id"`
	SiteID      int64      `json:"site_id"`
	Status      string     `json:"status"`
	ExpectedETA time.Time  `json:"expected_eta"`
	ShipmentID  *int64     `json:"shipment_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	ApprovedBy  *int64     `json:"approved_by,omitempty"`
}

// GoodsReceiptLineRequest is one line of CreateGoodsReceiptRequest.
type GoodsReceiptLineRequest struct {
	ProductID   int64           `json:"product_id"`
	QtyReceived decimal.Decimal `json:"qty_received"`
	QtyDamaged  decimal.Decimal `json:"qty_damaged"`
}

// CreateGoodsReceiptRequest is the body for POST /goods-receipts.
type CreateGoodsReceiptRequest struct {
	POID            int64                     `json:"po_id"`
	ToLocationID    int64                     `json:"to_location_id"`
	ReceivedAt      time.Time                 `json:"received_at"`
	ContainerNumber *string                   `json:"container_number,omitempty"`
	Lines           []GoodsReceiptLineRequest `json:"lines"`
}

// GoodsReceiptResponse is the success envelope for POST /goods-receipts.
type GoodsReceiptResponse struct {
	ID           int64 `json:"id"`
	POID         int64 `json:"po_id"`
	ToLocationID int64 `json:"to_location_id"`
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// POStatus is a node in the purchase-order state machine (spec.md §4.3).
type POStatus string

const (
	POStatusDraft     POStatus = "draft"
	POStatusApproved  POStatus = "approved"
	POStatusShipped   POStatus = "shipped"
	POStatusPartial   POStatus = "partial"
	POStatusClosed    POStatus = "closed"
	POStatusCancelled POStatus = "cancelled"
)

// poTransitions enumerates the legal edges of the PO state graph.
var poTransitions = map[POStatus]map[POStatus]bool{
	POStatusDraft:    {POStatusApproved: true, POStatusCancelled: true},
	POStatusApproved: {POStatusShipped: true, POStatusPartial: true, POStatusClosed: true, POStatusCancelled: true},
	POStatusShipped:  {POStatusPartial: true, POStatusClosed: true, POStatusCancelled: true},
	POStatusPartial:  {POStatusClosed: true, POStatusCancelled: true},
}

// CanTransitionPO reports whether from -> to is a legal edge.
func CanTransitionPO(from, to POStatus) bool {
	edges, ok := poTransitions[from]
	if !ok {
		return false
	}
	return edges[to]
}

// EngagedPOStatus reports whether a status counts toward qty_on_order
// (spec.md glossary: "Engaged PO").
func EngagedPOStatus(s POStatus) bool {
	return s == POStatusApproved || s == POStatusShipped || s == POStatusPartial
}

// PurchaseOrder is raised against a Supplier for a Site.
type PurchaseOrder struct {
	ID           int64
	PONumber     string // unique
	SupplierID   int64
	SiteID       int64
	Status       POStatus
	ExpectedETA  time.Time
	ShipmentID   *int64
	CreatedAt    time.Time
	ApprovedAt   *time.Time
	ApprovedBy   *int64
}

// PurchaseOrderLine is an immutable-once-created line item on a PO.
type PurchaseOrderLine struct {
	POID       int64
	ProductID  int64
	QtyOrdered decimal.Decimal // > 0
	UnitCost   decimal.Decimal // >= 0
}

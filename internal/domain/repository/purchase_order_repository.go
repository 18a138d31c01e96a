package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
)

// PurchaseOrderRepository is the persistence port for purchase orders.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id int64) (*entity.PurchaseOrder, error)
	// GetForUpdate locks the PO row; status transitions must serialise.
	GetForUpdate(ctx context.Context, id int64) (*entity.PurchaseOrder, error)
	Update(ctx context.Context, po *entity.PurchaseOrder) error
	List(ctx context.Context, siteID *int64) ([]*entity.PurchaseOrder, error)
	// SumEngagedOrderedBySiteAndProducts sums qty_ordered per product over POs
	// in the engaged set {approved, shipped, partial}, restricted to
	// productIDs if non-empty, for the rebuilder (spec.md §4.2 step 2).
	SumEngagedOrderedBySiteAndProducts(ctx context.Context, siteID int64, productIDs []int64) (map[int64]decimal.Decimal, error)
}

// PurchaseOrderLineRepository is the persistence port for PO lines.
type PurchaseOrderLineRepository interface {
	Create(ctx context.Context, l *entity.PurchaseOrderLine) error
	ListByPO(ctx context.Context, poID int64) ([]*entity.PurchaseOrderLine, error)
	// HasProduct reports whether productID appears as a line of poID (I5).
	HasProduct(ctx context.Context, poID, productID int64) (bool, error)
}

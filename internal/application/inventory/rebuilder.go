package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
)

// RebuildQtyOnOrder exposes rebuildQtyOnOrder to other usecase packages
// (internal/application/purchaseorder) that trigger a rebuild on a PO's
// engaged-set transition without importing this package's unexported
// engine internals.
func RebuildQtyOnOrder(ctx context.Context, r Repos, siteID int64, productIDs []int64) error {
	return rebuildQtyOnOrder(ctx, r, siteID, productIDs)
}

// DefaultDockName is the dock location name the rebuilder prefers when a
// site has more than one candidate dock (spec.md §4.2 step 1). Overridden
// from cmd/api/main.go with config.Dock.DefaultDockName.
var DefaultDockName = "TAH-DOCK"

// rebuildQtyOnOrder recomputes I8 for the given (site, product-set) inside
// the caller's transaction (spec.md §4.2). It must never be called outside
// an open transaction (spec.md §5 "reentrant per transaction").
func rebuildQtyOnOrder(ctx context.Context, r Repos, siteID int64, productIDs []int64) error {
	dock, err := inboundDock(ctx, r, siteID)
	if err != nil {
		return err
	}

	ordered, err := r.PurchaseOrders.SumEngagedOrderedBySiteAndProducts(ctx, siteID, productIDs)
	if err != nil {
		return err
	}
	// The PO's own status is irrelevant to received[p] — a receipt counts
	// as received as soon as it is posted, which prevents double-counting
	// when a PO later transitions to closed (spec.md §4.2 step 3, and the
	// resolved Open Question in §9).
	received, err := r.GoodsReceiptLines.SumPostedReceivedBySiteAndProducts(ctx, siteID, productIDs)
	if err != nil {
		return err
	}

	products := make(map[int64]struct{}, len(ordered)+len(received))
	for p := range ordered {
		products[p] = struct{}{}
	}
	for p := range received {
		products[p] = struct{}{}
	}
	for _, p := range productIDs {
		products[p] = struct{}{}
	}

	ids := make([]int64, 0, len(products))
	for p := range products {
		ids = append(ids, p)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, productID := range ids {
		o := ordered[productID]
		rec := received[productID]
		outstanding := o.Sub(rec)
		if outstanding.IsNegative() {
			outstanding = decimal.Zero
		}

		sl, err := r.StockLevels.GetForUpdate(ctx, productID, dock.ID)
		if err != nil {
			return err
		}
		sl.QtyOnOrder = outstanding
		if err := r.StockLevels.Upsert(ctx, sl); err != nil {
			return err
		}
	}
	return nil
}

// inboundDock resolves the per-site dock location (spec.md §4.2 step 1):
// the location named TAH-DOCK if present, else the lowest-id dock, else
// Configuration error.
func inboundDock(ctx context.Context, r Repos, siteID int64) (*entity.Location, error) {
	docks, err := r.Locations.DockForSite(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if len(docks) == 0 {
		return nil, domain.Configuration("no dock location configured for site")
	}
	for _, d := range docks {
		if d.Name == DefaultDockName {
			return d, nil
		}
	}
	lowest := docks[0]
	for _, d := range docks[1:] {
		if d.ID < lowest.ID {
			lowest = d
		}
	}
	return lowest, nil
}

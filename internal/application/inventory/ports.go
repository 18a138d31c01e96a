package inventory

import (
	"context"

	"github.com/tomolostboard-sys/moana-logistics/internal/domain/repository"
)

// Repos bundles the repository ports the engine needs inside a single
// transaction. The teacher's TxRunner passes three repos as positional
// callback arguments; the engine here touches stock levels, movements,
// locations, purchase orders/lines, goods receipts/lines and containers,
// so the callback takes one struct instead of eight positional parameters.
type Repos struct {
	StockLevels        repository.StockLevelRepository
	Movements          repository.StockMovementRepository
	Locations          repository.LocationRepository
	PurchaseOrders     repository.PurchaseOrderRepository
	PurchaseOrderLines repository.PurchaseOrderLineRepository
	GoodsReceipts      repository.GoodsReceiptRepository
	GoodsReceiptLines  repository.GoodsReceiptLineRepository
	Containers         repository.ContainerRepository
}

// TxRunner executes fn inside one database transaction, handing it repos
// bound to that transaction, and commits on success / rolls back on error
// (spec.md §2 "Data flow", §5 "one open transaction per request").
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

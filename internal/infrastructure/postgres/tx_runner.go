package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tomolostboard-sys/moana-logistics/internal/application/inventory"
	"github.com/tomolostboard-sys/moana-logistics/internal/application/purchaseorder"
	"github.com/tomolostboard-sys/moana-logistics/internal/application/shipment"
)

// TxRunner opens one Postgres transaction per call and binds a fresh set
// of repository adapters to it, so every repo a usecase touches inside
// that callback shares the same transaction (spec.md §5 "one open
// transaction per request"). Each usecase package needs a different repo
// set, so - the way the teacher gives RunBilling a distinct name from Run
// rather than overloading one method - this type exposes one method per
// repo-set and is wrapped below by three thin adapters, one per usecase
// package's TxRunner interface (Go cannot have three same-named Run
// methods with different signatures on one type).
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over a pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) runInventory(ctx context.Context, fn func(repos inventory.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := inventory.Repos{
		StockLevels:        NewStockLevelRepository(tx),
		Movements:          NewStockMovementRepository(tx),
		Locations:          NewLocationRepository(tx),
		PurchaseOrders:     NewPurchaseOrderRepository(tx),
		PurchaseOrderLines: NewPurchaseOrderLineRepository(tx),
		GoodsReceipts:      NewGoodsReceiptRepository(tx),
		GoodsReceiptLines:  NewGoodsReceiptLineRepository(tx),
		Containers:         NewContainerRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *TxRunner) runPurchaseOrder(ctx context.Context, fn func(repos purchaseorder.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := purchaseorder.Repos{
		PurchaseOrders:     NewPurchaseOrderRepository(tx),
		PurchaseOrderLines: NewPurchaseOrderLineRepository(tx),
		GoodsReceiptLines:  NewGoodsReceiptLineRepository(tx),
		Locations:          NewLocationRepository(tx),
		StockLevels:        NewStockLevelRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *TxRunner) runShipment(ctx context.Context, fn func(repos shipment.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := shipment.Repos{
		Shipments:  NewShipmentRepository(tx),
		Events:     NewShipmentEventRepository(tx),
		Containers: NewContainerRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// InventoryTxRunner adapts TxRunner to inventory.TxRunner.
type InventoryTxRunner struct{ *TxRunner }

var _ inventory.TxRunner = InventoryTxRunner{}

// Run implements inventory.TxRunner.
func (r InventoryTxRunner) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	return r.runInventory(ctx, fn)
}

// PurchaseOrderTxRunner adapts TxRunner to purchaseorder.TxRunner.
type PurchaseOrderTxRunner struct{ *TxRunner }

var _ purchaseorder.TxRunner = PurchaseOrderTxRunner{}

// Run implements purchaseorder.TxRunner.
func (r PurchaseOrderTxRunner) Run(ctx context.Context, fn func(repos purchaseorder.Repos) error) error {
	return r.runPurchaseOrder(ctx, fn)
}

// ShipmentTxRunner adapts TxRunner to shipment.TxRunner.
type ShipmentTxRunner struct{ *TxRunner }

var _ shipment.TxRunner = ShipmentTxRunner{}

// Run implements shipment.TxRunner.
func (r ShipmentTxRunner) Run(ctx context.Context, fn func(repos shipment.Repos) error) error {
	return r.runShipment(ctx, fn)
}

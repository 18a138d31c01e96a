// Package forecast defines the boundary a future out-of-core
// forecasting/ML collaborator would consume (spec.md §9: "never a
// source of truth, must not write"). No implementation lives here; the
// port exists so that boundary is a Go type instead of prose, and so
// internal/interfaces/http has something concrete to not expose a write
// path through.
package forecast

import (
	"context"
	"time"

	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
)

// StockSnapshotReader is the read-only view a forecasting collaborator
// is given: current stock levels and the movement history since a
// point in time. It never returns a mutation path.
type StockSnapshotReader interface {
	ListStockLevels(ctx context.Context, siteID *int64) ([]*entity.StockLevel, error)
	ListMovementsSince(ctx context.Context, productID int64, since time.Time) ([]*entity.StockMovement, error)
}

package repository

import (
	"context"

	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
)

// StockLevelRepository is the persistence port for StockLevel rows: the
// engine's exclusive write surface (spec.md §3 "Ownership").
type StockLevelRepository interface {
	// Get reads without locking (used by read-through listing endpoints).
	Get(ctx context.Context, productID, locationID int64) (*entity.StockLevel, error)
	// GetForUpdate locks the row (SELECT ... FOR UPDATE), creating it with
	// zero quantities in memory (not yet persisted) if it has never been
	// touched. Callers must acquire locks in canonical (product_id,
	// location_id) ascending order across a single operation (spec.md §5).
	GetForUpdate(ctx context.Context, productID, locationID int64) (*entity.StockLevel, error)
	Upsert(ctx context.Context, s *entity.StockLevel) error
	List(ctx context.Context, filter StockFilter) ([]*entity.StockLevel, error)
}

// StockFilter is the AND-composed filter for GET /stock (spec.md §6).
type StockFilter struct {
	SiteID     *int64
	LocationID *int64
	ProductID  *int64
}

// StockMovementRepository is the persistence port for the audit spine.
type StockMovementRepository interface {
	// Create inserts a movement. On unique_violation of idempotency_key the
	// adapter returns a *domain.Error of kind Conflict; the engine retries
	// by reading back the winner.
	Create(ctx context.Context, m *entity.StockMovement) error
	GetByIdempotencyKey(ctx context.Context, key string) (*entity.StockMovement, error)
	ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, error)
}

// Package inventory implements the inventory mutation engine: the five
// transactional, idempotent domain operations of spec.md §4.1 and the
// qty_on_order projection rebuilder of §4.2.
package inventory

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
	"github.com/tomolostboard-sys/moana-logistics/internal/application/purchaseorder"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
)

// POAdvancer drives the PO's receive-side transitions (approved/shipped
// -> partial -> closed, spec.md §4.3 "receive"/"receive(last)" edges)
// after a goods receipt posts. It is optional: an engine built without
// one rebuilds qty_on_order but never advances PO status itself, which
// is the shape engine_test.go exercises without a purchaseorder usecase
// in the loop.
type POAdvancer interface {
	AdvanceAfterReceipt(ctx context.Context, r purchaseorder.Repos, poID int64) error
}

// Engine is the inventory mutation engine. It owns locking order,
// idempotency, quantity arithmetic and per-operation preconditions
// (spec.md §2 component 3). It holds no state between calls; every
// suspension point is inside the transaction the TxRunner opens.
type Engine struct {
	tx       TxRunner
	poAdvance POAdvancer
}

// NewEngine builds the engine over a TxRunner.
func NewEngine(tx TxRunner) *Engine {
	return &Engine{tx: tx}
}

// WithPOAdvancer attaches the purchase-order lifecycle usecase so
// ReceiveGoods can advance PO status in the same transaction as the
// receipt it just posted (spec.md §4.3).
func (e *Engine) WithPOAdvancer(adv POAdvancer) *Engine {
	e.poAdvance = adv
	return e
}

// MovementResult is the minimal success envelope spec.md §4.5 requires:
// {id, idempotency_key}.
type MovementResult struct {
	ID             int64
	IdempotencyKey string
}

type locKey struct {
	productID  int64
	locationID int64
}

func (k locKey) less(o locKey) bool {
	if k.productID != o.productID {
		return k.productID < o.productID
	}
	return k.locationID < o.locationID
}

// lockStockLevels acquires row locks on every (product, location) pair in
// keys, in canonical (product_id, location_id) ascending order, to prevent
// deadlocks between concurrent operations touching overlapping rows
// (spec.md §5).
func lockStockLevels(ctx context.Context, r Repos, keys []locKey) (map[locKey]*entity.StockLevel, error) {
	sorted := make([]locKey, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].less(sorted[j]) })

	out := make(map[locKey]*entity.StockLevel, len(sorted))
	for _, k := range sorted {
		if _, ok := out[k]; ok {
			continue
		}
		sl, err := r.StockLevels.GetForUpdate(ctx, k.productID, k.locationID)
		if err != nil {
			return nil, err
		}
		out[k] = sl
	}
	return out, nil
}

// runIdempotent is the common contract shared by every operation
// (spec.md §4.1): validate the key shape, run the body inside a
// transaction, and bound retries for the race where two concurrent
// first-attempts insert the same key — the loser's retry finds the
// winner's committed movement via the idempotency lookup and returns it
// (spec.md §5 "unique constraint on key + retry-on-conflict → read back
// existing").
func runIdempotent(ctx context.Context, tx TxRunner, key string, body func(r Repos) (*entity.StockMovement, error)) (MovementResult, error) {
	if !validIdempotencyKey(key) {
		return MovementResult{}, domain.InvalidArgument("idempotency key must be non-empty and at most 64 characters")
	}

	var result *entity.StockMovement
	attempt := func() error {
		return tx.Run(ctx, func(r Repos) error {
			existing, err := r.Movements.GetByIdempotencyKey(ctx, key)
			if err != nil {
				return err
			}
			if existing != nil {
				result = existing
				return nil
			}
			m, err := body(r)
			if err != nil {
				return err
			}
			result = m
			return nil
		})
	}

	retryable := func() error {
		err := attempt()
		if err == nil {
			return nil
		}
		var derr *domain.Error
		if errors.As(err, &derr) && derr.Kind == domain.KindConflict {
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
	if err := backoff.Retry(retryable, policy); err != nil {
		return MovementResult{}, err
	}
	return MovementResult{ID: result.ID, IdempotencyKey: result.IdempotencyKey}, nil
}

func insertMovement(ctx context.Context, r Repos, m *entity.StockMovement) (*entity.StockMovement, error) {
	if err := r.Movements.Create(ctx, m); err != nil {
		var derr *domain.Error
		if errors.As(err, &derr) && derr.Kind == domain.KindConflict {
			existing, gerr := r.Movements.GetByIdempotencyKey(ctx, m.IdempotencyKey)
			if gerr != nil {
				return nil, gerr
			}
			if existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}
	return m, nil
}

// TransferInput is the input to Transfer.
type TransferInput struct {
	ProductID      int64
	FromLocationID int64
	ToLocationID   int64
	Quantity       decimal.Decimal
	HappenedAt     time.Time
	Reason         string
	ActorID        int64
	IdempotencyKey string
}

// Transfer moves quantity from one location to another without touching
// reserved quantities at either end (spec.md §4.1).
func (e *Engine) Transfer(ctx context.Context, in TransferInput) (MovementResult, error) {
	if !in.Quantity.IsPositive() {
		return MovementResult{}, domain.InvalidArgument("quantity must be greater than zero")
	}
	if in.FromLocationID == in.ToLocationID {
		return MovementResult{}, domain.PreconditionFailed("from and to locations must differ", map[string]any{
			"location_id": in.FromLocationID,
		})
	}

	return runIdempotent(ctx, e.tx, in.IdempotencyKey, func(r Repos) (*entity.StockMovement, error) {
		locked, err := lockStockLevels(ctx, r, []locKey{
			{in.ProductID, in.FromLocationID},
			{in.ProductID, in.ToLocationID},
		})
		if err != nil {
			return nil, err
		}
		from := locked[locKey{in.ProductID, in.FromLocationID}]
		to := locked[locKey{in.ProductID, in.ToLocationID}]

		if from.Available().LessThan(in.Quantity) {
			return nil, domain.PreconditionFailed("insufficient available stock to transfer", map[string]any{
				"available": from.Available().String(),
				"requested": in.Quantity.String(),
			})
		}

		from.QtyOnHand = from.QtyOnHand.Sub(in.Quantity)
		to.QtyOnHand = to.QtyOnHand.Add(in.Quantity)
		from.UpdatedAt = in.HappenedAt
		to.UpdatedAt = in.HappenedAt
		if err := r.StockLevels.Upsert(ctx, from); err != nil {
			return nil, err
		}
		if err := r.StockLevels.Upsert(ctx, to); err != nil {
			return nil, err
		}

		fromID, toID := in.FromLocationID, in.ToLocationID
		mov := &entity.StockMovement{
			ProductID:      in.ProductID,
			FromLocationID: &fromID,
			ToLocationID:   &toID,
			Type:           entity.MovementTransfer,
			Quantity:       in.Quantity,
			Reason:         in.Reason,
			HappenedAt:     in.HappenedAt,
			CreatedBy:      in.ActorID,
			IdempotencyKey: in.IdempotencyKey,
			CreatedAt:      in.HappenedAt,
		}
		return insertMovement(ctx, r, mov)
	})
}

// ReserveInput is the input to Reserve.
type ReserveInput struct {
	ProductID      int64
	LocationID     int64
	Quantity       decimal.Decimal
	HappenedAt     time.Time
	Reason         string
	ActorID        int64
	IdempotencyKey string
}

// Reserve earmarks quantity for picking. Maintains I2 because only
// available stock (on_hand - prior reserved) can be reserved (spec.md §4.1).
func (e *Engine) Reserve(ctx context.Context, in ReserveInput) (MovementResult, error) {
	if !in.Quantity.IsPositive() {
		return MovementResult{}, domain.InvalidArgument("quantity must be greater than zero")
	}

	return runIdempotent(ctx, e.tx, in.IdempotencyKey, func(r Repos) (*entity.StockMovement, error) {
		locked, err := lockStockLevels(ctx, r, []locKey{{in.ProductID, in.LocationID}})
		if err != nil {
			return nil, err
		}
		sl := locked[locKey{in.ProductID, in.LocationID}]

		if sl.Available().LessThan(in.Quantity) {
			return nil, domain.PreconditionFailed("insufficient available stock to reserve", map[string]any{
				"available": sl.Available().String(),
				"requested": in.Quantity.String(),
			})
		}

		sl.QtyReserved = sl.QtyReserved.Add(in.Quantity)
		sl.UpdatedAt = in.HappenedAt
		if err := r.StockLevels.Upsert(ctx, sl); err != nil {
			return nil, err
		}

		locID := in.LocationID
		mov := &entity.StockMovement{
			ProductID:      in.ProductID,
			ToLocationID:   &locID,
			Type:           entity.MovementReserve,
			Quantity:       in.Quantity,
			Reason:         in.Reason,
			HappenedAt:     in.HappenedAt,
			CreatedBy:      in.ActorID,
			IdempotencyKey: in.IdempotencyKey,
			CreatedAt:      in.HappenedAt,
		}
		return insertMovement(ctx, r, mov)
	})
}

// UnreserveInput is the input to Unreserve.
type UnreserveInput struct {
	ProductID      int64
	LocationID     int64
	Quantity       decimal.Decimal
	HappenedAt     time.Time
	Reason         string
	ActorID        int64
	IdempotencyKey string
}

// Unreserve releases a previously reserved quantity (spec.md §4.1).
func (e *Engine) Unreserve(ctx context.Context, in UnreserveInput) (MovementResult, error) {
	if !in.Quantity.IsPositive() {
		return MovementResult{}, domain.InvalidArgument("quantity must be greater than zero")
	}

	return runIdempotent(ctx, e.tx, in.IdempotencyKey, func(r Repos) (*entity.StockMovement, error) {
		locked, err := lockStockLevels(ctx, r, []locKey{{in.ProductID, in.LocationID}})
		if err != nil {
			return nil, err
		}
		sl := locked[locKey{in.ProductID, in.LocationID}]

		if sl.QtyReserved.LessThan(in.Quantity) {
			return nil, domain.PreconditionFailed("reserved quantity is less than requested unreserve", map[string]any{
				"reserved":  sl.QtyReserved.String(),
				"requested": in.Quantity.String(),
			})
		}

		sl.QtyReserved = sl.QtyReserved.Sub(in.Quantity)
		sl.UpdatedAt = in.HappenedAt
		if err := r.StockLevels.Upsert(ctx, sl); err != nil {
			return nil, err
		}

		locID := in.LocationID
		mov := &entity.StockMovement{
			ProductID:      in.ProductID,
			ToLocationID:   &locID,
			Type:           entity.MovementUnreserve,
			Quantity:       in.Quantity,
			Reason:         in.Reason,
			HappenedAt:     in.HappenedAt,
			CreatedBy:      in.ActorID,
			IdempotencyKey: in.IdempotencyKey,
			CreatedAt:      in.HappenedAt,
		}
		return insertMovement(ctx, r, mov)
	})
}

// IssueInput is the input to Issue.
type IssueInput struct {
	ProductID      int64
	LocationID     int64
	Quantity       decimal.Decimal
	HappenedAt     time.Time
	Reason         string
	ActorID        int64
	IdempotencyKey string
}

// Issue picks from an existing reservation: reserved and on-hand both drop
// (spec.md §4.1 "pick-from-reservation semantics").
func (e *Engine) Issue(ctx context.Context, in IssueInput) (MovementResult, error) {
	if !in.Quantity.IsPositive() {
		return MovementResult{}, domain.InvalidArgument("quantity must be greater than zero")
	}

	return runIdempotent(ctx, e.tx, in.IdempotencyKey, func(r Repos) (*entity.StockMovement, error) {
		locked, err := lockStockLevels(ctx, r, []locKey{{in.ProductID, in.LocationID}})
		if err != nil {
			return nil, err
		}
		sl := locked[locKey{in.ProductID, in.LocationID}]

		if sl.QtyReserved.LessThan(in.Quantity) {
			return nil, domain.PreconditionFailed("reserved quantity is less than requested issue", map[string]any{
				"reserved":  sl.QtyReserved.String(),
				"requested": in.Quantity.String(),
			})
		}
		if sl.QtyOnHand.LessThan(in.Quantity) {
			return nil, domain.PreconditionFailed("on-hand quantity is less than requested issue", map[string]any{
				"on_hand":   sl.QtyOnHand.String(),
				"requested": in.Quantity.String(),
			})
		}

		sl.QtyReserved = sl.QtyReserved.Sub(in.Quantity)
		sl.QtyOnHand = sl.QtyOnHand.Sub(in.Quantity)
		sl.UpdatedAt = in.HappenedAt
		if err := r.StockLevels.Upsert(ctx, sl); err != nil {
			return nil, err
		}

		locID := in.LocationID
		mov := &entity.StockMovement{
			ProductID:      in.ProductID,
			FromLocationID: &locID,
			Type:           entity.MovementIssue,
			Quantity:       in.Quantity,
			Reason:         in.Reason,
			HappenedAt:     in.HappenedAt,
			CreatedBy:      in.ActorID,
			IdempotencyKey: in.IdempotencyKey,
			CreatedAt:      in.HappenedAt,
		}
		return insertMovement(ctx, r, mov)
	})
}

package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
	"github.com/tomolostboard-sys/moana-logistics/internal/application/purchaseorder"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
)

// ReceiveGoodsLine is one line of a goods-receipt request.
type ReceiveGoodsLine struct {
	ProductID   int64
	QtyReceived decimal.Decimal
	QtyDamaged  decimal.Decimal
}

// ReceiveGoodsInput is the input to ReceiveGoods. IdempotencyKey is
// optional: when the caller omits it, the receipt key is derived from the
// request shape (spec.md §6).
type ReceiveGoodsInput struct {
	POID            int64
	ToLocationID    int64
	ReceivedAt      time.Time
	ActorID         int64
	IdempotencyKey  *string
	ContainerNumber *string
	Lines           []ReceiveGoodsLine
}

// ReceiveGoodsResult is the success envelope for POST /goods-receipts.
type ReceiveGoodsResult struct {
	ID           int64
	POID         int64
	ToLocationID int64
}

// ReceiveGoods posts a goods receipt: creates the GoodsReceipt/lines, adds
// qty_received to on-hand stock at the destination, appends one replay-safe
// StockMovement per line, and rebuilds qty_on_order for every touched
// product at the PO's site — all inside one transaction (spec.md §4.1
// "the compound operation").
func (e *Engine) ReceiveGoods(ctx context.Context, in ReceiveGoodsInput) (ReceiveGoodsResult, error) {
	if len(in.Lines) == 0 {
		return ReceiveGoodsResult{}, domain.InvalidArgument("at least one line is required")
	}
	for _, l := range in.Lines {
		if l.QtyReceived.IsNegative() || l.QtyDamaged.IsNegative() {
			return ReceiveGoodsResult{}, domain.InvalidArgument("qty_received and qty_damaged must be >= 0")
		}
	}

	var result ReceiveGoodsResult
	attempt := func() error {
		return e.tx.Run(ctx, func(r Repos) error {
			po, err := r.PurchaseOrders.GetByID(ctx, in.POID)
			if err != nil {
				return err
			}
			if po == nil {
				return domain.NotFound("purchase order not found")
			}

			loc, err := r.Locations.GetByID(ctx, in.ToLocationID)
			if err != nil {
				return err
			}
			if loc == nil {
				return domain.NotFound("destination location not found")
			}
			if loc.SiteID != po.SiteID {
				return domain.PreconditionFailed("destination location is not at the purchase order's site", map[string]any{
					"po_site_id":  po.SiteID,
					"loc_site_id": loc.SiteID,
				})
			}

			for _, l := range in.Lines {
				onPO, err := r.PurchaseOrderLines.HasProduct(ctx, in.POID, l.ProductID)
				if err != nil {
					return err
				}
				if !onPO {
					return domain.PreconditionFailed("product is not a line of the purchase order", map[string]any{
						"product_id": l.ProductID,
						"po_id":      in.POID,
					})
				}
			}

			receiptKey := in.IdempotencyKey
			if receiptKey == nil || *receiptKey == "" {
				lines := make([]receiptLineForKey, 0, len(in.Lines))
				for _, l := range in.Lines {
					lines = append(lines, receiptLineForKey{ProductID: l.ProductID, QtyReceived: l.QtyReceived})
				}
				derived := deriveGoodsReceiptKey(po.SiteID, in.POID, in.ToLocationID, in.ReceivedAt, lines)
				receiptKey = &derived
			}
			key := *receiptKey

			existing, err := r.GoodsReceipts.GetByIdempotencyKey(ctx, key)
			if err != nil {
				return err
			}
			if existing != nil {
				result = ReceiveGoodsResult{ID: existing.ID, POID: existing.POID, ToLocationID: in.ToLocationID}
				return nil
			}

			var containerID *int64
			if in.ContainerNumber != nil && *in.ContainerNumber != "" {
				c, err := r.Containers.GetByContainerNumber(ctx, *in.ContainerNumber)
				if err != nil {
					return err
				}
				if c == nil {
					return domain.NotFound("container not found")
				}
				containerID = &c.ID
			}

			gr := &entity.GoodsReceipt{
				POID:           in.POID,
				SiteID:         po.SiteID,
				Status:         entity.GRStatusPosted,
				ReceivedAt:     in.ReceivedAt,
				ReceivedBy:     in.ActorID,
				ContainerID:    containerID,
				IdempotencyKey: &key,
			}
			if err := r.GoodsReceipts.Create(ctx, gr); err != nil {
				var derr *domain.Error
				if errors.As(err, &derr) && derr.Kind == domain.KindConflict {
					winner, gerr := r.GoodsReceipts.GetByIdempotencyKey(ctx, key)
					if gerr != nil {
						return gerr
					}
					if winner != nil {
						result = ReceiveGoodsResult{ID: winner.ID, POID: winner.POID, ToLocationID: in.ToLocationID}
						return nil
					}
				}
				return err
			}

			keys := make([]locKey, 0, len(in.Lines))
			for _, l := range in.Lines {
				keys = append(keys, locKey{l.ProductID, in.ToLocationID})
			}
			locked, err := lockStockLevels(ctx, r, keys)
			if err != nil {
				return err
			}

			productIDs := make([]int64, 0, len(in.Lines))
			for _, l := range in.Lines {
				if err := r.GoodsReceiptLines.Create(ctx, &entity.GoodsReceiptLine{
					ReceiptID:   gr.ID,
					ProductID:   l.ProductID,
					QtyReceived: l.QtyReceived,
					QtyDamaged:  l.QtyDamaged,
				}); err != nil {
					return err
				}

				sl := locked[locKey{l.ProductID, in.ToLocationID}]
				sl.QtyOnHand = sl.QtyOnHand.Add(l.QtyReceived)
				sl.UpdatedAt = in.ReceivedAt
				if err := r.StockLevels.Upsert(ctx, sl); err != nil {
					return err
				}

				movKey := deriveGoodsReceiptMovementKey(key, l.ProductID, in.ToLocationID, in.ReceivedAt, l.QtyReceived)
				toLoc := in.ToLocationID
				mov := &entity.StockMovement{
					ProductID:      l.ProductID,
					ToLocationID:   &toLoc,
					Type:           entity.MovementReceipt,
					Quantity:       l.QtyReceived,
					Reason:         "goods receipt",
					HappenedAt:     in.ReceivedAt,
					CreatedBy:      in.ActorID,
					IdempotencyKey: movKey,
					CreatedAt:      in.ReceivedAt,
				}
				if _, err := insertMovement(ctx, r, mov); err != nil {
					return err
				}

				productIDs = append(productIDs, l.ProductID)
			}

			if err := rebuildQtyOnOrder(ctx, r, po.SiteID, productIDs); err != nil {
				return err
			}

			if e.poAdvance != nil {
				poRepos := purchaseorder.Repos{
					PurchaseOrders:     r.PurchaseOrders,
					PurchaseOrderLines: r.PurchaseOrderLines,
					GoodsReceiptLines:  r.GoodsReceiptLines,
					Locations:          r.Locations,
					StockLevels:        r.StockLevels,
				}
				if err := e.poAdvance.AdvanceAfterReceipt(ctx, poRepos, po.ID); err != nil {
					return err
				}
			}

			result = ReceiveGoodsResult{ID: gr.ID, POID: gr.POID, ToLocationID: in.ToLocationID}
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
		return ReceiveGoodsResult{}, err
	}
	return result, nil
}

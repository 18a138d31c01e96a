// Package purchaseorder implements the purchase-order lifecycle usecases
// (spec.md §4.3): create, approve, ship, receive-progress, close, cancel.
// Every transition that moves a PO into or out of the engaged set
// {approved, shipped, partial} rebuilds qty_on_order for that PO's
// product set in the same transaction (spec.md §4.3 "must trigger a
// rebuild").
package purchaseorder

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/repository"
)

// Repos bundles the repository ports this usecase needs inside a
// transaction, the same pattern as inventory.Repos.
type Repos struct {
	PurchaseOrders     repository.PurchaseOrderRepository
	PurchaseOrderLines repository.PurchaseOrderLineRepository
	GoodsReceiptLines  repository.GoodsReceiptLineRepository
	Locations          repository.LocationRepository
	StockLevels        repository.StockLevelRepository
}

// TxRunner executes fn inside one transaction, the same contract as
// inventory.TxRunner but bound to this package's narrower Repos.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

// Rebuilder recomputes qty_on_order for a site/product-set inside an
// already-open transaction. It is satisfied by inventory.Engine's
// internal rebuilder via a thin adapter in cmd/api/main.go, so this
// package does not import internal/application/inventory and create a
// dependency cycle between the two usecase packages.
type Rebuilder interface {
	RebuildQtyOnOrder(ctx context.Context, r Repos, siteID int64, productIDs []int64) error
}

// UseCase implements the purchase-order lifecycle.
type UseCase struct {
	tx   TxRunner
	proj Rebuilder
}

// NewUseCase builds a purchase-order lifecycle usecase.
func NewUseCase(tx TxRunner, proj Rebuilder) *UseCase {
	return &UseCase{tx: tx, proj: proj}
}

// CreateInput is the input to Create.
type CreateInput struct {
	PONumber    string
	SupplierID  int64
	SiteID      int64
	ExpectedETA time.Time
	Lines       []LineInput
}

// LineInput is one requested PO line.
type LineInput struct {
	ProductID  int64
	QtyOrdered decimal.Decimal
	UnitCost   decimal.Decimal
}

// Create inserts a draft PurchaseOrder with its lines (I6: qty_ordered >
// 0, unit_cost >= 0). A draft PO is not in the engaged set, so no
// rebuild runs here.
func (u *UseCase) Create(ctx context.Context, in CreateInput) (*entity.PurchaseOrder, error) {
	if in.PONumber == "" {
		return nil, domain.InvalidArgument("po_number is required")
	}
	if len(in.Lines) == 0 {
		return nil, domain.InvalidArgument("at least one line is required")
	}
	for _, l := range in.Lines {
		if !l.QtyOrdered.IsPositive() {
			return nil, domain.InvalidArgument("qty_ordered must be > 0")
		}
		if l.UnitCost.IsNegative() {
			return nil, domain.InvalidArgument("unit_cost must be >= 0")
		}
	}

	po := &entity.PurchaseOrder{
		PONumber:    in.PONumber,
		SupplierID:  in.SupplierID,
		SiteID:      in.SiteID,
		Status:      entity.POStatusDraft,
		ExpectedETA: in.ExpectedETA,
	}

	err := u.tx.Run(ctx, func(r Repos) error {
		if err := r.PurchaseOrders.Create(ctx, po); err != nil {
			return err
		}
		for _, l := range in.Lines {
			if err := r.PurchaseOrderLines.Create(ctx, &entity.PurchaseOrderLine{
				POID:       po.ID,
				ProductID:  l.ProductID,
				QtyOrdered: l.QtyOrdered,
				UnitCost:   l.UnitCost,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return po, nil
}

// Transition applies one named edge of the PO state graph (spec.md
// §4.3): the PO moves to the requested target status if
// entity.CanTransitionPO allows the edge from its current status, which
// includes the partial and closed targets. Receipt-driven moves to
// partial/closed go through AdvanceAfterReceipt below instead.
func (u *UseCase) Transition(ctx context.Context, poID int64, to entity.POStatus, actorID int64) (*entity.PurchaseOrder, error) {
	var result *entity.PurchaseOrder
	err := u.tx.Run(ctx, func(r Repos) error {
		po, err := r.PurchaseOrders.GetForUpdate(ctx, poID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.NotFound("purchase order not found")
		}
		if !entity.CanTransitionPO(po.Status, to) {
			return domain.PreconditionFailed("illegal purchase order transition", map[string]any{
				"from": string(po.Status),
				"to":   string(to),
			})
		}

		wasEngaged := entity.EngagedPOStatus(po.Status)
		po.Status = to
		if to == entity.POStatusApproved {
			now := timeNow()
			po.ApprovedAt = &now
			po.ApprovedBy = &actorID
		}
		if err := r.PurchaseOrders.Update(ctx, po); err != nil {
			return err
		}
		nowEngaged := entity.EngagedPOStatus(po.Status)

		if wasEngaged != nowEngaged {
			if err := u.rebuildForPO(ctx, r, po); err != nil {
				return err
			}
		}
		result = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AdvanceAfterReceipt moves a PO from approved/shipped to partial, or
// from partial to closed, once every line is fully received. It is
// called by the goods-receipt flow after posting a receipt, inside the
// same transaction. ReceiveGoods already rebuilds qty_on_order for the
// receipt's own product set before this runs, but that rebuild sums
// ordered quantity over POs that are still engaged at that instant; if
// this call then moves poID out of the engaged set, any other engaged
// PO sharing a product with poID is left overcounting until something
// else touches that product, so a status flip here rebuilds again for
// poID's product set.
func (u *UseCase) AdvanceAfterReceipt(ctx context.Context, r Repos, poID int64) error {
	po, err := r.PurchaseOrders.GetForUpdate(ctx, poID)
	if err != nil {
		return err
	}
	if po == nil {
		return domain.NotFound("purchase order not found")
	}
	if !entity.EngagedPOStatus(po.Status) {
		return nil
	}

	lines, err := r.PurchaseOrderLines.ListByPO(ctx, poID)
	if err != nil {
		return err
	}
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	received, err := r.GoodsReceiptLines.SumPostedReceivedBySiteAndProducts(ctx, po.SiteID, ids)
	if err != nil {
		return err
	}

	fullyReceived := true
	anyReceived := false
	for _, l := range lines {
		rec := received[l.ProductID]
		if rec.IsPositive() {
			anyReceived = true
		}
		if rec.LessThan(l.QtyOrdered) {
			fullyReceived = false
		}
	}

	next := po.Status
	switch {
	case fullyReceived:
		next = entity.POStatusClosed
	case anyReceived && po.Status != entity.POStatusPartial:
		next = entity.POStatusPartial
	}
	if next == po.Status {
		return nil
	}
	if !entity.CanTransitionPO(po.Status, next) {
		return errors.New("purchaseorder: computed receipt-driven transition is not a legal edge")
	}

	wasEngaged := entity.EngagedPOStatus(po.Status)
	po.Status = next
	if err := r.PurchaseOrders.Update(ctx, po); err != nil {
		return err
	}
	nowEngaged := entity.EngagedPOStatus(po.Status)
	if wasEngaged != nowEngaged {
		return u.rebuildForPO(ctx, r, po)
	}
	return nil
}

func (u *UseCase) rebuildForPO(ctx context.Context, r Repos, po *entity.PurchaseOrder) error {
	lines, err := r.PurchaseOrderLines.ListByPO(ctx, po.ID)
	if err != nil {
		return err
	}
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	if len(ids) == 0 {
		return nil
	}
	return u.proj.RebuildQtyOnOrder(ctx, r, po.SiteID, ids)
}

func timeNow() time.Time { return time.Now().UTC() }

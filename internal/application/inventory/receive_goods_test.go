package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomolostboard-sys/moana-logistics/internal/application/inventory"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
)

// scenario 5: a partial receive posts the GoodsReceipt, adds qty_received
// to on-hand at the destination, and rebuilds qty_on_order for every
// touched product, all inside one transaction.
func TestReceiveGoods_Partial(t *testing.T) {
	store := newFakeStore()
	dock := store.seedLocation(1, "TAH-DOCK", entity.LocationDock)
	store.seedPO(1, 1, "PO-1", entity.POStatusApproved, &entity.PurchaseOrderLine{
		ProductID: 7, QtyOrdered: d("100"), UnitCost: d("2.50"),
	})
	store.seedStockLevel(7, dock.ID, decimal.Zero, decimal.Zero)

	engine := inventory.NewEngine(newFakeTxRunner(store))
	res, err := engine.ReceiveGoods(context.Background(), inventory.ReceiveGoodsInput{
		POID: 1, ToLocationID: dock.ID, ReceivedAt: time.Now(), ActorID: 1,
		Lines: []inventory.ReceiveGoodsLine{{ProductID: 7, QtyReceived: d("40"), QtyDamaged: decimal.Zero}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.POID)

	sl, _ := store.stockLevelsGet(7, dock.ID)
	assert.True(t, sl.QtyOnHand.Equal(d("40")))
	assert.True(t, sl.QtyOnOrder.Equal(d("60")))
}

// scenario 5 continued: replaying the identical request (same derived or
// caller-supplied key) returns the same receipt id and applies the
// on-hand delta exactly once.
func TestReceiveGoods_Replay(t *testing.T) {
	store := newFakeStore()
	dock := store.seedLocation(1, "TAH-DOCK", entity.LocationDock)
	store.seedPO(1, 1, "PO-1", entity.POStatusApproved, &entity.PurchaseOrderLine{
		ProductID: 7, QtyOrdered: d("100"), UnitCost: d("2.50"),
	})
	store.seedStockLevel(7, dock.ID, decimal.Zero, decimal.Zero)

	engine := inventory.NewEngine(newFakeTxRunner(store))
	in := inventory.ReceiveGoodsInput{
		POID: 1, ToLocationID: dock.ID, ReceivedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), ActorID: 1,
		Lines: []inventory.ReceiveGoodsLine{{ProductID: 7, QtyReceived: d("40"), QtyDamaged: decimal.Zero}},
	}

	res1, err := engine.ReceiveGoods(context.Background(), in)
	require.NoError(t, err)
	res2, err := engine.ReceiveGoods(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, res1.ID, res2.ID)
	sl, _ := store.stockLevelsGet(7, dock.ID)
	assert.True(t, sl.QtyOnHand.Equal(d("40")), "replay must not double-apply the on-hand delta")
}

// scenario 6: a destination at the wrong site is rejected before any
// write, including the GoodsReceipt row itself.
func TestReceiveGoods_WrongSiteDestination(t *testing.T) {
	store := newFakeStore()
	poSiteDock := store.seedLocation(1, "TAH-DOCK", entity.LocationDock)
	_ = poSiteDock
	wrongSiteLoc := store.seedLocation(2, "OTHER-SITE-DOCK", entity.LocationDock)
	store.seedPO(1, 1, "PO-1", entity.POStatusApproved, &entity.PurchaseOrderLine{
		ProductID: 7, QtyOrdered: d("10"), UnitCost: d("1"),
	})

	engine := inventory.NewEngine(newFakeTxRunner(store))
	_, err := engine.ReceiveGoods(context.Background(), inventory.ReceiveGoodsInput{
		POID: 1, ToLocationID: wrongSiteLoc.ID, ReceivedAt: time.Now(), ActorID: 1,
		Lines: []inventory.ReceiveGoodsLine{{ProductID: 7, QtyReceived: d("5"), QtyDamaged: decimal.Zero}},
	})

	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.KindPreconditionFailed, derr.Kind)
	assert.Empty(t, store.goodsReceiptsByID)
}

func TestReceiveGoods_ProductNotOnPORejected(t *testing.T) {
	store := newFakeStore()
	dock := store.seedLocation(1, "TAH-DOCK", entity.LocationDock)
	store.seedPO(1, 1, "PO-1", entity.POStatusApproved, &entity.PurchaseOrderLine{
		ProductID: 7, QtyOrdered: d("10"), UnitCost: d("1"),
	})

	engine := inventory.NewEngine(newFakeTxRunner(store))
	_, err := engine.ReceiveGoods(context.Background(), inventory.ReceiveGoodsInput{
		POID: 1, ToLocationID: dock.ID, ReceivedAt: time.Now(), ActorID: 1,
		Lines: []inventory.ReceiveGoodsLine{{ProductID: 999, QtyReceived: d("5"), QtyDamaged: decimal.Zero}},
	})

	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.KindPreconditionFailed, derr.Kind)
	assert.Empty(t, store.goodsReceiptsByID)
}

func TestReceiveGoods_UnknownPORejected(t *testing.T) {
	store := newFakeStore()
	engine := inventory.NewEngine(newFakeTxRunner(store))
	_, err := engine.ReceiveGoods(context.Background(), inventory.ReceiveGoodsInput{
		POID: 404, ToLocationID: 1, ReceivedAt: time.Now(), ActorID: 1,
		Lines: []inventory.ReceiveGoodsLine{{ProductID: 7, QtyReceived: d("5"), QtyDamaged: decimal.Zero}},
	})
	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.KindNotFound, derr.Kind)
}

// Two concurrent receives against the same PO and destination serialize
// through the fake TxRunner's mutex exactly the way two requests blocked
// on the same row lock would, and both deltas land (spec.md §5).
func TestReceiveGoods_ConcurrentDistinctKeysBothApply(t *testing.T) {
	store := newFakeStore()
	dock := store.seedLocation(1, "TAH-DOCK", entity.LocationDock)
	store.seedPO(1, 1, "PO-1", entity.POStatusApproved, &entity.PurchaseOrderLine{
		ProductID: 7, QtyOrdered: d("100"), UnitCost: d("2.50"),
	})
	store.seedStockLevel(7, dock.ID, decimal.Zero, decimal.Zero)

	engine := inventory.NewEngine(newFakeTxRunner(store))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	keys := []string{"first", "second"}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := keys[i]
			_, err := engine.ReceiveGoods(context.Background(), inventory.ReceiveGoodsInput{
				POID: 1, ToLocationID: dock.ID, ReceivedAt: time.Now(), ActorID: 1, IdempotencyKey: &key,
				Lines: []inventory.ReceiveGoodsLine{{ProductID: 7, QtyReceived: d("10"), QtyDamaged: decimal.Zero}},
			})
			errs[i] = err
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	sl, _ := store.stockLevelsGet(7, dock.ID)
	assert.True(t, sl.QtyOnHand.Equal(d("20")))
	assert.True(t, sl.QtyOnOrder.Equal(d("80")))
}

package inventory_test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/tomolostboard-sys/moana-logistics/internal/application/inventory"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/repository"
)

// fakeStore is an in-memory stand-in for the Postgres adapters, used to
// exercise the mutation engine and rebuilder against the ports in
// internal/domain/repository without a real database. GetForUpdate-style
// reads return copies so callers mutate in-memory state exactly the way a
// SELECT ... FOR UPDATE row does, and the TxRunner below snapshots/restores
// the whole store so a failed operation leaves no partial writes, the way
// a real rolled-back transaction would.
type fakeStore struct {
	stockLevels map[[2]int64]*entity.StockLevel

	movementsByKey map[string]*entity.StockMovement
	movementsByID  map[int64]*entity.StockMovement
	nextMovementID int64

	locations      map[int64]*entity.Location
	nextLocationID int64

	purchaseOrders map[int64]*entity.PurchaseOrder
	nextPOID       int64
	poLines        map[int64][]*entity.PurchaseOrderLine

	goodsReceiptsByKey map[string]*entity.GoodsReceipt
	goodsReceiptsByID  map[int64]*entity.GoodsReceipt
	nextGRID           int64
	grLines            map[int64][]*entity.GoodsReceiptLine

	containers      map[int64]*entity.Container
	nextContainerID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		stockLevels:        make(map[[2]int64]*entity.StockLevel),
		movementsByKey:     make(map[string]*entity.StockMovement),
		movementsByID:      make(map[int64]*entity.StockMovement),
		locations:          make(map[int64]*entity.Location),
		purchaseOrders:     make(map[int64]*entity.PurchaseOrder),
		poLines:            make(map[int64][]*entity.PurchaseOrderLine),
		goodsReceiptsByKey: make(map[string]*entity.GoodsReceipt),
		goodsReceiptsByID:  make(map[int64]*entity.GoodsReceipt),
		grLines:            make(map[int64][]*entity.GoodsReceiptLine),
		containers:         make(map[int64]*entity.Container),
	}
}

// clone deep-copies every map of pointers so a rollback can restore state
// without aliasing structs the in-flight attempt already mutated.
func (s *fakeStore) clone() *fakeStore {
	out := newFakeStore()
	for k, v := range s.stockLevels {
		cp := *v
		out.stockLevels[k] = &cp
	}
	for k, v := range s.movementsByKey {
		cp := *v
		out.movementsByKey[k] = &cp
		out.movementsByID[cp.ID] = &cp
	}
	out.nextMovementID = s.nextMovementID
	for k, v := range s.locations {
		cp := *v
		out.locations[k] = &cp
	}
	out.nextLocationID = s.nextLocationID
	for k, v := range s.purchaseOrders {
		cp := *v
		out.purchaseOrders[k] = &cp
	}
	out.nextPOID = s.nextPOID
	for k, lines := range s.poLines {
		cpLines := make([]*entity.PurchaseOrderLine, len(lines))
		for i, l := range lines {
			cp := *l
			cpLines[i] = &cp
		}
		out.poLines[k] = cpLines
	}
	for k, v := range s.goodsReceiptsByKey {
		cp := *v
		out.goodsReceiptsByKey[k] = &cp
		out.goodsReceiptsByID[cp.ID] = &cp
	}
	out.nextGRID = s.nextGRID
	for k, lines := range s.grLines {
		cpLines := make([]*entity.GoodsReceiptLine, len(lines))
		for i, l := range lines {
			cp := *l
			cpLines[i] = &cp
		}
		out.grLines[k] = cpLines
	}
	for k, v := range s.containers {
		cp := *v
		out.containers[k] = &cp
	}
	out.nextContainerID = s.nextContainerID
	return out
}

func (s *fakeStore) restore(snap *fakeStore) {
	*s = *snap
}

// seedLocation registers a location directly (bypassing the catalog
// usecase, which these engine-focused tests don't exercise).
func (s *fakeStore) seedLocation(siteID int64, name string, typ entity.LocationType) *entity.Location {
	s.nextLocationID++
	l := &entity.Location{ID: s.nextLocationID, SiteID: siteID, Name: name, Type: typ}
	s.locations[l.ID] = l
	return l
}

func (s *fakeStore) seedStockLevel(productID, locationID int64, onHand, reserved decimal.Decimal) {
	s.stockLevels[[2]int64{productID, locationID}] = &entity.StockLevel{
		ProductID: productID, LocationID: locationID, QtyOnHand: onHand, QtyReserved: reserved, QtyOnOrder: decimal.Zero,
	}
}

func (s *fakeStore) seedPO(siteID, supplierID int64, poNumber string, status entity.POStatus, lines ...*entity.PurchaseOrderLine) *entity.PurchaseOrder {
	s.nextPOID++
	po := &entity.PurchaseOrder{ID: s.nextPOID, PONumber: poNumber, SupplierID: supplierID, SiteID: siteID, Status: status}
	s.purchaseOrders[po.ID] = po
	for _, l := range lines {
		l.POID = po.ID
	}
	s.poLines[po.ID] = lines
	return po
}

// ---- repos bound to a fakeStore ----

type fakeRepos struct{ s *fakeStore }

func (r fakeRepos) asInventory() inventory.Repos {
	return inventory.Repos{
		StockLevels:        fakeStockLevels{r.s},
		Movements:          fakeMovements{r.s},
		Locations:          fakeLocations{r.s},
		PurchaseOrders:     fakePurchaseOrders{r.s},
		PurchaseOrderLines: fakePurchaseOrderLines{r.s},
		GoodsReceipts:      fakeGoodsReceipts{r.s},
		GoodsReceiptLines:  fakeGoodsReceiptLines{r.s},
		Containers:         fakeContainers{r.s},
	}
}

// fakeTxRunner adapts a fakeStore to inventory.TxRunner. Run snapshots the
// store, runs fn, and restores the snapshot on error so a failed
// operation never leaves a partial write visible, mirroring a rolled-back
// Postgres transaction. Holding the runner's lock for the whole call body
// also means two "concurrent" goroutines calling Run serialise exactly
// the way two requests blocked on the same row lock would. The mutex
// lives on the runner rather than the store so restore's struct-copy
// never clobbers a lock that is held mid-call.
type fakeTxRunner struct {
	s  *fakeStore
	mu *sync.Mutex
}

func newFakeTxRunner(s *fakeStore) fakeTxRunner {
	return fakeTxRunner{s: s, mu: &sync.Mutex{}}
}

var _ inventory.TxRunner = fakeTxRunner{}

func (t fakeTxRunner) Run(ctx context.Context, fn func(r inventory.Repos) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	snap := t.s.clone()
	if err := fn(fakeRepos{t.s}.asInventory()); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

// ---- StockLevelRepository ----

type fakeStockLevels struct{ s *fakeStore }

var _ repository.StockLevelRepository = fakeStockLevels{}

func (f fakeStockLevels) Get(ctx context.Context, productID, locationID int64) (*entity.StockLevel, error) {
	if sl, ok := f.s.stockLevels[[2]int64{productID, locationID}]; ok {
		cp := *sl
		return &cp, nil
	}
	return entity.NewStockLevel(productID, locationID), nil
}

func (f fakeStockLevels) GetForUpdate(ctx context.Context, productID, locationID int64) (*entity.StockLevel, error) {
	return f.Get(ctx, productID, locationID)
}

func (f fakeStockLevels) Upsert(ctx context.Context, s *entity.StockLevel) error {
	cp := *s
	f.s.stockLevels[[2]int64{s.ProductID, s.LocationID}] = &cp
	return nil
}

func (f fakeStockLevels) List(ctx context.Context, filter repository.StockFilter) ([]*entity.StockLevel, error) {
	var out []*entity.StockLevel
	for _, sl := range f.s.stockLevels {
		if filter.ProductID != nil && sl.ProductID != *filter.ProductID {
			continue
		}
		if filter.LocationID != nil && sl.LocationID != *filter.LocationID {
			continue
		}
		if filter.SiteID != nil {
			loc, ok := f.s.locations[sl.LocationID]
			if !ok || loc.SiteID != *filter.SiteID {
				continue
			}
		}
		cp := *sl
		out = append(out, &cp)
	}
	return out, nil
}

// ---- StockMovementRepository ----

type fakeMovements struct{ s *fakeStore }

var _ repository.StockMovementRepository = fakeMovements{}

func (f fakeMovements) Create(ctx context.Context, m *entity.StockMovement) error {
	if _, exists := f.s.movementsByKey[m.IdempotencyKey]; exists {
		return domain.Conflict("idempotency key already used")
	}
	f.s.nextMovementID++
	m.ID = f.s.nextMovementID
	cp := *m
	f.s.movementsByKey[m.IdempotencyKey] = &cp
	f.s.movementsByID[m.ID] = &cp
	return nil
}

func (f fakeMovements) GetByIdempotencyKey(ctx context.Context, key string) (*entity.StockMovement, error) {
	m, ok := f.s.movementsByKey[key]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f fakeMovements) ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.s.movementsByID {
		if m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ---- LocationRepository ----

type fakeLocations struct{ s *fakeStore }

var _ repository.LocationRepository = fakeLocations{}

func (f fakeLocations) Create(ctx context.Context, l *entity.Location) error {
	f.s.nextLocationID++
	l.ID = f.s.nextLocationID
	cp := *l
	f.s.locations[l.ID] = &cp
	return nil
}

func (f fakeLocations) GetByID(ctx context.Context, id int64) (*entity.Location, error) {
	l, ok := f.s.locations[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (f fakeLocations) List(ctx context.Context, siteID *int64) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range f.s.locations {
		if siteID != nil && l.SiteID != *siteID {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (f fakeLocations) DockForSite(ctx context.Context, siteID int64) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range f.s.locations {
		if l.SiteID == siteID && l.Type == entity.LocationDock {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ---- PurchaseOrderRepository ----

type fakePurchaseOrders struct{ s *fakeStore }

var _ repository.PurchaseOrderRepository = fakePurchaseOrders{}

func (f fakePurchaseOrders) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	f.s.nextPOID++
	po.ID = f.s.nextPOID
	cp := *po
	f.s.purchaseOrders[po.ID] = &cp
	return nil
}

func (f fakePurchaseOrders) GetByID(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	po, ok := f.s.purchaseOrders[id]
	if !ok {
		return nil, nil
	}
	cp := *po
	return &cp, nil
}

func (f fakePurchaseOrders) GetForUpdate(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	return f.GetByID(ctx, id)
}

func (f fakePurchaseOrders) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	if _, ok := f.s.purchaseOrders[po.ID]; !ok {
		return domain.NotFound("purchase order not found")
	}
	cp := *po
	f.s.purchaseOrders[po.ID] = &cp
	return nil
}

func (f fakePurchaseOrders) List(ctx context.Context, siteID *int64) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, po := range f.s.purchaseOrders {
		if siteID != nil && po.SiteID != *siteID {
			continue
		}
		cp := *po
		out = append(out, &cp)
	}
	return out, nil
}

func (f fakePurchaseOrders) SumEngagedOrderedBySiteAndProducts(ctx context.Context, siteID int64, productIDs []int64) (map[int64]decimal.Decimal, error) {
	want := toSet(productIDs)
	out := make(map[int64]decimal.Decimal)
	for _, po := range f.s.purchaseOrders {
		if po.SiteID != siteID || !entity.EngagedPOStatus(po.Status) {
			continue
		}
		for _, l := range f.s.poLines[po.ID] {
			if len(want) > 0 && !want[l.ProductID] {
				continue
			}
			out[l.ProductID] = out[l.ProductID].Add(l.QtyOrdered)
		}
	}
	return out, nil
}

// ---- PurchaseOrderLineRepository ----

type fakePurchaseOrderLines struct{ s *fakeStore }

var _ repository.PurchaseOrderLineRepository = fakePurchaseOrderLines{}

func (f fakePurchaseOrderLines) Create(ctx context.Context, l *entity.PurchaseOrderLine) error {
	cp := *l
	f.s.poLines[l.POID] = append(f.s.poLines[l.POID], &cp)
	return nil
}

func (f fakePurchaseOrderLines) ListByPO(ctx context.Context, poID int64) ([]*entity.PurchaseOrderLine, error) {
	var out []*entity.PurchaseOrderLine
	for _, l := range f.s.poLines[poID] {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (f fakePurchaseOrderLines) HasProduct(ctx context.Context, poID, productID int64) (bool, error) {
	for _, l := range f.s.poLines[poID] {
		if l.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

// ---- GoodsReceiptRepository ----

type fakeGoodsReceipts struct{ s *fakeStore }

var _ repository.GoodsReceiptRepository = fakeGoodsReceipts{}

func (f fakeGoodsReceipts) Create(ctx context.Context, gr *entity.GoodsReceipt) error {
	if gr.IdempotencyKey != nil {
		if _, exists := f.s.goodsReceiptsByKey[*gr.IdempotencyKey]; exists {
			return domain.Conflict("idempotency key already used")
		}
	}
	f.s.nextGRID++
	gr.ID = f.s.nextGRID
	cp := *gr
	if gr.IdempotencyKey != nil {
		f.s.goodsReceiptsByKey[*gr.IdempotencyKey] = &cp
	}
	f.s.goodsReceiptsByID[gr.ID] = &cp
	return nil
}

func (f fakeGoodsReceipts) GetByID(ctx context.Context, id int64) (*entity.GoodsReceipt, error) {
	gr, ok := f.s.goodsReceiptsByID[id]
	if !ok {
		return nil, nil
	}
	cp := *gr
	return &cp, nil
}

func (f fakeGoodsReceipts) GetByIdempotencyKey(ctx context.Context, key string) (*entity.GoodsReceipt, error) {
	gr, ok := f.s.goodsReceiptsByKey[key]
	if !ok {
		return nil, nil
	}
	cp := *gr
	return &cp, nil
}

// ---- GoodsReceiptLineRepository ----

type fakeGoodsReceiptLines struct{ s *fakeStore }

var _ repository.GoodsReceiptLineRepository = fakeGoodsReceiptLines{}

func (f fakeGoodsReceiptLines) Create(ctx context.Context, l *entity.GoodsReceiptLine) error {
	cp := *l
	f.s.grLines[l.ReceiptID] = append(f.s.grLines[l.ReceiptID], &cp)
	return nil
}

func (f fakeGoodsReceiptLines) ListByReceipt(ctx context.Context, receiptID int64) ([]*entity.GoodsReceiptLine, error) {
	var out []*entity.GoodsReceiptLine
	for _, l := range f.s.grLines[receiptID] {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (f fakeGoodsReceiptLines) SumPostedReceivedBySiteAndProducts(ctx context.Context, siteID int64, productIDs []int64) (map[int64]decimal.Decimal, error) {
	want := toSet(productIDs)
	out := make(map[int64]decimal.Decimal)
	for receiptID, lines := range f.s.grLines {
		gr, ok := f.s.goodsReceiptsByID[receiptID]
		if !ok || gr.SiteID != siteID || gr.Status != entity.GRStatusPosted {
			continue
		}
		for _, l := range lines {
			if len(want) > 0 && !want[l.ProductID] {
				continue
			}
			out[l.ProductID] = out[l.ProductID].Add(l.QtyReceived).Sub(l.QtyDamaged)
		}
	}
	return out, nil
}

// ---- ContainerRepository ----

type fakeContainers struct{ s *fakeStore }

var _ repository.ContainerRepository = fakeContainers{}

func (f fakeContainers) Create(ctx context.Context, c *entity.Container) error {
	f.s.nextContainerID++
	c.ID = f.s.nextContainerID
	cp := *c
	f.s.containers[c.ID] = &cp
	return nil
}

func (f fakeContainers) GetByID(ctx context.Context, id int64) (*entity.Container, error) {
	c, ok := f.s.containers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f fakeContainers) GetByContainerNumber(ctx context.Context, number string) (*entity.Container, error) {
	for _, c := range f.s.containers {
		if c.ContainerNumber == number {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f fakeContainers) ListByShipment(ctx context.Context, shipmentID int64) ([]*entity.Container, error) {
	var out []*entity.Container
	for _, c := range f.s.containers {
		if c.ShipmentID == shipmentID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func toSet(ids []int64) map[int64]bool {
	out := make(map[int64]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}

package shipment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomolostboard-sys/moana-logistics/internal/application/shipment"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
)

type fakeStore struct {
	shipments      map[int64]*entity.Shipment
	nextShipmentID int64
	events         []*entity.ShipmentEvent
	containers     map[int64]*entity.Container
	nextContainerID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		shipments:  make(map[int64]*entity.Shipment),
		containers: make(map[int64]*entity.Container),
	}
}

type fakeShipments struct{ s *fakeStore }

func (f fakeShipments) Create(ctx context.Context, s *entity.Shipment) error {
	f.s.nextShipmentID++
	s.ID = f.s.nextShipmentID
	cp := *s
	f.s.shipments[s.ID] = &cp
	return nil
}

func (f fakeShipments) GetByID(ctx context.Context, id int64) (*entity.Shipment, error) {
	s, ok := f.s.shipments[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f fakeShipments) GetForUpdate(ctx context.Context, id int64) (*entity.Shipment, error) {
	return f.GetByID(ctx, id)
}

func (f fakeShipments) Update(ctx context.Context, s *entity.Shipment) error {
	if _, ok := f.s.shipments[s.ID]; !ok {
		return domain.NotFound("shipment not found")
	}
	cp := *s
	f.s.shipments[s.ID] = &cp
	return nil
}

func (f fakeShipments) List(ctx context.Context) ([]*entity.Shipment, error) {
	var out []*entity.Shipment
	for _, s := range f.s.shipments {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

type fakeEvents struct{ s *fakeStore }

func (f fakeEvents) Create(ctx context.Context, e *entity.ShipmentEvent) error {
	cp := *e
	f.s.events = append(f.s.events, &cp)
	return nil
}

func (f fakeEvents) ListByShipment(ctx context.Context, shipmentID int64) ([]*entity.ShipmentEvent, error) {
	var out []*entity.ShipmentEvent
	for _, e := range f.s.events {
		if e.ShipmentID == shipmentID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeContainers struct{ s *fakeStore }

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

type fakeTxRunner struct{ s *fakeStore }

func (t fakeTxRunner) Run(ctx context.Context, fn func(r shipment.Repos) error) error {
	return fn(shipment.Repos{
		Shipments:  fakeShipments{t.s},
		Events:     fakeEvents{t.s},
		Containers: fakeContainers{t.s},
	})
}

func newUseCase() (*shipment.UseCase, *fakeStore) {
	store := newFakeStore()
	return shipment.NewUseCase(fakeTxRunner{store}), store
}

func TestCreate_BooksShipment(t *testing.T) {
	uc, _ := newUseCase()
	eta := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	s, err := uc.Create(context.Background(), shipment.CreateInput{
		Mode: entity.ShipmentSea, Carrier: "Matson", Origin: "Apia", Destination: "Auckland", ETAInitial: eta,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentBooked, s.Status)
	assert.True(t, s.ETACurrent.Equal(eta))
	assert.True(t, s.LastEventAt.Equal(eta))
}

func TestCreate_RejectsInvalidMode(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Create(context.Background(), shipment.CreateInput{
		Mode: "truck", Carrier: "x", Origin: "a", Destination: "b",
	})
	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.KindInvalidArgument, derr.Kind)
}

func TestAppendEvent_RecognisedCodeAdvancesStatus(t *testing.T) {
	uc, _ := newUseCase()
	s, err := uc.Create(context.Background(), shipment.CreateInput{
		Mode: entity.ShipmentSea, Carrier: "Matson", Origin: "Apia", Destination: "Auckland", ETAInitial: time.Now(),
	})
	require.NoError(t, err)

	eventTime := time.Now().Add(time.Hour)
	updated, err := uc.AppendEvent(context.Background(), shipment.AppendEventInput{
		ShipmentID: s.ID, EventCode: "DEPARTED", Location: "Apia port", EventTime: eventTime, Source: "carrier-edi",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentDeparted, updated.Status)
	assert.True(t, updated.LastEventAt.Equal(eventTime))
}

// spec.md §4.4: unknown codes leave status unchanged but the event is
// still appended (append-only audit trail).
func TestAppendEvent_UnrecognisedCodeLeavesStatus(t *testing.T) {
	uc, store := newUseCase()
	s, err := uc.Create(context.Background(), shipment.CreateInput{
		Mode: entity.ShipmentAir, Carrier: "DHL", Origin: "Apia", Destination: "Auckland", ETAInitial: time.Now(),
	})
	require.NoError(t, err)

	updated, err := uc.AppendEvent(context.Background(), shipment.AppendEventInput{
		ShipmentID: s.ID, EventCode: "WEATHER_DELAY", EventTime: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentBooked, updated.Status, "unrecognised code must not move status")
	assert.Len(t, store.events, 1, "the event is still recorded for audit purposes")
}

// TestAppendEvent_CodeMatchingIsCaseInsensitive mirrors original_source's
// carrier feed handling, which upper-cases the event code before lookup.
func TestAppendEvent_CodeMatchingIsCaseInsensitive(t *testing.T) {
	uc, _ := newUseCase()
	s, err := uc.Create(context.Background(), shipment.CreateInput{
		Mode: entity.ShipmentSea, Carrier: "Matson", Origin: "Apia", Destination: "Auckland", ETAInitial: time.Now(),
	})
	require.NoError(t, err)

	updated, err := uc.AppendEvent(context.Background(), shipment.AppendEventInput{
		ShipmentID: s.ID, EventCode: "departed", Location: "Apia port", EventTime: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentDeparted, updated.Status, "lowercase codes must still be recognised")
}

func TestAppendEvent_RevisedETAUpdatesETACurrent(t *testing.T) {
	uc, _ := newUseCase()
	s, err := uc.Create(context.Background(), shipment.CreateInput{
		Mode: entity.ShipmentSea, Carrier: "Matson", Origin: "Apia", Destination: "Auckland", ETAInitial: time.Now(),
	})
	require.NoError(t, err)

	revised := time.Now().Add(72 * time.Hour)
	updated, err := uc.AppendEvent(context.Background(), shipment.AppendEventInput{
		ShipmentID: s.ID, EventCode: "DELAYED_ETA_UPDATE", EventTime: time.Now(), RevisedETA: &revised,
	})
	require.NoError(t, err)
	assert.True(t, updated.ETACurrent.Equal(revised))
	assert.Equal(t, entity.ShipmentBooked, updated.Status)
}

func TestAppendEvent_UnknownShipmentRejected(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.AppendEvent(context.Background(), shipment.AppendEventInput{
		ShipmentID: 404, EventCode: "DEPARTED", EventTime: time.Now(),
	})
	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.KindNotFound, derr.Kind)
}

func TestRegisterContainer_BooksInTransit(t *testing.T) {
	uc, _ := newUseCase()
	s, err := uc.Create(context.Background(), shipment.CreateInput{
		Mode: entity.ShipmentSea, Carrier: "Matson", Origin: "Apia", Destination: "Auckland", ETAInitial: time.Now(),
	})
	require.NoError(t, err)

	c, err := uc.RegisterContainer(context.Background(), shipment.RegisterContainerInput{
		ShipmentID: s.ID, ContainerNumber: "MATU1234567",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ContainerInTransit, c.Status)
}

func TestRegisterContainer_RequiresContainerNumber(t *testing.T) {
	uc, _ := newUseCase()
	s, err := uc.Create(context.Background(), shipment.CreateInput{
		Mode: entity.ShipmentSea, Carrier: "Matson", Origin: "Apia", Destination: "Auckland", ETAInitial: time.Now(),
	})
	require.NoError(t, err)

	_, err = uc.RegisterContainer(context.Background(), shipment.RegisterContainerInput{ShipmentID: s.ID})
	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.KindInvalidArgument, derr.Kind)
}

package repository

import (
	"context"

	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
)

// ShipmentRepository is the persistence port for shipments.
type ShipmentRepository interface {
	Create(ctx context.Context, s *entity.Shipment) error
	GetByID(ctx context.Context, id int64) (*entity.Shipment, error)
	// GetForUpdate locks the shipment row; event appends must serialise against
	// each other the same way stock rows do.
	GetForUpdate(ctx context.Context, id int64) (*entity.Shipment, error)
	Update(ctx context.Context, s *entity.Shipment) error
	List(ctx context.Context) ([]*entity.Shipment, error)
}

// ShipmentEventRepository is the persistence port for shipment tracking events.
type ShipmentEventRepository interface {
	Create(ctx context.Context, e *entity.ShipmentEvent) error
	ListByShipment(ctx context.Context, shipmentID int64) ([]*entity.ShipmentEvent, error)
}

// ContainerRepository is the persistence port for the containers carried by
// a shipment. A goods receipt may cite one by container_number (spec.md §6).
type ContainerRepository interface {
	Create(ctx context.Context, c *entity.Container) error
	GetByID(ctx context.Context, id int64) (*entity.Container, error)
	GetByContainerNumber(ctx context.Context, number string) (*entity.Container, error)
	ListByShipment(ctx context.Context, shipmentID int64) ([]*entity.Container, error)
}

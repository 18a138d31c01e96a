package postgres

import (
	"context"

	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/repository"
)

var _ repository.ShipmentEventRepository = (*ShipmentEventRepo)(nil)

// ShipmentEventRepo is the Postgres adapter for shipment tracking events,
// an append-only log (spec.md §4.4).
type ShipmentEventRepo struct {
	q Querier
}

// NewShipmentEventRepository builds the adapter.
func NewShipmentEventRepository(q Querier) *ShipmentEventRepo {
	return &ShipmentEventRepo{q: q}
}

// Create appends a ShipmentEvent.
func (r *ShipmentEventRepo) Create(ctx context.Context, e *entity.ShipmentEvent) error {
	const query = `
		INSERT INTO shipment_events (shipment_id, event_code, location, event_time, source, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, e.ShipmentID, e.EventCode, e.Location, e.EventTime, e.Source, e.Description).Scan(&e.ID)
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

// ListByShipment returns every event of a shipment, oldest first.
func (r *ShipmentEventRepo) ListByShipment(ctx context.Context, shipmentID int64) ([]*entity.ShipmentEvent, error) {
	const query = `
		SELECT id, shipment_id, event_code, location, event_time, source, description
		FROM shipment_events WHERE shipment_id = $1 ORDER BY event_time, id`
	rows, err := r.q.Query(ctx, query, shipmentID)
	if err != nil {
		return nil, mapWriteError(err)
	}
	defer rows.Close()

	var out []*entity.ShipmentEvent
	for rows.Next() {
		var e entity.ShipmentEvent
		if err := rows.Scan(&e.ID, &e.ShipmentID, &e.EventCode, &e.Location, &e.EventTime, &e.Source, &e.Description); err != nil {
			return nil, mapWriteError(err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

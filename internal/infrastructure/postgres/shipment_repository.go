package postgres

import (
	"github.com/jackc/pgx/v5"
	"context"
	"errors"

	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo is the Postgres adapter for shipments.
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository builds the adapter.
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

const selectShipment = `
	SELECT id, mode, carrier, tracking_ref, origin, destination, status, eta_initial, eta_current, last_event_at
	FROM shipments`

func scanShipment(row pgx.Row) (*entity.Shipment, error) {
	var s entity.Shipment
	err := row.Scan(&s.ID, &s.Mode, &s.Carrier, &s.TrackingRef, &s.Origin, &s.Destination, &s.Status, &s.ETAInitial, &s.ETACurrent, &s.LastEventAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapWriteError(err)
	}
	return &s, nil
}

// Create inserts a Shipment in status booked.
func (r *ShipmentRepo) Create(ctx context.Context, s *entity.Shipment) error {
	const query = `
		INSERT INTO shipments (mode, carrier, tracking_ref, origin, destination, status, eta_initial, eta_current, last_event_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, s.Mode, s.Carrier, s.TrackingRef, s.Origin, s.Destination, s.Status, s.ETAInitial, s.ETACurrent, s.LastEventAt).Scan(&s.ID)
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

// GetByID reads a Shipment by id.
func (r *ShipmentRepo) GetByID(ctx context.Context, id int64) (*entity.Shipment, error) {
	return scanShipment(r.q.QueryRow(ctx, selectShipment+" WHERE id = $1", id))
}

// GetForUpdate locks the shipment row; event appends serialise against
// each other the same way stock rows do.
func (r *ShipmentRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Shipment, error) {
	return scanShipment(r.q.QueryRow(ctx, selectShipment+" WHERE id = $1 FOR UPDATE", id))
}

// Update persists status/eta/last_event_at.
func (r *ShipmentRepo) Update(ctx context.Context, s *entity.Shipment) error {
	const query = `
		UPDATE shipments
		SET status = $2, eta_current = $3, last_event_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, s.ID, s.Status, s.ETACurrent, s.LastEventAt)
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

// List returns every shipment.
func (r *ShipmentRepo) List(ctx context.Context) ([]*entity.Shipment, error) {
	rows, err := r.q.Query(ctx, selectShipment+" ORDER BY id")
	if err != nil {
		return nil, mapWriteError(err)
	}
	defer rows.Close()

	var out []*entity.Shipment
	for rows.Next() {
		var s entity.Shipment
		if err := rows.Scan(&s.ID, &s.Mode, &s.Carrier, &s.TrackingRef, &s.Origin, &s.Destination, &s.Status, &s.ETAInitial, &s.ETACurrent, &s.LastEventAt); err != nil {
			return nil, mapWriteError(err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

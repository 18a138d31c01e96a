package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/repository"
)

var _ repository.ContainerRepository = (*ContainerRepo)(nil)

// ContainerRepo is the Postgres adapter for the containers carried by a
// shipment.
type ContainerRepo struct {
	q Querier
}

// NewContainerRepository builds the adapter.
func NewContainerRepository(q Querier) *ContainerRepo {
	return &ContainerRepo{q: q}
}

const selectContainer = `
	SELECT id, shipment_id, container_number, seal_number, type, status
	FROM containers`

func scanContainer(row pgx.Row) (*entity.Container, error) {
	var c entity.Container
	err := row.Scan(&c.ID, &c.ShipmentID, &c.ContainerNumber, &c.SealNumber, &c.Type, &c.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapWriteError(err)
	}
	return &c, nil
}

// Create inserts a Container.
func (r *ContainerRepo) Create(ctx context.Context, c *entity.Container) error {
	const query = `
		INSERT INTO containers (shipment_id, container_number, seal_number, type, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, c.ShipmentID, c.ContainerNumber, c.SealNumber, c.Type, c.Status).Scan(&c.ID)
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

// GetByID reads a Container by id.
func (r *ContainerRepo) GetByID(ctx context.Context, id int64) (*entity.Container, error) {
	return scanContainer(r.q.QueryRow(ctx, selectContainer+" WHERE id = $1", id))
}

// GetByContainerNumber reads a Container by its unique number, the
// identifier a goods receipt actually cites at intake.
func (r *ContainerRepo) GetByContainerNumber(ctx context.Context, number string) (*entity.Container, error) {
	return scanContainer(r.q.QueryRow(ctx, selectContainer+" WHERE container_number = $1", number))
}

// ListByShipment returns every container booked on a shipment.
func (r *ContainerRepo) ListByShipment(ctx context.Context, shipmentID int64) ([]*entity.Container, error) {
	rows, err := r.q.Query(ctx, selectContainer+" WHERE shipment_id = $1 ORDER BY id", shipmentID)
	if err != nil {
		return nil, mapWriteError(err)
	}
	defer rows.Close()

	var out []*entity.Container
	for rows.Next() {
		var c entity.Container
		if err := rows.Scan(&c.ID, &c.ShipmentID, &c.ContainerNumber, &c.SealNumber, &c.Type, &c.Status); err != nil {
			return nil, mapWriteError(err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

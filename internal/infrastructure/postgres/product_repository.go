package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo is the Postgres adapter for products.
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the adapter.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create inserts a Product.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	const query = `
		INSERT INTO products (sku, name, unit_of_measure, barcode, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, p.SKU, p.Name, p.UnitOfMeasure, p.Barcode, p.Active).Scan(&p.ID); err != nil {
		return mapWriteError(err)
	}
	return nil
}

// GetByID reads a Product by id.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	const query = `SELECT id, sku, name, unit_of_measure, barcode, active FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(&p.ID, &p.SKU, &p.Name, &p.UnitOfMeasure, &p.Barcode, &p.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapWriteError(err)
	}
	return &p, nil
}

// List returns every product.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	const query = `SELECT id, sku, name, unit_of_measure, barcode, active FROM products ORDER BY id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, mapWriteError(err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.UnitOfMeasure, &p.Barcode, &p.Active); err != nil {
			return nil, mapWriteError(err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

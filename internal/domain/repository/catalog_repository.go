package repository

import (
	"context"

	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
)

// SiteRepository is the persistence port for sites.
type SiteRepository interface {
	Create(ctx context.Context, s *entity.Site) error
	GetByID(ctx context.Context, id int64) (*entity.Site, error)
	List(ctx context.Context) ([]*entity.Site, error)
}

// LocationRepository is the persistence port for locations.
type LocationRepository interface {
	Create(ctx context.Context, l *entity.Location) error
	GetByID(ctx context.Context, id int64) (*entity.Location, error)
	List(ctx context.Context, siteID *int64) ([]*entity.Location, error)
	// DockForSite returns the candidate dock locations for a site, used by
	// the rebuilder to pick the inbound dock (spec.md §4.2 step 1).
	DockForSite(ctx context.Context, siteID int64) ([]*entity.Location, error)
}

// ProductRepository is the persistence port for products.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
}

// SupplierRepository is the persistence port for suppliers.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id int64) (*entity.Supplier, error)
	List(ctx context.Context) ([]*entity.Supplier, error)
}

// ActorRepository is the persistence port for actors.
type ActorRepository interface {
	Create(ctx context.Context, a *entity.Actor) error
	GetByID(ctx context.Context, id int64) (*entity.Actor, error)
	List(ctx context.Context, siteID *int64) ([]*entity.Actor, error)
}

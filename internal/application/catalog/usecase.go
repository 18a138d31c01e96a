// Package catalog implements the ambient CRUD usecases the mutation
// engine's foreign keys point at: sites, locations, products, suppliers
// and actors (SPEC_FULL.md §4.6a). None of these mutate StockLevel or
// StockMovement; they exist so the engine and gateway have real rows to
// reference, the way the teacher's usecase package provides
// Company/Warehouse/Product CRUD around its own inventory core.
package catalog

import (
	"context"

	"github.com/tomolostboard-sys/moana-logistics/internal/domain"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/repository"
)

// UseCase wraps the catalog repository ports directly: these
// operations are simple create/list, none require a transaction that
// spans more than one store call, so there is no TxRunner here.
type UseCase struct {
	Sites      repository.SiteRepository
	Locations  repository.LocationRepository
	Products   repository.ProductRepository
	Suppliers  repository.SupplierRepository
	Actors     repository.ActorRepository
}

// NewUseCase builds the catalog usecase over its repository ports.
func NewUseCase(sites repository.SiteRepository, locations repository.LocationRepository, products repository.ProductRepository, suppliers repository.SupplierRepository, actors repository.ActorRepository) *UseCase {
	return &UseCase{Sites: sites, Locations: locations, Products: products, Suppliers: suppliers, Actors: actors}
}

// CreateSite inserts a Site.
func (u *UseCase) CreateSite(ctx context.Context, name, timezone string) (*entity.Site, error) {
	if name == "" {
		return nil, domain.InvalidArgument("name is required")
	}
	s := &entity.Site{Name: name, Timezone: timezone, Active: true}
	if err := u.Sites.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ListSites lists every site.
func (u *UseCase) ListSites(ctx context.Context) ([]*entity.Site, error) {
	return u.Sites.List(ctx)
}

// CreateLocation inserts a Location, validating the type enum
// (defense in depth alongside the store's check constraint).
func (u *UseCase) CreateLocation(ctx context.Context, siteID int64, name string, locType entity.LocationType) (*entity.Location, error) {
	if name == "" {
		return nil, domain.InvalidArgument("name is required")
	}
	if !entity.ValidLocationType(locType) {
		return nil, domain.InvalidArgument("invalid location type")
	}
	l := &entity.Location{SiteID: siteID, Name: name, Type: locType}
	if err := u.Locations.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// ListLocations lists locations, optionally restricted to one site.
func (u *UseCase) ListLocations(ctx context.Context, siteID *int64) ([]*entity.Location, error) {
	return u.Locations.List(ctx, siteID)
}

// CreateProduct inserts a Product. SKU/barcode uniqueness is enforced
// by the store's unique constraints; a violation surfaces as
// domain.Conflict from the repository adapter.
func (u *UseCase) CreateProduct(ctx context.Context, sku, name, uom string, barcode *string) (*entity.Product, error) {
	if sku == "" || name == "" || uom == "" {
		return nil, domain.InvalidArgument("sku, name and unit_of_measure are required")
	}
	p := &entity.Product{SKU: sku, Name: name, UnitOfMeasure: uom, Barcode: barcode, Active: true}
	if err := u.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListProducts lists every product.
func (u *UseCase) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return u.Products.List(ctx)
}

// CreateSupplier inserts a Supplier.
func (u *UseCase) CreateSupplier(ctx context.Context, name, country string, leadTimeDays, reliabilityScore int) (*entity.Supplier, error) {
	if name == "" {
		return nil, domain.InvalidArgument("name is required")
	}
	if leadTimeDays < 0 {
		return nil, domain.InvalidArgument("lead_time_days must be >= 0")
	}
	if reliabilityScore < 0 || reliabilityScore > 100 {
		return nil, domain.InvalidArgument("reliability_score must be in [0,100]")
	}
	s := &entity.Supplier{Name: name, Country: country, LeadTimeDays: leadTimeDays, ReliabilityScore: reliabilityScore}
	if err := u.Suppliers.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ListSuppliers lists every supplier.
func (u *UseCase) ListSuppliers(ctx context.Context) ([]*entity.Supplier, error) {
	return u.Suppliers.List(ctx)
}

// CreateActor inserts an Actor.
func (u *UseCase) CreateActor(ctx context.Context, siteID int64, displayName string, role entity.Role) (*entity.Actor, error) {
	if displayName == "" {
		return nil, domain.InvalidArgument("display_name is required")
	}
	if !entity.ValidRole(role) {
		return nil, domain.InvalidArgument("invalid role")
	}
	a := &entity.Actor{SiteID: siteID, DisplayName: displayName, Role: role}
	if err := u.Actors.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListActors lists actors, optionally restricted to one site.
func (u *UseCase) ListActors(ctx context.Context, siteID *int64) ([]*entity.Actor, error) {
	return u.Actors.List(ctx, siteID)
}

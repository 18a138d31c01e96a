package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tomolostboard-sys/moana-logistics/internal/application/catalog"
	"github.com/tomolostboard-sys/moana-logistics/internal/application/dto"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
)

// CatalogHandler serves sites, locations, products, suppliers and actors.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler builds the handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func querySiteID(c *fiber.Ctx) *int64 {
	raw := c.Query("site_id")
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

// CreateProduct handles POST /v1/products.
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	p, err := h.uc.CreateProduct(c.Context(), in.SKU, in.Name, in.UnitOfMeasure, in.Barcode)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: p.ID})
}

// ListProducts handles GET /v1/products.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.uc.ListProducts(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductResponse{ID: p.ID, SKU: p.SKU, Name: p.Name, UnitOfMeasure: p.UnitOfMeasure, Barcode: p.Barcode, Active: p.Active})
	}
	return c.JSON(out)
}

// CreateSupplier handles POST /v1/suppliers.
func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	s, err := h.uc.CreateSupplier(c.Context(), in.Name, in.Country, in.LeadTimeDays, in.ReliabilityScore)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: s.ID})
}

// ListSuppliers handles GET /v1/suppliers.
func (h *CatalogHandler) ListSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.uc.ListSuppliers(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, dto.SupplierResponse{ID: s.ID, Name: s.Name, Country: s.Country, LeadTimeDays: s.LeadTimeDays, ReliabilityScore: s.ReliabilityScore})
	}
	return c.JSON(out)
}

// ListLocations handles GET /v1/locations.
func (h *CatalogHandler) ListLocations(c *fiber.Ctx) error {
	locations, err := h.uc.ListLocations(c.Context(), querySiteID(c))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.LocationResponse, 0, len(locations))
	for _, l := range locations {
		out = append(out, dto.LocationResponse{ID: l.ID, SiteID: l.SiteID, Name: l.Name, Type: string(l.Type)})
	}
	return c.JSON(out)
}

// CreateLocation handles POST /v1/locations.
func (h *CatalogHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	l, err := h.uc.CreateLocation(c.Context(), in.SiteID, in.Name, entity.LocationType(in.Type))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: l.ID})
}

// CreateSite handles POST /v1/sites.
func (h *CatalogHandler) CreateSite(c *fiber.Ctx) error {
	var in dto.CreateSiteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	s, err := h.uc.CreateSite(c.Context(), in.Name, in.Timezone)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: s.ID})
}

// ListSites handles GET /v1/sites.
func (h *CatalogHandler) ListSites(c *fiber.Ctx) error {
	sites, err := h.uc.ListSites(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.SiteResponse, 0, len(sites))
	for _, s := range sites {
		out = append(out, dto.SiteResponse{ID: s.ID, Name: s.Name, Timezone: s.Timezone, Active: s.Active})
	}
	return c.JSON(out)
}

// CreateActor handles POST /v1/actors.
func (h *CatalogHandler) CreateActor(c *fiber.Ctx) error {
	var in dto.CreateActorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	a, err := h.uc.CreateActor(c.Context(), in.SiteID, in.DisplayName, entity.Role(in.Role))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: a.ID})
}

// ListActors handles GET /v1/actors.
func (h *CatalogHandler) ListActors(c *fiber.Ctx) error {
	actors, err := h.uc.ListActors(c.Context(), querySiteID(c))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ActorResponse, 0, len(actors))
	for _, a := range actors {
		out = append(out, dto.ActorResponse{ID: a.ID, SiteID: a.SiteID, DisplayName: a.DisplayName, Role: string(a.Role)})
	}
	return c.JSON(out)
}

package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tomolostboard-sys/moana-logistics/internal/application/dto"
	"github.com/tomolostboard-sys/moana-logistics/internal/application/inventory"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/repository"
)

// StockHandler serves stock-level reads and the idempotent stock
// mutation endpoints (spec.md §4.1, §4.5).
type StockHandler struct {
	levels repository.StockLevelRepository
	engine *inventory.Engine
}

// NewStockHandler builds the handler.
func NewStockHandler(levels repository.StockLevelRepository, engine *inventory.Engine) *StockHandler {
	return &StockHandler{levels: levels, engine: engine}
}

func queryInt64(c *fiber.Ctx, name string) *int64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// List handles GET /v1/stock: a read-through query that takes no row
// locks (spec.md §4.5 "Listing endpoints ... do not acquire row locks").
func (h *StockHandler) List(c *fiber.Ctx) error {
	filter := repository.StockFilter{
		SiteID:     queryInt64(c, "site_id"),
		LocationID: queryInt64(c, "location_id"),
		ProductID:  queryInt64(c, "product_id"),
	}
	levels, err := h.levels.List(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.StockLevelResponse, 0, len(levels))
	for _, sl := range levels {
		out = append(out, dto.StockLevelResponse{
			ProductID:   sl.ProductID,
			LocationID:  sl.LocationID,
			QtyOnHand:   sl.QtyOnHand,
			QtyReserved: sl.QtyReserved,
			QtyOnOrder:  sl.QtyOnOrder,
			Available:   sl.Available(),
			UpdatedAt:   sl.UpdatedAt,
		})
	}
	return c.JSON(out)
}

func idempotencyKey(c *fiber.Ctx) (string, error) {
	key := c.Get("Idempotency-Key")
	if key == "" {
		return "", domain.InvalidArgument("Idempotency-Key header is required")
	}
	return key, nil
}

func happenedAt(t *time.Time) time.Time {
	if t != nil {
		return *t
	}
	return time.Now().UTC()
}

func movementJSON(c *fiber.Ctx, res inventory.MovementResult) error {
	return c.Status(fiber.StatusOK).JSON(dto.MovementResponse{ID: res.ID, IdempotencyKey: res.IdempotencyKey})
}

// Transfer handles POST /v1/stock-movements/transfer.
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	key, err := idempotencyKey(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	res, err := h.engine.Transfer(c.Context(), inventory.TransferInput{
		ProductID:      in.ProductID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		HappenedAt:     happenedAt(in.HappenedAt),
		Reason:         in.Reason,
		ActorID:        GetActorID(c),
		IdempotencyKey: key,
	})
	if err != nil {
		return writeError(c, err)
	}
	return movementJSON(c, res)
}

// Reserve handles POST /v1/stock-movements/reserve.
func (h *StockHandler) Reserve(c *fiber.Ctx) error {
	key, err := idempotencyKey(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ReserveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	res, err := h.engine.Reserve(c.Context(), inventory.ReserveInput{
		ProductID:      in.ProductID,
		LocationID:     in.LocationID,
		Quantity:       in.Quantity,
		HappenedAt:     happenedAt(in.HappenedAt),
		Reason:         in.Reason,
		ActorID:        GetActorID(c),
		IdempotencyKey: key,
	})
	if err != nil {
		return writeError(c, err)
	}
	return movementJSON(c, res)
}

// Unreserve handles POST /v1/stock-movements/unreserve.
func (h *StockHandler) Unreserve(c *fiber.Ctx) error {
	key, err := idempotencyKey(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ReserveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	res, err := h.engine.Unreserve(c.Context(), inventory.UnreserveInput{
		ProductID:      in.ProductID,
		LocationID:     in.LocationID,
		Quantity:       in.Quantity,
		HappenedAt:     happenedAt(in.HappenedAt),
		Reason:         in.Reason,
		ActorID:        GetActorID(c),
		IdempotencyKey: key,
	})
	if err != nil {
		return writeError(c, err)
	}
	return movementJSON(c, res)
}

// Issue handles POST /v1/stock-movements/issue.
func (h *StockHandler) Issue(c *fiber.Ctx) error {
	key, err := idempotencyKey(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.IssueRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	res, err := h.engine.Issue(c.Context(), inventory.IssueInput{
		ProductID:      in.ProductID,
		LocationID:     in.LocationID,
		Quantity:       in.Quantity,
		HappenedAt:     happenedAt(in.HappenedAt),
		Reason:         in.Reason,
		ActorID:        GetActorID(c),
		IdempotencyKey: key,
	})
	if err != nil {
		return writeError(c, err)
	}
	return movementJSON(c, res)
}

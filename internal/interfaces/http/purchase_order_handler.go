package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tomolostboard-sys/moana-logistics/internal/application/dto"
	"github.com/tomolostboard-sys/moana-logistics/internal/application/inventory"
	"github.com/tomolostboard-sys/moana-logistics/internal/application/purchaseorder"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/repository"
)

// PurchaseOrderHandler serves purchase-order lifecycle endpoints and the
// compound goods-receipt posting endpoint.
type PurchaseOrderHandler struct {
	uc      *purchaseorder.UseCase
	engine  *inventory.Engine
	pos     repository.PurchaseOrderRepository
}

// NewPurchaseOrderHandler builds the handler.
func NewPurchaseOrderHandler(uc *purchaseorder.UseCase, engine *inventory.Engine, pos repository.PurchaseOrderRepository) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc, engine: engine, pos: pos}
}

func poToDTO(po *entity.PurchaseOrder) dto.PurchaseOrderResponse {
	return dto.PurchaseOrderResponse{
		ID: po.ID, PONumber: po.PONumber, SupplierID: po.SupplierID, SiteID: po.SiteID,
		Status: string(po.Status), ExpectedETA: po.ExpectedETA, ShipmentID: po.ShipmentID,
		CreatedAt: po.CreatedAt, ApprovedAt: po.ApprovedAt, ApprovedBy: po.ApprovedBy,
	}
}

// Create handles POST /v1/purchase-orders.
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	lines := make([]purchaseorder.LineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, purchaseorder.LineInput{ProductID: l.ProductID, QtyOrdered: l.QtyOrdered, UnitCost: l.UnitCost})
	}
	po, err := h.uc.Create(c.Context(), purchaseorder.CreateInput{
		PONumber: in.PONumber, SupplierID: in.SupplierID, SiteID: in.SiteID, ExpectedETA: in.ExpectedETA, Lines: lines,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: po.ID})
}

// List handles GET /v1/purchase-orders.
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	pos, err := h.pos.List(c.Context(), queryInt64(c, "site_id"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(pos))
	for _, po := range pos {
		out = append(out, poToDTO(po))
	}
	return c.JSON(out)
}

// Transition handles POST /v1/purchase-orders/{id}/transition.
func (h *PurchaseOrderHandler) Transition(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return writeError(c, domain.InvalidArgument("id must be an integer"))
	}
	var in dto.TransitionPurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	po, err := h.uc.Transition(c.Context(), id, entity.POStatus(in.To), GetActorID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(poToDTO(po))
}

// ReceiveGoods handles POST /v1/goods-receipts.
func (h *PurchaseOrderHandler) ReceiveGoods(c *fiber.Ctx) error {
	var in dto.CreateGoodsReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	lines := make([]inventory.ReceiveGoodsLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, inventory.ReceiveGoodsLine{ProductID: l.ProductID, QtyReceived: l.QtyReceived, QtyDamaged: l.QtyDamaged})
	}
	var key *string
	if raw := c.Get("Idempotency-Key"); raw != "" {
		key = &raw
	}
	res, err := h.engine.ReceiveGoods(c.Context(), inventory.ReceiveGoodsInput{
		POID: in.POID, ToLocationID: in.ToLocationID, ReceivedAt: in.ReceivedAt,
		ActorID: GetActorID(c), IdempotencyKey: key, ContainerNumber: in.ContainerNumber, Lines: lines,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.GoodsReceiptResponse{ID: res.ID, POID: res.POID, ToLocationID: res.ToLocationID})
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tomolostboard-sys/moana-logistics/internal/application/dto"
	"github.com/tomolostboard-sys/moana-logistics/internal/application/shipment"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/repository"
)

// ShipmentHandler serves shipment tracking endpoints.
type ShipmentHandler struct {
	uc        *shipment.UseCase
	shipments repository.ShipmentRepository
}

// NewShipmentHandler builds the handler.
func NewShipmentHandler(uc *shipment.UseCase, shipments repository.ShipmentRepository) *ShipmentHandler {
	return &ShipmentHandler{uc: uc, shipments: shipments}
}

func shipmentToDTO(s *entity.Shipment) dto.ShipmentResponse {
	return dto.ShipmentResponse{
		ID: s.ID, Mode: string(s.Mode), Carrier: s.Carrier, TrackingRef: s.TrackingRef,
		Origin: s.Origin, Destination: s.Destination, Status: string(s.Status),
		ETAInitial: s.ETAInitial, ETACurrent: s.ETACurrent, LastEventAt: s.LastEventAt,
	}
}

// Create handles POST /v1/shipments.
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	s, err := h.uc.Create(c.Context(), shipment.CreateInput{
		Mode: entity.ShipmentMode(in.Mode), Carrier: in.Carrier, TrackingRef: in.TrackingRef,
		Origin: in.Origin, Destination: in.Destination, ETAInitial: in.ETAInitial,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: s.ID})
}

// List handles GET /v1/shipments.
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	shipments, err := h.shipments.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ShipmentResponse, 0, len(shipments))
	for _, s := range shipments {
		out = append(out, shipmentToDTO(s))
	}
	return c.JSON(out)
}

// AppendEvent handles POST /v1/shipments/{id}/events.
func (h *ShipmentHandler) AppendEvent(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return writeError(c, domain.InvalidArgument("id must be an integer"))
	}
	var in dto.AppendShipmentEventRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	_, err := h.uc.AppendEvent(c.Context(), shipment.AppendEventInput{
		ShipmentID: id, EventCode: in.EventCode, Location: in.Location, EventTime: in.EventTime,
		Source: in.Source, Description: in.Description, RevisedETA: in.RevisedETA,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OKResponse{OK: true})
}

// RegisterContainer handles POST /v1/shipments/{id}/containers.
func (h *ShipmentHandler) RegisterContainer(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return writeError(c, domain.InvalidArgument("id must be an integer"))
	}
	var in dto.RegisterContainerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	ct, err := h.uc.RegisterContainer(c.Context(), shipment.RegisterContainerInput{
		ShipmentID: id, ContainerNumber: in.ContainerNumber, SealNumber: in.SealNumber, Type: in.Type,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: ct.ID})
}

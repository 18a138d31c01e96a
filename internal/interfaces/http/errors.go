package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tomolostboard-sys/moana-logistics/internal/application/dto"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain"
)

// writeError is the single translator from a domain.Error kind to an HTTP
// status (spec.md §7): InvalidArgument -> 400, NotFound -> 404,
// Conflict -> 409, PreconditionFailed -> 400 with a structured reason,
// Integrity/unexpected -> 500. Every handler funnels its usecase error
// through here instead of repeating the ladder itself.
func writeError(c *fiber.Ctx, err error) error {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "INTERNAL",
			Message: err.Error(),
		})
	}

	switch derr.Kind {
	case domain.KindInvalidArgument:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ARGUMENT", Message: derr.Message})
	case domain.KindNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: derr.Message})
	case domain.KindConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: derr.Message})
	case domain.KindPreconditionFailed:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "PRECONDITION_FAILED", Message: derr.Message, Reason: derr.Reason})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: derr.Message})
	}
}

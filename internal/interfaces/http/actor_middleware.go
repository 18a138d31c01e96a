package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tomolostboard-sys/moana-logistics/internal/application/dto"
)

// LocalActorID is the c.Locals key ActorMiddleware stores the caller's
// actor id under.
const LocalActorID = "actor_id"

// ActorMiddleware extracts the caller-identified actor id from the
// X-Actor-Id header. Authentication is an explicit Non-goal (spec.md §1:
// "the core trusts an already-identified actor id") — this middleware
// does not verify the caller, it only parses what the caller asserts, the
// same trust boundary the teacher's AuthMiddleware would sit in front of
// if a verifying layer existed upstream of this service.
func ActorMiddleware(c *fiber.Ctx) error {
	raw := c.Get("X-Actor-Id")
	if raw == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "MISSING_ACTOR", Message: "X-Actor-Id header is required",
		})
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "INVALID_ACTOR", Message: "X-Actor-Id must be a positive integer",
		})
	}
	c.Locals(LocalActorID, id)
	return c.Next()
}

// GetActorID reads the actor id ActorMiddleware stored.
func GetActorID(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalActorID).(int64)
	return v
}

package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// paramInt64 parses a path parameter as an int64.
func paramInt64(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

package server

import (
	"strconv"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

const maxPageSize = 100

// parsePagination reads limit/offset query parameters. A missing or
// non-positive limit means unbounded; an explicit limit is clamped to
// maxPageSize. Offset is clamped to >= 0.
func parsePagination(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 0)
	if limit < 0 {
		limit = 0
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// parseID reads a positive integer path parameter. On failure it writes a
// validation error response and returns ok=false; the handler should return nil.
func parseID(c *fiber.Ctx, param string) (uint, bool) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, false
	}
	return uint(id), true
}

// currentUserID returns the authenticated user's ID set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// respondServiceError maps a service-layer error to its HTTP response.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}

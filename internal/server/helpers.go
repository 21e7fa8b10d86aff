package server

import (
	"context"
	"strconv"

	"smash/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// parseID parses a positive integer route parameter. On failure it writes
// a 400 response and returns handled=true so callers can bail out.
func parseID(c *fiber.Ctx, param string) (uint, bool) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("invalid "+humanizeParam(param)))
		return 0, true
	}
	return uint(id), false
}

func humanizeParam(param string) string {
	switch param {
	case "id":
		return "ID"
	default:
		return param
	}
}

// parsePagination reads limit/offset query params with sane bounds.
func parsePagination(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", defaultPageSize)
	if limit < 1 {
		limit = defaultPageSize
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

// errResponse writes the error with the HTTP status its code maps to.
func errResponse(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}

// currentUserID returns the authenticated user ID set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// isStaff reports whether the user has the staff flag, using the cached
// user lookup.
func (s *Server) isStaff(c *fiber.Ctx, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		return false, err
	}
	return user.IsStaff, nil
}

// isStaffByUserID adapts the staff check for services that only carry a
// context. Lookup failures read as non-staff.
func (s *Server) isStaffByUserID(ctx context.Context, userID uint) bool {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false
	}
	return user.IsStaff
}

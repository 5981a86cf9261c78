package http

import (
	"errors"
	"strconv"

	"triage_server/adapter/out/persistence"
	"triage_server/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserID safely extracts user_id from fiber context.
// Returns an error if not authenticated.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDVal := c.Locals("user_id")
	if userIDVal == nil {
		return uuid.Nil, apperr.Unauthorized("")
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, apperr.Unauthorized("")
	}
	return userID, nil
}

// ParseIDParam parses the :id path parameter as int64.
func ParseIDParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.InvalidInput("id", "must be a positive integer")
	}
	return id, nil
}

// mapRepoError translates persistence sentinels into API errors.
func mapRepoError(err error, resource string) error {
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		return apperr.NotFound(resource)
	case errors.Is(err, persistence.ErrDuplicate):
		return apperr.AlreadyExists(resource)
	default:
		return apperr.DatabaseError(resource, err)
	}
}

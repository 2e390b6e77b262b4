package handlers

import (
	"errors"
	"strconv"

	"ecommerce/internal/models"
	"ecommerce/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps the error taxonomy to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrValidationFailed), errors.Is(err, models.ErrUsernameTaken):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrAuthenticationFailed), errors.Is(err, models.ErrTokenInvalid):
		return fiber.StatusUnauthorized
	case errors.Is(err, models.ErrConflictOnMutation):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError sends err with its mapped status. Internal failures are logged
// and answered with a generic message.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
		return c.Status(status).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"message": err.Error(),
	})
}

func badBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

func validationFailed(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  models.ValidationErrors(err),
	})
}

// paramID parses a positive integer route parameter.
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func invalidID(c *fiber.Ctx, name string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid " + name,
	})
}

// Guards are the middleware chains in front of protected routes.
type Guards struct {
	User  []fiber.Handler // any authenticated caller
	Admin []fiber.Handler
}

// guarded puts the guards in front of h without aliasing the guards slice.
func guarded(guards []fiber.Handler, h fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(guards)+1)
	return append(append(out, guards...), h)
}

func uintToString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

package handler

import (
	"errors"

	"github.com/alphadevking/mini-inventory/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helper to parse UUID path params
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// respondError maps the error taxonomy onto HTTP statuses. Anything outside
// the taxonomy is a 500 with a generic message.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		status := fiber.StatusBadRequest
		switch appErr.Kind {
		case apperr.KindNotFound:
			status = fiber.StatusNotFound
		case apperr.KindConflict:
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{
			"error": fiber.Map{"kind": appErr.Kind, "message": appErr.Message},
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fiber.Map{"kind": "internal", "message": "Internal Server Error"},
	})
}

func respondInvalidJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": fiber.Map{"kind": apperr.KindValidation, "message": "Invalid JSON body"},
	})
}

func respondInvalidID(c *fiber.Ctx, what string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": fiber.Map{"kind": apperr.KindValidation, "message": "Invalid " + what + " ID"},
	})
}

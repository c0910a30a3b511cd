package handlers

import (
	"errors"
	"fmt"

	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// failedLookup maps a repository miss to 404 and anything else to 500,
// keeping the not-found signaling uniform across handlers.
func failedLookup(c *fiber.Ctx, message string, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": message + " not found",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message + " lookup failed",
		"error":   err.Error(),
	})
}

// validationMessages turns a validator error into a per-field response body.
// It reports false when err was not a validation error so the caller can fall
// through to its generic handling.
func validationMessages(err error) (fiber.Map, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	}, true
}

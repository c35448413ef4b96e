package middlewares

import (
	"errors"

	"salesproject-backend/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	zlog "github.com/rs/zerolog/log"
)

// ErrorHandler centralizes error responses and keeps messages sanitized.
func ErrorHandler(c *fiber.Ctx, err error) error {
	// 1) Fiber errors (use their status code + message)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}

	// 2) Raw validator errors that skipped BindAndValidate
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		err = validationError(ve)
	}

	var ae *apperr.Error
	if errors.As(err, &ae) {
		switch ae.Kind {
		case apperr.KindNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": ae.Message})
		case apperr.KindValidation:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "validation failed",
				"errors":  ae.FieldMap(),
			})
		case apperr.KindAuthentication:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid credentials"})
		}
	}

	// 3) Unknown errors (500)
	zlog.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Interface("request_id", c.Locals("requestid")).
		Msg("internal error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "internal server error",
	})
}

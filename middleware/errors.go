package middleware

import (
	"errors"
	"log"

	"tradehub/services"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every error as {"error": message}. Upstream and
// unexpected errors are logged and their cause is not sent to the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}

	var se *services.Error
	if !errors.As(err, &se) {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	status := fiber.StatusInternalServerError
	switch se.Kind {
	case services.KindValidation:
		status = fiber.StatusBadRequest
	case services.KindConflict:
		status = fiber.StatusConflict
	case services.KindNotFound:
		status = fiber.StatusNotFound
	default:
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{"error": se.Message})
}

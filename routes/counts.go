package routes

import (
	"tradehub/services"

	"github.com/gofiber/fiber/v2"
)

func countRoutes(r fiber.Router, svc *services.CountsService) {
	r.Get("/masters", func(c *fiber.Ctx) error {
		counts, err := svc.Masters(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(counts)
	})
}

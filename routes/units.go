package routes

import (
	"tradehub/services"

	"github.com/gofiber/fiber/v2"
)

func unitRoutes(r fiber.Router, svc *services.UnitService) {
	r.Post("/", func(c *fiber.Ctx) error {
		var in services.CreateUnitInput
		if err := parseBody(c, &in); err != nil {
			return err
		}
		unit, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(unit)
	})

	r.Get("/", func(c *fiber.Ctx) error {
		params, err := listParams(c)
		if err != nil {
			return err
		}
		res, err := svc.List(c.UserContext(), params)
		if err != nil {
			return err
		}
		return c.JSON(res)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}
		unit, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(unit)
	})

	r.Patch("/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}
		var in services.UpdateUnitInput
		if err := parseBody(c, &in); err != nil {
			return err
		}
		unit, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return err
		}
		return c.JSON(unit)
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Unit deleted successfully"})
	})
}

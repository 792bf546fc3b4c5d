package routes

import (
	"tradehub/middleware"
	"tradehub/services"

	"github.com/gofiber/fiber/v2"
)

func brandRoutes(r fiber.Router, svc *services.BrandService) {
	r.Post("/", func(c *fiber.Ctx) error {
		var in services.CreateBrandInput
		if err := parseBody(c, &in); err != nil {
			return err
		}
		if user := middleware.CurrentUser(c); user != nil {
			in.CreatedByID = &user.UserID
		}
		brand, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(brand)
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
		brand, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(brand)
	})

	r.Patch("/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}
		var in services.UpdateBrandInput
		if err := parseBody(c, &in); err != nil {
			return err
		}
		brand, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return err
		}
		return c.JSON(brand)
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Brand deleted successfully"})
	})
}

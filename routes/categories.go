package routes

import (
	"tradehub/services"

	"github.com/gofiber/fiber/v2"
)

func categoryRoutes(r fiber.Router, svc *services.CategoryService) {
	r.Post("/", func(c *fiber.Ctx) error {
		var in services.CreateCategoryInput
		if err := parseBody(c, &in); err != nil {
			return err
		}
		category, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(category)
	})

	r.Get("/", func(c *fiber.Ctx) error {
		params, err := listParams(c)
		if err != nil {
			return err
		}
		parentID, err := queryUint(c, "parentId")
		if err != nil {
			return err
		}
		res, err := svc.List(c.UserContext(), services.CategoryListParams{
			ListParams: params,
			ParentID:   parentID,
			TopLevel:   c.QueryBool("topLevel", false),
		})
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
		category, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(category)
	})

	r.Patch("/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}
		var in services.UpdateCategoryInput
		if err := parseBody(c, &in); err != nil {
			return err
		}
		category, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return err
		}
		return c.JSON(category)
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Category deleted successfully"})
	})
}

// categoryTree serves the public catalog.
func categoryTree(svc *services.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tree, err := svc.Tree(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": tree})
	}
}

package routes

import (
	"tradehub/middleware"
	"tradehub/services"

	"github.com/gofiber/fiber/v2"
)

func requirementRoutes(r fiber.Router, auth fiber.Handler, svc *services.RequirementService) {
	r.Post("/", auth, func(c *fiber.Ctx) error {
		var in services.CreateRequirementInput
		if err := parseBody(c, &in); err != nil {
			return err
		}
		in.BuyerID = middleware.CurrentUser(c).UserID
		req, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(req)
	})

	r.Get("/", func(c *fiber.Ctx) error {
		page, limit, err := queryPage(c)
		if err != nil {
			return err
		}
		categoryID, err := queryUint(c, "categoryId")
		if err != nil {
			return err
		}
		buyerID, err := queryUint(c, "buyerId")
		if err != nil {
			return err
		}
		res, err := svc.List(c.UserContext(), services.RequirementListParams{
			Search:     c.Query("search"),
			Status:     c.Query("status"),
			CategoryID: categoryID,
			BuyerID:    buyerID,
			Page:       page,
			Limit:      limit,
			SortBy:     c.Query("sortBy"),
			SortOrder:  c.Query("sortOrder"),
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
		req, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(req)
	})
}

func reviewRequirement(svc *services.RequirementService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}
		var in services.ReviewRequirementInput
		if err := parseBody(c, &in); err != nil {
			return err
		}
		req, err := svc.Review(c.UserContext(), id, middleware.CurrentUser(c).UserID, in)
		if err != nil {
			return err
		}
		return c.JSON(req)
	}
}

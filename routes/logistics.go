package routes

import (
	"tradehub/services"

	"github.com/gofiber/fiber/v2"
)

func logisticsRoutes(r fiber.Router, svc *services.LogisticsService) {
	r.Post("/", func(c *fiber.Ctx) error {
		var in services.CreateLogisticsInput
		if err := parseBody(c, &in); err != nil {
			return err
		}
		record, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(record)
	})

	r.Get("/offer/:offerId", func(c *fiber.Ctx) error {
		offerID, err := paramID(c, "offerId")
		if err != nil {
			return err
		}
		records, err := svc.ListByOffer(c.UserContext(), offerID)
		if err != nil {
			return err
		}
		return c.JSON(records)
	})

	r.Get("/bid/:bidId", func(c *fiber.Ctx) error {
		bidID, err := paramID(c, "bidId")
		if err != nil {
			return err
		}
		records, err := svc.ListByBid(c.UserContext(), bidID)
		if err != nil {
			return err
		}
		return c.JSON(records)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}
		record, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(record)
	})

	r.Patch("/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}
		var in services.UpdateLogisticsInput
		if err := parseBody(c, &in); err != nil {
			return err
		}
		record, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return err
		}
		return c.JSON(record)
	})

	r.Put("/:id/status", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}
		var in services.UpdateStatusInput
		if err := parseBody(c, &in); err != nil {
			return err
		}
		record, err := svc.UpdateStatus(c.UserContext(), id, in)
		if err != nil {
			return err
		}
		return c.JSON(record)
	})

	r.Put("/:id/location", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}
		var in services.LocationInput
		if err := parseBody(c, &in); err != nil {
			return err
		}
		record, err := svc.UpdateLocation(c.UserContext(), id, in)
		if err != nil {
			return err
		}
		return c.JSON(record)
	})

	r.Get("/:id/track", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}
		feature, err := svc.Track(c.UserContext(), id)
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, "application/geo+json")
		body, err := feature.MarshalJSON()
		if err != nil {
			return err
		}
		return c.Send(body)
	})
}

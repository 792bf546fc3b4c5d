package routes

import (
	"strconv"
	"strings"

	"tradehub/services"

	"github.com/gofiber/fiber/v2"
)

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to parse request body")
	}
	return nil
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

func queryUint(c *fiber.Ctx, name string) (*uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name+" parameter")
	}
	id := uint(v)
	return &id, nil
}

func queryBool(c *fiber.Ctx, name string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name+" parameter")
	}
	return &v, nil
}

func queryPage(c *fiber.Ctx) (page, limit int, err error) {
	for _, p := range []struct {
		name string
		dst  *int
	}{{"page", &page}, {"limit", &limit}} {
		raw := strings.TrimSpace(c.Query(p.name))
		if raw == "" {
			continue
		}
		v, convErr := strconv.Atoi(raw)
		if convErr != nil || v < 1 {
			return 0, 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+p.name+" parameter")
		}
		*p.dst = v
	}
	return page, limit, nil
}

// listParams reads search, isActive, page, limit, sortBy and sortOrder.
func listParams(c *fiber.Ctx) (services.ListParams, error) {
	isActive, err := queryBool(c, "isActive")
	if err != nil {
		return services.ListParams{}, err
	}
	page, limit, err := queryPage(c)
	if err != nil {
		return services.ListParams{}, err
	}
	return services.ListParams{
		Search:    c.Query("search"),
		IsActive:  isActive,
		Page:      page,
		Limit:     limit,
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}, nil
}

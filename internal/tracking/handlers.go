package tracking

import (
	"strconv"

	"github.com/harshit001122/Tracking-system/internal/shared/apperr"
	"github.com/harshit001122/Tracking-system/internal/shared/clock"
	"github.com/harshit001122/Tracking-system/internal/shared/location"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		filter, err := parseFilter(c)
		if err != nil {
			return err
		}
		sessions, err := svc.List(c.Context(), filter)
		if err != nil {
			return apperr.Fiber(err, "Failed to fetch tracking sessions")
		}
		return c.JSON(ListResponse{Sessions: sessions, Total: len(sessions)})
	})

	r.Post("/", func(c *fiber.Ctx) error {
		var req struct {
			EmployeeID    string          `json:"employeeId"`
			StartLocation *location.Input `json:"startLocation"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		session, err := svc.Create(c.Context(), req.EmployeeID, req.StartLocation)
		if err != nil {
			return apperr.Fiber(err, "Failed to create tracking session")
		}
		return c.Status(fiber.StatusCreated).JSON(session)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		session, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return apperr.Fiber(err, "Failed to fetch tracking session")
		}
		return c.JSON(session)
	})

	r.Put("/:id", func(c *fiber.Ctx) error {
		var patch SessionPatch
		if err := c.BodyParser(&patch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		session, err := svc.Update(c.Context(), c.Params("id"), patch)
		if err != nil {
			return apperr.Fiber(err, "Failed to update tracking session")
		}
		return c.JSON(session)
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return apperr.Fiber(err, "Failed to delete tracking session")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/:id/location", func(c *fiber.Ctx) error {
		var req struct {
			Location *location.Input `json:"location"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		session, err := svc.AppendLocation(c.Context(), c.Params("id"), req.Location)
		if err != nil {
			return apperr.Fiber(err, "Failed to add location to route")
		}
		return c.JSON(session)
	})

	r.Get("/:id/summary", func(c *fiber.Ctx) error {
		summary, err := svc.Summary(c.Context(), c.Params("id"))
		if err != nil {
			return apperr.Fiber(err, "Failed to summarise tracking session")
		}
		return c.JSON(summary)
	})

	r.Get("/:id/route", func(c *fiber.Ctx) error {
		route, err := svc.Route(c.Context(), c.Params("id"))
		if err != nil {
			return apperr.Fiber(err, "Failed to fetch route")
		}
		return c.JSON(RouteResponse{SessionID: c.Params("id"), Route: route, Total: len(route)})
	})
}

func parseFilter(c *fiber.Ctx) (SessionFilter, error) {
	filter := SessionFilter{
		EmployeeID: c.Query("employeeId"),
		Status:     c.Query("status"),
	}

	var err error
	if filter.StartDate, err = clock.ParseOptionalDate(c.Query("startDate")); err != nil {
		return SessionFilter{}, fiber.NewError(fiber.StatusBadRequest, "Invalid startDate")
	}
	if filter.EndDate, err = clock.ParseOptionalDate(c.Query("endDate")); err != nil {
		return SessionFilter{}, fiber.NewError(fiber.StatusBadRequest, "Invalid endDate")
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return SessionFilter{}, fiber.NewError(fiber.StatusBadRequest, "Invalid limit")
		}
		filter.Limit = &limit
	}
	return filter, nil
}

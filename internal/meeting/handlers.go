package meeting

import (
	"strconv"

	"github.com/harshit001122/Tracking-system/internal/shared/apperr"
	"github.com/harshit001122/Tracking-system/internal/shared/clock"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		var (
			filter = Filter{EmployeeID: c.Query("employeeId"), Status: c.Query("status")}
			err    error
		)
		if filter.StartDate, err = clock.ParseOptionalDate(c.Query("startDate")); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid startDate")
		}
		if filter.EndDate, err = clock.ParseOptionalDate(c.Query("endDate")); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid endDate")
		}
		meetings, err := svc.List(c.Context(), filter)
		if err != nil {
			return apperr.Fiber(err, "Failed to fetch meetings")
		}
		return c.JSON(ListResponse{Meetings: meetings, Total: len(meetings)})
	})

	r.Post("/", func(c *fiber.Ctx) error {
		var in CreateInput
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		meeting, err := svc.Create(c.Context(), in)
		if err != nil {
			return apperr.Fiber(err, "Failed to create meeting")
		}
		return c.Status(fiber.StatusCreated).JSON(meeting)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		meeting, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return apperr.Fiber(err, "Failed to fetch meeting")
		}
		return c.JSON(meeting)
	})

	r.Put("/:id", func(c *fiber.Ctx) error {
		var patch Patch
		if err := c.BodyParser(&patch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		meeting, err := svc.Update(c.Context(), c.Params("id"), patch)
		if err != nil {
			return apperr.Fiber(err, "Failed to update meeting")
		}
		return c.JSON(meeting)
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return apperr.Fiber(err, "Failed to delete meeting")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// RegisterHistoryRoutes mounts the meeting history endpoints.
func RegisterHistoryRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		q := HistoryQuery{EmployeeID: c.Query("employeeId")}
		var err error
		if q.Page, err = positiveQuery(c, "page"); err != nil {
			return err
		}
		if q.Limit, err = positiveQuery(c, "limit"); err != nil {
			return err
		}
		page, err := svc.ListHistory(c.Context(), q)
		if err != nil {
			return apperr.Fiber(err, "Failed to fetch meeting history")
		}
		return c.JSON(page)
	})

	r.Post("/", func(c *fiber.Ctx) error {
		var in HistoryInput
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		entry, err := svc.RecordHistory(c.Context(), in)
		if err != nil {
			return apperr.Fiber(err, "Failed to add meeting to history")
		}
		return c.Status(fiber.StatusCreated).JSON(entry)
	})
}

// positiveQuery reads an optional positive integer; absent yields 0.
func positiveQuery(c *fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+key)
	}
	return n, nil
}

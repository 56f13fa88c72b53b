package employee

import (
	"fmt"

	"github.com/harshit001122/Tracking-system/internal/shared/apperr"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		employees := svc.List(c.Context())
		return c.JSON(ListResponse{Employees: employees, Total: len(employees)})
	})

	r.Post("/refresh-locations", func(c *fiber.Ctx) error {
		employees := svc.Refresh(c.Context())
		return c.JSON(RefreshResponse{
			Success:   true,
			Message:   fmt.Sprintf("Successfully refreshed locations for %d employees", len(employees)),
			Employees: employees,
		})
	})

	r.Post("/", externallyManaged("Employee creation should be handled by the external API"))
	r.Put("/:id", externallyManaged("Employee updates should be handled by the external API"))
	r.Delete("/:id", externallyManaged("Employee deletion should be handled by the external API"))

	r.Get("/:id", func(c *fiber.Ctx) error {
		employee, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return apperr.Fiber(err, "Failed to fetch employee")
		}
		return c.JSON(employee)
	})

	r.Put("/:id/location", func(c *fiber.Ctx) error {
		var in LocationUpdate
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		employee, err := svc.UpdateLocation(c.Context(), c.Params("id"), in)
		if err != nil {
			return apperr.Fiber(err, "Failed to update location")
		}
		return c.JSON(LocationUpdateResponse{Success: true, Employee: employee})
	})

	r.Put("/:id/status", func(c *fiber.Ctx) error {
		var in StatusUpdate
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		employee, err := svc.UpdateStatus(c.Context(), c.Params("id"), in)
		if err != nil {
			return apperr.Fiber(err, "Failed to update status")
		}
		return c.JSON(employee)
	})
}

func externallyManaged(msg string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotImplemented, msg)
	}
}

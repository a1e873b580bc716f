package routes

import (
	"github.com/gofiber/fiber/v2"

	"infaqku_backend/internals/features/infaq/slots/controller"
)

// AllInfaqSlotRoutes dipasang di group publik (/api/public/infaq-slots).
func AllInfaqSlotRoutes(r fiber.Router, ctl *controller.InfaqSlotController, contributeLimiter fiber.Handler) {
	g := r.Group("/infaq-slots")

	g.Get("/", ctl.ListSlots)
	g.Get("/:id", ctl.GetSlot)

	g.Post("/contributions", contributeLimiter, ctl.Contribute)
}

package details

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	infaqController "infaqku_backend/internals/features/infaq/slots/controller"
	infaqRoutes "infaqku_backend/internals/features/infaq/slots/routes"
	"infaqku_backend/internals/features/infaq/slots/service"
	"infaqku_backend/internals/middlewares"
)

func InfaqPublicRoutes(r fiber.Router, svc *service.ContributionService, log *zap.Logger) {
	ctl := infaqController.NewInfaqSlotController(svc, log)
	infaqRoutes.AllInfaqSlotRoutes(r, ctl, middlewares.ContributionRateLimiter())
}

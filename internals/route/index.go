package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"infaqku_backend/internals/features/infaq/slots/repository"
	"infaqku_backend/internals/features/infaq/slots/service"
	routeDetails "infaqku_backend/internals/route/details"
)

// Deps: semua dependency yang dibuat di entry point lalu diteruskan ke route.
type Deps struct {
	Store        repository.Store
	Contribution *service.ContributionService
	Log          *zap.Logger
	Environment  string
}

func SetupRoutes(app *fiber.App, deps Deps) {
	startTime := time.Now()

	deps.Log.Info("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, deps.Store, startTime, deps.Environment)

	// PUBLIC → tanpa login (admin "login" bukan bagian backend ini)
	deps.Log.Info("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	deps.Log.Info("[INFO] Mounting Infaq routes...")
	routeDetails.InfaqPublicRoutes(public, deps.Contribution, deps.Log)
}

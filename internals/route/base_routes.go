package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"infaqku_backend/internals/features/infaq/slots/repository"
)

func BaseRoutes(app *fiber.App, store repository.Store, startTime time.Time, environment string) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Infaq slot service is running 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err := store.Ping(ctx); err != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    environment,
		})
	})
}

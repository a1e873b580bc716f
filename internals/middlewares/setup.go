package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"go.uber.org/zap"

	"infaqku_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware global dengan urutan tetap.
// Recovery di dalam access logger: request yang panic tetap tercatat sebagai 500.
func SetupMiddlewares(app *fiber.App, corsOrigins []string, log *zap.Logger) {
	app.Use(RequestIDMiddleware())
	app.Use(logger.LoggerMiddleware(log))
	app.Use(RecoveryMiddleware(log))
	app.Use(CorsMiddleware(corsOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(GlobalRateLimiter())
}

package middlewares

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// RecoveryMiddleware menangkap panic, mencatat stack trace, lalu balas 500
func RecoveryMiddleware(log *zap.Logger) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Error("panic",
				zap.Any("panic", e),
				zap.String("path", c.Path()),
				zap.Any("reqid", c.Locals("reqid")),
				zap.ByteString("stack", debug.Stack()),
			)
		},
	})
}

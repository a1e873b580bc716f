package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// RequestIDMiddleware: pakai X-Request-ID dari client kalau ada, selain itu UUID baru.
func RequestIDMiddleware() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		ContextKey: "reqid",
		Generator: func() string {
			return uuid.NewString()
		},
	})
}

package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const internalErrorMessage = "Internal server error"

// Error: envelope {code, status:"error", message}.
func Error(c *fiber.Ctx, code int, message string) error {
	return send(c, Envelope{Code: code, Status: statusError, Message: message})
}

// ErrorWithDetails: sama dengan Error + map field → alasan (hasil validasi).
func ErrorWithDetails(c *fiber.Ctx, code int, message string, details interface{}) error {
	return send(c, Envelope{Code: code, Status: statusError, Message: message, Errors: details})
}

// ErrorHandler dipasang di fiber.Config: error yang lolos dari handler
// (404 route, body terlalu besar, panic yang sudah di-recover) tetap berbentuk envelope.
// Pesan error internal tidak pernah dikirim ke client.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return Error(c, fe.Code, fe.Message)
		}
		log.Error("unhandled error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Any("reqid", c.Locals("reqid")),
			zap.Error(err),
		)
		return Error(c, fiber.StatusInternalServerError, internalErrorMessage)
	}
}

package helper

import (
	"github.com/gofiber/fiber/v2"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Envelope: bentuk semua respons JSON non-list. errors hanya untuk 4xx dengan detail per field.
type Envelope struct {
	Code    int         `json:"code"`
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func send(c *fiber.Ctx, env Envelope) error {
	return c.Status(env.Code).JSON(env)
}

// ✅ 200
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return SuccessWithCode(c, fiber.StatusOK, message, data)
}

// ✅ kode custom, mis. 201 saat kontribusi membuat slot baru
func SuccessWithCode(c *fiber.Ctx, code int, message string, data interface{}) error {
	return send(c, Envelope{Code: code, Status: statusSuccess, Message: message, Data: data})
}

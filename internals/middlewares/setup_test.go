package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	helper "infaqku_backend/internals/helpers"
)

func TestPanicGetsAccessLogLine(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler(log)})
	SetupMiddlewares(app, []string{"*"}, log)
	app.Get("/boom", func(c *fiber.Ctx) error { panic("nil map write") })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-42")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	panics := logs.FilterMessage("panic").All()
	require.Len(t, panics, 1)
	assert.Equal(t, "req-42", panics[0].ContextMap()["reqid"])

	access := logs.FilterLoggerName("http").FilterMessage("request").All()
	require.Len(t, access, 1)
	assert.Equal(t, zapcore.ErrorLevel, access[0].Level)
	assert.EqualValues(t, 500, access[0].ContextMap()["status"])
	assert.Equal(t, "/boom", access[0].ContextMap()["path"])
	assert.Equal(t, "req-42", access[0].ContextMap()["reqid"])
}

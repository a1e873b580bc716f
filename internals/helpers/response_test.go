package helper

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResolvePaging(t *testing.T) {
	app := fiber.New()
	var got Paging
	app.Get("/", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 20, 100)
		return c.SendStatus(fiber.StatusNoContent)
	})

	cases := map[string]Paging{
		"/":                      {Page: 1, PerPage: 20, Offset: 0, Limit: 20},
		"/?page=3&per_page=10":   {Page: 3, PerPage: 10, Offset: 20, Limit: 10},
		"/?page=-1&limit=500":    {Page: 1, PerPage: 100, Offset: 0, Limit: 100},
		"/?page=abc&per_page=xx": {Page: 1, PerPage: 20, Offset: 0, Limit: 20},
	}
	for url, want := range cases {
		_, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, want, got, url)
	}
}

func TestBuildPaginationFromOffset(t *testing.T) {
	p := BuildPaginationFromOffset(45, 20, 20)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	empty := BuildPaginationFromOffset(0, 0, 0)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Equal(t, 20, empty.PerPage)
	assert.False(t, empty.HasNext)
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("db exploded") })
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })

	decode := func(url string) (int, map[string]any) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil), -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		out := map[string]any{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return resp.StatusCode, out
	}

	code, body := decode("/boom")
	assert.Equal(t, fiber.StatusInternalServerError, code)
	assert.Equal(t, "Internal server error", body["message"])
	assert.Equal(t, "error", body["status"])

	code, body = decode("/teapot")
	assert.Equal(t, fiber.StatusTeapot, code)
	assert.Equal(t, "short and stout", body["message"])

	code, _ = decode("/nowhere")
	assert.Equal(t, fiber.StatusNotFound, code)

	_, body = decode("/boom")
	assert.NotContains(t, body["message"], "db exploded")
	assert.NotContains(t, body, "data")
	assert.NotContains(t, body, "errors")
}

func TestEnvelopeShapes(t *testing.T) {
	app := fiber.New()
	app.Get("/created", func(c *fiber.Ctx) error {
		return SuccessWithCode(c, fiber.StatusCreated, "ok", fiber.Map{"slot_id": "s-1"})
	})
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return ErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed.", map[string]string{"quantity": "lte"})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/created", nil), -1)
	require.NoError(t, err)
	var created Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, fiber.StatusCreated, created.Code)
	assert.Equal(t, "success", created.Status)
	assert.Equal(t, map[string]any{"slot_id": "s-1"}, created.Data)
	assert.Nil(t, created.Errors)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/invalid", nil), -1)
	require.NoError(t, err)
	var invalid Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&invalid))
	resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "error", invalid.Status)
	assert.Equal(t, map[string]any{"quantity": "lte"}, invalid.Errors)
	assert.Nil(t, invalid.Data)
}

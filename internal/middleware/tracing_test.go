package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTracingApp() *fiber.App {
	app := fiber.New()
	app.Use(Tracing())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetTraceID(c))
	})
	return app
}

func TestTracing_GeneratesTraceID(t *testing.T) {
	app := setupTracingApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	echoed := resp.Header.Get("X-Trace-Id")
	_, parseErr := uuid.Parse(echoed)
	assert.NoError(t, parseErr)
}

func TestTracing_KeepsCallerTraceID(t *testing.T) {
	app := setupTracingApp()
	supplied := uuid.New().String()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Trace-Id", supplied)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, supplied, resp.Header.Get("X-Trace-Id"))
}

func TestTracing_ReplacesMalformedTraceID(t *testing.T) {
	app := setupTracingApp()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Trace-Id", "not-a-uuid")
	resp, err := app.Test(req)
	require.NoError(t, err)
	echoed := resp.Header.Get("X-Trace-Id")
	assert.NotEqual(t, "not-a-uuid", echoed)
	_, parseErr := uuid.Parse(echoed)
	assert.NoError(t, parseErr)
}

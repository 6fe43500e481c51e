package http

import (
	"encoding/json"
	"io"
	gohttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cashewcorner/backend/internal/observability"
	apperrors "github.com/cashewcorner/backend/pkg/util"
)

func newErrorTestApp() *fiber.App {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)

	app.Get("/auth-error", func(c *fiber.Ctx) error {
		return apperrors.NewAuthentication("Invalid email or password")
	})
	app.Get("/not-found", func(c *fiber.Ctx) error {
		return apperrors.NewUserNotFound("ghost")
	})
	app.Get("/fiber-error", func(c *fiber.Ctx) error {
		return fiber.NewError(gohttp.StatusForbidden, "insufficient role")
	})
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendString("fine")
	})
	return app
}

func getJSON(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(gohttp.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestErrorBodyShape(t *testing.T) {
	app := newErrorTestApp()

	status, body := getJSON(t, app, "/auth-error")
	assert.Equal(t, gohttp.StatusUnauthorized, status)
	assert.Equal(t, float64(401), body["status"])
	assert.Equal(t, "Unauthorized", body["error"])
	assert.Equal(t, "Invalid email or password", body["message"])
	assert.NotEmpty(t, body["timestamp"])
	assert.NotEmpty(t, body["requestId"])
}

func TestUserNotFoundTranslation(t *testing.T) {
	app := newErrorTestApp()

	status, body := getJSON(t, app, "/not-found")
	assert.Equal(t, gohttp.StatusNotFound, status)
	assert.Equal(t, "User not found: ghost", body["message"])
}

func TestFiberErrorTranslation(t *testing.T) {
	app := newErrorTestApp()

	status, body := getJSON(t, app, "/fiber-error")
	assert.Equal(t, gohttp.StatusForbidden, status)
	assert.Equal(t, "insufficient role", body["message"])
}

func TestPanicRecoveredAsInternalError(t *testing.T) {
	app := newErrorTestApp()

	status, body := getJSON(t, app, "/panic")
	assert.Equal(t, gohttp.StatusInternalServerError, status)
	assert.Equal(t, "An unexpected error occurred", body["message"])
}

func TestSuccessPassesThrough(t *testing.T) {
	app := newErrorTestApp()

	resp, err := app.Test(httptest.NewRequest(gohttp.MethodGet, "/ok", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, gohttp.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "fine", string(raw))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

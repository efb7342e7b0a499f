package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/fleet-admin/internal/observability"
	apperrors "github.com/spec-kit/fleet-admin/pkg/util"
)

func newMiddlewareApp() *fiber.App {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)

	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"jobs": []string{}})
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("job", nil)
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("unexpected")
	})
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return apperrors.NewValidationError("weight_kg must be positive", map[string]any{"field": "weight_kg"})
	})
	return app
}

func getBody(t *testing.T, app *fiber.App, path string, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestErrorMiddlewareShapesDomainError(t *testing.T) {
	app := newMiddlewareApp()

	resp, body := getBody(t, app, "/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "job not found", body["error"])
}

func TestErrorMiddlewareIncludesDetails(t *testing.T) {
	app := newMiddlewareApp()

	resp, body := getBody(t, app, "/invalid", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	details, ok := body["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "weight_kg", details["field"])
}

func TestErrorMiddlewareRecoversPanic(t *testing.T) {
	app := newMiddlewareApp()

	resp, body := getBody(t, app, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "internal server error", body["error"])
}

// Error bodies keep the failure shape for every client generation.
func TestErrorMiddlewareShapeSurvivesCompatLayer(t *testing.T) {
	app := newMiddlewareApp()

	for _, headers := range []map[string]string{
		nil,
		{"X-Api-Version": "v1"},
		{"X-Api-Version": "v2"},
		{"App-Version": "2.0.0"},
	} {
		resp, body := getBody(t, app, "/missing", headers)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "job not found", body["error"])
		assert.NotContains(t, body, "data")
	}
}

func TestCompatLayerWrapsSuccessForLegacy(t *testing.T) {
	app := newMiddlewareApp()

	resp, body := getBody(t, app, "/ok", map[string]string{"X-Api-Version": "v1"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body, "data")
}

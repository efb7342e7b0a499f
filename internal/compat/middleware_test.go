package compat

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompatApp() *fiber.App {
	app := fiber.New()
	app.Use(Middleware())
	app.Post("/auth/login", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user":       fiber.Map{"id": "1", "email": "a@b.test"},
			"token":      "jwt",
			"expires_at": "2026-01-01T00:00:00Z",
		})
	})
	app.Get("/jobs", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"jobs": []fiber.Map{{"id": "1"}}})
	})
	app.Get("/jobs/plain", func(c *fiber.Ctx) error {
		return c.JSON([]fiber.Map{{"id": "1"}})
	})
	app.Get("/jobs/text", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string, headers map[string]string) map[string]any {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestMiddlewareCurrentPassthrough(t *testing.T) {
	app := newCompatApp()
	body := doRequest(t, app, http.MethodGet, "/jobs", nil)
	assert.Contains(t, body, "jobs")
	assert.NotContains(t, body, "success")
}

func TestMiddlewareLegacyWrapsList(t *testing.T) {
	app := newCompatApp()
	body := doRequest(t, app, http.MethodGet, "/jobs", map[string]string{"X-Api-Version": "v1"})
	assert.Equal(t, true, body["success"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, data, "jobs")
}

func TestMiddlewareV2Wraps(t *testing.T) {
	app := newCompatApp()
	body := doRequest(t, app, http.MethodGet, "/jobs", map[string]string{"X-Api-Version": "v2"})
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body, "data")
}

func TestMiddlewareLegacyLoginReshape(t *testing.T) {
	app := newCompatApp()
	body := doRequest(t, app, http.MethodPost, "/auth/login", map[string]string{"App-Version": "2.0.0"})

	assert.Equal(t, true, body["success"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "jwt", data["token"])
	user, ok := data["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a@b.test", user["email"])
	assert.NotContains(t, data, "expires_at")
}

func TestMiddlewareCurrentLoginUntouched(t *testing.T) {
	app := newCompatApp()
	body := doRequest(t, app, http.MethodPost, "/auth/login", nil)
	assert.Equal(t, "jwt", body["token"])
	assert.Contains(t, body, "expires_at")
	assert.NotContains(t, body, "success")
}

// Array bodies are never reshaped, even for wrapped formats.
func TestMiddlewareArrayPassthrough(t *testing.T) {
	app := newCompatApp()
	req := httptest.NewRequest(http.MethodGet, "/jobs/plain", nil)
	req.Header.Set("X-Api-Version", "v1")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var body []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "1", body[0]["id"])
}

func TestMiddlewareNonJSONPassthrough(t *testing.T) {
	app := newCompatApp()
	req := httptest.NewRequest(http.MethodGet, "/jobs/text", nil)
	req.Header.Set("X-Api-Version", "v1")
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(raw))
}

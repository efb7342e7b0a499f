package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/fleet-admin/internal/config"
	apperrors "github.com/spec-kit/fleet-admin/pkg/util"
)

type failingTracker struct{}

func (failingTracker) Incr(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("tracker unavailable")
}

func newLimitedApp(tracker QuotaTracker, limit Limit) *fiber.App {
	app := fiber.New(fiber.Config{
		ProxyHeader: "X-Forwarded-For",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"success": false, "error": de.Message})
		},
	})
	limiter := NewLimiter(tracker, zap.NewNop())
	app.Get("/ping", limiter.Middleware(limit), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"pong": true})
	})
	return app
}

func ping(t *testing.T, app *fiber.App, ip string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Forwarded-For", ip)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestLimiterAllowsUpToMax(t *testing.T) {
	limit := Limit{Class: ClassGeneral, Max: 3, Window: time.Minute, Message: "too many requests, please try again later"}
	app := newLimitedApp(NewMemoryQuotaTracker(), limit)

	for i := 0; i < 3; i++ {
		resp := ping(t, app, "10.0.0.1")
		assert.Equal(t, http.StatusOK, resp.StatusCode, "request %d", i+1)
	}

	resp := ping(t, app, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "too many requests, please try again later", body["error"])
}

func TestLimiterKeysPerIP(t *testing.T) {
	limit := Limit{Class: ClassAuth, Max: 1, Window: time.Minute, Message: "too many authentication attempts, please try again later"}
	app := newLimitedApp(NewMemoryQuotaTracker(), limit)

	assert.Equal(t, http.StatusOK, ping(t, app, "10.0.0.1").StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, ping(t, app, "10.0.0.1").StatusCode)

	// A different client IP has its own window.
	assert.Equal(t, http.StatusOK, ping(t, app, "10.0.0.2").StatusCode)
}

// Different classes count independently even for the same IP.
func TestLimiterKeysPerClass(t *testing.T) {
	tracker := NewMemoryQuotaTracker()
	ctx := context.Background()

	count, err := tracker.Incr(ctx, "quota:auth:10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = tracker.Incr(ctx, "quota:general:10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLimiterWindowResets(t *testing.T) {
	limit := Limit{Class: ClassGeneral, Max: 1, Window: 20 * time.Millisecond, Message: "too many requests, please try again later"}
	app := newLimitedApp(NewMemoryQuotaTracker(), limit)

	assert.Equal(t, http.StatusOK, ping(t, app, "10.0.0.1").StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, ping(t, app, "10.0.0.1").StatusCode)

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, http.StatusOK, ping(t, app, "10.0.0.1").StatusCode)
}

// An unreachable tracker must not reject traffic.
func TestLimiterFailsOpen(t *testing.T) {
	limit := Limit{Class: ClassGeneral, Max: 1, Window: time.Minute, Message: "too many requests, please try again later"}
	app := newLimitedApp(failingTracker{}, limit)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, ping(t, app, "10.0.0.1").StatusCode)
	}
}

func TestLimitsFromConfig(t *testing.T) {
	auth, realtime, general := LimitsFromConfig(config.RateLimitConfig{
		WindowMinutes: 15,
		AuthMax:       100,
		RealtimeMax:   15000,
		GeneralMax:    3000,
	})

	assert.Equal(t, int64(100), auth.Max)
	assert.Equal(t, int64(15000), realtime.Max)
	assert.Equal(t, int64(3000), general.Max)
	for _, limit := range []Limit{auth, realtime, general} {
		assert.Equal(t, 15*time.Minute, limit.Window)
		assert.NotEmpty(t, limit.Message)
	}
}

package ratelimit

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/fleet-admin/internal/config"
	apperrors "github.com/spec-kit/fleet-admin/pkg/util"
)

// Class identifies a quota tier, selected by route prefix.
type Class string

const (
	ClassAuth     Class = "auth"
	ClassRealtime Class = "realtime"
	ClassGeneral  Class = "general"
)

// Limit couples a class with its window, quota, and rejection message.
type Limit struct {
	Class   Class
	Max     int64
	Window  time.Duration
	Message string
}

// QuotaTracker counts requests per key inside a fixed window. Incr returns
// the post-increment count; implementations start the window TTL when the
// key is first created.
type QuotaTracker interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Limiter enforces per-IP quotas. Requests are keyed by client IP, so the
// app must be configured to trust the reverse-proxy IP header.
type Limiter struct {
	tracker QuotaTracker
	logger  *zap.Logger
}

// NewLimiter constructs a limiter over the given tracker.
func NewLimiter(tracker QuotaTracker, logger *zap.Logger) *Limiter {
	return &Limiter{tracker: tracker, logger: logger}
}

// Middleware returns a handler enforcing the given limit. It runs before
// authentication and rejects with 429 without invoking the route handler.
func (l *Limiter) Middleware(limit Limit) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := "quota:" + string(limit.Class) + ":" + c.IP()
		count, err := l.tracker.Incr(c.Context(), key, limit.Window)
		if err != nil {
			// An unreachable tracker must not take the API down with it.
			l.logger.Warn("quota increment failed", zap.Error(err), zap.String("class", string(limit.Class)))
			return c.Next()
		}
		if count > limit.Max {
			return apperrors.NewRateLimited(limit.Message)
		}
		return c.Next()
	}
}

// LimitsFromConfig builds the three service classes.
func LimitsFromConfig(cfg config.RateLimitConfig) (auth, realtime, general Limit) {
	window := cfg.Window()
	auth = Limit{
		Class:   ClassAuth,
		Max:     int64(cfg.AuthMax),
		Window:  window,
		Message: "too many authentication attempts, please try again later",
	}
	realtime = Limit{
		Class:   ClassRealtime,
		Max:     int64(cfg.RealtimeMax),
		Window:  window,
		Message: "realtime update limit exceeded",
	}
	general = Limit{
		Class:   ClassGeneral,
		Max:     int64(cfg.GeneralMax),
		Window:  window,
		Message: "too many requests, please try again later",
	}
	return auth, realtime, general
}

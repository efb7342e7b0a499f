package compat

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const formatKey = "client_format"

// Middleware classifies the caller before the handler runs and rewrites
// the handler's JSON body afterwards. It never fails a request: bodies it
// cannot decode pass through untouched.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		format := Detect(Headers{
			APIVersion:    c.Get("X-Api-Version"),
			AppVersion:    c.Get("App-Version"),
			UserAgent:     c.Get(fiber.HeaderUserAgent),
			Authorization: c.Get(fiber.HeaderAuthorization),
		})
		c.Locals(formatKey, format)

		if err := c.Next(); err != nil {
			return err
		}

		rewriteResponse(c, format)
		return nil
	}
}

// FormatFromContext returns the descriptor attached by the middleware.
func FormatFromContext(c *fiber.Ctx) (ClientFormat, bool) {
	val := c.Locals(formatKey)
	if val == nil {
		return ClientFormat{}, false
	}
	format, ok := val.(ClientFormat)
	return format, ok
}

func rewriteResponse(c *fiber.Ctx, format ClientFormat) {
	contentType := string(c.Response().Header.ContentType())
	if !strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) {
		return
	}

	raw := c.Response().Body()
	if len(raw) == 0 {
		return
	}

	// Only object bodies are reshaped; arrays and scalars go out as-is.
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return
	}

	encoded, err := json.Marshal(Transform(body, format, c.Path()))
	if err != nil {
		return
	}
	c.Response().SetBodyRaw(encoded)
}

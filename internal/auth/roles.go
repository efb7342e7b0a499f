package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fleet-admin/internal/domain"
	apperrors "github.com/spec-kit/fleet-admin/pkg/util"
)

// RequireAdmin ensures the caller holds the administrative role. A missing
// principal is an authentication failure, not an authorization one.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("authentication required")
		}
		if principal.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("admin role required")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures any caller identity is attached.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthenticated("authentication required")
		}
		return c.Next()
	}
}

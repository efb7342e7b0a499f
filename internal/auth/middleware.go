package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/fleet-admin/internal/domain"
	apperrors "github.com/spec-kit/fleet-admin/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	UserID string
	Email  string
	Role   domain.Role
}

// AuthMiddleware validates bearer tokens against the revocation store and
// the token codec, then attaches the caller identity.
type AuthMiddleware struct {
	tokens  *TokenManager
	revoked RevocationStore
	logger  *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, revoked RevocationStore, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, revoked: revoked, logger: logger}
}

// Handle enforces authentication for protected routes. The revocation
// lookup runs before cryptographic verification, so a revoked token fails
// even when its signature is still valid.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return apperrors.NewUnauthenticated("missing or malformed authorization header")
	}

	revoked, err := m.revoked.IsRevoked(c.Context(), token)
	if err != nil {
		// Treat an unreachable store as not-revoked so the service stays
		// available; the signature check below still applies.
		m.logger.Warn("revocation lookup failed", zap.Error(err))
	} else if revoked {
		return apperrors.NewTokenRevoked()
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return apperrors.NewInvalidToken("invalid or expired token")
	}

	c.Locals(principalKey, &Principal{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := header[len(prefix):]
	if token == "" {
		return "", false
	}
	return token, true
}

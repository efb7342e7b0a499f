package auth

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

	"github.com/spec-kit/fleet-admin/internal/domain"
	apperrors "github.com/spec-kit/fleet-admin/pkg/util"
)

type failingRevocationStore struct{}

func (failingRevocationStore) Revoke(context.Context, string, time.Duration) error {
	return errors.New("store unavailable")
}

func (failingRevocationStore) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("store unavailable")
}

func newTestApp(mw *AuthMiddleware, extra ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"success": false, "error": de.Message, "code": de.Code})
		},
	})

	handlers := []fiber.Handler{mw.Handle}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		return c.JSON(fiber.Map{"user_id": principal.UserID, "role": principal.Role})
	})
	app.Get("/protected", handlers...)
	return app
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHandleMissingHeader(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	app := newTestApp(NewAuthMiddleware(tm, NewMemoryRevocationStore(), zap.NewNop()))

	for _, header := range []string{"", "Bearer", "Bearer ", "Basic abc", "token xyz"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
		assert.Equal(t, "UNAUTHENTICATED", decodeBody(t, resp)["code"])
	}
}

func TestHandleInvalidToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	app := newTestApp(NewAuthMiddleware(tm, NewMemoryRevocationStore(), zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decodeBody(t, resp)["code"])
}

func TestHandleRevokedToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	store := NewMemoryRevocationStore()
	app := newTestApp(NewAuthMiddleware(tm, store, zap.NewNop()))

	token, _, err := tm.GenerateToken("user-1", "a@b.test", domain.RoleUser)
	require.NoError(t, err)
	require.NoError(t, store.Revoke(context.Background(), token, time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "TOKEN_REVOKED", decodeBody(t, resp)["code"])
}

// Revocation is checked before the signature, so a revoked token that would
// not even verify still reports revocation.
func TestHandleRevocationCheckedFirst(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	store := NewMemoryRevocationStore()
	app := newTestApp(NewAuthMiddleware(tm, store, zap.NewNop()))

	require.NoError(t, store.Revoke(context.Background(), "bogus-token", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bogus-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "TOKEN_REVOKED", decodeBody(t, resp)["code"])
}

func TestHandleValidToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	app := newTestApp(NewAuthMiddleware(tm, NewMemoryRevocationStore(), zap.NewNop()))

	token, _, err := tm.GenerateToken("user-1", "a@b.test", domain.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "user-1", body["user_id"])
	assert.Equal(t, string(domain.RoleAdmin), body["role"])
}

// An unreachable revocation store must not lock out valid tokens.
func TestHandleStoreFailureFailsOpen(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	app := newTestApp(NewAuthMiddleware(tm, failingRevocationStore{}, zap.NewNop()))

	token, _, err := tm.GenerateToken("user-1", "a@b.test", domain.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAdmin(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	app := newTestApp(NewAuthMiddleware(tm, NewMemoryRevocationStore(), zap.NewNop()), RequireAdmin())

	adminToken, _, err := tm.GenerateToken("admin-1", "admin@b.test", domain.RoleAdmin)
	require.NoError(t, err)
	userToken, _, err := tm.GenerateToken("user-1", "user@b.test", domain.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeBody(t, resp)["code"])
}

// Without an attached principal, admin enforcement is an authentication
// failure rather than an authorization one.
func TestRequireAdminWithoutPrincipal(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code})
		},
	})
	app.Get("/admin", RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHENTICATED", decodeBody(t, resp)["code"])
}

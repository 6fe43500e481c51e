package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cashewcorner/backend/internal/domain"
)

type stubResolver struct {
	principals map[string]*domain.Principal
	panicOn    string
}

func (s *stubResolver) ResolveIdentity(_ context.Context, token string) *domain.Principal {
	if token == s.panicOn {
		panic("resolver blew up")
	}
	return s.principals[token]
}

func newTestApp(resolver IdentityResolver) *fiber.App {
	app := fiber.New()
	middleware := NewAuthMiddleware(resolver, zap.NewNop())
	app.Use(middleware.Handle)

	app.Get("/whoami", func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(principal.Username)
	})
	app.Get("/admin", RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader string, path string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestMiddlewareAttachesPrincipal(t *testing.T) {
	resolver := &stubResolver{principals: map[string]*domain.Principal{
		"good-token": {Username: "alice", UserID: 1, Authorities: []string{"ROLE_ADMIN"}},
	}}
	app := newTestApp(resolver)

	status, body := doRequest(t, app, "Bearer good-token", "/whoami")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", body)
}

func TestMiddlewarePassesThroughUnauthenticated(t *testing.T) {
	resolver := &stubResolver{principals: map[string]*domain.Principal{}}
	app := newTestApp(resolver)

	for _, header := range []string{"", "Bearer unknown-token", "Basic abc", "Bearer"} {
		status, body := doRequest(t, app, header, "/whoami")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "anonymous", body)
	}
}

func TestMiddlewareRecoversFromResolverPanic(t *testing.T) {
	resolver := &stubResolver{panicOn: "boom"}
	app := newTestApp(resolver)

	status, body := doRequest(t, app, "Bearer boom", "/whoami")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "anonymous", body)
}

func TestRequireRole(t *testing.T) {
	resolver := &stubResolver{principals: map[string]*domain.Principal{
		"admin-token": {Username: "alice", Authorities: []string{domain.RoleAdmin.Authority()}},
		"user-token":  {Username: "bob", Authorities: []string{domain.RoleUser.Authority()}},
		"none-token":  {Username: "carol"},
	}}
	app := newTestApp(resolver)

	status, _ := doRequest(t, app, "Bearer admin-token", "/admin")
	assert.Equal(t, http.StatusOK, status)

	status, _ = doRequest(t, app, "Bearer user-token", "/admin")
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doRequest(t, app, "Bearer none-token", "/admin")
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doRequest(t, app, "", "/admin")
	assert.Equal(t, http.StatusUnauthorized, status)
}

package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cashewcorner/backend/internal/domain"
)

const principalKey = "auth_principal"

// IdentityResolver resolves a bearer token into a principal. A nil result
// means the token did not authenticate; resolution never fails a request.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) *domain.Principal
}

// AuthMiddleware attaches an authenticated principal to requests carrying a
// valid bearer token. It never rejects a request itself; authorization is a
// separate, later concern.
type AuthMiddleware struct {
	resolver IdentityResolver
	logger   *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(resolver IdentityResolver, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver, logger: logger}
}

// Handle extracts the bearer token, resolves the identity and stores the
// principal in the request context. On any failure the request continues
// unauthenticated and downstream authorization rejects it if needed.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token := extractBearerToken(c)
	if token == "" {
		return c.Next()
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Warn("token processing panicked", zap.Any("panic", r))
			}
		}()
		if principal := m.resolver.ResolveIdentity(c.UserContext(), token); principal != nil {
			c.Locals(principalKey, principal)
		}
	}()

	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*domain.Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.Principal)
	return principal, ok
}

func extractBearerToken(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/cashewcorner/backend/internal/domain"
)

// RequireAuthenticated ensures a principal was resolved for the request.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}

// RequireRole ensures the principal holds the authority of at least one of
// the allowed roles.
func RequireRole(allowed ...domain.RoleName) fiber.Handler {
	authorities := make([]string, 0, len(allowed))
	for _, role := range allowed {
		authorities = append(authorities, role.Authority())
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if len(authorities) == 0 {
			return c.Next()
		}
		for _, authority := range authorities {
			if principal.HasAuthority(authority) {
				return c.Next()
			}
		}
		return fiber.NewError(http.StatusForbidden, "insufficient role")
	}
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cashewcorner/backend/internal/api/http/handlers"
	"github.com/cashewcorner/backend/internal/auth"
	"github.com/cashewcorner/backend/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. The authentication middleware runs on
// every route and never rejects; role guards do the rejecting.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.AuthMiddleware.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", auth.RequireAuthenticated(), cfg.Auth.Me)
	authGroup.Get("/events", auth.RequireRole(domain.RoleAdmin), cfg.Auth.Events)
	authGroup.Get("/health", cfg.Auth.Status)

	users := api.Group("/users", auth.RequireRole(domain.RoleAdmin))
	users.Get("/", cfg.Users.List)
	users.Post("/", cfg.Users.Create)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)
	users.Patch("/:id/status", cfg.Users.SetStatus)

	api.Get("/roles", auth.RequireRole(domain.RoleAdmin), cfg.Users.ListRoles)
}

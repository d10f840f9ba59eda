package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clothing-shop/internal/api/http/handlers"
	"github.com/spec-kit/clothing-shop/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Roles          *handlers.RolesHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/", cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)
	users.Put("/:id/password", cfg.Users.ChangePassword)
	users.Delete("/:id", cfg.Users.Deactivate)
	users.Put("/:id/recovery", cfg.Users.Reactivate)

	roles := app.Group("/roles", cfg.AuthMiddleware.Handle)
	roles.Get("/", cfg.Roles.List)
	roles.Get("/:id", cfg.Roles.Get)
}

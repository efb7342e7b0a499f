package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fleet-admin/internal/api/http/handlers"
	"github.com/spec-kit/fleet-admin/internal/auth"
	"github.com/spec-kit/fleet-admin/internal/ratelimit"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Users         *handlers.UsersHandler
	Drivers       *handlers.DriversHandler
	Locations     *handlers.LocationsHandler
	Jobs          *handlers.JobsHandler
	Notifications *handlers.NotificationsHandler
	Documents     *handlers.DocumentsHandler
	Audit         *handlers.AuditHandler
	Admin         *handlers.AdminHandler

	AuthMiddleware *auth.AuthMiddleware
	Limiter        *ratelimit.Limiter
	AuthLimit      ratelimit.Limit
	RealtimeLimit  ratelimit.Limit
	GeneralLimit   ratelimit.Limit
}

// RegisterRoutes wires HTTP routes. Each group carries its quota class;
// authentication applies only to groups that need it.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	requireAuth := cfg.AuthMiddleware.Handle
	requireAdmin := auth.RequireAdmin()
	general := cfg.Limiter.Middleware(cfg.GeneralLimit)

	authGroup := app.Group("/auth", cfg.Limiter.Middleware(cfg.AuthLimit))
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)

	authProtected := authGroup.Group("", requireAuth)
	authProtected.Get("/me", cfg.Auth.Me)
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)

	locations := app.Group("/locations", cfg.Limiter.Middleware(cfg.RealtimeLimit), requireAuth)
	locations.Post("/heartbeat", cfg.Locations.Heartbeat)
	locations.Get("/:driverID/latest", cfg.Locations.Latest)
	locations.Get("/:driverID", cfg.Locations.Trail)

	users := app.Group("/users", general, requireAuth, requireAdmin)
	users.Get("/", cfg.Users.List)
	users.Post("/", cfg.Users.Create)
	users.Get("/:id", cfg.Users.Get)
	users.Patch("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)

	drivers := app.Group("/drivers", general, requireAuth)
	drivers.Get("/", cfg.Drivers.List)
	drivers.Get("/:id", cfg.Drivers.Get)
	drivers.Post("/", requireAdmin, cfg.Drivers.Create)
	drivers.Patch("/:id", requireAdmin, cfg.Drivers.Update)
	drivers.Delete("/:id", requireAdmin, cfg.Drivers.Delete)

	jobs := app.Group("/jobs", general, requireAuth)
	jobs.Get("/", cfg.Jobs.List)
	jobs.Post("/", cfg.Jobs.Create)
	jobs.Get("/:id", cfg.Jobs.Get)
	jobs.Patch("/:id", cfg.Jobs.Update)
	jobs.Post("/:id/assign", cfg.Jobs.Assign)
	jobs.Post("/:id/status", cfg.Jobs.ChangeStatus)

	notifications := app.Group("/notifications", general, requireAuth)
	notifications.Get("/", cfg.Notifications.List)
	notifications.Post("/:id/read", cfg.Notifications.MarkRead)

	documents := app.Group("/documents", general, requireAuth)
	documents.Get("/", cfg.Documents.List)
	documents.Post("/", cfg.Documents.Create)
	documents.Get("/:id", cfg.Documents.Get)
	documents.Delete("/:id", requireAdmin, cfg.Documents.Delete)

	audit := app.Group("/audit", general, requireAuth, requireAdmin)
	audit.Get("/", cfg.Audit.List)

	admin := app.Group("/admin", general, requireAuth, requireAdmin)
	admin.Get("/tables", cfg.Admin.ListTables)
	admin.Get("/tables/:name", cfg.Admin.BrowseTable)
	admin.Post("/provision", cfg.Admin.Provision)
}

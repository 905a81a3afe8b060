package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/http/handlers"
	"github.com/spec-kit/complaint-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Complaints     *handlers.ComplaintsHandler
	Ministries     *handlers.MinistriesHandler
	Admin          *handlers.AdminHandler
	Uploads        *handlers.UploadsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, cfg.Auth.ChangePassword)

	api := app.Group("/api")

	// Browsing complaints and the ministry directory is public. The detail
	// route still resolves the caller when a token is present so internal
	// comments stay staff-only.
	api.Get("/complaints", cfg.Complaints.List)
	api.Get("/complaints/:id", cfg.AuthMiddleware.HandleOptional, cfg.Complaints.Get)
	api.Get("/ministries", cfg.Ministries.ListActive)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/complaints", cfg.Complaints.Create)
	protected.Put("/complaints/:id", cfg.Complaints.Update)
	protected.Delete("/complaints/:id", cfg.Complaints.Delete)
	protected.Post("/complaints/:id/comments", cfg.Complaints.AddComment)
	protected.Post("/uploads", cfg.Uploads.Upload)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/analytics", cfg.Admin.Analytics)
	admin.Get("/dashboard/complaints", cfg.Admin.DashboardComplaints)
	admin.Get("/dashboard/ministries", cfg.Admin.DashboardMinistries)
	admin.Get("/ministries", cfg.Ministries.ListAll)
	admin.Post("/ministries", cfg.Ministries.Create)
	admin.Put("/ministries/:id", cfg.Ministries.Update)
	admin.Delete("/ministries/:id", cfg.Ministries.Delete)
}

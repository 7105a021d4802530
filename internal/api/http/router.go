package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/campus-helpdesk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Requests       *handlers.RequestsHandler
	Technicians    *handlers.TechnicianHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/students/login", cfg.Auth.StudentLogin)
	authGroup.Post("/technicians/login", cfg.Auth.TechnicianLogin)
	authGroup.Post("/admin/login", cfg.Auth.AdminLogin)

	students := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireStudent())
	students.Post("/submit_request", cfg.Requests.Submit)
	students.Get("/history", cfg.Requests.History)

	// Any authenticated caller may look up a request; the handler checks
	// the caller is allowed to see that particular record.
	app.Get("/get_status/:request_id", cfg.AuthMiddleware.Handle, cfg.Requests.GetStatus)

	technicians := app.Group("/technician", cfg.AuthMiddleware.Handle, auth.RequireTechnician())
	technicians.Get("/tasks", cfg.Technicians.Tasks)
	technicians.Patch("/tasks", cfg.Technicians.UpdateTask)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/requests", cfg.Admin.ListRequests)
	admin.Patch("/requests/status", cfg.Admin.UpdateStatus)
	admin.Get("/technicians", cfg.Admin.ListTechnicians)
	admin.Post("/technicians", cfg.Admin.OnboardTechnician)
	admin.Get("/analytics", cfg.Admin.Analytics)
}

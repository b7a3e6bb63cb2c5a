package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/api/http/handlers"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/auth"
	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Complaints     *handlers.ComplaintsHandler
	RoComplaints   *handlers.RoComplaintsHandler
	AuthMiddleware *auth.AuthMiddleware
	RateLimiter    fiber.Handler
}

// RegisterRoutes wires HTTP routes. Staff endpoints sit behind JWT auth
// under /complaint; the passenger endpoints live under the separate
// /ro/complaint prefix so the auth middleware never sees them, guarded
// by a per-IP rate limit instead.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/staff/login", cfg.Auth.Login)

	staff := app.Group("/complaint", cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.RoleWarRoomUser, domain.RoleS2Admin, domain.RoleRailwayAdmin))
	staff.Get("/get/date/:date", cfg.Complaints.GetByDate)
	staff.Get("/get/:complain_id", cfg.Complaints.Get)
	staff.Post("/add", cfg.Complaints.Create)
	staff.Patch("/update/:complain_id", cfg.Complaints.Update)
	staff.Put("/update/:complain_id", cfg.Complaints.Update)
	staff.Delete("/delete/:complain_id", cfg.Complaints.Delete)
	staff.Delete("/delete-image/:complain_id", cfg.Complaints.DeleteMedia)

	ro := app.Group("/ro/complaint")
	if cfg.RateLimiter != nil {
		ro.Use(cfg.RateLimiter)
	}
	ro.Get("/get/date/:date", cfg.RoComplaints.GetByDate)
	ro.Get("/get/:complain_id", cfg.RoComplaints.Get)
	ro.Post("/add", cfg.RoComplaints.Create)
	ro.Patch("/update/:complain_id", cfg.RoComplaints.Update)
	ro.Put("/update/:complain_id", cfg.RoComplaints.Update)
	ro.Delete("/delete/:complain_id", cfg.RoComplaints.Delete)
	ro.Delete("/delete-image/:complain_id", cfg.RoComplaints.DeleteMedia)
}

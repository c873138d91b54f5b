package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/majifix/service-request/internal/api/http/handlers"
	"github.com/majifix/service-request/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	ServiceRequests *handlers.ServiceRequestsHandler
	Reports         *handlers.ReportsHandler
	AuthMiddleware  *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Reads are open; mutations require a
// verified bearer token from the party service.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	v1 := app.Group("/v1")

	requests := v1.Group("/servicerequests")
	requests.Get("/", cfg.ServiceRequests.List)
	requests.Get("/code/:code", cfg.ServiceRequests.GetByCode)
	requests.Get("/:id", cfg.ServiceRequests.Get)

	protected := requests.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/", cfg.ServiceRequests.Create)
	protected.Patch("/:id", cfg.ServiceRequests.Update)
	protected.Delete("/:id", cfg.ServiceRequests.Delete)

	reports := v1.Group("/reports")
	reports.Get("/overviews", cfg.Reports.Overviews)
	reports.Get("/standings", cfg.Reports.Standings)
	reports.Get("/summary", cfg.Reports.Summary)
	reports.Get("/phones", cfg.AuthMiddleware.Handle, cfg.Reports.Phones)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sla-tracker/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Upload  *handlers.UploadHandler
	Reports *handlers.ReportsHandler
	Tickets *handlers.TicketsHandler
	Admin   *handlers.AdminHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/counters", cfg.Health.Counters)

	api := app.Group("/api")
	api.Post("/upload-excel", cfg.Upload.UploadExcel)
	api.Get("/dashboard-summary", cfg.Reports.DashboardSummary)
	api.Get("/team-performance", cfg.Reports.TeamPerformance)
	api.Get("/agent-performance/:name", cfg.Reports.AgentPerformance)
	api.Get("/tickets", cfg.Tickets.ListTickets)
	api.Get("/agents", cfg.Tickets.ListAgents)
	api.Delete("/clear-data", cfg.Admin.ClearData)
}

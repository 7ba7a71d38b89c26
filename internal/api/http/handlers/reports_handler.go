package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sla-tracker/internal/api/dto"
	"github.com/spec-kit/sla-tracker/internal/service"
	apperrors "github.com/spec-kit/sla-tracker/pkg/util"
)

// ReportsHandler serves the aggregation endpoints.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// DashboardSummary GET /api/dashboard-summary.
func (h *ReportsHandler) DashboardSummary(c *fiber.Ctx) error {
	summary, err := h.reports.DashboardSummary(c.UserContext())
	if err != nil {
		return err
	}

	performers := make([]dto.TopPerformerResponse, 0, len(summary.TopPerformers))
	for _, p := range summary.TopPerformers {
		performers = append(performers, dto.TopPerformerResponse{
			AgentName:     p.AgentName,
			TotalTickets:  p.TotalTickets,
			SLAPercentage: p.SLAPercentage,
		})
	}

	return c.JSON(dto.DashboardSummaryResponse{
		TotalTickets:         summary.TotalTickets,
		TicketsClosed:        summary.TicketsClosed,
		TicketsOpen:          summary.TicketsOpen,
		Level1Pending:        summary.Level1Pending,
		Level2Pending:        summary.Level2Pending,
		BusinessPending:      summary.BusinessPending,
		OtherPending:         summary.OtherPending,
		OverallResponseSLA:   summary.OverallResponseSLA,
		OverallResolutionSLA: summary.OverallResolutionSLA,
		SLABreaches:          summary.SLABreaches,
		TopPerformers:        performers,
	})
}

// TeamPerformance GET /api/team-performance.
func (h *ReportsHandler) TeamPerformance(c *fiber.Ctx) error {
	rows, err := h.reports.TeamPerformance(c.UserContext())
	if err != nil {
		return err
	}

	items := make([]dto.TeamPerformanceResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.TeamPerformanceResponse{
			TeamName:                row.TeamName,
			TotalTickets:            row.TotalTickets,
			ResponseSLAPercentage:   row.ResponseSLAPercentage,
			ResolutionSLAPercentage: row.ResolutionSLAPercentage,
			AvgResponseTime:         row.AvgResponseTime,
			AvgResolutionTime:       row.AvgResolutionTime,
		})
	}
	return c.JSON(fiber.Map{"teams": items})
}

// AgentPerformance GET /api/agent-performance/:name.
func (h *ReportsHandler) AgentPerformance(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.Params("name"))
	if name == "" {
		return apperrors.NewValidationError("agent name required", nil)
	}

	perf, err := h.reports.AgentPerformance(c.UserContext(), name)
	if err != nil {
		return err
	}
	return c.JSON(dto.AgentPerformanceResponse{
		AgentName:               perf.AgentName,
		TotalTickets:            perf.TotalTickets,
		ResponseSLAMet:          perf.ResponseSLAMet,
		ResponseSLABreached:     perf.ResponseSLABreached,
		ResolutionSLAMet:        perf.ResolutionSLAMet,
		ResolutionSLABreached:   perf.ResolutionSLABreached,
		ResponseSLAPercentage:   perf.ResponseSLAPercentage,
		ResolutionSLAPercentage: perf.ResolutionSLAPercentage,
		AvgResponseTime:         perf.AvgResponseTime,
		AvgResolutionTime:       perf.AvgResolutionTime,
	})
}

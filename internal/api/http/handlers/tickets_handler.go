package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sla-tracker/internal/api/dto"
	"github.com/spec-kit/sla-tracker/internal/domain"
	"github.com/spec-kit/sla-tracker/internal/service"
)

// TicketsHandler serves the ticket listing and agent roster endpoints.
type TicketsHandler struct {
	reports *service.ReportService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(reports *service.ReportService) *TicketsHandler {
	return &TicketsHandler{reports: reports}
}

// ListTickets GET /api/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	filter := parseTicketQuery(c)
	page, err := h.reports.ListTickets(c.UserContext(), filter)
	if err != nil {
		return err
	}

	items := make([]dto.TicketResponse, 0, len(page.Tickets))
	for i := range page.Tickets {
		items = append(items, ticketResponse(&page.Tickets[i]))
	}
	return c.JSON(dto.TicketListResponse{
		Tickets:    items,
		TotalCount: page.TotalCount,
		Skip:       page.Skip,
		Limit:      page.Limit,
	})
}

// ListAgents GET /api/agents.
func (h *TicketsHandler) ListAgents(c *fiber.Ctx) error {
	agents, err := h.reports.ListAgents(c.UserContext())
	if err != nil {
		return err
	}

	items := make([]dto.AgentResponse, 0, len(agents))
	for _, agent := range agents {
		items = append(items, dto.AgentResponse{
			ID:         agent.ID,
			Name:       agent.Name,
			EmployeeID: agent.EmployeeID,
			Team:       agent.Team,
			ShiftStart: agent.ShiftStart,
			ShiftEnd:   agent.ShiftEnd,
			CreatedAt:  agent.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"agents": items})
}

func parseTicketQuery(c *fiber.Ctx) service.TicketListFilter {
	filter := service.TicketListFilter{
		Skip:  parseIntDefault(c.Query("skip"), 0),
		Limit: parseIntDefault(c.Query("limit"), 50),
	}
	if v := strings.TrimSpace(c.Query("agent_name")); v != "" {
		filter.AgentName = &v
	}
	if v := strings.TrimSpace(c.Query("team")); v != "" {
		filter.Team = &v
	}
	if v := strings.TrimSpace(c.Query("sla_status")); v != "" {
		filter.SLAStatus = &v
	}
	return filter
}

func parseIntDefault(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return parsed
}

func ticketResponse(t *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:                      t.ID,
		SRNumber:                t.SRNumber,
		Created:                 t.Created,
		RaisedFor:               t.RaisedFor,
		Area:                    t.Area,
		SubArea:                 t.SubArea,
		ProblemArea:             t.ProblemArea,
		Status:                  t.Status,
		SubStatus:               t.SubStatus,
		Assigned:                t.Assigned,
		UpdatedBy:               t.UpdatedBy,
		Category:                t.Category,
		ResolvedDate:            t.ResolvedDate,
		ResolvedBy:              t.ResolvedBy,
		ResponseSLAStatus:       t.ResponseSLAStatus,
		ResolutionSLAStatus:     t.ResolutionSLAStatus,
		ResponseTimeHours:       t.ResponseTimeHours,
		ResolutionTimeHours:     t.ResolutionTimeHours,
		BreachedResponseHours:   t.BreachedResponseHours,
		BreachedResolutionHours: t.BreachedResolutionHours,
		LifeCycleTargetHours:    t.LifeCycleTargetHours,
		TotalTimeTakenHours:     t.TotalTimeTakenHours,
		Team:                    t.Team,
		CreatedAt:               t.CreatedAt,
	}
}

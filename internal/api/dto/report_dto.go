package dto

// TopPerformerResponse is one ranked resolver on the dashboard.
type TopPerformerResponse struct {
	AgentName     string  `json:"agent_name"`
	TotalTickets  int64   `json:"total_tickets"`
	SLAPercentage float64 `json:"sla_percentage"`
}

// DashboardSummaryResponse is the organization-wide rollup.
type DashboardSummaryResponse struct {
	TotalTickets         int64                  `json:"total_tickets"`
	TicketsClosed        int64                  `json:"tickets_closed"`
	TicketsOpen          int64                  `json:"tickets_open"`
	Level1Pending        int64                  `json:"level1_pending"`
	Level2Pending        int64                  `json:"level2_pending"`
	BusinessPending      int64                  `json:"business_pending"`
	OtherPending         int64                  `json:"other_pending"`
	OverallResponseSLA   float64                `json:"overall_response_sla"`
	OverallResolutionSLA float64                `json:"overall_resolution_sla"`
	SLABreaches          int64                  `json:"sla_breaches"`
	TopPerformers        []TopPerformerResponse `json:"top_performers"`
}

// TeamPerformanceResponse is one team's rollup row.
type TeamPerformanceResponse struct {
	TeamName                string  `json:"team_name"`
	TotalTickets            int64   `json:"total_tickets"`
	ResponseSLAPercentage   float64 `json:"response_sla_percentage"`
	ResolutionSLAPercentage float64 `json:"resolution_sla_percentage"`
	AvgResponseTime         float64 `json:"avg_response_time"`
	AvgResolutionTime       float64 `json:"avg_resolution_time"`
}

// AgentPerformanceResponse is one resolver's rollup.
type AgentPerformanceResponse struct {
	AgentName               string  `json:"agent_name"`
	TotalTickets            int64   `json:"total_tickets"`
	ResponseSLAMet          int64   `json:"response_sla_met"`
	ResponseSLABreached     int64   `json:"response_sla_breached"`
	ResolutionSLAMet        int64   `json:"resolution_sla_met"`
	ResolutionSLABreached   int64   `json:"resolution_sla_breached"`
	ResponseSLAPercentage   float64 `json:"response_sla_percentage"`
	ResolutionSLAPercentage float64 `json:"resolution_sla_percentage"`
	AvgResponseTime         float64 `json:"avg_response_time"`
	AvgResolutionTime       float64 `json:"avg_resolution_time"`
}

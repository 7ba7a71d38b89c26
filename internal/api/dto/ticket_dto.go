package dto

import "time"

// TicketResponse mirrors one canonical ticket record.
type TicketResponse struct {
	ID                      string    `json:"id"`
	SRNumber                string    `json:"sr_number"`
	Created                 *string   `json:"created"`
	RaisedFor               *string   `json:"raised_for"`
	Area                    *string   `json:"area"`
	SubArea                 *string   `json:"sub_area"`
	ProblemArea             *string   `json:"problem_area"`
	Status                  *string   `json:"status"`
	SubStatus               *string   `json:"sub_status"`
	Assigned                *string   `json:"assigned"`
	UpdatedBy               *string   `json:"updated_by"`
	Category                *string   `json:"category"`
	ResolvedDate            *string   `json:"resolved_date"`
	ResolvedBy              *string   `json:"resolved_by"`
	ResponseSLAStatus       *string   `json:"response_sla_status"`
	ResolutionSLAStatus     *string   `json:"resolution_sla_status"`
	ResponseTimeHours       *float64  `json:"response_time_hours"`
	ResolutionTimeHours     *float64  `json:"resolution_time_hours"`
	BreachedResponseHours   *float64  `json:"breached_response_hours"`
	BreachedResolutionHours *float64  `json:"breached_resolution_hours"`
	LifeCycleTargetHours    *float64  `json:"life_cycle_target_hours"`
	TotalTimeTakenHours     *float64  `json:"total_time_taken_hours"`
	Team                    string    `json:"team"`
	CreatedAt               time.Time `json:"created_at"`
}

// TicketListResponse is one stable page of the filtered listing.
type TicketListResponse struct {
	Tickets    []TicketResponse `json:"tickets"`
	TotalCount int64            `json:"total_count"`
	Skip       int              `json:"skip"`
	Limit      int              `json:"limit"`
}

// AgentResponse mirrors one roster entry.
type AgentResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	EmployeeID string    `json:"employee_id"`
	Team       string    `json:"team"`
	ShiftStart *string   `json:"shift_start"`
	ShiftEnd   *string   `json:"shift_end"`
	CreatedAt  time.Time `json:"created_at"`
}

package domain

import "time"

// SLAStatus enumerates compliance outcomes carried by the ticketing export.
type SLAStatus string

const (
	SLAStatusMet      SLAStatus = "Met"
	SLAStatusBreached SLAStatus = "Breached"
	SLAStatusAtRisk   SLAStatus = "At Risk"
)

// StatusResolved is the ticket status that counts as closed in rollups.
const StatusResolved = "Resolved"

// Ticket is the canonical record for one row of uploaded spreadsheet data.
// Pointer fields distinguish "not recorded" from an empty or zero value.
// Tickets are inserted once by the ingestion pipeline and never mutated.
type Ticket struct {
	ID                      string
	SRNumber                string
	Created                 *string
	RaisedFor               *string
	Area                    *string
	SubArea                 *string
	ProblemArea             *string
	Status                  *string
	SubStatus               *string
	Assigned                *string
	UpdatedBy               *string
	Category                *string
	ResolvedDate            *string
	ResolvedBy              *string
	ResponseSLAStatus       *string
	ResolutionSLAStatus     *string
	ResponseTimeHours       *float64
	ResolutionTimeHours     *float64
	BreachedResponseHours   *float64
	BreachedResolutionHours *float64
	LifeCycleTargetHours    *float64
	TotalTimeTakenHours     *float64
	Team                    string
	CreatedAt               time.Time
}

// Resolved reports whether the ticket counts as closed.
func (t *Ticket) Resolved() bool {
	return t.Status != nil && *t.Status == StatusResolved
}

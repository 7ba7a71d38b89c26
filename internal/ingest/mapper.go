package ingest

import (
	"math"
	"strconv"
	"strings"

	"github.com/spec-kit/sla-tracker/internal/domain"
	"github.com/spec-kit/sla-tracker/internal/normalize"
)

// The mapper reads rows against a fixed, typed column schema instead of
// ad-hoc key probing: each entry names the canonical field, the exact
// (trimmed) column label it is read from, and how the cell is coerced.
// Per-cell failures downgrade to absent; they never abort the upload.

const (
	colSRNumber = "SR Number"
	colTeam     = "Updated Resolved By Team"
)

var textColumns = []struct {
	label  string
	assign func(*domain.Ticket, *string)
}{
	{"Created", func(t *domain.Ticket, v *string) { t.Created = v }},
	{"Raised For", func(t *domain.Ticket, v *string) { t.RaisedFor = v }},
	{"Area", func(t *domain.Ticket, v *string) { t.Area = v }},
	{"Sub Area", func(t *domain.Ticket, v *string) { t.SubArea = v }},
	{"Problem Area", func(t *domain.Ticket, v *string) { t.ProblemArea = v }},
	{"Status", func(t *domain.Ticket, v *string) { t.Status = v }},
	{"Sub Status", func(t *domain.Ticket, v *string) { t.SubStatus = v }},
	{"Assigned", func(t *domain.Ticket, v *string) { t.Assigned = v }},
	{"Updated", func(t *domain.Ticket, v *string) { t.UpdatedBy = v }},
	{"Assigned SR Category", func(t *domain.Ticket, v *string) { t.Category = v }},
	{"Resolved Date", func(t *domain.Ticket, v *string) { t.ResolvedDate = v }},
	{"Resolved By", func(t *domain.Ticket, v *string) { t.ResolvedBy = v }},
	{"Response SLA Status", func(t *domain.Ticket, v *string) { t.ResponseSLAStatus = v }},
	{"Resolution SLA Status", func(t *domain.Ticket, v *string) { t.ResolutionSLAStatus = v }},
}

// Duration columns go through normalize.Hours, so they accept clock
// text, day-clock text, duration literals and Excel serial fractions
// (the documented *24 elapsed-days policy for bare numerics).
var durationColumns = []struct {
	label  string
	assign func(*domain.Ticket, *float64)
}{
	{"Response Time (hh:mm)", func(t *domain.Ticket, v *float64) { t.ResponseTimeHours = v }},
	{"Resolution Time (hh:mm)", func(t *domain.Ticket, v *float64) { t.ResolutionTimeHours = v }},
}

// Numeric columns are already denominated in hours in the export.
var numericColumns = []struct {
	label  string
	assign func(*domain.Ticket, *float64)
}{
	{"If Breached - Response (hrs)", func(t *domain.Ticket, v *float64) { t.BreachedResponseHours = v }},
	{"If Breached - Resolution (hrs)", func(t *domain.Ticket, v *float64) { t.BreachedResolutionHours = v }},
	{"Life Cycle Target (hrs)", func(t *domain.Ticket, v *float64) { t.LifeCycleTargetHours = v }},
	{"Total Time Taken (hrs)", func(t *domain.Ticket, v *float64) { t.TotalTimeTakenHours = v }},
}

// mapRow coerces one sheet row into a canonical Ticket. Identifier and
// creation timestamp are assigned by the pipeline at insert time.
func mapRow(row Row) domain.Ticket {
	var ticket domain.Ticket
	ticket.SRNumber = strings.TrimSpace(row[colSRNumber])

	for _, col := range textColumns {
		col.assign(&ticket, textValue(row[col.label]))
	}
	for _, col := range durationColumns {
		col.assign(&ticket, hoursValue(row[col.label]))
	}
	for _, col := range numericColumns {
		col.assign(&ticket, numericValue(row[col.label]))
	}

	ticket.Team = normalize.Team(row[colTeam])
	return ticket
}

func textValue(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func hoursValue(raw string) *float64 {
	hours, err := normalize.Hours(raw)
	if err != nil {
		return nil
	}
	return &hours
}

func numericValue(raw string) *float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return nil
	}
	return &value
}

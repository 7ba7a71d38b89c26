package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/sla-tracker/internal/normalize"
)

func TestMapRow_FullRow(t *testing.T) {
	row := Row{
		"SR Number":                      " SR-1001 ",
		"Created":                        "2025-01-02 10:00",
		"Raised For":                     "Dealer Portal",
		"Area":                           "Orders",
		"Sub Area":                       "Checkout",
		"Problem Area":                   "Payment",
		"Status":                         "Resolved",
		"Sub Status":                     "Completed",
		"Assigned":                       "Bob Smith",
		"Updated":                        "Carol Jones",
		"Assigned SR Category":           "Incident",
		"Resolved Date":                  "2025-01-03",
		"Resolved By":                    "Alice Brown",
		"Response SLA Status":            "Met",
		"Resolution SLA Status":          "Breached",
		"Response Time (hh:mm)":          "2:15",
		"Resolution Time (hh:mm)":        "1 days 05:28:00",
		"If Breached - Response (hrs)":   "1.5",
		"If Breached - Resolution (hrs)": "0",
		"Life Cycle Target (hrs)":        "48",
		"Total Time Taken (hrs)":         "29.47",
		"Updated Resolved By Team":       "tier 1",
	}

	ticket := mapRow(row)

	assert.Equal(t, "SR-1001", ticket.SRNumber)
	require.NotNil(t, ticket.Status)
	assert.Equal(t, "Resolved", *ticket.Status)
	require.NotNil(t, ticket.ResolvedBy)
	assert.Equal(t, "Alice Brown", *ticket.ResolvedBy)
	require.NotNil(t, ticket.ResponseSLAStatus)
	assert.Equal(t, "Met", *ticket.ResponseSLAStatus)

	require.NotNil(t, ticket.ResponseTimeHours)
	assert.InDelta(t, 2.25, *ticket.ResponseTimeHours, 0.01)
	require.NotNil(t, ticket.ResolutionTimeHours)
	assert.InDelta(t, 29.47, *ticket.ResolutionTimeHours, 0.01)

	require.NotNil(t, ticket.BreachedResponseHours)
	assert.InDelta(t, 1.5, *ticket.BreachedResponseHours, 0.001)
	require.NotNil(t, ticket.LifeCycleTargetHours)
	assert.InDelta(t, 48.0, *ticket.LifeCycleTargetHours, 0.001)

	assert.Equal(t, normalize.TeamLevelOne, ticket.Team)
}

func TestMapRow_MissingCellsBecomeAbsent(t *testing.T) {
	ticket := mapRow(Row{})

	assert.Equal(t, "", ticket.SRNumber)
	assert.Nil(t, ticket.Created)
	assert.Nil(t, ticket.ResolvedBy)
	assert.Nil(t, ticket.ResponseSLAStatus)
	assert.Nil(t, ticket.ResponseTimeHours)
	assert.Nil(t, ticket.TotalTimeTakenHours)
	// Team is mandatory and defaults to the primary tier.
	assert.Equal(t, normalize.TeamLevelOne, ticket.Team)
}

func TestMapRow_BadCellsDowngradeToAbsent(t *testing.T) {
	row := Row{
		"Response Time (hh:mm)":        "broken",
		"Resolution Time (hh:mm)":      "",
		"If Breached - Response (hrs)": "not-a-number",
		"Life Cycle Target (hrs)":      "-3",
		"Total Time Taken (hrs)":       "NaN",
	}

	ticket := mapRow(row)

	assert.Nil(t, ticket.ResponseTimeHours)
	assert.Nil(t, ticket.ResolutionTimeHours)
	assert.Nil(t, ticket.BreachedResponseHours)
	assert.Nil(t, ticket.LifeCycleTargetHours)
	assert.Nil(t, ticket.TotalTimeTakenHours)
}

func TestMapRow_TeamPassThrough(t *testing.T) {
	ticket := mapRow(Row{"Updated Resolved By Team": "  Data Team "})
	assert.Equal(t, "Data Team", ticket.Team)
}

// The column schema is the recognized-columns contract: one label per
// canonical field, no duplicates across tables.
func TestColumnSchema_LabelsAreUnique(t *testing.T) {
	seen := map[string]bool{colSRNumber: true, colTeam: true}
	for _, col := range textColumns {
		assert.False(t, seen[col.label], "duplicate label %q", col.label)
		seen[col.label] = true
	}
	for _, col := range durationColumns {
		assert.False(t, seen[col.label], "duplicate label %q", col.label)
		seen[col.label] = true
	}
	for _, col := range numericColumns {
		assert.False(t, seen[col.label], "duplicate label %q", col.label)
		seen[col.label] = true
	}
	assert.Len(t, seen, 22)
}

package normalize

import "strings"

// Canonical team identifiers. Everything else passes through trimmed.
const (
	TeamLevelOne = "Level 1"
	TeamLevelTwo = "Level 2"
	TeamBusiness = "Business Team"
)

var teamSynonyms = map[string]string{
	"l1":      TeamLevelOne,
	"level 1": TeamLevelOne,
	"level1":  TeamLevelOne,
	"tier 1":  TeamLevelOne,
	"tier1":   TeamLevelOne,

	"l2":      TeamLevelTwo,
	"level 2": TeamLevelTwo,
	"level2":  TeamLevelTwo,
	"tier 2":  TeamLevelTwo,
	"tier2":   TeamLevelTwo,

	"business":      TeamBusiness,
	"business team": TeamBusiness,
	"bt":            TeamBusiness,
}

// Team maps a raw team label onto the canonical set. Blank labels and
// the literal "null" fall back to Level 1. The same table is used at
// ingestion and at aggregation time so both sides bucket identically.
func Team(raw string) string {
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)
	if trimmed == "" || lower == "null" {
		return TeamLevelOne
	}
	if canonical, ok := teamSynonyms[lower]; ok {
		return canonical
	}
	return trimmed
}

// CanonicalTeams returns the closed tier set in report ordering.
func CanonicalTeams() []string {
	return []string{TeamLevelOne, TeamLevelTwo, TeamBusiness}
}

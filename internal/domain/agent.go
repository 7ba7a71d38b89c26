package domain

import "time"

// Agent is a person observed as resolver or assignee on at least one
// ticket. The roster is derived lazily during ingestion; name is the
// natural dedup key (exact, case-sensitive).
type Agent struct {
	ID         string
	Name       string
	EmployeeID string
	Team       string
	ShiftStart *string
	ShiftEnd   *string
	CreatedAt  time.Time
}

package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketsIngested EventType = "tickets_ingested"
	EventDataCleared     EventType = "data_cleared"
)

// Event represents a domain event emitted after a state change.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketsIngestedPayload describes a completed upload.
type TicketsIngestedPayload struct {
	FileName         string `json:"file_name"`
	TicketsProcessed int    `json:"tickets_processed"`
	AgentsCreated    int    `json:"agents_created"`
}

// DataClearedPayload describes a bulk clear.
type DataClearedPayload struct {
	TicketsDeleted int64 `json:"tickets_deleted"`
	AgentsDeleted  int64 `json:"agents_deleted"`
}

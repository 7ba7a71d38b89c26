package ingest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/sla-tracker/internal/domain"
	"github.com/spec-kit/sla-tracker/internal/events"
	"github.com/spec-kit/sla-tracker/internal/repository"
)

// Service runs the ingestion pipeline: parse the workbook, map each row
// into a canonical Ticket, persist row-at-a-time, then derive the agent
// roster from resolved-by/assigned-to names.
type Service struct {
	tickets    repository.TicketRepository
	agents     repository.AgentRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// Dependencies bundles collaborators for the ingestion service.
type Dependencies struct {
	TicketRepo repository.TicketRepository
	AgentRepo  repository.AgentRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// Result reports what one upload produced.
type Result struct {
	TicketsProcessed int
	AgentsCreated    int
}

// NewService constructs the service.
func NewService(deps Dependencies) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		tickets:    deps.TicketRepo,
		agents:     deps.AgentRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Ingest processes one uploaded workbook. A structurally unreadable
// workbook fails the whole call with nothing persisted. Row-level
// persistence is best effort: a failed insert is logged and skipped,
// earlier rows stay committed.
func (s *Service) Ingest(ctx context.Context, fileName string, content []byte) (Result, error) {
	_, rows, err := parseSheet(content)
	if err != nil {
		return Result{}, fmt.Errorf("parse spreadsheet: %w", err)
	}

	var result Result
	candidates := map[string]string{}

	for i, row := range rows {
		ticket := mapRow(row)
		ticket.ID = uuid.NewString()
		ticket.CreatedAt = time.Now().UTC()

		if err := s.tickets.Create(ctx, &ticket); err != nil {
			s.logger.Warn("ticket insert failed, skipping row",
				zap.Int("row", i+1),
				zap.String("sr_number", ticket.SRNumber),
				zap.Error(err))
			continue
		}
		result.TicketsProcessed++

		// Roster candidates use the ticket's own normalized team.
		collectCandidate(candidates, ticket.ResolvedBy, ticket.Team)
		collectCandidate(candidates, ticket.Assigned, ticket.Team)
	}

	result.AgentsCreated = s.upsertAgents(ctx, candidates)

	s.publishIngested(ctx, fileName, result)
	return result, nil
}

func collectCandidate(candidates map[string]string, name *string, team string) {
	if name == nil {
		return
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return
	}
	if _, ok := candidates[trimmed]; !ok {
		candidates[trimmed] = team
	}
}

// upsertAgents inserts one Agent per candidate name not yet in the
// roster. The unique index on name makes the insert race-safe across
// concurrent uploads; only rows actually inserted are counted.
func (s *Service) upsertAgents(ctx context.Context, candidates map[string]string) int {
	names := make([]string, 0, len(candidates))
	for name := range candidates {
		names = append(names, name)
	}
	sort.Strings(names)

	created := 0
	for _, name := range names {
		agent := domain.Agent{
			ID:         uuid.NewString(),
			Name:       name,
			EmployeeID: name,
			Team:       candidates[name],
			CreatedAt:  time.Now().UTC(),
		}
		inserted, err := s.agents.CreateIfAbsent(ctx, &agent)
		if err != nil {
			s.logger.Warn("agent upsert failed", zap.String("name", name), zap.Error(err))
			continue
		}
		if inserted {
			created++
		}
	}
	return created
}

func (s *Service) publishIngested(ctx context.Context, fileName string, result Result) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketsIngested,
		Timestamp: time.Now().UTC(),
		Payload: events.TicketsIngestedPayload{
			FileName:         fileName,
			TicketsProcessed: result.TicketsProcessed,
			AgentsCreated:    result.AgentsCreated,
		},
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish ingest event", zap.Error(err))
	}
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/sla-tracker/internal/events"
	"github.com/spec-kit/sla-tracker/internal/repository"
)

// AdminService owns the destructive maintenance operations. Bulk clear
// is intended for test/reset use and must stay behind deliberate
// exposure in production.
type AdminService struct {
	tickets    repository.TicketRepository
	agents     repository.AgentRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AdminDependencies bundles collaborators for the admin service.
type AdminDependencies struct {
	TicketRepo repository.TicketRepository
	AgentRepo  repository.AgentRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// ClearResult reports how many records a bulk clear removed.
type ClearResult struct {
	TicketsDeleted int64
	AgentsDeleted  int64
}

// NewAdminService constructs the service.
func NewAdminService(deps AdminDependencies) *AdminService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{
		tickets:    deps.TicketRepo,
		agents:     deps.AgentRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// ClearAll deletes every ticket and agent record.
func (s *AdminService) ClearAll(ctx context.Context) (ClearResult, error) {
	ticketsDeleted, err := s.tickets.DeleteAll(ctx)
	if err != nil {
		return ClearResult{}, err
	}
	agentsDeleted, err := s.agents.DeleteAll(ctx)
	if err != nil {
		return ClearResult{TicketsDeleted: ticketsDeleted}, err
	}

	result := ClearResult{TicketsDeleted: ticketsDeleted, AgentsDeleted: agentsDeleted}
	s.logger.Info("cleared all data",
		zap.Int64("tickets_deleted", ticketsDeleted),
		zap.Int64("agents_deleted", agentsDeleted))

	if s.dispatcher != nil {
		event := events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventDataCleared,
			Timestamp: time.Now().UTC(),
			Payload: events.DataClearedPayload{
				TicketsDeleted: ticketsDeleted,
				AgentsDeleted:  agentsDeleted,
			},
		}
		if err := s.dispatcher.Publish(ctx, event); err != nil {
			s.logger.Warn("publish clear event", zap.Error(err))
		}
	}
	return result, nil
}

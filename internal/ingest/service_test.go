package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/sla-tracker/internal/domain"
	"github.com/spec-kit/sla-tracker/internal/events"
	"github.com/spec-kit/sla-tracker/internal/normalize"
	"github.com/spec-kit/sla-tracker/internal/repository"
)

type memTicketRepo struct {
	tickets  []domain.Ticket
	failSRs  map[string]bool
	failAll  bool
}

func (r *memTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	if r.failAll || r.failSRs[ticket.SRNumber] {
		return errors.New("insert failed")
	}
	r.tickets = append(r.tickets, *ticket)
	return nil
}

func (r *memTicketRepo) ListWithFilter(context.Context, repository.TicketFilter) ([]domain.Ticket, int64, error) {
	return nil, 0, nil
}
func (r *memTicketRepo) CountByResolution(context.Context) (int64, int64, error) { return 0, 0, nil }
func (r *memTicketRepo) PendingByTeam(context.Context) ([]repository.TeamCount, error) {
	return nil, nil
}
func (r *memTicketRepo) SLACounts(context.Context) (repository.SLATotals, error) {
	return repository.SLATotals{}, nil
}
func (r *memTicketRepo) TopResolvers(context.Context, int) ([]repository.PerformerRow, error) {
	return nil, nil
}
func (r *memTicketRepo) TeamAggregates(context.Context) ([]repository.TeamAggregate, error) {
	return nil, nil
}
func (r *memTicketRepo) AgentAggregate(context.Context, string) (repository.AgentAggregate, error) {
	return repository.AgentAggregate{}, nil
}
func (r *memTicketRepo) DeleteAll(context.Context) (int64, error) { return 0, nil }

type memAgentRepo struct {
	agents map[string]domain.Agent
}

func newMemAgentRepo() *memAgentRepo {
	return &memAgentRepo{agents: map[string]domain.Agent{}}
}

func (r *memAgentRepo) CreateIfAbsent(_ context.Context, agent *domain.Agent) (bool, error) {
	if _, ok := r.agents[agent.Name]; ok {
		return false, nil
	}
	r.agents[agent.Name] = *agent
	return true, nil
}

func (r *memAgentRepo) GetByName(_ context.Context, name string) (*domain.Agent, error) {
	agent, ok := r.agents[name]
	if !ok {
		return nil, errors.New("not found")
	}
	return &agent, nil
}

func (r *memAgentRepo) List(context.Context) ([]domain.Agent, error) {
	var result []domain.Agent
	for _, agent := range r.agents {
		result = append(result, agent)
	}
	return result, nil
}

func (r *memAgentRepo) DeleteAll(context.Context) (int64, error) {
	n := int64(len(r.agents))
	r.agents = map[string]domain.Agent{}
	return n, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func buildWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", name, cell))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func newTestService(tickets *memTicketRepo, agents *memAgentRepo, dispatcher events.Dispatcher) *Service {
	return NewService(Dependencies{
		TicketRepo: tickets,
		AgentRepo:  agents,
		Dispatcher: dispatcher,
	})
}

var testHeader = []string{
	"SR Number", "Status", "Resolved By", "Assigned",
	"Response Time (hh:mm)", "Resolution Time (hh:mm)", "Updated Resolved By Team",
}

func TestIngest_EndToEnd(t *testing.T) {
	content := buildWorkbook(t, [][]string{
		testHeader,
		{"SR-1", "Resolved", "Alice", "", "2:15", "", "L1"},
		{"SR-2", "Resolved", "Alice", "", "", "1 days 00:00:00", "tier 2"},
		{"SR-3", "Assigned", "", "Bob", "garbage", "", "Business"},
	})

	tickets := &memTicketRepo{}
	agents := newMemAgentRepo()
	dispatcher := &recordingDispatcher{}
	svc := newTestService(tickets, agents, dispatcher)

	result, err := svc.Ingest(context.Background(), "export.xlsx", content)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TicketsProcessed)
	require.Len(t, tickets.tickets, 3)

	first := tickets.tickets[0]
	require.NotNil(t, first.ResponseTimeHours)
	assert.InDelta(t, 2.25, *first.ResponseTimeHours, 0.01)
	assert.Equal(t, normalize.TeamLevelOne, first.Team)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second := tickets.tickets[1]
	require.NotNil(t, second.ResolutionTimeHours)
	assert.InDelta(t, 24.0, *second.ResolutionTimeHours, 0.01)
	assert.Equal(t, normalize.TeamLevelTwo, second.Team)

	// Malformed duration cell downgrades to absent, the row still counts.
	third := tickets.tickets[2]
	assert.Nil(t, third.ResponseTimeHours)

	// Alice deduplicated across rows, Bob derived from assigned-to.
	assert.Equal(t, 2, result.AgentsCreated)
	alice, err := agents.GetByName(context.Background(), "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", alice.EmployeeID)
	assert.Equal(t, normalize.TeamLevelOne, alice.Team)
	bob, err := agents.GetByName(context.Background(), "Bob")
	require.NoError(t, err)
	assert.Equal(t, normalize.TeamBusiness, bob.Team)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventTicketsIngested, dispatcher.published[0].Type)
}

func TestIngest_AgentDedupAcrossUploads(t *testing.T) {
	content := buildWorkbook(t, [][]string{
		testHeader,
		{"SR-1", "Resolved", "Alice", "", "", "", "L1"},
	})

	tickets := &memTicketRepo{}
	agents := newMemAgentRepo()
	svc := newTestService(tickets, agents, nil)

	first, err := svc.Ingest(context.Background(), "a.xlsx", content)
	require.NoError(t, err)
	assert.Equal(t, 1, first.AgentsCreated)

	second, err := svc.Ingest(context.Background(), "b.xlsx", content)
	require.NoError(t, err)
	assert.Equal(t, 0, second.AgentsCreated)
	assert.Len(t, agents.agents, 1)
}

func TestIngest_BlankNamesNeverCreateAgents(t *testing.T) {
	content := buildWorkbook(t, [][]string{
		testHeader,
		{"SR-1", "Assigned", "   ", "", "", "", "L1"},
		{"SR-2", "Assigned", "", "  ", "", "", "L1"},
	})

	tickets := &memTicketRepo{}
	agents := newMemAgentRepo()
	svc := newTestService(tickets, agents, nil)

	result, err := svc.Ingest(context.Background(), "a.xlsx", content)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TicketsProcessed)
	assert.Equal(t, 0, result.AgentsCreated)
	assert.Empty(t, agents.agents)
}

func TestIngest_UnreadableWorkbookAbortsWholeCall(t *testing.T) {
	tickets := &memTicketRepo{}
	agents := newMemAgentRepo()
	svc := newTestService(tickets, agents, nil)

	_, err := svc.Ingest(context.Background(), "junk.xlsx", []byte("this is not a workbook"))
	require.Error(t, err)
	assert.Empty(t, tickets.tickets)
	assert.Empty(t, agents.agents)
}

func TestIngest_RowFailureDoesNotRollBackEarlierRows(t *testing.T) {
	content := buildWorkbook(t, [][]string{
		testHeader,
		{"SR-1", "Resolved", "Alice", "", "", "", "L1"},
		{"SR-2", "Resolved", "Carol", "", "", "", "L1"},
		{"SR-3", "Resolved", "Dave", "", "", "", "L1"},
	})

	tickets := &memTicketRepo{failSRs: map[string]bool{"SR-2": true}}
	agents := newMemAgentRepo()
	svc := newTestService(tickets, agents, nil)

	result, err := svc.Ingest(context.Background(), "a.xlsx", content)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TicketsProcessed)
	require.Len(t, tickets.tickets, 2)
	// Carol's row never persisted, so Carol never enters the roster.
	_, err = agents.GetByName(context.Background(), "Carol")
	assert.Error(t, err)
	assert.Len(t, agents.agents, 2)
}

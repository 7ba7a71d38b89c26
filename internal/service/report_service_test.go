package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/sla-tracker/internal/domain"
	"github.com/spec-kit/sla-tracker/internal/normalize"
	"github.com/spec-kit/sla-tracker/internal/repository"
)

type stubTicketRepo struct {
	total          int64
	resolved       int64
	pending        []repository.TeamCount
	slaTotals      repository.SLATotals
	performers     []repository.PerformerRow
	teamAggregates []repository.TeamAggregate
	agentAggregate repository.AgentAggregate
	listResult     []domain.Ticket
	listTotal      int64
	lastFilter     repository.TicketFilter
	summaryCalls   int
}

func (r *stubTicketRepo) Create(context.Context, *domain.Ticket) error { return nil }

func (r *stubTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, int64, error) {
	r.lastFilter = filter
	return r.listResult, r.listTotal, nil
}

func (r *stubTicketRepo) CountByResolution(context.Context) (int64, int64, error) {
	r.summaryCalls++
	return r.total, r.resolved, nil
}

func (r *stubTicketRepo) PendingByTeam(context.Context) ([]repository.TeamCount, error) {
	return r.pending, nil
}

func (r *stubTicketRepo) SLACounts(context.Context) (repository.SLATotals, error) {
	return r.slaTotals, nil
}

func (r *stubTicketRepo) TopResolvers(context.Context, int) ([]repository.PerformerRow, error) {
	return r.performers, nil
}

func (r *stubTicketRepo) TeamAggregates(context.Context) ([]repository.TeamAggregate, error) {
	return r.teamAggregates, nil
}

func (r *stubTicketRepo) AgentAggregate(context.Context, string) (repository.AgentAggregate, error) {
	return r.agentAggregate, nil
}

func (r *stubTicketRepo) DeleteAll(context.Context) (int64, error) { return 0, nil }

type stubAgentRepo struct {
	agents []domain.Agent
}

func (r *stubAgentRepo) CreateIfAbsent(context.Context, *domain.Agent) (bool, error) {
	return false, nil
}
func (r *stubAgentRepo) GetByName(context.Context, string) (*domain.Agent, error) { return nil, nil }
func (r *stubAgentRepo) List(context.Context) ([]domain.Agent, error)             { return r.agents, nil }
func (r *stubAgentRepo) DeleteAll(context.Context) (int64, error)                 { return 0, nil }

type mapCache struct {
	values  map[string]string
	deletes int
}

func newMapCache() *mapCache { return &mapCache{values: map[string]string{}} }

func (c *mapCache) Get(_ context.Context, key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

func (c *mapCache) Set(_ context.Context, key, value string, _ time.Duration) {
	c.values[key] = value
}

func (c *mapCache) Delete(_ context.Context, keys ...string) {
	for _, key := range keys {
		delete(c.values, key)
	}
	c.deletes++
}

func newReportService(tickets repository.TicketRepository, cache Cache) *ReportService {
	return NewReportService(ReportDependencies{
		TicketRepo: tickets,
		AgentRepo:  &stubAgentRepo{},
		Cache:      cache,
		CacheTTL:   30 * time.Second,
	})
}

func TestDashboardSummary_BucketsAndPercentages(t *testing.T) {
	repo := &stubTicketRepo{
		total:    10,
		resolved: 6,
		pending: []repository.TeamCount{
			// Two historical spellings of the same tier must merge.
			{Team: "L1", Count: 2},
			{Team: "Level 1", Count: 1},
			{Team: "Business Team", Count: 1},
			{Team: "Data Team", Count: 3},
		},
		slaTotals: repository.SLATotals{ResponseMet: 7, ResolutionMet: 5, Breached: 2},
		performers: []repository.PerformerRow{
			{AgentName: "Alice", TotalTickets: 4, SLAMet: 3},
			{AgentName: "Bob", TotalTickets: 2, SLAMet: 1},
		},
	}

	svc := newReportService(repo, nil)
	summary, err := svc.DashboardSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(10), summary.TotalTickets)
	assert.Equal(t, int64(6), summary.TicketsClosed)
	assert.Equal(t, int64(4), summary.TicketsOpen)
	assert.Equal(t, int64(3), summary.Level1Pending)
	assert.Equal(t, int64(0), summary.Level2Pending)
	assert.Equal(t, int64(1), summary.BusinessPending)
	assert.Equal(t, int64(3), summary.OtherPending)
	assert.InDelta(t, 70.0, summary.OverallResponseSLA, 0.001)
	assert.InDelta(t, 50.0, summary.OverallResolutionSLA, 0.001)
	assert.Equal(t, int64(2), summary.SLABreaches)

	require.Len(t, summary.TopPerformers, 2)
	assert.InDelta(t, 75.0, summary.TopPerformers[0].SLAPercentage, 0.001)
	for _, p := range summary.TopPerformers {
		assert.GreaterOrEqual(t, p.SLAPercentage, 0.0)
		assert.LessOrEqual(t, p.SLAPercentage, 100.0)
	}
}

func TestDashboardSummary_EmptyDataYieldsZeroPercentages(t *testing.T) {
	svc := newReportService(&stubTicketRepo{}, nil)
	summary, err := svc.DashboardSummary(context.Background())
	require.NoError(t, err)

	assert.Zero(t, summary.TotalTickets)
	assert.InDelta(t, 0.0, summary.OverallResponseSLA, 0.001)
	assert.InDelta(t, 0.0, summary.OverallResolutionSLA, 0.001)
	assert.Empty(t, summary.TopPerformers)
}

func TestDashboardSummary_ServedFromCache(t *testing.T) {
	repo := &stubTicketRepo{total: 3, resolved: 1}
	cache := newMapCache()
	svc := newReportService(repo, cache)

	_, err := svc.DashboardSummary(context.Background())
	require.NoError(t, err)
	_, err = svc.DashboardSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.summaryCalls)

	svc.InvalidateDashboard(context.Background())
	_, err = svc.DashboardSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.summaryCalls)
}

func TestTeamPerformance_MergesSynonymsAndOrdersTiers(t *testing.T) {
	repo := &stubTicketRepo{
		teamAggregates: []repository.TeamAggregate{
			{Team: "Data Team", TotalTickets: 1, ResponseMet: 1, ResponseSum: 1.0, ResponseCount: 1},
			{Team: "tier 1", TotalTickets: 2, ResponseMet: 1, ResponseSum: 3.0, ResponseCount: 2},
			{Team: "Level 1", TotalTickets: 2, ResponseMet: 2, ResponseSum: 5.0, ResponseCount: 2},
			{Team: "BT", TotalTickets: 1, ResolutionMet: 1},
		},
	}

	svc := newReportService(repo, nil)
	rows, err := svc.TeamPerformance(context.Background())
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, normalize.TeamLevelOne, rows[0].TeamName)
	assert.Equal(t, normalize.TeamBusiness, rows[1].TeamName)
	assert.Equal(t, "Data Team", rows[2].TeamName)

	level1 := rows[0]
	assert.Equal(t, int64(4), level1.TotalTickets)
	assert.InDelta(t, 75.0, level1.ResponseSLAPercentage, 0.001)
	// Average over merged non-absent samples: (3.0+5.0)/4.
	assert.InDelta(t, 2.0, level1.AvgResponseTime, 0.001)

	for _, row := range rows {
		assert.GreaterOrEqual(t, row.ResponseSLAPercentage, 0.0)
		assert.LessOrEqual(t, row.ResponseSLAPercentage, 100.0)
		assert.GreaterOrEqual(t, row.ResolutionSLAPercentage, 0.0)
		assert.LessOrEqual(t, row.ResolutionSLAPercentage, 100.0)
	}
}

func TestAgentPerformance_UnknownNameIsZeroedNotError(t *testing.T) {
	svc := newReportService(&stubTicketRepo{}, nil)
	perf, err := svc.AgentPerformance(context.Background(), "Nobody")
	require.NoError(t, err)

	assert.Equal(t, "Nobody", perf.AgentName)
	assert.Zero(t, perf.TotalTickets)
	assert.InDelta(t, 0.0, perf.ResponseSLAPercentage, 0.001)
	assert.InDelta(t, 0.0, perf.AvgResolutionTime, 0.001)
}

func TestListTickets_ClampsPaginationAndNormalizesTeam(t *testing.T) {
	repo := &stubTicketRepo{listTotal: 7}
	svc := newReportService(repo, nil)

	team := "tier 2"
	page, err := svc.ListTickets(context.Background(), TicketListFilter{
		Team:  &team,
		Skip:  -5,
		Limit: 5000,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, page.Skip)
	assert.Equal(t, 1000, page.Limit)
	assert.Equal(t, int64(7), page.TotalCount)
	require.NotNil(t, repo.lastFilter.Team)
	assert.Equal(t, normalize.TeamLevelTwo, *repo.lastFilter.Team)

	_, err = svc.ListTickets(context.Background(), TicketListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 50, repo.lastFilter.Limit)
}

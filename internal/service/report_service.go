package service

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/sla-tracker/internal/domain"
	"github.com/spec-kit/sla-tracker/internal/normalize"
	"github.com/spec-kit/sla-tracker/internal/repository"
)

const dashboardCacheKey = "sla:dashboard-summary"

// Cache is the minimal cache surface the report side needs. A nil
// cache disables caching; persistence.Redis satisfies the interface.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
}

// ReportService serves read-only rollups over the normalized ticket
// and agent sets. Every grouping path re-applies the same team
// normalizer used at ingestion so historical naming conventions land
// in the same buckets.
type ReportService struct {
	tickets       repository.TicketRepository
	agents        repository.AgentRepository
	cache         Cache
	cacheTTL      time.Duration
	topPerformers int
	logger        *zap.Logger
}

// ReportDependencies bundles collaborators for the report service.
type ReportDependencies struct {
	TicketRepo    repository.TicketRepository
	AgentRepo     repository.AgentRepository
	Cache         Cache
	CacheTTL      time.Duration
	TopPerformers int
	Logger        *zap.Logger
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	top := deps.TopPerformers
	if top <= 0 {
		top = 5
	}
	return &ReportService{
		tickets:       deps.TicketRepo,
		agents:        deps.AgentRepo,
		cache:         deps.Cache,
		cacheTTL:      deps.CacheTTL,
		topPerformers: top,
		logger:        logger,
	}
}

// TopPerformer is one resolver ranked by resolution-SLA percentage.
type TopPerformer struct {
	AgentName     string
	TotalTickets  int64
	SLAPercentage float64
}

// DashboardSummary aggregates organization-wide metrics.
type DashboardSummary struct {
	TotalTickets         int64
	TicketsClosed        int64
	TicketsOpen          int64
	Level1Pending        int64
	Level2Pending        int64
	BusinessPending      int64
	OtherPending         int64
	OverallResponseSLA   float64
	OverallResolutionSLA float64
	SLABreaches          int64
	TopPerformers        []TopPerformer
}

// TeamPerformance is one team's rollup row.
type TeamPerformance struct {
	TeamName                string
	TotalTickets            int64
	ResponseSLAPercentage   float64
	ResolutionSLAPercentage float64
	AvgResponseTime         float64
	AvgResolutionTime       float64
}

// AgentPerformance is one resolver's rollup.
type AgentPerformance struct {
	AgentName               string
	TotalTickets            int64
	ResponseSLAMet          int64
	ResponseSLABreached     int64
	ResolutionSLAMet        int64
	ResolutionSLABreached   int64
	ResponseSLAPercentage   float64
	ResolutionSLAPercentage float64
	AvgResponseTime         float64
	AvgResolutionTime       float64
}

// TicketListFilter captures listing parameters before clamping.
type TicketListFilter struct {
	AgentName *string
	Team      *string
	SLAStatus *string
	Skip      int
	Limit     int
}

// TicketPage is one stable slice of the filtered listing.
type TicketPage struct {
	Tickets    []domain.Ticket
	TotalCount int64
	Skip       int
	Limit      int
}

// DashboardSummary computes (or serves from cache) the dashboard rollup.
func (s *ReportService) DashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	if cached, ok := s.cacheGet(ctx); ok {
		return cached, nil
	}

	total, resolved, err := s.tickets.CountByResolution(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := s.tickets.PendingByTeam(ctx)
	if err != nil {
		return nil, err
	}

	slaTotals, err := s.tickets.SLACounts(ctx)
	if err != nil {
		return nil, err
	}

	performers, err := s.tickets.TopResolvers(ctx, s.topPerformers)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		TotalTickets:         total,
		TicketsClosed:        resolved,
		TicketsOpen:          total - resolved,
		OverallResponseSLA:   percentage(slaTotals.ResponseMet, total),
		OverallResolutionSLA: percentage(slaTotals.ResolutionMet, total),
		SLABreaches:          slaTotals.Breached,
	}

	// Stored teams are already canonical, but re-normalizing here keeps
	// data ingested under older synonym tables in the right bucket.
	for _, tc := range pending {
		switch normalize.Team(tc.Team) {
		case normalize.TeamLevelOne:
			summary.Level1Pending += tc.Count
		case normalize.TeamLevelTwo:
			summary.Level2Pending += tc.Count
		case normalize.TeamBusiness:
			summary.BusinessPending += tc.Count
		default:
			summary.OtherPending += tc.Count
		}
	}

	summary.TopPerformers = make([]TopPerformer, 0, len(performers))
	for _, row := range performers {
		summary.TopPerformers = append(summary.TopPerformers, TopPerformer{
			AgentName:     row.AgentName,
			TotalTickets:  row.TotalTickets,
			SLAPercentage: percentage(row.SLAMet, row.TotalTickets),
		})
	}

	s.cacheSet(ctx, summary)
	return summary, nil
}

// TeamPerformance returns one rollup row per team with tickets,
// canonical tiers first, remaining teams alphabetically.
func (s *ReportService) TeamPerformance(ctx context.Context) ([]TeamPerformance, error) {
	aggregates, err := s.tickets.TeamAggregates(ctx)
	if err != nil {
		return nil, err
	}

	merged := map[string]*repository.TeamAggregate{}
	for _, agg := range aggregates {
		team := normalize.Team(agg.Team)
		bucket, ok := merged[team]
		if !ok {
			bucket = &repository.TeamAggregate{Team: team}
			merged[team] = bucket
		}
		bucket.TotalTickets += agg.TotalTickets
		bucket.ResponseMet += agg.ResponseMet
		bucket.ResolutionMet += agg.ResolutionMet
		bucket.ResponseSum += agg.ResponseSum
		bucket.ResponseCount += agg.ResponseCount
		bucket.ResolutionSum += agg.ResolutionSum
		bucket.ResolutionCount += agg.ResolutionCount
	}

	result := make([]TeamPerformance, 0, len(merged))
	for _, team := range orderedTeams(merged) {
		agg := merged[team]
		result = append(result, TeamPerformance{
			TeamName:                team,
			TotalTickets:            agg.TotalTickets,
			ResponseSLAPercentage:   percentage(agg.ResponseMet, agg.TotalTickets),
			ResolutionSLAPercentage: percentage(agg.ResolutionMet, agg.TotalTickets),
			AvgResponseTime:         average(agg.ResponseSum, agg.ResponseCount),
			AvgResolutionTime:       average(agg.ResolutionSum, agg.ResolutionCount),
		})
	}
	return result, nil
}

// AgentPerformance returns one resolver's rollup; a name nobody has
// resolved for yields a zeroed result, not an error.
func (s *ReportService) AgentPerformance(ctx context.Context, name string) (*AgentPerformance, error) {
	agg, err := s.tickets.AgentAggregate(ctx, name)
	if err != nil {
		return nil, err
	}
	return &AgentPerformance{
		AgentName:               name,
		TotalTickets:            agg.TotalTickets,
		ResponseSLAMet:          agg.ResponseMet,
		ResponseSLABreached:     agg.ResponseBreached,
		ResolutionSLAMet:        agg.ResolutionMet,
		ResolutionSLABreached:   agg.ResolutionBreached,
		ResponseSLAPercentage:   percentage(agg.ResponseMet, agg.TotalTickets),
		ResolutionSLAPercentage: percentage(agg.ResolutionMet, agg.TotalTickets),
		AvgResponseTime:         average(agg.ResponseSum, agg.ResponseCount),
		AvgResolutionTime:       average(agg.ResolutionSum, agg.ResolutionCount),
	}, nil
}

// ListTickets serves the paginated, filterable listing. Team filters
// are normalized so either a synonym or a canonical label matches.
func (s *ReportService) ListTickets(ctx context.Context, filter TicketListFilter) (*TicketPage, error) {
	skip := filter.Skip
	if skip < 0 {
		skip = 0
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}

	repoFilter := repository.TicketFilter{
		ResolvedBy: filter.AgentName,
		SLAStatus:  filter.SLAStatus,
		Limit:      limit,
		Offset:     skip,
	}
	if filter.Team != nil {
		team := normalize.Team(*filter.Team)
		repoFilter.Team = &team
	}

	tickets, total, err := s.tickets.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	return &TicketPage{
		Tickets:    tickets,
		TotalCount: total,
		Skip:       skip,
		Limit:      limit,
	}, nil
}

// ListAgents returns the whole roster.
func (s *ReportService) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	return s.agents.List(ctx)
}

// InvalidateDashboard drops the cached summary. Wired to the
// tickets_ingested and data_cleared events.
func (s *ReportService) InvalidateDashboard(ctx context.Context) {
	if s.cache != nil {
		s.cache.Delete(ctx, dashboardCacheKey)
	}
}

func (s *ReportService) cacheGet(ctx context.Context) (*DashboardSummary, bool) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil, false
	}
	raw, ok := s.cache.Get(ctx, dashboardCacheKey)
	if !ok {
		return nil, false
	}
	var summary DashboardSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil, false
	}
	return &summary, true
}

func (s *ReportService) cacheSet(ctx context.Context, summary *DashboardSummary) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		s.logger.Warn("marshal dashboard summary for cache", zap.Error(err))
		return
	}
	s.cache.Set(ctx, dashboardCacheKey, string(raw), s.cacheTTL)
}

func orderedTeams(merged map[string]*repository.TeamAggregate) []string {
	var ordered []string
	for _, team := range normalize.CanonicalTeams() {
		if _, ok := merged[team]; ok {
			ordered = append(ordered, team)
		}
	}
	canonical := map[string]bool{}
	for _, team := range normalize.CanonicalTeams() {
		canonical[team] = true
	}
	var rest []string
	for team := range merged {
		if !canonical[team] {
			rest = append(rest, team)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

func percentage(met, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(met)/float64(total)*10000) / 100
}

func average(sum float64, count int64) float64 {
	if count <= 0 {
		return 0
	}
	return math.Round(sum/float64(count)*100) / 100
}

package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sla-tracker/internal/domain"
)

// TicketFilter captures listing parameters for the tickets endpoint.
// SLAStatus matches either the response or the resolution status.
type TicketFilter struct {
	ResolvedBy *string
	Team       *string
	SLAStatus  *string
	Limit      int
	Offset     int
}

// TeamCount is a per-team tally used for pending buckets.
type TeamCount struct {
	Team  string
	Count int64
}

// PerformerRow is one resolver's raw SLA tally, ordered by SLA ratio.
type PerformerRow struct {
	AgentName    string
	TotalTickets int64
	SLAMet       int64
}

// TeamAggregate carries raw per-team sums. Averages are computed by the
// report service after canonical-team merging, so sums and non-null
// counts are returned instead of ready-made averages.
type TeamAggregate struct {
	Team            string
	TotalTickets    int64
	ResponseMet     int64
	ResolutionMet   int64
	ResponseSum     float64
	ResponseCount   int64
	ResolutionSum   float64
	ResolutionCount int64
}

// AgentAggregate carries one resolver's SLA tallies and duration sums.
type AgentAggregate struct {
	TotalTickets       int64
	ResponseMet        int64
	ResponseBreached   int64
	ResolutionMet      int64
	ResolutionBreached int64
	ResponseSum        float64
	ResponseCount      int64
	ResolutionSum      float64
	ResolutionCount    int64
}

// SLATotals carries organization-wide SLA counters.
type SLATotals struct {
	ResponseMet   int64
	ResolutionMet int64
	Breached      int64
}

// TicketRepository encapsulates ticket persistence and the mechanical
// aggregation queries consumed by the report service.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, int64, error)
	CountByResolution(ctx context.Context) (total, resolved int64, err error)
	PendingByTeam(ctx context.Context) ([]TeamCount, error)
	SLACounts(ctx context.Context) (SLATotals, error)
	TopResolvers(ctx context.Context, limit int) ([]PerformerRow, error)
	TeamAggregates(ctx context.Context) ([]TeamAggregate, error)
	AgentAggregate(ctx context.Context, name string) (AgentAggregate, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, sr_number, created, raised_for, area, sub_area, problem_area,
        status, sub_status, assigned, updated_by, category, resolved_date, resolved_by,
        response_sla_status, resolution_sla_status, response_time_hours, resolution_time_hours,
        breached_response_hours, breached_resolution_hours, life_cycle_target_hours,
        total_time_taken_hours, team, created_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (` + ticketColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)`
	_, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.SRNumber,
		ticket.Created,
		ticket.RaisedFor,
		ticket.Area,
		ticket.SubArea,
		ticket.ProblemArea,
		ticket.Status,
		ticket.SubStatus,
		ticket.Assigned,
		ticket.UpdatedBy,
		ticket.Category,
		ticket.ResolvedDate,
		ticket.ResolvedBy,
		ticket.ResponseSLAStatus,
		ticket.ResolutionSLAStatus,
		ticket.ResponseTimeHours,
		ticket.ResolutionTimeHours,
		ticket.BreachedResponseHours,
		ticket.BreachedResolutionHours,
		ticket.LifeCycleTargetHours,
		ticket.TotalTimeTakenHours,
		ticket.Team,
		ticket.CreatedAt,
	)
	return err
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, int64, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ResolvedBy != nil {
		args = append(args, *filter.ResolvedBy)
		clauses = append(clauses, fmt.Sprintf("resolved_by=$%d", len(args)))
	}
	if filter.Team != nil {
		args = append(args, *filter.Team)
		clauses = append(clauses, fmt.Sprintf("team=$%d", len(args)))
	}
	if filter.SLAStatus != nil {
		args = append(args, *filter.SLAStatus)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(response_sla_status=%s OR resolution_sla_status=%s)", placeholder, placeholder))
	}

	where := strings.Join(clauses, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM tickets WHERE " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf("SELECT %s FROM tickets WHERE %s ORDER BY created_at, id LIMIT %d OFFSET %d",
		ticketColumns, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tickets, err := scanTickets(rows)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

func (r *ticketRepository) CountByResolution(ctx context.Context) (int64, int64, error) {
	const query = `
        SELECT COUNT(*), COUNT(*) FILTER (WHERE status = $1)
        FROM tickets`
	var total, resolved int64
	if err := r.pool.QueryRow(ctx, query, domain.StatusResolved).Scan(&total, &resolved); err != nil {
		return 0, 0, err
	}
	return total, resolved, nil
}

func (r *ticketRepository) PendingByTeam(ctx context.Context) ([]TeamCount, error) {
	const query = `
        SELECT team, COUNT(*)
        FROM tickets
        WHERE status IS NULL OR status <> $1
        GROUP BY team`
	rows, err := r.pool.Query(ctx, query, domain.StatusResolved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []TeamCount
	for rows.Next() {
		var tc TeamCount
		if err := rows.Scan(&tc.Team, &tc.Count); err != nil {
			return nil, err
		}
		result = append(result, tc)
	}
	return result, rows.Err()
}

func (r *ticketRepository) SLACounts(ctx context.Context) (SLATotals, error) {
	const query = `
        SELECT COUNT(*) FILTER (WHERE response_sla_status = $1),
               COUNT(*) FILTER (WHERE resolution_sla_status = $1),
               COUNT(*) FILTER (WHERE response_sla_status = $2 OR resolution_sla_status = $2)
        FROM tickets`
	var totals SLATotals
	err := r.pool.QueryRow(ctx, query, string(domain.SLAStatusMet), string(domain.SLAStatusBreached)).
		Scan(&totals.ResponseMet, &totals.ResolutionMet, &totals.Breached)
	return totals, err
}

func (r *ticketRepository) TopResolvers(ctx context.Context, limit int) ([]PerformerRow, error) {
	const query = `
        SELECT resolved_by, COUNT(*) AS total,
               COUNT(*) FILTER (WHERE resolution_sla_status = $1) AS sla_met
        FROM tickets
        WHERE resolved_by IS NOT NULL AND resolved_by <> ''
        GROUP BY resolved_by
        ORDER BY (COUNT(*) FILTER (WHERE resolution_sla_status = $1))::float / COUNT(*) DESC, total DESC
        LIMIT $2`
	rows, err := r.pool.Query(ctx, query, string(domain.SLAStatusMet), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PerformerRow
	for rows.Next() {
		var row PerformerRow
		if err := rows.Scan(&row.AgentName, &row.TotalTickets, &row.SLAMet); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *ticketRepository) TeamAggregates(ctx context.Context) ([]TeamAggregate, error) {
	const query = `
        SELECT team, COUNT(*),
               COUNT(*) FILTER (WHERE response_sla_status = $1),
               COUNT(*) FILTER (WHERE resolution_sla_status = $1),
               COALESCE(SUM(response_time_hours), 0), COUNT(response_time_hours),
               COALESCE(SUM(resolution_time_hours), 0), COUNT(resolution_time_hours)
        FROM tickets
        GROUP BY team`
	rows, err := r.pool.Query(ctx, query, string(domain.SLAStatusMet))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []TeamAggregate
	for rows.Next() {
		var agg TeamAggregate
		if err := rows.Scan(
			&agg.Team,
			&agg.TotalTickets,
			&agg.ResponseMet,
			&agg.ResolutionMet,
			&agg.ResponseSum,
			&agg.ResponseCount,
			&agg.ResolutionSum,
			&agg.ResolutionCount,
		); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	return result, rows.Err()
}

func (r *ticketRepository) AgentAggregate(ctx context.Context, name string) (AgentAggregate, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE response_sla_status = $2),
               COUNT(*) FILTER (WHERE response_sla_status = $3),
               COUNT(*) FILTER (WHERE resolution_sla_status = $2),
               COUNT(*) FILTER (WHERE resolution_sla_status = $3),
               COALESCE(SUM(response_time_hours), 0), COUNT(response_time_hours),
               COALESCE(SUM(resolution_time_hours), 0), COUNT(resolution_time_hours)
        FROM tickets
        WHERE resolved_by = $1`
	var agg AgentAggregate
	err := r.pool.QueryRow(ctx, query, name, string(domain.SLAStatusMet), string(domain.SLAStatusBreached)).Scan(
		&agg.TotalTickets,
		&agg.ResponseMet,
		&agg.ResponseBreached,
		&agg.ResolutionMet,
		&agg.ResolutionBreached,
		&agg.ResponseSum,
		&agg.ResponseCount,
		&agg.ResolutionSum,
		&agg.ResolutionCount,
	)
	return agg, err
}

func (r *ticketRepository) DeleteAll(ctx context.Context) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tickets`)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.SRNumber,
			&ticket.Created,
			&ticket.RaisedFor,
			&ticket.Area,
			&ticket.SubArea,
			&ticket.ProblemArea,
			&ticket.Status,
			&ticket.SubStatus,
			&ticket.Assigned,
			&ticket.UpdatedBy,
			&ticket.Category,
			&ticket.ResolvedDate,
			&ticket.ResolvedBy,
			&ticket.ResponseSLAStatus,
			&ticket.ResolutionSLAStatus,
			&ticket.ResponseTimeHours,
			&ticket.ResolutionTimeHours,
			&ticket.BreachedResponseHours,
			&ticket.BreachedResolutionHours,
			&ticket.LifeCycleTargetHours,
			&ticket.TotalTimeTakenHours,
			&ticket.Team,
			&ticket.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sla-tracker/internal/domain"
)

// AgentRepository encapsulates roster persistence. The roster is
// append-only: agents are created once per distinct name and never
// updated by the ingestion path.
type AgentRepository interface {
	// CreateIfAbsent inserts the agent unless one with the same name
	// exists. The unique index on name makes this safe under
	// concurrent uploads; the bool reports whether a row was inserted.
	CreateIfAbsent(ctx context.Context, agent *domain.Agent) (bool, error)
	GetByName(ctx context.Context, name string) (*domain.Agent, error)
	List(ctx context.Context) ([]domain.Agent, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type agentRepository struct {
	pool *pgxpool.Pool
}

// NewAgentRepository instantiates repository.
func NewAgentRepository(pool *pgxpool.Pool) AgentRepository {
	return &agentRepository{pool: pool}
}

const agentColumns = `id, name, employee_id, team, shift_start, shift_end, created_at`

func (r *agentRepository) CreateIfAbsent(ctx context.Context, agent *domain.Agent) (bool, error) {
	const query = `
        INSERT INTO agents (` + agentColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        ON CONFLICT (name) DO NOTHING`
	cmd, err := r.pool.Exec(ctx, query,
		agent.ID,
		agent.Name,
		agent.EmployeeID,
		agent.Team,
		agent.ShiftStart,
		agent.ShiftEnd,
		agent.CreatedAt,
	)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *agentRepository) GetByName(ctx context.Context, name string) (*domain.Agent, error) {
	const query = `SELECT ` + agentColumns + ` FROM agents WHERE name=$1`
	var agent domain.Agent
	if err := r.pool.QueryRow(ctx, query, name).Scan(
		&agent.ID,
		&agent.Name,
		&agent.EmployeeID,
		&agent.Team,
		&agent.ShiftStart,
		&agent.ShiftEnd,
		&agent.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *agentRepository) List(ctx context.Context) ([]domain.Agent, error) {
	const query = `SELECT ` + agentColumns + ` FROM agents ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAgents(rows)
}

func (r *agentRepository) DeleteAll(ctx context.Context) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM agents`)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func scanAgents(rows pgx.Rows) ([]domain.Agent, error) {
	var result []domain.Agent
	for rows.Next() {
		var agent domain.Agent
		if err := rows.Scan(
			&agent.ID,
			&agent.Name,
			&agent.EmployeeID,
			&agent.Team,
			&agent.ShiftStart,
			&agent.ShiftEnd,
			&agent.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, agent)
	}
	return result, rows.Err()
}

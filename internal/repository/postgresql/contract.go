package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type contractRepository struct {
	db *database.DB
}

func NewContractRepository(db *database.DB) contract.ContractRepository {
	return &contractRepository{db: db}
}

const contractColumns = `
	id, employee_id, state, sector, base_salary, active, start_date, end_date,
	trial_renewals, max_trial_renewals, notes, created_at, updated_at`

func scanContract(row pgx.Row) (contract.Contract, error) {
	var c contract.Contract
	var state, sector string
	err := row.Scan(
		&c.ID, &c.EmployeeID, &state, &sector, &c.BaseSalary, &c.Active, &c.StartDate, &c.EndDate,
		&c.TrialRenewals, &c.MaxTrialRenewals, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	c.State = contract.State(state)
	c.Sector = contract.Sector(sector)
	return c, err
}

// GetByID implements contract.ContractRepository.
func (r *contractRepository) GetByID(ctx context.Context, id string) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + contractColumns + `
		FROM contracts
		WHERE id = $1
		FOR UPDATE`

	c, err := scanContract(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return contract.Contract{}, contract.ErrContractNotFound
		}
		return contract.Contract{}, fmt.Errorf("failed to get contract: %w", err)
	}
	return c, nil
}

// GetActiveByEmployee implements contract.ContractRepository.
func (r *contractRepository) GetActiveByEmployee(ctx context.Context, employeeID string) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + contractColumns + `
		FROM contracts
		WHERE employee_id = $1 AND active = TRUE
		ORDER BY start_date DESC, created_at DESC
		LIMIT 1`

	c, err := scanContract(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return contract.Contract{}, contract.ErrContractNotFound
		}
		return contract.Contract{}, fmt.Errorf("failed to get active contract: %w", err)
	}
	return c, nil
}

// ListActiveEmployeeIDs implements contract.ContractRepository.
func (r *contractRepository) ListActiveEmployeeIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT employee_id
		FROM contracts
		WHERE active = TRUE
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListExpiring implements contract.ContractRepository.
func (r *contractRepository) ListExpiring(ctx context.Context, from, to time.Time) ([]contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + contractColumns + `
		FROM contracts
		WHERE active = TRUE AND state = 'CDD' AND end_date BETWEEN $1 AND $2
		ORDER BY end_date, id`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring contracts: %w", err)
	}
	defer rows.Close()

	contracts := make([]contract.Contract, 0)
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

// Update implements contract.ContractRepository.
func (r *contractRepository) Update(ctx context.Context, c contract.Contract) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE contracts
		SET state = $2, active = $3, end_date = $4, trial_renewals = $5, notes = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		c.ID,
		string(c.State),
		c.Active,
		c.EndDate,
		c.TrialRenewals,
		c.Notes,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update contract: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return contract.ErrContractNotFound
	}
	return nil
}

// ========== HISTORY ==========

// CreateEvents implements contract.ContractRepository.
func (r *contractRepository) CreateEvents(ctx context.Context, events []contract.Event) error {
	if len(events) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO contract_events (id, contract_id, employee_id, action, from_state, to_state, details, actor_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for _, e := range events {
		_, err := q.Exec(ctx, query,
			e.ID,
			e.ContractID,
			e.EmployeeID,
			string(e.Action),
			string(e.FromState),
			string(e.ToState),
			e.Details,
			e.ActorID,
			e.OccurredAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create contract event: %w", err)
		}
	}
	return nil
}

// ListEvents implements contract.ContractRepository.
func (r *contractRepository) ListEvents(ctx context.Context, contractID string) ([]contract.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, contract_id, employee_id, action, from_state, to_state, details, actor_id, occurred_at
		FROM contract_events
		WHERE contract_id = $1
		ORDER BY occurred_at, id
	`

	rows, err := q.Query(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contract events: %w", err)
	}
	defer rows.Close()

	events := make([]contract.Event, 0)
	for rows.Next() {
		var e contract.Event
		var action, from, to string
		if err := rows.Scan(&e.ID, &e.ContractID, &e.EmployeeID, &action, &from, &to, &e.Details, &e.ActorID, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan contract event: %w", err)
		}
		e.Action = contract.Action(action)
		e.FromState = contract.State(from)
		e.ToState = contract.State(to)
		events = append(events, e)
	}
	return events, rows.Err()
}

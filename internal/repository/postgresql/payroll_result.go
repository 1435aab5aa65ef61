package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payrollResultRepository struct {
	db *database.DB
}

func NewPayrollResultRepository(db *database.DB) payroll.ResultRepository {
	return &payrollResultRepository{db: db}
}

// Upsert implements payroll.ResultRepository. Headline figures get their own
// columns for reporting; the full breakdown is kept as JSONB.
func (r *payrollResultRepository) Upsert(ctx context.Context, res payroll.Result) (payroll.Result, error) {
	q := GetQuerier(ctx, r.db)

	if res.ID == "" {
		res.ID = uuid.New().String()
	}

	breakdownJSON, err := json.Marshal(res.Breakdown)
	if err != nil {
		return payroll.Result{}, fmt.Errorf("failed to marshal payroll breakdown: %w", err)
	}

	query := `
		INSERT INTO payroll_results (
			id, employee_id, year, month, gross, total_deductions, net, breakdown, computed_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT ON CONSTRAINT uk_payroll_result_period
		DO UPDATE SET gross = EXCLUDED.gross,
		              total_deductions = EXCLUDED.total_deductions,
		              net = EXCLUDED.net,
		              breakdown = EXCLUDED.breakdown,
		              computed_by = EXCLUDED.computed_by,
		              updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		res.ID,
		res.EmployeeID,
		res.Year,
		res.Month,
		res.Breakdown.Gross,
		res.Breakdown.TotalDeductions,
		res.Breakdown.Net,
		breakdownJSON,
		res.ComputedBy,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return payroll.Result{}, fmt.Errorf("failed to upsert payroll result: %w", err)
	}
	return res, nil
}

// GetByEmployeePeriod implements payroll.ResultRepository.
func (r *payrollResultRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (payroll.Result, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, year, month, breakdown, computed_by, created_at, updated_at
		FROM payroll_results
		WHERE employee_id = $1 AND year = $2 AND month = $3
	`

	res, err := scanResult(q.QueryRow(ctx, query, employeeID, year, month))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Result{}, payroll.ErrPayrollResultNotFound
		}
		return payroll.Result{}, fmt.Errorf("failed to get payroll result: %w", err)
	}
	return res, nil
}

// ListByPeriod implements payroll.ResultRepository.
func (r *payrollResultRepository) ListByPeriod(ctx context.Context, year, month int) ([]payroll.Result, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, year, month, breakdown, computed_by, created_at, updated_at
		FROM payroll_results
		WHERE year = $1 AND month = $2
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll results: %w", err)
	}
	defer rows.Close()

	results := make([]payroll.Result, 0)
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll result: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

func scanResult(row pgx.Row) (payroll.Result, error) {
	var res payroll.Result
	var breakdownJSON []byte
	if err := row.Scan(&res.ID, &res.EmployeeID, &res.Year, &res.Month, &breakdownJSON, &res.ComputedBy, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return payroll.Result{}, err
	}
	if err := json.Unmarshal(breakdownJSON, &res.Breakdown); err != nil {
		return payroll.Result{}, fmt.Errorf("failed to unmarshal payroll breakdown: %w", err)
	}
	return res, nil
}

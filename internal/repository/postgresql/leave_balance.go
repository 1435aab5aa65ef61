package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type leaveBalanceRepository struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepository{db: db}
}

// ListByEmployeeYears implements leave.BalanceRepository.
func (r *leaveBalanceRepository) ListByEmployeeYears(ctx context.Context, employeeID string, fromYear, toYear int, forUpdate bool) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, year, entitlement_days, used_days, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND year BETWEEN $2 AND $3
		ORDER BY year`
	if forUpdate {
		query += `
		FOR UPDATE`
	}

	rows, err := q.Query(ctx, query, employeeID, fromYear, toYear)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	defer rows.Close()

	balances := make([]leave.Balance, 0)
	for rows.Next() {
		var b leave.Balance
		if err := rows.Scan(&b.ID, &b.EmployeeID, &b.Year, &b.EntitlementDays, &b.UsedDays, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

// Upsert implements leave.BalanceRepository.
func (r *leaveBalanceRepository) Upsert(ctx context.Context, b leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	if b.ID == "" {
		b.ID = uuid.New().String()
	}

	query := `
		INSERT INTO leave_balances (id, employee_id, year, entitlement_days, used_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT ON CONSTRAINT uk_leave_balance_employee_year
		DO UPDATE SET entitlement_days = EXCLUDED.entitlement_days,
		              used_days = EXCLUDED.used_days,
		              updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, b.ID, b.EmployeeID, b.Year, b.EntitlementDays, b.UsedDays).Scan(
		&b.ID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "chk_leave_balance_used") {
			return leave.Balance{}, fmt.Errorf("used days out of range for %d: %w", b.Year, err)
		}
		return leave.Balance{}, fmt.Errorf("failed to upsert leave balance: %w", err)
	}
	return b, nil
}

// UpdateUsed implements leave.BalanceRepository. Negative values are stored as zero.
func (r *leaveBalanceRepository) UpdateUsed(ctx context.Context, employeeID string, year int, usedDays decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	if usedDays.IsNegative() {
		usedDays = decimal.Zero
	}

	query := `
		UPDATE leave_balances
		SET used_days = $3, updated_at = NOW()
		WHERE employee_id = $1 AND year = $2
	`

	tag, err := q.Exec(ctx, query, employeeID, year, usedDays)
	if err != nil {
		return fmt.Errorf("failed to update used leave days: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}
	return nil
}

// DeleteUpToYear implements leave.BalanceRepository.
func (r *leaveBalanceRepository) DeleteUpToYear(ctx context.Context, employeeID string, year int) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_balances WHERE employee_id = $1 AND year <= $2`, employeeID, year)
	if err != nil {
		return 0, fmt.Errorf("failed to purge leave balances: %w", err)
	}
	return tag.RowsAffected(), nil
}

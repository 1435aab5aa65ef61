package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/google/uuid"
)

type leaveAccrualRepository struct {
	db *database.DB
}

func NewLeaveAccrualRepository(db *database.DB) leave.AccrualRepository {
	return &leaveAccrualRepository{db: db}
}

// Create implements leave.AccrualRepository.
func (r *leaveAccrualRepository) Create(ctx context.Context, a leave.Accrual) (leave.Accrual, error) {
	q := GetQuerier(ctx, r.db)

	if a.ID == "" {
		a.ID = uuid.New().String()
	}

	query := `
		INSERT INTO leave_accruals (id, employee_id, year, month, days, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query, a.ID, a.EmployeeID, a.Year, a.Month, a.Days).Scan(&a.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "uk_leave_accrual_period") {
			return leave.Accrual{}, leave.ErrAccrualAlreadyExists
		}
		return leave.Accrual{}, fmt.Errorf("failed to create leave accrual: %w", err)
	}
	return a, nil
}

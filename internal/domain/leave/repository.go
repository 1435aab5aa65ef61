package leave

import (
	"context"

	"github.com/shopspring/decimal"
)

// BalanceRepository - interface for leave_balances table
type BalanceRepository interface {
	// ListByEmployeeYears returns rows with fromYear <= year <= toYear ordered by year.
	// forUpdate locks the returned rows until the surrounding transaction ends.
	ListByEmployeeYears(ctx context.Context, employeeID string, fromYear, toYear int, forUpdate bool) ([]Balance, error)

	// Upsert creates the (employee, year) row or overwrites entitlement and used days.
	Upsert(ctx context.Context, balance Balance) (Balance, error)
	UpdateUsed(ctx context.Context, employeeID string, year int, usedDays decimal.Decimal) error

	// DeleteUpToYear purges the employee's rows with year <= year.
	DeleteUpToYear(ctx context.Context, employeeID string, year int) (int64, error)
}

// AccrualRepository - interface for leave_accruals table
type AccrualRepository interface {
	// Create returns ErrAccrualAlreadyExists when (employee, year, month) is taken.
	Create(ctx context.Context, accrual Accrual) (Accrual, error)
}

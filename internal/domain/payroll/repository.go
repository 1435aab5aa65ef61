package payroll

import "context"

// ResultRepository defines data access for persisted payroll results.
type ResultRepository interface {
	// Upsert inserts the result or overwrites the row of the same (employee, month, year).
	Upsert(ctx context.Context, result Result) (Result, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (Result, error)
	ListByPeriod(ctx context.Context, year, month int) ([]Result, error)
}

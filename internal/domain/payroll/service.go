package payroll

import "context"

type PayrollService interface {
	// ComputePayroll computes one employee/month. With DryRun it performs no
	// writes; otherwise it consumes leave, stores the result and resolves
	// lateness alerts.
	ComputePayroll(ctx context.Context, req ComputeRequest) (Breakdown, error)

	// RunPeriod computes every employee holding an active contract.
	RunPeriod(ctx context.Context, req RunRequest) (RunReport, error)

	GetResult(ctx context.Context, employeeID string, year, month int) (ResultResponse, error)

	// ListResults returns every stored result of the period, ordered by employee.
	ListResults(ctx context.Context, year, month int) (PeriodResultsResponse, error)
	Snapshot(ctx context.Context) (Snapshot, error)
}

package leave

import (
	"context"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/audit"
)

type LeaveService interface {
	// GetBalances returns the rolling-window balances ending at asOfYear.
	GetBalances(ctx context.Context, employeeID string, asOfYear int) (BalanceSummaryResponse, error)

	// ProcessCarryover moves unused days of the two previous years into year,
	// oldest first, and purges balances older than the rolling window.
	ProcessCarryover(ctx context.Context, actor audit.Actor, req CarryoverRequest) (CarryoverReport, error)

	// AccrueMonth credits the monthly entitlement once per employee and period.
	AccrueMonth(ctx context.Context, req AccrueRequest) (AccrualReport, error)
}

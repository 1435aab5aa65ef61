package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
)

type LeaveJobs struct {
	leaveService     leave.LeaveService
	accrualEnabled   bool
	carryoverEnabled bool
	now              func() time.Time
}

func NewLeaveJobs(leaveService leave.LeaveService, accrualEnabled, carryoverEnabled bool) *LeaveJobs {
	return &LeaveJobs{
		leaveService:     leaveService,
		accrualEnabled:   accrualEnabled,
		carryoverEnabled: carryoverEnabled,
		now:              time.Now,
	}
}

func (j *LeaveJobs) RegisterJobs(scheduler *Scheduler) {
	if j.accrualEnabled {
		scheduler.AddJob("leave_monthly_accrual", 1*time.Hour, j.AccrueCurrentMonth)
	}
	if j.carryoverEnabled {
		scheduler.AddJob("leave_year_end_carryover", 1*time.Hour, j.CarryoverNewYear)
	}
}

// AccrueCurrentMonth credits the current month once a day. Accruals are
// recorded per period, so repeated runs credit nothing.
func (j *LeaveJobs) AccrueCurrentMonth(ctx context.Context) error {
	now := j.now().UTC()
	// Only run at midnight (00:00-00:59 UTC)
	if !InDailySlot(now) && !Forced(ctx) {
		return nil
	}

	slog.Info("Cron: Starting leave accrual job", "year", now.Year(), "month", int(now.Month()))

	report, err := j.leaveService.AccrueMonth(ctx, leave.AccrueRequest{Year: now.Year(), Month: int(now.Month())})
	if err != nil {
		return fmt.Errorf("failed to accrue leave: %w", err)
	}

	slog.Info("Cron: Leave accrual done", "credited", len(report.Credited), "skipped", len(report.Skipped))
	return nil
}

// CarryoverNewYear moves unused days into the new year on January 1st.
func (j *LeaveJobs) CarryoverNewYear(ctx context.Context) error {
	now := j.now().UTC()
	newYear := now.Month() == time.January && now.Day() == 1 && InDailySlot(now)
	if !newYear && !Forced(ctx) {
		return nil
	}

	slog.Info("Cron: Starting leave carryover job", "year", now.Year())

	report, err := j.leaveService.ProcessCarryover(ctx, audit.System, leave.CarryoverRequest{Year: now.Year()})
	if err != nil {
		return fmt.Errorf("failed to process carryover: %w", err)
	}

	slog.Info("Cron: Leave carryover done", "processed", report.Processed)
	return nil
}

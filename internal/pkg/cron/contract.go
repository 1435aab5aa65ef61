package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/notification"
)

type ContractJobs struct {
	contractRepo    contract.ContractRepository
	notificationSvc notification.Service
	windowDays      int
	now             func() time.Time
}

func NewContractJobs(contractRepo contract.ContractRepository, notificationSvc notification.Service, windowDays int) *ContractJobs {
	return &ContractJobs{
		contractRepo:    contractRepo,
		notificationSvc: notificationSvc,
		windowDays:      windowDays,
		now:             time.Now,
	}
}

func (j *ContractJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("contract_expiry_alerts", 1*time.Hour, j.AlertExpiringContracts)
}

// AlertExpiringContracts raises one CONTRACT_EXPIRING alert per fixed-term
// contract, on the day its end date enters the warning window.
func (j *ContractJobs) AlertExpiringContracts(ctx context.Context) error {
	now := j.now().UTC()
	// Only run at midnight (00:00-00:59 UTC)
	if !InDailySlot(now) && !Forced(ctx) {
		return nil
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	target := today.AddDate(0, 0, j.windowDays)

	contracts, err := j.contractRepo.ListExpiring(ctx, target, target)
	if err != nil {
		return fmt.Errorf("failed to list expiring contracts: %w", err)
	}
	if len(contracts) == 0 {
		slog.Info("Cron: No contracts entering the expiry window")
		return nil
	}

	reqs := make([]notification.CreateAlertRequest, 0, len(contracts))
	for _, c := range contracts {
		employeeID := c.EmployeeID
		reqs = append(reqs, notification.CreateAlertRequest{
			EmployeeID: &employeeID,
			Type:       notification.TypeContractExpiring,
			Message:    fmt.Sprintf("Fixed-term contract ends on %s", c.EndDate.Format("2006-01-02")),
			Data: map[string]interface{}{
				"contract_id": c.ID,
				"end_date":    c.EndDate.Format("2006-01-02"),
				"days_left":   j.windowDays,
			},
		})
	}

	if err := j.notificationSvc.QueueBulkAlerts(ctx, reqs); err != nil {
		return fmt.Errorf("failed to queue expiry alerts: %w", err)
	}

	slog.Info("Cron: Queued contract expiry alerts", "count", len(reqs))
	return nil
}

// Package app wires repositories and services for the API server and the CLI.
package app

import (
	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/notification"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/keylock"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/postgresql"
	contractService "github.com/cmlabs-hris/payroll-engine/internal/service/contract"
	leaveService "github.com/cmlabs-hris/payroll-engine/internal/service/leave"
	notificationService "github.com/cmlabs-hris/payroll-engine/internal/service/notification"
	payrollService "github.com/cmlabs-hris/payroll-engine/internal/service/payroll"
)

type Services struct {
	ContractRepo contract.ContractRepository

	Payroll  payroll.PayrollService
	Contract contract.ContractService
	Leave    leave.LeaveService
	Alerts   notification.Service
}

// NewServices builds the PostgreSQL-backed services. Every service shares one
// key locker so payroll, carryover and accrual serialize on the same balances.
// Call Close to flush queued alerts.
func NewServices(db *database.DB, snapshot payroll.Snapshot, alertCfg notificationService.Config) *Services {
	tx := postgresql.NewTransactor(db)
	locks := keylock.New()

	contractRepo := postgresql.NewContractRepository(db)
	balanceRepo := postgresql.NewLeaveBalanceRepository(db)

	alerts := notificationService.NewAlertService(postgresql.NewAlertRepository(db), alertCfg)

	return &Services{
		ContractRepo: contractRepo,
		Payroll: payrollService.NewPayrollService(
			tx,
			payroll.NewStaticSnapshot(snapshot),
			contractRepo,
			postgresql.NewAttendanceRepository(db),
			balanceRepo,
			postgresql.NewPayrollResultRepository(db),
			alerts,
			locks,
		),
		Contract: contractService.NewContractService(tx, contractRepo, alerts),
		Leave:    leaveService.NewLeaveService(tx, balanceRepo, postgresql.NewLeaveAccrualRepository(db), contractRepo, locks),
		Alerts:   alerts,
	}
}

func (s *Services) Close() {
	s.Alerts.Stop()
}

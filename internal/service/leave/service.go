package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/keylock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LeaveServiceImpl struct {
	tx           database.Transactor
	balanceRepo  leave.BalanceRepository
	accrualRepo  leave.AccrualRepository
	contractRepo contract.ContractRepository
	locks        *keylock.Locker
	calculator   *CarryoverCalculator
	now          func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	balanceRepo leave.BalanceRepository,
	accrualRepo leave.AccrualRepository,
	contractRepo contract.ContractRepository,
	locks *keylock.Locker,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:           tx,
		balanceRepo:  balanceRepo,
		accrualRepo:  accrualRepo,
		contractRepo: contractRepo,
		locks:        locks,
		calculator:   NewCarryoverCalculator(),
		now:          time.Now,
	}
}

// ========== BALANCES ==========

// GetBalances implements leave.LeaveService.
func (s *LeaveServiceImpl) GetBalances(ctx context.Context, employeeID string, asOfYear int) (leave.BalanceSummaryResponse, error) {
	if asOfYear < 2000 || asOfYear > 2100 {
		return leave.BalanceSummaryResponse{}, leave.ErrInvalidYear
	}

	years := leave.WindowYears(asOfYear)
	balances, err := s.balanceRepo.ListByEmployeeYears(ctx, employeeID, years[0], years[len(years)-1], false)
	if err != nil {
		return leave.BalanceSummaryResponse{}, fmt.Errorf("failed to list leave balances: %w", err)
	}

	resp := leave.BalanceSummaryResponse{
		EmployeeID:     employeeID,
		AsOfYear:       asOfYear,
		Balances:       make([]leave.BalanceResponse, 0, len(balances)),
		TotalAvailable: decimal.Zero,
	}
	for _, b := range balances {
		available := decimal.Max(decimal.Zero, b.Available())
		resp.Balances = append(resp.Balances, leave.BalanceResponse{
			Year:            b.Year,
			EntitlementDays: b.EntitlementDays,
			UsedDays:        b.UsedDays,
			AvailableDays:   available,
		})
		resp.TotalAvailable = resp.TotalAvailable.Add(available)
	}
	return resp, nil
}

// ========== CARRYOVER ==========

// ProcessCarryover implements leave.LeaveService.
func (s *LeaveServiceImpl) ProcessCarryover(ctx context.Context, actor audit.Actor, req leave.CarryoverRequest) (leave.CarryoverReport, error) {
	if err := req.Validate(); err != nil {
		return leave.CarryoverReport{}, err
	}

	employeeIDs, err := s.contractRepo.ListActiveEmployeeIDs(ctx)
	if err != nil {
		return leave.CarryoverReport{}, fmt.Errorf("failed to list employees: %w", err)
	}

	report := leave.CarryoverReport{Year: req.Year, Entries: make([]leave.CarryoverEntry, 0, len(employeeIDs))}
	for _, employeeID := range employeeIDs {
		entry, err := s.carryover(ctx, employeeID, req.Year)
		if err != nil {
			return report, err
		}
		report.Entries = append(report.Entries, entry)
		report.Processed++
	}

	slog.Info("Leave carryover processed",
		"year", req.Year, "employees", report.Processed, "actor_id", actor.OrSystem().ID)
	return report, nil
}

func (s *LeaveServiceImpl) carryover(ctx context.Context, employeeID string, year int) (leave.CarryoverEntry, error) {
	unlock := s.locks.Lock(leave.LockKeys(employeeID, leave.WindowYears(year)...)...)
	defer unlock()

	entry := leave.CarryoverEntry{EmployeeID: employeeID, CarriedDays: decimal.Zero}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		balances, err := s.balanceRepo.ListByEmployeeYears(ctx, employeeID, year-2, year, true)
		if err != nil {
			return fmt.Errorf("failed to list leave balances: %w", err)
		}

		plan := s.calculator.Plan(employeeID, year, balances)
		for _, b := range plan.Updates {
			if _, err := s.balanceRepo.Upsert(ctx, b); err != nil {
				return fmt.Errorf("failed to save leave balance %d: %w", b.Year, err)
			}
		}
		entry.CarriedDays = plan.Carried

		purged, err := s.balanceRepo.DeleteUpToYear(ctx, employeeID, year-leave.RollingWindowYears)
		if err != nil {
			return fmt.Errorf("failed to purge leave balances: %w", err)
		}
		entry.PurgedRows = purged
		return nil
	})
	if err != nil {
		return leave.CarryoverEntry{}, fmt.Errorf("carryover for employee %s: %w", employeeID, err)
	}
	return entry, nil
}

// ========== ACCRUAL ==========

// AccrueMonth implements leave.LeaveService. Employees whose active contract
// does not overlap the month are skipped, as are those already credited.
func (s *LeaveServiceImpl) AccrueMonth(ctx context.Context, req leave.AccrueRequest) (leave.AccrualReport, error) {
	if err := req.Validate(); err != nil {
		return leave.AccrualReport{}, err
	}

	employeeIDs, err := s.contractRepo.ListActiveEmployeeIDs(ctx)
	if err != nil {
		return leave.AccrualReport{}, fmt.Errorf("failed to list employees: %w", err)
	}

	first, last := attendance.MonthRange(req.Year, req.Month)
	report := leave.AccrualReport{Year: req.Year, Month: req.Month, Credited: []string{}, Skipped: []string{}}

	for _, employeeID := range employeeIDs {
		c, err := s.contractRepo.GetActiveByEmployee(ctx, employeeID)
		if err != nil {
			if errors.Is(err, contract.ErrContractNotFound) {
				report.Skipped = append(report.Skipped, employeeID)
				continue
			}
			return report, fmt.Errorf("failed to get contract: %w", err)
		}
		if c.StartDate.After(last) || (c.EndDate != nil && c.EndDate.Before(first)) {
			report.Skipped = append(report.Skipped, employeeID)
			continue
		}

		credited, err := s.accrue(ctx, employeeID, req.Year, req.Month)
		if err != nil {
			return report, err
		}
		if credited {
			report.Credited = append(report.Credited, employeeID)
		} else {
			report.Skipped = append(report.Skipped, employeeID)
		}
	}

	slog.Info("Leave accrual processed",
		"year", req.Year, "month", req.Month, "credited", len(report.Credited), "skipped", len(report.Skipped))
	return report, nil
}

func (s *LeaveServiceImpl) accrue(ctx context.Context, employeeID string, year, month int) (bool, error) {
	unlock := s.locks.Lock(leave.LockKeys(employeeID, year)...)
	defer unlock()

	credited := false
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := s.accrualRepo.Create(ctx, leave.Accrual{
			ID:         uuid.New().String(),
			EmployeeID: employeeID,
			Year:       year,
			Month:      month,
			Days:       leave.MonthlyAccrualDays,
			CreatedAt:  s.now().UTC(),
		})
		if err != nil {
			if errors.Is(err, leave.ErrAccrualAlreadyExists) {
				return err
			}
			return fmt.Errorf("failed to record accrual: %w", err)
		}

		balances, err := s.balanceRepo.ListByEmployeeYears(ctx, employeeID, year, year, true)
		if err != nil {
			return fmt.Errorf("failed to list leave balances: %w", err)
		}
		b := leave.Balance{EmployeeID: employeeID, Year: year, EntitlementDays: decimal.Zero, UsedDays: decimal.Zero}
		if len(balances) > 0 {
			b = balances[0]
		}
		if _, err := s.balanceRepo.Upsert(ctx, b.WithEntitlement(b.EntitlementDays.Add(leave.MonthlyAccrualDays))); err != nil {
			return fmt.Errorf("failed to credit leave balance: %w", err)
		}
		credited = true
		return nil
	})
	if err != nil {
		if errors.Is(err, leave.ErrAccrualAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("accrual for employee %s: %w", employeeID, err)
	}
	return credited, nil
}

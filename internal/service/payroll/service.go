package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/notification"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/keylock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	tx             database.Transactor
	snapshots      payroll.SnapshotProvider
	contracts      *ContractResolver
	contractRepo   contract.ContractRepository
	attendanceRepo attendance.Repository
	balanceRepo    leave.BalanceRepository
	resultRepo     payroll.ResultRepository
	alerts         notification.Service
	locks          *keylock.Locker
	now            func() time.Time
}

func NewPayrollService(
	tx database.Transactor,
	snapshots payroll.SnapshotProvider,
	contractRepo contract.ContractRepository,
	attendanceRepo attendance.Repository,
	balanceRepo leave.BalanceRepository,
	resultRepo payroll.ResultRepository,
	alerts notification.Service,
	locks *keylock.Locker,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:             tx,
		snapshots:      snapshots,
		contracts:      NewContractResolver(contractRepo),
		contractRepo:   contractRepo,
		attendanceRepo: attendanceRepo,
		balanceRepo:    balanceRepo,
		resultRepo:     resultRepo,
		alerts:         alerts,
		locks:          locks,
		now:            time.Now,
	}
}

// ========== COMPUTE ==========

// ComputePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) ComputePayroll(ctx context.Context, req payroll.ComputeRequest) (payroll.Breakdown, error) {
	if err := req.Validate(); err != nil {
		return payroll.Breakdown{}, err
	}

	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return payroll.Breakdown{}, fmt.Errorf("failed to load rate snapshot: %w", err)
	}

	if req.DryRun {
		comp, err := s.compute(ctx, req, snap, false)
		if err != nil {
			return payroll.Breakdown{}, err
		}
		return comp.Breakdown, nil
	}
	return s.persist(ctx, req, snap)
}

// persist serializes on the employee's window balances, then consumes leave
// and stores the result in one transaction. Alert resolution runs after commit.
func (s *PayrollServiceImpl) persist(ctx context.Context, req payroll.ComputeRequest, snap payroll.Snapshot) (payroll.Breakdown, error) {
	unlock := s.locks.Lock(leave.LockKeys(req.EmployeeID, leave.WindowYears(req.Year)...)...)
	defer unlock()

	var comp Computation
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		comp, err = s.compute(ctx, req, snap, true)
		if err != nil {
			return err
		}

		if err := s.applyConsumption(ctx, req.EmployeeID, comp); err != nil {
			return err
		}

		now := s.now().UTC()
		_, err = s.resultRepo.Upsert(ctx, payroll.Result{
			ID:         uuid.New().String(),
			EmployeeID: req.EmployeeID,
			Year:       req.Year,
			Month:      req.Month,
			Breakdown:  comp.Breakdown,
			ComputedBy: req.Actor.OrSystem().ID,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			return fmt.Errorf("failed to save payroll result: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.Breakdown{}, err
	}

	if comp.Lateness.TotalMinutes > 0 && comp.Breakdown.SalaryBase.IsPositive() && s.alerts != nil {
		resolved, err := s.alerts.ResolveLateAlerts(ctx, req.EmployeeID, req.Year, req.Month)
		if err != nil {
			slog.Warn("Failed to resolve lateness alerts",
				"employee_id", req.EmployeeID, "year", req.Year, "month", req.Month, "error", err)
		} else if resolved > 0 {
			slog.Info("Resolved lateness alerts", "employee_id", req.EmployeeID, "count", resolved)
		}
	}

	return comp.Breakdown, nil
}

func (s *PayrollServiceImpl) compute(ctx context.Context, req payroll.ComputeRequest, snap payroll.Snapshot, forUpdate bool) (Computation, error) {
	resolved, err := s.contracts.Resolve(ctx, req.EmployeeID, req.Year, req.Month)
	if err != nil {
		return Computation{}, err
	}

	records, err := s.attendanceRepo.ListRecordsByMonth(ctx, req.EmployeeID, req.Year, req.Month)
	if err != nil {
		return Computation{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	absences, err := s.attendanceRepo.ListAbsencesByMonth(ctx, req.EmployeeID, req.Year, req.Month)
	if err != nil {
		return Computation{}, fmt.Errorf("failed to list absences: %w", err)
	}

	years := leave.WindowYears(req.Year)
	balances, err := s.balanceRepo.ListByEmployeeYears(ctx, req.EmployeeID, years[0], years[len(years)-1], forUpdate)
	if err != nil {
		return Computation{}, fmt.Errorf("failed to list leave balances: %w", err)
	}

	return Assemble(Input{
		EmployeeID: req.EmployeeID,
		Year:       req.Year,
		Month:      req.Month,
		DryRun:     req.DryRun,
		Contract:   resolved,
		Records:    records,
		Absences:   absences,
		Balances:   balances,
		Snapshot:   snap,
	}), nil
}

func (s *PayrollServiceImpl) applyConsumption(ctx context.Context, employeeID string, comp Computation) error {
	if len(comp.Lateness.Consumption) == 0 {
		return nil
	}

	byYear := make(map[int]leave.Balance, len(comp.Balances))
	for _, b := range comp.Balances {
		byYear[b.Year] = b
	}

	for _, c := range comp.Lateness.Consumption {
		if !c.Days.IsPositive() {
			continue
		}
		b, ok := byYear[c.Year]
		if !ok {
			continue
		}
		updated := b.Consume(c.Days)
		if err := s.balanceRepo.UpdateUsed(ctx, employeeID, c.Year, updated.UsedDays); err != nil {
			return fmt.Errorf("failed to consume leave for %d: %w", c.Year, err)
		}
	}
	return nil
}

// ========== BATCH ==========

// RunPeriod implements payroll.PayrollService. One employee failing does not
// stop the run; failures are reported next to the breakdowns.
func (s *PayrollServiceImpl) RunPeriod(ctx context.Context, req payroll.RunRequest) (payroll.RunReport, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunReport{}, err
	}

	employeeIDs, err := s.contractRepo.ListActiveEmployeeIDs(ctx)
	if err != nil {
		return payroll.RunReport{}, fmt.Errorf("failed to list employees: %w", err)
	}

	report := payroll.RunReport{
		Year:       req.Year,
		Month:      req.Month,
		DryRun:     req.DryRun,
		Breakdowns: make([]payroll.Breakdown, 0, len(employeeIDs)),
		TotalGross: decimal.Zero,
		TotalNet:   decimal.Zero,
	}

	for _, employeeID := range employeeIDs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		b, err := s.ComputePayroll(ctx, payroll.ComputeRequest{
			EmployeeID: employeeID,
			Year:       req.Year,
			Month:      req.Month,
			DryRun:     req.DryRun,
			Actor:      req.Actor,
		})
		if err != nil {
			slog.Error("Payroll computation failed", "employee_id", employeeID, "error", err)
			report.Failures = append(report.Failures, payroll.RunFailure{EmployeeID: employeeID, Error: err.Error()})
			continue
		}
		report.Breakdowns = append(report.Breakdowns, b)
		report.TotalGross = report.TotalGross.Add(b.Gross)
		report.TotalNet = report.TotalNet.Add(b.Net)
	}

	slog.Info("Payroll run finished",
		"year", req.Year, "month", req.Month, "dry_run", req.DryRun,
		"computed", len(report.Breakdowns), "failed", len(report.Failures))
	return report, nil
}

// ========== QUERIES ==========

// GetResult implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetResult(ctx context.Context, employeeID string, year, month int) (payroll.ResultResponse, error) {
	result, err := s.resultRepo.GetByEmployeePeriod(ctx, employeeID, year, month)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollResultNotFound) {
			return payroll.ResultResponse{}, err
		}
		return payroll.ResultResponse{}, fmt.Errorf("failed to get payroll result: %w", err)
	}
	return toResultResponse(result), nil
}

// ListResults implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListResults(ctx context.Context, year, month int) (payroll.PeriodResultsResponse, error) {
	if month < 1 || month > 12 || year < 1 {
		return payroll.PeriodResultsResponse{}, payroll.ErrInvalidPeriod
	}

	results, err := s.resultRepo.ListByPeriod(ctx, year, month)
	if err != nil {
		return payroll.PeriodResultsResponse{}, fmt.Errorf("failed to list payroll results: %w", err)
	}

	out := payroll.PeriodResultsResponse{
		Year:    year,
		Month:   month,
		Total:   len(results),
		Results: make([]payroll.ResultResponse, 0, len(results)),
	}
	for _, result := range results {
		out.Results = append(out.Results, toResultResponse(result))
	}
	return out, nil
}

func toResultResponse(result payroll.Result) payroll.ResultResponse {
	return payroll.ResultResponse{
		ID:         result.ID,
		ComputedBy: result.ComputedBy,
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
		Breakdown:  result.Breakdown,
	}
}

// Snapshot implements payroll.PayrollService.
func (s *PayrollServiceImpl) Snapshot(ctx context.Context) (payroll.Snapshot, error) {
	return s.snapshots.Current(ctx)
}

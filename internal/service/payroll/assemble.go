package payroll

import (
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Input is everything one employee/month computation reads.
type Input struct {
	EmployeeID string
	Year       int
	Month      int
	DryRun     bool
	Contract   ResolvedContract
	Records    []attendance.Record
	Absences   []attendance.Absence
	Balances   []leave.Balance
	Snapshot   payroll.Snapshot
}

// Computation is the breakdown plus the leave write plan for persist mode.
type Computation struct {
	Breakdown payroll.Breakdown
	Lateness  LatenessOutcome
	Balances  []leave.Balance
}

// Assemble runs every calculator in order. It has no side effects: the same
// input always yields the same breakdown.
func Assemble(in Input) Computation {
	snap := in.Snapshot
	salary := in.Contract.Salary
	if salary.IsNegative() {
		salary = decimal.Zero
	}

	var notes []string
	if !in.Contract.Found {
		notes = append(notes, "no active contract: base salary 0, sector NON_AGRI")
	}

	totals := AggregateAttendance(in.Records, in.Year, in.Month, snap.HolidayCalendar(in.Year))
	if totals.InferredHolidayMinutes > 0 {
		notes = append(notes, fmt.Sprintf("%d worked minutes on holidays counted as holiday work", totals.InferredHolidayMinutes))
	}

	monthlyHours := snap.HoursPerMonth(in.Contract.Sector)
	hoursWorked := MinutesToHours(totals.WorkedMinutes)
	hourly := HourlyRate(salary, monthlyHours)
	premiums := CalculatePremiums(totals, hourly, snap)
	if premiums.OvertimeHours.GreaterThan(snap.OvertimeCapHours) {
		notes = append(notes, fmt.Sprintf("overtime capped at %s hours", snap.OvertimeCapHours.String()))
	}

	gross := salary.Add(premiums.Total()).Round(2)
	contrib := CalculateContributions(gross, salary, snap)
	taxable := TaxableBase(gross, contrib.Employee, contrib.Health)
	tax := IncomeTax(taxable, snap.TaxBrackets)

	absenceDays := CountUnjustifiedAbsences(in.Absences, in.Year, in.Month)
	_, absenceDeduction := AbsenceDeduction(salary, absenceDays, snap)

	late := ResolveLateness(totals.LateMinutes, totals.PauseExcessMinutes, salary, hourly, in.Year, in.Balances, snap)
	if late.TotalMinutes > 0 && !salary.IsPositive() {
		notes = append(notes, "lateness ignored: base salary is 0")
	}
	if late.PauseMinutes > 0 && salary.IsPositive() {
		notes = append(notes, fmt.Sprintf("%d minutes of pause excess counted as lateness", late.PauseMinutes))
	}
	if late.DaysConsumed.IsPositive() {
		notes = append(notes, fmt.Sprintf("%s leave days taken to cover %d late minutes", late.DaysConsumed.StringFixed(2), late.TotalMinutes))
	}
	if late.Penalty.IsPositive() {
		notes = append(notes, fmt.Sprintf("late penalty: %s h x %s = %s",
			late.HoursPenalized.StringFixed(2), late.PenaltyRate.StringFixed(2), late.Penalty.StringFixed(2)))
	}

	deductions := contrib.Employee.Add(contrib.Health).Add(absenceDeduction).Add(late.Penalty)
	if snap.DeductIncomeTax {
		deductions = deductions.Add(tax)
	} else if tax.IsPositive() {
		notes = append(notes, "income tax reported, not deducted")
	}
	deductions = deductions.Round(2)

	b := payroll.Breakdown{
		EmployeeID:      in.EmployeeID,
		Year:            in.Year,
		Month:           in.Month,
		DryRun:          in.DryRun,
		HasContract:     in.Contract.Found,
		Sector:          in.Contract.Sector,
		SnapshotVersion: snap.Version,

		SalaryBase:    salary,
		HoursWorked:   hoursWorked,
		OvertimeHours: HoursBeyond(hoursWorked, monthlyHours),
		HourlyRate:    hourly.Round(2),
		Gross:         gross,

		EmployeeContribution: contrib.Employee,
		EmployerContribution: contrib.Employer,
		HealthContribution:   contrib.Health,
		TaxableBase:          taxable,
		IncomeTax:            tax,
		AbsenceDays:          absenceDays,
		AbsenceDeduction:     absenceDeduction,
		TotalDeductions:      deductions,
		Net:                  gross.Sub(deductions),

		Details: payroll.Details{
			OvertimePay:            premiums.OvertimePay,
			NightPremium:           premiums.NightPremium,
			SundayPremium:          premiums.SundayPremium,
			HolidayPremium:         premiums.HolidayPremium,
			InferredHolidayMinutes: totals.InferredHolidayMinutes,
			LateMinutesRecorded:    late.RecordedMinutes,
			LateMinutesFromPause:   late.PauseMinutes,
			LateMinutesTotal:       late.TotalMinutes,
			LateHoursTotal:         late.HoursTotal,
			LateHoursPenalized:     late.HoursPenalized,
			LateLeaveDaysConsumed:  late.DaysConsumed,
			LateLeaveConsumption:   late.Consumption,
			LateSalaryPenalty:      late.Penalty,
			LatePenaltyRate:        late.PenaltyRate,
			Notes:                  notes,
		},
	}
	return Computation{Breakdown: b, Lateness: late, Balances: in.Balances}
}

// HoursBeyond is the time worked past the monthly hours. It is reported only;
// overtime pay is driven by the tagged overtime minutes.
func HoursBeyond(worked, monthly decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, worked.Sub(monthly)).Round(2)
}

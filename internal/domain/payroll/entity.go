package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// Breakdown is the outcome of one employee/month computation. It carries no
// timestamps or generated ids so dry runs stay byte-identical.
type Breakdown struct {
	EmployeeID      string          `json:"employee_id"`
	Year            int             `json:"year"`
	Month           int             `json:"month"`
	DryRun          bool            `json:"dry_run"`
	HasContract     bool            `json:"has_contract"`
	Sector          contract.Sector `json:"sector"`
	SnapshotVersion string          `json:"snapshot_version"`

	SalaryBase    decimal.Decimal `json:"salary_base"`
	HoursWorked   decimal.Decimal `json:"hours_worked"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	Gross         decimal.Decimal `json:"gross"`

	EmployeeContribution decimal.Decimal `json:"employee_contribution"`
	EmployerContribution decimal.Decimal `json:"employer_contribution"` // informational, never deducted
	HealthContribution   decimal.Decimal `json:"health_contribution"`
	TaxableBase          decimal.Decimal `json:"taxable_base"`
	IncomeTax            decimal.Decimal `json:"income_tax"`
	AbsenceDays          int             `json:"absence_days"`
	AbsenceDeduction     decimal.Decimal `json:"absence_deduction"`
	TotalDeductions      decimal.Decimal `json:"total_deductions"`
	Net                  decimal.Decimal `json:"net"`

	Details Details `json:"details"`
}

// Details keeps every intermediate figure of the computation.
type Details struct {
	OvertimePay    decimal.Decimal `json:"overtime_pay"`
	NightPremium   decimal.Decimal `json:"night_premium"`
	SundayPremium  decimal.Decimal `json:"sunday_premium"`
	HolidayPremium decimal.Decimal `json:"holiday_premium"`

	InferredHolidayMinutes int `json:"inferred_holiday_minutes"`

	LateMinutesRecorded   int                 `json:"late_minutes_recorded"`
	LateMinutesFromPause  int                 `json:"late_minutes_from_pause"`
	LateMinutesTotal      int                 `json:"late_minutes_total"`
	LateHoursTotal        decimal.Decimal     `json:"late_hours_total"`
	LateHoursPenalized    decimal.Decimal     `json:"late_hours_penalized"`
	LateLeaveDaysConsumed decimal.Decimal     `json:"late_leave_days_consumed"`
	LateLeaveConsumption  []leave.Consumption `json:"late_leave_consumption,omitempty"`
	LateSalaryPenalty     decimal.Decimal     `json:"late_salary_penalty"`
	LatePenaltyRate       decimal.Decimal     `json:"late_penalty_rate"`

	Notes []string `json:"notes,omitempty"`
}

// Result - persisted breakdown, unique per employee and period
type Result struct {
	ID         string
	EmployeeID string
	Year       int
	Month      int
	Breakdown  Breakdown
	ComputedBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

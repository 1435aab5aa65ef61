package payroll

import (
	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// CountUnjustifiedAbsences counts unjustified absences dated in (year, month).
func CountUnjustifiedAbsences(absences []attendance.Absence, year, month int) int {
	n := 0
	for _, a := range absences {
		if !a.Justified && attendance.InMonth(a.Date, year, month) {
			n++
		}
	}
	return n
}

// AbsenceDeduction prorates the salary over a fixed number of working days
// (26 by default) regardless of sector or calendar.
func AbsenceDeduction(salary decimal.Decimal, days int, snap payroll.Snapshot) (daily, deduction decimal.Decimal) {
	daily = salary.Div(snap.WorkingDaysPerMonth()).Round(2)
	deduction = daily.Mul(decimal.NewFromInt(int64(days))).Round(2)
	return daily, deduction
}

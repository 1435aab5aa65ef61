package payroll

import (
	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
)

// AttendanceTotals are month sums of the per-day minute fields.
type AttendanceTotals struct {
	Days                   int
	WorkedMinutes          int
	OvertimeMinutes        int
	NightMinutes           int
	SundayMinutes          int
	HolidayMinutes         int // tagged plus inferred
	InferredHolidayMinutes int
	LateMinutes            int
	PauseExcessMinutes     int
}

// AggregateAttendance sums the records of (year, month). Presence on a
// holiday that carries no holiday minutes counts its worked minutes as
// holiday minutes; tagged days are never counted twice.
func AggregateAttendance(records []attendance.Record, year, month int, holidays payroll.HolidayCalendar) AttendanceTotals {
	var t AttendanceTotals
	for _, r := range records {
		if !attendance.InMonth(r.Date, year, month) {
			continue
		}
		t.Days++
		t.WorkedMinutes += nonNegative(r.WorkedMinutes)
		t.OvertimeMinutes += nonNegative(r.OvertimeMinutes)
		t.NightMinutes += nonNegative(r.NightMinutes)
		t.SundayMinutes += nonNegative(r.SundayMinutes)
		t.HolidayMinutes += nonNegative(r.HolidayMinutes)
		t.LateMinutes += nonNegative(r.LateMinutes)
		t.PauseExcessMinutes += nonNegative(r.PauseExcessMinutes)

		if r.HolidayMinutes == 0 && holidays.Contains(r.Date) {
			t.InferredHolidayMinutes += nonNegative(r.WorkedMinutes)
		}
	}
	t.HolidayMinutes += t.InferredHolidayMinutes
	return t
}

// TotalLateMinutes is recorded lateness plus pause overrun.
func (t AttendanceTotals) TotalLateMinutes() int {
	return t.LateMinutes + t.PauseExcessMinutes
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

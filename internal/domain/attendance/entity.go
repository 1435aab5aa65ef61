package attendance

import (
	"time"
)

// Record is the minute-level classification of one employee day as captured
// by the attendance subsystem. The payroll engine only reads it.
type Record struct {
	ID                 string
	EmployeeID         string
	Date               time.Time
	WorkedMinutes      int
	OvertimeMinutes    int
	NightMinutes       int
	SundayMinutes      int
	HolidayMinutes     int
	LateMinutes        int
	PauseMinutes       int
	PauseExcessMinutes int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Absence marks one day of absence.
type Absence struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Justified  bool
	Reason     *string
	CreatedAt  time.Time
}

// InMonth reports whether t falls in the given calendar month.
func InMonth(t time.Time, year, month int) bool {
	return t.Year() == year && int(t.Month()) == month
}

// MonthRange returns the first and last day of the month.
func MonthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

package attendance

import (
	"context"
)

// Repository is the read side of attendance capture used by payroll.
type Repository interface {
	// ListRecordsByMonth returns the employee's day records in (year, month), ordered by date.
	ListRecordsByMonth(ctx context.Context, employeeID string, year, month int) ([]Record, error)

	// ListAbsencesByMonth returns the employee's absences in (year, month), ordered by date.
	ListAbsencesByMonth(ctx context.Context, employeeID string, year, month int) ([]Absence, error)
}

package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

// ListRecordsByMonth implements attendance.Repository.
func (r *attendanceRepository) ListRecordsByMonth(ctx context.Context, employeeID string, year, month int) ([]attendance.Record, error) {
	if month < 1 || month > 12 {
		return nil, attendance.ErrInvalidPeriod
	}
	q := GetQuerier(ctx, r.db)
	from, to := attendance.MonthRange(year, month)

	query := `
		SELECT id, employee_id, date, worked_minutes, overtime_minutes, night_minutes,
			   sunday_minutes, holiday_minutes, late_minutes, pause_minutes, pause_excess_minutes,
			   created_at, updated_at
		FROM attendance_records
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.WorkedMinutes, &rec.OvertimeMinutes, &rec.NightMinutes,
			&rec.SundayMinutes, &rec.HolidayMinutes, &rec.LateMinutes, &rec.PauseMinutes, &rec.PauseExcessMinutes,
			&rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListAbsencesByMonth implements attendance.Repository.
func (r *attendanceRepository) ListAbsencesByMonth(ctx context.Context, employeeID string, year, month int) ([]attendance.Absence, error) {
	if month < 1 || month > 12 {
		return nil, attendance.ErrInvalidPeriod
	}
	q := GetQuerier(ctx, r.db)
	from, to := attendance.MonthRange(year, month)

	query := `
		SELECT id, employee_id, date, justified, reason, created_at
		FROM absences
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list absences: %w", err)
	}
	defer rows.Close()

	absences := make([]attendance.Absence, 0)
	for rows.Next() {
		var a attendance.Absence
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Date, &a.Justified, &a.Reason, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan absence: %w", err)
		}
		absences = append(absences, a)
	}
	return absences, rows.Err()
}

package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
)

type attendanceRepository struct {
	s *Store
}

func NewAttendanceRepository(s *Store) attendance.Repository {
	return &attendanceRepository{s: s}
}

func (r *attendanceRepository) ListRecordsByMonth(ctx context.Context, employeeID string, year, month int) ([]attendance.Record, error) {
	if month < 1 || month > 12 {
		return nil, attendance.ErrInvalidPeriod
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []attendance.Record
	for _, rec := range r.s.records[employeeID] {
		if attendance.InMonth(rec.Date, year, month) {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *attendanceRepository) ListAbsencesByMonth(ctx context.Context, employeeID string, year, month int) ([]attendance.Absence, error) {
	if month < 1 || month > 12 {
		return nil, attendance.ErrInvalidPeriod
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []attendance.Absence
	for _, a := range r.s.absences[employeeID] {
		if attendance.InMonth(a.Date, year, month) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

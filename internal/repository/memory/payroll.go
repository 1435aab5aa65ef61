package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
)

type resultRepository struct {
	s *Store
}

func NewResultRepository(s *Store) payroll.ResultRepository {
	return &resultRepository{s: s}
}

func (r *resultRepository) Upsert(ctx context.Context, result payroll.Result) (payroll.Result, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	k := periodKey{result.EmployeeID, result.Year, result.Month}
	if existing, ok := r.s.results[k]; ok {
		result.ID = existing.ID
		result.CreatedAt = existing.CreatedAt
	}
	r.s.results[k] = result
	return result, nil
}

func (r *resultRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (payroll.Result, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res, ok := r.s.results[periodKey{employeeID, year, month}]
	if !ok {
		return payroll.Result{}, payroll.ErrPayrollResultNotFound
	}
	return res, nil
}

func (r *resultRepository) ListByPeriod(ctx context.Context, year, month int) ([]payroll.Result, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []payroll.Result
	for k, res := range r.s.results {
		if k.Year == year && k.Month == month {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

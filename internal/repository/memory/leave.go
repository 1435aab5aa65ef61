package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type balanceRepository struct {
	s *Store
}

func NewBalanceRepository(s *Store) leave.BalanceRepository {
	return &balanceRepository{s: s}
}

// ListByEmployeeYears ignores forUpdate; callers serialize through keylock.
func (r *balanceRepository) ListByEmployeeYears(ctx context.Context, employeeID string, fromYear, toYear int, forUpdate bool) ([]leave.Balance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []leave.Balance
	for k, b := range r.s.balances {
		if k.EmployeeID == employeeID && k.Year >= fromYear && k.Year <= toYear {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

func (r *balanceRepository) Upsert(ctx context.Context, balance leave.Balance) (leave.Balance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	k := balanceKey{balance.EmployeeID, balance.Year}
	now := time.Now().UTC()
	if existing, ok := r.s.balances[k]; ok {
		balance.ID = existing.ID
		balance.CreatedAt = existing.CreatedAt
	} else {
		if balance.ID == "" {
			balance.ID = uuid.New().String()
		}
		balance.CreatedAt = now
	}
	balance.UpdatedAt = now
	r.s.balances[k] = balance
	return balance, nil
}

func (r *balanceRepository) UpdateUsed(ctx context.Context, employeeID string, year int, usedDays decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	k := balanceKey{employeeID, year}
	b, ok := r.s.balances[k]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	if usedDays.IsNegative() {
		usedDays = decimal.Zero
	}
	b.UsedDays = usedDays
	b.UpdatedAt = time.Now().UTC()
	r.s.balances[k] = b
	return nil
}

func (r *balanceRepository) DeleteUpToYear(ctx context.Context, employeeID string, year int) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for k := range r.s.balances {
		if k.EmployeeID == employeeID && k.Year <= year {
			delete(r.s.balances, k)
			n++
		}
	}
	return n, nil
}

type accrualRepository struct {
	s *Store
}

func NewAccrualRepository(s *Store) leave.AccrualRepository {
	return &accrualRepository{s: s}
}

func (r *accrualRepository) Create(ctx context.Context, accrual leave.Accrual) (leave.Accrual, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	k := accrualKey{accrual.EmployeeID, accrual.Year, accrual.Month}
	if _, ok := r.s.accruals[k]; ok {
		return leave.Accrual{}, leave.ErrAccrualAlreadyExists
	}
	if accrual.ID == "" {
		accrual.ID = uuid.New().String()
	}
	if accrual.CreatedAt.IsZero() {
		accrual.CreatedAt = time.Now().UTC()
	}
	r.s.accruals[k] = accrual
	return accrual, nil
}

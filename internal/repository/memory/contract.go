package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
)

type contractRepository struct {
	s *Store
}

func NewContractRepository(s *Store) contract.ContractRepository {
	return &contractRepository{s: s}
}

func (r *contractRepository) GetByID(ctx context.Context, id string) (contract.Contract, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.contracts[id]
	if !ok {
		return contract.Contract{}, contract.ErrContractNotFound
	}
	return c, nil
}

func (r *contractRepository) GetActiveByEmployee(ctx context.Context, employeeID string) (contract.Contract, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var (
		found  contract.Contract
		exists bool
	)
	for _, id := range sortedKeys(r.s.contracts) {
		c := r.s.contracts[id]
		if c.EmployeeID != employeeID || !c.Active {
			continue
		}
		if !exists || c.StartDate.After(found.StartDate) {
			found, exists = c, true
		}
	}
	if !exists {
		return contract.Contract{}, contract.ErrContractNotFound
	}
	return found, nil
}

func (r *contractRepository) ListActiveEmployeeIDs(ctx context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, c := range r.s.contracts {
		if c.Active {
			seen[c.EmployeeID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *contractRepository) ListExpiring(ctx context.Context, from, to time.Time) ([]contract.Contract, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []contract.Contract
	for _, id := range sortedKeys(r.s.contracts) {
		c := r.s.contracts[id]
		if !c.Active || c.State != contract.StateFixedTerm || c.EndDate == nil {
			continue
		}
		if c.EndDate.Before(from) || c.EndDate.After(to) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *contractRepository) Update(ctx context.Context, c contract.Contract) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.contracts[c.ID]; !ok {
		return contract.ErrContractNotFound
	}
	r.s.contracts[c.ID] = c
	return nil
}

func (r *contractRepository) CreateEvents(ctx context.Context, events []contract.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.events = append(r.s.events, events...)
	return nil
}

func (r *contractRepository) ListEvents(ctx context.Context, contractID string) ([]contract.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []contract.Event
	for _, e := range r.s.events {
		if e.ContractID == contractID {
			out = append(out, e)
		}
	}
	return out, nil
}

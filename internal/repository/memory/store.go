// Package memory holds in-process repositories for tests and local runs
// without PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/notification"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
)

// =============================================================================
// MEMORY STORE - shared state behind every memory repository
// =============================================================================

type Store struct {
	mu sync.RWMutex

	contracts map[string]contract.Contract
	events    []contract.Event
	records   map[string][]attendance.Record
	absences  map[string][]attendance.Absence
	balances  map[balanceKey]leave.Balance
	accruals  map[accrualKey]leave.Accrual
	results   map[periodKey]payroll.Result
	alerts    []notification.Alert
}

type balanceKey struct {
	EmployeeID string
	Year       int
}

type accrualKey struct {
	EmployeeID string
	Year       int
	Month      int
}

type periodKey struct {
	EmployeeID string
	Year       int
	Month      int
}

func NewStore() *Store {
	return &Store{
		contracts: make(map[string]contract.Contract),
		records:   make(map[string][]attendance.Record),
		absences:  make(map[string][]attendance.Absence),
		balances:  make(map[balanceKey]leave.Balance),
		accruals:  make(map[accrualKey]leave.Accrual),
		results:   make(map[periodKey]payroll.Result),
	}
}

// ========== SEEDING ==========

func (s *Store) PutContract(c contract.Contract) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contracts[c.ID] = c
}

func (s *Store) AddRecords(records ...attendance.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.records[r.EmployeeID] = append(s.records[r.EmployeeID], r)
	}
}

func (s *Store) AddAbsences(absences ...attendance.Absence) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range absences {
		s.absences[a.EmployeeID] = append(s.absences[a.EmployeeID], a)
	}
}

func (s *Store) PutBalance(b leave.Balance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[balanceKey{b.EmployeeID, b.Year}] = b
}

func (s *Store) PutAlert(a notification.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, a)
}

// Alerts returns a copy of every stored alert, in insertion order.
func (s *Store) Alerts() []notification.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]notification.Alert(nil), s.alerts...)
}

// Events returns a copy of the contract history, in insertion order.
func (s *Store) Events() []contract.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]contract.Event(nil), s.events...)
}

// Balance returns the stored row for (employee, year).
func (s *Store) Balance(employeeID string, year int) (leave.Balance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.balances[balanceKey{employeeID, year}]
	return b, ok
}

// ResultCount is the number of stored payroll results.
func (s *Store) ResultCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

// ========== TRANSACTOR ==========

// Transactor runs fn directly. Memory writes are applied immediately and are
// not rolled back when fn fails.
type Transactor struct{}

func (Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

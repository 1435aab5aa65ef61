package memory

import (
	"context"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/notification"
)

type alertRepository struct {
	s *Store
}

func NewAlertRepository(s *Store) notification.AlertRepository {
	return &alertRepository{s: s}
}

func (r *alertRepository) Create(ctx context.Context, a *notification.Alert) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.alerts = append(r.s.alerts, *a)
	return nil
}

func (r *alertRepository) CreateBatch(ctx context.Context, alerts []*notification.Alert) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range alerts {
		r.s.alerts = append(r.s.alerts, *a)
	}
	return nil
}

func (r *alertRepository) ListByEmployee(ctx context.Context, employeeID string, status *notification.AlertStatus) ([]*notification.Alert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*notification.Alert
	for i := range r.s.alerts {
		a := r.s.alerts[i]
		if a.EmployeeID == nil || *a.EmployeeID != employeeID {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		out = append(out, &a)
	}
	return out, nil
}

func (r *alertRepository) ResolveOpen(ctx context.Context, employeeID string, alertType notification.AlertType, from, to time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now().UTC()
	var n int64
	for i := range r.s.alerts {
		a := &r.s.alerts[i]
		if a.EmployeeID == nil || *a.EmployeeID != employeeID || a.Type != alertType || a.Status != notification.StatusOpen {
			continue
		}
		day := a.CreatedAt.UTC().Truncate(24 * time.Hour)
		if day.Before(from) || day.After(to) {
			continue
		}
		a.Status = notification.StatusResolved
		a.ResolvedAt = &now
		n++
	}
	return n, nil
}

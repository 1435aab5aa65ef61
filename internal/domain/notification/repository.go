package notification

import (
	"context"
	"time"
)

// AlertRepository defines the alert repository interface
type AlertRepository interface {
	Create(ctx context.Context, alert *Alert) error
	CreateBatch(ctx context.Context, alerts []*Alert) error
	ListByEmployee(ctx context.Context, employeeID string, status *AlertStatus) ([]*Alert, error)

	// ResolveOpen marks the employee's OPEN alerts of the given type created
	// within [from, to] (inclusive dates) as RESOLVED and returns how many changed.
	ResolveOpen(ctx context.Context, employeeID string, alertType AlertType, from, to time.Time) (int64, error)
}

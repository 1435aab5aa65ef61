package notification

import (
	"context"
)

// Service defines the alert service interface
type Service interface {
	// Queue alert (async processing via background workers)
	QueueAlert(ctx context.Context, req CreateAlertRequest) error
	QueueBulkAlerts(ctx context.Context, reqs []CreateAlertRequest) error

	// ResolveLateAlerts closes the employee's open lateness alerts raised in (year, month).
	ResolveLateAlerts(ctx context.Context, employeeID string, year, month int) (int64, error)

	ListAlerts(ctx context.Context, employeeID string, openOnly bool) ([]AlertResponse, error)

	// Subscribe streams newly stored alerts of one employee, or of everyone
	// when employeeID is empty. Call the returned func to unsubscribe.
	Subscribe(ctx context.Context, employeeID string) (<-chan AlertEvent, func())

	// Lifecycle
	Stop()
}

package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/notification"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/google/uuid"
)

type alertRepository struct {
	db *database.DB
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *database.DB) notification.AlertRepository {
	return &alertRepository{db: db}
}

// Create inserts one alert
func (r *alertRepository) Create(ctx context.Context, a *notification.Alert) error {
	return r.CreateBatch(ctx, []*notification.Alert{a})
}

// CreateBatch inserts alerts with a single multi-row statement
func (r *alertRepository) CreateBatch(ctx context.Context, alerts []*notification.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	valueStrings := make([]string, 0, len(alerts))
	valueArgs := make([]interface{}, 0, len(alerts)*7)

	for i, a := range alerts {
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		if a.Status == "" {
			a.Status = notification.StatusOpen
		}

		dataJSON, err := json.Marshal(a.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal alert data: %w", err)
		}

		base := i * 7
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7,
		))
		valueArgs = append(valueArgs,
			a.ID,
			a.EmployeeID,
			string(a.Type),
			a.Message,
			string(a.Status),
			dataJSON,
			a.CreatedAt,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO alerts (id, employee_id, type, message, status, data, created_at)
		VALUES %s
	`, strings.Join(valueStrings, ", "))

	if _, err := q.Exec(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("failed to batch create alerts: %w", err)
	}
	return nil
}

// ListByEmployee returns the employee's alerts, newest first
func (r *alertRepository) ListByEmployee(ctx context.Context, employeeID string, status *notification.AlertStatus) ([]*notification.Alert, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "employee_id = $1"
	args := []interface{}{employeeID}
	if status != nil {
		whereClause += " AND status = $2"
		args = append(args, string(*status))
	}

	query := fmt.Sprintf(`
		SELECT id, employee_id, type, message, status, data, created_at, resolved_at
		FROM alerts
		WHERE %s
		ORDER BY created_at DESC
	`, whereClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*notification.Alert
	for rows.Next() {
		var a notification.Alert
		var alertType, alertStatus string
		var dataJSON []byte
		if err := rows.Scan(&a.ID, &a.EmployeeID, &alertType, &a.Message, &alertStatus, &dataJSON, &a.CreatedAt, &a.ResolvedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		a.Type = notification.AlertType(alertType)
		a.Status = notification.AlertStatus(alertStatus)
		if dataJSON != nil {
			if err := json.Unmarshal(dataJSON, &a.Data); err != nil {
				return nil, fmt.Errorf("failed to unmarshal alert data: %w", err)
			}
		}
		alerts = append(alerts, &a)
	}
	return alerts, rows.Err()
}

// ResolveOpen closes OPEN alerts of one type created between two dates
func (r *alertRepository) ResolveOpen(ctx context.Context, employeeID string, alertType notification.AlertType, from, to time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE alerts
		SET status = 'RESOLVED', resolved_at = NOW()
		WHERE employee_id = $1 AND type = $2 AND status = 'OPEN'
		  AND created_at::date BETWEEN $3 AND $4
	`

	tag, err := q.Exec(ctx, query, employeeID, string(alertType), from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve alerts: %w", err)
	}
	return tag.RowsAffected(), nil
}

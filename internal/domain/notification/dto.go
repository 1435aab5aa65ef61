package notification

import (
	"time"
)

// CreateAlertRequest represents a request to open an alert
type CreateAlertRequest struct {
	EmployeeID *string
	Type       AlertType
	Message    string
	Data       map[string]interface{}
}

// AlertResponse represents an alert in API responses
type AlertResponse struct {
	ID         string                 `json:"id"`
	EmployeeID *string                `json:"employee_id,omitempty"`
	Type       AlertType              `json:"type"`
	Message    string                 `json:"message"`
	Status     AlertStatus            `json:"status"`
	Data       map[string]interface{} `json:"data,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	ResolvedAt *time.Time             `json:"resolved_at,omitempty"`
}

// EventAlertCreated is the SSE event name for a newly stored alert.
const EventAlertCreated = "alert.created"

// AlertEvent represents a Server-Sent Event
type AlertEvent struct {
	Event string        `json:"event"`
	Data  AlertResponse `json:"data"`
}

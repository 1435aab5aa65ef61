package notification

import (
	"time"
)

// AlertType represents the type of an HR alert
type AlertType string

const (
	TypeLate               AlertType = "LATE"
	TypeContractTerminated AlertType = "CONTRACT_TERMINATED"
	TypeContractExpiring   AlertType = "CONTRACT_EXPIRING"
)

// AlertStatus is OPEN until someone or something resolves it.
type AlertStatus string

const (
	StatusOpen     AlertStatus = "OPEN"
	StatusResolved AlertStatus = "RESOLVED"
)

// Alert represents an HR alert entity
type Alert struct {
	ID         string
	EmployeeID *string
	Type       AlertType
	Message    string
	Status     AlertStatus
	Data       map[string]interface{}
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

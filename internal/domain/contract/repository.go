package contract

import (
	"context"
	"time"
)

type ContractRepository interface {
	GetByID(ctx context.Context, id string) (Contract, error)

	// GetActiveByEmployee returns the active contract with the latest start date.
	GetActiveByEmployee(ctx context.Context, employeeID string) (Contract, error)

	// ListActiveEmployeeIDs returns every employee holding an active contract, sorted.
	ListActiveEmployeeIDs(ctx context.Context) ([]string, error)

	// ListExpiring returns active CDD contracts whose end date falls within [from, to].
	ListExpiring(ctx context.Context, from, to time.Time) ([]Contract, error)

	Update(ctx context.Context, c Contract) error

	// History
	CreateEvents(ctx context.Context, events []Event) error
	ListEvents(ctx context.Context, contractID string) ([]Event, error)
}

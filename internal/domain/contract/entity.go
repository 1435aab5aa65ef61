package contract

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sector drives the monthly hours used to derive the hourly rate.
type Sector string

const (
	SectorNonAgri Sector = "NON_AGRI"
	SectorAgri    Sector = "AGRI"
)

func (s Sector) IsValid() bool {
	return s == SectorNonAgri || s == SectorAgri
}

// State is the contract lifecycle state
type State string

const (
	StateTrial     State = "ESSAI"
	StateFixedTerm State = "CDD"
	StatePermanent State = "CDI"
	StateOther     State = "AUTRE"
)

func (s State) IsValid() bool {
	switch s {
	case StateTrial, StateFixedTerm, StatePermanent, StateOther:
		return true
	}
	return false
}

// Contract - employment contract of one employee
type Contract struct {
	ID               string
	EmployeeID       string
	State            State
	Sector           Sector
	BaseSalary       decimal.Decimal
	Active           bool
	StartDate        time.Time
	EndDate          *time.Time
	TrialRenewals    int
	MaxTrialRenewals int
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CanRenewTrial reports whether another trial renewal is allowed.
func (c Contract) CanRenewTrial() bool {
	return c.State == StateTrial && c.TrialRenewals < c.MaxTrialRenewals
}

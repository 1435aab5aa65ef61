package contract

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ConvertToCDDRequest struct {
	Months int `json:"months"`
}

func (r *ConvertToCDDRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Months < 0 || r.Months > 24 {
		errs = append(errs, validator.ValidationError{Field: "months", Message: "must be between 0 and 24"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TerminateRequest struct {
	Date   *string `json:"date,omitempty"` // YYYY-MM-DD
	Reason string  `json:"reason"`
}

func (r *TerminateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ContractResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	State            State           `json:"state"`
	Sector           Sector          `json:"sector"`
	BaseSalary       decimal.Decimal `json:"base_salary"`
	Active           bool            `json:"active"`
	StartDate        string          `json:"start_date"`
	EndDate          *string         `json:"end_date,omitempty"`
	TrialRenewals    int             `json:"trial_renewals"`
	MaxTrialRenewals int             `json:"max_trial_renewals"`
}

type EventResponse struct {
	ID         string    `json:"id"`
	Action     Action    `json:"action"`
	FromState  State     `json:"from_state"`
	ToState    State     `json:"to_state"`
	Details    string    `json:"details"`
	ActorID    string    `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type TransitionResponse struct {
	Contract ContractResponse `json:"contract"`
	Events   []EventResponse  `json:"events"`
}

package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ComputeRequest is the engine entry point input.
type ComputeRequest struct {
	EmployeeID string
	Year       int
	Month      int
	DryRun     bool
	Actor      audit.Actor
}

func (r ComputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	errs = append(errs, validatePeriod(r.Year, r.Month)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RunRequest struct {
	Year   int
	Month  int
	DryRun bool
	Actor  audit.Actor
}

func (r RunRequest) Validate() error {
	if errs := validatePeriod(r.Year, r.Month); len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePeriod(year, month int) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if month < 1 || month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if year < 2000 || year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2000 and 2100"})
	}
	return errs
}

// ========== HTTP DTOs ==========

type ComputePayrollRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	DryRun     *bool  `json:"dry_run,omitempty"` // defaults to true
}

func (r ComputePayrollRequest) ToComputeRequest(actor audit.Actor) ComputeRequest {
	dryRun := true
	if r.DryRun != nil {
		dryRun = *r.DryRun
	}
	return ComputeRequest{EmployeeID: r.EmployeeID, Year: r.Year, Month: r.Month, DryRun: dryRun, Actor: actor}
}

type RunPayrollRequest struct {
	Year   int   `json:"year"`
	Month  int   `json:"month"`
	DryRun *bool `json:"dry_run,omitempty"`
}

func (r RunPayrollRequest) ToRunRequest(actor audit.Actor) RunRequest {
	dryRun := true
	if r.DryRun != nil {
		dryRun = *r.DryRun
	}
	return RunRequest{Year: r.Year, Month: r.Month, DryRun: dryRun, Actor: actor}
}

type RunFailure struct {
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

type RunReport struct {
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	DryRun     bool            `json:"dry_run"`
	Breakdowns []Breakdown     `json:"breakdowns"`
	Failures   []RunFailure    `json:"failures,omitempty"`
	TotalGross decimal.Decimal `json:"total_gross"`
	TotalNet   decimal.Decimal `json:"total_net"`
}

type ResultResponse struct {
	ID         string    `json:"id"`
	ComputedBy string    `json:"computed_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Breakdown  Breakdown `json:"breakdown"`
}

type PeriodResultsResponse struct {
	Year    int              `json:"year"`
	Month   int              `json:"month"`
	Total   int              `json:"total"`
	Results []ResultResponse `json:"results"`
}

package leave

import (
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CarryoverRequest struct {
	Year int `json:"year"`
}

func (r *CarryoverRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2000 and 2100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AccrueRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *AccrueRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2000 and 2100"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BalanceResponse struct {
	Year            int             `json:"year"`
	EntitlementDays decimal.Decimal `json:"entitlement_days"`
	UsedDays        decimal.Decimal `json:"used_days"`
	AvailableDays   decimal.Decimal `json:"available_days"`
}

type BalanceSummaryResponse struct {
	EmployeeID     string            `json:"employee_id"`
	AsOfYear       int               `json:"as_of_year"`
	Balances       []BalanceResponse `json:"balances"`
	TotalAvailable decimal.Decimal   `json:"total_available"`
}

type CarryoverEntry struct {
	EmployeeID  string          `json:"employee_id"`
	CarriedDays decimal.Decimal `json:"carried_days"`
	PurgedRows  int64           `json:"purged_rows"`
}

type CarryoverReport struct {
	Year      int              `json:"year"`
	Processed int              `json:"processed"`
	Entries   []CarryoverEntry `json:"entries"`
}

type AccrualReport struct {
	Year     int      `json:"year"`
	Month    int      `json:"month"`
	Credited []string `json:"credited"`
	Skipped  []string `json:"skipped"`
}

package payroll

import "errors"

var (
	ErrPayrollResultNotFound  = errors.New("payroll result not found")
	ErrInvalidPeriod          = errors.New("invalid payroll period")
	ErrInvalidSnapshot        = errors.New("invalid payroll configuration")
	ErrInvalidContributionCap = errors.New("invalid contribution cap")
)

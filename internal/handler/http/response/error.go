package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, audit.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, audit.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, audit.ErrActorNotInContext):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, audit.ErrInsufficientRole):
		Forbidden(w, "HR or admin role required")

	// Contract domain errors
	case errors.Is(err, contract.ErrContractNotFound):
		NotFound(w, "Contract not found")
	case errors.Is(err, contract.ErrContractInactive):
		Conflict(w, "Contract is not active")
	case errors.Is(err, contract.ErrInvalidTransition):
		Conflict(w, err.Error())
	case errors.Is(err, contract.ErrTrialRenewalExhausted):
		Conflict(w, "Trial renewals exhausted")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollResultNotFound):
		NotFound(w, "Payroll result not found")
	case errors.Is(err, payroll.ErrInvalidPeriod), errors.Is(err, attendance.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrInvalidSnapshot), errors.Is(err, payroll.ErrInvalidContributionCap):
		InternalServerError(w, "Payroll configuration is invalid")

	// Leave domain errors
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrInvalidYear):
		BadRequest(w, "Invalid leave year", nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

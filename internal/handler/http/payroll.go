package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Compute(w http.ResponseWriter, r *http.Request)
	Run(w http.ResponseWriter, r *http.Request)
	GetResult(w http.ResponseWriter, r *http.Request)
	ListResults(w http.ResponseWriter, r *http.Request)
	GetSnapshot(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== COMPUTE ==========

func (h *payrollHandlerImpl) Compute(w http.ResponseWriter, r *http.Request) {
	var body payroll.ComputePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		slog.Error("Compute decode error", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := body.ToComputeRequest(actor)
	if !req.DryRun && !middleware.CanMutate(r.Context()) {
		response.HandleError(w, audit.ErrInsufficientRole)
		return
	}

	result, err := h.payrollService.ComputePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if req.DryRun {
		response.Success(w, result)
		return
	}
	response.SuccessWithMessage(w, "Payroll stored", result)
}

func (h *payrollHandlerImpl) Run(w http.ResponseWriter, r *http.Request) {
	var body payroll.RunPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	report, err := h.payrollService.RunPeriod(r.Context(), body.ToRunRequest(actor))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// ========== RESULTS ==========

func (h *payrollHandlerImpl) GetResult(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	year, errYear := strconv.Atoi(chi.URLParam(r, "year"))
	month, errMonth := strconv.Atoi(chi.URLParam(r, "month"))
	if errYear != nil || errMonth != nil {
		response.BadRequest(w, "Year and month must be numbers", nil)
		return
	}

	result, err := h.payrollService.GetResult(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListResults(w http.ResponseWriter, r *http.Request) {
	year, errYear := strconv.Atoi(chi.URLParam(r, "year"))
	month, errMonth := strconv.Atoi(chi.URLParam(r, "month"))
	if errYear != nil || errMonth != nil {
		response.BadRequest(w, "Year and month must be numbers", nil)
		return
	}

	results, err := h.payrollService.ListResults(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *payrollHandlerImpl) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.payrollService.Snapshot(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, snap)
}

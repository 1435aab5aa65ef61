package contract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/notification"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/google/uuid"
)

type transitionFunc func(c contract.Contract, at time.Time) (contract.Contract, []contract.Event, error)

// ContractServiceImpl dispatches lifecycle transitions: it stores the new
// contract state and its history in one transaction, then queues alerts.
type ContractServiceImpl struct {
	tx     database.Transactor
	repo   contract.ContractRepository
	alerts notification.Service
	now    func() time.Time
}

func NewContractService(tx database.Transactor, repo contract.ContractRepository, alerts notification.Service) contract.ContractService {
	return &ContractServiceImpl{
		tx:     tx,
		repo:   repo,
		alerts: alerts,
		now:    time.Now,
	}
}

// RenewTrial implements contract.ContractService.
func (s *ContractServiceImpl) RenewTrial(ctx context.Context, actor audit.Actor, contractID string) (contract.TransitionResponse, error) {
	return s.apply(ctx, contractID, func(c contract.Contract, at time.Time) (contract.Contract, []contract.Event, error) {
		return RenewTrial(c, actor, at)
	})
}

// ConvertToCDD implements contract.ContractService.
func (s *ContractServiceImpl) ConvertToCDD(ctx context.Context, actor audit.Actor, contractID string, req contract.ConvertToCDDRequest) (contract.TransitionResponse, error) {
	if err := req.Validate(); err != nil {
		return contract.TransitionResponse{}, err
	}
	return s.apply(ctx, contractID, func(c contract.Contract, at time.Time) (contract.Contract, []contract.Event, error) {
		return ConvertToCDD(c, actor, at, req.Months)
	})
}

// ConvertToCDI implements contract.ContractService.
func (s *ContractServiceImpl) ConvertToCDI(ctx context.Context, actor audit.Actor, contractID string) (contract.TransitionResponse, error) {
	return s.apply(ctx, contractID, func(c contract.Contract, at time.Time) (contract.Contract, []contract.Event, error) {
		return ConvertToCDI(c, actor, at)
	})
}

// Terminate implements contract.ContractService.
func (s *ContractServiceImpl) Terminate(ctx context.Context, actor audit.Actor, contractID string, req contract.TerminateRequest) (contract.TransitionResponse, error) {
	if err := req.Validate(); err != nil {
		return contract.TransitionResponse{}, err
	}

	var date *time.Time
	if req.Date != nil {
		parsed, err := time.Parse(time.DateOnly, *req.Date)
		if err != nil {
			return contract.TransitionResponse{}, fmt.Errorf("invalid termination date: %w", err)
		}
		date = &parsed
	}

	return s.apply(ctx, contractID, func(c contract.Contract, at time.Time) (contract.Contract, []contract.Event, error) {
		return Terminate(c, actor, at, date, req.Reason)
	})
}

func (s *ContractServiceImpl) apply(ctx context.Context, contractID string, transition transitionFunc) (contract.TransitionResponse, error) {
	var (
		updated contract.Contract
		events  []contract.Event
	)

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, contractID)
		if err != nil {
			if errors.Is(err, contract.ErrContractNotFound) {
				return err
			}
			return fmt.Errorf("failed to get contract: %w", err)
		}

		now := s.now().UTC()
		updated, events, err = transition(current, now)
		if err != nil {
			return err
		}
		updated.UpdatedAt = now

		if err := s.repo.Update(ctx, updated); err != nil {
			return fmt.Errorf("failed to update contract: %w", err)
		}

		for i := range events {
			events[i].ID = uuid.New().String()
		}
		if err := s.repo.CreateEvents(ctx, events); err != nil {
			return fmt.Errorf("failed to record contract history: %w", err)
		}
		return nil
	})
	if err != nil {
		return contract.TransitionResponse{}, err
	}

	s.dispatchAlerts(ctx, events)

	return toTransitionResponse(updated, events), nil
}

// dispatchAlerts is best-effort: the transition is already committed.
func (s *ContractServiceImpl) dispatchAlerts(ctx context.Context, events []contract.Event) {
	if s.alerts == nil {
		return
	}
	for _, ev := range events {
		if !ev.RaiseAlert {
			continue
		}
		employeeID := ev.EmployeeID
		err := s.alerts.QueueAlert(ctx, notification.CreateAlertRequest{
			EmployeeID: &employeeID,
			Type:       notification.TypeContractTerminated,
			Message:    fmt.Sprintf("Contract terminated: %s", ev.Details),
			Data: map[string]interface{}{
				"contract_id": ev.ContractID,
				"event_id":    ev.ID,
				"actor_id":    ev.ActorID,
			},
		})
		if err != nil {
			slog.Warn("Failed to queue contract alert", "contract_id", ev.ContractID, "error", err)
		}
	}
}

func toTransitionResponse(c contract.Contract, events []contract.Event) contract.TransitionResponse {
	resp := contract.TransitionResponse{
		Contract: ToContractResponse(c),
		Events:   make([]contract.EventResponse, len(events)),
	}
	for i, ev := range events {
		resp.Events[i] = contract.EventResponse{
			ID:         ev.ID,
			Action:     ev.Action,
			FromState:  ev.FromState,
			ToState:    ev.ToState,
			Details:    ev.Details,
			ActorID:    ev.ActorID,
			OccurredAt: ev.OccurredAt,
		}
	}
	return resp
}

func ToContractResponse(c contract.Contract) contract.ContractResponse {
	resp := contract.ContractResponse{
		ID:               c.ID,
		EmployeeID:       c.EmployeeID,
		State:            c.State,
		Sector:           c.Sector,
		BaseSalary:       c.BaseSalary,
		Active:           c.Active,
		StartDate:        c.StartDate.Format(time.DateOnly),
		TrialRenewals:    c.TrialRenewals,
		MaxTrialRenewals: c.MaxTrialRenewals,
	}
	if c.EndDate != nil {
		end := c.EndDate.Format(time.DateOnly)
		resp.EndDate = &end
	}
	return resp
}

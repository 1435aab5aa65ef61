package contract

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
)

const (
	trialExtensionDays = 180
	defaultCDDMonths   = 12
	daysPerMonth       = 30
	maxCDDDays         = 730
)

// The functions below are the contract lifecycle. They never touch storage:
// each returns the next contract state and the events describing the change.
// Event IDs are left empty for the dispatcher to assign.

// RenewTrial extends a trial by 180 days, counted from the current end date
// or from the start date when the trial has none.
func RenewTrial(c contract.Contract, actor audit.Actor, at time.Time) (contract.Contract, []contract.Event, error) {
	if err := checkActive(c); err != nil {
		return c, nil, err
	}
	if c.State != contract.StateTrial {
		return c, nil, fmt.Errorf("%w: cannot renew trial of a %s contract", contract.ErrInvalidTransition, c.State)
	}
	if !c.CanRenewTrial() {
		return c, nil, contract.ErrTrialRenewalExhausted
	}

	from := c.StartDate
	if c.EndDate != nil {
		from = *c.EndDate
	}
	end := from.AddDate(0, 0, trialExtensionDays)
	c.EndDate = &end
	c.TrialRenewals++

	ev := newEvent(c, actor, at, contract.ActionTrialRenewed, contract.StateTrial, contract.StateTrial,
		fmt.Sprintf("Renewed trial to %s", end.Format(time.DateOnly)))
	return c, []contract.Event{ev}, nil
}

// ConvertToCDD turns a trial into a fixed-term contract of months x 30 days
// from the start date (12 months when months is 0), never longer than 730 days.
// An end date already on the contract marks the trial period, not the term,
// so it is replaced even when it falls after the start.
func ConvertToCDD(c contract.Contract, actor audit.Actor, at time.Time, months int) (contract.Contract, []contract.Event, error) {
	if err := checkActive(c); err != nil {
		return c, nil, err
	}
	if c.State != contract.StateTrial {
		return c, nil, fmt.Errorf("%w: %s to %s", contract.ErrInvalidTransition, c.State, contract.StateFixedTerm)
	}
	if months <= 0 {
		months = defaultCDDMonths
	}

	end := c.StartDate.AddDate(0, 0, months*daysPerMonth)
	if maxEnd := c.StartDate.AddDate(0, 0, maxCDDDays); end.After(maxEnd) {
		end = maxEnd
	}
	from := c.State
	c.State = contract.StateFixedTerm
	c.EndDate = &end

	ev := newEvent(c, actor, at, contract.ActionConvertedToCDD, from, contract.StateFixedTerm,
		fmt.Sprintf("Converted to CDD until %s", end.Format(time.DateOnly)))
	return c, []contract.Event{ev}, nil
}

// ConvertToCDI makes a trial or fixed-term contract permanent and clears its end date.
func ConvertToCDI(c contract.Contract, actor audit.Actor, at time.Time) (contract.Contract, []contract.Event, error) {
	if err := checkActive(c); err != nil {
		return c, nil, err
	}
	if c.State != contract.StateTrial && c.State != contract.StateFixedTerm {
		return c, nil, fmt.Errorf("%w: %s to %s", contract.ErrInvalidTransition, c.State, contract.StatePermanent)
	}

	from := c.State
	c.State = contract.StatePermanent
	c.EndDate = nil

	ev := newEvent(c, actor, at, contract.ActionConvertedToCDI, from, contract.StatePermanent, "Converted to CDI")
	return c, []contract.Event{ev}, nil
}

// Terminate deactivates a CDD, CDI or AUTRE contract. The end date moves to
// date when one is given. The event asks for a CONTRACT_TERMINATED alert.
func Terminate(c contract.Contract, actor audit.Actor, at time.Time, date *time.Time, reason string) (contract.Contract, []contract.Event, error) {
	if err := checkActive(c); err != nil {
		return c, nil, err
	}
	switch c.State {
	case contract.StateFixedTerm, contract.StatePermanent, contract.StateOther:
	default:
		return c, nil, fmt.Errorf("%w: cannot terminate a %s contract", contract.ErrInvalidTransition, c.State)
	}

	c.Active = false
	if date != nil {
		end := *date
		c.EndDate = &end
	}

	ev := newEvent(c, actor, at, contract.ActionTerminated, c.State, c.State, reason)
	ev.RaiseAlert = true
	return c, []contract.Event{ev}, nil
}

func checkActive(c contract.Contract) error {
	if !c.Active {
		return contract.ErrContractInactive
	}
	return nil
}

func newEvent(c contract.Contract, actor audit.Actor, at time.Time, action contract.Action, from, to contract.State, details string) contract.Event {
	return contract.Event{
		ContractID: c.ID,
		EmployeeID: c.EmployeeID,
		Action:     action,
		FromState:  from,
		ToState:    to,
		Details:    details,
		ActorID:    actor.OrSystem().ID,
		OccurredAt: at,
	}
}

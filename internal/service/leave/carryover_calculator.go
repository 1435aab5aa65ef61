package leave

import (
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// CarryoverPlan is the set of balance rows to write for one employee.
type CarryoverPlan struct {
	Carried decimal.Decimal
	Updates []leave.Balance // old years first, the target year last
}

type CarryoverCalculator struct {
	cap decimal.Decimal
}

func NewCarryoverCalculator() *CarryoverCalculator {
	return &CarryoverCalculator{cap: leave.CarryoverCapDays}
}

// Plan moves the unused days of year-1 and year-2 into year. The carry is
// capped and taken from the oldest year first. A target row is created when
// the employee has none.
func (c *CarryoverCalculator) Plan(employeeID string, year int, balances []leave.Balance) CarryoverPlan {
	byYear := make(map[int]leave.Balance, len(balances))
	for _, b := range balances {
		byYear[b.Year] = b
	}

	carryable := decimal.Zero
	for _, y := range []int{year - 2, year - 1} {
		if b, ok := byYear[y]; ok {
			carryable = carryable.Add(unused(b))
		}
	}

	carry := decimal.Min(carryable, c.cap).Round(2)
	plan := CarryoverPlan{Carried: decimal.Zero}
	if !carry.IsPositive() {
		return plan
	}

	remaining := carry
	for _, y := range []int{year - 2, year - 1} {
		if !remaining.IsPositive() {
			break
		}
		b, ok := byYear[y]
		if !ok {
			continue
		}
		take := decimal.Min(unused(b), remaining)
		if !take.IsPositive() {
			continue
		}
		plan.Updates = append(plan.Updates, b.WithEntitlement(b.EntitlementDays.Sub(take)))
		remaining = remaining.Sub(take)
	}

	current, ok := byYear[year]
	if !ok {
		current = leave.Balance{EmployeeID: employeeID, Year: year, EntitlementDays: decimal.Zero, UsedDays: decimal.Zero}
	}
	plan.Updates = append(plan.Updates, current.WithEntitlement(current.EntitlementDays.Add(carry)))
	plan.Carried = carry
	return plan
}

func unused(b leave.Balance) decimal.Decimal {
	return decimal.Max(decimal.Zero, b.Available())
}

package leave

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// RollingWindowYears is the span of balances considered available: the
	// current year and the two preceding ones.
	RollingWindowYears = 3
)

var (
	MonthlyAccrualDays = decimal.RequireFromString("2.5")
	CarryoverCapDays   = decimal.NewFromInt(90)
)

// Balance - entitlement and usage for one employee and calendar year
type Balance struct {
	ID              string
	EmployeeID      string
	Year            int
	EntitlementDays decimal.Decimal
	UsedDays        decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Available is entitlement minus used; it can be negative on legacy rows.
func (b Balance) Available() decimal.Decimal {
	return b.EntitlementDays.Sub(b.UsedDays)
}

// Consume returns the balance with days added to UsedDays, rounded to two
// places and clamped to [0, entitlement].
func (b Balance) Consume(days decimal.Decimal) Balance {
	used := b.UsedDays.Add(days).Round(2)
	if used.IsNegative() {
		used = decimal.Zero
	}
	if used.GreaterThan(b.EntitlementDays) {
		used = b.EntitlementDays
	}
	b.UsedDays = used
	return b
}

// WithEntitlement returns the balance with a new entitlement, never negative.
func (b Balance) WithEntitlement(days decimal.Decimal) Balance {
	days = days.Round(2)
	if days.IsNegative() {
		days = decimal.Zero
	}
	b.EntitlementDays = days
	return b
}

// Consumption is one year's share of leave days taken to cover lateness.
type Consumption struct {
	Year int             `json:"year"`
	Days decimal.Decimal `json:"days"`
}

// Accrual records that Days were credited for (Year, Month).
type Accrual struct {
	ID         string
	EmployeeID string
	Year       int
	Month      int
	Days       decimal.Decimal
	CreatedAt  time.Time
}

// LockKeys returns the serialization keys of the employee's balances for the given years.
func LockKeys(employeeID string, years ...int) []string {
	keys := make([]string, 0, len(years))
	for _, y := range years {
		keys = append(keys, fmt.Sprintf("leave_balance:%s:%d", employeeID, y))
	}
	return keys
}

// WindowYears returns the rolling window ending at year, oldest first.
func WindowYears(year int) []int {
	years := make([]int, 0, RollingWindowYears)
	for y := year - RollingWindowYears + 1; y <= year; y++ {
		years = append(years, y)
	}
	return years
}

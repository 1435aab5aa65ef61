package leave

import (
	"testing"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func bal(year int, entitlement, used string) leave.Balance {
	return leave.Balance{EmployeeID: "emp-1", Year: year, EntitlementDays: d(entitlement), UsedDays: d(used)}
}

func TestCarryoverCalculator_Plan(t *testing.T) {
	plan := NewCarryoverCalculator().Plan("emp-1", 2025, []leave.Balance{
		bal(2023, "10", "4"),
		bal(2024, "30", "0"),
	})

	assert.True(t, d("36").Equal(plan.Carried))
	require.Len(t, plan.Updates, 3)
	assert.Equal(t, 2023, plan.Updates[0].Year)
	assert.True(t, d("4").Equal(plan.Updates[0].EntitlementDays))
	assert.Equal(t, 2024, plan.Updates[1].Year)
	assert.True(t, plan.Updates[1].EntitlementDays.IsZero())
	assert.Equal(t, 2025, plan.Updates[2].Year)
	assert.True(t, d("36").Equal(plan.Updates[2].EntitlementDays))
	assert.Empty(t, plan.Updates[2].ID, "target row is created")
}

func TestCarryoverCalculator_Plan_CapTakesOldestFirst(t *testing.T) {
	plan := NewCarryoverCalculator().Plan("emp-1", 2025, []leave.Balance{
		bal(2023, "60", "0"),
		bal(2024, "50", "0"),
		bal(2025, "5", "1"),
	})

	assert.True(t, d("90").Equal(plan.Carried))
	require.Len(t, plan.Updates, 3)
	assert.True(t, plan.Updates[0].EntitlementDays.IsZero(), "oldest year drained first")
	assert.True(t, d("20").Equal(plan.Updates[1].EntitlementDays))
	assert.True(t, d("95").Equal(plan.Updates[2].EntitlementDays))
	assert.True(t, d("1").Equal(plan.Updates[2].UsedDays))
}

func TestCarryoverCalculator_Plan_OverdrawnYearsCarryNothing(t *testing.T) {
	plan := NewCarryoverCalculator().Plan("emp-1", 2025, []leave.Balance{
		bal(2023, "2", "5"),
		bal(2024, "0", "0"),
	})

	assert.True(t, plan.Carried.IsZero())
	assert.Empty(t, plan.Updates)
}

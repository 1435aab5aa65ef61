package payroll

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(year, month, dayOfMonth int) time.Time {
	return time.Date(year, time.Month(month), dayOfMonth, 0, 0, 0, 0, time.UTC)
}

// ===== TAX =====

func TestIncomeTax_Brackets(t *testing.T) {
	brackets := payroll.DefaultTaxBrackets()

	tests := []struct {
		name string
		base string
		want string
	}{
		{"zero", "0", "0"},
		{"at first threshold", "350000", "0"},
		{"just above threshold", "350001", "0"},
		{"above threshold", "350020", "1"},
		{"end of 5 percent", "400000", "2500"},
		{"end of 10 percent", "500000", "12500"},
		{"end of 15 percent", "600000", "27500"},
		{"end of 20 percent", "4000000", "707500"},
		{"top bracket", "5000000", "957500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, d(tt.want).Equal(IncomeTax(d(tt.base), brackets)), "base %s", tt.base)
		})
	}
}

func TestIncomeTax_StrictlyPositiveAboveThreshold(t *testing.T) {
	tax := IncomeTax(d("350010"), payroll.DefaultTaxBrackets())
	assert.True(t, tax.IsPositive())
}

func TestTaxableBase_FloorsAtZero(t *testing.T) {
	assert.True(t, TaxableBase(d("100"), d("80"), d("40")).IsZero())
	assert.True(t, d("164663.50").Equal(TaxableBase(d("173330"), d("6933.20"), d("1733.30"))))
}

// ===== OVERTIME =====

func TestOvertimePay_TwelveHours(t *testing.T) {
	snap := payroll.DefaultSnapshot()
	hourly := HourlyRate(d("1000000"), d("173.33"))

	want := decimal.NewFromInt(8).Mul(hourly).Mul(d("1.3")).Round(2).
		Add(decimal.NewFromInt(4).Mul(hourly).Mul(d("1.5")).Round(2))

	assert.True(t, want.Equal(OvertimePay(decimal.NewFromInt(12), hourly, snap)))
}

func TestOvertimePay_CappedAtTwentyHours(t *testing.T) {
	snap := payroll.DefaultSnapshot()
	hourly := HourlyRate(d("1000000"), d("173.33"))

	assert.True(t, OvertimePay(decimal.NewFromInt(20), hourly, snap).Equal(OvertimePay(decimal.NewFromInt(30), hourly, snap)))
}

func TestOvertimePay_ExactRates(t *testing.T) {
	snap := payroll.DefaultSnapshot()
	hourly := decimal.NewFromInt(1000)

	assert.True(t, d("10400").Equal(OvertimePay(decimal.NewFromInt(8), hourly, snap)))
	assert.True(t, d("28400").Equal(OvertimePay(decimal.NewFromInt(20), hourly, snap)))
	assert.True(t, OvertimePay(decimal.Zero, hourly, snap).IsZero())
}

func TestHourlyRate_GuardsZero(t *testing.T) {
	assert.True(t, HourlyRate(decimal.Zero, d("173.33")).IsZero())
	assert.True(t, HourlyRate(d("1000"), decimal.Zero).IsZero())
	assert.True(t, d("1000").Equal(HourlyRate(d("173330"), d("173.33"))))
}

func TestSnapshot_HoursPerMonthFallsBackOnZero(t *testing.T) {
	snap := payroll.DefaultSnapshot()
	snap.HoursPerMonthNonAgri = decimal.Zero
	snap.HoursPerMonthAgri = d("-1")

	assert.True(t, d("173.33").Equal(snap.HoursPerMonth(contract.SectorNonAgri)))
	assert.True(t, d("200").Equal(snap.HoursPerMonth(contract.SectorAgri)))
}

// ===== ATTENDANCE =====

func TestAggregateAttendance_InfersHolidayMinutes(t *testing.T) {
	cal := payroll.ParseHolidays([]string{"01-01", "2024-01-15"}, 2024)
	records := []attendance.Record{
		{Date: day(2024, 1, 1), WorkedMinutes: 480},                      // inferred
		{Date: day(2024, 1, 15), WorkedMinutes: 300, HolidayMinutes: 120}, // already tagged
		{Date: day(2024, 1, 2), WorkedMinutes: 480, LateMinutes: 15, PauseExcessMinutes: 5},
		{Date: day(2024, 2, 1), WorkedMinutes: 480, LateMinutes: 60}, // other month
	}

	totals := AggregateAttendance(records, 2024, 1, cal)

	assert.Equal(t, 3, totals.Days)
	assert.Equal(t, 1260, totals.WorkedMinutes)
	assert.Equal(t, 480, totals.InferredHolidayMinutes)
	assert.Equal(t, 600, totals.HolidayMinutes)
	assert.Equal(t, 20, totals.TotalLateMinutes())
}

func TestAggregateAttendance_IgnoresNegativeMinutes(t *testing.T) {
	records := []attendance.Record{{Date: day(2024, 3, 4), WorkedMinutes: -30, LateMinutes: -5}}
	totals := AggregateAttendance(records, 2024, 3, payroll.HolidayCalendar{})
	assert.Equal(t, 0, totals.WorkedMinutes)
	assert.Equal(t, 0, totals.TotalLateMinutes())
}

// ===== CONTRIBUTIONS & ABSENCE =====

func TestCalculateContributions_Capped(t *testing.T) {
	snap := payroll.DefaultSnapshot()
	snap.ContributionCap = payroll.ContributionCap{Kind: payroll.CapFixed, Value: d("100000")}

	c := CalculateContributions(d("250000"), d("250000"), snap)

	assert.True(t, d("100000").Equal(c.Base))
	assert.True(t, d("4000").Equal(c.Employee))
	assert.True(t, d("9000").Equal(c.Employer))
	assert.True(t, d("2500").Equal(c.Health), "health applies to uncapped gross")
}

func TestAbsenceDeduction(t *testing.T) {
	snap := payroll.DefaultSnapshot()
	absences := []attendance.Absence{
		{Date: day(2024, 5, 2)},
		{Date: day(2024, 5, 3), Justified: true},
		{Date: day(2024, 5, 6)},
		{Date: day(2024, 6, 1)},
	}

	days := CountUnjustifiedAbsences(absences, 2024, 5)
	daily, deduction := AbsenceDeduction(d("173330"), days, snap)

	assert.Equal(t, 2, days)
	assert.True(t, d("6666.54").Equal(daily))
	assert.True(t, d("13333.08").Equal(deduction))
}

// ===== LATENESS =====

func TestResolveLateness_CurrentYearFirst(t *testing.T) {
	snap := payroll.DefaultSnapshot()
	balances := []leave.Balance{
		{Year: 2023, EntitlementDays: d("5"), UsedDays: decimal.Zero},
		{Year: 2024, EntitlementDays: d("5"), UsedDays: d("4.5")},
		{Year: 2025, EntitlementDays: d("1"), UsedDays: d("0.5")},
	}

	out := ResolveLateness(960, 0, d("1000000"), HourlyRate(d("1000000"), d("173.33")), 2025, balances, snap)

	require.Len(t, out.Consumption, 3)
	assert.Equal(t, 2025, out.Consumption[0].Year)
	assert.True(t, d("0.5").Equal(out.Consumption[0].Days))
	assert.Equal(t, 2024, out.Consumption[1].Year)
	assert.True(t, d("0.5").Equal(out.Consumption[1].Days))
	assert.Equal(t, 2023, out.Consumption[2].Year)
	assert.True(t, d("1").Equal(out.Consumption[2].Days))
	assert.True(t, d("2").Equal(out.DaysConsumed))
	assert.True(t, out.Penalty.IsZero())
}

func TestResolveLateness_NoBalancePenalizes(t *testing.T) {
	snap := payroll.DefaultSnapshot()
	hourly := HourlyRate(d("1000000"), d("173.33"))

	out := ResolveLateness(60, 30, d("1000000"), hourly, 2025, nil, snap)

	rate := hourly.Mul(d("2.5")).Round(2)
	assert.Equal(t, 90, out.TotalMinutes)
	assert.True(t, d("1.5").Equal(out.HoursPenalized))
	assert.True(t, rate.Equal(out.PenaltyRate))
	assert.True(t, d("1.5").Mul(rate).Round(2).Equal(out.Penalty))
	assert.Empty(t, out.Consumption)
}

func TestResolveLateness_PartialCoverage(t *testing.T) {
	snap := payroll.DefaultSnapshot()
	balances := []leave.Balance{{Year: 2025, EntitlementDays: d("0.25"), UsedDays: decimal.Zero}}

	out := ResolveLateness(240, 0, d("173330"), decimal.NewFromInt(1000), 2025, balances, snap)

	// 0.25 day covers 120 of the 240 minutes
	assert.True(t, d("120").Equal(out.CoveredMinutes))
	assert.True(t, d("2").Equal(out.HoursPenalized))
	assert.True(t, d("2500").Equal(out.PenaltyRate))
	assert.True(t, d("5000").Equal(out.Penalty))
}

func TestResolveLateness_ZeroSalaryIsNoop(t *testing.T) {
	out := ResolveLateness(120, 0, decimal.Zero, decimal.Zero, 2025, nil, payroll.DefaultSnapshot())
	assert.Equal(t, 120, out.TotalMinutes)
	assert.True(t, out.Penalty.IsZero())
	assert.Empty(t, out.Consumption)
}

func TestResolveLateness_WorkDayFallback(t *testing.T) {
	snap := payroll.DefaultSnapshot()
	snap.WorkDayHours = decimal.Zero
	balances := []leave.Balance{{Year: 2025, EntitlementDays: d("10"), UsedDays: decimal.Zero}}

	out := ResolveLateness(480, 0, d("173330"), decimal.NewFromInt(1000), 2025, balances, snap)
	assert.True(t, d("1").Equal(out.DaysConsumed))
}

// ===== ASSEMBLE =====

func TestAssemble_ZeroCase(t *testing.T) {
	comp := Assemble(Input{
		EmployeeID: "emp-1",
		Year:       2025,
		Month:      1,
		DryRun:     true,
		Contract:   ResolvedContract{Sector: contract.SectorNonAgri, Salary: decimal.Zero},
		Snapshot:   payroll.DefaultSnapshot(),
	})

	b := comp.Breakdown
	assert.True(t, b.Gross.IsZero())
	assert.True(t, b.TotalDeductions.IsZero())
	assert.True(t, b.Net.IsZero())
	assert.False(t, b.HasContract)
	assert.NotEmpty(t, b.Details.Notes)
}

func TestAssemble_SalaryOnly(t *testing.T) {
	comp := Assemble(Input{
		EmployeeID: "emp-1",
		Year:       2025,
		Month:      2,
		Contract:   ResolvedContract{Found: true, Sector: contract.SectorNonAgri, Salary: d("173330")},
		Snapshot:   payroll.DefaultSnapshot(),
	})

	b := comp.Breakdown
	assert.True(t, d("1000").Equal(b.HourlyRate))
	assert.True(t, d("173330").Equal(b.Gross))
	assert.True(t, d("6933.2").Equal(b.EmployeeContribution))
	assert.True(t, d("15599.7").Equal(b.EmployerContribution))
	assert.True(t, d("1733.3").Equal(b.HealthContribution))
	assert.True(t, b.IncomeTax.IsZero())
	assert.True(t, d("8666.5").Equal(b.TotalDeductions))
	assert.True(t, d("164663.5").Equal(b.Net))
}

func TestAssemble_IncomeTaxDeductedOnlyWhenEnabled(t *testing.T) {
	in := Input{
		EmployeeID: "emp-1",
		Year:       2025,
		Month:      2,
		Contract:   ResolvedContract{Found: true, Sector: contract.SectorNonAgri, Salary: d("1000000")},
		Snapshot:   payroll.DefaultSnapshot(),
	}

	reported := Assemble(in).Breakdown
	require.True(t, reported.IncomeTax.IsPositive())
	assert.Contains(t, reported.Details.Notes, "income tax reported, not deducted")

	in.Snapshot.DeductIncomeTax = true
	deducted := Assemble(in).Breakdown
	assert.True(t, deducted.TotalDeductions.Equal(reported.TotalDeductions.Add(reported.IncomeTax)))
	assert.True(t, deducted.Net.Equal(deducted.Gross.Sub(deducted.TotalDeductions)))
}

func TestAssemble_NetIdentity(t *testing.T) {
	records := []attendance.Record{
		{Date: day(2025, 1, 1), WorkedMinutes: 480},
		{Date: day(2025, 1, 2), WorkedMinutes: 540, OvertimeMinutes: 725, NightMinutes: 130, LateMinutes: 47},
		{Date: day(2025, 1, 5), WorkedMinutes: 240, SundayMinutes: 240, PauseExcessMinutes: 13},
	}
	absences := []attendance.Absence{{Date: day(2025, 1, 9)}}

	for _, salary := range []string{"0", "1", "173330", "1000000", "9999999.99"} {
		for _, sector := range []contract.Sector{contract.SectorNonAgri, contract.SectorAgri} {
			comp := Assemble(Input{
				EmployeeID: "emp-1",
				Year:       2025,
				Month:      1,
				Contract:   ResolvedContract{Found: true, Sector: sector, Salary: d(salary)},
				Records:    records,
				Absences:   absences,
				Balances:   []leave.Balance{{Year: 2024, EntitlementDays: d("0.05")}},
				Snapshot:   payroll.DefaultSnapshot(),
			})
			b := comp.Breakdown
			assert.True(t, b.Net.Equal(b.Gross.Sub(b.TotalDeductions)), "salary %s sector %s", salary, sector)

			sum := b.EmployeeContribution.Add(b.HealthContribution).Add(b.AbsenceDeduction).Add(b.Details.LateSalaryPenalty)
			assert.True(t, b.TotalDeductions.Equal(sum), "salary %s sector %s", salary, sector)
		}
	}
}

func TestAssemble_OvertimeHoursBeyondMonthlyHours(t *testing.T) {
	records := make([]attendance.Record, 0, 26)
	for dom := 1; dom <= 25; dom++ {
		records = append(records, attendance.Record{Date: day(2025, 2, dom), WorkedMinutes: 480})
	}
	records = append(records, attendance.Record{Date: day(2025, 2, 26), WorkedMinutes: 60, OvertimeMinutes: 600})

	in := Input{
		EmployeeID: "emp-1",
		Year:       2025,
		Month:      2,
		Contract:   ResolvedContract{Found: true, Sector: contract.SectorNonAgri, Salary: d("1000000")},
		Records:    records,
		Snapshot:   payroll.DefaultSnapshot(),
	}

	b := Assemble(in).Breakdown
	assert.True(t, d("201").Equal(b.HoursWorked), "hours worked %s", b.HoursWorked)
	assert.True(t, d("27.67").Equal(b.OvertimeHours), "overtime hours %s", b.OvertimeHours)
	// overtime pay still follows the 10 tagged hours
	assert.True(t, OvertimePay(d("10"), HourlyRate(d("1000000"), d("173.33")), payroll.DefaultSnapshot()).Equal(b.Details.OvertimePay))

	in.Contract.Sector = contract.SectorAgri
	agri := Assemble(in).Breakdown
	assert.True(t, d("1").Equal(agri.OvertimeHours), "agri overtime hours %s", agri.OvertimeHours)
}

func TestAssemble_OvertimeHoursZeroBelowMonthlyHours(t *testing.T) {
	b := Assemble(Input{
		EmployeeID: "emp-1",
		Year:       2025,
		Month:      2,
		Contract:   ResolvedContract{Found: true, Sector: contract.SectorNonAgri, Salary: d("173330")},
		Records:    []attendance.Record{{Date: day(2025, 2, 3), WorkedMinutes: 480, OvertimeMinutes: 120}},
		Snapshot:   payroll.DefaultSnapshot(),
	}).Breakdown

	assert.True(t, d("8").Equal(b.HoursWorked))
	assert.True(t, b.OvertimeHours.IsZero())
	assert.True(t, b.Details.OvertimePay.IsPositive())
}

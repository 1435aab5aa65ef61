package payroll

import (
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// LatenessOutcome is the result of converting lateness into leave days and
// a salary penalty. Consumption is the write plan for persist mode.
type LatenessOutcome struct {
	RecordedMinutes int
	PauseMinutes    int
	TotalMinutes    int
	HoursTotal      decimal.Decimal

	DaysNeeded     decimal.Decimal
	DaysConsumed   decimal.Decimal // reported, rounded to 0.01
	Consumption    []leave.Consumption
	CoveredMinutes decimal.Decimal
	PenaltyMinutes decimal.Decimal
	HoursPenalized decimal.Decimal
	PenaltyRate    decimal.Decimal
	Penalty        decimal.Decimal
}

// ResolveLateness covers late minutes with leave days taken from the payroll
// year first, then the two previous years. Whatever is left uncovered is
// charged at hourly x multiplier. balances may contain any years; rows
// outside the window are ignored.
func ResolveLateness(recorded, pauseExcess int, salary, hourly decimal.Decimal, year int, balances []leave.Balance, snap payroll.Snapshot) LatenessOutcome {
	out := LatenessOutcome{
		RecordedMinutes: recorded,
		PauseMinutes:    pauseExcess,
		TotalMinutes:    recorded + pauseExcess,
		DaysNeeded:      decimal.Zero,
		DaysConsumed:    decimal.Zero,
		CoveredMinutes:  decimal.Zero,
		PenaltyMinutes:  decimal.Zero,
		HoursPenalized:  decimal.Zero,
		PenaltyRate:     decimal.Zero,
		Penalty:         decimal.Zero,
	}
	out.HoursTotal = MinutesToHours(out.TotalMinutes)
	if out.TotalMinutes <= 0 || !salary.IsPositive() {
		return out
	}

	workDayMinutes := snap.WorkDayMinutes()
	total := decimal.NewFromInt(int64(out.TotalMinutes))
	out.DaysNeeded = total.Div(workDayMinutes)

	byYear := make(map[int]leave.Balance, len(balances))
	for _, b := range balances {
		byYear[b.Year] = b
	}

	consumed := decimal.Zero
	remaining := out.DaysNeeded
	for _, y := range []int{year, year - 1, year - 2} {
		if !remaining.IsPositive() {
			break
		}
		b, ok := byYear[y]
		if !ok {
			continue
		}
		available := b.Available()
		if !available.IsPositive() {
			continue
		}
		take := decimal.Min(available, remaining)
		consumed = consumed.Add(take)
		remaining = remaining.Sub(take)
		out.Consumption = append(out.Consumption, leave.Consumption{Year: y, Days: take.Round(2)})
	}

	out.CoveredMinutes = consumed.Mul(workDayMinutes)
	out.PenaltyMinutes = decimal.Max(decimal.Zero, total.Sub(out.CoveredMinutes))
	out.HoursPenalized = out.PenaltyMinutes.Div(sixty).Round(2)
	if hourly.IsPositive() {
		out.PenaltyRate = hourly.Mul(snap.PenaltyMultiplier()).Round(2)
	}
	out.Penalty = out.HoursPenalized.Mul(out.PenaltyRate).Round(2)
	if consumed.IsPositive() {
		out.DaysConsumed = consumed.Round(2)
	}
	return out
}

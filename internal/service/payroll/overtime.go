package payroll

import (
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// MinutesToHours converts minutes to hours rounded to 0.01.
func MinutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(sixty).Round(2)
}

// HourlyRate divides the monthly salary by the sector's monthly hours at full precision.
func HourlyRate(salary, hoursPerMonth decimal.Decimal) decimal.Decimal {
	if !hoursPerMonth.IsPositive() || salary.IsZero() {
		return decimal.Zero
	}
	return salary.Div(hoursPerMonth)
}

// Premiums holds overtime pay and the additive night/sunday/holiday premiums.
type Premiums struct {
	OvertimeHours  decimal.Decimal
	OvertimePay    decimal.Decimal
	NightHours     decimal.Decimal
	NightPremium   decimal.Decimal
	SundayHours    decimal.Decimal
	SundayPremium  decimal.Decimal
	HolidayHours   decimal.Decimal
	HolidayPremium decimal.Decimal
}

func (p Premiums) Total() decimal.Decimal {
	return p.OvertimePay.Add(p.NightPremium).Add(p.SundayPremium).Add(p.HolidayPremium)
}

func CalculatePremiums(t AttendanceTotals, hourly decimal.Decimal, snap payroll.Snapshot) Premiums {
	p := Premiums{
		OvertimeHours: MinutesToHours(t.OvertimeMinutes),
		NightHours:    MinutesToHours(t.NightMinutes),
		SundayHours:   MinutesToHours(t.SundayMinutes),
		HolidayHours:  MinutesToHours(t.HolidayMinutes),
	}
	p.OvertimePay = OvertimePay(p.OvertimeHours, hourly, snap)
	p.NightPremium = premium(p.NightHours, hourly, snap.NightRate)
	p.SundayPremium = premium(p.SundayHours, hourly, snap.SundayRate)
	p.HolidayPremium = premium(p.HolidayHours, hourly, snap.HolidayRate)
	return p
}

// OvertimePay caps hours at the majoration ceiling (20h by default) and pays
// the first tier (8h) at 1.3x and the rest at 1.5x. Hours beyond the
// ceiling earn nothing extra.
func OvertimePay(hours, hourly decimal.Decimal, snap payroll.Snapshot) decimal.Decimal {
	if !hours.IsPositive() || !hourly.IsPositive() {
		return decimal.Zero
	}
	capped := decimal.Min(hours, snap.OvertimeCapHours)
	first := decimal.Min(capped, snap.OvertimeFirstTierHours)
	second := decimal.Max(decimal.Zero, capped.Sub(snap.OvertimeFirstTierHours))

	payFirst := first.Mul(hourly).Mul(snap.OvertimeFirstTierRate).Round(2)
	paySecond := second.Mul(hourly).Mul(snap.OvertimeSecondTierRate).Round(2)
	return payFirst.Add(paySecond).Round(2)
}

func premium(hours, hourly, rate decimal.Decimal) decimal.Decimal {
	return hours.Mul(hourly).Mul(rate).Round(2)
}

package payroll

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
	"github.com/shopspring/decimal"
)

var (
	defaultHoursPerMonthNonAgri = decimal.RequireFromString("173.33")
	defaultHoursPerMonthAgri    = decimal.NewFromInt(200)
	defaultWorkDayHours         = decimal.NewFromInt(8)
	defaultLatePenalty          = decimal.RequireFromString("2.5")
	defaultAbsenceWorkingDays   = decimal.NewFromInt(26)
)

// DefaultHolidays are recurring MM-DD entries applied when none are configured.
var DefaultHolidays = []string{"01-01", "06-26"}

// CapKind selects how the contribution base is capped.
type CapKind string

const (
	CapNone       CapKind = "NONE"
	CapFixed      CapKind = "FIXED"
	CapMultiplier CapKind = "MULTIPLIER"
)

// ContributionCap bounds the base of social contributions. A fixed cap is an
// amount; a multiplier cap is a factor of the base salary.
type ContributionCap struct {
	Kind  CapKind         `json:"kind" yaml:"kind"`
	Value decimal.Decimal `json:"value" yaml:"value"`
}

// ParseContributionCap accepts "", "350000" or "MULTIPLIER:8".
func ParseContributionCap(raw string) (ContributionCap, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ContributionCap{Kind: CapNone}, nil
	}
	if v, err := decimal.NewFromString(raw); err == nil {
		return ContributionCap{Kind: CapFixed, Value: v}, nil
	}
	kind, value, ok := strings.Cut(raw, ":")
	if !ok || !strings.EqualFold(kind, string(CapMultiplier)) {
		return ContributionCap{}, fmt.Errorf("%w: %q", ErrInvalidContributionCap, raw)
	}
	v, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return ContributionCap{}, fmt.Errorf("%w: %q", ErrInvalidContributionCap, raw)
	}
	return ContributionCap{Kind: CapMultiplier, Value: v}, nil
}

func (c ContributionCap) String() string {
	switch c.Kind {
	case CapFixed:
		return c.Value.String()
	case CapMultiplier:
		return string(CapMultiplier) + ":" + c.Value.String()
	}
	return ""
}

// Base returns the contribution base for gross pay, min(cap, gross).
func (c ContributionCap) Base(gross, salary decimal.Decimal) decimal.Decimal {
	switch c.Kind {
	case CapFixed:
		return decimal.Min(c.Value, gross)
	case CapMultiplier:
		return decimal.Min(salary.Mul(c.Value), gross)
	}
	return gross
}

// TaxBracket taxes the part of the base above From (and up to To when set) at Rate.
type TaxBracket struct {
	From decimal.Decimal  `json:"from" yaml:"from"`
	To   *decimal.Decimal `json:"to,omitempty" yaml:"to,omitempty"`
	Rate decimal.Decimal  `json:"rate" yaml:"rate"`
}

func DefaultTaxBrackets() []TaxBracket {
	bound := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}
	return []TaxBracket{
		{From: decimal.Zero, To: bound(350000), Rate: decimal.Zero},
		{From: decimal.NewFromInt(350000), To: bound(400000), Rate: decimal.RequireFromString("0.05")},
		{From: decimal.NewFromInt(400000), To: bound(500000), Rate: decimal.RequireFromString("0.10")},
		{From: decimal.NewFromInt(500000), To: bound(600000), Rate: decimal.RequireFromString("0.15")},
		{From: decimal.NewFromInt(600000), To: bound(4000000), Rate: decimal.RequireFromString("0.20")},
		{From: decimal.NewFromInt(4000000), Rate: decimal.RequireFromString("0.25")},
	}
}

// Snapshot is the rate generation used for one computation. It is passed by
// value and must not be mutated once handed to the engine.
type Snapshot struct {
	Version string `json:"version"`

	HoursPerMonthNonAgri decimal.Decimal `json:"hours_per_month_non_agri"`
	HoursPerMonthAgri    decimal.Decimal `json:"hours_per_month_agri"`

	EmployeeContributionRate decimal.Decimal `json:"employee_contribution_rate"`
	EmployerContributionRate decimal.Decimal `json:"employer_contribution_rate"`
	ContributionCap          ContributionCap `json:"contribution_cap"`
	HealthContributionRate   decimal.Decimal `json:"health_contribution_rate"`

	NightRate   decimal.Decimal `json:"night_rate"`
	SundayRate  decimal.Decimal `json:"sunday_rate"`
	HolidayRate decimal.Decimal `json:"holiday_rate"`

	OvertimeCapHours       decimal.Decimal `json:"overtime_cap_hours"`
	OvertimeFirstTierHours decimal.Decimal `json:"overtime_first_tier_hours"`
	OvertimeFirstTierRate  decimal.Decimal `json:"overtime_first_tier_rate"`
	OvertimeSecondTierRate decimal.Decimal `json:"overtime_second_tier_rate"`

	WorkDayHours          decimal.Decimal `json:"work_day_hours"`
	LatePenaltyMultiplier decimal.Decimal `json:"late_penalty_multiplier"`
	AbsenceWorkingDays    decimal.Decimal `json:"absence_working_days"`

	Holidays        []string     `json:"holidays"`
	TaxBrackets     []TaxBracket `json:"tax_brackets"`
	DeductIncomeTax bool         `json:"deduct_income_tax"`
}

func DefaultSnapshot() Snapshot {
	return Snapshot{
		Version:                  "default",
		HoursPerMonthNonAgri:     defaultHoursPerMonthNonAgri,
		HoursPerMonthAgri:        defaultHoursPerMonthAgri,
		EmployeeContributionRate: decimal.RequireFromString("0.04"),
		EmployerContributionRate: decimal.RequireFromString("0.09"),
		ContributionCap:          ContributionCap{Kind: CapMultiplier, Value: decimal.NewFromInt(8)},
		HealthContributionRate:   decimal.RequireFromString("0.01"),
		NightRate:                decimal.RequireFromString("0.30"),
		SundayRate:               decimal.RequireFromString("1.00"),
		HolidayRate:              decimal.RequireFromString("2.00"),
		OvertimeCapHours:         decimal.NewFromInt(20),
		OvertimeFirstTierHours:   decimal.NewFromInt(8),
		OvertimeFirstTierRate:    decimal.RequireFromString("1.3"),
		OvertimeSecondTierRate:   decimal.RequireFromString("1.5"),
		WorkDayHours:             defaultWorkDayHours,
		LatePenaltyMultiplier:    defaultLatePenalty,
		AbsenceWorkingDays:       defaultAbsenceWorkingDays,
		Holidays:                 append([]string(nil), DefaultHolidays...),
		TaxBrackets:              DefaultTaxBrackets(),
	}
}

// Clone returns a copy that shares no slices with s.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Holidays = append([]string(nil), s.Holidays...)
	out.TaxBrackets = make([]TaxBracket, len(s.TaxBrackets))
	for i, b := range s.TaxBrackets {
		out.TaxBrackets[i] = b
		if b.To != nil {
			to := *b.To
			out.TaxBrackets[i].To = &to
		}
	}
	return out
}

// HoursPerMonth returns the sector's monthly hours. Non-positive values fall
// back to the sector default.
func (s Snapshot) HoursPerMonth(sector contract.Sector) decimal.Decimal {
	if sector == contract.SectorAgri {
		if s.HoursPerMonthAgri.IsPositive() {
			return s.HoursPerMonthAgri
		}
		return defaultHoursPerMonthAgri
	}
	if s.HoursPerMonthNonAgri.IsPositive() {
		return s.HoursPerMonthNonAgri
	}
	return defaultHoursPerMonthNonAgri
}

// WorkDayMinutes is the length of a work day in minutes, 480 by default.
func (s Snapshot) WorkDayMinutes() decimal.Decimal {
	hours := s.WorkDayHours
	if !hours.IsPositive() {
		hours = defaultWorkDayHours
	}
	return hours.Mul(decimal.NewFromInt(60))
}

func (s Snapshot) PenaltyMultiplier() decimal.Decimal {
	if !s.LatePenaltyMultiplier.IsPositive() {
		return defaultLatePenalty
	}
	return s.LatePenaltyMultiplier
}

func (s Snapshot) WorkingDaysPerMonth() decimal.Decimal {
	if !s.AbsenceWorkingDays.IsPositive() {
		return defaultAbsenceWorkingDays
	}
	return s.AbsenceWorkingDays
}

// HolidayCalendar resolves the configured entries for the payroll year.
func (s Snapshot) HolidayCalendar(year int) HolidayCalendar {
	return ParseHolidays(s.Holidays, year)
}

// Validate rejects negative rates and unordered tax brackets.
func (s Snapshot) Validate() error {
	rates := map[string]decimal.Decimal{
		"employee_contribution_rate": s.EmployeeContributionRate,
		"employer_contribution_rate": s.EmployerContributionRate,
		"health_contribution_rate":   s.HealthContributionRate,
		"night_rate":                 s.NightRate,
		"sunday_rate":                s.SundayRate,
		"holiday_rate":               s.HolidayRate,
		"overtime_cap_hours":         s.OvertimeCapHours,
		"overtime_first_tier_hours":  s.OvertimeFirstTierHours,
		"overtime_first_tier_rate":   s.OvertimeFirstTierRate,
		"overtime_second_tier_rate":  s.OvertimeSecondTierRate,
	}
	for name, v := range rates {
		if v.IsNegative() {
			return fmt.Errorf("%w: %s must be non-negative", ErrInvalidSnapshot, name)
		}
	}
	if s.ContributionCap.Kind != CapNone && s.ContributionCap.Value.IsNegative() {
		return fmt.Errorf("%w: contribution cap must be non-negative", ErrInvalidSnapshot)
	}
	for i, b := range s.TaxBrackets {
		if b.Rate.IsNegative() {
			return fmt.Errorf("%w: tax bracket %d has a negative rate", ErrInvalidSnapshot, i)
		}
		if b.To != nil && b.To.LessThanOrEqual(b.From) {
			return fmt.Errorf("%w: tax bracket %d is empty", ErrInvalidSnapshot, i)
		}
		if i > 0 && b.From.LessThan(s.TaxBrackets[i-1].From) {
			return fmt.Errorf("%w: tax brackets must be ordered", ErrInvalidSnapshot)
		}
	}
	return nil
}

// HolidayCalendar is the set of holiday dates of one payroll year.
type HolidayCalendar map[string]struct{}

// ParseHolidays builds the calendar from "MM-DD" (recurring, placed in year)
// and "YYYY-MM-DD" entries. Malformed entries are skipped.
func ParseHolidays(entries []string, year int) HolidayCalendar {
	cal := make(HolidayCalendar, len(entries))
	for _, raw := range entries {
		h := strings.TrimSpace(raw)
		var y, m, d int
		var err error
		if len(h) == 5 && h[2] == '-' {
			y = year
			m, d, err = parseMonthDay(h)
		} else {
			parts := strings.Split(h, "-")
			if len(parts) != 3 {
				continue
			}
			y, err = strconv.Atoi(parts[0])
			if err == nil {
				m, d, err = parseMonthDay(parts[1] + "-" + parts[2])
			}
		}
		if err != nil {
			continue
		}
		t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
		if t.Year() != y || int(t.Month()) != m || t.Day() != d {
			continue
		}
		cal[t.Format(time.DateOnly)] = struct{}{}
	}
	return cal
}

func parseMonthDay(s string) (int, int, error) {
	mm, dd, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid month-day %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, 0, err
	}
	d, err := strconv.Atoi(dd)
	if err != nil {
		return 0, 0, err
	}
	return m, d, nil
}

func (c HolidayCalendar) Contains(t time.Time) bool {
	_, ok := c[t.Format(time.DateOnly)]
	return ok
}

// SnapshotProvider resolves the rate generation for a computation.
type SnapshotProvider interface {
	Current(ctx context.Context) (Snapshot, error)
}

// StaticSnapshot always returns a copy of the same snapshot.
type StaticSnapshot struct {
	snapshot Snapshot
}

func NewStaticSnapshot(s Snapshot) *StaticSnapshot {
	return &StaticSnapshot{snapshot: s.Clone()}
}

func (p *StaticSnapshot) Current(ctx context.Context) (Snapshot, error) {
	return p.snapshot.Clone(), nil
}

package payroll

import (
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type Contributions struct {
	Base     decimal.Decimal
	Employee decimal.Decimal
	Employer decimal.Decimal
	Health   decimal.Decimal
}

// CalculateContributions applies the employee and employer rates to the
// capped base and the health rate to uncapped gross. Only Employee and Health
// are deducted from pay.
func CalculateContributions(gross, salary decimal.Decimal, snap payroll.Snapshot) Contributions {
	base := snap.ContributionCap.Base(gross, salary)
	return Contributions{
		Base:     base,
		Employee: base.Mul(snap.EmployeeContributionRate).Round(2),
		Employer: base.Mul(snap.EmployerContributionRate).Round(2),
		Health:   gross.Mul(snap.HealthContributionRate).Round(2),
	}
}

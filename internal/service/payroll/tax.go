package payroll

import (
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// TaxableBase is gross minus the employee and health contributions, floored at zero.
func TaxableBase(gross, employeeContribution, healthContribution decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, gross.Sub(employeeContribution).Sub(healthContribution))
}

// IncomeTax applies the brackets marginally and rounds the sum to a whole unit.
func IncomeTax(base decimal.Decimal, brackets []payroll.TaxBracket) decimal.Decimal {
	tax := decimal.Zero
	for _, b := range brackets {
		if base.LessThanOrEqual(b.From) {
			continue
		}
		upper := base
		if b.To != nil && b.To.LessThan(base) {
			upper = *b.To
		}
		tax = tax.Add(upper.Sub(b.From).Mul(b.Rate))
	}
	return tax.Round(0)
}

package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
	"github.com/shopspring/decimal"
)

// ResolvedContract is the contract data the engine depends on. Found is false
// when the employee has no active contract; Sector and Salary then hold the
// NON_AGRI / zero defaults.
type ResolvedContract struct {
	Contract contract.Contract
	Found    bool
	Sector   contract.Sector
	Salary   decimal.Decimal
}

type ContractResolver struct {
	repo contract.ContractRepository
}

func NewContractResolver(repo contract.ContractRepository) *ContractResolver {
	return &ContractResolver{repo: repo}
}

// Resolve returns the most recently started active contract. A missing
// contract is a data-quality problem, not a failure.
func (r *ContractResolver) Resolve(ctx context.Context, employeeID string, year, month int) (ResolvedContract, error) {
	c, err := r.repo.GetActiveByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, contract.ErrContractNotFound) {
			slog.Warn("No active contract, payroll falls back to zero salary",
				"employee_id", employeeID, "year", year, "month", month)
			return ResolvedContract{Sector: contract.SectorNonAgri, Salary: decimal.Zero}, nil
		}
		return ResolvedContract{}, fmt.Errorf("failed to resolve contract: %w", err)
	}

	sector := c.Sector
	if !sector.IsValid() {
		slog.Warn("Contract has an unknown sector, using NON_AGRI",
			"employee_id", employeeID, "contract_id", c.ID, "sector", c.Sector)
		sector = contract.SectorNonAgri
	}
	return ResolvedContract{Contract: c, Found: true, Sector: sector, Salary: c.BaseSalary}, nil
}

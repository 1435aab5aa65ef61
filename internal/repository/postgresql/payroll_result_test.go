package postgresql

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBreakdown() payroll.Breakdown {
	return payroll.Breakdown{
		EmployeeID:      "emp-1",
		Year:            2025,
		Month:           1,
		HasContract:     true,
		Sector:          contract.SectorNonAgri,
		SnapshotVersion: "default",
		SalaryBase:      dec("173330"),
		Gross:           dec("173330"),
		TotalDeductions: dec("8666.5"),
		Net:             dec("164663.5"),
		Details:         payroll.Details{Notes: []string{"income tax reported, not deducted"}},
	}
}

func TestPayrollResultRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPayrollResultRepository(db)
	now := time.Now().UTC()
	bd := sampleBreakdown()

	mock.ExpectQuery(`ON CONFLICT ON CONSTRAINT uk_payroll_result_period`).
		WithArgs(pgxmock.AnyArg(), "emp-1", 2025, 1,
			decimalArg{dec("173330")}, decimalArg{dec("8666.5")}, decimalArg{dec("164663.5")},
			pgxmock.AnyArg(), "system").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("res-1", now, now))

	res, err := repo.Upsert(context.Background(), payroll.Result{
		EmployeeID: "emp-1", Year: 2025, Month: 1, Breakdown: bd, ComputedBy: "system",
	})
	require.NoError(t, err)
	assert.Equal(t, "res-1", res.ID)
	assert.Equal(t, now, res.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayrollResultRepository_GetByEmployeePeriod(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPayrollResultRepository(db)
	now := time.Now().UTC()

	raw, err := json.Marshal(sampleBreakdown())
	require.NoError(t, err)

	mock.ExpectQuery(`FROM payroll_results`).
		WithArgs("emp-1", 2025, 1).
		WillReturnRows(pgxmock.NewRows([]string{"id", "employee_id", "year", "month", "breakdown", "computed_by", "created_at", "updated_at"}).
			AddRow("res-1", "emp-1", 2025, 1, raw, "hr-1", now, now))

	res, err := repo.GetByEmployeePeriod(context.Background(), "emp-1", 2025, 1)
	require.NoError(t, err)
	assert.Equal(t, "hr-1", res.ComputedBy)
	assert.True(t, res.Breakdown.Net.Equal(dec("164663.5")))
	assert.Equal(t, []string{"income tax reported, not deducted"}, res.Breakdown.Details.Notes)

	mock.ExpectQuery(`FROM payroll_results`).
		WithArgs("emp-1", 2025, 2).
		WillReturnError(pgx.ErrNoRows)
	_, err = repo.GetByEmployeePeriod(context.Background(), "emp-1", 2025, 2)
	assert.ErrorIs(t, err, payroll.ErrPayrollResultNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayrollResultRepository_ListByPeriod(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPayrollResultRepository(db)
	now := time.Now().UTC()

	raw, err := json.Marshal(sampleBreakdown())
	require.NoError(t, err)

	mock.ExpectQuery(`WHERE year = \$1 AND month = \$2`).
		WithArgs(2025, 1).
		WillReturnRows(pgxmock.NewRows([]string{"id", "employee_id", "year", "month", "breakdown", "computed_by", "created_at", "updated_at"}).
			AddRow("res-1", "emp-1", 2025, 1, raw, "system", now, now).
			AddRow("res-2", "emp-2", 2025, 1, []byte(`{not json`), "system", now, now))

	_, err = repo.ListByPeriod(context.Background(), 2025, 1)
	assert.ErrorContains(t, err, "failed to scan payroll result")
	assert.NoError(t, mock.ExpectationsWereMet())
}

package postgresql

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/notification"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertRepository_CreateBatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAlertRepository(db)

	emp := "emp-1"
	now := time.Now().UTC()
	alerts := []*notification.Alert{
		{EmployeeID: &emp, Type: notification.TypeLate, Message: "late 20 minutes", CreatedAt: now},
		{EmployeeID: &emp, Type: notification.TypeContractTerminated, Message: "terminated", Data: map[string]interface{}{"contract_id": "c-1"}, CreatedAt: now},
	}

	mock.ExpectExec(`INSERT INTO alerts .* VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7\), \(\$8, \$9, \$10, \$11, \$12, \$13, \$14\)`).
		WithArgs(
			pgxmock.AnyArg(), &emp, "LATE", "late 20 minutes", "OPEN", []byte("null"), now,
			pgxmock.AnyArg(), &emp, "CONTRACT_TERMINATED", "terminated", "OPEN", []byte(`{"contract_id":"c-1"}`), now,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))

	require.NoError(t, repo.CreateBatch(context.Background(), alerts))
	for _, a := range alerts {
		assert.NotEmpty(t, a.ID)
		assert.Equal(t, notification.StatusOpen, a.Status)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlertRepository_CreateBatch_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAlertRepository(db)

	require.NoError(t, repo.CreateBatch(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlertRepository_ListByEmployee_FiltersStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAlertRepository(db)

	emp := "emp-1"
	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "employee_id", "type", "message", "status", "data", "created_at", "resolved_at"}).
		AddRow("al-1", &emp, "LATE", "late", "OPEN", []byte(`{"minutes":20}`), now, nil)

	mock.ExpectQuery(`WHERE employee_id = \$1 AND status = \$2`).
		WithArgs("emp-1", "OPEN").
		WillReturnRows(rows)

	open := notification.StatusOpen
	alerts, err := repo.ListByEmployee(context.Background(), "emp-1", &open)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, notification.TypeLate, alerts[0].Type)
	assert.Equal(t, float64(20), alerts[0].Data["minutes"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlertRepository_ResolveOpen(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAlertRepository(db)

	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`SET status = 'RESOLVED'.*created_at::date BETWEEN \$3 AND \$4`).
		WithArgs("emp-1", "LATE", from, to).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	n, err := repo.ResolveOpen(context.Background(), "emp-1", notification.TypeLate, from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package contract

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/notification"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/memory"
	notificationService "github.com/cmlabs-hris/payroll-engine/internal/service/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContractFixture(t *testing.T) (*memory.Store, contract.ContractService, notification.Service) {
	t.Helper()
	store := memory.NewStore()
	alerts := notificationService.NewAlertService(memory.NewAlertRepository(store), notificationService.Config{FlushInterval: time.Hour})
	svc := NewContractService(memory.Transactor{}, memory.NewContractRepository(store), alerts)
	return store, svc, alerts
}

func TestContractService_RenewTrial(t *testing.T) {
	store, svc, alerts := newContractFixture(t)
	defer alerts.Stop()
	store.PutContract(trial())

	resp, err := svc.RenewTrial(context.Background(), actor, "c-1")
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Contract.TrialRenewals)
	require.NotNil(t, resp.Contract.EndDate)
	assert.Equal(t, "2025-06-30", *resp.Contract.EndDate)
	require.Len(t, resp.Events, 1)
	assert.NotEmpty(t, resp.Events[0].ID)

	history := store.Events()
	require.Len(t, history, 1)
	assert.Equal(t, resp.Events[0].ID, history[0].ID)
}

func TestContractService_ConvertThenTerminate_RaisesAlert(t *testing.T) {
	store, svc, alerts := newContractFixture(t)
	store.PutContract(trial())

	_, err := svc.ConvertToCDD(context.Background(), actor, "c-1", contract.ConvertToCDDRequest{Months: 6})
	require.NoError(t, err)

	date := "2025-04-30"
	resp, err := svc.Terminate(context.Background(), actor, "c-1", contract.TerminateRequest{Date: &date, Reason: "end of mission"})
	require.NoError(t, err)
	assert.False(t, resp.Contract.Active)
	assert.Equal(t, "2025-04-30", *resp.Contract.EndDate)

	alerts.Stop()
	stored := store.Alerts()
	require.Len(t, stored, 1)
	assert.Equal(t, notification.TypeContractTerminated, stored[0].Type)
	assert.Equal(t, "emp-1", *stored[0].EmployeeID)
	assert.Len(t, store.Events(), 2)
}

func TestContractService_InvalidTransitionLeavesContract(t *testing.T) {
	store, svc, alerts := newContractFixture(t)
	defer alerts.Stop()
	store.PutContract(trial())

	_, err := svc.Terminate(context.Background(), actor, "c-1", contract.TerminateRequest{Reason: "nope"})
	assert.ErrorIs(t, err, contract.ErrInvalidTransition)

	c, err := memory.NewContractRepository(store).GetByID(context.Background(), "c-1")
	require.NoError(t, err)
	assert.True(t, c.Active)
	assert.Empty(t, store.Events())
}

func TestContractService_NotFound(t *testing.T) {
	_, svc, alerts := newContractFixture(t)
	defer alerts.Stop()

	_, err := svc.ConvertToCDI(context.Background(), actor, "missing")
	assert.ErrorIs(t, err, contract.ErrContractNotFound)
}

func TestContractService_Terminate_Validation(t *testing.T) {
	_, svc, alerts := newContractFixture(t)
	defer alerts.Stop()

	bad := "31/12/2025"
	_, err := svc.Terminate(context.Background(), actor, "c-1", contract.TerminateRequest{Date: &bad})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "date")
	assert.Contains(t, verrs.ToMap(), "reason")
}

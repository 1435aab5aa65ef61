package notification

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/notification"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestAlertService_QueueAlert_FlushedOnStop(t *testing.T) {
	store := memory.NewStore()
	svc := NewAlertService(memory.NewAlertRepository(store), Config{FlushInterval: time.Hour, WorkerCount: 1})

	err := svc.QueueAlert(context.Background(), notification.CreateAlertRequest{
		EmployeeID: strPtr("emp-1"),
		Type:       notification.TypeContractTerminated,
		Message:    "contract terminated",
	})
	require.NoError(t, err)

	svc.Stop()

	alerts := store.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, notification.TypeContractTerminated, alerts[0].Type)
	assert.Equal(t, notification.StatusOpen, alerts[0].Status)
	assert.NotEmpty(t, alerts[0].ID)
}

func TestAlertService_QueueAlert_AfterStop(t *testing.T) {
	svc := NewAlertService(memory.NewAlertRepository(memory.NewStore()), Config{})
	svc.Stop()
	svc.Stop()

	err := svc.QueueAlert(context.Background(), notification.CreateAlertRequest{Type: notification.TypeLate})
	assert.ErrorIs(t, err, notification.ErrQueueStopped)
}

func TestAlertService_QueueAlert_RacingStopKeepsAccepted(t *testing.T) {
	for round := 0; round < 20; round++ {
		store := memory.NewStore()
		svc := NewAlertService(memory.NewAlertRepository(store), Config{BatchSize: 4, FlushInterval: time.Hour, WorkerCount: 2, QueueSize: 8})

		var accepted atomic.Int64
		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				for j := 0; j < 25; j++ {
					err := svc.QueueAlert(context.Background(), notification.CreateAlertRequest{
						EmployeeID: strPtr("emp-1"),
						Type:       notification.TypeLate,
						Message:    "late",
					})
					if err == nil {
						accepted.Add(1)
					} else {
						assert.ErrorIs(t, err, notification.ErrQueueStopped)
					}
				}
			}()
		}

		close(start)
		svc.Stop()
		wg.Wait()

		assert.Len(t, store.Alerts(), int(accepted.Load()), "round %d", round)
	}
}

func TestAlertService_QueueBulkAlerts_BatchFlush(t *testing.T) {
	store := memory.NewStore()
	svc := NewAlertService(memory.NewAlertRepository(store), Config{BatchSize: 2, FlushInterval: time.Hour, WorkerCount: 1})

	reqs := []notification.CreateAlertRequest{
		{EmployeeID: strPtr("emp-1"), Type: notification.TypeLate, Message: "late"},
		{EmployeeID: strPtr("emp-2"), Type: notification.TypeLate, Message: "late"},
		{EmployeeID: strPtr("emp-3"), Type: notification.TypeLate, Message: "late"},
	}
	require.NoError(t, svc.QueueBulkAlerts(context.Background(), reqs))
	svc.Stop()

	assert.Len(t, store.Alerts(), 3)
}

func TestAlertService_ResolveLateAlerts(t *testing.T) {
	store := memory.NewStore()
	svc := NewAlertService(memory.NewAlertRepository(store), Config{})
	defer svc.Stop()

	inMonth := time.Date(2024, 3, 31, 18, 0, 0, 0, time.UTC)
	store.PutAlert(notification.Alert{ID: "a1", EmployeeID: strPtr("emp-1"), Type: notification.TypeLate, Status: notification.StatusOpen, CreatedAt: inMonth})
	store.PutAlert(notification.Alert{ID: "a2", EmployeeID: strPtr("emp-1"), Type: notification.TypeLate, Status: notification.StatusOpen, CreatedAt: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)})
	store.PutAlert(notification.Alert{ID: "a3", EmployeeID: strPtr("emp-2"), Type: notification.TypeLate, Status: notification.StatusOpen, CreatedAt: inMonth})
	store.PutAlert(notification.Alert{ID: "a4", EmployeeID: strPtr("emp-1"), Type: notification.TypeContractExpiring, Status: notification.StatusOpen, CreatedAt: inMonth})

	n, err := svc.ResolveLateAlerts(context.Background(), "emp-1", 2024, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	open, err := svc.ListAlerts(context.Background(), "emp-1", true)
	require.NoError(t, err)
	ids := make([]string, 0, len(open))
	for _, a := range open {
		ids = append(ids, a.ID)
	}
	assert.ElementsMatch(t, []string{"a2", "a4"}, ids)

	all, err := svc.ListAlerts(context.Background(), "emp-1", false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestAlertService_Subscribe(t *testing.T) {
	store := memory.NewStore()
	svc := NewAlertService(memory.NewAlertRepository(store), Config{FlushInterval: 10 * time.Millisecond, WorkerCount: 1})
	defer svc.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, unsubscribe := svc.Subscribe(ctx, "emp-1")
	defer unsubscribe()
	everyone, unsubscribeAll := svc.Subscribe(ctx, "")
	defer unsubscribeAll()

	require.NoError(t, svc.QueueBulkAlerts(ctx, []notification.CreateAlertRequest{
		{EmployeeID: strPtr("emp-2"), Type: notification.TypeLate, Message: "late"},
		{EmployeeID: strPtr("emp-1"), Type: notification.TypeContractExpiring, Message: "expiring"},
	}))

	select {
	case ev := <-events:
		assert.Equal(t, notification.EventAlertCreated, ev.Event)
		assert.Equal(t, notification.TypeContractExpiring, ev.Data.Type)
		require.NotNil(t, ev.Data.EmployeeID)
		assert.Equal(t, "emp-1", *ev.Data.EmployeeID)
	case <-time.After(2 * time.Second):
		t.Fatal("no alert event received")
	}

	received := 0
	timeout := time.After(2 * time.Second)
	for received < 2 {
		select {
		case <-everyone:
			received++
		case <-timeout:
			t.Fatalf("received %d of 2 events on the all-employees stream", received)
		}
	}
}

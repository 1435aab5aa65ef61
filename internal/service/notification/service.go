package notification

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/notification"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/sse"
	"github.com/google/uuid"
)

// Config holds alert service configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
	Hub           *sse.Hub      // stored alerts are published here; a private hub when nil
}

type service struct {
	repo   notification.AlertRepository
	hub    *sse.Hub
	config Config

	queue    chan notification.CreateAlertRequest
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once

	// mu orders queue sends before Stop closes stopCh, so the drain sees them.
	mu      sync.RWMutex
	stopped bool
}

// NewAlertService creates the alert service and starts its background workers
func NewAlertService(repo notification.AlertRepository, cfg Config) notification.Service {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}
	if cfg.Hub == nil {
		cfg.Hub = sse.NewHub()
	}

	s := &service{
		repo:   repo,
		hub:    cfg.Hub,
		config: cfg,
		queue:  make(chan notification.CreateAlertRequest, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	log.Printf("[AlertService] Started with %d workers, batch size %d, flush interval %v",
		cfg.WorkerCount, cfg.BatchSize, cfg.FlushInterval)

	return s
}

// worker drains the queue and inserts alerts in batches
func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.CreateAlertRequest, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		alerts := make([]*notification.Alert, len(batch))
		for i, req := range batch {
			alerts[i] = newAlert(req)
		}

		if err := s.repo.CreateBatch(ctx, alerts); err != nil {
			log.Printf("[AlertWorker-%d] Failed to batch insert: %v", id, err)
		} else {
			log.Printf("[AlertWorker-%d] Inserted %d alerts", id, len(alerts))
			for _, a := range alerts {
				s.publish(a)
			}
		}

		batch = batch[:0]
	}

	for {
		select {
		case req := <-s.queue:
			batch = append(batch, req)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			// drain what is already queued
			for {
				select {
				case req := <-s.queue:
					batch = append(batch, req)
					if len(batch) >= s.config.BatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

func newAlert(req notification.CreateAlertRequest) *notification.Alert {
	return &notification.Alert{
		ID:         uuid.New().String(),
		EmployeeID: req.EmployeeID,
		Type:       req.Type,
		Message:    req.Message,
		Status:     notification.StatusOpen,
		Data:       req.Data,
		CreatedAt:  time.Now().UTC(),
	}
}

// QueueAlert queues an alert for async insertion
func (s *service) QueueAlert(ctx context.Context, req notification.CreateAlertRequest) error {
	queued, err := s.enqueue(ctx, req)
	if err != nil || queued {
		return err
	}

	// Queue full, insert directly
	a := newAlert(req)
	if err := s.repo.Create(ctx, a); err != nil {
		return err
	}
	s.publish(a)
	return nil
}

func (s *service) enqueue(ctx context.Context, req notification.CreateAlertRequest) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.stopped {
		return false, notification.ErrQueueStopped
	}
	select {
	case s.queue <- req:
		return true, nil
	case <-ctx.Done():
		return false, ctx.Err()
	default:
		return false, nil
	}
}

func (s *service) publish(a *notification.Alert) {
	topic := sse.AllTopic
	if a.EmployeeID != nil {
		topic = *a.EmployeeID
	}
	s.hub.Publish(topic, sse.Event{Event: notification.EventAlertCreated, Data: toResponse(a)})
}

// QueueBulkAlerts queues every request; individual failures are logged
func (s *service) QueueBulkAlerts(ctx context.Context, reqs []notification.CreateAlertRequest) error {
	for _, req := range reqs {
		if err := s.QueueAlert(ctx, req); err != nil {
			log.Printf("[AlertService] Failed to queue alert: %v", err)
		}
	}
	return nil
}

// ResolveLateAlerts implements notification.Service.
func (s *service) ResolveLateAlerts(ctx context.Context, employeeID string, year, month int) (int64, error) {
	from, to := attendance.MonthRange(year, month)
	n, err := s.repo.ResolveOpen(ctx, employeeID, notification.TypeLate, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve lateness alerts: %w", err)
	}
	return n, nil
}

// ListAlerts implements notification.Service.
func (s *service) ListAlerts(ctx context.Context, employeeID string, openOnly bool) ([]notification.AlertResponse, error) {
	var status *notification.AlertStatus
	if openOnly {
		open := notification.StatusOpen
		status = &open
	}

	alerts, err := s.repo.ListByEmployee(ctx, employeeID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}

	responses := make([]notification.AlertResponse, len(alerts))
	for i, a := range alerts {
		responses[i] = toResponse(a)
	}
	return responses, nil
}

func toResponse(a *notification.Alert) notification.AlertResponse {
	return notification.AlertResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Type:       a.Type,
		Message:    a.Message,
		Status:     a.Status,
		Data:       a.Data,
		CreatedAt:  a.CreatedAt,
		ResolvedAt: a.ResolvedAt,
	}
}

// Subscribe streams the alerts stored for employeeID from now on. An empty
// employeeID subscribes to every alert.
func (s *service) Subscribe(ctx context.Context, employeeID string) (<-chan notification.AlertEvent, func()) {
	topic := employeeID
	if topic == "" {
		topic = sse.AllTopic
	}
	ch, cleanup := s.hub.Subscribe(topic)

	out := make(chan notification.AlertEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				if resp, ok := event.Data.(notification.AlertResponse); ok {
					select {
					case out <- notification.AlertEvent{Event: event.Event, Data: resp}:
					case <-ctx.Done():
						return
					}
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// Stop flushes pending alerts and stops the workers. Safe to call twice.
func (s *service) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.stopped = true
		close(s.stopCh)
		s.mu.Unlock()

		s.wg.Wait()
		log.Println("[AlertService] Stopped")
	})
}

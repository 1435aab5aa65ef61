package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunJob(t *testing.T) {
	s := NewScheduler()
	var calls int32
	s.AddJob("b_job", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	s.AddJob("a_job", time.Hour, func(ctx context.Context) error {
		return errors.New("boom")
	})

	assert.Equal(t, []string{"a_job", "b_job"}, s.Names())

	require.NoError(t, s.RunJob(context.Background(), "b_job"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	assert.EqualError(t, s.RunJob(context.Background(), "a_job"), "boom")
	assert.ErrorIs(t, s.RunJob(context.Background(), "missing"), ErrJobNotFound)
}

func TestScheduler_RunOnce_RecoversPanics(t *testing.T) {
	s := NewScheduler()
	var ran int32
	s.AddJob("panics", time.Hour, func(ctx context.Context) error {
		panic("nil map")
	})
	s.AddJob("fine", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
	assert.Equal(t, int32(1), atomic.LoadInt32(&ran), "later jobs still run")
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler()
	started := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		select {
		case started <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}

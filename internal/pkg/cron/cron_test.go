package cron

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/sse"
)

type stubDashboard struct {
	dashboard.Repository
	items     []dashboard.ExpiringItem
	err       error
	gotToday  datetime.ISODate
	gotWithin int
}

func (s *stubDashboard) GetExpiringSoon(ctx context.Context, today datetime.ISODate, withinDays int) ([]dashboard.ExpiringItem, error) {
	s.gotToday, s.gotWithin = today, withinDays
	return s.items, s.err
}

type recorder struct {
	mu     sync.Mutex
	events []sse.Event
}

func (r *recorder) Broadcast(e sse.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func TestBroadcastExpiring(t *testing.T) {
	repo := &stubDashboard{items: []dashboard.ExpiringItem{{EmployeeID: "EMP001", ProgramCode: "SAFE-101", DaysLeft: 3}}}
	hub := &recorder{}
	jobs := NewExpiringJobs(repo, hub, 14, time.Hour, nil)
	jobs.now = func() time.Time { return time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC) }

	require.NoError(t, jobs.BroadcastExpiring(context.Background()))

	assert.Equal(t, datetime.ISODate("2025-03-10"), repo.gotToday)
	assert.Equal(t, 14, repo.gotWithin)
	require.Len(t, hub.events, 1)
	assert.Equal(t, EventExpiring, hub.events[0].Event)
	digest, ok := hub.events[0].Data.(ExpiringDigest)
	require.True(t, ok)
	assert.Equal(t, 1, digest.Count)
	assert.Equal(t, 14, digest.WithinDays)
}

func TestBroadcastExpiringQuietWhenNothingExpires(t *testing.T) {
	hub := &recorder{}
	jobs := NewExpiringJobs(&stubDashboard{}, hub, 30, time.Hour, nil)

	require.NoError(t, jobs.BroadcastExpiring(context.Background()))
	assert.Empty(t, hub.events)

	jobs = NewExpiringJobs(&stubDashboard{err: errors.New("db down")}, hub, 30, time.Hour, nil)
	assert.Error(t, jobs.BroadcastExpiring(context.Background()))
	assert.Empty(t, hub.events)
}

func TestSchedulerRunsJobsUntilStopped(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler(nil)
	s.AddJob("count", time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})
	s.AddJob("broken", time.Hour, func(ctx context.Context) error {
		return errors.New("boom")
	})

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, time.Millisecond)
	s.Stop()

	stopped := runs.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load())
}

func TestRunOnce(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler(nil)
	s.AddJob("count", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})
	s.RunOnce(context.Background())
	assert.Equal(t, int32(1), runs.Load())

	// Stop before Start is a no-op.
	s.Stop()
}

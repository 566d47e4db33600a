package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/sse"
)

// EventExpiring is the stream event carrying the daily expiry digest.
const EventExpiring = "expiring"

// Broadcaster is the part of *sse.Hub the jobs publish through.
type Broadcaster interface {
	Broadcast(e sse.Event)
}

// ExpiringDigest is the payload of an EventExpiring event.
type ExpiringDigest struct {
	Today      datetime.ISODate         `json:"today"`
	WithinDays int                      `json:"within_days"`
	Count      int                      `json:"count"`
	Items      []dashboard.ExpiringItem `json:"items"`
}

// ExpiringJobs warns every open dashboard about certifications running out.
type ExpiringJobs struct {
	dashboard  dashboard.Repository
	hub        Broadcaster
	withinDays int
	interval   time.Duration
	now        func() time.Time
	logger     *slog.Logger
}

func NewExpiringJobs(repo dashboard.Repository, hub Broadcaster, withinDays int, interval time.Duration, logger *slog.Logger) *ExpiringJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExpiringJobs{
		dashboard:  repo,
		hub:        hub,
		withinDays: withinDays,
		interval:   interval,
		now:        time.Now,
		logger:     logger,
	}
}

func (j *ExpiringJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("expiring_certifications", j.interval, j.BroadcastExpiring)
}

// BroadcastExpiring publishes the current expiry list. Nothing is sent when no
// certification expires inside the window.
func (j *ExpiringJobs) BroadcastExpiring(ctx context.Context) error {
	today := datetime.FromTime(j.now())
	items, err := j.dashboard.GetExpiringSoon(ctx, today, j.withinDays)
	if err != nil {
		return fmt.Errorf("failed to get expiring certifications: %w", err)
	}
	if len(items) == 0 {
		return nil
	}

	j.hub.Broadcast(sse.Event{
		Event: EventExpiring,
		Data: ExpiringDigest{
			Today:      today,
			WithinDays: j.withinDays,
			Count:      len(items),
			Items:      items,
		},
	})
	j.logger.InfoContext(ctx, "expiring certifications broadcast",
		slog.Int("count", len(items)),
		slog.Int("within_days", j.withinDays))
	return nil
}

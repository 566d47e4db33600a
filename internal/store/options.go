package store

import (
	"log/slog"
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/changelog"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/metrics"
)

// DefaultExpiringWithinDays is how far ahead certifications count as expiring.
const DefaultExpiringWithinDays = 30

// Event describes one applied mutation.
type Event struct {
	Op         string               `json:"op"`
	EntityType changelog.EntityType `json:"entity_type"`
	EntityID   string               `json:"entity_id"`
	Action     changelog.Action     `json:"action"`
	Owner      string               `json:"owner"`
	At         time.Time            `json:"at"`
}

// Notifier receives an Event after every mutation that changed state.
type Notifier interface {
	Notify(e Event)
}

type NotifierFunc func(e Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces time.Now for timestamps and "today".
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

func WithMetrics(m *metrics.Store) Option {
	return func(s *Store) { s.metrics = m }
}

// WithOwner sets the identity recorded as changed_by, created_by and
// evaluated_by on everything this store writes.
func WithOwner(owner string) Option {
	return func(s *Store) { s.owner = owner }
}

func WithExpiringWithinDays(days int) Option {
	return func(s *Store) {
		if days > 0 {
			s.expiringWithinDays = days
		}
	}
}

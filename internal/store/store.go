// Package store is the in-process state container of one signed-in user. It
// fetches through a Backend with filter deltas merged over the last filter it
// used, writes every mutation through the Backend together with a change log
// entry, and keeps normalized tables that readers see as immutable snapshots.
//
// Nothing is ever removed from a table or a view. Deleting a program, session,
// employee, team or trainee flips its status; results cannot be deleted at all.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/changelog"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/metrics"
)

type Store struct {
	backend            Backend
	logger             *slog.Logger
	clock              func() time.Time
	notifier           Notifier
	metrics            *metrics.Store
	owner              string
	expiringWithinDays int

	mu          sync.Mutex
	state       *state
	generations map[string]uint64
}

func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:            backend,
		logger:             slog.Default(),
		clock:              time.Now,
		expiringWithinDays: DefaultExpiringWithinDays,
		state:              initialState(),
		generations:        map[string]uint64{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("component", "store"), slog.String("owner", s.owner))
	return s
}

func (s *Store) Owner() string { return s.owner }

// Snapshot returns the current state. It stays valid and unchanged however the
// store moves on.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{st: s.state}
}

func (s *Store) current() *state {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// update publishes fn(current) as the new state.
func (s *Store) update(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.clone()
	fn(next)
	s.state = next
}

// beginLoad bumps the loading counter of c and issues a new generation for op.
func (s *Store) beginLoad(c Category, op string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.withLoading(c, 1)
	s.generations[op]++
	s.metrics.LoadStarted(string(c))
	return s.generations[op]
}

func (s *Store) endLoad(c Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.withLoading(c, -1)
	s.metrics.LoadFinished(string(c))
}

// fetch runs call with the loading flag of c raised and applies the response
// unless a newer fetch for the same op was issued meanwhile. The response is
// returned to the caller either way. On error nothing is applied.
func fetch[T any](ctx context.Context, s *Store, c Category, op string, call func(ctx context.Context) (T, error), apply func(st *state, v T)) (T, error) {
	gen := s.beginLoad(c, op)
	defer s.endLoad(c)

	start := time.Now()
	v, err := call(ctx)
	s.metrics.ObserveOperation(op, err, time.Since(start))
	if err != nil {
		s.logger.WarnContext(ctx, "fetch failed", slog.String("op", op), slog.Any("error", err))
		return v, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[op] != gen {
		s.metrics.StaleDiscarded(op)
		s.logger.DebugContext(ctx, "stale fetch response discarded", slog.String("op", op))
		return v, nil
	}
	next := s.state.clone()
	apply(next, v)
	s.state = next
	return v, nil
}

// mutation is the outcome of a backend write: the value to return, the
// change log entries to append, and whether state changes at all.
type mutation[T any] struct {
	value   T
	changes []changelog.Change
	applied bool
}

// mutate runs call and appends its change log entries in one transaction. Only
// after the transaction commits is apply run against the state and the
// notifier told.
func mutate[T any](ctx context.Context, s *Store, op string, call func(ctx context.Context) (mutation[T], error), apply func(st *state, v T)) (T, error) {
	var m mutation[T]
	start := time.Now()
	err := s.backend.withinTransaction(ctx, func(ctx context.Context) error {
		var err error
		m, err = call(ctx)
		if err != nil || !m.applied {
			return err
		}
		now := s.clock()
		for _, c := range m.changes {
			c.ChangedBy = s.owner
			entry, err := changelog.NewEntry(c, now)
			if err != nil {
				return err
			}
			if err := s.backend.ChangeLogs.Append(ctx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	s.metrics.ObserveOperation(op, err, time.Since(start))
	if err != nil {
		s.logger.WarnContext(ctx, "mutation failed", slog.String("op", op), slog.Any("error", err))
		var zero T
		return zero, err
	}
	if !m.applied {
		return m.value, nil
	}

	s.update(func(st *state) { apply(st, m.value) })
	s.notify(op, m.changes)
	return m.value, nil
}

// notify sends one event per change log entry of op.
func (s *Store) notify(op string, changes []changelog.Change) {
	if s.notifier == nil {
		return
	}
	at := s.clock()
	for _, c := range changes {
		s.notifier.Notify(Event{
			Op:         op,
			EntityType: c.EntityType,
			EntityID:   c.EntityID,
			Action:     c.Action,
			Owner:      s.owner,
			At:         at,
		})
	}
}

func (s *Store) now() time.Time { return s.clock() }

// Now reads the clock the store stamps its writes with.
func (s *Store) Now() time.Time { return s.now() }

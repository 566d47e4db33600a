// Package memory is an in-process implementation of every repository the
// store and the auth service use. It backs local development, demos seeded
// from a JSON file, and the tests of the packages above it.
//
// Transactions are real: WithinTransaction snapshots the data and restores it
// when fn fails, and writes outside a transaction wait for it to finish.
package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/changelog"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/newhire"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/program"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/result"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/user"
)

type data struct {
	employees    map[ids.EmployeeID]employee.Employee
	programs     map[ids.ProgramCode]program.Program
	sessions     map[ids.SessionID]session.Session
	results      map[ids.ResultID]result.Record
	teams        map[ids.TeamID]newhire.Team
	trainees     map[ids.TraineeID]newhire.Trainee
	meetings     map[ids.MeetingID]newhire.Meeting
	resignations map[string]newhire.Resignation
	changelog    []changelog.Entry
	users        map[string]user.User
	tokens       map[string]refreshToken
}

func newData() *data {
	return &data{
		employees:    map[ids.EmployeeID]employee.Employee{},
		programs:     map[ids.ProgramCode]program.Program{},
		sessions:     map[ids.SessionID]session.Session{},
		results:      map[ids.ResultID]result.Record{},
		teams:        map[ids.TeamID]newhire.Team{},
		trainees:     map[ids.TraineeID]newhire.Trainee{},
		meetings:     map[ids.MeetingID]newhire.Meeting{},
		resignations: map[string]newhire.Resignation{},
		users:        map[string]user.User{},
		tokens:       map[string]refreshToken{},
	}
}

// clone copies every table. Rows are values whose shared parts (frozen
// lists, pointer fields) are never modified in place.
func (d *data) clone() *data {
	return &data{
		employees:    maps.Clone(d.employees),
		programs:     maps.Clone(d.programs),
		sessions:     maps.Clone(d.sessions),
		results:      maps.Clone(d.results),
		teams:        maps.Clone(d.teams),
		trainees:     maps.Clone(d.trainees),
		meetings:     maps.Clone(d.meetings),
		resignations: maps.Clone(d.resignations),
		changelog:    slices.Clone(d.changelog),
		users:        maps.Clone(d.users),
		tokens:       maps.Clone(d.tokens),
	}
}

type DB struct {
	clock func() time.Time

	// txMu serializes writers: a transaction holds it for its whole run, a
	// plain write only for its own duration.
	txMu sync.Mutex
	mu   sync.RWMutex
	data *data
}

type Option func(*DB)

func WithClock(clock func() time.Time) Option {
	return func(db *DB) {
		if clock != nil {
			db.clock = clock
		}
	}
}

func New(opts ...Option) *DB {
	db := &DB{clock: time.Now, data: newData()}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

type txKey struct{}

// WithinTransaction runs fn with every write made through its ctx applied
// atomically: if fn returns an error or panics the data is restored.
func (db *DB) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if inTx(ctx) {
		return fn(ctx)
	}
	db.txMu.Lock()
	defer db.txMu.Unlock()

	db.mu.RLock()
	saved := db.data.clone()
	db.mu.RUnlock()

	defer func() {
		if p := recover(); p != nil {
			db.restore(saved)
			panic(p)
		}
		if err != nil {
			db.restore(saved)
		}
	}()
	return fn(context.WithValue(ctx, txKey{}, true))
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

func (db *DB) restore(saved *data) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.data = saved
}

func (db *DB) read(fn func(d *data)) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	fn(db.data)
}

// write runs fn under the write lock. Outside a transaction it also waits for
// any running transaction to finish.
func (db *DB) write(ctx context.Context, fn func(d *data)) {
	if !inTx(ctx) {
		db.txMu.Lock()
		defer db.txMu.Unlock()
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	fn(db.data)
}

func (db *DB) now() time.Time { return db.clock() }

// values returns the rows of m that keep accepts, ordered by compare.
func values[K comparable, V any](m map[K]V, keep func(V) bool, compare func(a, b V) int) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, compare)
	return out
}

func ptr[V any](v V, ok bool) *V {
	if !ok {
		return nil
	}
	return &v
}

func byKey[K cmp.Ordered, V any](key func(V) K) func(a, b V) int {
	return func(a, b V) int { return cmp.Compare(key(a), key(b)) }
}

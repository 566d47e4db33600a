package store

import (
	"context"
	"maps"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/changelog"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/program"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/result"
)

// Results have no delete operation. A wrong record is corrected with
// UpdateResult, which keeps its result_id and created_at.

func (s *Store) FetchResults(ctx context.Context, delta result.ResultFilter) ([]result.Record, error) {
	filter := result.FilterSchema.Merge(s.current().resultFilter, delta)
	return fetch(ctx, s, CategoryResults, "FetchResults",
		func(ctx context.Context) ([]result.Record, error) {
			return s.backend.Results.List(ctx, filter)
		},
		func(st *state, list []result.Record) {
			st.results = st.results.replaceView(list, resultKey)
			st.resultFilter = filter
		})
}

func (s *Store) FetchResult(ctx context.Context, id ids.ResultID) (*result.Record, error) {
	return fetch(ctx, s, CategoryResults, "FetchResult",
		func(ctx context.Context) (*result.Record, error) {
			return s.backend.Results.GetByID(ctx, id)
		},
		func(st *state, r *result.Record) {
			st.selectedResult = nil
			if r != nil {
				st.results = st.results.upsert(r.ResultID, *r)
				sel := r.ResultID
				st.selectedResult = &sel
			}
		})
}

// FetchEmployeeHistory loads every result of employeeID. The records go into
// the shared results table, so later updates show up in the history as well.
func (s *Store) FetchEmployeeHistory(ctx context.Context, employeeID ids.EmployeeID) ([]result.Record, error) {
	return fetch(ctx, s, CategoryHistory, "FetchEmployeeHistory:"+string(employeeID),
		func(ctx context.Context) ([]result.Record, error) {
			return s.backend.Results.ListByEmployee(ctx, employeeID)
		},
		func(st *state, list []result.Record) {
			resultIDs := make([]ids.ResultID, 0, len(list))
			for _, r := range list {
				st.results = st.results.upsert(r.ResultID, r)
				resultIDs = append(resultIDs, r.ResultID)
			}
			st.history = maps.Clone(st.history)
			st.history[employeeID] = resultIDs
		})
}

// CreateResult records an outcome evaluated by the store's identity. A score
// without a grade is graded with the program's thresholds.
func (s *Store) CreateResult(ctx context.Context, req result.CreateResultRequest) (result.Record, error) {
	if err := req.Validate(); err != nil {
		return result.Record{}, err
	}
	return createOp(ctx, s, "CreateResult", changelog.EntityResult,
		func(r result.Record) string { return string(r.ResultID) },
		func(ctx context.Context) (result.Record, error) {
			p, err := s.programFor(ctx, ids.UnsafeProgramCode(req.ProgramCode))
			if err != nil {
				return result.Record{}, err
			}
			derived := req.WithDerivedGrade(p)
			return s.backend.Results.Create(ctx, derived.ToEntity(s.owner, s.now()))
		},
		func(st *state, r result.Record) {
			st.results = st.results.appendNew(r.ResultID, r)
			if hist, ok := st.history[r.EmployeeID]; ok {
				st.history = maps.Clone(st.history)
				st.history[r.EmployeeID] = append(hist[:len(hist):len(hist)], r.ResultID)
			}
		})
}

// UpdateResult corrects id. reason is stored on the change log entry. The
// returned record keeps the original result_id and created_at whatever the
// backend sends back.
func (s *Store) UpdateResult(ctx context.Context, id ids.ResultID, patch result.UpdateResultRequest, reason string) (*result.Record, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	before := s.resultBefore(id)
	return updateOp(ctx, s, "UpdateResult", changelog.EntityResult, string(id), reason,
		before,
		func(ctx context.Context) (*result.Record, error) {
			prev, err := before(ctx)
			if err != nil || prev == nil {
				return nil, err
			}
			if err := patch.ValidateAgainst(*prev); err != nil {
				return nil, err
			}
			p, err := s.programFor(ctx, prev.ProgramCode)
			if err != nil {
				return nil, err
			}
			return s.backend.Results.Update(ctx, id, patch.WithDerivedGrade(p), s.owner)
		},
		func(before, after result.Record) result.Record {
			after.ResultID = before.ResultID
			after.CreatedAt = before.CreatedAt
			return after
		},
		func(st *state, r result.Record) {
			st.results = st.results.upsert(r.ResultID, r)
		})
}

func (s *Store) resultBefore(id ids.ResultID) func(ctx context.Context) (*result.Record, error) {
	return func(ctx context.Context) (*result.Record, error) {
		return lookup(ctx, s.current().results, id, s.backend.Results.GetByID)
	}
}

// programFor finds the program a result belongs to; nil when unknown.
func (s *Store) programFor(ctx context.Context, code ids.ProgramCode) (*program.Program, error) {
	return lookup(ctx, s.current().programs, code, s.backend.Programs.GetByCode)
}

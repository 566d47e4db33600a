package store

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/program"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/result"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
)

func (s *Store) FetchDashboardStats(ctx context.Context) (dashboard.Stats, error) {
	return fetch(ctx, s, CategoryStats, "FetchDashboardStats",
		func(ctx context.Context) (dashboard.Stats, error) {
			return s.backend.Dashboard.GetStats(ctx, s.now(), s.expiringWithinDays)
		},
		func(st *state, v dashboard.Stats) { st.stats = &v })
}

// FetchMonthlyStats loads the twelve months of year, January first.
func (s *Store) FetchMonthlyStats(ctx context.Context, year int) ([]dashboard.MonthlyStat, error) {
	return fetch(ctx, s, CategoryStats, "FetchMonthlyStats",
		func(ctx context.Context) ([]dashboard.MonthlyStat, error) {
			return s.backend.Dashboard.GetMonthlyStats(ctx, year)
		},
		func(st *state, v []dashboard.MonthlyStat) { st.monthlyStats = v })
}

// FetchGradeDistribution counts grades across every program, or only code when
// it is set.
func (s *Store) FetchGradeDistribution(ctx context.Context, code *ids.ProgramCode) (dashboard.GradeDistribution, error) {
	return fetch(ctx, s, CategoryStats, "FetchGradeDistribution",
		func(ctx context.Context) (dashboard.GradeDistribution, error) {
			return s.backend.Dashboard.GetGradeDistribution(ctx, code)
		},
		func(st *state, v dashboard.GradeDistribution) { st.gradeDistribution = &v })
}

func (s *Store) FetchRetrainingTargets(ctx context.Context) ([]dashboard.RetrainingTarget, error) {
	return fetch(ctx, s, CategoryStats, "FetchRetrainingTargets",
		s.backend.Dashboard.GetRetrainingTargets,
		func(st *state, v []dashboard.RetrainingTarget) { st.retraining = v })
}

// FetchExpiringSoon lists passed certifications expiring within withinDays.
// A non-positive withinDays uses the store's configured window.
func (s *Store) FetchExpiringSoon(ctx context.Context, withinDays int) ([]dashboard.ExpiringItem, error) {
	if withinDays <= 0 {
		withinDays = s.expiringWithinDays
	}
	return fetch(ctx, s, CategoryStats, "FetchExpiringSoon",
		func(ctx context.Context) ([]dashboard.ExpiringItem, error) {
			return s.backend.Dashboard.GetExpiringSoon(ctx, datetime.FromTime(s.now()), withinDays)
		},
		func(st *state, v []dashboard.ExpiringItem) { st.expiringSoon = v })
}

// FetchDashboard refreshes the headline stats, this year's monthly series, the
// retraining list and the expiring list concurrently. The first error cancels
// the rest; whatever completed before it stays applied.
func (s *Store) FetchDashboard(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.FetchDashboardStats(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.FetchMonthlyStats(ctx, s.now().Year())
		return err
	})
	g.Go(func() error {
		_, err := s.FetchRetrainingTargets(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.FetchExpiringSoon(ctx, 0)
		return err
	})
	return g.Wait()
}

// FetchProgressMatrix merges delta over the last matrix filter, loads the
// active employees it selects with every program and result, and crosses them.
// The employee, program and result tables are left as they were.
func (s *Store) FetchProgressMatrix(ctx context.Context, delta dashboard.ProgressMatrixFilter) (dashboard.ProgressMatrix, error) {
	filter := dashboard.MatrixFilterSchema.Merge(s.current().matrixFilter, delta)
	return fetch(ctx, s, CategoryMatrix, "FetchProgressMatrix",
		func(ctx context.Context) (dashboard.ProgressMatrix, error) {
			var (
				employees []employee.Employee
				programs  []program.Program
				records   []result.Record
			)
			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() (err error) {
				employees, err = s.backend.Employees.List(ctx, filter.EmployeeFilter())
				return err
			})
			g.Go(func() (err error) {
				programs, err = s.backend.Programs.List(ctx, program.FilterSchema.Defaults())
				return err
			})
			g.Go(func() (err error) {
				records, err = s.backend.Results.List(ctx, result.FilterSchema.Defaults())
				return err
			})
			if err := g.Wait(); err != nil {
				return dashboard.ProgressMatrix{}, err
			}
			return dashboard.BuildProgressMatrix(employees, programs, records, filter, s.now(), s.expiringWithinDays), nil
		},
		func(st *state, m dashboard.ProgressMatrix) {
			st.progressMatrix = &m
			st.matrixFilter = filter
		})
}

package memory

import (
	"context"
	"slices"
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
)

type dashboardRepository struct {
	db *DB
}

// Dashboard computes every aggregate from the current rows on each call.
func (db *DB) Dashboard() dashboard.Repository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) dataset() (ds dashboard.Dataset) {
	r.db.read(func(d *data) {
		ds = dashboard.Dataset{
			Employees: values(d.employees, nil, byKey(employeeID)),
			Programs:  values(d.programs, nil, byKey(programCode)),
			Sessions:  values(d.sessions, nil, byKey(sessionID)),
			Results:   values(d.results, nil, newestRecordFirst),
		}
	})
	return ds
}

func (r *dashboardRepository) GetStats(ctx context.Context, now time.Time, expiringWithinDays int) (dashboard.Stats, error) {
	return dashboard.ComputeStats(r.dataset(), now, expiringWithinDays), nil
}

func (r *dashboardRepository) GetMonthlyStats(ctx context.Context, year int) ([]dashboard.MonthlyStat, error) {
	return dashboard.ComputeMonthlyStats(r.dataset(), year), nil
}

func (r *dashboardRepository) GetGradeDistribution(ctx context.Context, programCode *ids.ProgramCode) (dashboard.GradeDistribution, error) {
	return dashboard.ComputeGradeDistribution(r.dataset().Results, programCode), nil
}

func (r *dashboardRepository) GetRetrainingTargets(ctx context.Context) ([]dashboard.RetrainingTarget, error) {
	return nonNil(dashboard.ComputeRetrainingTargets(r.dataset())), nil
}

func (r *dashboardRepository) GetExpiringSoon(ctx context.Context, today datetime.ISODate, withinDays int) ([]dashboard.ExpiringItem, error) {
	now, err := today.Time()
	if err != nil {
		now = r.db.now()
	}
	return nonNil(dashboard.ComputeExpiringSoon(r.dataset(), now, withinDays)), nil
}

func nonNil[V any](s []V) []V {
	if s == nil {
		return []V{}
	}
	return slices.Clip(s)
}


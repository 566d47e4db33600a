package postgresql

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/program"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/result"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
)

// latestResults keeps the newest result per employee and program, the same
// row result.Record.Newer would pick.
const latestResults = `
		WITH latest AS (
			SELECT DISTINCT ON (employee_id, program_code) *
			FROM training_results
			ORDER BY employee_id, program_code, training_date DESC, created_at DESC
		)`

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.Repository {
	return &dashboardRepositoryImpl{db: db}
}

// GetStats returns the headline counts in a single query, plus the retraining
// and expiring lists' lengths.
func (r *dashboardRepositoryImpl) GetStats(ctx context.Context, now time.Time, expiringWithinDays int) (dashboard.Stats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM employees) as total_employees,
			(SELECT COUNT(*) FROM employees WHERE status = 'ACTIVE') as active_employees,
			(SELECT COUNT(*) FROM training_programs WHERE is_active) as active_programs,
			(SELECT COUNT(*) FROM training_sessions
				WHERE status <> 'CANCELLED' AND to_char(session_date, 'YYYY-MM') = $1) as sessions_this_month,
			COUNT(*) as total_results,
			COALESCE(SUM(CASE WHEN result = 'PASS' THEN 1 ELSE 0 END), 0) as pass_count,
			COALESCE(SUM(CASE WHEN result = 'FAIL' THEN 1 ELSE 0 END), 0) as fail_count,
			COALESCE(SUM(CASE WHEN result = 'ABSENT' THEN 1 ELSE 0 END), 0) as absent_count,
			COALESCE(SUM(score), 0) as score_sum,
			COUNT(score) as scored
		FROM training_results
	`

	stats := dashboard.Stats{UpdatedAt: now}
	var (
		scoreSum float64
		scored   int64
	)
	err := q.QueryRow(ctx, query, now.Format("2006-01")).Scan(
		&stats.TotalEmployees, &stats.ActiveEmployees, &stats.ActivePrograms, &stats.SessionsThisMonth,
		&stats.TotalResults, &stats.PassCount, &stats.FailCount, &stats.AbsentCount,
		&scoreSum, &scored,
	)
	if err != nil {
		return dashboard.Stats{}, fmt.Errorf("failed to get dashboard stats: %w", err)
	}
	stats.PassRate = dashboard.Rate(stats.PassCount, stats.TotalResults)
	if scored > 0 {
		stats.AverageScore = decimal.NewFromFloat(scoreSum).Div(decimal.NewFromInt(scored)).Round(1)
	}

	retraining, err := r.GetRetrainingTargets(ctx)
	if err != nil {
		return dashboard.Stats{}, err
	}
	expiring, err := r.expiringSoon(ctx, now, expiringWithinDays)
	if err != nil {
		return dashboard.Stats{}, err
	}
	stats.RetrainingCount = int64(len(retraining))
	stats.ExpiringSoonCount = int64(len(expiring))
	return stats, nil
}

// GetMonthlyStats returns twelve entries for year, January first. Months
// without activity are zero.
func (r *dashboardRepositoryImpl) GetMonthlyStats(ctx context.Context, year int) ([]dashboard.MonthlyStat, error) {
	q := GetQuerier(ctx, r.db)

	stats := make([]dashboard.MonthlyStat, 12)
	index := make(map[string]int, 12)
	for m := range 12 {
		ym := fmt.Sprintf("%04d-%02d", year, m+1)
		stats[m].Month = datetime.YearMonth(ym)
		index[ym] = m
	}

	sessionQuery := `
		SELECT to_char(session_date, 'YYYY-MM') as month, COUNT(*)
		FROM training_sessions
		WHERE status <> 'CANCELLED' AND EXTRACT(YEAR FROM session_date) = $1
		GROUP BY month
	`
	rows, err := q.Query(ctx, sessionQuery, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly sessions: %w", err)
	}
	for rows.Next() {
		var (
			month string
			count int64
		)
		if err := rows.Scan(&month, &count); err != nil {
			rows.Close()
			return nil, err
		}
		if i, ok := index[month]; ok {
			stats[i].Sessions = count
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	resultQuery := `
		SELECT
			to_char(training_date, 'YYYY-MM') as month,
			COALESCE(SUM(CASE WHEN result = 'PASS' THEN 1 ELSE 0 END), 0) as passed,
			COALESCE(SUM(CASE WHEN result = 'FAIL' THEN 1 ELSE 0 END), 0) as failed,
			COALESCE(SUM(CASE WHEN result = 'ABSENT' THEN 1 ELSE 0 END), 0) as absent
		FROM training_results
		WHERE EXTRACT(YEAR FROM training_date) = $1
		GROUP BY month
	`
	rows, err = q.Query(ctx, resultQuery, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly results: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			month                  string
			passed, failed, absent int64
		)
		if err := rows.Scan(&month, &passed, &failed, &absent); err != nil {
			return nil, err
		}
		i, ok := index[month]
		if !ok {
			continue
		}
		stats[i].Passed, stats[i].Failed, stats[i].Absent = passed, failed, absent
		stats[i].Trained = passed + failed
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range stats {
		stats[i].PassRate = dashboard.Rate(stats[i].Passed, stats[i].Passed+stats[i].Failed+stats[i].Absent)
	}
	return stats, nil
}

// GetGradeDistribution counts every result, or only programCode's when set.
func (r *dashboardRepositoryImpl) GetGradeDistribution(ctx context.Context, programCode *ids.ProgramCode) (dashboard.GradeDistribution, error) {
	q := GetQuerier(ctx, r.db)

	var w where
	var d dashboard.GradeDistribution
	if programCode != nil {
		code := *programCode
		d.ProgramCode = &code
		w.add("program_code = ?", string(code))
	}

	query := `
		SELECT grade, COUNT(*)
		FROM training_results` + w.String() + `
		GROUP BY grade
	`
	rows, err := q.Query(ctx, query, w.args...)
	if err != nil {
		return dashboard.GradeDistribution{}, fmt.Errorf("failed to get grade distribution: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			grade *string
			count int64
		)
		if err := rows.Scan(&grade, &count); err != nil {
			return dashboard.GradeDistribution{}, err
		}
		var g *program.Grade
		if grade != nil {
			v := program.Grade(*grade)
			g = &v
		}
		d.Add(g, count)
	}
	return d, rows.Err()
}

// GetRetrainingTargets lists active employees whose latest result for a
// program still needs retraining. Newest training first.
func (r *dashboardRepositoryImpl) GetRetrainingTargets(ctx context.Context) ([]dashboard.RetrainingTarget, error) {
	q := GetQuerier(ctx, r.db)

	query := latestResults + `
		SELECT l.result_id, l.employee_id, COALESCE(e.name, ''), COALESCE(e.department, ''),
			l.program_code, COALESCE(p.name, ''), ` + dateText("l.training_date") + `, l.result, l.score
		FROM latest l
		LEFT JOIN employees e ON e.employee_id = l.employee_id
		LEFT JOIN training_programs p ON p.code = l.program_code
		WHERE l.needs_retraining AND (e.status IS NULL OR e.status = 'ACTIVE')
		ORDER BY l.training_date DESC, l.result_id
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get retraining targets: %w", err)
	}
	defer rows.Close()

	targets := []dashboard.RetrainingTarget{}
	for rows.Next() {
		var (
			t                                   dashboard.RetrainingTarget
			resultID, employeeID, code, date, o string
		)
		err := rows.Scan(&resultID, &employeeID, &t.EmployeeName, &t.Department, &code, &t.ProgramName, &date, &o, &t.Score)
		if err != nil {
			return nil, err
		}
		t.ResultID = ids.UnsafeResultID(resultID)
		t.EmployeeID = ids.UnsafeEmployeeID(employeeID)
		t.ProgramCode = ids.UnsafeProgramCode(code)
		t.TrainingDate = datetime.ISODate(date)
		t.Result = result.Outcome(o)
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

// GetExpiringSoon lists passed certifications that lapse within withinDays of
// today. Expiry dates follow datetime.AddMonths, so they are computed here
// rather than with interval arithmetic.
func (r *dashboardRepositoryImpl) GetExpiringSoon(ctx context.Context, today datetime.ISODate, withinDays int) ([]dashboard.ExpiringItem, error) {
	now, err := today.Time()
	if err != nil {
		now = time.Now()
	}
	return r.expiringSoon(ctx, now, withinDays)
}

func (r *dashboardRepositoryImpl) expiringSoon(ctx context.Context, now time.Time, withinDays int) ([]dashboard.ExpiringItem, error) {
	q := GetQuerier(ctx, r.db)

	query := latestResults + `
		SELECT l.result_id, l.employee_id, COALESCE(e.name, ''), COALESCE(e.department, ''),
			l.program_code, p.name, ` + dateText("l.training_date") + `, p.validity_months
		FROM latest l
		JOIN training_programs p ON p.code = l.program_code
		LEFT JOIN employees e ON e.employee_id = l.employee_id
		WHERE l.result = 'PASS' AND p.validity_months > 0
			AND (e.status IS NULL OR e.status = 'ACTIVE')
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get expiring certifications: %w", err)
	}
	defer rows.Close()

	items := []dashboard.ExpiringItem{}
	for rows.Next() {
		var (
			item                          dashboard.ExpiringItem
			resultID, employeeID, code, d string
			validityMonths                int
		)
		err := rows.Scan(&resultID, &employeeID, &item.EmployeeName, &item.Department, &code, &item.ProgramName, &d, &validityMonths)
		if err != nil {
			return nil, err
		}
		item.TrainingDate = datetime.ISODate(d)
		item.ExpiresOn = datetime.AddMonths(item.TrainingDate, validityMonths)
		if !datetime.IsExpiringFrom(item.ExpiresOn, withinDays, now) {
			continue
		}
		item.ResultID = ids.UnsafeResultID(resultID)
		item.EmployeeID = ids.UnsafeEmployeeID(employeeID)
		item.ProgramCode = ids.UnsafeProgramCode(code)
		item.DaysLeft = datetime.DaysUntilExpiryFrom(item.ExpiresOn, now)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	slices.SortFunc(items, func(a, b dashboard.ExpiringItem) int {
		if c := cmp.Compare(a.DaysLeft, b.DaysLeft); c != 0 {
			return c
		}
		return cmp.Compare(a.EmployeeID, b.EmployeeID)
	})
	return items, nil
}

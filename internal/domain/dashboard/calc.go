package dashboard

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/program"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/result"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
)

// Dataset is the full set of rows the in-process aggregates work from.
type Dataset struct {
	Employees []employee.Employee
	Programs  []program.Program
	Sessions  []session.Session
	Results   []result.Record
}

type cellKey struct {
	employee ids.EmployeeID
	program  ids.ProgramCode
}

// latestResults keeps the newest record per employee and program.
func latestResults(records []result.Record) map[cellKey]result.Record {
	latest := make(map[cellKey]result.Record, len(records))
	for _, r := range records {
		k := cellKey{r.EmployeeID, r.ProgramCode}
		if cur, ok := latest[k]; !ok || r.Newer(cur) {
			latest[k] = r
		}
	}
	return latest
}

func (d Dataset) employeesByID() map[ids.EmployeeID]employee.Employee {
	out := make(map[ids.EmployeeID]employee.Employee, len(d.Employees))
	for _, e := range d.Employees {
		out[e.EmployeeID] = e
	}
	return out
}

func (d Dataset) programsByCode() map[ids.ProgramCode]program.Program {
	out := make(map[ids.ProgramCode]program.Program, len(d.Programs))
	for _, p := range d.Programs {
		out[p.Code] = p
	}
	return out
}

func ComputeStats(d Dataset, now time.Time, expiringWithinDays int) Stats {
	s := Stats{UpdatedAt: now, TotalEmployees: int64(len(d.Employees))}
	for _, e := range d.Employees {
		if e.IsActive() {
			s.ActiveEmployees++
		}
	}
	for _, p := range d.Programs {
		if p.IsActive {
			s.ActivePrograms++
		}
	}
	month := now.Format("2006-01")
	for _, ses := range d.Sessions {
		if ses.Status != session.StatusCancelled && monthOf(ses.SessionDate) == month {
			s.SessionsThisMonth++
		}
	}

	scoreSum := decimal.Zero
	var scored int64
	for _, r := range d.Results {
		s.TotalResults++
		switch r.Result {
		case result.OutcomePass:
			s.PassCount++
		case result.OutcomeFail:
			s.FailCount++
		case result.OutcomeAbsent:
			s.AbsentCount++
		}
		if r.Score != nil {
			scoreSum = scoreSum.Add(decimal.NewFromFloat(*r.Score))
			scored++
		}
	}
	s.PassRate = Rate(s.PassCount, s.TotalResults)
	if scored > 0 {
		s.AverageScore = scoreSum.Div(decimal.NewFromInt(scored)).Round(1)
	}
	s.RetrainingCount = int64(len(ComputeRetrainingTargets(d)))
	s.ExpiringSoonCount = int64(len(ComputeExpiringSoon(d, now, expiringWithinDays)))
	return s
}

// ComputeMonthlyStats returns twelve entries, January first, for year.
func ComputeMonthlyStats(d Dataset, year int) []MonthlyStat {
	stats := make([]MonthlyStat, 12)
	index := make(map[string]int, 12)
	for m := range 12 {
		ym := fmt.Sprintf("%04d-%02d", year, m+1)
		stats[m].Month = datetime.YearMonth(ym)
		index[ym] = m
	}
	for _, ses := range d.Sessions {
		if i, ok := index[monthOf(ses.SessionDate)]; ok && ses.Status != session.StatusCancelled {
			stats[i].Sessions++
		}
	}
	for _, r := range d.Results {
		i, ok := index[monthOf(r.TrainingDate)]
		if !ok {
			continue
		}
		switch r.Result {
		case result.OutcomePass:
			stats[i].Passed++
			stats[i].Trained++
		case result.OutcomeFail:
			stats[i].Failed++
			stats[i].Trained++
		case result.OutcomeAbsent:
			stats[i].Absent++
		}
	}
	for i := range stats {
		stats[i].PassRate = Rate(stats[i].Passed, stats[i].Passed+stats[i].Failed+stats[i].Absent)
	}
	return stats
}

// ComputeGradeDistribution counts every result, or only programCode's when set.
func ComputeGradeDistribution(records []result.Record, programCode *ids.ProgramCode) GradeDistribution {
	var d GradeDistribution
	if programCode != nil {
		code := *programCode
		d.ProgramCode = &code
	}
	for _, r := range records {
		if programCode != nil && r.ProgramCode != *programCode {
			continue
		}
		d.Add(r.Grade, 1)
	}
	return d
}

// ComputeRetrainingTargets lists active employees whose latest result for a
// program still needs retraining. Newest training first.
func ComputeRetrainingTargets(d Dataset) []RetrainingTarget {
	employees := d.employeesByID()
	programs := d.programsByCode()

	var out []RetrainingTarget
	for _, r := range latestResults(d.Results) {
		if !r.NeedsRetraining {
			continue
		}
		emp, known := employees[r.EmployeeID]
		if known && !emp.IsActive() {
			continue
		}
		out = append(out, RetrainingTarget{
			ResultID:     r.ResultID,
			EmployeeID:   r.EmployeeID,
			EmployeeName: emp.Name,
			Department:   emp.Department,
			ProgramCode:  r.ProgramCode,
			ProgramName:  programs[r.ProgramCode].Name,
			TrainingDate: r.TrainingDate,
			Result:       r.Result,
			Score:        r.Score,
		})
	}
	slices.SortFunc(out, func(a, b RetrainingTarget) int {
		if c := cmp.Compare(b.TrainingDate, a.TrainingDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ResultID, b.ResultID)
	})
	return out
}

// ComputeExpiringSoon lists passed certifications that lapse within withinDays
// of now. Already expired ones are not included.
func ComputeExpiringSoon(d Dataset, now time.Time, withinDays int) []ExpiringItem {
	employees := d.employeesByID()
	programs := d.programsByCode()

	var out []ExpiringItem
	for _, r := range latestResults(d.Results) {
		p, ok := programs[r.ProgramCode]
		if !ok {
			continue
		}
		expiresOn, ok := r.ExpiresOn(p.ValidityMonths)
		if !ok || !datetime.IsExpiringFrom(expiresOn, withinDays, now) {
			continue
		}
		emp, known := employees[r.EmployeeID]
		if known && !emp.IsActive() {
			continue
		}
		out = append(out, ExpiringItem{
			ResultID:     r.ResultID,
			EmployeeID:   r.EmployeeID,
			EmployeeName: emp.Name,
			Department:   emp.Department,
			ProgramCode:  r.ProgramCode,
			ProgramName:  p.Name,
			TrainingDate: r.TrainingDate,
			ExpiresOn:    expiresOn,
			DaysLeft:     datetime.DaysUntilExpiryFrom(expiresOn, now),
		})
	}
	slices.SortFunc(out, func(a, b ExpiringItem) int {
		if c := cmp.Compare(a.DaysLeft, b.DaysLeft); c != 0 {
			return c
		}
		return cmp.Compare(a.EmployeeID, b.EmployeeID)
	})
	return out
}

func monthOf(d datetime.ISODate) string {
	if len(d) < 7 {
		return ""
	}
	return string(d[:7])
}

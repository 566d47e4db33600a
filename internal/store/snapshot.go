package store

import (
	"slices"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/newhire"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/program"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/result"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/session"
)

// Snapshot is a read-only view of one version of the store state. Every
// accessor returns fresh slices; entity values are copies.
type Snapshot struct {
	st *state
}

func (v Snapshot) Employees() []employee.Employee { return v.st.employees.items() }
func (v Snapshot) Programs() []program.Program    { return v.st.programs.items() }
func (v Snapshot) Sessions() []session.Session    { return v.st.sessions.items() }
func (v Snapshot) Results() []result.Record       { return v.st.results.items() }
func (v Snapshot) Teams() []newhire.Team          { return v.st.teams.items() }
func (v Snapshot) Trainees() []newhire.Trainee    { return v.st.trainees.items() }
func (v Snapshot) Meetings() []newhire.Meeting    { return v.st.meetings.items() }

func (v Snapshot) Resignations() []newhire.Resignation { return v.st.resignations.items() }

func (v Snapshot) Employee(id ids.EmployeeID) (employee.Employee, bool) { return v.st.employees.get(id) }
func (v Snapshot) Program(code ids.ProgramCode) (program.Program, bool) { return v.st.programs.get(code) }
func (v Snapshot) Session(id ids.SessionID) (session.Session, bool)     { return v.st.sessions.get(id) }
func (v Snapshot) Result(id ids.ResultID) (result.Record, bool)         { return v.st.results.get(id) }
func (v Snapshot) Team(id ids.TeamID) (newhire.Team, bool)              { return v.st.teams.get(id) }
func (v Snapshot) Trainee(id ids.TraineeID) (newhire.Trainee, bool)     { return v.st.trainees.get(id) }

// EmployeeHistory is the last fetched result history of id, resolved against
// the results table so it always shows the latest version of each record.
func (v Snapshot) EmployeeHistory(id ids.EmployeeID) []result.Record {
	resultIDs := v.st.history[id]
	out := make([]result.Record, 0, len(resultIDs))
	for _, rid := range resultIDs {
		if r, ok := v.st.results.get(rid); ok {
			out = append(out, r)
		}
	}
	return out
}

// HasHistory reports whether the history of id has been fetched.
func (v Snapshot) HasHistory(id ids.EmployeeID) bool {
	_, ok := v.st.history[id]
	return ok
}

func selected[K comparable, V any](c collection[K, V], id *K) *V {
	if id == nil {
		return nil
	}
	row, ok := c.get(*id)
	if !ok {
		return nil
	}
	return &row
}

func (v Snapshot) SelectedEmployee() *employee.Employee {
	return selected(v.st.employees, v.st.selectedEmployee)
}

func (v Snapshot) SelectedProgram() *program.Program {
	return selected(v.st.programs, v.st.selectedProgram)
}

func (v Snapshot) SelectedSession() *session.Session {
	return selected(v.st.sessions, v.st.selectedSession)
}

func (v Snapshot) SelectedResult() *result.Record {
	return selected(v.st.results, v.st.selectedResult)
}

func (v Snapshot) SelectedTrainee() *newhire.Trainee {
	return selected(v.st.trainees, v.st.selectedTrainee)
}

func (v Snapshot) EmployeeFilter() employee.EmployeeFilter {
	return employee.FilterSchema.Merge(v.st.employeeFilter, employee.EmployeeFilter{})
}

func (v Snapshot) ProgramFilter() program.ProgramFilter {
	return program.FilterSchema.Merge(v.st.programFilter, program.ProgramFilter{})
}

func (v Snapshot) SessionFilter() session.SessionFilter {
	return session.FilterSchema.Merge(v.st.sessionFilter, session.SessionFilter{})
}

func (v Snapshot) ResultFilter() result.ResultFilter {
	return result.FilterSchema.Merge(v.st.resultFilter, result.ResultFilter{})
}

func (v Snapshot) TraineeFilter() newhire.TraineeFilter {
	return newhire.FilterSchema.Merge(v.st.traineeFilter, newhire.TraineeFilter{})
}

func (v Snapshot) ProgressMatrixFilter() dashboard.ProgressMatrixFilter {
	return dashboard.MatrixFilterSchema.Merge(v.st.matrixFilter, dashboard.ProgressMatrixFilter{})
}

func (v Snapshot) Stats() *dashboard.Stats {
	if v.st.stats == nil {
		return nil
	}
	s := *v.st.stats
	return &s
}

func (v Snapshot) MonthlyStats() []dashboard.MonthlyStat { return slices.Clone(v.st.monthlyStats) }

func (v Snapshot) GradeDistribution() *dashboard.GradeDistribution {
	if v.st.gradeDistribution == nil {
		return nil
	}
	d := *v.st.gradeDistribution
	return &d
}

func (v Snapshot) RetrainingTargets() []dashboard.RetrainingTarget {
	return slices.Clone(v.st.retraining)
}

func (v Snapshot) ExpiringSoon() []dashboard.ExpiringItem { return slices.Clone(v.st.expiringSoon) }

// ProgressMatrix is shared with the state; callers must not modify it.
func (v Snapshot) ProgressMatrix() *dashboard.ProgressMatrix { return v.st.progressMatrix }

func (v Snapshot) Loading(c Category) bool { return v.st.loading[c] > 0 }

// IsLoading reports whether any fetch is in flight.
func (v Snapshot) IsLoading() bool { return len(v.st.loading) > 0 }

package store

import (
	"maps"
	"slices"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/newhire"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/program"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/result"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/session"
)

// Category groups fetches for the loading flags.
type Category string

const (
	CategoryEmployees Category = "employees"
	CategoryPrograms  Category = "programs"
	CategorySessions  Category = "sessions"
	CategoryResults   Category = "results"
	CategoryHistory   Category = "history"
	CategoryStats     Category = "stats"
	CategoryMatrix    Category = "matrix"
	CategoryTeams     Category = "teams"
	CategoryTrainees  Category = "trainees"
	CategoryMeetings  Category = "meetings"
)

var Categories = []Category{
	CategoryEmployees, CategoryPrograms, CategorySessions, CategoryResults, CategoryHistory,
	CategoryStats, CategoryMatrix, CategoryTeams, CategoryTrainees, CategoryMeetings,
}

// collection is an entity table keyed by id plus the ordered ids of the last
// list fetch. Both are copied on write; a published collection never changes.
type collection[K comparable, V any] struct {
	rows map[K]V
	view []K
}

func (c collection[K, V]) get(id K) (V, bool) {
	v, ok := c.rows[id]
	return v, ok
}

// items resolves the view against the table.
func (c collection[K, V]) items() []V {
	out := make([]V, 0, len(c.view))
	for _, id := range c.view {
		if v, ok := c.rows[id]; ok {
			out = append(out, v)
		}
	}
	return out
}

// replaceView upserts every item and makes them, in order, the new view. Rows
// outside the new view stay in the table.
func (c collection[K, V]) replaceView(items []V, key func(V) K) collection[K, V] {
	rows := maps.Clone(c.rows)
	if rows == nil {
		rows = make(map[K]V, len(items))
	}
	view := make([]K, 0, len(items))
	for _, v := range items {
		id := key(v)
		rows[id] = v
		view = append(view, id)
	}
	return collection[K, V]{rows: rows, view: view}
}

// upsert replaces the row for id. The view is untouched, so a row that was
// listed stays listed and a row that was not does not appear.
func (c collection[K, V]) upsert(id K, v V) collection[K, V] {
	rows := maps.Clone(c.rows)
	if rows == nil {
		rows = make(map[K]V, 1)
	}
	rows[id] = v
	return collection[K, V]{rows: rows, view: c.view}
}

// appendNew upserts v and adds id to the end of the view when missing.
func (c collection[K, V]) appendNew(id K, v V) collection[K, V] {
	next := c.upsert(id, v)
	if !slices.Contains(c.view, id) {
		next.view = append(slices.Clone(c.view), id)
	}
	return next
}

// state is one immutable version of everything the store holds. The store
// publishes a new *state for every change and never modifies a published one.
type state struct {
	employees    collection[ids.EmployeeID, employee.Employee]
	programs     collection[ids.ProgramCode, program.Program]
	sessions     collection[ids.SessionID, session.Session]
	results      collection[ids.ResultID, result.Record]
	teams        collection[ids.TeamID, newhire.Team]
	trainees     collection[ids.TraineeID, newhire.Trainee]
	meetings     collection[ids.MeetingID, newhire.Meeting]
	resignations collection[string, newhire.Resignation]

	// history holds result ids per employee, resolved against results on read.
	history map[ids.EmployeeID][]ids.ResultID

	selectedEmployee *ids.EmployeeID
	selectedProgram  *ids.ProgramCode
	selectedSession  *ids.SessionID
	selectedResult   *ids.ResultID
	selectedTrainee  *ids.TraineeID

	employeeFilter employee.EmployeeFilter
	programFilter  program.ProgramFilter
	sessionFilter  session.SessionFilter
	resultFilter   result.ResultFilter
	traineeFilter  newhire.TraineeFilter
	matrixFilter   dashboard.ProgressMatrixFilter

	stats             *dashboard.Stats
	monthlyStats      []dashboard.MonthlyStat
	gradeDistribution *dashboard.GradeDistribution
	retraining        []dashboard.RetrainingTarget
	expiringSoon      []dashboard.ExpiringItem
	progressMatrix    *dashboard.ProgressMatrix

	loading map[Category]int
}

func initialState() *state {
	return &state{
		history:        map[ids.EmployeeID][]ids.ResultID{},
		employeeFilter: employee.FilterSchema.Defaults(),
		programFilter:  program.FilterSchema.Defaults(),
		sessionFilter:  session.FilterSchema.Defaults(),
		resultFilter:   result.FilterSchema.Defaults(),
		traineeFilter:  newhire.FilterSchema.Defaults(),
		matrixFilter:   dashboard.MatrixFilterSchema.Defaults(),
		loading:        map[Category]int{},
	}
}

// clone is a shallow copy. Maps and slices inside are shared until the caller
// replaces them, which every writer does instead of mutating in place.
func (st *state) clone() *state {
	next := *st
	return &next
}

func (st *state) withLoading(c Category, delta int) *state {
	next := st.clone()
	next.loading = maps.Clone(st.loading)
	next.loading[c] += delta
	if next.loading[c] <= 0 {
		delete(next.loading, c)
	}
	return next
}

func employeeKey(e employee.Employee) ids.EmployeeID { return e.EmployeeID }
func programKey(p program.Program) ids.ProgramCode   { return p.Code }
func sessionKey(s session.Session) ids.SessionID     { return s.SessionID }
func resultKey(r result.Record) ids.ResultID         { return r.ResultID }
func teamKey(t newhire.Team) ids.TeamID              { return t.TeamID }
func traineeKey(t newhire.Trainee) ids.TraineeID     { return t.TraineeID }
func meetingKey(m newhire.Meeting) ids.MeetingID     { return m.MeetingID }
func resignationKey(r newhire.Resignation) string    { return r.ResignationID }

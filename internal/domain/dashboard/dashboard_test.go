package dashboard

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/program"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/result"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/frozen"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/queryfilter"
)

var now = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func fixture() Dataset {
	grade := func(g program.Grade) *program.Grade { return &g }
	return Dataset{
		Employees: []employee.Employee{
			{EmployeeID: "EMP001", Name: "Kim", Department: "Assembly", Position: "Operator", Status: employee.StatusActive},
			{EmployeeID: "EMP002", Name: "Lee", Department: "Assembly", Position: "Leader", Status: employee.StatusActive},
			{EmployeeID: "EMP003", Name: "Park", Department: "Paint", Position: "Operator", Status: employee.StatusInactive},
		},
		Programs: []program.Program{
			{Code: "SAFE-101", Name: "Forklift", Category: program.CategorySafety, ValidityMonths: ptr(12), IsActive: true},
			{Code: "QUAL-201", Name: "SPC", Category: program.CategoryQuality, IsActive: true,
				TargetPositions: frozen.Of("Leader")},
			{Code: "OLD-100", Name: "Retired", Category: program.CategoryOther, IsActive: false},
		},
		Sessions: []session.Session{
			{SessionID: "SES-001", SessionDate: "2024-06-03", Status: session.StatusCompleted},
			{SessionID: "SES-002", SessionDate: "2024-06-20", Status: session.StatusCancelled},
			{SessionID: "SES-003", SessionDate: "2024-05-10", Status: session.StatusCompleted},
		},
		Results: []result.Record{
			// EMP001 passed forklift a year ago; it lapses on 2024-06-20.
			{ResultID: "RES-001", EmployeeID: "EMP001", ProgramCode: "SAFE-101", TrainingDate: "2023-06-20",
				Score: ptr(92.0), Grade: grade(program.GradeA), Result: result.OutcomePass},
			// EMP002 failed first, then passed.
			{ResultID: "RES-002", EmployeeID: "EMP002", ProgramCode: "SAFE-101", TrainingDate: "2024-05-10",
				Score: ptr(60.0), Grade: grade(program.GradeC), Result: result.OutcomeFail, NeedsRetraining: true},
			{ResultID: "RES-003", EmployeeID: "EMP002", ProgramCode: "SAFE-101", TrainingDate: "2024-06-03",
				Score: ptr(88.0), Grade: grade(program.GradeA), Result: result.OutcomePass},
			{ResultID: "RES-004", EmployeeID: "EMP001", ProgramCode: "QUAL-201", TrainingDate: "2024-06-03",
				Result: result.OutcomeAbsent, NeedsRetraining: true},
			{ResultID: "RES-005", EmployeeID: "EMP003", ProgramCode: "QUAL-201", TrainingDate: "2024-06-03",
				Result: result.OutcomeFail, NeedsRetraining: true},
		},
	}
}

func TestComputeStats(t *testing.T) {
	s := ComputeStats(fixture(), now, 30)

	assert.Equal(t, int64(3), s.TotalEmployees)
	assert.Equal(t, int64(2), s.ActiveEmployees)
	assert.Equal(t, int64(2), s.ActivePrograms)
	assert.Equal(t, int64(1), s.SessionsThisMonth)
	assert.Equal(t, int64(5), s.TotalResults)
	assert.Equal(t, int64(2), s.PassCount)
	assert.True(t, decimal.NewFromInt(40).Equal(s.PassRate))
	assert.True(t, decimal.RequireFromString("80").Equal(s.AverageScore))
	assert.Equal(t, int64(1), s.RetrainingCount)
	assert.Equal(t, int64(1), s.ExpiringSoonCount)
}

func TestComputeMonthlyStats(t *testing.T) {
	stats := ComputeMonthlyStats(fixture(), 2024)
	require.Len(t, stats, 12)

	june := stats[5]
	assert.Equal(t, "2024-06", string(june.Month))
	assert.Equal(t, int64(1), june.Sessions)
	assert.Equal(t, int64(1), june.Passed)
	assert.Equal(t, int64(1), june.Failed)
	assert.Equal(t, int64(1), june.Absent)
	assert.Equal(t, int64(2), june.Trained)

	assert.Equal(t, int64(1), stats[4].Failed)
	assert.Equal(t, int64(0), stats[0].Passed)
	assert.True(t, stats[0].PassRate.IsZero())
}

func TestComputeGradeDistribution(t *testing.T) {
	all := ComputeGradeDistribution(fixture().Results, nil)
	assert.Equal(t, int64(5), all.Total)
	assert.Equal(t, int64(2), all.A)
	assert.Equal(t, int64(1), all.C)
	assert.Equal(t, int64(2), all.Ungraded)
	assert.Nil(t, all.ProgramCode)

	code := ids.ProgramCode("SAFE-101")
	safe := ComputeGradeDistribution(fixture().Results, &code)
	assert.Equal(t, int64(3), safe.Total)
	assert.Equal(t, int64(0), safe.Ungraded)
}

func TestComputeRetrainingTargetsUsesLatestResult(t *testing.T) {
	targets := ComputeRetrainingTargets(fixture())

	// RES-002 is superseded by a pass; RES-005 belongs to an inactive employee.
	require.Len(t, targets, 1)
	assert.Equal(t, ids.ResultID("RES-004"), targets[0].ResultID)
	assert.Equal(t, "Kim", targets[0].EmployeeName)
	assert.Equal(t, "SPC", targets[0].ProgramName)
}

func TestComputeExpiringSoon(t *testing.T) {
	items := ComputeExpiringSoon(fixture(), now, 30)

	require.Len(t, items, 1)
	assert.Equal(t, ids.EmployeeID("EMP001"), items[0].EmployeeID)
	assert.Equal(t, "2024-06-20", string(items[0].ExpiresOn))
	assert.Equal(t, 5, items[0].DaysLeft)

	assert.Empty(t, ComputeExpiringSoon(fixture(), now, 4))
}

func TestBuildProgressMatrix(t *testing.T) {
	d := fixture()
	m := BuildProgressMatrix(d.Employees, d.Programs, d.Results, ProgressMatrixFilter{}, now, 30)

	require.Len(t, m.Programs, 2)
	assert.Equal(t, ids.ProgramCode("QUAL-201"), m.Programs[0].Code)
	require.Len(t, m.Rows, 2, "inactive employees are not listed")

	emp1 := m.Rows[0]
	assert.Equal(t, ids.EmployeeID("EMP001"), emp1.EmployeeID)
	assert.Equal(t, CellFailed, emp1.Cells[0].Status)
	assert.False(t, emp1.Cells[0].Required)
	assert.Equal(t, CellExpiring, emp1.Cells[1].Status)
	assert.Equal(t, 1, emp1.CompletedCount)
	assert.True(t, decimal.NewFromInt(50).Equal(emp1.CompletionRate))

	emp2 := m.Rows[1]
	assert.Equal(t, CellNotTaken, emp2.Cells[0].Status)
	assert.True(t, emp2.Cells[0].Required)
	assert.Equal(t, CellCompleted, emp2.Cells[1].Status)
	require.NotNil(t, emp2.Cells[1].ResultID)
	assert.Equal(t, ids.ResultID("RES-003"), *emp2.Cells[1].ResultID)
}

func TestBuildProgressMatrixExpired(t *testing.T) {
	d := fixture()
	later := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	m := BuildProgressMatrix(d.Employees, d.Programs, d.Results, ProgressMatrixFilter{ProgramCodes: []string{"SAFE-101"}}, later, 30)

	require.Len(t, m.Programs, 1)
	assert.Equal(t, CellExpired, m.Rows[0].Cells[0].Status)
	assert.Equal(t, 0, m.Rows[0].CompletedCount)
}

func TestBuildProgressMatrixFilters(t *testing.T) {
	d := fixture()
	f := ProgressMatrixFilter{Position: queryfilter.Ptr("Leader"), Category: queryfilter.Ptr("SAFETY")}
	m := BuildProgressMatrix(d.Employees, d.Programs, d.Results, f, now, 30)

	require.Len(t, m.Rows, 1)
	assert.Equal(t, ids.EmployeeID("EMP002"), m.Rows[0].EmployeeID)
	require.Len(t, m.Programs, 1)
	assert.Equal(t, ids.ProgramCode("SAFE-101"), m.Programs[0].Code)
}

func TestRate(t *testing.T) {
	assert.True(t, Rate(0, 0).IsZero())
	assert.Equal(t, "33.3", Rate(1, 3).String())
}

package postgresql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/changelog"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/newhire"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/program"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/queryfilter"
	"github.com/cmlabs-hris/training-backend-go/internal/store"
)

func TestEmployeeRoundTripAndSoftDelete(t *testing.T) {
	truncate(t)
	ctx := context.Background()
	s := store.New(postgresBackend(), store.WithOwner("admin@example.com"))

	created, err := s.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		EmployeeID: "EMP001",
		Name:       "Kim Minsu",
		Department: "Assembly",
		Position:   "Operator",
		HireDate:   "2023-02-01",
	})
	require.NoError(t, err)
	assert.Equal(t, employee.StatusActive, created.Status)

	_, err = s.CreateEmployee(ctx, employee.CreateEmployeeRequest{EmployeeID: "EMP001", Name: "Dup", HireDate: "2023-02-01"})
	assert.ErrorIs(t, err, employee.ErrEmployeeIDExists)

	found, err := s.DeactivateEmployee(ctx, created.EmployeeID)
	require.NoError(t, err)
	assert.True(t, found)

	list, err := s.FetchEmployees(ctx, employee.EmployeeFilter{Status: queryfilter.Ptr("all")})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, employee.StatusInactive, list[0].Status)

	logs, err := postgresBackend().ChangeLogs.List(ctx, changelog.Filter{EntityID: queryfilter.Ptr("EMP001")})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, changelog.ActionDelete, logs[0].Action)
	assert.NotNil(t, logs[0].BeforeData)
	assert.NotNil(t, logs[0].AfterData)
}

func TestProgramListsAndDeactivates(t *testing.T) {
	truncate(t)
	ctx := context.Background()
	s := store.New(postgresBackend())

	months := 12
	_, err := s.CreateProgram(ctx, program.CreateProgramRequest{
		Code:           "SAFE-101",
		Name:           "Forklift safety",
		Category:       string(program.CategorySafety),
		Tags:           []string{"forklift", "warehouse"},
		EvaluationType: string(program.EvaluationScore),
		DurationHours:  4,
		ValidityMonths: &months,
	})
	require.NoError(t, err)

	tagged, err := s.FetchPrograms(ctx, program.ProgramFilter{Tags: []string{"forklift"}})
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, []string{"forklift", "warehouse"}, tagged[0].Tags.Slice())
	require.NotNil(t, tagged[0].ValidityMonths)
	assert.Equal(t, 12, *tagged[0].ValidityMonths)

	found, err := s.DeleteProgram(ctx, "SAFE-101")
	require.NoError(t, err)
	assert.True(t, found)

	p, err := s.FetchProgram(ctx, "SAFE-101")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.False(t, p.IsActive)
}

func TestTeamSoftDeleteKeepsTrainees(t *testing.T) {
	truncate(t)
	ctx := context.Background()
	s := store.New(postgresBackend())

	team, err := s.CreateTeam(ctx, newhire.CreateTeamRequest{Name: "Night shift", Leader: "Park"})
	require.NoError(t, err)

	teamID := string(team.TeamID)
	trainee, err := s.CreateTrainee(ctx, newhire.CreateTraineeRequest{
		Name:      "Nguyen An",
		TeamID:    &teamID,
		StartDate: "2024-05-02",
	})
	require.NoError(t, err)

	found, err := s.DeleteTeam(ctx, team.TeamID)
	require.NoError(t, err)
	assert.True(t, found)

	trainees, err := s.FetchTrainees(ctx, newhire.TraineeFilter{TeamID: &teamID})
	require.NoError(t, err)
	require.Len(t, trainees, 1)
	assert.Equal(t, trainee.TraineeID, trainees[0].TraineeID)

	resigned, err := s.ResignTrainee(ctx, trainee.TraineeID, newhire.ResignTraineeRequest{
		ResignationDate: "2024-06-30",
		Reason:          "relocation",
	})
	require.NoError(t, err)
	require.NotNil(t, resigned)
	assert.Equal(t, newhire.TraineeResigned, resigned.Status)

	resignations, err := s.FetchResignations(ctx)
	require.NoError(t, err)
	assert.Len(t, resignations, 1)
}

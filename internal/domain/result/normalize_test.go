package result

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/program"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRecordPassesNullsThrough(t *testing.T) {
	got := NormalizeRecord(LegacyRecord{
		ResultID:     "RES-002",
		EmployeeID:   "EMP001",
		ProgramCode:  "SAFE-101",
		TrainingDate: "2024-02-01",
		Result:       "absent",
	})

	assert.Nil(t, got.SessionID)
	assert.Nil(t, got.Score)
	assert.Nil(t, got.Grade)
	assert.Nil(t, got.UpdatedAt)
	assert.Equal(t, OutcomeAbsent, got.Result)
}

func TestNormalizeRecordCopiesNullableValues(t *testing.T) {
	score := 92.0
	grade := "a"
	session := "SES-001"
	legacy := LegacyRecord{ResultID: "RES-001", SessionID: &session, Score: &score, Grade: &grade, Result: "PASS"}

	got := NormalizeRecord(legacy)
	score = 10

	require.NotNil(t, got.Score)
	assert.Equal(t, 92.0, *got.Score)
	require.NotNil(t, got.Grade)
	assert.Equal(t, program.GradeA, *got.Grade)
	require.NotNil(t, got.SessionID)
	assert.Equal(t, "SES-001", string(*got.SessionID))
}

func TestNormalizeRecords(t *testing.T) {
	assert.Len(t, NormalizeRecords([]LegacyRecord{{ResultID: "RES-001"}, {ResultID: "RES-002"}}), 2)
}

func TestUpdateResultRequestApplyKeepsIdentity(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := created.Add(24 * time.Hour)
	score := 95.0
	rec := Record{ResultID: "RES-001", EmployeeID: "EMP001", CreatedAt: created, Result: OutcomePass}

	got := UpdateResultRequest{Score: &score}.Apply(rec, "admin@example.com", now)

	assert.Equal(t, rec.ResultID, got.ResultID)
	assert.Equal(t, created, got.CreatedAt)
	require.NotNil(t, got.Score)
	assert.Equal(t, 95.0, *got.Score)
	require.NotNil(t, got.UpdatedBy)
	assert.Equal(t, "admin@example.com", *got.UpdatedBy)
	assert.Nil(t, rec.Score)
}

func TestWithDerivedGrade(t *testing.T) {
	scored := &program.Program{EvaluationType: program.EvaluationScore, GradeThresholds: program.DefaultGradeThresholds}
	passFail := &program.Program{EvaluationType: program.EvaluationPassFail}
	score := 96.0

	req := UpdateResultRequest{Score: &score}.WithDerivedGrade(scored)
	require.NotNil(t, req.Grade)
	assert.Equal(t, "AA", *req.Grade)

	assert.Nil(t, UpdateResultRequest{Score: &score}.WithDerivedGrade(passFail).Grade)
	assert.Nil(t, UpdateResultRequest{Score: &score}.WithDerivedGrade(nil).Grade)

	explicit := "B"
	req = UpdateResultRequest{Score: &score, Grade: &explicit}.WithDerivedGrade(scored)
	assert.Equal(t, "B", *req.Grade)
}

func TestCreateResultRequestValidate(t *testing.T) {
	score := 50.0
	absent := CreateResultRequest{EmployeeID: "EMP001", ProgramCode: "SAFE-101", TrainingDate: "2024-01-01", Result: "ABSENT", Score: &score}
	assert.Error(t, absent.Validate())

	ok := CreateResultRequest{EmployeeID: "EMP001", ProgramCode: "SAFE-101", TrainingDate: "2024-01-01", Result: "FAIL", Score: &score}
	assert.NoError(t, ok.Validate())

	rec := ok.ToEntity("trainer@example.com", time.Now())
	assert.True(t, rec.NeedsRetraining)
	assert.True(t, len(rec.ResultID) > len("RES-"))
}

func TestRecordExpiresOn(t *testing.T) {
	months := 12
	rec := Record{TrainingDate: "2024-01-31", Result: OutcomePass}

	date, ok := rec.ExpiresOn(&months)
	assert.True(t, ok)
	assert.Equal(t, "2025-01-31", string(date))

	_, ok = rec.ExpiresOn(nil)
	assert.False(t, ok)

	rec.Result = OutcomeFail
	_, ok = rec.ExpiresOn(&months)
	assert.False(t, ok)
}

func TestUpdateResultRequestAgainstAbsentRecord(t *testing.T) {
	absentRec := Record{ResultID: "RES-002", Result: OutcomeAbsent}
	score := 70.0
	grade := "B"

	err := (&UpdateResultRequest{Score: &score}).ValidateAgainst(absentRec)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, ErrAbsentResultHasScore.Error(), verrs.ToMap()["score"])

	assert.Error(t, (&UpdateResultRequest{Grade: &grade}).ValidateAgainst(absentRec))

	fail := string(OutcomeFail)
	assert.NoError(t, (&UpdateResultRequest{Result: &fail, Score: &score}).ValidateAgainst(absentRec))

	remarks := "noted"
	assert.NoError(t, (&UpdateResultRequest{Remarks: &remarks}).ValidateAgainst(absentRec))
}

func TestApplyAbsentClearsScoring(t *testing.T) {
	score := 88.0
	g := program.GradeA
	rec := Record{ResultID: "RES-001", Score: &score, Grade: &g, Result: OutcomePass}

	absent := string(OutcomeAbsent)
	got := UpdateResultRequest{Result: &absent}.Apply(rec, "boss@example.com", time.Now())
	assert.Equal(t, OutcomeAbsent, got.Result)
	assert.Nil(t, got.Score)
	assert.Nil(t, got.Grade)
	assert.NotNil(t, rec.Score, "input record untouched")

	gradeA := "A"
	err := (&UpdateResultRequest{Result: &absent, Grade: &gradeA}).Validate()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, ErrAbsentResultHasGrade.Error(), verrs.ToMap()["grade"])
}

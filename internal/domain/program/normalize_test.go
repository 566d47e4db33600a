package program

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func legacyProgram() LegacyProgram {
	validity := 12
	return LegacyProgram{
		Code:            "SAFE-101",
		Name:            "Forklift safety",
		NameKo:          "지게차 안전",
		NameVi:          "An toàn xe nâng",
		Category:        "safety",
		Tags:            []string{"forklift", "mandatory"},
		TargetPositions: []string{"Operator"},
		EvaluationType:  "pass-fail",
		GradeAA:         95,
		GradeA:          85,
		GradeB:          70,
		DurationHours:   4,
		ValidityMonths:  &validity,
		IsActive:        true,
		CreatedAt:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNormalizeProgramCollapsesGradeThresholds(t *testing.T) {
	legacy := legacyProgram()

	got := NormalizeProgram(legacy)

	assert.Equal(t, GradeThresholds{AA: legacy.GradeAA, A: legacy.GradeA, B: legacy.GradeB}, got.GradeThresholds)
	assert.Equal(t, CategorySafety, got.Category)
	assert.Equal(t, EvaluationPassFail, got.EvaluationType)
	require.NotNil(t, got.ValidityMonths)
	assert.Equal(t, 12, *got.ValidityMonths)
}

func TestNormalizeProgramListsDoNotShareInput(t *testing.T) {
	legacy := legacyProgram()
	got := NormalizeProgram(legacy)

	legacy.Tags[0] = "mutated"
	*legacy.ValidityMonths = 1
	out := got.Tags.Slice()
	out[1] = "mutated"

	assert.Equal(t, []string{"forklift", "mandatory"}, got.Tags.Slice())
	assert.Equal(t, []string{"Operator"}, got.TargetPositions.Slice())
	assert.Equal(t, 12, *got.ValidityMonths)
}

func TestNormalizeProgramUnknownEnums(t *testing.T) {
	got := NormalizeProgram(LegacyProgram{Category: "misc", EvaluationType: ""})

	assert.Equal(t, CategoryOther, got.Category)
	assert.Equal(t, EvaluationScore, got.EvaluationType)
	assert.Equal(t, 0, got.Tags.Len())
}

func TestDenormalizeRoundTrip(t *testing.T) {
	p := NormalizeProgram(legacyProgram())
	back := NormalizeProgram(Denormalize(p))

	assert.Equal(t, p.GradeThresholds, back.GradeThresholds)
	assert.Equal(t, p.Tags.Slice(), back.Tags.Slice())
	assert.Equal(t, p.Code, back.Code)
}

func TestGradeFor(t *testing.T) {
	p := Program{GradeThresholds: GradeThresholds{AA: 95, A: 85, B: 70}}

	cases := []struct {
		score float64
		want  Grade
	}{
		{100, GradeAA},
		{95, GradeAA},
		{92, GradeA},
		{85, GradeA},
		{70, GradeB},
		{69.9, GradeC},
		{0, GradeC},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, p.GradeFor(c.score), "score %v", c.score)
	}
	assert.Equal(t, 70.0, p.PassingScore())
}

func TestProgramFilterMatches(t *testing.T) {
	p := NormalizeProgram(legacyProgram())
	active := "active"
	inactive := "inactive"
	search := "forklift"

	assert.True(t, ProgramFilter{Status: &active, Search: &search}.Matches(p))
	assert.False(t, ProgramFilter{Status: &inactive}.Matches(p))
	assert.True(t, ProgramFilter{Tags: []string{"forklift"}}.Matches(p))
	assert.False(t, ProgramFilter{Tags: []string{"forklift", "crane"}}.Matches(p))
	assert.True(t, ProgramFilter{Tags: []string{}}.Matches(p))
}

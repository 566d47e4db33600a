package program

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/frozen"
)

// LegacyProgram is a program row as persisted: the three grade thresholds are
// flat columns and the enum columns may be in any casing.
type LegacyProgram struct {
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	NameKo          string    `json:"name_ko"`
	NameVi          string    `json:"name_vi"`
	Category        string    `json:"category"`
	Tags            []string  `json:"tags"`
	TargetPositions []string  `json:"target_positions"`
	EvaluationType  string    `json:"evaluation_type"`
	GradeAA         float64   `json:"grade_aa"`
	GradeA          float64   `json:"grade_a"`
	GradeB          float64   `json:"grade_b"`
	DurationHours   float64   `json:"duration_hours"`
	ValidityMonths  *int      `json:"validity_months"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NormalizeProgram(legacy LegacyProgram) Program {
	var validity *int
	if legacy.ValidityMonths != nil {
		v := *legacy.ValidityMonths
		validity = &v
	}
	return Program{
		Code:            ids.UnsafeProgramCode(strings.TrimSpace(legacy.Code)),
		Name:            legacy.Name,
		NameKo:          legacy.NameKo,
		NameVi:          legacy.NameVi,
		Category:        normalizeCategory(legacy.Category),
		Tags:            frozen.Of(legacy.Tags...),
		TargetPositions: frozen.Of(legacy.TargetPositions...),
		EvaluationType:  normalizeEvaluationType(legacy.EvaluationType),
		GradeThresholds: GradeThresholds{
			AA: legacy.GradeAA,
			A:  legacy.GradeA,
			B:  legacy.GradeB,
		},
		DurationHours:  legacy.DurationHours,
		ValidityMonths: validity,
		IsActive:       legacy.IsActive,
		CreatedAt:      legacy.CreatedAt,
		UpdatedAt:      legacy.UpdatedAt,
	}
}

func NormalizePrograms(legacy []LegacyProgram) []Program {
	out := make([]Program, 0, len(legacy))
	for _, l := range legacy {
		out = append(out, NormalizeProgram(l))
	}
	return out
}

// Denormalize flattens p back into its persisted shape.
func Denormalize(p Program) LegacyProgram {
	return LegacyProgram{
		Code:            string(p.Code),
		Name:            p.Name,
		NameKo:          p.NameKo,
		NameVi:          p.NameVi,
		Category:        string(p.Category),
		Tags:            p.Tags.Slice(),
		TargetPositions: p.TargetPositions.Slice(),
		EvaluationType:  string(p.EvaluationType),
		GradeAA:         p.GradeThresholds.AA,
		GradeA:          p.GradeThresholds.A,
		GradeB:          p.GradeThresholds.B,
		DurationHours:   p.DurationHours,
		ValidityMonths:  p.ValidityMonths,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func normalizeCategory(raw string) Category {
	c := Category(strings.ToUpper(strings.TrimSpace(raw)))
	if !c.IsValid() {
		return CategoryOther
	}
	return c
}

func normalizeEvaluationType(raw string) EvaluationType {
	switch strings.ToUpper(strings.NewReplacer("-", "_", " ", "_").Replace(strings.TrimSpace(raw))) {
	case "PASS_FAIL", "PASSFAIL":
		return EvaluationPassFail
	default:
		return EvaluationScore
	}
}

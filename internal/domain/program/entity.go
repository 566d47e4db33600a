package program

import (
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/frozen"
)

type Program struct {
	Code            ids.ProgramCode     `json:"code"`
	Name            string              `json:"name"`
	NameKo          string              `json:"name_ko"`
	NameVi          string              `json:"name_vi"`
	Category        Category            `json:"category"`
	Tags            frozen.List[string] `json:"tags"`
	TargetPositions frozen.List[string] `json:"target_positions"`
	EvaluationType  EvaluationType      `json:"evaluation_type"`
	GradeThresholds GradeThresholds     `json:"grade_thresholds"`
	DurationHours   float64             `json:"duration_hours"`
	ValidityMonths  *int                `json:"validity_months"`
	IsActive        bool                `json:"is_active"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type Category string

const (
	CategoryBasic      Category = "BASIC"
	CategorySafety     Category = "SAFETY"
	CategoryQuality    Category = "QUALITY"
	CategoryProcess    Category = "PROCESS"
	CategoryEquipment  Category = "EQUIPMENT"
	CategoryLeadership Category = "LEADERSHIP"
	CategoryOther      Category = "OTHER"
)

var Categories = []Category{
	CategoryBasic, CategorySafety, CategoryQuality, CategoryProcess,
	CategoryEquipment, CategoryLeadership, CategoryOther,
}

func (c Category) IsValid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

type EvaluationType string

const (
	EvaluationScore    EvaluationType = "SCORE"
	EvaluationPassFail EvaluationType = "PASS_FAIL"
)

func (e EvaluationType) IsValid() bool {
	return e == EvaluationScore || e == EvaluationPassFail
}

// Grade is the letter grade a scored result earns.
type Grade string

const (
	GradeAA Grade = "AA"
	GradeA  Grade = "A"
	GradeB  Grade = "B"
	GradeC  Grade = "C"
)

func (g Grade) IsValid() bool {
	return g == GradeAA || g == GradeA || g == GradeB || g == GradeC
}

// GradeThresholds holds the minimum score for each passing grade. Anything
// below B is a C.
type GradeThresholds struct {
	AA float64 `json:"aa"`
	A  float64 `json:"a"`
	B  float64 `json:"b"`
}

var DefaultGradeThresholds = GradeThresholds{AA: 95, A: 85, B: 70}

func (t GradeThresholds) Grade(score float64) Grade {
	switch {
	case score >= t.AA:
		return GradeAA
	case score >= t.A:
		return GradeA
	case score >= t.B:
		return GradeB
	default:
		return GradeC
	}
}

func (t GradeThresholds) IsOrdered() bool {
	return t.AA >= t.A && t.A >= t.B && t.B >= 0
}

// GradeFor maps score to a grade using the program's thresholds.
func (p Program) GradeFor(score float64) Grade {
	return p.GradeThresholds.Grade(score)
}

// PassingScore is the lowest score that still passes.
func (p Program) PassingScore() float64 {
	return p.GradeThresholds.B
}

// Deactivated returns a copy of p with is_active cleared.
func (p Program) Deactivated(at time.Time) Program {
	p.IsActive = false
	p.UpdatedAt = at
	return p
}

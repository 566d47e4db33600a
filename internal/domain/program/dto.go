package program

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/frozen"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/validator"
)

type CreateProgramRequest struct {
	Code            string           `json:"code"`
	Name            string           `json:"name"`
	NameKo          string           `json:"name_ko"`
	NameVi          string           `json:"name_vi"`
	Category        string           `json:"category"`
	Tags            []string         `json:"tags"`
	TargetPositions []string         `json:"target_positions"`
	EvaluationType  string           `json:"evaluation_type"`
	GradeThresholds *GradeThresholds `json:"grade_thresholds,omitempty"`
	DurationHours   float64          `json:"duration_hours"`
	ValidityMonths  *int             `json:"validity_months,omitempty"`
}

func (r *CreateProgramRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	} else if !ids.IsProgramCode(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code must look like SAFE-101",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !Category(r.Category).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: ErrInvalidCategory.Error(),
		})
	}

	if !EvaluationType(r.EvaluationType).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "evaluation_type",
			Message: ErrInvalidEvaluationType.Error(),
		})
	}

	if r.GradeThresholds != nil && !r.GradeThresholds.IsOrdered() {
		errs = append(errs, validator.ValidationError{
			Field:   "grade_thresholds",
			Message: ErrInvalidGradeThresholds.Error(),
		})
	}

	if r.DurationHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "duration_hours",
			Message: "duration_hours must not be negative",
		})
	}

	if r.ValidityMonths != nil && *r.ValidityMonths <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "validity_months",
			Message: "validity_months must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *CreateProgramRequest) ToEntity(now time.Time) Program {
	thresholds := DefaultGradeThresholds
	if r.GradeThresholds != nil {
		thresholds = *r.GradeThresholds
	}
	return Program{
		Code:            ids.UnsafeProgramCode(r.Code),
		Name:            strings.TrimSpace(r.Name),
		NameKo:          strings.TrimSpace(r.NameKo),
		NameVi:          strings.TrimSpace(r.NameVi),
		Category:        Category(r.Category),
		Tags:            frozen.Of(cleanList(r.Tags)...),
		TargetPositions: frozen.Of(cleanList(r.TargetPositions)...),
		EvaluationType:  EvaluationType(r.EvaluationType),
		GradeThresholds: thresholds,
		DurationHours:   r.DurationHours,
		ValidityMonths:  r.ValidityMonths,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// UpdateProgramRequest patches a program. The code is immutable; is_active is
// only ever cleared through Deactivate but may be set back to true here.
type UpdateProgramRequest struct {
	Name            *string          `json:"name,omitempty"`
	NameKo          *string          `json:"name_ko,omitempty"`
	NameVi          *string          `json:"name_vi,omitempty"`
	Category        *string          `json:"category,omitempty"`
	Tags            []string         `json:"tags,omitempty"`
	TargetPositions []string         `json:"target_positions,omitempty"`
	EvaluationType  *string          `json:"evaluation_type,omitempty"`
	GradeThresholds *GradeThresholds `json:"grade_thresholds,omitempty"`
	DurationHours   *float64         `json:"duration_hours,omitempty"`
	ValidityMonths  *int             `json:"validity_months,omitempty"`
	Reactivate      bool             `json:"reactivate,omitempty"`
}

func (r *UpdateProgramRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.Category != nil && !Category(*r.Category).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: ErrInvalidCategory.Error(),
		})
	}
	if r.EvaluationType != nil && !EvaluationType(*r.EvaluationType).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "evaluation_type",
			Message: ErrInvalidEvaluationType.Error(),
		})
	}
	if r.GradeThresholds != nil && !r.GradeThresholds.IsOrdered() {
		errs = append(errs, validator.ValidationError{
			Field:   "grade_thresholds",
			Message: ErrInvalidGradeThresholds.Error(),
		})
	}
	if r.DurationHours != nil && *r.DurationHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "duration_hours",
			Message: "duration_hours must not be negative",
		})
	}
	if r.ValidityMonths != nil && *r.ValidityMonths <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "validity_months",
			Message: "validity_months must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r UpdateProgramRequest) Apply(p Program, now time.Time) Program {
	if r.Name != nil {
		p.Name = strings.TrimSpace(*r.Name)
	}
	if r.NameKo != nil {
		p.NameKo = strings.TrimSpace(*r.NameKo)
	}
	if r.NameVi != nil {
		p.NameVi = strings.TrimSpace(*r.NameVi)
	}
	if r.Category != nil {
		p.Category = Category(*r.Category)
	}
	if r.Tags != nil {
		p.Tags = frozen.Of(cleanList(r.Tags)...)
	}
	if r.TargetPositions != nil {
		p.TargetPositions = frozen.Of(cleanList(r.TargetPositions)...)
	}
	if r.EvaluationType != nil {
		p.EvaluationType = EvaluationType(*r.EvaluationType)
	}
	if r.GradeThresholds != nil {
		p.GradeThresholds = *r.GradeThresholds
	}
	if r.DurationHours != nil {
		p.DurationHours = *r.DurationHours
	}
	if r.ValidityMonths != nil {
		v := *r.ValidityMonths
		p.ValidityMonths = &v
	}
	if r.Reactivate {
		p.IsActive = true
	}
	p.UpdatedAt = now
	return p
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

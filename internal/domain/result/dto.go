package result

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/program"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/validator"
)

type CreateResultRequest struct {
	SessionID       *string  `json:"session_id,omitempty"`
	EmployeeID      string   `json:"employee_id"`
	ProgramCode     string   `json:"program_code"`
	TrainingDate    string   `json:"training_date"`
	Score           *float64 `json:"score,omitempty"`
	Grade           *string  `json:"grade,omitempty"`
	Result          string   `json:"result"`
	NeedsRetraining *bool    `json:"needs_retraining,omitempty"`
	Remarks         string   `json:"remarks"`
}

func (r *CreateResultRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.SessionID != nil && !ids.IsSessionID(*r.SessionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "session_id",
			Message: "session_id must be a valid session id",
		})
	}
	if !ids.IsEmployeeID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid employee id",
		})
	}
	if !ids.IsProgramCode(r.ProgramCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "program_code",
			Message: "program_code must be a valid program code",
		})
	}
	if !datetime.IsISODate(r.TrainingDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "training_date",
			Message: ErrInvalidTrainingDate.Error(),
		})
	}
	errs = append(errs, validateScoring(r.Score, r.Grade, &r.Result)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// WithDerivedGrade fills in the grade from p's thresholds when a score is
// given without one. Pass/fail programs never get a grade.
func (r CreateResultRequest) WithDerivedGrade(p *program.Program) CreateResultRequest {
	r.Grade = deriveGrade(r.Score, r.Grade, p)
	return r
}

func (r *CreateResultRequest) ToEntity(evaluatedBy string, now time.Time) Record {
	outcome := Outcome(r.Result)
	needsRetraining := outcome != OutcomePass
	if r.NeedsRetraining != nil {
		needsRetraining = *r.NeedsRetraining
	}
	rec := Record{
		ResultID:        ids.NewResultID(),
		EmployeeID:      ids.UnsafeEmployeeID(r.EmployeeID),
		ProgramCode:     ids.UnsafeProgramCode(r.ProgramCode),
		TrainingDate:    datetime.ISODate(r.TrainingDate),
		Score:           copyFloat(r.Score),
		Result:          outcome,
		NeedsRetraining: needsRetraining,
		EvaluatedBy:     evaluatedBy,
		Remarks:         strings.TrimSpace(r.Remarks),
		CreatedAt:       now,
	}
	if r.SessionID != nil {
		sid := ids.UnsafeSessionID(*r.SessionID)
		rec.SessionID = &sid
	}
	if r.Grade != nil {
		g := program.Grade(*r.Grade)
		rec.Grade = &g
	}
	return rec
}

// UpdateResultRequest patches a result. Only the set fields change; the
// result id, employee, program and creation time are fixed.
type UpdateResultRequest struct {
	SessionID       *string  `json:"session_id,omitempty"`
	TrainingDate    *string  `json:"training_date,omitempty"`
	Score           *float64 `json:"score,omitempty"`
	Grade           *string  `json:"grade,omitempty"`
	Result          *string  `json:"result,omitempty"`
	NeedsRetraining *bool    `json:"needs_retraining,omitempty"`
	Remarks         *string  `json:"remarks,omitempty"`
}

func (r *UpdateResultRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.SessionID != nil && !ids.IsSessionID(*r.SessionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "session_id",
			Message: "session_id must be a valid session id",
		})
	}
	if r.TrainingDate != nil && !datetime.IsISODate(*r.TrainingDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "training_date",
			Message: ErrInvalidTrainingDate.Error(),
		})
	}
	errs = append(errs, validateScoring(r.Score, r.Grade, r.Result)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidateAgainst checks the patch against the record it will be applied to.
// A patch that leaves the outcome ABSENT may not add a score or grade.
func (r *UpdateResultRequest) ValidateAgainst(current Record) error {
	outcome := current.Result
	if r.Result != nil {
		outcome = Outcome(*r.Result)
	}
	if outcome != OutcomeAbsent {
		return nil
	}

	var errs validator.ValidationErrors
	if r.Score != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "score",
			Message: ErrAbsentResultHasScore.Error(),
		})
	}
	if r.Grade != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "grade",
			Message: ErrAbsentResultHasGrade.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r UpdateResultRequest) WithDerivedGrade(p *program.Program) UpdateResultRequest {
	r.Grade = deriveGrade(r.Score, r.Grade, p)
	return r
}

// Apply returns rec with the patch applied and the edit stamped. Marking a
// record ABSENT clears its score and grade.
func (r UpdateResultRequest) Apply(rec Record, updatedBy string, now time.Time) Record {
	if r.SessionID != nil {
		sid := ids.UnsafeSessionID(*r.SessionID)
		rec.SessionID = &sid
	}
	if r.TrainingDate != nil {
		rec.TrainingDate = datetime.ISODate(*r.TrainingDate)
	}
	if r.Score != nil {
		rec.Score = copyFloat(r.Score)
	}
	if r.Grade != nil {
		g := program.Grade(*r.Grade)
		rec.Grade = &g
	}
	if r.Result != nil {
		rec.Result = Outcome(*r.Result)
		if rec.Result == OutcomeAbsent {
			rec.Score = nil
			rec.Grade = nil
		}
	}
	if r.NeedsRetraining != nil {
		rec.NeedsRetraining = *r.NeedsRetraining
	}
	if r.Remarks != nil {
		rec.Remarks = strings.TrimSpace(*r.Remarks)
	}
	at := now
	by := updatedBy
	rec.UpdatedAt = &at
	rec.UpdatedBy = &by
	return rec
}

func validateScoring(score *float64, grade *string, outcome *string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if score != nil && (*score < 0 || *score > 100) {
		errs = append(errs, validator.ValidationError{
			Field:   "score",
			Message: ErrInvalidScore.Error(),
		})
	}
	if grade != nil && !program.Grade(*grade).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "grade",
			Message: ErrInvalidGrade.Error(),
		})
	}
	if outcome != nil {
		if !Outcome(*outcome).IsValid() {
			errs = append(errs, validator.ValidationError{
				Field:   "result",
				Message: ErrInvalidOutcome.Error(),
			})
		} else if Outcome(*outcome) == OutcomeAbsent {
			if score != nil {
				errs = append(errs, validator.ValidationError{
					Field:   "score",
					Message: ErrAbsentResultHasScore.Error(),
				})
			}
			if grade != nil {
				errs = append(errs, validator.ValidationError{
					Field:   "grade",
					Message: ErrAbsentResultHasGrade.Error(),
				})
			}
		}
	}
	return errs
}

func deriveGrade(score *float64, grade *string, p *program.Program) *string {
	if grade != nil || score == nil || p == nil || p.EvaluationType != program.EvaluationScore {
		return grade
	}
	g := string(p.GradeFor(*score))
	return &g
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

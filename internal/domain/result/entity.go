package result

import (
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/program"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
)

// Record is one employee's outcome in one training. Records have no delete
// path; ResultID and CreatedAt never change after creation.
type Record struct {
	ResultID        ids.ResultID     `json:"result_id"`
	SessionID       *ids.SessionID   `json:"session_id"`
	EmployeeID      ids.EmployeeID   `json:"employee_id"`
	ProgramCode     ids.ProgramCode  `json:"program_code"`
	TrainingDate    datetime.ISODate `json:"training_date"`
	Score           *float64         `json:"score"`
	Grade           *program.Grade   `json:"grade"`
	Result          Outcome          `json:"result"`
	NeedsRetraining bool             `json:"needs_retraining"`
	EvaluatedBy     string           `json:"evaluated_by"`
	Remarks         string           `json:"remarks"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       *time.Time       `json:"updated_at"`
	UpdatedBy       *string          `json:"updated_by"`
}

type Outcome string

const (
	OutcomePass   Outcome = "PASS"
	OutcomeFail   Outcome = "FAIL"
	OutcomeAbsent Outcome = "ABSENT"
)

func (o Outcome) IsValid() bool {
	return o == OutcomePass || o == OutcomeFail || o == OutcomeAbsent
}

func (r Record) Passed() bool {
	return r.Result == OutcomePass
}

// ExpiresOn is the date a passed result stops counting, given the program's
// validity. ok is false when the result never expires.
func (r Record) ExpiresOn(validityMonths *int) (datetime.ISODate, bool) {
	if validityMonths == nil || *validityMonths <= 0 || !r.Passed() {
		return "", false
	}
	return datetime.AddMonths(r.TrainingDate, *validityMonths), true
}

// Newer reports whether r supersedes other for the same employee and program.
func (r Record) Newer(other Record) bool {
	if r.TrainingDate != other.TrainingDate {
		return r.TrainingDate > other.TrainingDate
	}
	return r.CreatedAt.After(other.CreatedAt)
}

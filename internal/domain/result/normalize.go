package result

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/ids"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/program"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/datetime"
)

// LegacyRecord is a result row as persisted. SessionID, Score, Grade,
// UpdatedAt and UpdatedBy are nullable and stay nil when null.
type LegacyRecord struct {
	ResultID        string     `json:"result_id"`
	SessionID       *string    `json:"session_id"`
	EmployeeID      string     `json:"employee_id"`
	ProgramCode     string     `json:"program_code"`
	TrainingDate    string     `json:"training_date"`
	Score           *float64   `json:"score"`
	Grade           *string    `json:"grade"`
	Result          string     `json:"result"`
	NeedsRetraining bool       `json:"needs_retraining"`
	EvaluatedBy     string     `json:"evaluated_by"`
	Remarks         string     `json:"remarks"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
	UpdatedBy       *string    `json:"updated_by"`
}

func NormalizeRecord(legacy LegacyRecord) Record {
	rec := Record{
		ResultID:        ids.UnsafeResultID(strings.TrimSpace(legacy.ResultID)),
		EmployeeID:      ids.UnsafeEmployeeID(strings.TrimSpace(legacy.EmployeeID)),
		ProgramCode:     ids.UnsafeProgramCode(strings.TrimSpace(legacy.ProgramCode)),
		TrainingDate:    datetime.DateOf(legacy.TrainingDate),
		Score:           copyFloat(legacy.Score),
		Result:          Outcome(strings.ToUpper(strings.TrimSpace(legacy.Result))),
		NeedsRetraining: legacy.NeedsRetraining,
		EvaluatedBy:     legacy.EvaluatedBy,
		Remarks:         legacy.Remarks,
		CreatedAt:       legacy.CreatedAt,
	}
	if legacy.SessionID != nil {
		sid := ids.UnsafeSessionID(*legacy.SessionID)
		rec.SessionID = &sid
	}
	if legacy.Grade != nil {
		g := program.Grade(strings.ToUpper(strings.TrimSpace(*legacy.Grade)))
		rec.Grade = &g
	}
	if legacy.UpdatedAt != nil {
		at := *legacy.UpdatedAt
		rec.UpdatedAt = &at
	}
	if legacy.UpdatedBy != nil {
		by := *legacy.UpdatedBy
		rec.UpdatedBy = &by
	}
	return rec
}

func NormalizeRecords(legacy []LegacyRecord) []Record {
	out := make([]Record, 0, len(legacy))
	for _, l := range legacy {
		out = append(out, NormalizeRecord(l))
	}
	return out
}

package result

import (
	"strconv"
	"strings"

	"github.com/cmlabs-hris/training-backend-go/internal/pkg/queryfilter"
)

type ResultFilter struct {
	EmployeeID      *string `json:"employee_id,omitempty"`
	ProgramCode     *string `json:"program_code,omitempty"`
	SessionID       *string `json:"session_id,omitempty"`
	Result          *string `json:"result,omitempty"`
	DateFrom        *string `json:"date_from,omitempty"`
	DateTo          *string `json:"date_to,omitempty"`
	NeedsRetraining *string `json:"needs_retraining,omitempty"`
}

var FilterSchema = queryfilter.New(
	queryfilter.String("employee_id", "all", func(f *ResultFilter) **string { return &f.EmployeeID }),
	queryfilter.String("program_code", "all", func(f *ResultFilter) **string { return &f.ProgramCode }),
	queryfilter.String("session_id", "all", func(f *ResultFilter) **string { return &f.SessionID }),
	queryfilter.String("result", "all", func(f *ResultFilter) **string { return &f.Result }),
	queryfilter.String("date_from", "", func(f *ResultFilter) **string { return &f.DateFrom }),
	queryfilter.String("date_to", "", func(f *ResultFilter) **string { return &f.DateTo }),
	queryfilter.String("needs_retraining", "all", func(f *ResultFilter) **string { return &f.NeedsRetraining }),
)

// Retraining parses the needs_retraining constraint. ok is false when the
// field is unset, "all", or not a boolean.
func (f ResultFilter) Retraining() (want bool, ok bool) {
	v, active := queryfilter.Active(f.NeedsRetraining)
	if !active {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

func (f ResultFilter) Matches(r Record) bool {
	if v, ok := queryfilter.Active(f.EmployeeID); ok && string(r.EmployeeID) != v {
		return false
	}
	if v, ok := queryfilter.Active(f.ProgramCode); ok && string(r.ProgramCode) != v {
		return false
	}
	if v, ok := queryfilter.Active(f.SessionID); ok && (r.SessionID == nil || string(*r.SessionID) != v) {
		return false
	}
	if v, ok := queryfilter.Active(f.Result); ok && !strings.EqualFold(string(r.Result), v) {
		return false
	}
	if v, ok := queryfilter.Active(f.DateFrom); ok && string(r.TrainingDate) < v {
		return false
	}
	if v, ok := queryfilter.Active(f.DateTo); ok && string(r.TrainingDate) > v {
		return false
	}
	if want, ok := f.Retraining(); ok && r.NeedsRetraining != want {
		return false
	}
	return true
}

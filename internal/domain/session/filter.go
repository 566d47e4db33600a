package session

import (
	"strings"

	"github.com/cmlabs-hris/training-backend-go/internal/pkg/queryfilter"
)

type SessionFilter struct {
	ProgramCode *string `json:"program_code,omitempty"`
	Status      *string `json:"status,omitempty"`
	DateFrom    *string `json:"date_from,omitempty"`
	DateTo      *string `json:"date_to,omitempty"`
	Trainer     *string `json:"trainer,omitempty"`
}

var FilterSchema = queryfilter.New(
	queryfilter.String("program_code", "all", func(f *SessionFilter) **string { return &f.ProgramCode }),
	queryfilter.String("status", "all", func(f *SessionFilter) **string { return &f.Status }),
	queryfilter.String("date_from", "", func(f *SessionFilter) **string { return &f.DateFrom }),
	queryfilter.String("date_to", "", func(f *SessionFilter) **string { return &f.DateTo }),
	queryfilter.String("trainer", "", func(f *SessionFilter) **string { return &f.Trainer }),
)

// Matches applies f to s. Date bounds are inclusive and compare as strings,
// which is safe for YYYY-MM-DD.
func (f SessionFilter) Matches(s Session) bool {
	if v, ok := queryfilter.Active(f.ProgramCode); ok && string(s.ProgramCode) != v {
		return false
	}
	if v, ok := queryfilter.Active(f.Status); ok && !strings.EqualFold(string(s.Status), v) {
		return false
	}
	if v, ok := queryfilter.Active(f.DateFrom); ok && string(s.SessionDate) < v {
		return false
	}
	if v, ok := queryfilter.Active(f.DateTo); ok && string(s.SessionDate) > v {
		return false
	}
	if v, ok := queryfilter.Active(f.Trainer); ok &&
		!strings.Contains(strings.ToLower(s.Trainer.Name), strings.ToLower(strings.TrimSpace(v))) {
		return false
	}
	return true
}

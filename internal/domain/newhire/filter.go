package newhire

import (
	"strings"

	"github.com/cmlabs-hris/training-backend-go/internal/pkg/queryfilter"
)

type TraineeFilter struct {
	TeamID *string `json:"team_id,omitempty"`
	Status *string `json:"status,omitempty"`
	Search *string `json:"search,omitempty"`
}

var FilterSchema = queryfilter.New(
	queryfilter.String("team_id", "all", func(f *TraineeFilter) **string { return &f.TeamID }),
	queryfilter.String("status", "all", func(f *TraineeFilter) **string { return &f.Status }),
	queryfilter.String("search", "", func(f *TraineeFilter) **string { return &f.Search }),
)

func (f TraineeFilter) Matches(t Trainee) bool {
	if v, ok := queryfilter.Active(f.TeamID); ok && (t.TeamID == nil || string(*t.TeamID) != v) {
		return false
	}
	if v, ok := queryfilter.Active(f.Status); ok && !strings.EqualFold(string(t.Status), v) {
		return false
	}
	if v, ok := queryfilter.Active(f.Search); ok {
		needle := strings.ToLower(strings.TrimSpace(v))
		if !strings.Contains(strings.ToLower(t.Name), needle) &&
			!strings.Contains(strings.ToLower(string(t.TraineeID)), needle) {
			return false
		}
	}
	return true
}

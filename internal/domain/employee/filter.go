package employee

import (
	"strings"

	"github.com/cmlabs-hris/training-backend-go/internal/pkg/queryfilter"
)

// EmployeeFilter constrains employee lists. A nil field, "" or "all" means no
// constraint on that field.
type EmployeeFilter struct {
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
	Building   *string `json:"building,omitempty"`
	Line       *string `json:"line,omitempty"`
	Status     *string `json:"status,omitempty"`
	Search     *string `json:"search,omitempty"`
}

var FilterSchema = queryfilter.New(
	queryfilter.String("department", "all", func(f *EmployeeFilter) **string { return &f.Department }),
	queryfilter.String("position", "all", func(f *EmployeeFilter) **string { return &f.Position }),
	queryfilter.String("building", "all", func(f *EmployeeFilter) **string { return &f.Building }),
	queryfilter.String("line", "all", func(f *EmployeeFilter) **string { return &f.Line }),
	queryfilter.String("status", "all", func(f *EmployeeFilter) **string { return &f.Status }),
	queryfilter.String("search", "", func(f *EmployeeFilter) **string { return &f.Search }),
)

// Matches reports whether e satisfies every active constraint of f.
func (f EmployeeFilter) Matches(e Employee) bool {
	if v, ok := queryfilter.Active(f.Department); ok && e.Department != v {
		return false
	}
	if v, ok := queryfilter.Active(f.Position); ok && e.Position != v {
		return false
	}
	if v, ok := queryfilter.Active(f.Building); ok && e.Building != v {
		return false
	}
	if v, ok := queryfilter.Active(f.Line); ok && e.Line != v {
		return false
	}
	if v, ok := queryfilter.Active(f.Status); ok && !strings.EqualFold(string(e.Status), v) {
		return false
	}
	if v, ok := queryfilter.Active(f.Search); ok {
		needle := strings.ToLower(strings.TrimSpace(v))
		if !strings.Contains(strings.ToLower(e.Name), needle) &&
			!strings.Contains(strings.ToLower(string(e.EmployeeID)), needle) {
			return false
		}
	}
	return true
}

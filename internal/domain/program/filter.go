package program

import (
	"slices"
	"strings"

	"github.com/cmlabs-hris/training-backend-go/internal/pkg/frozen"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/queryfilter"
)

const (
	FilterStatusActive   = "active"
	FilterStatusInactive = "inactive"
)

// ProgramFilter constrains program lists. Status is "active", "inactive" or
// "all"; Tags matches programs carrying every listed tag.
type ProgramFilter struct {
	Category *string  `json:"category,omitempty"`
	Status   *string  `json:"status,omitempty"`
	Search   *string  `json:"search,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

var FilterSchema = queryfilter.New(
	queryfilter.String("category", "all", func(f *ProgramFilter) **string { return &f.Category }),
	queryfilter.String("status", "all", func(f *ProgramFilter) **string { return &f.Status }),
	queryfilter.String("search", "", func(f *ProgramFilter) **string { return &f.Search }),
	queryfilter.List("tags", []string{}, func(f *ProgramFilter) *[]string { return &f.Tags }),
)

func (f ProgramFilter) Matches(p Program) bool {
	if v, ok := queryfilter.Active(f.Category); ok && !strings.EqualFold(string(p.Category), v) {
		return false
	}
	if v, ok := queryfilter.Active(f.Status); ok {
		switch strings.ToLower(v) {
		case FilterStatusActive:
			if !p.IsActive {
				return false
			}
		case FilterStatusInactive:
			if p.IsActive {
				return false
			}
		}
	}
	if v, ok := queryfilter.Active(f.Search); ok {
		needle := strings.ToLower(strings.TrimSpace(v))
		hay := []string{string(p.Code), p.Name, p.NameKo, p.NameVi}
		if !slices.ContainsFunc(hay, func(s string) bool { return strings.Contains(strings.ToLower(s), needle) }) {
			return false
		}
	}
	if tags, ok := queryfilter.ActiveList(f.Tags); ok {
		for _, tag := range tags {
			if !frozen.Contains(p.Tags, tag) {
				return false
			}
		}
	}
	return true
}

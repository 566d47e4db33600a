package changelog

import (
	"context"

	"github.com/cmlabs-hris/training-backend-go/internal/pkg/queryfilter"
)

type Repository interface {
	Append(ctx context.Context, entry Entry) error
	List(ctx context.Context, filter Filter) ([]Entry, error)
}

// Filter narrows the audit listing. Entries come back newest first.
type Filter struct {
	EntityType *string `json:"entity_type,omitempty"`
	EntityID   *string `json:"entity_id,omitempty"`
	Action     *string `json:"action,omitempty"`
	Limit      int     `json:"limit,omitempty"`
}

const DefaultLimit = 100

var FilterSchema = queryfilter.New(
	queryfilter.String("entity_type", "all", func(f *Filter) **string { return &f.EntityType }),
	queryfilter.String("entity_id", "", func(f *Filter) **string { return &f.EntityID }),
	queryfilter.String("action", "all", func(f *Filter) **string { return &f.Action }),
)

func (f Filter) Matches(e Entry) bool {
	if v, ok := queryfilter.Active(f.EntityType); ok && string(e.EntityType) != v {
		return false
	}
	if v, ok := queryfilter.Active(f.EntityID); ok && e.EntityID != v {
		return false
	}
	if v, ok := queryfilter.Active(f.Action); ok && string(e.Action) != v {
		return false
	}
	return true
}

// EffectiveLimit clamps Limit to (0, DefaultLimit*10], defaulting to DefaultLimit.
func (f Filter) EffectiveLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultLimit
	case f.Limit > DefaultLimit*10:
		return DefaultLimit * 10
	}
	return f.Limit
}

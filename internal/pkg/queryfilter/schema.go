// Package queryfilter maps typed filter structs to and from URL query parameters.
//
// Every filter type declares a static Schema: one Field per query key, either a
// scalar (*string) or a list ([]string, comma-joined on the wire). The schema is
// what the store uses to merge filter deltas and what the HTTP layer uses to
// read and emit shareable query strings, so both sides follow the same rules:
//
//   - a nil scalar / nil list is "absent" and never overrides anything,
//   - the sentinels "" and "all" mean "no constraint"; Encode elides them and
//     Active reports them inactive,
//   - an empty list means "no constraint" as well.
package queryfilter

import (
	"errors"
	"net/url"
	"slices"
	"strings"
)

var (
	ErrUnknownKey   = errors.New("queryfilter: unknown filter key")
	ErrKindMismatch = errors.New("queryfilter: value kind does not match filter field")
)

func isSentinel(v string) bool {
	return v == "" || v == "all"
}

type Field[F any] struct {
	key       string
	list      bool
	scalarDef string
	listDef   []string
	scalarPtr func(*F) **string
	listPtr   func(*F) *[]string
}

// String declares a scalar field stored in a *string.
func String[F any](key, def string, field func(*F) **string) Field[F] {
	return Field[F]{key: key, scalarDef: def, scalarPtr: field}
}

// List declares a multi-value field stored in a []string.
func List[F any](key string, def []string, field func(*F) *[]string) Field[F] {
	return Field[F]{key: key, list: true, listDef: slices.Clone(def), listPtr: field}
}

type Schema[F any] struct {
	fields []Field[F]
	index  map[string]int
}

func New[F any](fields ...Field[F]) *Schema[F] {
	s := &Schema[F]{
		fields: fields,
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		s.index[f.key] = i
	}
	return s
}

func (s *Schema[F]) Keys() []string {
	keys := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		keys = append(keys, f.key)
	}
	return keys
}

func (s *Schema[F]) field(key string) (Field[F], bool) {
	i, ok := s.index[key]
	if !ok {
		return Field[F]{}, false
	}
	return s.fields[i], true
}

// Defaults returns a filter with every field set to its declared default.
func (s *Schema[F]) Defaults() F {
	return s.Decode(nil)
}

// Decode reads a complete filter from q. List keys are split on commas when the
// parameter is present and non-empty, otherwise they take the default list.
// Scalar keys take the raw parameter whenever it exists, even when it is empty.
func (s *Schema[F]) Decode(q url.Values) F {
	var out F
	for _, f := range s.fields {
		raw, present := q[f.key]
		if f.list {
			if present && len(raw) > 0 && raw[0] != "" {
				*f.listPtr(&out) = splitList(raw[0])
			} else {
				*f.listPtr(&out) = slices.Clone(f.listDef)
			}
			continue
		}
		v := f.scalarDef
		if present {
			v = first(raw)
		}
		*f.scalarPtr(&out) = &v
	}
	return out
}

// Delta reads only the parameters present in q. Present-but-empty parameters
// become explicit "no constraint" values so they clear whatever they merge over.
func (s *Schema[F]) Delta(q url.Values) F {
	var out F
	for _, f := range s.fields {
		raw, present := q[f.key]
		if !present {
			continue
		}
		if f.list {
			*f.listPtr(&out) = splitList(first(raw))
			continue
		}
		v := first(raw)
		*f.scalarPtr(&out) = &v
	}
	return out
}

// Merge lays delta over base. Every field set in delta wins; absent fields keep
// base's value. Neither argument is modified.
func (s *Schema[F]) Merge(base, delta F) F {
	out := base
	for _, f := range s.fields {
		if f.list {
			dst := f.listPtr(&out)
			if d := *f.listPtr(&delta); d != nil {
				*dst = slices.Clone(d)
			} else if *dst != nil {
				*dst = slices.Clone(*dst)
			}
			continue
		}
		dst := f.scalarPtr(&out)
		if d := *f.scalarPtr(&delta); d != nil {
			v := *d
			*dst = &v
		} else if *dst != nil {
			v := **dst
			*dst = &v
		}
	}
	return out
}

// Encode renders the constraining fields of filter as query parameters.
func (s *Schema[F]) Encode(filter F) url.Values {
	q := url.Values{}
	for _, f := range s.fields {
		if f.list {
			items := nonEmpty(*f.listPtr(&filter))
			if len(items) > 0 {
				q.Set(f.key, strings.Join(items, ","))
			}
			continue
		}
		if v, ok := Active(*f.scalarPtr(&filter)); ok {
			q.Set(f.key, v)
		}
	}
	return q
}

// QueryString is Encode rendered with a leading "?", or "" when nothing constrains.
func (s *Schema[F]) QueryString(filter F) string {
	encoded := s.Encode(filter).Encode()
	if encoded == "" {
		return ""
	}
	return "?" + encoded
}

// Active returns the value behind p and whether it actually constrains a query.
func Active(p *string) (string, bool) {
	if p == nil || isSentinel(*p) {
		return "", false
	}
	return *p, true
}

// ActiveList returns the non-empty items of values and whether any remain.
func ActiveList(values []string) ([]string, bool) {
	items := nonEmpty(values)
	return items, len(items) > 0
}

// Ptr is a convenience for building filters in code.
func Ptr(s string) *string { return &s }

func first(raw []string) string {
	if len(raw) == 0 {
		return ""
	}
	return raw[0]
}

func splitList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return nonEmpty(strings.Split(raw, ","))
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

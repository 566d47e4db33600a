package queryfilter

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// Navigator is the location a State reads its query from and writes it back to.
// Replace must overwrite the current entry rather than push a new one.
type Navigator interface {
	Query() url.Values
	Replace(q url.Values)
}

type valueKind int

const (
	kindNull valueKind = iota
	kindScalar
	kindList
)

// Value is one filter assignment passed to State.SetFilter.
type Value struct {
	kind   valueKind
	scalar string
	list   []string
}

// Null removes the parameter.
var Null = Value{}

func Scalar(s string) Value        { return Value{kind: kindScalar, scalar: s} }
func Values(items ...string) Value { return Value{kind: kindList, list: items} }

// State keeps a typed filter in sync with a Navigator's query string.
type State[F any] struct {
	schema *Schema[F]
	nav    Navigator

	mu       sync.Mutex
	cacheKey string
	cached   F
	hasCache bool
}

func NewState[F any](schema *Schema[F], nav Navigator) *State[F] {
	return &State[F]{schema: schema, nav: nav}
}

// Filters decodes the navigator's current query. The result is memoized until
// the query changes.
func (st *State[F]) Filters() F {
	q := st.nav.Query()
	key := q.Encode()

	st.mu.Lock()
	defer st.mu.Unlock()
	if st.hasCache && st.cacheKey == key {
		return st.schema.Merge(st.cached, *new(F))
	}
	st.cached = st.schema.Decode(q)
	st.cacheKey = key
	st.hasCache = true
	return st.schema.Merge(st.cached, *new(F))
}

func (st *State[F]) SetFilter(key string, v Value) error {
	return st.SetFilters(map[string]Value{key: v})
}

// SetFilters applies every assignment and replaces the query once. Nothing is
// written when any key is unknown or has the wrong kind.
func (st *State[F]) SetFilters(update map[string]Value) error {
	for key, v := range update {
		f, ok := st.schema.field(key)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownKey, key)
		}
		if (v.kind == kindList && !f.list) || (v.kind == kindScalar && f.list) {
			return fmt.Errorf("%w: %q", ErrKindMismatch, key)
		}
	}

	q := cloneValues(st.nav.Query())
	for key, v := range update {
		st.apply(q, key, v)
	}
	st.nav.Replace(q)
	return nil
}

func (st *State[F]) apply(q url.Values, key string, v Value) {
	switch v.kind {
	case kindList:
		items := nonEmpty(v.list)
		if len(items) == 0 {
			q.Del(key)
			return
		}
		q.Set(key, strings.Join(items, ","))
	case kindScalar:
		if isSentinel(v.scalar) {
			q.Del(key)
			return
		}
		q.Set(key, v.scalar)
	default:
		q.Del(key)
	}
}

// ResetFilters removes every filter parameter. Parameters the schema does not
// know about are left alone.
func (st *State[F]) ResetFilters() {
	q := cloneValues(st.nav.Query())
	for _, key := range st.schema.Keys() {
		q.Del(key)
	}
	st.nav.Replace(q)
}

func (st *State[F]) ResetFilter(key string) error {
	if _, ok := st.schema.field(key); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	q := cloneValues(st.nav.Query())
	q.Del(key)
	st.nav.Replace(q)
	return nil
}

// QueryString is the shareable form of the current filters.
func (st *State[F]) QueryString() string {
	return st.schema.QueryString(st.Filters())
}

func cloneValues(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// MemoryNavigator is a Navigator over an in-memory query string. Replacements
// counts Replace calls; the query never grows a history.
type MemoryNavigator struct {
	mu           sync.Mutex
	query        url.Values
	replacements int
}

func NewMemoryNavigator(rawQuery string) *MemoryNavigator {
	q, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		q = url.Values{}
	}
	return &MemoryNavigator{query: q}
}

func (n *MemoryNavigator) Query() url.Values {
	n.mu.Lock()
	defer n.mu.Unlock()
	return cloneValues(n.query)
}

func (n *MemoryNavigator) Replace(q url.Values) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.query = cloneValues(q)
	n.replacements++
}

func (n *MemoryNavigator) RawQuery() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.query.Encode()
}

func (n *MemoryNavigator) Replacements() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.replacements
}

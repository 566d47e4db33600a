package queryfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateDefaultsWithEmptyQuery(t *testing.T) {
	st := NewState(sampleSchema, NewMemoryNavigator(""))

	f := st.Filters()
	assert.Equal(t, "all", *f.Status)
	assert.Empty(t, f.Tags)
	assert.Equal(t, "", st.QueryString())
}

func TestStateSetListFilterReadsBack(t *testing.T) {
	nav := NewMemoryNavigator("")
	st := NewState(sampleSchema, nav)

	require.NoError(t, st.SetFilter("tags", Values("a", "b")))

	assert.Equal(t, []string{"a", "b"}, st.Filters().Tags)
	assert.Equal(t, "tags=a%2Cb", nav.RawQuery())
	assert.Equal(t, 1, nav.Replacements())
}

func TestStateSettingEmptySentinelRemovesParam(t *testing.T) {
	nav := NewMemoryNavigator("status=ACTIVE&page=2")
	st := NewState(sampleSchema, nav)
	assert.Equal(t, "ACTIVE", *st.Filters().Status)

	require.NoError(t, st.SetFilter("status", Scalar("all")))

	assert.Equal(t, "page=2", nav.RawQuery())
	assert.Equal(t, "all", *st.Filters().Status)
}

func TestStateNullAndEmptyListRemoveParam(t *testing.T) {
	nav := NewMemoryNavigator("status=ACTIVE&tags=a")
	st := NewState(sampleSchema, nav)

	require.NoError(t, st.SetFilters(map[string]Value{
		"status": Null,
		"tags":   Values(),
	}))

	assert.Equal(t, "", nav.RawQuery())
	assert.Equal(t, 1, nav.Replacements())
	assert.Empty(t, st.Filters().Tags)
}

func TestStateExplicitlyEmptyListResolvesToDefault(t *testing.T) {
	st := NewState(sampleSchema, NewMemoryNavigator("tags="))

	tags := st.Filters().Tags
	assert.NotNil(t, tags)
	assert.Empty(t, tags)
}

func TestStateRejectsUnknownKeyWithoutWriting(t *testing.T) {
	nav := NewMemoryNavigator("status=ACTIVE")
	st := NewState(sampleSchema, nav)

	err := st.SetFilters(map[string]Value{
		"status": Scalar("INACTIVE"),
		"nope":   Scalar("x"),
	})

	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.Equal(t, 0, nav.Replacements())
	assert.Equal(t, "ACTIVE", *st.Filters().Status)
}

func TestStateRejectsKindMismatch(t *testing.T) {
	st := NewState(sampleSchema, NewMemoryNavigator(""))

	assert.ErrorIs(t, st.SetFilter("tags", Scalar("a")), ErrKindMismatch)
	assert.ErrorIs(t, st.SetFilter("status", Values("a")), ErrKindMismatch)
}

func TestStateResetKeepsForeignParams(t *testing.T) {
	nav := NewMemoryNavigator("?status=ACTIVE&tags=a&tab=history")
	st := NewState(sampleSchema, nav)

	st.ResetFilters()

	assert.Equal(t, "tab=history", nav.RawQuery())
	assert.Equal(t, "all", *st.Filters().Status)
}

func TestStateResetSingleFilter(t *testing.T) {
	nav := NewMemoryNavigator("status=ACTIVE&search=x")
	st := NewState(sampleSchema, nav)

	require.NoError(t, st.ResetFilter("search"))
	assert.Equal(t, "status=ACTIVE", nav.RawQuery())
	assert.ErrorIs(t, st.ResetFilter("nope"), ErrUnknownKey)
}

func TestStateFiltersAreIndependentCopies(t *testing.T) {
	st := NewState(sampleSchema, NewMemoryNavigator("tags=a,b"))

	first := st.Filters()
	first.Tags[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, st.Filters().Tags)
}

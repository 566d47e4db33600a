package queryfilter

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleFilter struct {
	Status *string
	Search *string
	Tags   []string
}

var sampleSchema = New(
	String("status", "all", func(f *sampleFilter) **string { return &f.Status }),
	String("search", "", func(f *sampleFilter) **string { return &f.Search }),
	List("tags", []string{}, func(f *sampleFilter) *[]string { return &f.Tags }),
)

func TestDecodeDefaults(t *testing.T) {
	f := sampleSchema.Defaults()

	require.NotNil(t, f.Status)
	assert.Equal(t, "all", *f.Status)
	require.NotNil(t, f.Search)
	assert.Equal(t, "", *f.Search)
	assert.NotNil(t, f.Tags)
	assert.Empty(t, f.Tags)
}

func TestDecodeSplitsListsAndKeepsEmptyScalars(t *testing.T) {
	q, err := url.ParseQuery("status=&tags=a,b,,c&search=forklift")
	require.NoError(t, err)

	f := sampleSchema.Decode(q)

	assert.Equal(t, "", *f.Status)
	assert.Equal(t, "forklift", *f.Search)
	assert.Equal(t, []string{"a", "b", "c"}, f.Tags)
}

func TestDecodeEmptyListParamFallsBackToDefault(t *testing.T) {
	schema := New(
		List("tags", []string{"x"}, func(f *sampleFilter) *[]string { return &f.Tags }),
	)
	q, err := url.ParseQuery("tags=")
	require.NoError(t, err)

	assert.Equal(t, []string{"x"}, schema.Decode(q).Tags)
}

func TestDeltaOnlyCarriesPresentKeys(t *testing.T) {
	q, err := url.ParseQuery("tags=&search=abc")
	require.NoError(t, err)

	d := sampleSchema.Delta(q)

	assert.Nil(t, d.Status)
	require.NotNil(t, d.Search)
	assert.Equal(t, "abc", *d.Search)
	assert.NotNil(t, d.Tags)
	assert.Empty(t, d.Tags)
}

func TestMergeOverridesOnlySetFields(t *testing.T) {
	base := sampleFilter{Status: Ptr("ACTIVE"), Search: Ptr("old"), Tags: []string{"a"}}
	delta := sampleFilter{Search: Ptr("new")}

	merged := sampleSchema.Merge(base, delta)

	assert.Equal(t, "ACTIVE", *merged.Status)
	assert.Equal(t, "new", *merged.Search)
	assert.Equal(t, []string{"a"}, merged.Tags)
	assert.Equal(t, "old", *base.Search, "base must not change")
}

func TestMergeEmptyListClears(t *testing.T) {
	base := sampleFilter{Tags: []string{"a", "b"}}
	merged := sampleSchema.Merge(base, sampleFilter{Tags: []string{}})

	assert.Empty(t, merged.Tags)
	assert.Equal(t, []string{"a", "b"}, base.Tags)
}

func TestMergeDoesNotAliasBase(t *testing.T) {
	base := sampleFilter{Status: Ptr("ACTIVE"), Tags: []string{"a"}}
	merged := sampleSchema.Merge(base, sampleFilter{})

	*merged.Status = "INACTIVE"
	merged.Tags[0] = "z"

	assert.Equal(t, "ACTIVE", *base.Status)
	assert.Equal(t, "a", base.Tags[0])
}

func TestQueryStringElidesUnconstrainedValues(t *testing.T) {
	f := sampleFilter{Status: Ptr("all"), Search: Ptr(""), Tags: []string{}}
	assert.Equal(t, "", sampleSchema.QueryString(f))

	f = sampleFilter{Status: Ptr("ACTIVE"), Tags: []string{"a", "b"}}
	assert.Equal(t, "?status=ACTIVE&tags=a%2Cb", sampleSchema.QueryString(f))
}

func TestEncodeAgreesWithActive(t *testing.T) {
	for _, v := range []string{"", "all", "any", "ACTIVE"} {
		f := sampleFilter{Status: Ptr(v)}
		_, active := Active(f.Status)
		assert.Equal(t, active, sampleSchema.Encode(f).Has("status"), "status=%q", v)
	}
}

func TestActive(t *testing.T) {
	_, ok := Active(nil)
	assert.False(t, ok)
	_, ok = Active(Ptr("all"))
	assert.False(t, ok)
	_, ok = Active(Ptr(""))
	assert.False(t, ok)

	v, ok := Active(Ptr("SAFETY"))
	assert.True(t, ok)
	assert.Equal(t, "SAFETY", v)

	items, ok := ActiveList([]string{" ", "a"})
	assert.True(t, ok)
	assert.Equal(t, []string{"a"}, items)
}

package frozen

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfCopiesInput(t *testing.T) {
	src := []string{"safety", "forklift"}
	l := Of(src...)

	src[0] = "mutated"

	assert.Equal(t, "safety", l.At(0))
	assert.Equal(t, 2, l.Len())
}

func TestSliceReturnsCopy(t *testing.T) {
	l := Of("a", "b")

	out := l.Slice()
	out[0] = "z"
	out = append(out, "c")

	assert.Equal(t, []string{"a", "b"}, l.Slice())
	assert.Equal(t, 2, l.Len())
}

func TestWithLeavesReceiverUntouched(t *testing.T) {
	base := Of("a")
	next := base.With("b")

	assert.Equal(t, []string{"a"}, base.Slice())
	assert.Equal(t, []string{"a", "b"}, next.Slice())
}

func TestZeroListMarshalsAsEmptyArray(t *testing.T) {
	var l List[string]
	data, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
	assert.Equal(t, []string{}, l.Slice())
}

func TestJSONRoundTrip(t *testing.T) {
	type doc struct {
		Tags List[string] `json:"tags"`
	}
	var d doc
	require.NoError(t, json.Unmarshal([]byte(`{"tags":["x","y"]}`), &d))
	assert.True(t, Contains(d.Tags, "y"))
	assert.True(t, Equal(d.Tags, Of("x", "y")))

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tags":["x","y"]}`, string(data))
}

func TestAllStopsEarly(t *testing.T) {
	l := Of(1, 2, 3)
	var seen []int
	for _, v := range l.All() {
		seen = append(seen, v)
		if v == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, seen)
}

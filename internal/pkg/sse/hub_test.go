package sse

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesOnlyThatUser(t *testing.T) {
	h := NewHub()
	a, cleanA := h.Subscribe("a")
	defer cleanA()
	b, cleanB := h.Subscribe("b")
	defer cleanB()

	h.Publish("a", Event{Event: "signed_out"})

	got := <-a
	assert.Equal(t, "a", got.UserID)
	assert.Equal(t, "signed_out", got.Event)
	assert.Empty(t, b)
}

func TestBroadcastReachesEveryStream(t *testing.T) {
	h := NewHub()
	a1, c1 := h.Subscribe("a")
	defer c1()
	a2, c2 := h.Subscribe("a")
	defer c2()
	b, c3 := h.Subscribe("b")
	defer c3()
	assert.Equal(t, 3, h.TotalSubscribers())

	h.Broadcast(Event{Event: "change", Data: map[string]string{"entity_type": "program"}})

	assert.Equal(t, "a", (<-a1).UserID)
	assert.Equal(t, "a", (<-a2).UserID)
	assert.Equal(t, "b", (<-b).UserID)
}

func TestFullSubscriberDropsEvents(t *testing.T) {
	h := NewHub()
	ch, cleanup := h.Subscribe("a")
	defer cleanup()

	for i := 0; i < h.buffer+5; i++ {
		h.Publish("a", Event{Event: "change"})
	}
	assert.Len(t, ch, h.buffer)
}

func TestCleanupIsIdempotent(t *testing.T) {
	h := NewHub()
	ch, cleanup := h.Subscribe("a")

	cleanup()
	cleanup()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, h.TotalSubscribers())
}

func TestCloseEndsStreams(t *testing.T) {
	h := NewHub()
	ch, cleanup := h.Subscribe("a")

	h.Close()
	cleanup()

	_, open := <-ch
	assert.False(t, open)

	late, _ := h.Subscribe("b")
	_, open = <-late
	assert.False(t, open)
}

func TestEventFrame(t *testing.T) {
	var buf bytes.Buffer
	_, err := Event{Event: "change", Data: map[string]string{"op": "CreateProgram"}}.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "event: change\ndata: {\"op\":\"CreateProgram\"}\n\n", buf.String())
}

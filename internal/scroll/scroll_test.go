package scroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingScroller struct {
	requests []Request
}

func (r *recordingScroller) ScrollTo(req Request) {
	r.requests = append(r.requests, req)
}

func newTestCoordinator(verses ...int) (*Coordinator, *recordingScroller) {
	reg := NewRegistry()
	for _, v := range verses {
		reg.Register(v, v*10)
	}
	s := &recordingScroller{}
	return NewCoordinator(reg, s, nil), s
}

func TestCoordinator_ScrollsRegisteredVerse(t *testing.T) {
	c, s := newTestCoordinator(0, 1, 2)

	c.OnVerseChanged(1)

	require.Len(t, s.requests, 1)
	assert.Equal(t, Request{Verse: 1, Handle: 10, Smooth: true, Center: true}, s.requests[0])
	assert.Equal(t, 1, c.Active())
	assert.True(t, c.IsActive(1))
	assert.False(t, c.IsActive(0))
}

func TestCoordinator_DeduplicatesSameIndex(t *testing.T) {
	c, s := newTestCoordinator(0, 1, 2)

	c.OnVerseChanged(2)
	c.OnVerseChanged(2)
	c.OnVerseChanged(1)
	c.OnVerseChanged(2)

	got := make([]int, 0, len(s.requests))
	for _, r := range s.requests {
		got = append(got, r.Verse)
	}
	assert.Equal(t, []int{2, 1, 2}, got)
}

func TestCoordinator_DropsUnregistered(t *testing.T) {
	c, s := newTestCoordinator(0)

	c.OnVerseChanged(5)
	assert.Empty(t, s.requests)
	assert.Equal(t, 5, c.Active(), "highlight follows the verse even when not rendered")

	// Registering later does not replay the dropped request.
	c.Registry().Register(5, 50)
	c.OnVerseChanged(5)
	assert.Empty(t, s.requests)
}

func TestCoordinator_ClearAndReset(t *testing.T) {
	c, s := newTestCoordinator(0, 1)

	c.OnVerseChanged(0)
	c.OnVerseChanged(-1)
	assert.Equal(t, -1, c.Active())
	assert.False(t, c.IsActive(-1))

	c.OnVerseChanged(0)
	assert.Len(t, s.requests, 2, "verse 0 scrolls again after the pointer was cleared")

	c.Reset()
	c.OnVerseChanged(0)
	assert.Len(t, s.requests, 3)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(3, "a")
	r.Register(3, "b")
	r.Register(4, "c")

	h, ok := r.Lookup(3)
	require.True(t, ok)
	assert.Equal(t, "b", h)
	assert.Equal(t, 2, r.Len())

	r.Unregister(3)
	_, ok = r.Lookup(3)
	assert.False(t, ok)

	r.Clear()
	assert.Equal(t, 0, r.Len())
}

// Package scroll keeps the active verse highlighted and in view while a
// recitation plays.
package scroll

import (
	"log/slog"
)

// Handle is an opaque scroll target supplied by the rendering layer.
type Handle any

// Request asks the rendering layer to bring a verse into view.
type Request struct {
	Verse  int
	Handle Handle
	Smooth bool
	Center bool
}

// Scroller performs scroll requests.
type Scroller interface {
	ScrollTo(req Request)
}

// Registry maps verse indexes to the scroll handles of rendered verses.
type Registry struct {
	handles map[int]Handle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handles: make(map[int]Handle)}
}

// Register associates verse with h, replacing any previous handle.
func (r *Registry) Register(verse int, h Handle) {
	r.handles[verse] = h
}

// Unregister forgets verse.
func (r *Registry) Unregister(verse int) {
	delete(r.handles, verse)
}

// Lookup returns the handle of verse.
func (r *Registry) Lookup(verse int) (Handle, bool) {
	h, ok := r.handles[verse]
	return h, ok
}

// Clear forgets all verses.
func (r *Registry) Clear() {
	clear(r.handles)
}

// Len returns the number of registered verses.
func (r *Registry) Len() int {
	return len(r.handles)
}

// Coordinator turns verse pointer changes into scroll requests and tracks
// which verse is highlighted.
type Coordinator struct {
	registry *Registry
	scroller Scroller
	log      *slog.Logger

	prev   int
	active int
}

// NewCoordinator creates a coordinator with no active verse.
func NewCoordinator(registry *Registry, scroller Scroller, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Coordinator{
		registry: registry,
		scroller: scroller,
		log:      log,
		prev:     -1,
		active:   -1,
	}
}

// OnVerseChanged highlights verse i and scrolls it to the center of the
// view. Repeated calls for the same index are ignored. A negative index
// clears the highlight. Verses without a registered handle are not scrolled
// and the request is not retried.
func (c *Coordinator) OnVerseChanged(i int) {
	if i == c.prev {
		return
	}
	c.prev = i

	if i < 0 {
		c.active = -1
		return
	}
	c.active = i

	h, ok := c.registry.Lookup(i)
	if !ok {
		c.log.Debug("verse not rendered, scroll dropped", "verse", i)
		return
	}
	c.scroller.ScrollTo(Request{Verse: i, Handle: h, Smooth: true, Center: true})
}

// Active returns the highlighted verse, -1 if none.
func (c *Coordinator) Active() int {
	return c.active
}

// IsActive reports whether verse i is highlighted.
func (c *Coordinator) IsActive(i int) bool {
	return i >= 0 && i == c.active
}

// Reset clears the highlight and the dedup state.
func (c *Coordinator) Reset() {
	c.prev = -1
	c.active = -1
}

// Registry returns the handle registry.
func (c *Coordinator) Registry() *Registry {
	return c.registry
}

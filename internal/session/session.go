// Package session binds the playback engine to one open chapter at a time.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/llehouerou/tilawa/internal/playback"
	"github.com/llehouerou/tilawa/internal/quran"
	"github.com/llehouerou/tilawa/internal/scroll"
)

// Loader fetches chapter detail.
type Loader interface {
	Chapter(ctx context.Context, n int) (*quran.Chapter, error)
}

// Store persists the last opened chapter.
type Store interface {
	SetLastChapter(n int) error
}

// Status is the load status of the open chapter.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusNotFound
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusLoading:
		return "Loading"
	case StatusReady:
		return "Ready"
	case StatusNotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

// Load identifies one fetch started by Open.
type Load struct {
	Version uint64
	Chapter int
}

// Result is the outcome of a Load.
type Result struct {
	Load
	Data *quran.Chapter
	Err  error
}

// Controller owns the open chapter. Open, Apply and the accessors must be
// called from the event loop; Fetch may run on any goroutine.
type Controller struct {
	loader  Loader
	store   Store
	machine *playback.Machine
	scroll  *scroll.Coordinator
	log     *slog.Logger

	version uint64
	id      int
	chapter *quran.Chapter
	status  Status
	title   string
	err     error
}

// New creates a controller with no open chapter.
func New(loader Loader, store Store, machine *playback.Machine, sc *scroll.Coordinator, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		loader:  loader,
		store:   store,
		machine: machine,
		scroll:  sc,
		log:     log,
	}
}

// Open switches to chapter id: results of earlier loads become stale,
// playback and highlight are reset and the controller enters Loading. The
// returned Load must be passed to Fetch.
func (c *Controller) Open(id int) Load {
	c.version++
	c.id = id
	c.chapter = nil
	c.title = ""
	c.err = nil
	c.status = StatusLoading

	c.machine.SetChapter(nil)
	c.scroll.Reset()
	c.scroll.Registry().Clear()

	c.log.Debug("opening chapter", "chapter", id, "version", c.version)
	return Load{Version: c.version, Chapter: id}
}

// Fetch loads the chapter for l. It does not touch controller state.
func (c *Controller) Fetch(ctx context.Context, l Load) Result {
	ch, err := c.loader.Chapter(ctx, l.Chapter)
	return Result{Load: l, Data: ch, Err: err}
}

// Apply installs r if it belongs to the latest Open and reports whether it
// did. Failures leave the chapter absent and are not retried.
func (c *Controller) Apply(r Result) bool {
	if r.Version != c.version {
		c.log.Debug("discarding stale chapter", "chapter", r.Chapter, "version", r.Version, "current", c.version)
		return false
	}

	if r.Err != nil || r.Data == nil {
		c.status = StatusNotFound
		c.err = r.Err
		c.log.Warn("chapter not found", "chapter", r.Chapter, "err", r.Err)
		return true
	}

	c.chapter = r.Data
	c.status = StatusReady
	c.title = Title(r.Data)
	c.machine.SetChapter(r.Data)

	if err := c.store.SetLastChapter(r.Chapter); err != nil {
		c.log.Warn("save last chapter", "chapter", r.Chapter, "err", err)
	}
	return true
}

// Title is the page title for ch.
func Title(ch *quran.Chapter) string {
	return fmt.Sprintf("%s (%s) — The Noble Quran", ch.Name, ch.NameArabic)
}

// ID returns the open chapter identifier, 0 if none.
func (c *Controller) ID() int { return c.id }

// Version returns the current load version.
func (c *Controller) Version() uint64 { return c.version }

// Chapter returns the loaded chapter, nil while loading or not found.
func (c *Controller) Chapter() *quran.Chapter { return c.chapter }

// Status returns the load status.
func (c *Controller) Status() Status { return c.status }

// Title returns the page title, empty until the chapter is loaded.
func (c *Controller) Title() string { return c.title }

// Err returns the error of a failed load.
func (c *Controller) Err() error { return c.err }

// Previous returns the preceding chapter, false at the first one.
func (c *Controller) Previous() (int, bool) {
	if c.id <= 1 || c.id > quran.ChapterCount {
		return 0, false
	}
	return c.id - 1, true
}

// Next returns the following chapter, false at the last one.
func (c *Controller) Next() (int, bool) {
	if c.id < 1 || c.id >= quran.ChapterCount {
		return 0, false
	}
	return c.id + 1, true
}

// ShowsBismillah reports whether the opening formula is shown above the
// verses. Al-Fatiha carries it as its first verse and At-Tawbah omits it.
func (c *Controller) ShowsBismillah() bool {
	return c.chapter != nil && c.chapter.Number != 1 && c.chapter.Number != 9
}

// DownloadURL returns the audio URL of the selected narrator, falling back
// to the first narrator.
func (c *Controller) DownloadURL() (string, bool) {
	_, url, err := playback.ResolveOrDefault(c.chapter, c.machine.Snapshot().Narrator)
	if err != nil {
		return "", false
	}
	return url, true
}

// Package playback keeps an audio element's position in sync with the verse
// being recited: it resolves tracks, estimates the current verse and owns the
// player state machine.
package playback

import (
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/llehouerou/tilawa/internal/player"
	"github.com/llehouerou/tilawa/internal/quran"
)

// DefaultSkip is the skip forward/back step.
const DefaultSkip = 10 * time.Second

// VerseObserver is told about every verse pointer change. i is NoVerse when
// the pointer is cleared.
type VerseObserver interface {
	OnVerseChanged(i int)
}

// Option configures a Machine.
type Option func(*Machine)

// WithEstimator replaces the proportional verse estimator.
func WithEstimator(e Estimator) Option {
	return func(m *Machine) { m.estimator = e }
}

// WithSkip sets the skip step. Non-positive values are ignored.
func WithSkip(d time.Duration) Option {
	return func(m *Machine) {
		if d > 0 {
			m.skip = d
		}
	}
}

// WithObserver sets the verse observer, typically the scroll coordinator.
func WithObserver(o VerseObserver) Option {
	return func(m *Machine) { m.observer = o }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) { m.log = l }
}

// WithNarrator sets the initially selected narrator.
func WithNarrator(id string) Option {
	return func(m *Machine) { m.ps.Narrator = id }
}

// Machine is the player state machine. It is the only component that mutates
// the audio element. It is not safe for concurrent use: all calls must come
// from the same event loop.
type Machine struct {
	player    player.Interface
	estimator Estimator
	observer  VerseObserver
	skip      time.Duration
	log       *slog.Logger

	chapter *quran.Chapter
	state   State
	ps      PlaybackState
	source  string // URL handed to the element, "" when none

	subs []*Subscription
}

// NewMachine creates a machine driving p.
func NewMachine(p player.Interface, opts ...Option) *Machine {
	m := &Machine{
		player:    p,
		estimator: Proportional{},
		skip:      DefaultSkip,
		ps:        DefaultState(""),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = slog.New(slog.DiscardHandler)
	}
	return m
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Snapshot returns a copy of the playback state.
func (m *Machine) Snapshot() PlaybackState { return m.ps }

// Chapter returns the bound chapter, nil if none.
func (m *Machine) Chapter() *quran.Chapter { return m.chapter }

// Skip returns the skip step.
func (m *Machine) Skip() time.Duration { return m.skip }

// SetChapter binds ch and resets playback. The narrator selection is kept;
// it is resolved against ch on the next play.
func (m *Machine) SetChapter(ch *quran.Chapter) {
	m.Stop()
	m.chapter = ch
}

// LoadAndPlay loads the selected narrator's track from the start and plays
// it. When the chapter has no track at all the call is a no-op.
func (m *Machine) LoadAndPlay() {
	id, url, err := ResolveOrDefault(m.chapter, m.ps.Narrator)
	if err != nil {
		m.log.Debug("no track to play", "narrator", m.ps.Narrator, "err", err)
		return
	}
	if id != m.ps.Narrator {
		m.log.Info("narrator unavailable, using default", "requested", m.ps.Narrator, "narrator", id)
		m.ps.Narrator = id
	}

	if url == m.source {
		m.player.SetCurrentTime(0)
	} else {
		m.player.SetSource(url)
		m.source = url
		m.ps.Duration = 0
	}
	m.player.SetVolume(m.ps.EffectiveVolume())

	if err := m.player.Play(); err != nil {
		m.fail("play", err)
		return
	}

	m.ps.IsPlaying = true
	m.ps.CurrentTime = 0
	m.setState(StateLoading)
	m.setVerse(0, true)
}

// TogglePlay pauses when playing, resumes when paused on a loaded track, and
// otherwise loads and plays.
func (m *Machine) TogglePlay() {
	switch m.state {
	case StatePlaying, StateLoading:
		m.player.Pause()
		m.ps.IsPlaying = false
		m.setState(StatePaused)
	case StatePaused:
		if !m.ps.HasVerse() || m.source == "" {
			m.LoadAndPlay()
			return
		}
		if err := m.player.Play(); err != nil {
			m.fail("play", err)
			return
		}
		m.ps.IsPlaying = true
		m.setState(StatePlaying)
	case StateIdle, StateEnded:
		m.LoadAndPlay()
	}
}

// Seek moves to t clamped to [0, duration]. It does not change whether the
// track is playing.
func (m *Machine) Seek(t time.Duration) {
	t = max(0, min(t, m.ps.Duration))
	m.ps.CurrentTime = t
	if m.source != "" {
		m.player.SetCurrentTime(t)
	}
}

// SeekFraction seeks to a fraction of the duration. Non-finite fractions are
// ignored.
func (m *Machine) SeekFraction(f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return
	}
	f = max(0, min(f, 1))
	m.Seek(time.Duration(f * float64(m.ps.Duration)))
}

// SkipForward seeks forward by the skip step.
func (m *Machine) SkipForward() {
	m.Seek(m.ps.CurrentTime + m.skip)
}

// SkipBack seeks back by the skip step.
func (m *Machine) SkipBack() {
	m.Seek(m.ps.CurrentTime - m.skip)
}

// SetNarrator selects a narrator. Switching narrators stops playback and
// resets the track state.
func (m *Machine) SetNarrator(id string) {
	if id == m.ps.Narrator {
		return
	}
	m.Stop()
	m.ps.Narrator = id
}

// SetVolume sets the volume in [0, 1] and unmutes.
func (m *Machine) SetVolume(v float64) {
	if math.IsNaN(v) {
		return
	}
	m.ps.Volume = max(0, min(v, 1))
	m.ps.Muted = false
	m.player.SetVolume(m.ps.EffectiveVolume())
}

// ToggleMute toggles mute without touching the volume level.
func (m *Machine) ToggleMute() {
	m.ps.Muted = !m.ps.Muted
	m.player.SetVolume(m.ps.EffectiveVolume())
}

// SetMuted sets the mute flag.
func (m *Machine) SetMuted(muted bool) {
	if m.ps.Muted != muted {
		m.ToggleMute()
	}
}

// ToggleRepeat toggles chapter repeat.
func (m *Machine) ToggleRepeat() {
	m.ps.Repeat = !m.ps.Repeat
}

// Stop halts playback, detaches the track and returns to Idle.
func (m *Machine) Stop() {
	if m.source != "" {
		m.player.Pause()
		m.player.SetSource("")
		m.source = ""
	}
	m.setVerse(NoVerse, false)
	m.ps.resetTrack()
	m.setState(StateIdle)
}

// HandleEvent processes an audio element event. Events from a source other
// than the current one are ignored.
func (m *Machine) HandleEvent(e player.Event) {
	if m.source == "" || e.Source != m.source {
		return
	}

	switch e.Type {
	case player.EventTimeUpdate:
		m.onTimeUpdate(e.Time)
	case player.EventLoadedMetadata, player.EventDurationChange:
		if e.Duration >= 0 {
			m.ps.Duration = e.Duration
		}
	case player.EventPlaying:
		if m.state == StateLoading {
			m.setState(StatePlaying)
		}
	case player.EventEnded:
		m.onEnded()
	case player.EventError:
		m.fail("load", e.Err)
	}
}

func (m *Machine) onTimeUpdate(t time.Duration) {
	switch m.state {
	case StateLoading:
		// First time update confirms playback.
		m.setState(StatePlaying)
	case StatePlaying, StatePaused:
	case StateIdle, StateEnded:
		return
	}

	m.ps.CurrentTime = max(0, t)
	if m.ps.Duration <= 0 || m.chapter == nil || m.chapter.TotalVerses <= 0 {
		return
	}
	v := m.estimator.Estimate(m.ps.CurrentTime, m.ps.Duration, m.chapter.TotalVerses)
	if v != NoVerse && v != m.ps.CurrentVerse {
		m.setVerse(v, true)
	}
}

func (m *Machine) onEnded() {
	if m.ps.Repeat {
		m.player.SetCurrentTime(0)
		if err := m.player.Play(); err != nil {
			m.fail("play", err)
			return
		}
		m.ps.CurrentTime = 0
		m.ps.IsPlaying = true
		m.setState(StatePlaying)
		m.setVerse(0, true)
		return
	}

	m.ps.IsPlaying = false
	m.setState(StateEnded)
	m.setVerse(NoVerse, false)
}

// fail resets to Idle after an element failure and publishes the error.
func (m *Machine) fail(op string, err error) {
	m.log.Error("playback failed", "op", op, "source", m.source, "err", err)
	source := m.source
	m.Stop()
	m.publishError(ErrorEvent{Operation: op, Source: source, Err: err})
}

func (m *Machine) setState(s State) {
	if s == m.state {
		return
	}
	prev := m.state
	m.state = s
	for _, sub := range m.subs {
		sub.sendState(StateChange{Previous: prev, Current: s})
	}
}

// setVerse moves the verse pointer. With force the observer is signalled
// even if the index is unchanged, so a restart always scrolls back to the top.
func (m *Machine) setVerse(v int, force bool) {
	prev := m.ps.CurrentVerse
	if v == prev && !force {
		return
	}
	m.ps.CurrentVerse = v
	if m.observer != nil {
		m.observer.OnVerseChanged(v)
	}
	if v != prev {
		for _, sub := range m.subs {
			sub.sendVerse(VerseChange{Previous: prev, Current: v})
		}
	}
}

func (m *Machine) publishError(e ErrorEvent) {
	for _, sub := range m.subs {
		sub.sendError(e)
	}
}

// Subscribe creates a new event subscription.
func (m *Machine) Subscribe() *Subscription {
	sub := newSubscription()
	m.subs = append(m.subs, sub)
	return sub
}

// Unsubscribe removes sub and signals its Done channel.
func (m *Machine) Unsubscribe(sub *Subscription) {
	m.subs = slices.DeleteFunc(m.subs, func(s *Subscription) bool { return s == sub })
	sub.close()
}

// Close stops playback and ends all subscriptions.
func (m *Machine) Close() {
	m.Stop()
	for _, sub := range m.subs {
		sub.close()
	}
	m.subs = nil
}

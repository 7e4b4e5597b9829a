package player

import "time"

// Mock is a test double for Player. It records calls and never produces
// events on its own; tests feed events with Emit or hand them straight to
// the consumer.
type Mock struct {
	src      string
	playing  bool
	position time.Duration
	duration time.Duration
	volume   float64
	playErr  error
	events   chan Event
	closed   bool

	SourceCalls []string
	PlayCalls   int
	PauseCalls  int
	SeekCalls   []time.Duration
	VolumeCalls []float64
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{
		volume: 1,
		events: make(chan Event, 64),
	}
}

func (m *Mock) SetSource(url string) {
	m.SourceCalls = append(m.SourceCalls, url)
	if url != m.src {
		m.src = url
		m.playing = false
		m.position = 0
		m.duration = 0
	}
}

func (m *Mock) Source() string { return m.src }

func (m *Mock) Play() error {
	m.PlayCalls++
	if m.playErr != nil {
		return m.playErr
	}
	if m.src == "" {
		return ErrNoSource
	}
	m.playing = true
	return nil
}

func (m *Mock) Pause() {
	m.PauseCalls++
	m.playing = false
}

func (m *Mock) SetCurrentTime(t time.Duration) {
	m.SeekCalls = append(m.SeekCalls, t)
	m.position = t
}

func (m *Mock) CurrentTime() time.Duration { return m.position }

func (m *Mock) Duration() time.Duration { return m.duration }

func (m *Mock) SetVolume(level float64) {
	m.VolumeCalls = append(m.VolumeCalls, level)
	m.volume = level
}

func (m *Mock) Volume() float64 { return m.volume }

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Close() error {
	if !m.closed {
		m.closed = true
		close(m.events)
	}
	return nil
}

// Test helpers

// IsPlaying reports whether Play was the last transport call.
func (m *Mock) IsPlaying() bool { return m.playing }

// SetPlayError makes subsequent Play calls fail.
func (m *Mock) SetPlayError(err error) { m.playErr = err }

// SetDuration sets the reported duration.
func (m *Mock) SetDuration(d time.Duration) { m.duration = d }

// SetPosition sets the reported position without recording a seek.
func (m *Mock) SetPosition(t time.Duration) { m.position = t }

// LastVolume returns the most recent SetVolume argument, or -1 if none.
func (m *Mock) LastVolume() float64 {
	if len(m.VolumeCalls) == 0 {
		return -1
	}
	return m.VolumeCalls[len(m.VolumeCalls)-1]
}

// Emit queues e on the events channel, stamping the current source.
func (m *Mock) Emit(e Event) {
	if e.Source == "" {
		e.Source = m.src
	}
	m.events <- e
}

var _ Interface = (*Mock)(nil)

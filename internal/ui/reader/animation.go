package reader

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const frameInterval = 16 * time.Millisecond

// FrameMsg advances a smooth scroll by one step.
type FrameMsg struct{}

// animation eases the offset toward target, covering a third of the
// remaining distance per frame.
type animation struct {
	running   bool
	scheduled bool
	target    int
}

func (a *animation) start(target int) {
	a.running = true
	a.target = target
}

func (a *animation) stop() {
	a.running = false
}

func step(offset, target int) int {
	d := target - offset
	switch {
	case d == 0:
		return offset
	case d > 0:
		return offset + max(d/3, 1)
	default:
		return offset + min(d/3, -1)
	}
}

// Animating reports whether a smooth scroll is in progress.
func (m *Model) Animating() bool {
	return m.anim.running
}

// NextFrame schedules the next animation frame if one is needed and none is
// pending.
func (m *Model) NextFrame() tea.Cmd {
	if !m.anim.running || m.anim.scheduled {
		return nil
	}
	m.anim.scheduled = true
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return FrameMsg{} })
}

// HandleFrame advances the animation and schedules the following frame.
func (m *Model) HandleFrame(FrameMsg) tea.Cmd {
	m.anim.scheduled = false
	if !m.anim.running {
		return nil
	}
	m.offset = step(m.offset, m.anim.target)
	if m.offset == m.anim.target {
		m.anim.stop()
		return nil
	}
	return m.NextFrame()
}

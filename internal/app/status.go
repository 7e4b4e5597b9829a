package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const statusTimeout = 4 * time.Second

type statusKind int

const (
	statusInfo statusKind = iota
	statusError
)

// statusLine is the transient message under the player bar.
type statusLine struct {
	text string
	kind statusKind
	seq  int
}

func (s *statusLine) set(text string, kind statusKind) tea.Cmd {
	s.text = text
	s.kind = kind
	s.seq++
	seq := s.seq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return StatusClearMsg{Seq: seq}
	})
}

func (s *statusLine) clear(seq int) {
	if seq == s.seq {
		s.text = ""
	}
}

func (m *Model) info(text string) tea.Cmd {
	return m.status.set(text, statusInfo)
}

func (m *Model) fail(text string) tea.Cmd {
	m.log.Debug("status error", "msg", text)
	return m.status.set(text, statusError)
}

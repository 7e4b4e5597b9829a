// Package playerbar renders the transport bar shown under the reader.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/tilawa/internal/icons"
	"github.com/llehouerou/tilawa/internal/playback"
	"github.com/llehouerou/tilawa/internal/ui"
	"github.com/llehouerou/tilawa/internal/ui/render"
	"github.com/llehouerou/tilawa/internal/ui/styles"
)

// State holds everything needed to render the player bar.
type State struct {
	Status       playback.State
	Chapter      string
	Reciter      string
	Position     time.Duration
	Duration     time.Duration
	CurrentVerse int // playback.NoVerse when nothing is highlighted
	TotalVerses  int
	Volume       float64
	Muted        bool
	Repeat       bool
}

// NewState builds a State from the machine snapshot.
func NewState(m *playback.Machine, reciter string) State {
	ps := m.Snapshot()
	s := State{
		Status:       m.State(),
		Reciter:      reciter,
		Position:     ps.CurrentTime,
		Duration:     ps.Duration,
		CurrentVerse: ps.CurrentVerse,
		Volume:       ps.Volume,
		Muted:        ps.Muted,
		Repeat:       ps.Repeat,
	}
	if ch := m.Chapter(); ch != nil {
		s.Chapter = ch.Name
		s.TotalVerses = ch.TotalVerses
	}
	return s
}

// Height returns the total height of the player bar.
func Height() int {
	return ui.PlayerBarHeight
}

// FormatTime renders d as m:ss. Unknown or non-positive durations render
// as 0:00; minutes are not folded into hours.
func FormatTime(d time.Duration) string {
	if d <= 0 {
		return "0:00"
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// StatusText describes what is being recited.
func StatusText(s State) string {
	if s.CurrentVerse >= 0 && s.TotalVerses > 0 {
		return fmt.Sprintf("Ayah %d of %d", s.CurrentVerse+1, s.TotalVerses)
	}
	return "Tap play to listen"
}

// Render returns the player bar string for the given width.
func Render(s State, width int) string {
	innerWidth := max(width-6, 0) // border + padding

	controls := controlsLine(s)
	top := render.Row(titleLine(s, innerWidth-lipgloss.Width(controls)-1), controls, innerWidth)
	bottom := progressLine(s, innerWidth)

	return styles.PanelStyle(s.Status.IsActive()).
		Padding(0, 2).
		Width(max(width-2, 0)).
		Render(top + "\n" + bottom)
}

func statusIcon(st playback.State) string {
	switch st {
	case playback.StatePlaying:
		return icons.Pause()
	case playback.StateLoading:
		return icons.Loading()
	case playback.StateIdle, playback.StatePaused, playback.StateEnded:
		return icons.Play()
	}
	return icons.Play()
}

func titleLine(s State, width int) string {
	t := styles.T()
	title := icons.FormatChapter(s.Chapter)
	if s.Reciter != "" {
		title += "  " + icons.FormatReciter(s.Reciter)
	}
	title = render.TruncateEllipsis(title, max(width/2, 10))

	icon := lipgloss.NewStyle().Foreground(t.Primary).Render(statusIcon(s.Status))
	line := icon + "  " + t.S().Title.Render(title) + "  " + t.S().Muted.Render(StatusText(s))
	return ansi.Truncate(line, max(width, 0), "…")
}

func controlsLine(s State) string {
	t := styles.T()
	var parts []string

	if s.Repeat {
		parts = append(parts, lipgloss.NewStyle().Foreground(t.Primary).Render(icons.Repeat()))
	} else {
		parts = append(parts, t.S().Subtle.Render(icons.Repeat()))
	}

	pct := int(s.Volume*100 + 0.5)
	if s.Muted {
		pct = 0
	}
	parts = append(parts, t.S().Muted.Render(fmt.Sprintf("%s %3d%%", icons.Volume(s.Muted), pct)))

	return strings.Join(parts, "  ")
}

func progressLine(s State, width int) string {
	t := styles.T()
	pos := FormatTime(s.Position)
	dur := FormatTime(s.Duration)

	barWidth := width - lipgloss.Width(pos) - lipgloss.Width(dur) - 4
	if barWidth < ui.MinProgressBarWidth {
		return t.S().Muted.Render(pos + " / " + dur)
	}

	filled := filledCells(s.Position, s.Duration, barWidth)
	bar := lipgloss.NewStyle().Foreground(t.Primary).Render(strings.Repeat("━", filled)) +
		t.S().Subtle.Render(strings.Repeat("─", barWidth-filled))

	return t.S().Muted.Render(pos) + "  " + bar + "  " + t.S().Muted.Render(dur)
}

func filledCells(pos, dur time.Duration, width int) int {
	if dur <= 0 || pos <= 0 {
		return 0
	}
	return min(int(float64(width)*float64(pos)/float64(dur)), width)
}

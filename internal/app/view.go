package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tilawa/internal/icons"
	"github.com/llehouerou/tilawa/internal/keymap"
	"github.com/llehouerou/tilawa/internal/ui/overlay"
	"github.com/llehouerou/tilawa/internal/ui/playerbar"
	"github.com/llehouerou/tilawa/internal/ui/render"
	"github.com/llehouerou/tilawa/internal/ui/styles"
)

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	body := m.bodyHeight()
	var content string
	switch m.view {
	case ViewReader:
		content = m.reader.View(m.readerTitle(), m.spinner.View())
	case ViewList:
		content = m.list.View(m.spinner.View())
	}
	content = lipgloss.NewStyle().Height(body).MaxHeight(body).Render(content)

	var b strings.Builder
	b.WriteString(content)
	if m.playerVisible() {
		b.WriteString("\n")
		b.WriteString(playerbar.Render(m.playerState(), m.width))
	}
	b.WriteString("\n")
	b.WriteString(m.statusView())
	screen := b.String()

	if m.showHelp {
		box := overlay.Box("Key Bindings", m.help.View(), m.help.Footer())
		screen = overlay.Place(screen, box, m.width, m.height)
	}
	return screen
}

func (m Model) readerTitle() string {
	if title := m.session.Title(); title != "" {
		return title
	}
	return fmt.Sprintf("Surah %d", m.session.ID())
}

func (m Model) playerState() playerbar.State {
	return playerbar.NewState(m.machine, m.reciterName())
}

// statusView is the bottom line: a transient message or download progress,
// and a help hint.
func (m Model) statusView() string {
	t := styles.T()
	hint := t.S().Subtle.Render(m.keys.Hint(keymap.ActionHelp) + " help")

	if m.status.text != "" {
		style := t.S().Muted
		if m.status.kind == statusError {
			style = t.S().Error
		}
		text := render.Truncate(m.status.text, max(m.width-lipgloss.Width(hint)-1, 0))
		return render.Row(style.Render(text), hint, m.width)
	}

	var left string
	if m.downloading {
		left = m.spinner.View() + " " + icons.Download() + "Downloading..."
	}
	return render.Row(t.S().Muted.Render(left), hint, m.width)
}

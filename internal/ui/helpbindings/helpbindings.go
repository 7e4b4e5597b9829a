// Package helpbindings renders the scrollable key binding reference.
package helpbindings

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tilawa/internal/keymap"
	"github.com/llehouerou/tilawa/internal/ui"
	"github.com/llehouerou/tilawa/internal/ui/styles"
)

// contextLabels maps context names to display labels.
var contextLabels = map[string]string{
	"global":   "Global",
	"list":     "Chapter List",
	"reader":   "Reader",
	"playback": "Playback",
}

// Model holds the scroll state of the help popup.
type Model struct {
	ui.Base
	scrollOffset int
}

// New creates a help model.
func New() Model {
	return Model{}
}

// Reset scrolls back to the top.
func (m *Model) Reset() {
	m.scrollOffset = 0
}

// ScrollBy moves the visible window by delta lines.
func (m *Model) ScrollBy(delta int) {
	m.scrollOffset = min(max(m.scrollOffset+delta, 0), m.maxScroll())
}

// View renders the visible part of the bindings table.
func (m Model) View() string {
	lines := strings.Split(buildContent(), "\n")
	visible := m.visibleHeight()
	start := min(m.scrollOffset, len(lines))
	end := min(start+visible, len(lines))
	return strings.Join(lines[start:end], "\n")
}

// Footer returns the hint line for the popup.
func (m Model) Footer() string {
	if totalLines() <= m.visibleHeight() {
		return "?/esc close"
	}
	return "j/k scroll · ?/esc close"
}

func buildContent() string {
	t := styles.T()
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	headerStyle := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)

	keyWidth := 0
	for _, b := range keymap.Bindings {
		keyWidth = max(keyWidth, len(keysLabel(b)))
	}

	var sb strings.Builder
	for i, ctx := range keymap.Contexts() {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(headerStyle.Render(contextLabels[ctx]))
		sb.WriteString("\n")
		sb.WriteString(t.S().Subtle.Render(strings.Repeat("─", keyWidth+24)))
		sb.WriteString("\n")
		for _, b := range keymap.ByContext(ctx) {
			label := keysLabel(b)
			sb.WriteString(keyStyle.Render(label + strings.Repeat(" ", keyWidth-len(label))))
			sb.WriteString("  ")
			sb.WriteString(t.S().Base.Render(b.Description))
			sb.WriteString("\n")
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func keysLabel(b keymap.Binding) string {
	if n := len(b.Keys); n > 4 {
		return keymap.DisplayKey(b.Keys[0]) + "-" + keymap.DisplayKey(b.Keys[n-1])
	}
	keys := make([]string, len(b.Keys))
	for i, k := range b.Keys {
		keys[i] = keymap.DisplayKey(k)
	}
	return strings.Join(keys, ", ")
}

func totalLines() int {
	return strings.Count(buildContent(), "\n") + 1
}

func (m Model) visibleHeight() int {
	// popup chrome: border, title, gap, footer
	return max(m.Height()-8, 5)
}

func (m Model) maxScroll() int {
	return max(totalLines()-m.visibleHeight(), 0)
}

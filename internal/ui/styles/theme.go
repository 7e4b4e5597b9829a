// Package styles holds the colour palette and the lipgloss styles built
// from it.
package styles

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a palette. Styles derived from it are built once, on first use.
type Theme struct {
	Primary   lipgloss.Color // emerald: recited verse, focus, spinner
	Secondary lipgloss.Color // gold: headings, verse markers

	Text   lipgloss.Color
	Dim    lipgloss.Color
	Faint  lipgloss.Color
	Script lipgloss.Color // Arabic and Urdu lines

	CursorBg  lipgloss.Color
	RecitedBg lipgloss.Color
	Border    lipgloss.Color
	Error     lipgloss.Color

	once   sync.Once
	styles *Styles
}

// Styles are the text styles shared by the views.
type Styles struct {
	Base        lipgloss.Style
	Muted       lipgloss.Style
	Subtle      lipgloss.Style
	Title       lipgloss.Style
	Arabic      lipgloss.Style
	VerseNumber lipgloss.Style
	Highlight   lipgloss.Style // verse being recited
	Cursor      lipgloss.Style // selected list row
	Error       lipgloss.Style
}

var mushaf = Theme{
	Primary:   "#34d399",
	Secondary: "#e9b949",
	Text:      "#c0c0c0",
	Dim:       "#808080",
	Faint:     "#585858",
	Script:    "#e8e8e8",
	CursorBg:  "#303030",
	RecitedBg: "#123829",
	Border:    "#585858",
	Error:     "#ff5555",
}

// T returns the application theme.
func T() *Theme {
	return &mushaf
}

// S returns the styles for t.
func (t *Theme) S() *Styles {
	t.once.Do(func() {
		text := lipgloss.NewStyle().Foreground(t.Text)
		t.styles = &Styles{
			Base:        text,
			Muted:       lipgloss.NewStyle().Foreground(t.Dim),
			Subtle:      lipgloss.NewStyle().Foreground(t.Faint),
			Title:       text.Bold(true),
			Arabic:      lipgloss.NewStyle().Foreground(t.Script),
			VerseNumber: lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
			Highlight:   lipgloss.NewStyle().Background(t.RecitedBg).Foreground(t.Primary),
			Cursor:      lipgloss.NewStyle().Background(t.CursorBg).Foreground(t.Text),
			Error:       lipgloss.NewStyle().Foreground(t.Error),
		}
	})
	return t.styles
}

// PanelStyle is the rounded border of the player bar and popups. The border
// takes the primary colour while focused.
func PanelStyle(focused bool) lipgloss.Style {
	t := T()
	border := t.Border
	if focused {
		border = t.Primary
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}

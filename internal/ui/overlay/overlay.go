// Package overlay draws popups over a rendered screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/tilawa/internal/ui/styles"
)

// Box wraps content in a rounded border with a title and a footer hint.
func Box(title, content, footer string) string {
	t := styles.T()
	body := t.S().Title.Render(title) + "\n\n" + content
	if footer != "" {
		body += "\n\n" + t.S().Subtle.Render(footer)
	}
	return styles.PanelStyle(true).Padding(0, 2).Render(body)
}

// Place draws box centered on a width x height screen. Cells under the box
// are replaced; the rest of base is kept, styles included.
func Place(base, box string, width, height int) string {
	rows := strings.Split(base, "\n")
	for len(rows) < height {
		rows = append(rows, "")
	}

	boxRows := strings.Split(box, "\n")
	boxWidth := lipgloss.Width(box)
	top := max((height-len(boxRows))/2, 0)
	left := max((width-boxWidth)/2, 0)

	for i, line := range boxRows {
		y := top + i
		if y >= len(rows) {
			break
		}
		rows[y] = splice(rows[y], line, left, width)
	}
	return strings.Join(rows, "\n")
}

// splice writes over onto row starting at column col, keeping the row
// width-wide.
func splice(row, over string, col, width int) string {
	if w := ansi.StringWidth(row); w < width {
		row += strings.Repeat(" ", width-w)
	}
	end := min(col+ansi.StringWidth(over), width)
	out := ansi.Cut(row, 0, col) + ansi.Truncate(over, end-col, "")
	if end < width {
		out += ansi.Cut(row, end, width)
	}
	return out
}

// Package render holds the string helpers the views share. Widths are in
// terminal cells, not bytes.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Sanitize makes API text safe to print. Invalid UTF-8, control characters
// and bidi formatting marks are dropped, and no-break spaces become plain
// spaces so wrapping can break on them. Tabs are kept.
func Sanitize(s string) string {
	if clean(s) {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return r
		case r == '\u00a0':
			return ' '
		case r == utf8.RuneError, unicode.IsControl(r), isBidiMark(r):
			return -1
		}
		return r
	}, s)
}

func clean(s string) bool {
	for _, r := range s {
		if r == utf8.RuneError || r == '\u00a0' || isBidiMark(r) ||
			(r != '\t' && unicode.IsControl(r)) {
			return false
		}
	}
	return true
}

// isBidiMark reports explicit direction marks and embeddings. Terminals
// apply their own bidi handling; the marks only confuse width counting.
func isBidiMark(r rune) bool {
	switch {
	case r == '\u061c', r == '\u200e', r == '\u200f':
		return true
	case r >= '\u202a' && r <= '\u202e':
		return true
	case r >= '\u2066' && r <= '\u2069':
		return true
	}
	return false
}

// Truncate shortens s to maxWidth cells, ending in "..." when cut.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, "...")
}

// TruncateEllipsis shortens s to maxWidth cells, ending in "…" when cut.
// s may carry ANSI styling.
func TruncateEllipsis(s string, maxWidth int) string {
	return ansi.Truncate(s, max(maxWidth, 0), "…")
}

// Pad right-fills s with spaces up to width cells.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// TruncateAndPad returns s at exactly width cells.
func TruncateAndPad(s string, width int) string {
	return Pad(Truncate(s, width), width)
}

// Row puts left and right at the edges of a width-wide line, with at least
// one space between them.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Separator is a horizontal rule width cells long.
func Separator(width int) string {
	return strings.Repeat("─", max(width, 0))
}

// Wrap breaks s into lines no wider than width, preferring word boundaries.
// A non-positive width returns s as a single line.
func Wrap(s string, width int) []string {
	s = Sanitize(s)
	if width <= 0 || ansi.StringWidth(s) <= width {
		return []string{s}
	}
	return strings.Split(ansi.Wrap(s, width, ""), "\n")
}

// AlignRight pads s on the left so it ends at width. Right-to-left script
// is laid out this way so wrapped lines hug the right margin.
func AlignRight(s string, width int) string {
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}

// Center pads s on both sides to center it within width.
func Center(s string, width int) string {
	gap := width - ansi.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return strings.Repeat(" ", gap/2) + s + strings.Repeat(" ", gap-gap/2)
}

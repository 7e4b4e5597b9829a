package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Heading renders text in bold, fading from gold to emerald across its
// grapheme clusters.
func Heading(text string) string {
	t := T()
	clusters := graphemes(text)
	if len(clusters) == 0 {
		return ""
	}

	ramp := blend(t.Secondary, t.Primary, len(clusters))
	var b strings.Builder
	for i, c := range clusters {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(ramp[i]).Render(c))
	}
	return b.String()
}

func graphemes(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// blend returns n colours stepping from one to another in HCL space. A
// colour that is not "#rrggbb" is kept as is, since ANSI indexes cannot be
// blended.
func blend(from, to lipgloss.Color, n int) []lipgloss.Color {
	out := make([]lipgloss.Color, n)
	c1, err1 := colorful.Hex(string(from))
	c2, err2 := colorful.Hex(string(to))
	for i := range out {
		switch {
		case err1 != nil || err2 != nil:
			out[i] = from
		case n == 1:
			out[i] = lipgloss.Color(c1.Hex())
		default:
			out[i] = lipgloss.Color(c1.BlendHcl(c2, float64(i)/float64(n-1)).Clamped().Hex())
		}
	}
	return out
}

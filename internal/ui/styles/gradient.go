package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// neutral stands in for colors that are not "#rrggbb", such as ANSI indexes.
var neutral = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// Gradient colors each grapheme of text along a blend from one color to the
// other.
func Gradient(text string, from, to lipgloss.Color, bold bool) string {
	var clusters []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}

	var b strings.Builder
	for i, c := range blend(len(clusters), from, to) {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Bold(bold).Render(clusters[i]))
	}
	return b.String()
}

// blend returns n hex colors from from to to, interpolated in HCL so the
// steps look even.
func blend(n int, from, to lipgloss.Color) []string {
	if n == 0 {
		return nil
	}
	a, b := parse(from), parse(to)
	if n == 1 {
		return []string{a.Hex()}
	}
	out := make([]string, n)
	for i := range out {
		out[i] = a.BlendHcl(b, float64(i)/float64(n-1)).Clamped().Hex()
	}
	return out
}

func parse(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return neutral
	}
	return col
}

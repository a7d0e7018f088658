// Package popup renders modal boxes over the trainer view.
package popup

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/hifdh/internal/ui/styles"
)

// Popup is a modal component. View renders the content only; the caller
// frames and centers it with Box.
type Popup interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Popup, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Size says how much of the screen a popup takes.
type Size struct {
	WidthPct  int // 0 fits the content
	HeightPct int
	MaxWidth  int // 0 means the screen width
}

var (
	SizeLarge = Size{WidthPct: 80, HeightPct: 70} // history
	SizeAuto  = Size{}                            // help, inputs
)

// Box wraps content in a rounded border and centers it on the screen.
func Box(content string, screenW, screenH int, s Size) string {
	w, h := boxSize(content, screenW, screenH, s)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Border).
		Padding(1, 2).
		Width(w - 2).
		Height(h - 2).
		Render(content)
	return Center(box, screenW, screenH)
}

func boxSize(content string, screenW, screenH int, s Size) (w, h int) {
	if s.WidthPct > 0 {
		return screenW * s.WidthPct / 100, screenH * s.HeightPct / 100
	}
	w = lipgloss.Width(content) + 6 // border and horizontal padding
	if s.MaxWidth > 0 {
		w = min(w, s.MaxWidth)
	}
	h = lipgloss.Height(content) + 4
	return min(w, screenW-4), min(h, screenH-4)
}

// Message renders a small centered notice, such as an error, with a title
// above the body and a hint below it. Long body lines are truncated.
func Message(title, body, hint string, screenW, screenH int) string {
	t := styles.T()
	limit := max(screenW-8, 10)

	lines := []string{t.S().Title.Render(title), ""}
	for line := range strings.SplitSeq(body, "\n") {
		lines = append(lines, ansi.Truncate(line, limit, "…"))
	}
	lines = append(lines, "", t.S().Subtle.Render(hint))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	return Center(box, screenW, screenH)
}

// Center places a rendered box in the middle of the screen. The surrounding
// cells are blank so Compose treats them as transparent.
func Center(box string, screenW, screenH int) string {
	return lipgloss.Place(screenW, screenH, lipgloss.Center, lipgloss.Center, box)
}

// Compose draws overlay on top of base. Leading and trailing blanks of each
// overlay line let the base show through. Escape sequences are preserved on
// both sides.
func Compose(base, overlay string, width int) string {
	rows := strings.Split(base, "\n")
	for i, line := range strings.Split(overlay, "\n") {
		if i >= len(rows) {
			break
		}
		visible := strings.TrimRight(ansi.Strip(line), " ")
		start := len(visible) - len(strings.TrimLeft(visible, " "))
		if start == len(visible) {
			continue
		}
		end := ansi.StringWidth(visible)
		rows[i] = splice(rows[i], ansi.Cut(line, start, end), start, end, width)
	}
	return strings.Join(rows, "\n")
}

// splice replaces cells [start, end) of row with mid. A wide character cut
// in half on either side becomes blanks so columns stay aligned.
func splice(row, mid string, start, end, width int) string {
	if w := ansi.StringWidth(row); w < width {
		row += strings.Repeat(" ", width-w)
	}

	left := ansi.Cut(row, 0, start)
	left += strings.Repeat(" ", max(start-ansi.StringWidth(left), 0))
	if end >= width {
		return left + mid
	}

	right := ansi.Cut(row, end, width)
	want := width - end
	if over := ansi.StringWidth(right) - want; over > 0 {
		right = ansi.TruncateLeft(right, over, "")
	}
	pad := strings.Repeat(" ", max(want-ansi.StringWidth(right), 0))
	return left + mid + pad + right
}

package versepanel

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/hifdh/internal/icons"
	"github.com/llehouerou/hifdh/internal/quran"
	"github.com/llehouerou/hifdh/internal/ui"
	"github.com/llehouerou/hifdh/internal/ui/render"
	"github.com/llehouerou/hifdh/internal/ui/styles"
)

const keyColumnWidth = 8 // "114:6" plus marker

// View renders the verse panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	innerWidth := m.Width() - ui.BorderHeight
	listHeight := m.listHeight()

	content := m.renderHeader(innerWidth) + "\n" +
		render.Rule(innerWidth) + "\n" +
		m.renderVerseList(innerWidth, listHeight)

	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Render(content)
}

func (m Model) renderHeader(innerWidth int) string {
	if m.page == nil {
		return headerStyle().Render(render.Pad("No page loaded", innerWidth))
	}

	text := fmt.Sprintf("Page %d (%s–%s)", m.page.Number, m.page.FirstKey(), m.page.LastKey())
	missing := m.missingCount()
	if missing == 0 {
		return headerStyle().Render(render.Pad(render.Truncate(text, innerWidth), innerWidth))
	}

	right := fmt.Sprintf("%s %d without audio ", icons.Missing(), missing)
	rightWidth := lipgloss.Width(right)
	left := render.Pad(render.Truncate(text, max(innerWidth-rightWidth, 0)), max(innerWidth-rightWidth, 0))
	return headerStyle().Render(left) + missingStyle().Render(right)
}

func (m Model) renderVerseList(innerWidth, listHeight int) string {
	lines := make([]string, 0, listHeight)
	start, end := m.cursor.VisibleRange(m.verseCount(), listHeight)
	for idx := start; idx < end; idx++ {
		v, _ := m.page.Verse(idx)
		lines = append(lines, m.renderVerseLine(v, innerWidth))
	}
	for len(lines) < listHeight {
		lines = append(lines, strings.Repeat(" ", innerWidth))
	}
	return strings.Join(lines, "\n")
}

// renderVerseLine renders "▶ 2:255   <text>" with the text right-aligned,
// since the verse text reads right to left.
func (m Model) renderVerseLine(v quran.Verse, width int) string {
	prefix := "  "
	switch {
	case m.isSounding(v.Index):
		prefix = icons.Play() + " "
	case !v.HasAudio():
		prefix = icons.Missing() + " "
	}
	prefix = runewidth.FillRight(runewidth.Truncate(prefix, 2, ""), 2)

	key := runewidth.FillRight(v.Key, keyColumnWidth-2)
	textWidth := max(width-keyColumnWidth, 0)
	text := render.FitRight(render.Sanitize(v.Text), textWidth)

	return m.verseStyle(v).Render(prefix + key + text)
}

func (m Model) verseStyle(v quran.Verse) lipgloss.Style {
	isCursor := v.Index == m.cursor.Pos() && m.IsFocused()
	isSounding := m.isSounding(v.Index)
	inGroup := m.inGroup(v.Index)

	var style lipgloss.Style
	switch {
	case isSounding:
		style = playingStyle()
	case inGroup:
		style = groupStyle()
	case !v.HasAudio():
		style = dimmedStyle()
	default:
		style = verseStyle()
	}
	if isCursor {
		return cursorStyle().Inherit(style)
	}
	return style
}

func (m Model) isSounding(idx int) bool {
	return m.state.Status.IsActive() && m.state.SegmentVerse == idx
}

func (m Model) inGroup(idx int) bool {
	return m.state.Status.IsActive() && slices.Contains(m.state.Group, idx)
}

func (m Model) missingCount() int {
	n := 0
	for _, v := range m.page.Verses {
		if !v.HasAudio() {
			n++
		}
	}
	return n
}

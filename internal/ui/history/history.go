// Package history provides a popup listing recent page completions.
package history

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/hifdh/internal/quran"
	"github.com/llehouerou/hifdh/internal/sequence"
	"github.com/llehouerou/hifdh/internal/state"
	"github.com/llehouerou/hifdh/internal/ui"
	"github.com/llehouerou/hifdh/internal/ui/cursor"
	"github.com/llehouerou/hifdh/internal/ui/popup"
	"github.com/llehouerou/hifdh/internal/ui/render"
	"github.com/llehouerou/hifdh/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

// chrome is the popup height taken by title, summary, footer and borders.
const chrome = 10

// Summary counts pages over the whole mushaf.
type Summary struct {
	Memorized int // pages the user marked as known by heart
	Completed int // distinct pages played through at least once
}

// Model holds the state for the history popup.
type Model struct {
	ui.Base
	entries []state.Completion
	sum     Summary
	cursor  cursor.Cursor
	now     func() time.Time
}

// New creates a history popup showing entries, newest first.
func New(entries []state.Completion, sum Summary) *Model {
	return &Model{
		entries: entries,
		sum:     sum,
		cursor:  cursor.New(ui.ScrollMargin),
		now:     time.Now,
	}
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := keyMsg.String()
	switch key {
	case "H", "esc", "q":
		return m, func() tea.Msg { return ActionMsg(Close{}) }
	case "enter":
		if len(m.entries) == 0 {
			return m, nil
		}
		page := m.entries[m.cursor.Pos()].Page
		return m, func() tea.Msg { return ActionMsg(GotoPage{Page: page}) }
	}
	m.cursor.HandleKey(key, len(m.entries), m.visibleHeight())
	return m, nil
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	t := styles.T()
	var b strings.Builder
	b.WriteString(t.S().Title.Render("History"))
	b.WriteString("\n")
	b.WriteString(t.S().Muted.Render(m.summary()))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(t.S().Subtle.Render("No page completed yet"))
	} else {
		lines := make([]string, 0, m.visibleHeight())
		start, end := m.cursor.VisibleRange(len(m.entries), m.visibleHeight())
		for i := start; i < end; i++ {
			lines = append(lines, m.renderEntry(i))
		}
		b.WriteString(strings.Join(lines, "\n"))
	}

	b.WriteString("\n\n")
	b.WriteString(t.S().Subtle.Render("j/k move · enter open page · H/esc close"))
	return b.String()
}

func (m *Model) summary() string {
	return fmt.Sprintf("%d / %d pages memorized (%.1f%%) · %s completed",
		m.sum.Memorized, quran.MaxPage, Percent(m.sum.Memorized),
		humanize.Comma(int64(m.sum.Completed)))
}

// Percent is the share of the mushaf that n pages cover.
func Percent(n int) float64 {
	return float64(n) * 100 / quran.MaxPage
}

func (m *Model) renderEntry(i int) string {
	c := m.entries[i]

	mode := c.Mode
	if parsed, err := sequence.ParseMode(c.Mode); err == nil {
		mode = parsed.Label()
	}
	line := fmt.Sprintf("Page %-3d  %-9s ×%-2d  %s",
		c.Page, mode, c.Repetitions, humanize.RelTime(c.CompletedAt, m.now(), "ago", "from now"))
	if c.MissingAudio+c.Failures > 0 {
		line += fmt.Sprintf("  (%d skipped)", c.MissingAudio+c.Failures)
	}

	width := max(m.Width()-6, 20)
	line = render.Pad(render.Truncate(line, width), width)

	style := styles.T().S().Base
	if i == m.cursor.Pos() {
		style = styles.T().S().Cursor
	}
	return style.Render(line)
}

func (m *Model) visibleHeight() int {
	return max(m.Height()-chrome, 3)
}

// Selected returns the completion under the cursor.
func (m *Model) Selected() (state.Completion, bool) {
	if len(m.entries) == 0 {
		return state.Completion{}, false
	}
	return m.entries[m.cursor.Pos()], true
}

// Len returns the number of listed completions.
func (m *Model) Len() int {
	return len(m.entries)
}


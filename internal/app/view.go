// internal/app/view.go
package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/hifdh/internal/icons"
	"github.com/llehouerou/hifdh/internal/quran"
	"github.com/llehouerou/hifdh/internal/ui"
	"github.com/llehouerou/hifdh/internal/ui/headerbar"
	"github.com/llehouerou/hifdh/internal/ui/layout"
	"github.com/llehouerou/hifdh/internal/ui/playerbar"
	"github.com/llehouerou/hifdh/internal/ui/render"
	"github.com/llehouerou/hifdh/internal/ui/styles"
)

// View renders the application UI.
func (m Model) View() string {
	// Can't render before we know terminal size
	if m.Width == 0 || m.Height == 0 {
		return ""
	}

	view := headerbar.Render(m.headerInfo(), m.Width) + "\n" + m.VersePanel.View()

	if bar := m.renderPlayerBar(); bar != "" {
		view += "\n" + bar
	}

	if bar := m.renderNotifications(); bar != "" {
		view += "\n" + bar
	}

	view = m.Popups.RenderOverlay(view)

	// Ensure view is exactly terminal height (pad or truncate if needed)
	return enforceHeight(view, m.Height)
}

// resizeComponents gives the verse panel the rows left by the bars.
func (m *Model) resizeComponents() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	opts := layout.ContentOpts{
		HeaderHeight:      headerbar.Height,
		NotificationCount: m.notificationLines(),
	}
	if m.page != nil {
		opts.PlayerBarHeight = playerbar.Height(m.playerBarMode())
	}
	m.VersePanel.SetSize(m.Width, layout.ContentHeight(m.Height, ui.PanelOverhead+1, opts))
	m.VersePanel.SetFocused(true)
}

func (m Model) headerInfo() headerbar.Info {
	info := headerbar.Info{Mode: m.playback.Mode}
	if m.page == nil {
		return info
	}
	info.Page = m.page.Number
	info.Memorized = m.memorized
	info.Juz = quran.JuzOfPage(m.page.Number)
	info.FirstKey = m.page.FirstKey()
	info.LastKey = m.page.LastKey()
	if v, ok := m.page.Verse(0); ok {
		if ch, ok := quran.ChapterAt(m.chapters, v.Surah); ok {
			info.Surah = ch.Name
		}
	}
	return info
}

func (m Model) renderPlayerBar() string {
	if m.page == nil {
		return ""
	}
	st := playerbar.NewState(m.playback, m.page, m.audio.Volume(), m.audio.Muted(), m.playerBarMode())
	return playerbar.Render(st, m.Width)
}

func (m Model) notificationLines() int {
	n := len(m.Notifications)
	if m.loading != 0 {
		n++
	}
	return n
}

// playerBarMode is the chosen display mode, forced compact on short
// terminals.
func (m Model) playerBarMode() playerbar.DisplayMode {
	if layout.IsShort(m.Height) {
		return playerbar.ModeCompact
	}
	return m.PlayerDisplayMode
}

func (m Model) renderNotifications() string {
	if m.notificationLines() == 0 {
		return ""
	}

	t := styles.T()
	innerWidth := m.Width - 2 // Account for borders

	checkStyle := lipgloss.NewStyle().Foreground(t.Primary)
	warnStyle := lipgloss.NewStyle().Foreground(t.Warning)
	msgStyle := lipgloss.NewStyle().Foreground(t.FgBase)

	lines := make([]string, 0, m.notificationLines())
	if m.loading != 0 {
		line := t.S().Muted.Render(fmt.Sprintf("Loading page %d…", m.loading))
		lines = append(lines, render.Pad(line, innerWidth))
	}
	for _, n := range m.Notifications {
		mark := checkStyle.Render(icons.Completed())
		if n.Warning {
			mark = warnStyle.Render(icons.Missing())
		}
		line := mark + " " + msgStyle.Render(render.Truncate(n.Message, max(innerWidth-3, 1)))
		lines = append(lines, line)
	}

	content := strings.Join(lines, "\n")
	return styles.PanelStyle(false).Width(innerWidth).Render(content)
}

// enforceHeight ensures the view has exactly the specified number of lines.
func enforceHeight(view string, targetHeight int) string {
	lines := splitLines(view)
	currentHeight := len(lines)

	if currentHeight == targetHeight {
		return view
	}

	if currentHeight < targetHeight {
		// Pad with empty lines
		for i := currentHeight; i < targetHeight; i++ {
			lines = append(lines, "")
		}
	} else {
		// Truncate (shouldn't normally happen)
		lines = lines[:targetHeight]
	}

	return strings.Join(lines, "\n")
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := range len(s) {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

package headerbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/hifdh/internal/icons"
	"github.com/llehouerou/hifdh/internal/sequence"
	"github.com/llehouerou/hifdh/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

const appName = "hifdh"

// Info describes the page shown under the header.
type Info struct {
	Page     int
	Juz      int
	Surah    string // name of the surah the page starts in, may be empty
	FirstKey string
	LastKey  string
	Mode     sequence.Mode

	Memorized bool // the user marked the page as known by heart
}

// modeTabs are the sequence modes, in the order "m" cycles through them.
var modeTabs = []sequence.Mode{sequence.ModeHifdh, sequence.ModeVerse, sequence.ModeFullPage}

func activeStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Primary).Bold(true)
}

func inactiveStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().FgMuted)
}

func separatorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Border)
}

// Render returns the header bar string for the given width.
// Sections are dropped from the right when the width is too small.
func Render(info Info, width int) string {
	if width < 20 {
		return ""
	}

	t := styles.T()
	separator := separatorStyle().Render(" │ ")

	tabs := make([]string, 0, len(modeTabs))
	for _, m := range modeTabs {
		if m == info.Mode {
			tabs = append(tabs, activeStyle().Render(m.Label()))
		} else {
			tabs = append(tabs, inactiveStyle().Render(m.Label()))
		}
	}

	sections := []string{
		styles.Gradient(appName, t.Primary, t.Secondary, true),
		strings.Join(tabs, separator),
	}
	if info.Page > 0 {
		sections = append(sections, t.S().Title.Render(pageLabel(info)))
	}

	content := strings.Join(sections, separator)
	for lipgloss.Width(content) > width && len(sections) > 1 {
		sections = sections[:len(sections)-1]
		content = strings.Join(sections, separator)
	}

	// Center the content
	contentWidth := lipgloss.Width(content)
	if contentWidth < width {
		padLeft := (width - contentWidth) / 2
		content = strings.Repeat(" ", padLeft) + content
	}

	return content
}

func pageLabel(info Info) string {
	parts := []string{fmt.Sprintf("Page %d", info.Page)}
	if info.Juz > 0 {
		parts = append(parts, fmt.Sprintf("Juz %d", info.Juz))
	}
	if info.Surah != "" {
		parts = append(parts, info.Surah)
	}
	switch {
	case info.FirstKey != "" && info.FirstKey != info.LastKey && info.LastKey != "":
		parts = append(parts, info.FirstKey+"–"+info.LastKey)
	case info.FirstKey != "":
		parts = append(parts, info.FirstKey)
	}
	if info.Memorized {
		parts = append(parts, icons.Memorized()+" memorized")
	}
	return strings.Join(parts, " · ")
}

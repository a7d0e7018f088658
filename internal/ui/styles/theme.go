// Package styles holds the trainer palette and the styles built from it.
package styles

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the color palette. Fields are colors; S returns styles derived
// from them.
type Theme struct {
	Primary   lipgloss.Color // sounding verse, gauges, focused borders
	Secondary lipgloss.Color // the other verses of the repeated group

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color
	BgCursor lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Success lipgloss.Color // page completed
	Warning lipgloss.Color // missing recitation
	Error   lipgloss.Color

	once   sync.Once
	styles *Styles
}

// Styles are the text styles shared by every component.
type Styles struct {
	Base   lipgloss.Style
	Muted  lipgloss.Style
	Subtle lipgloss.Style
	Title  lipgloss.Style

	Playing lipgloss.Style // sounding verse
	Group   lipgloss.Style // rest of the group
	Cursor  lipgloss.Style // selected verse or row

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

var theme = Theme{
	Primary:   "#34c3a6",
	Secondary: "#d9a441",

	FgBase:   "#cfcfc4",
	FgMuted:  "#8a8a80",
	FgSubtle: "#5c5c55",
	BgCursor: "#2f332f",

	Border:      "#5c5c55",
	BorderFocus: "#34c3a6",

	Success: "#6cc070",
	Warning: "#d9a441",
	Error:   "#e5604d",
}

// T returns the theme in use.
func T() *Theme {
	return &theme
}

// S returns the styles of t, built on first use.
func (t *Theme) S() *Styles {
	t.once.Do(func() {
		base := lipgloss.NewStyle().Foreground(t.FgBase)
		t.styles = &Styles{
			Base:   base,
			Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
			Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
			Title:  base.Bold(true),

			Playing: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
			Group:   lipgloss.NewStyle().Foreground(t.Secondary),
			Cursor:  base.Background(t.BgCursor),

			Success: lipgloss.NewStyle().Foreground(t.Success),
			Warning: lipgloss.NewStyle().Foreground(t.Warning),
			Error:   lipgloss.NewStyle().Foreground(t.Error),
		}
	})
	return t.styles
}

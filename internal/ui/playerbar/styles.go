package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/hifdh/internal/ui/styles"
)

func barStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Border)
}

func titleStyle() lipgloss.Style        { return styles.T().S().Title }
func metaStyle() lipgloss.Style         { return styles.T().S().Muted }
func playingStyle() lipgloss.Style      { return styles.T().S().Playing }
func successStyle() lipgloss.Style      { return styles.T().S().Success }
func warningStyle() lipgloss.Style      { return styles.T().S().Warning }
func progressTimeStyle() lipgloss.Style { return styles.T().S().Muted }
func progressBarEmpty() lipgloss.Style  { return styles.T().S().Subtle }

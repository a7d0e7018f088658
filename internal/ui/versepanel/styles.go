package versepanel

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/hifdh/internal/ui/styles"
)

func headerStyle() lipgloss.Style  { return styles.T().S().Title }
func verseStyle() lipgloss.Style   { return styles.T().S().Base }
func playingStyle() lipgloss.Style { return styles.T().S().Playing }
func groupStyle() lipgloss.Style   { return styles.T().S().Group }
func cursorStyle() lipgloss.Style  { return styles.T().S().Cursor }
func dimmedStyle() lipgloss.Style  { return styles.T().S().Subtle }
func missingStyle() lipgloss.Style { return styles.T().S().Warning }

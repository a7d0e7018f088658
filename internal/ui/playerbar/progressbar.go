package playerbar

import (
	"fmt"
	"strings"

	"github.com/llehouerou/hifdh/internal/icons"
	"github.com/llehouerou/hifdh/internal/ui/styles"
)

const (
	filledBlock = "━"
	emptyBlock  = "─"
)

// RenderProgressBar renders sequence progress as a gradient bar of width cells.
// step is the number of groups already played out of steps.
func RenderProgressBar(step, steps, width int) string {
	if width <= 0 {
		return ""
	}

	var ratio float64
	if steps > 0 {
		ratio = float64(min(max(step, 0), steps)) / float64(steps)
	}
	filled := min(int(float64(width)*ratio), width)

	t := styles.T()
	var b strings.Builder
	if filled > 0 {
		b.WriteString(styles.Gradient(strings.Repeat(filledBlock, filled), t.Primary, t.Secondary, false))
	}
	b.WriteString(progressBarEmpty().Render(strings.Repeat(emptyBlock, width-filled)))
	return b.String()
}

// RenderVolume renders the volume as an icon and a rounded percentage.
func RenderVolume(volume float64, muted bool) string {
	icon := icons.Volume()
	if muted {
		icon = icons.VolumeMute()
	}
	return progressTimeStyle().Render(fmt.Sprintf("%s %3.0f%%", icon, volume*100))
}

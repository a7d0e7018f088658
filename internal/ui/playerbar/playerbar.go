package playerbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/hifdh/internal/icons"
	"github.com/llehouerou/hifdh/internal/playback"
	"github.com/llehouerou/hifdh/internal/quran"
	"github.com/llehouerou/hifdh/internal/sequence"
	"github.com/llehouerou/hifdh/internal/ui/render"
)

// DisplayMode controls the player bar appearance.
type DisplayMode int

const (
	ModeCompact  DisplayMode = iota // Single-line view
	ModeExpanded                    // Detailed view with sequence info
)

// State holds everything needed to render the player bar.
type State struct {
	Status      playback.Status
	Mode        sequence.Mode
	Phase       sequence.Phase
	Page        int
	VerseKey    string // sounding verse
	GroupFirst  string
	GroupLast   string
	Repetition  int // 1-based
	Repetitions int
	Step        int
	Steps       int
	Volume      float64
	Muted       bool
	Missing     int
	Failures    int
	DisplayMode DisplayMode
}

// Height returns the total height of the player bar for the given mode.
func Height(mode DisplayMode) int {
	if mode == ModeExpanded {
		return 6 // 4 content rows + 2 border rows
	}
	return 3 // top border + content + bottom border
}

// NewState builds a State from a driver snapshot. page supplies verse keys and
// may be nil, in which case keys fall back to verse numbers.
func NewState(st playback.State, page *quran.Page, volume float64, muted bool, mode DisplayMode) State {
	if !st.HasPage() {
		return State{}
	}

	s := State{
		Status:      st.Status,
		Mode:        st.Mode,
		Phase:       st.Phase,
		Page:        st.PageID,
		Repetition:  st.Repetition + 1,
		Repetitions: st.Repetitions,
		Step:        st.Step,
		Steps:       st.Steps,
		Volume:      volume,
		Muted:       muted,
		Missing:     st.MissingAudio,
		Failures:    st.Failures,
		DisplayMode: mode,
	}
	s.VerseKey = verseKey(page, st.SegmentVerse)
	if len(st.Group) > 0 {
		s.GroupFirst = verseKey(page, st.Group[0])
		s.GroupLast = verseKey(page, st.Group[len(st.Group)-1])
	} else {
		s.GroupFirst = verseKey(page, st.Verse)
		s.GroupLast = s.GroupFirst
	}
	return s
}

func verseKey(page *quran.Page, index int) string {
	if page != nil {
		if v, ok := page.Verse(index); ok {
			return v.Key
		}
	}
	return fmt.Sprintf("#%d", index+1)
}

// Render returns the player bar string for the given width.
// Returns empty string when no page is loaded.
func Render(s State, width int) string {
	if s.Page == 0 {
		return ""
	}

	if s.DisplayMode == ModeExpanded && width-2 >= 40 {
		return renderExpanded(s, width)
	}

	return renderCompact(s, width)
}

func renderCompact(s State, width int) string {
	innerWidth := max(width-6, 0)
	separator := "   "
	sepWidth := lipgloss.Width(separator)
	minInfoWidth, minBarWidth := 10, 5

	status := statusIcon(s.Status)
	info := s.groupLabel() + " · " + s.modeLabel()
	counter := fmt.Sprintf("%d/%d", min(s.Step+1, s.Steps), s.Steps)

	// Optional parts, dropped from the end when the bar is too narrow.
	extras := []string{
		metaStyle().Render(RenderRepetition(s.Repetition, s.Repetitions)),
		RenderVolume(s.Volume, s.Muted),
	}
	fixed := func() int {
		w := lipgloss.Width(status+"  ") + lipgloss.Width(counter) + sepWidth*2
		for _, e := range extras {
			w += lipgloss.Width(e) + sepWidth
		}
		return w
	}
	for len(extras) > 0 && fixed()+minInfoWidth+minBarWidth > innerWidth {
		extras = extras[:len(extras)-1]
	}

	available := innerWidth - fixed() - minBarWidth*2
	if lipgloss.Width(info) > available {
		info = render.Truncate(info, max(available, minInfoWidth))
	}
	barWidth := max(innerWidth-fixed()-lipgloss.Width(info), minBarWidth)

	var content strings.Builder
	content.WriteString(status)
	content.WriteString("  ")
	content.WriteString(titleStyle().Render(info))
	if len(extras) > 0 {
		content.WriteString(separator)
		content.WriteString(extras[0])
	}
	content.WriteString(separator)
	content.WriteString(RenderProgressBar(s.Step, s.Steps, barWidth))
	content.WriteString(separator)
	content.WriteString(progressTimeStyle().Render(counter))
	if len(extras) > 1 {
		content.WriteString(separator)
		content.WriteString(extras[1])
	}

	return barStyle().Padding(0, 2).Width(width - 2).Render(content.String())
}

func renderExpanded(s State, width int) string {
	innerWidth := max(width-6, 0)

	line1 := statusIcon(s.Status) + "  " + titleStyle().Render(icons.FormatPage(fmt.Sprintf("Page %d", s.Page))) +
		"   " + metaStyle().Render(s.modeLabel())
	line2 := "Now reciting " + titleStyle().Render(s.VerseKey) + "   " + metaStyle().Render("group "+s.groupLabel())
	line3 := metaStyle().Render(RenderRepetition(s.Repetition, s.Repetitions)) + "   " + RenderVolume(s.Volume, s.Muted)
	if d := s.diagnostics(); d != "" {
		line3 += "   " + warningStyle().Render(d)
	}

	counter := fmt.Sprintf("%d/%d", min(s.Step+1, s.Steps), s.Steps)
	barWidth := max(innerWidth-lipgloss.Width(counter)-2, 5)
	line4 := RenderProgressBar(s.Step, s.Steps, barWidth) + "  " + progressTimeStyle().Render(counter)

	lines := make([]string, 0, 4)
	for _, l := range []string{line1, line2, line3, line4} {
		lines = append(lines, ansi.Truncate(l, innerWidth, "…"))
	}
	return barStyle().Padding(0, 2).Width(width - 2).Render(strings.Join(lines, "\n"))
}

func (s State) groupLabel() string {
	if s.GroupFirst == s.GroupLast {
		return s.GroupFirst
	}
	return s.GroupFirst + "–" + s.GroupLast
}

func (s State) modeLabel() string {
	if s.Mode == sequence.ModeHifdh {
		return s.Mode.Label() + " " + s.Phase.String()
	}
	return s.Mode.Label()
}

func (s State) diagnostics() string {
	var parts []string
	if s.Missing > 0 {
		parts = append(parts, fmt.Sprintf("%s %d missing", icons.Missing(), s.Missing))
	}
	if s.Failures > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", s.Failures))
	}
	return strings.Join(parts, " · ")
}

// RenderRepetition formats the repetition counter, e.g. "🔁 3rd of 5".
func RenderRepetition(rep, total int) string {
	if total <= 0 {
		return icons.Repeat()
	}
	return fmt.Sprintf("%s %s of %d", icons.Repeat(), humanize.Ordinal(max(rep, 1)), total)
}

func statusIcon(st playback.Status) string {
	switch st {
	case playback.StatusPlaying:
		return playingStyle().Render(icons.Play())
	case playback.StatusPaused:
		return metaStyle().Render(icons.Pause())
	case playback.StatusCompleted:
		return successStyle().Render(icons.Completed())
	default:
		return metaStyle().Render(icons.Idle())
	}
}

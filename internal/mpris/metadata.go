package mpris

import (
	"fmt"

	"github.com/llehouerou/hifdh/internal/playback"
)

// Track is what desktop media widgets show for the sounding verse.
type Track struct {
	Title  string // e.g. "Al-Baqarah 2:255"
	Artist string // reciter name
	Album  string // e.g. "Page 42"
	Number int    // 1-based verse index on the page
}

// DescribeFunc maps a driver snapshot to track metadata.
type DescribeFunc func(st playback.State) Track

// DefaultDescribe is used when no DescribeFunc is given. It only knows
// page and verse numbers.
func DefaultDescribe(st playback.State) Track {
	if !st.HasPage() {
		return Track{}
	}
	return Track{
		Title:  fmt.Sprintf("Verse %d of %d", st.SegmentVerse+1, st.TotalVerses),
		Artist: fmt.Sprintf("Reciter %d", st.Reciter),
		Album:  fmt.Sprintf("Page %d", st.PageID),
		Number: st.SegmentVerse + 1,
	}
}

// formatTrackID returns a D-Bus object path unique to a verse of a page.
func formatTrackID(st playback.State) string {
	if !st.HasPage() {
		return "/org/mpris/MediaPlayer2/TrackList/NoTrack"
	}
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/p%d/v%d", st.PageID, st.SegmentVerse)
}

// canGoNext reports whether NextVerse would move.
func canGoNext(st playback.State) bool {
	return st.HasPage() && st.Verse < st.TotalVerses-1
}

// canGoPrevious reports whether PreviousVerse would move.
func canGoPrevious(st playback.State) bool {
	return st.HasPage() && st.Verse > 0
}

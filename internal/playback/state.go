package playback

import "github.com/llehouerou/hifdh/internal/sequence"

// Status is the driver lifecycle state.
//
//	        Play             Pause
//	Idle ─────────▶ Playing ───────▶ Paused
//	  ▲              │  ▲              │
//	  │              │  └───── Play ───┘
//	  │  plan ends   ▼
//	  │          Completed
//	  └── Reset / JumpTo / LoadPage (from any status)
type Status int

const (
	StatusIdle Status = iota
	StatusPlaying
	StatusPaused
	StatusCompleted
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusPlaying:
		return "Playing"
	case StatusPaused:
		return "Paused"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a sequence is under way (playing or paused).
func (s Status) IsActive() bool {
	return s == StatusPlaying || s == StatusPaused
}

// State is a read-only snapshot of the driver.
type State struct {
	Status      Status
	Mode        sequence.Mode
	Repetitions int
	Reciter     int

	PageID      int
	TotalVerses int

	// Cursor within the plan.
	Verse      int
	Phase      sequence.Phase
	Repetition int

	// Segment is the offset of the sounding verse inside Group.
	Group        []int
	Segment      int
	SegmentVerse int

	// Step counts groups played since the plan started; Steps is the plan length.
	Step  int
	Steps int

	Playing      bool
	MissingAudio int
	Failures     int
}

// Position returns the plan cursor.
func (s State) Position() sequence.Position {
	return sequence.Position{Verse: s.Verse, Phase: s.Phase, Repetition: s.Repetition}
}

// HasPage reports whether a page is loaded.
func (s State) HasPage() bool {
	return s.PageID != 0
}

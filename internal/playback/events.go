package playback

// StateChange is emitted when the driver status changes.
type StateChange struct {
	Previous Status
	Current  Status
}

// PositionChange is emitted when a segment starts and after every command
// that moves the cursor.
type PositionChange struct {
	State State
}

// DiagnosticKind classifies recoverable per-segment failures.
type DiagnosticKind int

const (
	// DiagnosticMissingAudio means the verse has no audio URL and was skipped.
	DiagnosticMissingAudio DiagnosticKind = iota
	// DiagnosticPlaybackError means the clip failed or timed out; the sequence
	// continued with the next segment.
	DiagnosticPlaybackError
)

// String returns the diagnostic kind name.
func (k DiagnosticKind) String() string {
	switch k {
	case DiagnosticMissingAudio:
		return "MissingAudio"
	case DiagnosticPlaybackError:
		return "AudioPlaybackError"
	default:
		return "Unknown"
	}
}

// Diagnostic is emitted for a skipped or failed segment. Playback continues.
type Diagnostic struct {
	Kind   DiagnosticKind
	PageID int
	Verse  int
	URL    string
	Err    error
}

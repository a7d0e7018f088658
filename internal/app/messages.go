// internal/app/messages.go
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/hifdh/internal/playback"
	"github.com/llehouerou/hifdh/internal/quran"
	"github.com/llehouerou/hifdh/internal/state"
	"github.com/llehouerou/hifdh/internal/ui/history"
)

// PageLoadedMsg is sent when a page and its recitation are fetched.
type PageLoadedMsg struct {
	Seq  int
	Page *quran.Page
	pageLoadOptions
}

// PageLoadErrorMsg is sent when a page could not be fetched.
type PageLoadErrorMsg struct {
	Seq    int
	Number int
	Err    error
}

// ChaptersLoadedMsg carries the surah list used for header labels.
type ChaptersLoadedMsg struct {
	Chapters []quran.Chapter
	Err      error
}

// SurahPageMsg carries the start page of a surah requested with "g s".
type SurahPageMsg struct {
	Surah int
	Page  int
	Err   error
}

// HistoryLoadedMsg carries the completion history for the history popup.
type HistoryLoadedMsg struct {
	Entries []state.Completion
	Summary history.Summary
	Err     error
}

// CompletionRecordedMsg is sent once a finished page is stored.
type CompletionRecordedMsg struct {
	Completion state.Completion
	Times      int
	Err        error
}

// DriverStateMsg is sent when the driver status changes.
type DriverStateMsg struct {
	Previous playback.Status
	Current  playback.Status
}

// DriverPositionMsg is sent when a segment starts or the cursor moves.
type DriverPositionMsg struct {
	State playback.State
}

// DriverDiagnosticMsg is sent for a skipped or failed verse.
type DriverDiagnosticMsg struct {
	Diagnostic playback.Diagnostic
}

// DriverClosedMsg is sent when the driver subscription ends.
type DriverClosedMsg struct{}

// KeySequenceTimeoutMsg is sent when a key sequence times out.
type KeySequenceTimeoutMsg struct{}

// Notification represents a temporary notification message.
type Notification struct {
	ID      int64
	Message string
	Warning bool
}

// NotificationClearMsg is sent to clear a specific notification after a delay.
type NotificationClearMsg struct {
	ID int64
}

// NotificationDuration is how long notifications are displayed.
const NotificationDuration = 3 * time.Second

// maxNotifications bounds the notification bar height.
const maxNotifications = 3

// NotificationClearCmd returns a command that clears the notification after a delay.
func NotificationClearCmd(id int64) tea.Cmd {
	return tea.Tick(NotificationDuration, func(time.Time) tea.Msg {
		return NotificationClearMsg{ID: id}
	})
}

package playback

import (
	"errors"

	"github.com/llehouerou/hifdh/internal/sequence"
)

var (
	ErrInvalidConfiguration = sequence.ErrInvalidConfiguration
	ErrIndexOutOfRange      = sequence.ErrIndexOutOfRange

	ErrNoPage         = errors.New("no page loaded")
	ErrClosed         = errors.New("playback driver closed")
	ErrMissingAudio   = errors.New("verse has no audio")
	ErrSegmentTimeout = errors.New("segment timed out")
)

// Page is the part of a loaded page the driver needs.
type Page interface {
	ID() int
	VerseCount() int
}

// AudioSource resolves the recitation clip of a verse.
// ok is false when the verse has no audio for that reciter.
type AudioSource interface {
	AudioURL(pageID, verseIndex, reciterID int) (url string, ok bool)
}

// Service defines the playback service contract.
type Service interface {
	// Page
	LoadPage(page Page) error

	// Playback control
	Play() error
	Pause() error
	Toggle() error
	Reset() error

	// Navigation (never starts playback)
	JumpTo(index int) error
	JumpToVerse(index int, startFromHere bool) error
	Seek(pos sequence.Position) error

	// Navigation that keeps playing if playback was running
	NextVerse() error
	PreviousVerse() error

	// Configuration
	SetMode(mode sequence.Mode) error
	SetRepetitionTarget(n int) error
	SetReciter(id int) error

	// State queries
	State() State

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}

package mpris

import (
	"testing"

	"github.com/llehouerou/hifdh/internal/playback"
)

func TestDefaultDescribe(t *testing.T) {
	if got := DefaultDescribe(playback.State{}); got != (Track{}) {
		t.Errorf("DefaultDescribe(no page) = %+v, want empty", got)
	}

	st := playback.State{PageID: 42, TotalVerses: 7, SegmentVerse: 2, Reciter: 7}
	got := DefaultDescribe(st)
	want := Track{Title: "Verse 3 of 7", Artist: "Reciter 7", Album: "Page 42", Number: 3}
	if got != want {
		t.Errorf("DefaultDescribe() = %+v, want %+v", got, want)
	}
}

func TestFormatTrackID(t *testing.T) {
	tests := []struct {
		name string
		st   playback.State
		want string
	}{
		{"no page", playback.State{}, "/org/mpris/MediaPlayer2/TrackList/NoTrack"},
		{"first verse", playback.State{PageID: 1, TotalVerses: 7}, "/org/mpris/MediaPlayer2/Track/p1/v0"},
		{"sounding verse", playback.State{PageID: 604, TotalVerses: 15, Verse: 2, SegmentVerse: 4}, "/org/mpris/MediaPlayer2/Track/p604/v4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatTrackID(tt.st); got != tt.want {
				t.Errorf("formatTrackID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanNavigate(t *testing.T) {
	tests := []struct {
		name           string
		st             playback.State
		next, previous bool
	}{
		{"no page", playback.State{}, false, false},
		{"first verse", playback.State{PageID: 1, TotalVerses: 5}, true, false},
		{"middle verse", playback.State{PageID: 1, TotalVerses: 5, Verse: 2}, true, true},
		{"last verse", playback.State{PageID: 1, TotalVerses: 5, Verse: 4}, false, true},
		{"single verse", playback.State{PageID: 1, TotalVerses: 1}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canGoNext(tt.st); got != tt.next {
				t.Errorf("canGoNext() = %v, want %v", got, tt.next)
			}
			if got := canGoPrevious(tt.st); got != tt.previous {
				t.Errorf("canGoPrevious() = %v, want %v", got, tt.previous)
			}
		})
	}
}

package player

import (
	"context"
	"time"
)

// Interface is the audio output capability used by the playback driver.
//
// LoadAndPlay blocks until the audio ends (nil), the context is cancelled or
// Stop is called (context error or ErrStopped), or playback fails (any other
// error). Starting a new clip stops the previous one first.
type Interface interface {
	LoadAndPlay(ctx context.Context, url string) error
	Stop()
	IsPlaying() bool
}

// Prefetcher warms audio data for a clip that will be played soon.
// Prefetching must never produce sound.
type Prefetcher interface {
	Prefetch(url string)
}

// Timed is implemented by players that learn how long a clip lasts once it is
// decoded. PlayTimed behaves like LoadAndPlay and calls started once, right
// before the clip sounds, with its length or zero when the length is unknown.
type Timed interface {
	PlayTimed(ctx context.Context, url string, started func(length time.Duration)) error
}

// Verify Player implements Interface at compile time.
var (
	_ Interface  = (*Player)(nil)
	_ Prefetcher = (*Player)(nil)
	_ Timed      = (*Player)(nil)
)

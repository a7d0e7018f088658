package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// ErrStopped is returned by LoadAndPlay when Stop interrupted the clip.
var ErrStopped = errors.New("playback stopped")

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// Player plays one verse clip at a time on the system speaker.
type Player struct {
	loader *Loader
	logger *log.Logger

	mu   sync.Mutex
	cur  *clip
	gain gain
}

// clip is the sounding verse. stop is closed when Stop interrupts it.
type clip struct {
	source beep.StreamSeekCloser
	volume *effects.Volume
	stop   chan struct{}
}

// New creates a Player that fetches clips through loader.
func New(loader *Loader, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		loader: loader,
		logger: logger,
		gain:   gain{level: 1},
	}
}

// LoadAndPlay fetches and plays the clip at url, blocking until it ends.
func (p *Player) LoadAndPlay(ctx context.Context, url string) error {
	return p.PlayTimed(ctx, url, nil)
}

// PlayTimed is LoadAndPlay reporting the decoded clip length to started.
func (p *Player) PlayTimed(ctx context.Context, url string, started func(time.Duration)) error {
	p.Stop()

	data, err := p.loader.Load(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	source, format, err := decodeMP3(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	if err := initSpeaker(format.SampleRate); err != nil {
		source.Close()
		return err
	}

	var out beep.Streamer = source
	if format.SampleRate != speakerSampleRate {
		out = beep.Resample(4, format.SampleRate, speakerSampleRate, source)
	}

	c := &clip{
		source: source,
		volume: &effects.Volume{Streamer: out},
		stop:   make(chan struct{}),
	}
	done := make(chan struct{})

	p.mu.Lock()
	if ctx.Err() != nil {
		p.mu.Unlock()
		source.Close()
		return ctx.Err()
	}
	p.gain.apply(c.volume)
	p.cur = c
	p.mu.Unlock()

	if started != nil {
		started(format.SampleRate.D(source.Len()))
	}
	speaker.Play(beep.Seq(c.volume, beep.Callback(func() { close(done) })))

	select {
	case <-done:
		p.finish(c)
		if err := source.Err(); err != nil {
			return fmt.Errorf("play %s: %w", url, err)
		}
		return nil
	case <-ctx.Done():
		p.Stop()
		return ctx.Err()
	case <-c.stop:
		return ErrStopped
	}
}

// Stop silences the current clip. LoadAndPlay returns promptly afterwards.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cur == nil {
		return
	}
	speaker.Clear()
	close(p.cur.stop)
	p.cur.source.Close()
	p.cur = nil
}

// finish releases c after it ended on its own, unless a newer clip already
// replaced it.
func (p *Player) finish(c *clip) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cur != c {
		return
	}
	c.source.Close()
	p.cur = nil
}

// IsPlaying reports whether a clip is sounding.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cur != nil
}

// Prefetch warms the loader cache for url.
func (p *Player) Prefetch(url string) {
	p.loader.Prefetch(url)
}

func initSpeaker(rate beep.SampleRate) error {
	speakerMu.Lock()
	defer speakerMu.Unlock()

	if speakerInitialized {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speakerSampleRate = rate
	speakerInitialized = true
	return nil
}

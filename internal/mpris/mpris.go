//go:build linux

package mpris

import (
	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/events"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/hifdh/internal/playback"
)

// Adapter publishes the trainer on the session bus as an MPRIS player.
type Adapter struct {
	server *server.Server
	events *events.EventHandler
	sub    *playback.Subscription
	done   chan struct{}
}

// New starts serving and forwards driver events as PropertiesChanged
// signals until Close.
func New(opts Options) (*Adapter, error) {
	if opts.Describe == nil {
		opts.Describe = DefaultDescribe
	}

	srv := server.NewServer("hifdh", rootAdapter{}, &playerAdapter{
		service:  opts.Service,
		describe: opts.Describe,
		volume:   opts.Volume,
	})
	a := &Adapter{
		server: srv,
		events: events.NewEventHandler(srv),
		sub:    opts.Service.Subscribe(),
		done:   make(chan struct{}),
	}

	go func() {
		_ = srv.Listen()
	}()
	go a.forward()

	return a, nil
}

func (a *Adapter) Close() error {
	close(a.done)
	return a.server.Stop()
}

// forward signals status changes and a new sounding verse. Signal errors
// are ignored: they only mean no client is listening.
func (a *Adapter) forward() {
	lastTrack := ""
	for {
		select {
		case <-a.done:
			return
		case <-a.sub.Done:
			return
		case <-a.sub.StateChanged:
			_ = a.events.Player.OnPlayPause()
		case pos := <-a.sub.PositionChanged:
			if id := formatTrackID(pos.State); id != lastTrack {
				lastTrack = id
				_ = a.events.Player.OnTitle()
			}
		case <-a.sub.Diagnostics:
		}
	}
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter. The trainer owns its
// window and lifecycle, so raise and quit are refused.
type rootAdapter struct{}

func (rootAdapter) Raise() error                { return nil }
func (rootAdapter) Quit() error                 { return nil }
func (rootAdapter) CanQuit() (bool, error)      { return false, nil }
func (rootAdapter) CanRaise() (bool, error)     { return false, nil }
func (rootAdapter) HasTrackList() (bool, error) { return false, nil }
func (rootAdapter) Identity() (string, error)   { return "Hifdh", nil }

//nolint:revive // name fixed by the MPRIS interface
func (rootAdapter) SupportedUriSchemes() ([]string, error) { return []string{"https"}, nil }

func (rootAdapter) SupportedMimeTypes() ([]string, error) { return []string{"audio/mpeg"}, nil }

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter. Tracks are
// verses of the loaded page; Stop rewinds the page.
type playerAdapter struct {
	service  playback.Service
	describe DescribeFunc
	volume   VolumeControl
}

func (p *playerAdapter) Next() error {
	return p.service.NextVerse()
}

func (p *playerAdapter) Previous() error {
	return p.service.PreviousVerse()
}

func (p *playerAdapter) Pause() error {
	return p.service.Pause()
}

func (p *playerAdapter) PlayPause() error {
	return p.service.Toggle()
}

func (p *playerAdapter) Stop() error {
	return p.service.Reset()
}

func (p *playerAdapter) Play() error {
	return p.service.Play()
}

// Verse clips are short and replayed whole, so seeking is not offered.
func (p *playerAdapter) Seek(types.Microseconds) error                { return nil }
func (p *playerAdapter) SetPosition(string, types.Microseconds) error { return nil }
func (p *playerAdapter) Position() (int64, error)                     { return 0, nil }
func (p *playerAdapter) CanSeek() (bool, error)                       { return false, nil }

//nolint:revive // name fixed by the MPRIS interface
func (p *playerAdapter) OpenUri(string) error { return nil }

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.service.State().Status {
	case playback.StatusPlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatusPaused:
		return types.PlaybackStatusPaused, nil
	default:
		return types.PlaybackStatusStopped, nil
	}
}

func (p *playerAdapter) Rate() (float64, error)        { return 1, nil }
func (p *playerAdapter) SetRate(float64) error         { return nil }
func (p *playerAdapter) MinimumRate() (float64, error) { return 1, nil }
func (p *playerAdapter) MaximumRate() (float64, error) { return 1, nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	st := p.service.State()
	if !st.HasPage() {
		return types.Metadata{}, nil
	}
	track := p.describe(st)

	return types.Metadata{
		TrackId:     dbus.ObjectPath(formatTrackID(st)),
		Title:       track.Title,
		Artist:      []string{track.Artist},
		Album:       track.Album,
		TrackNumber: track.Number,
	}, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	if p.volume == nil {
		return 1, nil
	}
	return p.volume.Volume(), nil
}

func (p *playerAdapter) SetVolume(level float64) error {
	if p.volume != nil {
		p.volume.SetVolume(level)
	}
	return nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return canGoNext(p.service.State()), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return canGoPrevious(p.service.State()), nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	st := p.service.State()
	return st.HasPage() && st.Status != playback.StatusCompleted, nil
}

func (p *playerAdapter) CanPause() (bool, error)   { return true, nil }
func (p *playerAdapter) CanControl() (bool, error) { return true, nil }

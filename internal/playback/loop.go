package playback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/llehouerou/hifdh/internal/player"
)

// segment is one verse clip scheduled by the loop.
type segment struct {
	pageID   int
	verse    int
	url      string
	hasAudio bool
	next     string // clip expected right after this one, for prefetch
	state    State
}

// run plays segments until the plan ends or the run is cancelled.
func (d *Driver) run(ctx context.Context, gen uint64) {
	defer d.wg.Done()

	d.runMu.Lock()
	defer d.runMu.Unlock()

	for {
		seg, ok := d.nextSegment(gen)
		if !ok {
			return
		}
		d.publishPosition(seg.state)

		if !seg.hasAudio {
			d.diagnose(gen, Diagnostic{
				Kind:   DiagnosticMissingAudio,
				PageID: seg.pageID,
				Verse:  seg.verse,
				Err:    ErrMissingAudio,
			})
			d.segmentDone(gen)
			continue
		}

		if d.prefetcher != nil && seg.next != "" {
			d.prefetcher.Prefetch(seg.next)
		}

		err := d.playSegment(ctx, seg.url)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			if errors.Is(err, player.ErrStopped) || errors.Is(err, context.Canceled) {
				// The clip was stopped outside the driver.
				d.interrupted(gen)
				return
			}
			d.diagnose(gen, Diagnostic{
				Kind:   DiagnosticPlaybackError,
				PageID: seg.pageID,
				Verse:  seg.verse,
				URL:    seg.url,
				Err:    err,
			})
		}
		d.segmentDone(gen)
	}
}

// nextSegment resolves the segment at the cursor, or completes the sequence.
func (d *Driver) nextSegment(gen uint64) (segment, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.gen != gen || d.status != StatusPlaying {
		return segment{}, false
	}
	g, ok := d.plan.Current()
	if !ok {
		d.completeLocked()
		return segment{}, false
	}

	seg := segment{
		pageID: d.page.ID(),
		verse:  g.Verses[d.segment],
	}
	seg.url, seg.hasAudio = d.audio.AudioURL(seg.pageID, seg.verse, d.reciter)
	if next, ok := d.plan.PeekSegment(d.segment); ok {
		if url, ok := d.audio.AudioURL(seg.pageID, next, d.reciter); ok {
			seg.next = url
		}
	}
	seg.state = d.snapshotLocked()
	return seg, true
}

// playSegment plays one clip under a stall watchdog. The watchdog first
// bounds loading; once the player reports the clip length it is pushed back
// to that length plus the timeout, so a long verse is never cut short.
func (d *Driver) playSegment(ctx context.Context, url string) error {
	segCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	watchdog := time.AfterFunc(d.timeout, func() { cancel(ErrSegmentTimeout) })
	defer watchdog.Stop()

	var err error
	if d.timed != nil {
		err = d.timed.PlayTimed(segCtx, url, func(length time.Duration) {
			if length > 0 && watchdog.Stop() {
				watchdog.Reset(length + d.timeout)
			}
		})
	} else {
		err = d.player.LoadAndPlay(segCtx, url)
	}
	if err == nil || ctx.Err() != nil {
		return err
	}
	if errors.Is(context.Cause(segCtx), ErrSegmentTimeout) {
		d.player.Stop()
		return fmt.Errorf("%w: no end within %s", ErrSegmentTimeout, d.timeout)
	}
	return err
}

// segmentDone moves past the segment just played.
func (d *Driver) segmentDone(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.gen != gen {
		return
	}
	g, ok := d.plan.Current()
	if !ok {
		return
	}
	d.segment++
	if d.segment >= len(g.Verses) {
		d.segment = 0
		d.plan.Advance()
	}
}

func (d *Driver) completeLocked() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.setStatusLocked(StatusCompleted)
	d.emitPositionLocked()
	d.logger.Info("sequence completed",
		"page", d.page.ID(), "mode", d.mode, "repetitions", d.reps,
		"missing", d.missing, "failures", d.failures)
}

func (d *Driver) interrupted(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.gen != gen || d.status != StatusPlaying {
		return
	}
	d.cancel()
	d.cancel = nil
	d.setStatusLocked(StatusPaused)
	d.emitPositionLocked()
}

func (d *Driver) diagnose(gen uint64, diag Diagnostic) {
	d.mu.Lock()
	if d.gen != gen {
		d.mu.Unlock()
		return
	}
	switch diag.Kind {
	case DiagnosticMissingAudio:
		d.missing++
		d.logger.Warn("verse has no audio, skipping", "page", diag.PageID, "verse", diag.Verse, "reciter", d.reciter)
	case DiagnosticPlaybackError:
		d.failures++
		d.logger.Warn("verse playback failed", "page", diag.PageID, "verse", diag.Verse, "url", diag.URL, "err", diag.Err)
	}
	d.mu.Unlock()

	d.subsMu.Lock()
	for _, sub := range d.subs {
		sub.sendDiagnostic(diag)
	}
	d.subsMu.Unlock()

	if d.onDiag != nil {
		d.onDiag(diag)
	}
}

func (d *Driver) publishPosition(st State) {
	d.subsMu.Lock()
	defer d.subsMu.Unlock()
	for _, sub := range d.subs {
		sub.sendPosition(st)
	}
}

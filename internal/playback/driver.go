package playback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/hifdh/internal/player"
	"github.com/llehouerou/hifdh/internal/sequence"
)

// DefaultSegmentTimeout is how long a clip may take to start sounding, and how
// long it may run past its decoded length, before it counts as stalled.
const DefaultSegmentTimeout = time.Minute

// Options configures a Driver.
type Options struct {
	Player      player.Interface
	Audio       AudioSource
	Logger      *log.Logger
	Mode        sequence.Mode
	Repetitions int
	Reciter     int

	// SegmentTimeout detects a stalled player; zero means
	// DefaultSegmentTimeout. Clips of unknown length, or played by a player
	// that is not player.Timed, are bounded by it from the start.
	SegmentTimeout time.Duration

	// OnDiagnostic is called for every skipped or failed segment, outside the
	// driver lock.
	OnDiagnostic func(Diagnostic)
}

// Verify Driver implements Service at compile time.
var _ Service = (*Driver)(nil)

// Driver executes a repetition plan against an audio player.
//
// Commands are synchronous and safe for concurrent use. Audio runs on a single
// loop goroutine per Play; a command that interrupts playback cancels that run
// and stops the player before returning, and a cancelled run never touches the
// driver state again.
type Driver struct {
	player     player.Interface
	prefetcher player.Prefetcher
	timed      player.Timed
	audio      AudioSource
	logger     *log.Logger
	onDiag     func(Diagnostic)
	timeout    time.Duration

	mu       sync.Mutex
	page     Page
	mode     sequence.Mode
	reps     int
	reciter  int
	plan     *sequence.Plan
	segment  int // offset of the next segment inside the current group
	status   Status
	missing  int
	failures int
	gen      uint64
	cancel   context.CancelFunc
	closed   bool

	runMu sync.Mutex // held by the active run for its whole lifetime
	wg    sync.WaitGroup

	subsMu sync.Mutex
	subs   []*Subscription
}

// New creates a driver with no page loaded.
func New(opts Options) (*Driver, error) {
	if opts.Player == nil {
		return nil, errors.New("playback: player is required")
	}
	if opts.Audio == nil {
		return nil, errors.New("playback: audio source is required")
	}
	cfg := sequence.Config{Mode: opts.Mode, Repetitions: opts.Repetitions}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.SegmentTimeout <= 0 {
		opts.SegmentTimeout = DefaultSegmentTimeout
	}

	pf, _ := opts.Player.(player.Prefetcher)
	timed, _ := opts.Player.(player.Timed)
	return &Driver{
		player:     opts.Player,
		prefetcher: pf,
		timed:      timed,
		audio:      opts.Audio,
		logger:     opts.Logger,
		onDiag:     opts.OnDiagnostic,
		timeout:    opts.SegmentTimeout,
		mode:       opts.Mode,
		reps:       opts.Repetitions,
		reciter:    opts.Reciter,
		status:     StatusIdle,
	}, nil
}

// LoadPage cancels playback and positions the driver at the first verse of page.
func (d *Driver) LoadPage(page Page) error {
	if page == nil {
		return ErrNoPage
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	plan, err := d.newPlan(page.VerseCount(), d.mode, d.reps, 0)
	if err != nil {
		return err
	}

	d.stopLocked()
	d.page = page
	d.plan = plan
	d.segment = 0
	d.missing = 0
	d.failures = 0
	d.setStatusLocked(StatusIdle)
	d.emitPositionLocked()

	d.logger.Debug("page loaded", "page", page.ID(), "verses", page.VerseCount(), "mode", d.mode, "steps", plan.Len())
	return nil
}

// Play starts or resumes the sequence. It is a no-op while playing and once
// the sequence has completed.
func (d *Driver) Play() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.playLocked()
}

func (d *Driver) playLocked() error {
	if d.closed {
		return ErrClosed
	}
	if d.page == nil {
		return ErrNoPage
	}
	switch d.status {
	case StatusPlaying, StatusCompleted:
		return nil
	case StatusIdle, StatusPaused:
	}

	d.setStatusLocked(StatusPlaying)
	d.startLocked()
	return nil
}

// Pause interrupts the sounding verse and keeps the position, including the
// offset inside the current group. It is a no-op unless playing.
func (d *Driver) Pause() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pauseLocked()
}

func (d *Driver) pauseLocked() error {
	if d.closed {
		return ErrClosed
	}
	if d.status != StatusPlaying {
		return nil
	}
	d.stopLocked()
	d.setStatusLocked(StatusPaused)
	d.emitPositionLocked()
	return nil
}

// Toggle pauses when playing and plays otherwise.
func (d *Driver) Toggle() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status == StatusPlaying {
		return d.pauseLocked()
	}
	return d.playLocked()
}

// Reset cancels playback and returns to the first verse. Mode, repetition
// target and reciter are kept.
func (d *Driver) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	if d.page == nil {
		d.setStatusLocked(StatusIdle)
		return nil
	}
	return d.jumpLocked(0)
}

// JumpTo moves to the first repetition of verse index without playing.
func (d *Driver) JumpTo(index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkVerseLocked(index); err != nil {
		return err
	}
	return d.jumpLocked(index)
}

// JumpToVerse jumps to index when startFromHere is set. Otherwise index is only
// validated and the sequence restarts from the first verse.
func (d *Driver) JumpToVerse(index int, startFromHere bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkVerseLocked(index); err != nil {
		return err
	}
	if !startFromHere {
		index = 0
	}
	return d.jumpLocked(index)
}

// Seek moves to an exact plan position without playing, typically to resume a
// saved session.
func (d *Driver) Seek(pos sequence.Position) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	if d.page == nil {
		return ErrNoPage
	}
	plan, err := d.newPlan(d.page.VerseCount(), d.mode, d.reps, 0)
	if err != nil {
		return err
	}
	if err := plan.Seek(pos); err != nil {
		return err
	}

	d.stopLocked()
	d.plan = plan
	d.segment = 0
	d.setStatusLocked(StatusIdle)
	d.emitPositionLocked()
	return nil
}

// NextVerse moves to the following verse and keeps playing if it was.
func (d *Driver) NextVerse() error { return d.stepVerse(1) }

// PreviousVerse moves to the preceding verse and keeps playing if it was.
func (d *Driver) PreviousVerse() error { return d.stepVerse(-1) }

func (d *Driver) stepVerse(delta int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	if d.page == nil {
		return ErrNoPage
	}
	n := d.page.VerseCount()
	if n == 0 {
		return nil
	}
	target := min(max(d.plan.Position().Verse+delta, 0), n-1)

	wasPlaying := d.status == StatusPlaying
	if err := d.jumpLocked(target); err != nil {
		return err
	}
	if wasPlaying {
		return d.playLocked()
	}
	return nil
}

// SetMode switches the playback mode. The new plan starts at the current
// verse; playback continues if it was running.
func (d *Driver) SetMode(mode sequence.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidConfiguration, int(mode))
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reconfigureLocked(mode, d.reps, d.reciter)
}

// SetRepetitionTarget changes how many times each group is repeated (page
// passes in full page mode).
func (d *Driver) SetRepetitionTarget(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: repetitions must be positive, got %d", ErrInvalidConfiguration, n)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reconfigureLocked(d.mode, n, d.reciter)
}

// SetReciter switches the recitation used for audio.
func (d *Driver) SetReciter(id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid reciter %d", ErrInvalidConfiguration, id)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reconfigureLocked(d.mode, d.reps, id)
}

// State returns a snapshot of the driver.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

// Subscribe creates a new event subscription.
func (d *Driver) Subscribe() *Subscription {
	d.subsMu.Lock()
	defer d.subsMu.Unlock()
	sub := newSubscription()
	d.subs = append(d.subs, sub)
	return sub
}

// Close stops playback, waits for the loop to exit and closes subscriptions.
func (d *Driver) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.stopLocked()
	d.mu.Unlock()

	d.wg.Wait()

	d.subsMu.Lock()
	for _, sub := range d.subs {
		sub.close()
	}
	d.subs = nil
	d.subsMu.Unlock()

	return nil
}

func (d *Driver) checkVerseLocked(index int) error {
	if d.closed {
		return ErrClosed
	}
	if d.page == nil {
		return ErrNoPage
	}
	if n := d.page.VerseCount(); index < 0 || index >= n {
		return fmt.Errorf("%w: verse %d not in [0, %d)", ErrIndexOutOfRange, index, n)
	}
	return nil
}

// jumpLocked cancels playback and restarts the plan at verse start, Idle.
func (d *Driver) jumpLocked(start int) error {
	plan, err := d.newPlan(d.page.VerseCount(), d.mode, d.reps, start)
	if err != nil {
		return err
	}
	d.stopLocked()
	d.plan = plan
	d.segment = 0
	d.setStatusLocked(StatusIdle)
	d.emitPositionLocked()
	return nil
}

func (d *Driver) reconfigureLocked(mode sequence.Mode, reps, reciter int) error {
	if d.closed {
		return ErrClosed
	}
	if d.page == nil {
		if err := (sequence.Config{Mode: mode, Repetitions: reps}).Validate(); err != nil {
			return err
		}
		d.mode, d.reps, d.reciter = mode, reps, reciter
		return nil
	}

	plan, err := d.newPlan(d.page.VerseCount(), mode, reps, d.plan.Position().Verse)
	if err != nil {
		return err
	}

	wasPlaying := d.status == StatusPlaying
	d.stopLocked()
	d.mode, d.reps, d.reciter = mode, reps, reciter
	d.plan = plan
	d.segment = 0
	if wasPlaying {
		d.startLocked()
	}
	d.emitPositionLocked()

	d.logger.Debug("playback reconfigured", "page", d.page.ID(), "mode", mode, "repetitions", reps, "reciter", reciter)
	return nil
}

func (d *Driver) newPlan(n int, mode sequence.Mode, reps, start int) (*sequence.Plan, error) {
	return sequence.New(sequence.Config{
		TotalVerses: n,
		Mode:        mode,
		Repetitions: reps,
		Start:       start,
	})
}

// startLocked launches a run for the current generation.
func (d *Driver) startLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	d.gen++
	d.cancel = cancel
	d.wg.Add(1)
	go d.run(ctx, d.gen)
}

// stopLocked invalidates the active run and silences the player.
func (d *Driver) stopLocked() {
	d.gen++
	if d.cancel == nil {
		return
	}
	d.cancel()
	d.cancel = nil
	d.player.Stop()
}

func (d *Driver) setStatusLocked(s Status) {
	prev := d.status
	if prev == s {
		return
	}
	d.status = s
	d.logger.Debug("playback status", "from", prev, "to", s)

	d.subsMu.Lock()
	defer d.subsMu.Unlock()
	for _, sub := range d.subs {
		sub.sendState(StateChange{Previous: prev, Current: s})
	}
}

func (d *Driver) emitPositionLocked() {
	st := d.snapshotLocked()
	d.subsMu.Lock()
	defer d.subsMu.Unlock()
	for _, sub := range d.subs {
		sub.sendPosition(st)
	}
}

func (d *Driver) snapshotLocked() State {
	st := State{
		Status:       d.status,
		Mode:         d.mode,
		Repetitions:  d.reps,
		Reciter:      d.reciter,
		Segment:      d.segment,
		Playing:      d.status == StatusPlaying,
		MissingAudio: d.missing,
		Failures:     d.failures,
	}
	if d.page != nil {
		st.PageID = d.page.ID()
		st.TotalVerses = d.page.VerseCount()
	}
	if d.plan == nil {
		return st
	}

	pos := d.plan.Position()
	st.Verse = pos.Verse
	st.Phase = pos.Phase
	st.Repetition = pos.Repetition
	st.Step = d.plan.Step()
	st.Steps = d.plan.Len()
	st.SegmentVerse = pos.Verse
	if g, ok := d.plan.Current(); ok {
		st.Group = slices.Clone(g.Verses)
		if d.segment < len(g.Verses) {
			st.SegmentVerse = g.Verses[d.segment]
		}
	}
	return st
}

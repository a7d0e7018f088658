package sequence

import (
	"fmt"
	"iter"
)

// MaxRepetitions is the largest repetition target offered to users.
// The planner itself accepts any positive value.
const MaxRepetitions = 30

// Config describes the sequence to plan.
type Config struct {
	TotalVerses int
	Mode        Mode
	Repetitions int // per verse/group; number of page passes in ModeFullPage
	Start       int // first verse index
}

// Validate checks the configuration without building a plan.
func (c Config) Validate() error {
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidConfiguration, int(c.Mode))
	}
	if c.Repetitions <= 0 {
		return fmt.Errorf("%w: repetitions must be positive, got %d", ErrInvalidConfiguration, c.Repetitions)
	}
	if c.TotalVerses < 0 {
		return fmt.Errorf("%w: negative verse count %d", ErrInvalidConfiguration, c.TotalVerses)
	}
	if c.TotalVerses == 0 {
		return nil
	}
	if c.Start < 0 || c.Start >= c.TotalVerses {
		return fmt.Errorf("%w: start verse %d not in [0, %d)", ErrIndexOutOfRange, c.Start, c.TotalVerses)
	}
	return nil
}

// Position is the cursor of a plan.
//
// In ModeVerse and ModeHifdh, Verse is the anchor verse (the newest verse being
// learned) and Repetition counts groups within the current phase. In
// ModeFullPage, Verse is the verse being played and Repetition is the page pass.
type Position struct {
	Verse      int
	Phase      Phase
	Repetition int
}

// Group is one repetition unit: verses played back-to-back once.
type Group struct {
	Verses   []int
	Position Position
}

// Plan is a lazily evaluated sequence of groups with an explicit cursor.
// A Plan is not safe for concurrent use.
type Plan struct {
	cfg  Config
	pos  Position
	step int
	done bool
}

// New validates cfg and returns a plan positioned at its first group.
func New(cfg Config) (*Plan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.TotalVerses == 0 {
		cfg.Start = 0
	}
	p := &Plan{cfg: cfg, done: cfg.TotalVerses == 0}
	p.pos = cfg.first()
	return p, nil
}

// Expand returns every group of the plan described by cfg.
func Expand(cfg Config) ([][]int, error) {
	p, err := New(cfg)
	if err != nil {
		return nil, err
	}
	groups := make([][]int, 0, p.Len())
	for g := range p.Groups() {
		groups = append(groups, g.Verses)
	}
	return groups, nil
}

// Config returns the configuration the plan was built from.
func (p *Plan) Config() Config { return p.cfg }

// Done reports whether the sequence is exhausted.
func (p *Plan) Done() bool { return p.done }

// Position returns the cursor. Once the plan is done it keeps the position of
// the last group.
func (p *Plan) Position() Position { return p.pos }

// Step returns the number of groups consumed since the start of the plan.
func (p *Plan) Step() int { return p.step }

// Current returns the group at the cursor.
func (p *Plan) Current() (Group, bool) {
	if p.done {
		return Group{}, false
	}
	return p.cfg.group(p.pos), true
}

// Advance moves the cursor to the next group. It returns false once the plan
// is exhausted.
func (p *Plan) Advance() bool {
	if p.done {
		return false
	}
	p.step++
	next, ok := p.cfg.next(p.pos)
	if !ok {
		p.done = true
		return false
	}
	p.pos = next
	return true
}

// Len returns the total number of groups from the start of the plan.
func (p *Plan) Len() int {
	c := p.cfg
	n, r, s := c.TotalVerses, c.Repetitions, c.Start
	if n == 0 {
		return 0
	}
	switch c.Mode {
	case ModeVerse:
		return (n - s) * r
	case ModeFullPage:
		return (n - s) + (r-1)*n
	default:
		return c.hifdhBefore(n)
	}
}

// Remaining returns the number of groups left, including the current one.
func (p *Plan) Remaining() int {
	if p.done {
		return 0
	}
	return p.Len() - p.step
}

// Seek moves the cursor to pos. The remaining sequence is exactly the one the
// plan would have produced from pos.
func (p *Plan) Seek(pos Position) error {
	if err := p.cfg.check(pos); err != nil {
		return err
	}
	p.pos = pos
	p.step = p.cfg.stepOf(pos)
	p.done = false
	return nil
}

// Locate returns the position reached after step groups from the start.
func (p *Plan) Locate(step int) (Position, error) {
	c := p.cfg
	if step < 0 || step >= p.Len() {
		return Position{}, fmt.Errorf("%w: step %d not in [0, %d)", ErrIndexOutOfRange, step, p.Len())
	}
	n, r, s := c.TotalVerses, c.Repetitions, c.Start

	switch c.Mode {
	case ModeVerse:
		return Position{Verse: s + step/r, Phase: PhaseSolo, Repetition: step % r}, nil
	case ModeFullPage:
		if step < n-s {
			return Position{Verse: s + step, Phase: PhasePage}, nil
		}
		k := step - (n - s)
		return Position{Verse: k % n, Phase: PhasePage, Repetition: 1 + k/n}, nil
	}

	for v := s; v < n; v++ {
		if step < r {
			return Position{Verse: v, Phase: PhaseSolo, Repetition: step}, nil
		}
		if v > 0 {
			if step < 2*r {
				return Position{Verse: v, Phase: PhaseAccumulate, Repetition: step - r}, nil
			}
			step -= 2 * r
			continue
		}
		step -= r
	}
	// Unreachable: step < Len() was checked above.
	return Position{}, fmt.Errorf("%w: step beyond plan", ErrIndexOutOfRange)
}

// SeekStep moves the cursor to the group reached after step groups.
func (p *Plan) SeekStep(step int) error {
	pos, err := p.Locate(step)
	if err != nil {
		return err
	}
	return p.Seek(pos)
}

// Groups returns the remaining groups from the cursor without moving it.
func (p *Plan) Groups() iter.Seq[Group] {
	cfg, pos, done := p.cfg, p.pos, p.done
	return func(yield func(Group) bool) {
		if done {
			return
		}
		for {
			if !yield(cfg.group(pos)) {
				return
			}
			var ok bool
			if pos, ok = cfg.next(pos); !ok {
				return
			}
		}
	}
}

// PeekSegment returns the verse played right after the segment at offset in
// the current group, crossing into the next group if needed.
func (p *Plan) PeekSegment(offset int) (int, bool) {
	g, ok := p.Current()
	if !ok {
		return 0, false
	}
	if offset+1 < len(g.Verses) {
		return g.Verses[offset+1], true
	}
	next, ok := p.cfg.next(p.pos)
	if !ok {
		return 0, false
	}
	return p.cfg.group(next).Verses[0], true
}

func (c Config) first() Position {
	if c.Mode == ModeFullPage {
		return Position{Verse: c.Start, Phase: PhasePage}
	}
	return Position{Verse: c.Start, Phase: PhaseSolo}
}

func (c Config) group(pos Position) Group {
	if pos.Phase == PhaseAccumulate {
		verses := make([]int, pos.Verse+1)
		for i := range verses {
			verses[i] = i
		}
		return Group{Verses: verses, Position: pos}
	}
	return Group{Verses: []int{pos.Verse}, Position: pos}
}

func (c Config) next(pos Position) (Position, bool) {
	n, r := c.TotalVerses, c.Repetitions

	switch c.Mode {
	case ModeVerse:
		pos.Repetition++
		if pos.Repetition < r {
			return pos, true
		}
		pos.Repetition = 0
		pos.Verse++
		return pos, pos.Verse < n
	case ModeFullPage:
		pos.Verse++
		if pos.Verse < n {
			return pos, true
		}
		pos.Verse = 0
		pos.Repetition++
		return pos, pos.Repetition < r
	default:
		pos.Repetition++
		if pos.Repetition < r {
			return pos, true
		}
		pos.Repetition = 0
		// Verse 0 has no accumulation phase: alone it already is the whole set.
		if pos.Phase == PhaseSolo && pos.Verse > 0 {
			pos.Phase = PhaseAccumulate
			return pos, true
		}
		pos.Phase = PhaseSolo
		pos.Verse++
		return pos, pos.Verse < n
	}
}

// hifdhBefore returns the number of hifdh groups before anchor verse v.
func (c Config) hifdhBefore(v int) int {
	steps := (v - c.Start) * 2 * c.Repetitions
	if c.Start == 0 && v > 0 {
		steps -= c.Repetitions
	}
	return steps
}

func (c Config) stepOf(pos Position) int {
	n, r, s := c.TotalVerses, c.Repetitions, c.Start
	switch c.Mode {
	case ModeVerse:
		return (pos.Verse-s)*r + pos.Repetition
	case ModeFullPage:
		if pos.Repetition == 0 {
			return pos.Verse - s
		}
		return (n - s) + (pos.Repetition-1)*n + pos.Verse
	default:
		step := c.hifdhBefore(pos.Verse) + pos.Repetition
		if pos.Phase == PhaseAccumulate {
			step += r
		}
		return step
	}
}

func (c Config) check(pos Position) error {
	n := c.TotalVerses
	if pos.Verse < 0 || pos.Verse >= n {
		return fmt.Errorf("%w: verse %d not in [0, %d)", ErrIndexOutOfRange, pos.Verse, n)
	}
	if pos.Repetition < 0 || pos.Repetition >= c.Repetitions {
		return fmt.Errorf("%w: repetition %d not in [0, %d)", ErrInvalidPosition, pos.Repetition, c.Repetitions)
	}

	switch c.Mode {
	case ModeVerse:
		if pos.Phase != PhaseSolo {
			return fmt.Errorf("%w: phase %s in verse mode", ErrInvalidPosition, pos.Phase)
		}
		if pos.Verse < c.Start {
			return fmt.Errorf("%w: verse %d before start %d", ErrInvalidPosition, pos.Verse, c.Start)
		}
	case ModeFullPage:
		if pos.Phase != PhasePage {
			return fmt.Errorf("%w: phase %s in full page mode", ErrInvalidPosition, pos.Phase)
		}
		if pos.Repetition == 0 && pos.Verse < c.Start {
			return fmt.Errorf("%w: verse %d before start %d", ErrInvalidPosition, pos.Verse, c.Start)
		}
	default:
		switch pos.Phase {
		case PhaseSolo:
		case PhaseAccumulate:
			if pos.Verse == 0 {
				return fmt.Errorf("%w: verse 0 has no accumulation phase", ErrInvalidPosition)
			}
		default:
			return fmt.Errorf("%w: phase %s in hifdh mode", ErrInvalidPosition, pos.Phase)
		}
		if pos.Verse < c.Start {
			return fmt.Errorf("%w: verse %d before start %d", ErrInvalidPosition, pos.Verse, c.Start)
		}
	}
	return nil
}

// Package sequence expands a page of verses into the ordered repetition groups
// played by the memorization trainer.
package sequence

import (
	"fmt"
	"strings"
)

// Mode selects how verse indices are expanded into repetition groups.
type Mode int

const (
	ModeHifdh    Mode = iota // progressive accumulation
	ModeVerse                // each verse repeated alone
	ModeFullPage             // whole page played end to end
	modeCount
)

// String returns the config/CLI name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeHifdh:
		return "hifdh"
	case ModeVerse:
		return "verse"
	case ModeFullPage:
		return "fullpage"
	default:
		return "unknown"
	}
}

// Label returns the display name of the mode.
func (m Mode) Label() string {
	switch m {
	case ModeHifdh:
		return "Hifdh"
	case ModeVerse:
		return "Verse"
	case ModeFullPage:
		return "Full page"
	default:
		return "Unknown"
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m >= 0 && m < modeCount
}

// Next returns the mode that follows m when cycling through modes.
func (m Mode) Next() Mode {
	if !m.Valid() {
		return ModeHifdh
	}
	return (m + 1) % modeCount
}

// ParseMode converts a config or CLI value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hifdh", "hifz":
		return ModeHifdh, nil
	case "verse", "ayah":
		return ModeVerse, nil
	case "fullpage", "full-page", "full_page", "page":
		return ModeFullPage, nil
	default:
		return ModeHifdh, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfiguration, s)
	}
}

// Phase identifies which part of a mode's cycle a position belongs to.
type Phase int

const (
	PhaseSolo       Phase = iota // a single verse on its own
	PhaseAccumulate              // verses 0..anchor played as one group
	PhasePage                    // one verse of a full-page pass
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSolo:
		return "solo"
	case PhaseAccumulate:
		return "accumulate"
	case PhasePage:
		return "page"
	default:
		return "unknown"
	}
}

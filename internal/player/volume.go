package player

import (
	"math"

	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// silentBelow is the lowest exponent passed to beep; anything quieter is
// rendered silent.
const silentBelow = -10.0

// gain is the user volume: a linear level in [0, 1] and a mute switch that
// keeps the level for unmuting.
type gain struct {
	level float64
	muted bool
}

// exponent maps level onto effects.Volume with base 2, so halving the level
// halves the amplitude.
func (g gain) exponent() float64 {
	if g.level <= 0 {
		return silentBelow
	}
	return max(math.Log2(min(g.level, 1)), silentBelow)
}

func (g gain) apply(v *effects.Volume) {
	v.Base = 2
	v.Volume = g.exponent()
	v.Silent = g.muted || g.level <= 0
}

// SetVolume clamps level to [0, 1]. The sounding clip changes immediately.
func (p *Player) SetVolume(level float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gain.level = min(max(level, 0), 1)
	p.applyGain()
}

func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gain.level
}

func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gain.muted = muted
	p.applyGain()
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gain.muted
}

// applyGain requires p.mu.
func (p *Player) applyGain() {
	if p.cur == nil {
		return
	}
	speaker.Lock()
	p.gain.apply(p.cur.volume)
	speaker.Unlock()
}

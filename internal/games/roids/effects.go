package roids

import (
	"github.com/vovakirdan/tui-roids/internal/core"
	"github.com/vovakirdan/tui-roids/internal/sim"
)

const (
	flashTime  = 0.25
	bannerTime = 1.5
)

type flash struct {
	pos core.Vec2
	ttl float64
	big bool
}

// effects is the audio collaborator for a terminal: cues become short
// explosion flashes and banner messages instead of sounds.
type effects struct {
	flashes   []flash
	banner    string
	bannerTTL float64
	played    map[sim.Effect]int
}

func newEffects() *effects {
	return &effects{played: make(map[sim.Effect]int)}
}

// Play implements sim.Audio.
func (f *effects) Play(e sim.Effect, pos core.Vec2) {
	f.played[e]++
	switch e {
	case sim.EffectAsteroidHitHuge, sim.EffectAsteroidHitBig:
		f.flashes = append(f.flashes, flash{pos: pos, ttl: flashTime, big: true})
	case sim.EffectAsteroidHitMed, sim.EffectAsteroidHitSmall:
		f.flashes = append(f.flashes, flash{pos: pos, ttl: flashTime})
	case sim.EffectUFOExplode, sim.EffectShipExplode:
		f.flashes = append(f.flashes, flash{pos: pos, ttl: 2 * flashTime, big: true})
	case sim.EffectExtraLife:
		f.show("EXTRA LIFE")
	case sim.EffectUFOArrive:
		f.show("INCOMING")
	}
}

func (f *effects) show(text string) {
	f.banner = text
	f.bannerTTL = bannerTime
}

// advance ages flashes and the banner by dt seconds.
func (f *effects) advance(dt float64) {
	live := f.flashes[:0]
	for _, fl := range f.flashes {
		fl.ttl -= dt
		if fl.ttl > 0 {
			live = append(live, fl)
		}
	}
	f.flashes = live

	if f.bannerTTL > 0 {
		f.bannerTTL -= dt
		if f.bannerTTL <= 0 {
			f.banner = ""
		}
	}
}

func (f *effects) reset() {
	f.flashes = f.flashes[:0]
	f.banner = ""
	f.bannerTTL = 0
	clear(f.played)
}

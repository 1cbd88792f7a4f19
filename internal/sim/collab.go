package sim

import (
	"github.com/vovakirdan/tui-roids/internal/core"
)

// EntityView is the read-only entity state handed to collaborators.
type EntityView struct {
	Handle    Handle
	Category  Category
	Size      SizeClass
	Small     bool
	Pos       core.Vec2
	Rotation  float64
	Radius    float64
	Shape     []core.Vec2 // Shared, do not modify
	OnScreen  bool
	Thrusting bool
}

// Renderer mirrors entities for presentation. Calls happen on the tick
// goroutine.
type Renderer interface {
	EntityAdded(v EntityView)
	EntityRemoved(h Handle)
	EntityMoved(v EntityView)
}

// Effect is a presentation cue.
type Effect uint8

const (
	EffectNone Effect = iota
	EffectFire
	EffectUFOFire
	EffectThrust
	EffectAsteroidHitHuge
	EffectAsteroidHitBig
	EffectAsteroidHitMed
	EffectAsteroidHitSmall
	EffectUFOArrive
	EffectUFOExplode
	EffectUFOWarp
	EffectShipExplode
	EffectExtraLife
	EffectWaveStart
)

// EffectForSize returns the hit cue for an asteroid size.
func EffectForSize(s SizeClass) Effect {
	switch s {
	case SizeBig:
		return EffectAsteroidHitBig
	case SizeMed:
		return EffectAsteroidHitMed
	case SizeSmall:
		return EffectAsteroidHitSmall
	default:
		return EffectAsteroidHitHuge
	}
}

// Audio plays fire-and-forget cues. Implementations swallow their own errors.
type Audio interface {
	Play(effect Effect, pos core.Vec2)
}

// EventKind names an achievement-relevant occurrence.
type EventKind uint8

const (
	EventNone EventKind = iota
	EventUFOOffScreenKill
	EventTrickShot
	EventHitStreak   // Value is the streak length
	EventCounter     // Counter and Value carry the new lifetime total
	EventWaveReached // Value is the wave number
)

func (k EventKind) String() string {
	switch k {
	case EventUFOOffScreenKill:
		return "ufo-offscreen-kill"
	case EventTrickShot:
		return "trick-shot"
	case EventHitStreak:
		return "hit-streak"
	case EventCounter:
		return "counter"
	case EventWaveReached:
		return "wave-reached"
	default:
		return "none"
	}
}

// Event is sent to the achievements collaborator.
type Event struct {
	Kind    EventKind
	Counter CounterID
	Value   int
}

// Achievements receives outbound events and score submissions. Corrected
// progress flows back through Simulation.ApplyCorrectedProgress.
type Achievements interface {
	Notify(ev Event)
	SubmitScore(score int)
}

// Persistence stores lifetime counters and final scores.
type Persistence interface {
	LoadCounters() (Counters, error)
	SaveCounters(c Counters) error
	SaveScore(score, wave int) error
}

type nopRenderer struct{}

func (nopRenderer) EntityAdded(EntityView) {}
func (nopRenderer) EntityRemoved(Handle)   {}
func (nopRenderer) EntityMoved(EntityView) {}

type nopAudio struct{}

func (nopAudio) Play(Effect, core.Vec2) {}

type nopAchievements struct{}

func (nopAchievements) Notify(Event)    {}
func (nopAchievements) SubmitScore(int) {}

type nopPersistence struct{}

func (nopPersistence) LoadCounters() (Counters, error) { return Counters{}, nil }
func (nopPersistence) SaveCounters(Counters) error     { return nil }
func (nopPersistence) SaveScore(int, int) error        { return nil }

package sim

import (
	"github.com/vovakirdan/tui-roids/internal/core"
)

// EntitySnapshot captures one entity for replay comparisons.
type EntitySnapshot struct {
	Handle     Handle
	Category   Category
	Size       SizeClass
	Pos        core.Vec2
	Vel        core.Vec2
	Rotation   float64
	OnScreen   bool
	HasWrapped bool
}

// Snapshot captures the deterministic state of a simulation.
type Snapshot struct {
	Ticks    int
	Time     float64
	Wave     int
	Score    int
	Lives    int
	Streak   int
	GameOver bool
	Timers   int
	Entities []EntitySnapshot
}

// Snapshot returns the current state. Two simulations built with the same
// options and fed the same controls produce equal snapshots.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Ticks:    s.ticks,
		Time:     s.timers.Now(),
		Wave:     s.wave,
		Score:    s.score,
		Lives:    s.lives,
		Streak:   s.streak,
		GameOver: s.gameOver,
		Timers:   s.timers.Len(),
		Entities: make([]EntitySnapshot, 0, s.ents.len()),
	}
	s.ents.each(func(e *Entity) {
		snap.Entities = append(snap.Entities, EntitySnapshot{
			Handle:     e.handle,
			Category:   e.category,
			Size:       e.size,
			Pos:        e.Pos,
			Vel:        e.Vel,
			Rotation:   e.Rotation,
			OnScreen:   e.OnScreen,
			HasWrapped: e.HasWrapped,
		})
	})
	return snap
}

package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-roids/internal/config"
	"github.com/vovakirdan/tui-roids/internal/core"
)

const (
	splitAngleJitter = 0.4 * math.Pi
	splitScaleMin    = 0.75
	splitScaleMax    = 1.25
	maxAsteroidSpin  = 1.0
)

func (s *Simulation) asteroidRadius(size SizeClass) float64 {
	r := s.cfg.Asteroids.Radius
	switch size {
	case SizeHuge:
		return r.Huge
	case SizeBig:
		return r.Big
	case SizeMed:
		return r.Med
	default:
		return r.Small
	}
}

// asteroidPoints returns the score for breaking an asteroid of size.
// Smaller remnants are worth more.
func (s *Simulation) asteroidPoints(size SizeClass) int {
	p := s.cfg.Scoring.Asteroid
	switch size {
	case SizeHuge:
		return p.Huge
	case SizeBig:
		return p.Big
	case SizeMed:
		return p.Med
	default:
		return p.Small
	}
}

func (s *Simulation) asteroidFactory(size SizeClass, variant int) func() *Entity {
	return func() *Entity {
		r := s.asteroidRadius(size)
		if r <= 0 {
			panic(fmt.Sprintf("sim: no radius for %s asteroids", size))
		}
		return &Entity{
			category:  CategoryAsteroid,
			archetype: asteroidArchetype(size, variant),
			size:      size,
			radius:    r,
			shape:     asteroidShape(variant, r),
		}
	}
}

func (s *Simulation) newAsteroid(size SizeClass, pos, vel core.Vec2, onScreen bool) *Entity {
	variant := s.rng.Intn(max(s.cfg.Asteroids.Variants, 1))
	key := asteroidArchetype(size, variant)
	spin := s.uniform(-maxAsteroidSpin, maxAsteroidSpin)
	return s.spawn(key, s.asteroidFactory(size, variant), func(e *Entity) {
		e.Pos = pos
		e.Vel = vel
		e.Rotation = s.randAngle()
		e.Spin = spin
		e.OnScreen = onScreen
		e.Dynamic = true
	})
}

// spawnAsteroid places a new asteroid outside the frame. Slow speeds are
// favored, and the exclusion margin grows with speed. The margin is measured
// from the rim, so no part of the rock starts inside the frame.
func (s *Simulation) spawnAsteroid(size SizeClass) *Entity {
	minSpeed := s.cfg.Asteroids.MinSpeed
	upper := max(minSpeed, min(4*minSpeed, 0.33*s.cfg.Asteroids.MaxSpeed))
	r := s.rng.Float64()
	speed := minSpeed + (upper-minSpeed)*r*r

	margin := s.asteroidRadius(size) + s.uniform(max(1.25*speed, 50), max(3.5*speed, 200))
	dir := core.FromAngle(s.randAngle(), 1)
	dist := max(s.world.Width, s.world.Height) / 2
	pos := dir.Scale(dist)
	for s.world.ContainsInflated(pos, margin) {
		dist *= 1.1
		pos = dir.Scale(dist)
	}

	// The heading is drawn independently of the placement bearing.
	vel := core.FromAngle(s.randAngle(), speed)
	return s.newAsteroid(size, pos, vel, false)
}

// SplitVelocities returns the child velocities for a parent moving at v.
// The first child is v projected onto a direction offset from v's heading
// and scaled; the second keeps v1+v2 == 2v.
func SplitVelocities(v core.Vec2, offset, scale float64) (core.Vec2, core.Vec2) {
	u := core.FromAngle(v.Angle()+offset, 1)
	v1 := u.Scale(v.Dot(u) * scale)
	v2 := v.Scale(2).Sub(v1)
	return v1, v2
}

// hitAsteroid breaks a, splitting it if it is large enough. credit controls
// whether the player scores for it.
func (s *Simulation) hitAsteroid(a *Entity, credit bool) {
	if !a.alive {
		return
	}
	if credit {
		s.addScore(s.asteroidPoints(a.size))
		s.bump(CounterAsteroidsDestroyed)
	}
	s.audio.Play(EffectForSize(a.size), a.Pos)
	s.spawnFragments(a.Pos, a.Vel, s.cfg.Timing.FragmentCount/2)

	if next, ok := a.size.Next(); ok {
		boost := config.Must(s.cfg.Waves.AsteroidSpeedBoost(s.configWave()))
		v := a.Vel
		if v.LenSq() == 0 {
			v = core.FromAngle(s.randAngle(), s.cfg.Asteroids.MinSpeed)
		}
		offset := s.uniform(-splitAngleJitter, splitAngleJitter)
		scale := s.uniform(splitScaleMin, splitScaleMax)
		v1, v2 := SplitVelocities(v, offset, scale)
		// Children go in before the parent is removed; removal checks for
		// an empty field. They inherit the parent's on-screen latch.
		s.newAsteroid(next, a.Pos, v1.Scale(boost), a.OnScreen)
		s.newAsteroid(next, a.Pos, v2.Scale(boost), a.OnScreen)
	}
	s.destroy(a)
}

// asteroidRemoved schedules the next wave once the field is clear.
func (s *Simulation) asteroidRemoved() {
	if s.gameOver || s.ents.count(CategoryAsteroid) > 0 || s.timers.Pending(keyWaveAdvance) {
		return
	}
	s.timers.Schedule(keyWaveAdvance, s.cfg.Timing.WaveAdvanceDelay, ActionWaveAdvance, Handle{}, 0)
	s.log.Debug("field clear", "wave", s.wave)
}

func (s *Simulation) advanceWave() {
	if s.gameOver {
		return
	}
	s.startWave(s.wave + 1)
}

func (s *Simulation) startWave(wave int) {
	s.wave = wave
	n := s.cfg.NumAsteroids(s.configWave())
	for i := 0; i < n; i++ {
		s.spawnAsteroid(SizeHuge)
	}
	s.audio.Play(EffectWaveStart, core.Vec2{})
	s.ach.Notify(Event{Kind: EventWaveReached, Value: wave})
	s.log.Info("wave started", "wave", wave, "asteroids", n)

	if s.ents.get(s.player) != nil {
		s.scheduleUFOCheck(1)
	}
	if n == 0 {
		s.asteroidRemoved()
	}
}

const shotRadius = 2.0

func (s *Simulation) spawnFragments(pos, base core.Vec2, n int) {
	for i := 0; i < n; i++ {
		vel := base.Scale(0.5).Add(core.FromAngle(s.randAngle(), s.uniform(20, 120)))
		life := s.uniform(0.5, 1) * s.cfg.Timing.FragmentLifetime
		s.spawnFragment(pos, vel, life)
	}
}

func (s *Simulation) spawnFragment(pos, vel core.Vec2, life float64) {
	s.spawn(archetypeFragment, newFragment, func(e *Entity) {
		e.Pos = pos
		e.Vel = vel
		e.Lifetime = life
		e.Expires = true
		e.OnScreen = true
		e.Dynamic = true
	})
}

func newFragment() *Entity {
	return &Entity{category: CategoryFragment, archetype: archetypeFragment, radius: 1}
}

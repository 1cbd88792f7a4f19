package sim

import (
	"math"

	"github.com/vovakirdan/tui-roids/internal/config"
	"github.com/vovakirdan/tui-roids/internal/core"
)

const interceptEpsilon = 1e-9

func warpKey(h Handle) string   { return "ufo-warp-" + h.String() }
func launchKey(h Handle) string { return "ufo-launch-" + h.String() }

// scheduleUFOCheck arms the self-renewing UFO spawn check. factor scales
// the wave's mean interval; kills use a shorter revenge interval.
func (s *Simulation) scheduleUFOCheck(factor float64) {
	mean := config.Must(s.cfg.Waves.MeanUFOTime(s.configWave())) * factor
	delay := mean * s.uniform(0.75, 1.25)
	s.timers.Schedule(keyUFOCheck, delay, ActionUFOCheck, Handle{}, 0)
}

func (s *Simulation) ufoCheck() {
	if s.gameOver {
		return
	}
	if s.ents.count(CategoryUFO) < config.Must(s.cfg.Waves.MaxUFOs(s.configWave())) {
		s.spawnUFO()
	}
	s.scheduleUFOCheck(1)
}

func (s *Simulation) ufoFactory(small bool) func() *Entity {
	return func() *Entity {
		key, r := archetypeUFOBig, s.cfg.UFO.BigRadius
		if small {
			key, r = archetypeUFOSmall, s.cfg.UFO.SmallRadius
		}
		return &Entity{
			category:  CategoryUFO,
			archetype: key,
			small:     small,
			radius:    r,
			shape:     ufoShape(r),
		}
	}
}

// spawnUFO holds a new UFO just past a side edge and schedules its launch.
func (s *Simulation) spawnUFO() {
	small := s.rng.Float64() < config.Must(s.cfg.Waves.SmallUFOChance(s.configWave()))
	side := 1.0
	if s.rng.Intn(2) == 0 {
		side = -1
	}
	key := archetypeUFOBig
	if small {
		key = archetypeUFOSmall
	}

	u := s.spawn(key, s.ufoFactory(small), func(e *Entity) {
		e.Pos = core.V(side*(s.world.MaxX()+e.radius), 0)
	})
	s.timers.Schedule(launchKey(u.handle), s.cfg.UFO.LaunchDelay, ActionUFOLaunch, u.handle, 0)
	s.audio.Play(EffectUFOArrive, u.Pos)
	s.log.Debug("ufo spawned", "small", small, "side", side)
}

// launchUFO picks the clearest entry row and sends the UFO toward the
// field center.
func (s *Simulation) launchUFO(h Handle) {
	u := s.ents.get(h)
	if u == nil {
		return
	}
	side := 1.0
	if u.Pos.X < 0 {
		side = -1
	}

	r := u.radius
	y := s.launchRow(u.Pos.X, r, func() float64 {
		return s.uniform(s.world.MinY()+r, s.world.MaxY()-r)
	})

	speed := config.Must(s.cfg.Waves.UFOMaxSpeed(s.configWave(), u.small))
	u.Pos.Y = y
	u.Vel = core.V(-side*speed, 0)
	u.Dynamic = true
}

// launchRow draws up to LaunchCandidates rows from next and returns the one
// with the most asteroid clearance at x. A row clearer than
// ClearanceFactor radii is taken at once.
func (s *Simulation) launchRow(x, r float64, next func() float64) float64 {
	bestY, bestClear := 0.0, math.Inf(-1)
	for range s.cfg.UFO.LaunchCandidates {
		y := next()
		c := s.ufoClearance(core.V(x, y))
		if c > bestClear {
			bestY, bestClear = y, c
		}
		if c > s.cfg.UFO.ClearanceFactor*r {
			break
		}
	}
	return bestY
}

// ufoClearance is the smallest gap between p and any asteroid, measured
// from p and from its image across the opposite side edge.
func (s *Simulation) ufoClearance(p core.Vec2) float64 {
	mirror := p
	if p.X > 0 {
		mirror.X -= s.world.Width
	} else {
		mirror.X += s.world.Width
	}

	best := math.Inf(1)
	s.ents.each(func(a *Entity) {
		if a.category != CategoryAsteroid {
			return
		}
		d := min(core.Dist(p, a.Pos), core.Dist(mirror, a.Pos)) - a.radius
		best = min(best, d)
	})
	return best
}

// fly runs one tick of UFO behavior: occasional course changes once on
// screen and occasional aimed shots.
func (s *Simulation) fly(u *Entity) {
	if !u.Dynamic {
		return
	}
	if u.OnScreen && (u.Vel.LenSq() == 0 || s.chance(s.cfg.UFO.MoveChance)) {
		speed := config.Must(s.cfg.Waves.UFOMaxSpeed(s.configWave(), u.small))
		u.Vel = core.FromAngle(s.randAngle(), speed)
	}
	if s.chance(s.cfg.UFO.FireChance) {
		s.ufoFire(u)
	}
}

func (s *Simulation) ufoFire(u *Entity) {
	p := s.ents.get(s.player)
	if p == nil {
		return
	}
	wave := s.configWave()
	if u.shots >= config.Must(s.cfg.Waves.UFOMaxShots(wave)) {
		return
	}

	speed := config.Must(s.cfg.Waves.UFOShotSpeed(wave))
	t, ok := Intercept(p.Pos.Sub(u.Pos), p.Vel, speed)
	if !ok {
		return
	}
	aim := p.Pos.Add(p.Vel.Scale(t)).Sub(u.Pos)
	accuracy := config.Must(s.cfg.Waves.UFOAccuracy(wave))
	angle := aim.Angle() + s.uniform(-1, 1)*(1-accuracy)*math.Pi/2
	dir := core.FromAngle(angle, 1)

	s.spawn(archetypeUFOShot, newUFOShot, func(e *Entity) {
		e.Pos = u.Pos.Add(dir.Scale(u.radius + shotRadius))
		e.Vel = dir.Scale(speed)
		e.Lifetime = s.cfg.UFO.ShotLifetime
		e.Expires = true
		e.Dynamic = true
		e.Owner = u.handle
	})
	u.shots++
	s.audio.Play(EffectUFOFire, u.Pos)
}

func newUFOShot() *Entity {
	return &Entity{category: CategoryUFOShot, archetype: archetypeUFOShot, radius: shotRadius}
}

// Intercept returns the time at which a shot fired now at speed meets a
// target at relative position rel moving with velocity tv. It prefers the
// earliest non-negative time and reports false when none exists.
func Intercept(rel, tv core.Vec2, speed float64) (float64, bool) {
	a := speed*speed - tv.Dot(tv)
	b := -2 * rel.Dot(tv)
	c := -rel.Dot(rel)

	if math.Abs(a) < interceptEpsilon {
		// Equal speeds: b*t + c = 0
		if math.Abs(b) < interceptEpsilon {
			return 0, false
		}
		t := -c / b
		return t, t >= 0
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t1 := (-b - sq) / (2 * a)
	t2 := (-b + sq) / (2 * a)
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	switch {
	case t1 >= 0:
		return t1, true
	case t2 >= 0:
		return t2, true
	default:
		return 0, false
	}
}

// destroyUFO explodes u. With credit the player scores, lifetime counters
// move and the next UFO is scheduled sooner.
func (s *Simulation) destroyUFO(u *Entity, credit bool, shot *Entity) {
	if !u.alive {
		return
	}
	if credit {
		points := s.cfg.Scoring.UFOBig
		if u.small {
			points = s.cfg.Scoring.UFOSmall
		}
		s.addScore(points)
		s.bump(CounterUFOsDestroyed)
		if !u.OnScreen {
			s.ach.Notify(Event{Kind: EventUFOOffScreenKill})
		}
		if shot != nil && shot.HasWrapped {
			s.ach.Notify(Event{Kind: EventTrickShot})
		}
		if s.ents.get(s.player) != nil && !s.gameOver {
			s.scheduleUFOCheck(s.cfg.Timing.RevengeFactor)
		}
	}
	s.audio.Play(EffectUFOExplode, u.Pos)
	s.spawnFragments(u.Pos, u.Vel, s.cfg.Timing.FragmentCount)
	s.destroy(u)
}

// warpOut removes a UFO without an explosion.
func (s *Simulation) warpOut(h Handle) {
	u := s.ents.get(h)
	if u == nil {
		return
	}
	s.audio.Play(EffectUFOWarp, u.Pos)
	s.destroy(u)
}

// warpAllUFOs schedules every UFO to warp out after its own random delay
// and returns the longest delay.
func (s *Simulation) warpAllUFOs() float64 {
	longest := 0.0
	s.ents.each(func(u *Entity) {
		if u.category != CategoryUFO {
			return
		}
		d := s.uniform(s.cfg.UFO.WarpOutMin, s.cfg.UFO.WarpOutMax)
		s.timers.Schedule(warpKey(u.handle), d, ActionUFOWarp, u.handle, 0)
		longest = max(longest, d)
	})
	return longest
}

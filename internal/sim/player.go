package sim

import (
	"math"

	"github.com/vovakirdan/tui-roids/internal/core"
)

const exhaustChance = 0.5

func (s *Simulation) playerFactory() (string, func() *Entity) {
	key := archetypePlayerNormal
	if s.retro {
		key = archetypePlayerRetro
	}
	return key, func() *Entity {
		return &Entity{
			category:  CategoryPlayer,
			archetype: key,
			radius:    s.limits.Radius,
			shape:     shipShape(s.limits.Radius),
		}
	}
}

// spawnPlayer consumes a life and places the ship at the field center.
func (s *Simulation) spawnPlayer() {
	s.lives--
	key, factory := s.playerFactory()
	p := s.spawn(key, factory, func(e *Entity) {
		e.Rotation = -math.Pi / 2
		e.OnScreen = true
		e.Dynamic = true
	})
	s.player = p.handle
	s.fireCooldown = 0
	s.log.Debug("player spawned", "lives", s.lives)
}

// steerPlayer applies one tick of controls to the ship.
func (s *Simulation) steerPlayer(c Controls, dt float64) {
	s.fireCooldown = max(0, s.fireCooldown-dt)
	p := s.ents.get(s.player)
	if p == nil {
		return
	}
	lim := s.limits
	dx := core.Clamp(c.Stick.X, -1, 1)
	dy := core.Clamp(c.Stick.Y, -1, 1)

	p.Rotation += dx * lim.RotationSpeed * dt

	wasThrusting := p.Thrusting
	p.Thrusting = dy < 0
	if p.Thrusting {
		p.Vel = p.Vel.Add(core.FromAngle(p.Rotation, lim.Thrust*-dy*dt))
		if p.Vel.Len() > lim.MaxSpeed {
			p.Vel = p.Vel.WithLen(lim.MaxSpeed)
		}
		if !wasThrusting {
			s.audio.Play(EffectThrust, p.Pos)
		}
		if s.chance(exhaustChance) {
			back := p.Rotation + math.Pi + s.uniform(-0.3, 0.3)
			pos := p.Pos.Add(core.FromAngle(p.Rotation+math.Pi, p.radius))
			vel := p.Vel.Add(core.FromAngle(back, s.uniform(60, 120)))
			s.spawnFragment(pos, vel, 0.3*s.cfg.Timing.FragmentLifetime)
		}
	}

	if c.Fire && s.fireCooldown == 0 && s.ents.count(CategoryPlayerShot) < lim.MaxShots {
		s.firePlayerShot(p)
	}
}

func (s *Simulation) firePlayerShot(p *Entity) {
	dir := core.FromAngle(p.Rotation, 1)
	s.spawn(archetypePlayerShot, newPlayerShot, func(e *Entity) {
		e.Pos = p.Pos.Add(dir.Scale(p.radius))
		e.Vel = p.Vel.Add(dir.Scale(s.limits.ShotSpeed))
		e.Lifetime = s.limits.ShotLifetime
		e.Expires = true
		e.OnScreen = true
		e.Dynamic = true
		e.Owner = p.handle
	})
	s.fireCooldown = s.limits.FireCooldown
	s.audio.Play(EffectFire, p.Pos)
}

func newPlayerShot() *Entity {
	return &Entity{category: CategoryPlayerShot, archetype: archetypePlayerShot, radius: shotRadius}
}

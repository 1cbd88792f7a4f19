// Package sim is the roids gameplay core: a single-threaded simulation
// advanced one fixed tick at a time by its host.
package sim

import (
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-roids/internal/config"
	"github.com/vovakirdan/tui-roids/internal/core"
	"github.com/vovakirdan/tui-roids/internal/pool"
	"github.com/vovakirdan/tui-roids/internal/world"
)

// DefaultTickRate is the host frame rate the per-tick chances are tuned for.
const DefaultTickRate = 60.0

// Timer keys.
const (
	keyWaveAdvance = "wave-advance"
	keyUFOCheck    = "ufo-check"
	keyRespawn     = "respawn"
)

// Options configures a Simulation. Config must already be validated.
type Options struct {
	Config   config.RoidsConfig
	Seed     int64
	Retro    bool    // Use the retro ship limits
	TickRate float64 // Host ticks per second; zero means DefaultTickRate
	Logger   *log.Logger

	Renderer     Renderer
	Audio        Audio
	Achievements Achievements
	Persistence  Persistence
}

// Controls is one tick of player input. Stick components are in [-1, 1];
// negative Y thrusts and X rotates.
type Controls struct {
	Stick core.Vec2
	Fire  bool
}

// State is a summary of the session for hosts and HUDs.
type State struct {
	Score       int
	Lives       int
	Wave        int
	Streak      int
	GameOver    bool
	Paused      bool
	PlayerAlive bool
	Elapsed     float64
}

// Simulation owns every piece of mutable game state: entities, pools,
// timers and the random source.
type Simulation struct {
	cfg      config.RoidsConfig
	limits   config.PlayerLimits
	retro    bool
	world    world.World
	rng      *rand.Rand
	seed     int64
	dt       float64
	tickRate float64
	log      *log.Logger

	renderer Renderer
	audio    Audio
	ach      Achievements
	persist  Persistence

	pool   *pool.Pool[*Entity]
	ents   table
	timers *Timers
	router *Router
	grid   *grid

	dead        []*Entity
	collidables []*Entity
	contacts    []Contact

	started       bool
	paused        bool // Explicit pause, owned by the game
	hostSuspended bool // Implicit pause, owned by the host
	gameOver      bool
	ticks         int

	wave          int
	score         int
	lives         int
	nextExtraLife int
	streak        int
	counters      Counters

	player       Handle
	fireCooldown float64
}

// New builds a simulation. It loads lifetime counters from persistence but
// does not start play; call Start.
func New(opts Options) *Simulation {
	tickRate := opts.TickRate
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	cfg := opts.Config
	s := &Simulation{
		cfg:      cfg,
		limits:   cfg.Player.Limits(opts.Retro),
		retro:    opts.Retro,
		world:    world.New(cfg.World.Width, cfg.World.Height, cfg.World.Hysteresis),
		rng:      rand.New(rand.NewSource(opts.Seed)),
		seed:     opts.Seed,
		dt:       1 / tickRate,
		tickRate: tickRate,
		log:      logger,
		renderer: opts.Renderer,
		audio:    opts.Audio,
		ach:      opts.Achievements,
		persist:  opts.Persistence,
		pool:     pool.New[*Entity](),
		timers:   NewTimers(),
	}
	if s.renderer == nil {
		s.renderer = nopRenderer{}
	}
	if s.audio == nil {
		s.audio = nopAudio{}
	}
	if s.ach == nil {
		s.ach = nopAchievements{}
	}
	if s.persist == nil {
		s.persist = nopPersistence{}
	}

	s.router = NewRouter(s.ents.get)
	s.registerRoutes()
	s.grid = newGrid(s.world, s.cellSize())

	counters, err := s.persist.LoadCounters()
	if err != nil {
		s.log.Warn("load counters failed", "err", err)
	}
	s.counters = counters
	return s
}

// Start spawns the player and the first wave.
func (s *Simulation) Start() {
	if s.started {
		return
	}
	s.started = true
	s.lives = s.cfg.InitialLives
	s.nextExtraLife = s.cfg.ExtraLifeScore
	s.bump(CounterGamesPlayed)
	s.log.Info("game started", "seed", s.seed, "lives", s.lives)

	s.spawnPlayer()
	s.startWave(max(s.cfg.StartWave, 1))
}

// Tick advances the simulation by one fixed step. Within a tick, contacts
// are resolved and their removals applied before wrapping, AI and timers
// see the entity set.
func (s *Simulation) Tick(c Controls) {
	if !s.started || s.Paused() {
		return
	}
	s.ticks++

	s.steerPlayer(c, s.dt)
	s.integrate(s.dt)
	s.resolveContacts()
	s.flush()
	s.wrapPass()
	s.aiPass()
	s.timers.Advance(s.dt, s.fire)
	s.flush()
	s.publishMoves()
}

// Pause stops the simulation until Resume. HostResume does not undo it.
func (s *Simulation) Pause() { s.paused = true }

// Resume clears an explicit pause.
func (s *Simulation) Resume() { s.paused = false }

// HostSuspend pauses on behalf of the host, e.g. when the window loses focus.
func (s *Simulation) HostSuspend() { s.hostSuspended = true }

// HostResume clears a host suspension only.
func (s *Simulation) HostResume() { s.hostSuspended = false }

// Paused reports whether ticks are currently ignored.
func (s *Simulation) Paused() bool { return s.paused || s.hostSuspended }

// ExplicitlyPaused reports whether the game itself is paused.
func (s *Simulation) ExplicitlyPaused() bool { return s.paused }

// Quiescent reports whether no UFOs, UFO shots or fragments remain.
func (s *Simulation) Quiescent() bool {
	return s.ents.count(CategoryUFO) == 0 &&
		s.ents.count(CategoryUFOShot) == 0 &&
		s.ents.count(CategoryFragment) == 0
}

// State returns a summary of the session.
func (s *Simulation) State() State {
	return State{
		Score:       s.score,
		Lives:       s.lives,
		Wave:        s.wave,
		Streak:      s.streak,
		GameOver:    s.gameOver,
		Paused:      s.Paused(),
		PlayerAlive: s.ents.get(s.player) != nil,
		Elapsed:     s.timers.Now(),
	}
}

// Seed returns the seed the simulation was built with.
func (s *Simulation) Seed() int64 { return s.seed }

// Counters returns the lifetime counters including this session.
func (s *Simulation) Counters() Counters { return s.counters }

// World returns the playfield geometry.
func (s *Simulation) World() world.World { return s.world }

// Count returns the number of live entities in category c.
func (s *Simulation) Count(c Category) int { return s.ents.count(c) }

// Each calls fn with a view of every live entity.
func (s *Simulation) Each(fn func(EntityView)) {
	s.ents.each(func(e *Entity) { fn(e.View()) })
}

// configWave is the wave used for config lookups.
func (s *Simulation) configWave() int {
	if s.cfg.FixedWave {
		return max(s.cfg.StartWave, 1)
	}
	return s.wave
}

func (s *Simulation) cellSize() float64 {
	r := max(
		s.cfg.Asteroids.Radius.Huge,
		s.cfg.UFO.BigRadius,
		s.cfg.UFO.SmallRadius,
		s.limits.Radius,
	)
	return 2*r + shotRadius
}

// spawn takes an entity from the pool, lets init place it and announces it.
func (s *Simulation) spawn(key string, factory func() *Entity, init func(e *Entity)) *Entity {
	e := s.pool.Acquire(key, factory)
	s.ents.insert(e)
	init(e)
	s.renderer.EntityAdded(e.View())
	return e
}

// destroy takes e out of play. Its slot and pooled instance are recycled
// at the next flush so handlers later in the tick can still read it.
func (s *Simulation) destroy(e *Entity) {
	if !e.alive {
		return
	}
	s.ents.kill(e)
	switch e.category {
	case CategoryUFOShot:
		if owner := s.ents.get(e.Owner); owner != nil {
			owner.shots--
		}
	case CategoryUFO:
		s.timers.Cancel(warpKey(e.handle))
		s.timers.Cancel(launchKey(e.handle))
	case CategoryPlayer:
		s.player = Handle{}
	}
	s.renderer.EntityRemoved(e.handle)
	s.dead = append(s.dead, e)

	if e.category == CategoryAsteroid {
		s.asteroidRemoved()
	}
}

func (s *Simulation) flush() {
	for i, e := range s.dead {
		s.ents.release(e)
		s.pool.Release(e)
		s.dead[i] = nil
	}
	s.dead = s.dead[:0]
}

func (s *Simulation) integrate(dt float64) {
	s.ents.each(func(e *Entity) {
		if e.Expires {
			e.Lifetime -= dt
			if e.Lifetime <= 0 {
				s.expire(e)
				return
			}
		}
		if e.Dynamic {
			e.Move(dt)
			e.Rotation += e.Spin * dt
		}
	})
}

func (s *Simulation) expire(e *Entity) {
	if e.category == CategoryPlayerShot && !e.Hit {
		s.breakStreak()
	}
	s.destroy(e)
}

// separation is the offset from a to b. Bodies that have latched on
// screen meet across the wrap; anything still outside uses raw positions.
func (s *Simulation) separation(a, b *Entity) core.Vec2 {
	if a.OnScreen && b.OnScreen {
		return s.world.Delta(a.Pos, b.Pos)
	}
	return b.Pos.Sub(a.Pos)
}

func (s *Simulation) resolveContacts() {
	s.grid.clear()
	s.collidables = s.collidables[:0]
	s.ents.each(func(e *Entity) {
		if s.router.Collides(e.category) {
			s.grid.insert(e.Pos, len(s.collidables))
			s.collidables = append(s.collidables, e)
		}
	})

	s.contacts = s.contacts[:0]
	for i, a := range s.collidables {
		s.grid.around(a.Pos, func(j int) {
			if j <= i {
				return
			}
			b := s.collidables[j]
			if !s.router.Interested(a.category, b.category) {
				return
			}
			if core.CirclesOverlap(core.Vec2{}, a.radius, s.separation(a, b), b.radius) {
				s.contacts = append(s.contacts, Contact{A: a.handle, B: b.handle})
			}
		})
	}

	for _, c := range s.contacts {
		s.router.Dispatch(c)
	}
}

func (s *Simulation) wrapPass() {
	leash := max(s.world.Width, s.world.Height)
	s.ents.each(func(e *Entity) {
		if e.category == CategoryFragment || !e.Dynamic {
			return
		}
		if s.world.Wrap(&e.Body).Wrapped() {
			e.HasWrapped = true
		}
		// Bodies that never latched and drifted far out are turned back.
		if !e.OnScreen && !s.world.ContainsInflated(e.Pos, leash) {
			e.Vel = e.Pos.Scale(-1).WithLen(e.Vel.Len())
		}
	})
}

func (s *Simulation) aiPass() {
	s.ents.each(func(e *Entity) {
		if e.category == CategoryUFO {
			s.fly(e)
		}
	})
}

func (s *Simulation) publishMoves() {
	s.ents.each(func(e *Entity) {
		if e.Dynamic {
			s.renderer.EntityMoved(e.View())
		}
	})
}

// fire runs a due timer.
func (s *Simulation) fire(t Timer) {
	switch t.Action {
	case ActionWaveAdvance:
		s.advanceWave()
	case ActionUFOCheck:
		s.ufoCheck()
	case ActionUFOLaunch:
		s.launchUFO(t.Target)
	case ActionUFOWarp:
		s.warpOut(t.Target)
	case ActionRespawn:
		s.respawn(t.Attempt)
	}
}

func (s *Simulation) registerRoutes() {
	s.router.Handle(CategoryPlayerShot, CategoryAsteroid, func(shot, a *Entity) {
		s.shotHit(shot)
		s.destroy(shot)
		s.hitAsteroid(a, true)
	})
	s.router.Handle(CategoryPlayerShot, CategoryUFO, func(shot, u *Entity) {
		s.shotHit(shot)
		s.destroyUFO(u, true, shot)
		s.destroy(shot)
	})
	s.router.Handle(CategoryPlayer, CategoryAsteroid, func(p, a *Entity) {
		s.killPlayer(p)
		s.hitAsteroid(a, true)
	})
	s.router.Handle(CategoryPlayer, CategoryUFO, func(p, u *Entity) {
		s.killPlayer(p)
		s.destroyUFO(u, true, nil)
	})
	s.router.Handle(CategoryPlayer, CategoryUFOShot, func(p, shot *Entity) {
		s.destroy(shot)
		s.killPlayer(p)
	})
	s.router.Handle(CategoryUFO, CategoryAsteroid, func(u, a *Entity) {
		s.destroyUFO(u, false, nil)
		s.hitAsteroid(a, false)
	})
	s.router.Handle(CategoryUFOShot, CategoryAsteroid, func(shot, a *Entity) {
		s.destroy(shot)
		s.hitAsteroid(a, false)
	})
}

func (s *Simulation) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.rng.Float64()
}

func (s *Simulation) randAngle() float64 {
	return s.rng.Float64() * 2 * math.Pi
}

// chance rolls a probability tuned per 60Hz tick, rescaled so the
// per-second rate holds at the actual tick rate.
func (s *Simulation) chance(p60 float64) bool {
	p := p60
	if s.tickRate != DefaultTickRate {
		p = 1 - math.Pow(1-p60, DefaultTickRate/s.tickRate)
	}
	return s.rng.Float64() < p
}

func (s *Simulation) playerPos() core.Vec2 {
	if p := s.ents.get(s.player); p != nil {
		return p.Pos
	}
	return core.Vec2{}
}

// Package roids implements the roids arcade shooter on top of the sim
// package. It adapts the simulation to the registry's Game interface and
// renders it into a character screen.
package roids

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-roids/internal/config"
	"github.com/vovakirdan/tui-roids/internal/core"
	"github.com/vovakirdan/tui-roids/internal/registry"
	"github.com/vovakirdan/tui-roids/internal/sim"
)

// Game IDs.
const (
	IDNormal = "roids"
	IDRetro  = "roids_retro"
)

// Minimum playable screen size in cells.
const (
	minScreenW = 40
	minScreenH = 15
)

// Game adapts a sim.Simulation to registry.Game.
type Game struct {
	retro bool

	runtime core.RuntimeConfig
	cfg     config.RoidsConfig
	host    Host
	hosted  bool
	log     *log.Logger

	sim  *sim.Simulation
	view *mirror
	fx   *effects

	// Next session, built in the background once a game is over.
	pending <-chan *sim.Simulation
}

// New creates a roids game with the modern ship.
func New() *Game {
	return &Game{view: newMirror(), fx: newEffects()}
}

// NewRetro creates a roids game with the retro ship.
func NewRetro() *Game {
	g := New()
	g.retro = true
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.retro {
		return IDRetro
	}
	return IDNormal
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.retro {
		return "Roids (Retro)"
	}
	return "Roids"
}

// Description implements registry.Describer.
func (g *Game) Description() string {
	if g.retro {
		return "Classic ship: heavier handling and a slower trigger"
	}
	return "Break rocks, dodge UFOs, survive the waves"
}

// Theme implements registry.Themed. The retro ship plays on a green
// phosphor screen.
func (g *Game) Theme() string {
	if g.retro {
		return "phosphor"
	}
	return "color"
}

// Reset starts a new session. A session prepared in the background for
// the same seed is picked up instead of building one.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if !g.hosted {
		g.attachHost()
	}
	next := g.takePrepared(runtime.Seed)
	if next == nil {
		g.cfg = loadConfig(g.log)
		next = sim.New(g.options(runtime.Seed))
	}
	g.sim = next
	g.view.reset()
	g.fx.reset()
	g.sim.Start()
}

func (g *Game) attachHost() {
	g.hosted = true
	_, _, factory := currentSettings()
	if factory != nil {
		g.host = factory()
	}
	g.log = g.host.Logger
	if g.log == nil {
		g.log = log.New(io.Discard)
	}
}

func (g *Game) options(seed int64) sim.Options {
	opts := sim.Options{
		Config:       g.cfg,
		Seed:         seed,
		Retro:        g.retro,
		TickRate:     float64(g.runtime.TickRate),
		Logger:       g.log.WithPrefix(g.ID()),
		Renderer:     g.view,
		Audio:        g.fx,
		Achievements: g.host.Achievements,
	}
	if g.host.NewSession != nil {
		opts.Persistence = g.host.NewSession(g.ID())
	}
	return opts
}

// prepareNext builds the session for the following seed while the game
// over screen is showing.
func (g *Game) prepareNext() {
	g.cfg = loadConfig(g.log)
	g.pending = sim.Prepare(g.options(g.runtime.Seed + 1))
}

func (g *Game) takePrepared(seed int64) *sim.Simulation {
	if g.pending == nil {
		return nil
	}
	s := <-g.pending
	g.pending = nil
	if s == nil || s.Seed() != seed {
		return nil
	}
	g.log.Debug("using prepared session", "seed", seed)
	return s
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.applyCorrections()

	if in.Has(core.ActionPause) && !g.sim.State().GameOver {
		if g.sim.ExplicitlyPaused() {
			g.sim.Resume()
		} else {
			g.sim.Pause()
		}
	}

	if !g.sim.Paused() {
		g.sim.Tick(sim.Controls{Stick: in.Stick(), Fire: in.Has(core.ActionFire)})
		g.fx.advance(1 / g.tickRate())
	}

	st := g.State()
	if st.GameOver && g.pending == nil {
		g.prepareNext()
	}
	return core.StepResult{State: st}
}

func (g *Game) tickRate() float64 {
	if g.runtime.TickRate > 0 {
		return float64(g.runtime.TickRate)
	}
	return sim.DefaultTickRate
}

// applyCorrections drains counter corrections reported back by the
// achievements host.
func (g *Game) applyCorrections() {
	for g.host.Corrections != nil {
		select {
		case c, ok := <-g.host.Corrections:
			if !ok {
				g.host.Corrections = nil
				return
			}
			g.sim.ApplyCorrectedProgress(c.Counter, c.Value)
		default:
			return
		}
	}
}

// HostSuspend pauses the game on behalf of the terminal, e.g. on focus loss.
func (g *Game) HostSuspend() {
	if g.sim != nil {
		g.sim.HostSuspend()
	}
}

// HostResume undoes HostSuspend. An explicit pause stays in effect.
func (g *Game) HostResume() {
	if g.sim != nil {
		g.sim.HostResume()
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	g.drawEntities(dst, newViewport(g.sim.World(), dst))
	g.renderHUD(dst)
	g.renderOverlay(dst)
}

// State returns the current game state. Game over is reported only once
// the field has settled.
func (g *Game) State() core.GameState {
	st := g.sim.State()
	return core.GameState{
		Score:    st.Score,
		Wave:     st.Wave,
		Lives:    st.Lives,
		GameOver: st.GameOver && g.sim.Quiescent(),
		Paused:   st.Paused,
	}
}

// Snapshot returns the simulation state for replay comparison.
func (g *Game) Snapshot() sim.Snapshot {
	return g.sim.Snapshot()
}

// Close releases the host resources. Safe to call more than once.
func (g *Game) Close() error {
	if g.host.Close != nil {
		g.host.Close()
		g.host.Close = nil
	}
	return nil
}

func init() {
	registry.Register(IDNormal, func() registry.Game {
		return New()
	})
	registry.Register(IDRetro, func() registry.Game {
		return NewRetro()
	})
}

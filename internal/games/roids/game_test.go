package roids

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-roids/internal/achievements"
	"github.com/vovakirdan/tui-roids/internal/core"
	"github.com/vovakirdan/tui-roids/internal/registry"
	"github.com/vovakirdan/tui-roids/internal/sim"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

// scriptedInput rotates, thrusts and fires on a fixed pattern.
func scriptedInput(n int) []core.InputFrame {
	frames := make([]core.InputFrame, n)
	for i := range frames {
		frames[i] = core.NewInputFrame()
		switch {
		case i%40 < 10:
			frames[i].Set(core.ActionLeft)
		case i%40 < 15:
			frames[i].Set(core.ActionUp)
		}
		if i%7 == 0 {
			frames[i].Set(core.ActionFire)
		}
	}
	return frames
}

func TestGameDeterminism(t *testing.T) {
	inputs := scriptedInput(600)

	run := func() sim.Snapshot {
		g := New()
		g.Reset(testRuntime(12345))
		for _, in := range inputs {
			g.Step(in)
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()
	if !reflect.DeepEqual(snap1, snap2) {
		t.Errorf("same seed and input diverged:\n%+v\n%+v", snap1, snap2)
	}
	if snap1.Ticks != len(inputs) {
		t.Errorf("Ticks = %d, expected %d", snap1.Ticks, len(inputs))
	}
}

func TestGameRegistered(t *testing.T) {
	for _, id := range []string{IDNormal, IDRetro} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}

func TestGamePause(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("pause key should pause")
	}

	before := g.Snapshot()
	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("simulation advanced while paused")
	}

	// Focus changes must not undo an explicit pause.
	g.HostSuspend()
	g.HostResume()
	if !g.State().Paused {
		t.Error("host resume cleared an explicit pause")
	}

	g.Step(pause)
	if g.State().Paused {
		t.Error("second pause key should resume")
	}
}

func TestGameHostSuspend(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	g.HostSuspend()
	g.Step(core.NewInputFrame())
	if !g.State().Paused || g.Snapshot().Ticks != 0 {
		t.Fatal("host suspension should stop ticks")
	}
	g.HostResume()
	g.Step(core.NewInputFrame())
	if g.State().Paused || g.Snapshot().Ticks != 1 {
		t.Error("host resume should restart ticks")
	}
}

func TestGameRender(t *testing.T) {
	g := New()
	g.Reset(testRuntime(7))
	g.Step(core.NewInputFrame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	hud := screen.Row(0)
	if !strings.Contains(hud, "Score: 0") || !strings.Contains(hud, "Wave: 1") {
		t.Errorf("HUD row = %q", hud)
	}
	if !strings.Contains(screen.String(), "↑") {
		t.Error("ship glyph not drawn")
	}
}

func TestGameRenderTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 60, Seed: 1})

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("expected size warning")
	}
}

func TestMirrorTracksSimulation(t *testing.T) {
	g := New()
	g.Reset(testRuntime(3))
	for _, in := range scriptedInput(120) {
		g.Step(in)
	}

	live := 0
	g.sim.Each(func(v sim.EntityView) {
		live++
		got, ok := g.view.views[v.Handle]
		if !ok {
			t.Errorf("entity %v missing from mirror", v.Handle)
			return
		}
		if got.Pos != v.Pos {
			t.Errorf("entity %v at %v in mirror, %v in sim", v.Handle, got.Pos, v.Pos)
		}
	})
	if g.view.len() != live {
		t.Errorf("mirror holds %d views, sim has %d entities", g.view.len(), live)
	}
}

func TestShipGlyph(t *testing.T) {
	tests := []struct {
		name string
		rot  float64
		want rune
	}{
		{"east", 0, '→'},
		{"up", -1.5707963, '↑'},
		{"down", 1.5707963, '↓'},
		{"west", 3.14159, '←'},
		{"many turns", 4 * 3.14159265, '→'},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := shipGlyph(tc.rot); got != tc.want {
				t.Errorf("shipGlyph(%v) = %q, expected %q", tc.rot, got, tc.want)
			}
		})
	}
}

func TestGameAppliesCorrections(t *testing.T) {
	corrections := make(chan achievements.Correction, 2)
	SetHost(func() Host { return Host{Corrections: corrections} })
	t.Cleanup(func() { SetHost(nil) })

	g := New()
	g.Reset(testRuntime(1))

	corrections <- achievements.Correction{Counter: sim.CounterUFOsDestroyed, Value: 12}
	close(corrections)
	g.Step(core.NewInputFrame())

	if got := g.sim.Counters().UFOsDestroyed; got != 12 {
		t.Errorf("UFOsDestroyed = %d, expected 12", got)
	}
	// A closed channel is dropped rather than spun on.
	g.Step(core.NewInputFrame())
	if g.host.Corrections != nil {
		t.Error("closed corrections channel should be released")
	}
}

func TestGameUsesPreparedSession(t *testing.T) {
	g := New()
	g.Reset(testRuntime(5))

	g.prepareNext()
	g.Reset(testRuntime(6))
	if g.sim.Seed() != 6 || !g.sim.State().PlayerAlive {
		t.Fatalf("prepared session not started: seed %d", g.sim.Seed())
	}

	// A prepared session for the wrong seed is discarded.
	g.prepareNext()
	g.Reset(testRuntime(42))
	if g.sim.Seed() != 42 {
		t.Errorf("Seed() = %d, expected 42", g.sim.Seed())
	}
	if g.pending != nil {
		t.Error("pending session should be consumed")
	}
}

func TestEffectsExpire(t *testing.T) {
	fx := newEffects()
	fx.Play(sim.EffectAsteroidHitHuge, core.V(1, 2))
	fx.Play(sim.EffectExtraLife, core.Vec2{})
	if len(fx.flashes) != 1 || fx.banner != "EXTRA LIFE" {
		t.Fatalf("flashes = %v banner = %q", fx.flashes, fx.banner)
	}

	fx.advance(flashTime)
	if len(fx.flashes) != 0 {
		t.Error("flash outlived its time")
	}
	fx.advance(bannerTime)
	if fx.banner != "" {
		t.Error("banner outlived its time")
	}
	if fx.played[sim.EffectExtraLife] != 1 {
		t.Errorf("played = %v", fx.played)
	}
}

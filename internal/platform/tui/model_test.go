package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-roids/internal/core"
	"github.com/vovakirdan/tui-roids/internal/registry"
)

func init() {
	registry.Register("fake", func() registry.Game { return &fakeGame{} })
}

// fakeGame records what the model feeds it.
type fakeGame struct {
	resets    []core.RuntimeConfig
	frames    []core.InputFrame
	state     core.GameState
	suspended bool
	closed    int
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.resets = append(g.resets, cfg)
	g.state = core.GameState{}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in)
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(s *core.Screen) {
	s.Clear()
	s.DrawText(0, 0, "fake")
}

func (g *fakeGame) State() core.GameState { return g.state }
func (g *fakeGame) HostSuspend()          { g.suspended = true }
func (g *fakeGame) HostResume()           { g.suspended = false }
func (g *fakeGame) Close() error          { g.closed++; return nil }

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm
}

func newTestModel(g *fakeGame) Model {
	m := NewModel(g, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 10})
	m.Init()
	return m
}

func TestModelHeldSteering(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g)

	m = update(t, m, keyMsg("left"))
	for i := 0; i < 5; i++ {
		m = update(t, m, TickMsg{})
	}
	for i, f := range g.frames {
		if !f.Has(core.ActionLeft) {
			t.Errorf("frame %d lost the held key", i)
		}
	}
}

func TestModelFireIsOneShot(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g)

	m = update(t, m, keyMsg(" "))
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	if !g.frames[0].Has(core.ActionFire) {
		t.Error("fire missing from first frame")
	}
	if g.frames[1].Has(core.ActionFire) {
		t.Error("fire repeated without a key press")
	}
}

func TestModelRestartAdvancesSeed(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g)

	g.state.GameOver = true
	m = update(t, m, TickMsg{})

	m = update(t, m, keyMsg("r"))
	m = update(t, m, TickMsg{})

	if len(g.resets) != 2 {
		t.Fatalf("resets = %d, expected 2", len(g.resets))
	}
	if got := g.resets[1].Seed; got != 11 {
		t.Errorf("restart seed = %d, expected 11", got)
	}
	if m.Seed() != 11 {
		t.Errorf("Seed() = %d, expected 11", m.Seed())
	}
}

func TestModelRestartIgnoredWhilePlaying(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g)

	m = update(t, m, keyMsg("r"))
	update(t, m, TickMsg{})
	if len(g.resets) != 1 {
		t.Errorf("restart while playing reset the game")
	}
}

func TestModelFocus(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g)

	m = update(t, m, tea.BlurMsg{})
	if !g.suspended {
		t.Error("blur should suspend the game")
	}
	update(t, m, tea.FocusMsg{})
	if g.suspended {
		t.Error("focus should resume the game")
	}
}

func TestModelEscPausesThenQuitsAtGameOver(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g)

	m = update(t, m, keyMsg("esc"))
	m = update(t, m, TickMsg{})
	if !g.frames[0].Has(core.ActionPause) {
		t.Error("esc should pause while playing")
	}

	g.state.GameOver = true
	m = update(t, m, TickMsg{})
	_, cmd := m.Update(keyMsg("esc"))
	if cmd == nil {
		t.Fatal("esc at game over should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected a quit command")
	}
}

func TestModelView(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g)
	if !strings.Contains(m.View(), "fake") {
		t.Error("View() should render the game")
	}
}

func TestCloseGame(t *testing.T) {
	g := &fakeGame{}
	if err := closeGame(g); err != nil || g.closed != 1 {
		t.Errorf("closeGame() = %v, closed %d", err, g.closed)
	}
}

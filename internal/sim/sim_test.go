package sim

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-roids/internal/config"
	"github.com/vovakirdan/tui-roids/internal/core"
)

type recordAchievements struct {
	events []Event
	scores []int
}

func (r *recordAchievements) Notify(ev Event)       { r.events = append(r.events, ev) }
func (r *recordAchievements) SubmitScore(score int) { r.scores = append(r.scores, score) }

func (r *recordAchievements) has(kind EventKind) bool {
	for _, ev := range r.events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

type recordPersistence struct {
	start   Counters
	loadErr error
	saved   []Counters
	scores  []int
}

func (p *recordPersistence) LoadCounters() (Counters, error) { return p.start, p.loadErr }

func (p *recordPersistence) SaveCounters(c Counters) error {
	p.saved = append(p.saved, c)
	return nil
}

func (p *recordPersistence) SaveScore(score, wave int) error {
	p.scores = append(p.scores, score)
	return nil
}

type recordRenderer struct {
	added, removed int
	live           map[Handle]EntityView
}

func (r *recordRenderer) EntityAdded(v EntityView) {
	r.added++
	if r.live == nil {
		r.live = make(map[Handle]EntityView)
	}
	r.live[v.Handle] = v
}

func (r *recordRenderer) EntityRemoved(h Handle) {
	r.removed++
	delete(r.live, h)
}

func (r *recordRenderer) EntityMoved(v EntityView) { r.live[v.Handle] = v }

func testOptions(mutate func(*config.RoidsConfig)) Options {
	cfg := config.DefaultRoidsConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	return Options{Config: cfg, Seed: 1}
}

func newTestSim(t *testing.T, mutate func(*config.RoidsConfig)) (*Simulation, *recordAchievements) {
	t.Helper()
	ach := &recordAchievements{}
	opts := testOptions(mutate)
	opts.Achievements = ach
	s := New(opts)
	s.Start()
	return s, ach
}

// clearAsteroids empties the field without letting the next wave start.
func clearAsteroids(s *Simulation) {
	s.ents.each(func(e *Entity) {
		if e.category == CategoryAsteroid {
			s.destroy(e)
		}
	})
	s.timers.Cancel(keyWaveAdvance)
	s.flush()
}

func ticksFor(seconds float64) int {
	return int(math.Ceil(seconds*DefaultTickRate)) + 1
}

func TestStartSpawnsPlayerAndWave(t *testing.T) {
	s, ach := newTestSim(t, nil)

	st := s.State()
	if !st.PlayerAlive || st.Wave != 1 {
		t.Fatalf("State() = %+v", st)
	}
	if st.Lives != s.cfg.InitialLives-1 {
		t.Errorf("Lives = %d, expected spawn to consume one", st.Lives)
	}
	if got, want := s.Count(CategoryAsteroid), s.cfg.NumAsteroids(1); got != want {
		t.Errorf("asteroids = %d, expected %d", got, want)
	}
	if !s.timers.Pending(keyUFOCheck) {
		t.Error("UFO check should be armed after the wave starts")
	}
	if !ach.has(EventWaveReached) {
		t.Error("wave event not sent")
	}
	if s.Counters().GamesPlayed != 1 {
		t.Errorf("GamesPlayed = %d, expected 1", s.Counters().GamesPlayed)
	}
}

func TestAsteroidsSpawnOffScreen(t *testing.T) {
	s, _ := newTestSim(t, nil)
	s.ents.each(func(e *Entity) {
		if e.category != CategoryAsteroid {
			return
		}
		if s.world.Contains(e.Pos) || e.OnScreen {
			t.Errorf("asteroid spawned in view at %v", e.Pos)
		}
	})

	before := s.Snapshot()
	s.wrapPass()
	after := s.Snapshot()
	for i := range before.Entities {
		if before.Entities[i].Category == CategoryAsteroid && before.Entities[i].Pos != after.Entities[i].Pos {
			t.Error("off-screen asteroid was wrapped")
		}
	}
}

func TestWrapPassMarksWrapped(t *testing.T) {
	s, _ := newTestSim(t, nil)
	clearAsteroids(s)

	p := s.ents.get(s.player)
	p.Pos = core.V(s.world.MaxX()+s.world.Hysteresis+1, 0)
	s.wrapPass()

	if p.Pos.X > 0 {
		t.Errorf("player not wrapped: %v", p.Pos)
	}
	if !p.HasWrapped {
		t.Error("HasWrapped not set after an edge crossing")
	}
}

func TestPausePrecedence(t *testing.T) {
	s, _ := newTestSim(t, nil)

	s.Pause()
	s.HostSuspend()
	s.HostResume()
	if !s.Paused() {
		t.Fatal("host resume must not clear an explicit pause")
	}

	ticks := s.ticks
	now := s.timers.Now()
	s.Tick(Controls{})
	if s.ticks != ticks || s.timers.Now() != now {
		t.Error("paused simulation advanced")
	}

	s.HostSuspend()
	s.Resume()
	if !s.Paused() {
		t.Error("host suspension should still hold")
	}
	s.HostResume()
	if s.Paused() {
		t.Error("simulation should run once both flags clear")
	}
}

func TestWaveAdvanceAfterFieldClears(t *testing.T) {
	s, _ := newTestSim(t, nil)
	s.ents.each(func(e *Entity) {
		if e.category == CategoryAsteroid {
			s.destroy(e)
		}
	})
	s.flush()

	rem, ok := s.timers.Remaining(keyWaveAdvance)
	if !ok || math.Abs(rem-s.cfg.Timing.WaveAdvanceDelay) > 1e-9 {
		t.Fatalf("wave advance Remaining() = %v, %v", rem, ok)
	}

	for i := 0; i < ticksFor(s.cfg.Timing.WaveAdvanceDelay); i++ {
		s.Tick(Controls{})
	}
	if s.State().Wave != 2 {
		t.Fatalf("Wave = %d, expected 2", s.State().Wave)
	}
	if got, want := s.Count(CategoryAsteroid), s.cfg.NumAsteroids(2); got != want {
		t.Errorf("asteroids = %d, expected %d", got, want)
	}
}

func TestWaveAdvanceCancelledByGameOver(t *testing.T) {
	s, ach := newTestSim(t, nil)
	clearAsteroids(s)
	s.asteroidRemoved()
	if !s.timers.Pending(keyWaveAdvance) {
		t.Fatal("wave advance not scheduled")
	}

	s.endGame()
	if s.timers.Pending(keyWaveAdvance) {
		t.Error("game over should cancel the wave advance")
	}
	if len(ach.scores) != 1 {
		t.Errorf("SubmitScore called %d times, expected 1", len(ach.scores))
	}
}

func TestFixedWaveKeepsConfigCursor(t *testing.T) {
	s, _ := newTestSim(t, func(c *config.RoidsConfig) {
		config.ApplyRoidsPreset(c, config.DifficultyFixed)
	})
	s.wave = 9
	if s.configWave() != 1 {
		t.Errorf("configWave() = %d, expected 1", s.configWave())
	}
}

func TestExtraLife(t *testing.T) {
	s, _ := newTestSim(t, nil)
	lives := s.State().Lives

	s.addScore(s.cfg.ExtraLifeScore - 1)
	if s.State().Lives != lives {
		t.Fatal("extra life granted early")
	}
	s.addScore(1)
	if s.State().Lives != lives+1 {
		t.Errorf("Lives = %d, expected %d", s.State().Lives, lives+1)
	}
	s.addScore(2 * s.cfg.ExtraLifeScore)
	if s.State().Lives != lives+3 {
		t.Errorf("Lives = %d, expected %d after two more thresholds", s.State().Lives, lives+3)
	}
}

func TestHitStreakNotifies(t *testing.T) {
	s, ach := newTestSim(t, nil)
	first := s.cfg.Scoring.StreakThresholds[0]

	for i := 0; i < first; i++ {
		s.shotHit(&Entity{})
	}
	if !ach.has(EventHitStreak) {
		t.Fatalf("no streak event after %d hits", first)
	}

	shot := &Entity{category: CategoryPlayerShot, alive: true}
	s.ents.insert(shot)
	s.expire(shot)
	if s.State().Streak != 0 {
		t.Error("a missed shot should break the streak")
	}
}

func TestCorrectedProgress(t *testing.T) {
	persist := &recordPersistence{start: Counters{UFOsDestroyed: 7}}
	opts := testOptions(nil)
	opts.Persistence = persist
	s := New(opts)

	s.ApplyCorrectedProgress(CounterUFOsDestroyed, 12)
	s.ApplyCorrectedProgress(CounterUFOsDestroyed, 3)
	if got := s.Counters().UFOsDestroyed; got != 12 {
		t.Errorf("UFOsDestroyed = %d, expected 12", got)
	}

	s.Start()
	s.endGame()
	if len(persist.saved) != 1 || persist.saved[0].UFOsDestroyed != 12 || persist.saved[0].GamesPlayed != 1 {
		t.Errorf("saved counters = %+v", persist.saved)
	}
	if len(persist.scores) != 1 {
		t.Errorf("saved scores = %v", persist.scores)
	}
}

func TestLoadCountersFailureIsNotFatal(t *testing.T) {
	opts := testOptions(nil)
	opts.Persistence = &recordPersistence{loadErr: errors.New("disk gone")}
	s := New(opts)
	s.Start()
	if s.Counters().GamesPlayed != 1 {
		t.Errorf("Counters() = %+v", s.Counters())
	}
}

func TestQuiescent(t *testing.T) {
	s, _ := newTestSim(t, nil)
	if !s.Quiescent() {
		t.Fatal("fresh game should be quiescent")
	}
	s.spawnFragments(core.Vec2{}, core.Vec2{}, 3)
	if s.Quiescent() {
		t.Error("fragments should block quiescence")
	}
	for i := 0; i < ticksFor(s.cfg.Timing.FragmentLifetime); i++ {
		s.Tick(Controls{})
	}
	if s.Count(CategoryFragment) != 0 {
		t.Errorf("fragments left: %d", s.Count(CategoryFragment))
	}
}

func TestRendererMirrorsEntities(t *testing.T) {
	r := &recordRenderer{}
	opts := testOptions(nil)
	opts.Renderer = r
	s := New(opts)
	s.Start()

	for i := 0; i < 120; i++ {
		s.Tick(Controls{Fire: true})
	}
	if r.added == 0 || r.removed == 0 {
		t.Fatalf("renderer saw added=%d removed=%d", r.added, r.removed)
	}
	if len(r.live) != s.ents.len() {
		t.Errorf("renderer mirrors %d entities, simulation has %d", len(r.live), s.ents.len())
	}
}

func TestPoolRecyclesDestroyedEntities(t *testing.T) {
	s, _ := newTestSim(t, nil)
	s.spawnFragments(core.Vec2{}, core.Vec2{}, 4)
	s.ents.each(func(e *Entity) {
		if e.category == CategoryFragment {
			s.destroy(e)
		}
	})
	s.flush()
	if s.pool.Idle(archetypeFragment) != 4 {
		t.Errorf("Idle(fragment) = %d, expected 4", s.pool.Idle(archetypeFragment))
	}

	reused := s.pool.Stats().Reused
	s.spawnFragments(core.Vec2{}, core.Vec2{}, 2)
	if s.pool.Stats().Reused != reused+2 {
		t.Error("fragments were not reused")
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() Snapshot {
		s := New(testOptions(nil))
		s.Start()
		for i := 0; i < 900; i++ {
			c := Controls{
				Stick: core.V(math.Sin(float64(i)/40), -0.5),
				Fire:  i%7 == 0,
			}
			s.Tick(c)
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed and inputs produced different snapshots")
	}
}

func TestPrepare(t *testing.T) {
	s := <-Prepare(testOptions(nil))
	if s == nil {
		t.Fatal("Prepare() delivered nil")
	}
	if s.pool.Stats().Created == 0 {
		t.Error("Prepare() should prewarm the pools")
	}

	// A prewarmed session plays the same as a cold one.
	s.Start()
	cold := New(testOptions(nil))
	cold.Start()
	for i := 0; i < 300; i++ {
		s.Tick(Controls{Fire: i%5 == 0})
		cold.Tick(Controls{Fire: i%5 == 0})
	}
	if !reflect.DeepEqual(s.Snapshot(), cold.Snapshot()) {
		t.Error("prewarmed simulation diverged from a cold one")
	}
}

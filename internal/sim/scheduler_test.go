package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-roids/internal/core"
)

func TestRequiredSafeTimeRelaxes(t *testing.T) {
	s, _ := newTestSim(t, nil)
	retries := s.cfg.Timing.RespawnRetries
	step := s.cfg.Timing.SafeTimeBackoff
	if retries == 0 || step != 0.25 {
		t.Fatalf("default retries = %d, backoff = %v", retries, step)
	}

	if got := s.RequiredSafeTime(0); got != s.cfg.SafeTime {
		t.Errorf("first attempt = %v, expected %v", got, s.cfg.SafeTime)
	}
	for attempt := 1; attempt <= retries; attempt++ {
		prev, got := s.RequiredSafeTime(attempt-1), s.RequiredSafeTime(attempt)
		if math.Abs(prev-got-step) > 1e-9 {
			t.Errorf("attempt %d: %v -> %v, expected a %v step", attempt, prev, got, step)
		}
	}
	if got := s.RequiredSafeTime(retries); got != 0 {
		t.Errorf("final attempt = %v, expected 0", got)
	}
	if got := s.RequiredSafeTime(retries + 3); got != 0 {
		t.Errorf("past the final attempt = %v, expected 0", got)
	}
}

func TestKillPlayerSchedulesRespawn(t *testing.T) {
	s, _ := newTestSim(t, nil)
	s.killPlayer(s.ents.get(s.player))

	if s.State().PlayerAlive {
		t.Fatal("player still alive")
	}
	rem, ok := s.timers.Remaining(keyRespawn)
	if !ok || math.Abs(rem-s.cfg.Timing.RespawnDelay) > 1e-9 {
		t.Errorf("respawn in %v, %v; expected %v with no UFOs", rem, ok, s.cfg.Timing.RespawnDelay)
	}
	if s.State().Streak != 0 {
		t.Error("death should break the streak")
	}
}

func TestRespawnRetriesUntilForced(t *testing.T) {
	s, _ := newTestSim(t, nil)
	clearAsteroids(s)
	s.destroy(s.ents.get(s.player))
	s.flush()
	s.newAsteroid(SizeHuge, core.Vec2{}, core.Vec2{}, true)

	lives := s.State().Lives
	retries := s.cfg.Timing.RespawnRetries
	for attempt := 0; attempt < retries; attempt++ {
		s.respawn(attempt)
		if s.State().PlayerAlive {
			t.Fatalf("attempt %d spawned onto an asteroid", attempt)
		}
		next, ok := s.timers.byKey[keyRespawn]
		if !ok || next.Attempt != attempt+1 {
			t.Fatalf("attempt %d: retry not scheduled with attempt %d", attempt, attempt+1)
		}
		if rem, _ := s.timers.Remaining(keyRespawn); math.Abs(rem-s.cfg.Timing.RespawnRetryDelay) > 1e-9 {
			t.Errorf("retry in %v, expected %v", rem, s.cfg.Timing.RespawnRetryDelay)
		}
	}

	s.respawn(retries)
	if !s.State().PlayerAlive {
		t.Fatal("final attempt should spawn regardless of safety")
	}
	if s.State().Lives != lives-1 {
		t.Errorf("Lives = %d, expected %d", s.State().Lives, lives-1)
	}
	if !s.timers.Pending(keyUFOCheck) {
		t.Error("respawn should arm the UFO check")
	}
}

func TestRespawnWithSafeField(t *testing.T) {
	s, _ := newTestSim(t, nil)
	clearAsteroids(s)
	s.destroy(s.ents.get(s.player))
	s.flush()

	s.respawn(0)
	if !s.State().PlayerAlive {
		t.Fatal("clear field should allow an immediate respawn")
	}
}

func TestGameOverWhenOutOfLives(t *testing.T) {
	ach := &recordAchievements{}
	persist := &recordPersistence{}
	opts := testOptions(nil)
	opts.Achievements = ach
	opts.Persistence = persist
	s := New(opts)
	s.Start()

	s.lives = 0
	s.score = 120
	s.killPlayer(s.ents.get(s.player))
	for i := 0; i < ticksFor(s.cfg.Timing.RespawnDelay); i++ {
		s.Tick(Controls{})
	}

	st := s.State()
	if !st.GameOver || st.PlayerAlive {
		t.Fatalf("State() = %+v, expected game over", st)
	}
	if len(ach.scores) != 1 || ach.scores[0] < 120 {
		t.Errorf("submitted scores = %v", ach.scores)
	}
	if len(persist.scores) != 1 || len(persist.saved) == 0 {
		t.Errorf("persisted scores = %v counters = %v", persist.scores, persist.saved)
	}
	if s.timers.Pending(keyRespawn) || s.timers.Pending(keyUFOCheck) || s.timers.Pending(keyWaveAdvance) {
		t.Error("game over should cancel gameplay timers")
	}

	// Further ticks keep the game over without resubmitting.
	for i := 0; i < 10; i++ {
		s.Tick(Controls{})
	}
	if len(ach.scores) != 1 {
		t.Errorf("score submitted %d times", len(ach.scores))
	}
}

package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-roids/internal/sim"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore(ScoreEntry{GameID: "roids", Score: 40}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("roids")
	if err != nil || high != 40 {
		t.Errorf("HighScore() = %d, %v; expected 40", high, err)
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)

	for i, score := range []int{100, 50, 500, 200, 400, 300} {
		_, err := store.SaveScore(ScoreEntry{GameID: "roids", SessionID: "s", Score: score, Wave: i + 1})
		if err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	store.SaveScore(ScoreEntry{GameID: "roids_retro", Score: 900})

	scores, err := store.TopScores("roids", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Wave != 3 || scores[0].SessionID != "s" {
		t.Errorf("Score metadata lost: %+v", scores[0])
	}

	all, err := store.AllScores("roids")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 6 {
		t.Errorf("Expected 6 roids scores, got %d", len(all))
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("roids")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore(ScoreEntry{GameID: "roids", Score: 100})
	store.SaveScore(ScoreEntry{GameID: "roids", Score: 300})
	store.SaveScore(ScoreEntry{GameID: "roids_retro", Score: 50})

	if high, _ := store.HighScore("roids"); high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	if err := store.ClearScores("roids"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if scores, _ := store.TopScores("roids", 10); len(scores) != 0 {
		t.Errorf("Expected 0 roids scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("roids_retro", 10); len(scores) != 1 {
		t.Error("Retro scores should not be affected by clearing roids")
	}
}

func TestStoreCountersNeverDecrease(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveCounters("roids", map[string]int{"ufos_destroyed": 10, "games_played": 3}); err != nil {
		t.Fatalf("SaveCounters() failed: %v", err)
	}
	if err := store.SaveCounters("roids", map[string]int{"ufos_destroyed": 4, "games_played": 5}); err != nil {
		t.Fatalf("SaveCounters() failed: %v", err)
	}

	got, err := store.Counters("roids")
	if err != nil {
		t.Fatalf("Counters() failed: %v", err)
	}
	if got["ufos_destroyed"] != 10 || got["games_played"] != 5 {
		t.Errorf("Counters() = %v", got)
	}

	other, _ := store.Counters("roids_retro")
	if len(other) != 0 {
		t.Errorf("counters leaked across games: %v", other)
	}
}

func TestSessionPersistence(t *testing.T) {
	store := openTestStore(t)
	first := store.NewSession("roids")
	second := store.NewSession("roids")
	if first.ID() == "" || first.ID() == second.ID() {
		t.Fatalf("session ids should be unique: %q %q", first.ID(), second.ID())
	}

	var _ sim.Persistence = first

	want := sim.Counters{UFOsDestroyed: 2, AsteroidsDestroyed: 40, GamesPlayed: 1}
	if err := first.SaveCounters(want); err != nil {
		t.Fatalf("SaveCounters() failed: %v", err)
	}
	if err := first.SaveScore(1200, 4); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	got, err := second.LoadCounters()
	if err != nil {
		t.Fatalf("LoadCounters() failed: %v", err)
	}
	if got != want {
		t.Errorf("LoadCounters() = %+v, expected %+v", got, want)
	}

	scores, _ := store.TopScores("roids", 1)
	if len(scores) != 1 || scores[0].SessionID != first.ID() || scores[0].Wave != 4 {
		t.Errorf("saved score = %+v", scores)
	}
}

func TestStoreRecordProgress(t *testing.T) {
	store := openTestStore(t)

	got, err := store.RecordProgress("ufo-hunter", 40)
	if err != nil || got != 40 {
		t.Fatalf("RecordProgress() = %v, %v", got, err)
	}
	got, _ = store.RecordProgress("ufo-hunter", 20)
	if got != 40 {
		t.Errorf("progress moved backwards to %v", got)
	}

	p, err := store.Achievement("ufo-hunter")
	if err != nil {
		t.Fatalf("Achievement() failed: %v", err)
	}
	if p.Completed() || !p.CompletedAt.IsZero() {
		t.Errorf("partial progress marked complete: %+v", p)
	}

	store.RecordProgress("ufo-hunter", 150)
	p, _ = store.Achievement("ufo-hunter")
	if p.Percent != 100 || !p.Completed() || p.CompletedAt.IsZero() {
		t.Errorf("completion not recorded: %+v", p)
	}

	if _, err := store.Achievement("missing"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Achievement(missing) error = %v", err)
	}

	list, _ := store.Achievements()
	if len(list) != 1 {
		t.Errorf("Achievements() = %v", list)
	}
}

func TestStorePendingProgress(t *testing.T) {
	store := openTestStore(t)

	store.CacheProgress("trick-shot", 100)
	store.CacheProgress("rock-breaker", 30)
	store.CacheProgress("rock-breaker", 10)

	pending, err := store.PendingProgress()
	if err != nil {
		t.Fatalf("PendingProgress() failed: %v", err)
	}
	if len(pending) != 2 || pending[0].AchievementID != "rock-breaker" || pending[0].Percent != 30 {
		t.Fatalf("PendingProgress() = %+v", pending)
	}

	// A stale clear leaves newer cached progress in place.
	store.CacheProgress("rock-breaker", 60)
	store.ClearPending("rock-breaker", 30)
	store.ClearPending("trick-shot", 100)

	pending, _ = store.PendingProgress()
	if len(pending) != 1 || pending[0].Percent != 60 {
		t.Errorf("PendingProgress() after clear = %+v", pending)
	}
}

func TestStoreLeaderboard(t *testing.T) {
	store := openTestStore(t)

	store.SubmitLeaderboard("a", 10)
	store.SubmitLeaderboard("b", 30)
	store.SubmitLeaderboard("c", 20)

	top, err := store.Leaderboard(2)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}
	if len(top) != 2 || top[0].SessionID != "b" || top[1].SessionID != "c" {
		t.Errorf("Leaderboard() = %+v", top)
	}
}

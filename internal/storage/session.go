package storage

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-roids/internal/sim"
)

// Session persists one game session. It satisfies sim.Persistence.
type Session struct {
	store  *Store
	gameID string
	id     string
}

// NewSession returns a session with a fresh random id.
func (s *Store) NewSession(gameID string) *Session {
	return &Session{store: s, gameID: gameID, id: uuid.NewString()}
}

// ID returns the session id stamped on saved scores.
func (s *Session) ID() string { return s.id }

// GameID returns the game the session records scores under.
func (s *Session) GameID() string { return s.gameID }

// LoadCounters returns the lifetime counters saved by earlier sessions.
func (s *Session) LoadCounters() (sim.Counters, error) {
	values, err := s.store.Counters(s.gameID)
	if err != nil {
		return sim.Counters{}, err
	}
	return sim.Counters{
		UFOsDestroyed:      values[string(sim.CounterUFOsDestroyed)],
		AsteroidsDestroyed: values[string(sim.CounterAsteroidsDestroyed)],
		GamesPlayed:        values[string(sim.CounterGamesPlayed)],
	}, nil
}

// SaveCounters stores the lifetime counters.
func (s *Session) SaveCounters(c sim.Counters) error {
	return s.store.SaveCounters(s.gameID, map[string]int{
		string(sim.CounterUFOsDestroyed):      c.UFOsDestroyed,
		string(sim.CounterAsteroidsDestroyed): c.AsteroidsDestroyed,
		string(sim.CounterGamesPlayed):        c.GamesPlayed,
	})
}

// SaveScore records the final score of the session.
func (s *Session) SaveScore(score, wave int) error {
	_, err := s.store.SaveScore(ScoreEntry{
		GameID:    s.gameID,
		SessionID: s.id,
		Score:     score,
		Wave:      wave,
	})
	return err
}

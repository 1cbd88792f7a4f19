package sim

import "slices"

// CounterID names a lifetime counter.
type CounterID string

const (
	CounterUFOsDestroyed      CounterID = "ufos_destroyed"
	CounterAsteroidsDestroyed CounterID = "asteroids_destroyed"
	CounterGamesPlayed        CounterID = "games_played"
)

// Counters are lifetime totals carried across sessions.
type Counters struct {
	UFOsDestroyed      int
	AsteroidsDestroyed int
	GamesPlayed        int
}

// Get returns the counter named id.
func (c Counters) Get(id CounterID) int {
	switch id {
	case CounterUFOsDestroyed:
		return c.UFOsDestroyed
	case CounterAsteroidsDestroyed:
		return c.AsteroidsDestroyed
	case CounterGamesPlayed:
		return c.GamesPlayed
	}
	return 0
}

func (c *Counters) ptr(id CounterID) *int {
	switch id {
	case CounterUFOsDestroyed:
		return &c.UFOsDestroyed
	case CounterAsteroidsDestroyed:
		return &c.AsteroidsDestroyed
	case CounterGamesPlayed:
		return &c.GamesPlayed
	}
	return nil
}

// bump increments a counter and reports the new total upstream.
func (s *Simulation) bump(id CounterID) {
	p := s.counters.ptr(id)
	if p == nil {
		return
	}
	*p++
	s.ach.Notify(Event{Kind: EventCounter, Counter: id, Value: *p})
}

// ApplyCorrectedProgress reconciles a local counter with a value reported
// back by the achievements host. Counters never move backwards.
func (s *Simulation) ApplyCorrectedProgress(id CounterID, value int) {
	p := s.counters.ptr(id)
	if p == nil || value <= *p {
		return
	}
	s.log.Debug("counter corrected", "counter", id, "from", *p, "to", value)
	*p = value
}

// addScore credits points and grants extra lives at each multiple of the
// extra-life score.
func (s *Simulation) addScore(points int) {
	if points <= 0 || s.gameOver {
		return
	}
	s.score += points
	step := s.cfg.ExtraLifeScore
	if step <= 0 {
		return
	}
	for s.score >= s.nextExtraLife {
		s.lives++
		s.nextExtraLife += step
		s.audio.Play(EffectExtraLife, s.playerPos())
		s.log.Debug("extra life", "score", s.score, "lives", s.lives)
	}
}

// shotHit extends the hit streak.
func (s *Simulation) shotHit(shot *Entity) {
	shot.Hit = true
	s.streak++
	if slices.Contains(s.cfg.Scoring.StreakThresholds, s.streak) {
		s.ach.Notify(Event{Kind: EventHitStreak, Value: s.streak})
	}
}

func (s *Simulation) breakStreak() {
	s.streak = 0
}

func (s *Simulation) persistCounters() {
	if err := s.persist.SaveCounters(s.counters); err != nil {
		s.log.Warn("save counters failed", "err", err)
	}
}

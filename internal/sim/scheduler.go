package sim

import (
	"github.com/vovakirdan/tui-roids/internal/core"
)

// killPlayer destroys the ship, clears UFOs off the board and schedules the
// respawn-or-game-over decision once they are gone.
func (s *Simulation) killPlayer(p *Entity) {
	if !p.alive {
		return
	}
	s.audio.Play(EffectShipExplode, p.Pos)
	s.spawnFragments(p.Pos, p.Vel, 2*s.cfg.Timing.FragmentCount)
	s.breakStreak()
	s.destroy(p)

	s.timers.Cancel(keyUFOCheck)
	warp := s.warpAllUFOs()
	s.timers.Schedule(keyRespawn, s.cfg.Timing.RespawnDelay+warp, ActionRespawn, Handle{}, 0)
	s.log.Info("player destroyed", "lives", s.lives, "score", s.score)
}

// RequiredSafeTime returns how long the spawn point must stay clear on the
// given respawn attempt. Each retry relaxes it and the final attempt
// accepts any spot.
func (s *Simulation) RequiredSafeTime(attempt int) float64 {
	if attempt >= s.cfg.Timing.RespawnRetries {
		return 0
	}
	return max(0, s.cfg.SafeTime-s.cfg.Timing.SafeTimeBackoff*float64(attempt))
}

func (s *Simulation) respawn(attempt int) {
	if s.gameOver {
		return
	}
	if s.lives <= 0 {
		s.endGame()
		return
	}

	required := s.RequiredSafeTime(attempt)
	if required > 0 && !s.spawnPointSafe(required) {
		s.log.Debug("spawn point unsafe", "attempt", attempt, "safe_time", required)
		s.timers.Schedule(keyRespawn, s.cfg.Timing.RespawnRetryDelay, ActionRespawn, Handle{}, attempt+1)
		return
	}
	if required == 0 && attempt > 0 {
		s.log.Debug("spawning without safety margin", "attempt", attempt)
	}
	s.spawnPlayer()
	s.scheduleUFOCheck(1)
}

// spawnPointSafe reports whether nothing hostile will cross the field
// center within the next required seconds.
func (s *Simulation) spawnPointSafe(required float64) bool {
	center := core.Vec2{}
	safe := true
	s.ents.each(func(e *Entity) {
		if !safe {
			return
		}
		switch e.category {
		case CategoryAsteroid, CategoryUFO, CategoryUFOShot:
		default:
			return
		}
		end := e.Pos.Add(e.Vel.Scale(required))
		if !s.world.IsSafe(center, e.Pos, end, s.limits.Radius+e.radius) {
			safe = false
		}
	})
	return safe
}

// endGame moves to game over and hands the final score to collaborators.
func (s *Simulation) endGame() {
	if s.gameOver {
		return
	}
	s.gameOver = true
	s.timers.Cancel(keyWaveAdvance)
	s.timers.Cancel(keyUFOCheck)
	s.timers.Cancel(keyRespawn)
	s.log.Info("game over", "score", s.score, "wave", s.wave)
	st := s.pool.Stats()
	s.log.Debug("pool usage", "created", st.Created, "reused", st.Reused, "released", st.Released)

	s.ach.SubmitScore(s.score)
	if err := s.persist.SaveScore(s.score, s.wave); err != nil {
		s.log.Warn("save score failed", "err", err)
	}
	s.persistCounters()
}

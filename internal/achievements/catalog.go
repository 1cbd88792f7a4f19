// Package achievements reports gameplay events and scores to an
// achievement and leaderboard backend without blocking the game loop.
package achievements

import "github.com/vovakirdan/tui-roids/internal/sim"

// Achievement describes one unlockable. Counter-based achievements track
// a lifetime counter toward Goal; event-based ones unlock when an event of
// kind Event arrives with a value of at least Goal.
type Achievement struct {
	ID          string
	Title       string
	Description string

	Counter sim.CounterID
	Event   sim.EventKind
	Goal    int
}

// counterBased reports whether progress is a share of a lifetime counter.
func (a Achievement) counterBased() bool { return a.Counter != "" }

// percent converts a counter value into progress toward the goal.
func (a Achievement) percent(value int) float64 {
	if a.Goal <= 0 {
		return 100
	}
	return min(100, 100*float64(value)/float64(a.Goal))
}

// counterValue converts reported progress back into a counter value.
func (a Achievement) counterValue(percent float64) int {
	return int(percent * float64(a.Goal) / 100)
}

// Catalog is the built-in set of roids achievements.
var Catalog = []Achievement{
	{ID: "ufo-hunter", Title: "UFO Hunter", Description: "Destroy 25 UFOs", Counter: sim.CounterUFOsDestroyed, Goal: 25},
	{ID: "rock-breaker", Title: "Rock Breaker", Description: "Break 500 asteroids", Counter: sim.CounterAsteroidsDestroyed, Goal: 500},
	{ID: "regular", Title: "Regular", Description: "Play 10 games", Counter: sim.CounterGamesPlayed, Goal: 10},
	{ID: "blind-side", Title: "Blind Side", Description: "Destroy a UFO before it reaches the screen", Event: sim.EventUFOOffScreenKill},
	{ID: "trick-shot", Title: "Trick Shot", Description: "Destroy a UFO with a shot that wrapped around", Event: sim.EventTrickShot},
	{ID: "sharpshooter", Title: "Sharpshooter", Description: "Hit 25 times in a row", Event: sim.EventHitStreak, Goal: 25},
	{ID: "survivor", Title: "Survivor", Description: "Reach wave 10", Event: sim.EventWaveReached, Goal: 10},
}

// Lookup returns the catalog entry with the given id.
func Lookup(id string) (Achievement, bool) {
	for _, a := range Catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

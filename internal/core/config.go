package core

// Host defaults.
const (
	DefaultTickRate = 60
	DefaultScreenW  = 80
	DefaultScreenH  = 24
)

// RuntimeConfig is what the host tells a game about the terminal and the
// session it should start.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; equal seeds and inputs replay the same game
}

// DefaultConfig returns an 80x24 config at the default tick rate. A zero
// seed tells the host to pick one from the clock.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  DefaultScreenW,
		ScreenH:  DefaultScreenH,
		TickRate: DefaultTickRate,
	}
}

// WithDefaults fills unset screen and tick rate fields. The seed is left
// alone.
func (c RuntimeConfig) WithDefaults() RuntimeConfig {
	if c.ScreenW <= 0 {
		c.ScreenW = DefaultScreenW
	}
	if c.ScreenH <= 0 {
		c.ScreenH = DefaultScreenH
	}
	if c.TickRate <= 0 {
		c.TickRate = DefaultTickRate
	}
	return c
}

// GameState is the summary a game reports to its host after every step.
type GameState struct {
	Score    int
	Wave     int
	Lives    int
	GameOver bool // Reported once the playfield has settled
	Paused   bool
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

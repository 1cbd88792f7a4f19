// Package config provides YAML-based game configuration loading and
// difficulty presets for the roids simulation.
package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// RoidsConfig is the root game configuration. It is loaded once per session
// and treated as immutable while a game runs.
type RoidsConfig struct {
	InitialLives      int       `yaml:"initial_lives"`
	ExtraLifeScore    int       `yaml:"extra_life_score"`
	SafeTime          float64   `yaml:"safe_time"`           // Seconds a respawn point must stay clear
	NumAsteroidCoeffs []float64 `yaml:"num_asteroid_coeffs"` // Polynomial in wave number, constant term first
	StartWave         int       `yaml:"start_wave"`
	FixedWave         bool      `yaml:"fixed_wave"` // Keep config lookups pinned to StartWave

	World     WorldConfig    `yaml:"world"`
	Player    PlayerConfig   `yaml:"player"`
	Asteroids AsteroidConfig `yaml:"asteroids"`
	UFO       UFOConfig      `yaml:"ufo"`
	Timing    TimingConfig   `yaml:"timing"`
	Scoring   ScoringConfig  `yaml:"scoring"`
	Waves     WaveTable      `yaml:"waves"`
}

// WorldConfig defines the toroidal playfield.
type WorldConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Hysteresis float64 `yaml:"hysteresis"`
}

// PlayerConfig holds ship limits for both appearances.
type PlayerConfig struct {
	Normal PlayerLimits `yaml:"normal"`
	Retro  PlayerLimits `yaml:"retro"`
}

// Limits returns the limits for the chosen appearance.
func (p PlayerConfig) Limits(retro bool) PlayerLimits {
	if retro {
		return p.Retro
	}
	return p.Normal
}

// PlayerLimits defines the physical limits of the player ship.
type PlayerLimits struct {
	MaxSpeed      float64 `yaml:"max_speed"`
	Thrust        float64 `yaml:"thrust"`         // Acceleration, units/s^2
	RotationSpeed float64 `yaml:"rotation_speed"` // Radians/s at full stick
	Radius        float64 `yaml:"radius"`
	ShotSpeed     float64 `yaml:"shot_speed"`
	ShotLifetime  float64 `yaml:"shot_lifetime"`
	MaxShots      int     `yaml:"max_shots"`
	FireCooldown  float64 `yaml:"fire_cooldown"`
}

// AsteroidConfig defines asteroid spawn parameters.
type AsteroidConfig struct {
	MinSpeed float64    `yaml:"min_speed"`
	MaxSpeed float64    `yaml:"max_speed"`
	Variants int        `yaml:"variants"` // Distinct shapes per size class
	Radius   SizeValues `yaml:"radius"`
}

// SizeValues holds one value per asteroid size class.
type SizeValues struct {
	Huge  float64 `yaml:"huge"`
	Big   float64 `yaml:"big"`
	Med   float64 `yaml:"med"`
	Small float64 `yaml:"small"`
}

// UFOConfig defines size-independent UFO behavior.
type UFOConfig struct {
	BigRadius        float64 `yaml:"big_radius"`
	SmallRadius      float64 `yaml:"small_radius"`
	ShotLifetime     float64 `yaml:"shot_lifetime"`
	LaunchDelay      float64 `yaml:"launch_delay"`
	WarpOutMin       float64 `yaml:"warp_out_min"`
	WarpOutMax       float64 `yaml:"warp_out_max"`
	MoveChance       float64 `yaml:"move_chance"` // Per tick at 60Hz
	FireChance       float64 `yaml:"fire_chance"` // Per tick at 60Hz
	LaunchCandidates int     `yaml:"launch_candidates"`
	ClearanceFactor  float64 `yaml:"clearance_factor"` // Early-accept clearance in UFO radii
}

// TimingConfig holds scheduler delays in seconds.
type TimingConfig struct {
	WaveAdvanceDelay  float64 `yaml:"wave_advance_delay"`
	RespawnDelay      float64 `yaml:"respawn_delay"`
	RespawnRetryDelay float64 `yaml:"respawn_retry_delay"`
	RespawnRetries    int     `yaml:"respawn_retries"`
	SafeTimeBackoff   float64 `yaml:"safe_time_backoff"`
	RevengeFactor     float64 `yaml:"revenge_factor"`
	FragmentLifetime  float64 `yaml:"fragment_lifetime"`
	FragmentCount     int     `yaml:"fragment_count"`
}

// ScoringConfig defines point values and streak thresholds.
type ScoringConfig struct {
	Asteroid         AsteroidPoints `yaml:"asteroid"`
	UFOBig           int            `yaml:"ufo_big"`
	UFOSmall         int            `yaml:"ufo_small"`
	StreakThresholds []int          `yaml:"streak_thresholds"`
}

// AsteroidPoints holds the score per asteroid size class.
type AsteroidPoints struct {
	Huge  int `yaml:"huge"`
	Big   int `yaml:"big"`
	Med   int `yaml:"med"`
	Small int `yaml:"small"`
}

// NumAsteroids evaluates the asteroid-count polynomial at wave and floors it.
// The result is never negative.
func (c RoidsConfig) NumAsteroids(wave int) int {
	x := float64(wave)
	sum := 0.0
	for i := len(c.NumAsteroidCoeffs) - 1; i >= 0; i-- {
		sum = sum*x + c.NumAsteroidCoeffs[i]
	}
	n := int(sum)
	if float64(n) > sum {
		n--
	}
	return max(n, 0)
}

// Validate checks the configuration for defects that would otherwise
// surface as fatal lookups mid-game.
func (c RoidsConfig) Validate() error {
	if c.InitialLives <= 0 {
		return fmt.Errorf("%w: initial_lives must be positive", ErrInvalidConfig)
	}
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("%w: world dimensions must be positive", ErrInvalidConfig)
	}
	if c.World.Hysteresis < 0 {
		return fmt.Errorf("%w: world hysteresis must not be negative", ErrInvalidConfig)
	}
	if len(c.NumAsteroidCoeffs) == 0 {
		return fmt.Errorf("%w: num_asteroid_coeffs is empty", ErrInvalidConfig)
	}
	if c.StartWave < 0 {
		return fmt.Errorf("%w: start_wave must not be negative", ErrInvalidConfig)
	}
	if c.Asteroids.MinSpeed <= 0 || c.Asteroids.MaxSpeed < c.Asteroids.MinSpeed {
		return fmt.Errorf("%w: asteroid speeds must satisfy 0 < min_speed <= max_speed", ErrInvalidConfig)
	}
	if c.Asteroids.Variants <= 0 {
		return fmt.Errorf("%w: asteroid variants must be positive", ErrInvalidConfig)
	}
	r := c.Asteroids.Radius
	if r.Huge <= 0 || r.Big <= 0 || r.Med <= 0 || r.Small <= 0 {
		return fmt.Errorf("%w: every asteroid size needs a positive radius", ErrInvalidConfig)
	}
	if c.UFO.BigRadius <= 0 || c.UFO.SmallRadius <= 0 {
		return fmt.Errorf("%w: ufo radii must be positive", ErrInvalidConfig)
	}
	for _, l := range []PlayerLimits{c.Player.Normal, c.Player.Retro} {
		if l.MaxSpeed <= 0 || l.Radius <= 0 || l.ShotSpeed <= 0 || l.MaxShots <= 0 {
			return fmt.Errorf("%w: player limits must be positive", ErrInvalidConfig)
		}
	}
	if c.UFO.LaunchCandidates <= 0 {
		return fmt.Errorf("%w: ufo launch_candidates must be positive", ErrInvalidConfig)
	}
	if c.UFO.WarpOutMax < c.UFO.WarpOutMin {
		return fmt.Errorf("%w: ufo warp_out_max below warp_out_min", ErrInvalidConfig)
	}
	if c.Timing.RespawnRetries < 0 || c.Timing.SafeTimeBackoff < 0 {
		return fmt.Errorf("%w: respawn retry settings must not be negative", ErrInvalidConfig)
	}
	// The last retry must land on zero safe time.
	if ladder := c.Timing.SafeTimeBackoff * float64(c.Timing.RespawnRetries); math.Abs(c.SafeTime-ladder) > 1e-9 {
		return fmt.Errorf("%w: safe_time %.2f must equal safe_time_backoff x respawn_retries (%.2f)",
			ErrInvalidConfig, c.SafeTime, ladder)
	}
	if err := c.Waves.Covers(max(c.StartWave, 1)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

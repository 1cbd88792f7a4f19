package config

import (
	_ "embed"
)

//go:embed defaults/roids.yaml
var defaultRoidsYAML []byte

// DefaultRoidsConfig returns the hard-coded configuration. It mirrors the
// embedded defaults/roids.yaml.
func DefaultRoidsConfig() RoidsConfig {
	return RoidsConfig{
		InitialLives:      3,
		ExtraLifeScore:    500,
		SafeTime:          1.25,
		NumAsteroidCoeffs: []float64{3.5, 0.75},
		StartWave:         1,
		World: WorldConfig{
			Width:      1024,
			Height:     768,
			Hysteresis: 3,
		},
		Player: PlayerConfig{
			Normal: PlayerLimits{
				MaxSpeed:      400,
				Thrust:        500,
				RotationSpeed: 4.0,
				Radius:        15,
				ShotSpeed:     700,
				ShotLifetime:  1.0,
				MaxShots:      4,
				FireCooldown:  0.15,
			},
			Retro: PlayerLimits{
				MaxSpeed:      350,
				Thrust:        420,
				RotationSpeed: 3.5,
				Radius:        14,
				ShotSpeed:     650,
				ShotLifetime:  1.1,
				MaxShots:      4,
				FireCooldown:  0.2,
			},
		},
		Asteroids: AsteroidConfig{
			MinSpeed: 30,
			MaxSpeed: 250,
			Variants: 4,
			Radius:   SizeValues{Huge: 60, Big: 40, Med: 22, Small: 12},
		},
		UFO: UFOConfig{
			BigRadius:        22,
			SmallRadius:      12,
			ShotLifetime:     1.5,
			LaunchDelay:      1.0,
			WarpOutMin:       0.5,
			WarpOutMax:       2.0,
			MoveChance:       0.01,
			FireChance:       0.01,
			LaunchCandidates: 10,
			ClearanceFactor:  5,
		},
		Timing: TimingConfig{
			WaveAdvanceDelay:  4.1,
			RespawnDelay:      3.0,
			RespawnRetryDelay: 0.25,
			RespawnRetries:    5,
			SafeTimeBackoff:   0.25,
			RevengeFactor:     0.5,
			FragmentLifetime:  0.6,
			FragmentCount:     8,
		},
		Scoring: ScoringConfig{
			Asteroid:         AsteroidPoints{Huge: 2, Big: 5, Med: 10, Small: 20},
			UFOBig:           50,
			UFOSmall:         100,
			StreakThresholds: []int{10, 25, 50},
		},
		Waves: WaveTable{
			{
				Wave:               1,
				MeanUFOTime:        Float(25),
				SmallUFOChance:     Float(0),
				MaxUFOs:            Int(1),
				UFOAccuracy:        Float(0.3),
				UFOMaxShots:        Int(1),
				UFOShotSpeed:       Float(300),
				UFOMaxSpeed:        []float64{120, 160},
				AsteroidSpeedBoost: Float(1.0),
			},
			{
				Wave:               3,
				SmallUFOChance:     Float(0.25),
				UFOAccuracy:        Float(0.5),
				AsteroidSpeedBoost: Float(1.1),
			},
			{
				Wave:         5,
				MeanUFOTime:  Float(20),
				MaxUFOs:      Int(2),
				UFOMaxShots:  Int(2),
				UFOShotSpeed: Float(350),
				UFOMaxSpeed:  []float64{140, 190},
			},
			{
				Wave:               8,
				SmallUFOChance:     Float(0.5),
				UFOAccuracy:        Float(0.7),
				AsteroidSpeedBoost: Float(1.2),
			},
			{
				Wave:         12,
				MeanUFOTime:  Float(15),
				MaxUFOs:      Int(3),
				UFOAccuracy:  Float(0.85),
				UFOMaxShots:  Int(3),
				UFOShotSpeed: Float(400),
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "roids", "roids_retro":
		return defaultRoidsYAML
	default:
		return nil
	}
}

package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown values return "",
// meaning the loaded config is used unchanged.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// IsFixedPreset returns true if the preset disables wave progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyRoidsPreset modifies the config based on a difficulty preset.
// Unknown presets leave it untouched.
func ApplyRoidsPreset(cfg *RoidsConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.InitialLives += 2
		cfg.SafeTime += cfg.Timing.SafeTimeBackoff
		cfg.Timing.RespawnRetries++
	case DifficultyHard:
		cfg.InitialLives = max(1, cfg.InitialLives-1)
		cfg.StartWave = max(cfg.StartWave, 3)
	case DifficultyNormal, DifficultyFixed:
	default:
		return
	}
	cfg.FixedWave = IsFixedPreset(preset)
}

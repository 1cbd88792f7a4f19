package roids

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-roids/internal/achievements"
	"github.com/vovakirdan/tui-roids/internal/config"
	"github.com/vovakirdan/tui-roids/internal/sim"
)

// Host connects a game to the process around it. Every field is optional.
type Host struct {
	Logger *log.Logger

	// NewSession returns the persistence for one game session.
	NewSession func(gameID string) sim.Persistence

	Achievements sim.Achievements
	Corrections  <-chan achievements.Correction

	// Close releases whatever the host opened for the game.
	Close func()
}

var (
	settingsMu       sync.RWMutex
	configPath       string
	difficultyPreset config.DifficultyPreset
	hostFactory      func() Host
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	difficultyPreset = config.ParsePreset(preset)
}

// SetHost installs the factory each new game calls once for its host.
// SSH sessions get separate games and therefore separate hosts.
func SetHost(fn func() Host) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	hostFactory = fn
}

func currentSettings() (string, config.DifficultyPreset, func() Host) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return configPath, difficultyPreset, hostFactory
}

// loadConfig resolves the game config the way the CLI asked for it.
// A broken config file falls back to the built-in defaults.
func loadConfig(logger *log.Logger) config.RoidsConfig {
	path, preset, _ := currentSettings()
	cfg, err := config.LoadRoids(path)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", path, "err", err)
		cfg = config.DefaultRoidsConfig()
	}
	if preset != "" {
		config.ApplyRoidsPreset(&cfg, preset)
	}
	return cfg
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-roids/internal/core"
	"github.com/vovakirdan/tui-roids/internal/games/roids"
	"github.com/vovakirdan/tui-roids/internal/platform/tui"
	"github.com/vovakirdan/tui-roids/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing. The game defaults to roids; roids_retro flies the
classic ship with retro handling.

Controls:
  Left/Right, A/D  - Rotate
  Up, W            - Thrust
  Space, F         - Fire
  P/Esc            - Pause
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Two extra lives and a longer safe respawn
  normal - The config as loaded
  hard   - One life less, starting at wave 3
  fixed  - No wave progression, stays at the start wave

Examples:
  roids play
  roids play roids_retro
  roids play --difficulty hard
  roids play --config ./my-roids.yaml --seed 7`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

// terminalConfig builds the runtime config from the terminal size and
// the global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := roids.IDNormal
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'roids list' to see available games", gameID)
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	installHost(store, logger)

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}
	if err := tui.Run(game, terminalConfig()); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

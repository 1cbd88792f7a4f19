package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-roids/internal/config"
	"github.com/vovakirdan/tui-roids/internal/games/roids"
	"github.com/vovakirdan/tui-roids/internal/platform/tui"
	"github.com/vovakirdan/tui-roids/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick ship and difficulty, then play",
	Long: `Start roids with a launcher menu.

Up/Down picks the ship, Left/Right the difficulty, Enter starts the game
and Tab opens the scoreboard. After a game you return to the menu.

Examples:
  roids menu
  roids menu --fps 30
  roids menu --db ./roids.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
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

	cfg := terminalConfig()
	preset := config.ParsePreset(flagDifficulty)

	for {
		result, err := tui.RunMenu(cfg, preset)
		if err != nil {
			return err
		}
		cfg = result.Config
		preset = result.Difficulty

		switch {
		case result.Quit:
			return nil
		case result.WantsScoreboard:
			if err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			continue
		}

		roids.SetDifficultyPreset(string(preset))
		game, err := registry.Create(result.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}

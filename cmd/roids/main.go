// roids is an asteroid shooter for the terminal.
//
// Usage:
//
//	roids menu               - Pick ship and difficulty, then play
//	roids play [game]        - Play directly (roids or roids_retro)
//	roids serve              - Start SSH server for remote play
//	roids scores [game]      - Show high scores
//	roids achievements       - Show achievement progress
//	roids config             - Print the effective game config
//	roids list               - List available games
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.roids/roids.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-roids/internal/achievements"
	"github.com/vovakirdan/tui-roids/internal/games/roids"
	"github.com/vovakirdan/tui-roids/internal/sim"
	"github.com/vovakirdan/tui-roids/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "roids",
	Short: "Roids - shoot asteroids in your terminal",
	Long: `Roids is a terminal asteroid shooter. Break up rocks, dodge UFOs
and survive as many waves as you can.

Available commands:
  menu          - Pick ship and difficulty, then play
  play          - Play directly
  serve         - Start SSH server for remote play
  scores        - View high scores and the leaderboard
  achievements  - View achievement progress
  config        - Print the effective game config
  list          - Show all available games

Examples:
  roids menu
  roids play --difficulty hard
  roids play roids_retro --seed 42
  roids serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		roids.SetConfigPath(flagConfig)
		roids.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.roids/roids.db", "Path to the scores and achievements database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger. Without --log-file, logs go to
// fallback; the terminal UI passes io.Discard since it owns the screen.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out, closeOut := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeOut = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "roids",
	})
	return logger, closeOut, nil
}

// installHost wires storage and achievements into every game created from
// now on. Each game gets its own achievement reporter; all share store.
// A nil store leaves games unpersisted.
func installHost(store *storage.Store, logger *log.Logger) {
	roids.SetHost(func() roids.Host {
		h := roids.Host{Logger: logger}
		if store == nil {
			return h
		}

		rep := achievements.New(achievements.Options{
			Backend: achievements.NewLocalBackend(store),
			Cache:   store,
			Logger:  logger.WithPrefix("achievements"),
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rep.Flush(ctx); err != nil {
			logger.Warn("pending achievement progress not submitted", "err", err)
		}
		cancel()

		h.NewSession = func(gameID string) sim.Persistence {
			return store.NewSession(gameID)
		}
		h.Achievements = rep
		h.Corrections = rep.Corrections()
		h.Close = rep.Close
		return h
	})
}

// openStore opens the database, logging and continuing without it on
// failure so the game stays playable.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database", "path", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

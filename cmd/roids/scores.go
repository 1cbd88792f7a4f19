package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-roids/internal/games/roids"
	"github.com/vovakirdan/tui-roids/internal/platform/tui"
	"github.com/vovakirdan/tui-roids/internal/registry"
	"github.com/vovakirdan/tui-roids/internal/storage"
)

var (
	flagScoresTUI   bool
	flagLeaderboard bool
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top high scores for a game, or the session leaderboard.

Examples:
  roids scores
  roids scores roids_retro
  roids scores --limit 0
  roids scores --leaderboard
  roids scores --tui
  roids scores roids_retro --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores and achievements interactively")
	scoresCmd.Flags().BoolVar(&flagLeaderboard, "leaderboard", false, "Show the leaderboard of submitted session scores")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show (0 shows all)")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the recorded scores of the game")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := roids.IDNormal
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'roids list' to see available games", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	switch {
	case flagScoresTUI:
		cfg := terminalConfig()
		return tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
	case flagLeaderboard:
		return printLeaderboard(out, store, flagScoresLimit)
	case flagScoresClear:
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared scores for %s.\n", gameID)
		return nil
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("error creating game: %w", err)
	}
	return printScores(out, store, gameID, game.Title(), flagScoresLimit)
}

func printScores(out io.Writer, store *storage.Store, gameID, title string, limit int) error {
	var (
		scores []storage.ScoreEntry
		err    error
	)
	if limit <= 0 {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, limit)
	}
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", title)
	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintf(out, "\nPlay 'roids play %s' to set the first high score!\n", gameID)
		return nil
	}

	best, err := store.HighScore(gameID)
	if err != nil {
		return fmt.Errorf("error retrieving high score: %w", err)
	}
	fmt.Fprintf(out, "Best: %d\n\n", best)

	fmt.Fprintf(out, "  %-4s  %-10s  %-4s  %s\n", "Rank", "Score", "Wave", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %-4s  %s\n", "----", "-----", "----", "----")
	for i, e := range scores {
		fmt.Fprintf(out, "  %-4d  %-10d  %-4d  %s\n", i+1, e.Score, e.Wave, e.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printLeaderboard(out io.Writer, store *storage.Store, limit int) error {
	entries, err := store.Leaderboard(limit)
	if err != nil {
		return fmt.Errorf("error retrieving leaderboard: %w", err)
	}

	fmt.Fprintln(out, "Leaderboard")
	fmt.Fprintln(out)
	if len(entries) == 0 {
		fmt.Fprintln(out, "No scores submitted yet.")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %-8s  %s\n", "Rank", "Score", "Session", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %-8s  %s\n", "----", "-----", "-------", "----")
	for i, e := range entries {
		session := e.SessionID
		if len(session) > 8 {
			session = session[:8]
		}
		fmt.Fprintf(out, "  %-4d  %-10d  %-8s  %s\n", i+1, e.Score, session, e.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

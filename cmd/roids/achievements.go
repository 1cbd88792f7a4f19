package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-roids/internal/achievements"
	"github.com/vovakirdan/tui-roids/internal/storage"
)

var flagFlush bool

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Show achievement progress",
	Long: `List every achievement with its progress, plus progress that is
cached locally and still waiting to be submitted.

Examples:
  roids achievements
  roids achievements --flush`,
	Args: cobra.NoArgs,
	RunE: runAchievements,
}

func init() {
	achievementsCmd.Flags().BoolVar(&flagFlush, "flush", false, "Resubmit cached progress before listing")
}

func runAchievements(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if flagFlush {
		logger, closeLog, err := newLogger(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer closeLog()

		rep := achievements.New(achievements.Options{
			Backend: achievements.NewLocalBackend(store),
			Cache:   store,
			Logger:  logger.WithPrefix("achievements"),
		})
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		err = rep.Flush(ctx)
		cancel()
		rep.Close()
		if err != nil {
			fmt.Fprintf(out, "Some progress is still pending: %v\n\n", err)
		}
	}
	return printAchievements(out, store)
}

func printAchievements(out io.Writer, store *storage.Store) error {
	progress, err := store.Achievements()
	if err != nil {
		return fmt.Errorf("error retrieving achievements: %w", err)
	}
	byID := make(map[string]storage.Progress, len(progress))
	for _, p := range progress {
		byID[p.AchievementID] = p
	}

	fmt.Fprintln(out, "Achievements")
	fmt.Fprintln(out)
	for _, a := range achievements.Catalog {
		p := byID[a.ID]
		mark := " "
		if p.Completed() {
			mark = "x"
		}
		fmt.Fprintf(out, "  [%s] %-14s %5.1f%%  %s\n", mark, a.Title, p.Percent, a.Description)
	}

	pending, err := store.PendingProgress()
	if err != nil {
		return fmt.Errorf("error retrieving pending progress: %w", err)
	}
	if len(pending) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Waiting to be submitted:")
		for _, p := range pending {
			name := p.AchievementID
			if a, ok := achievements.Lookup(name); ok {
				name = a.Title
			}
			fmt.Fprintf(out, "  %-14s %5.1f%%\n", name, p.Percent)
		}
	}
	return nil
}

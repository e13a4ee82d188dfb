package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/fold/internal/platform/tui"
	"github.com/vovakirdan/fold/internal/registry"
	"github.com/vovakirdan/fold/internal/storage"
)

var (
	flagScoresInteractive bool
	flagScoresClear       bool
	flagScoresLimit       int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the top scores and level statistics for a mode
(default: fold).

Examples:
  fold scores
  fold scores fold_practice --limit 20
  fold scores --interactive
  fold scores fold --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresInteractive, "interactive", false, "Browse scores interactively")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the mode")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	mode := "fold"
	if len(args) > 0 {
		mode = args[0]
	}
	if !registry.Exists(mode) {
		return fmt.Errorf("unknown mode %q, run 'fold list' to see available modes", mode)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	if flagScoresInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, mode, width, height)
	}

	if flagScoresClear {
		if err := store.ClearScores(mode); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared scores for %s.\n", mode)
		return nil
	}

	return printScores(cmd, store, mode)
}

func printScores(cmd *cobra.Command, store *storage.Store, mode string) error {
	out := cmd.OutOrStdout()
	scores, err := store.TopScores(mode, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("cannot retrieve scores: %w", err)
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", mode)
	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'fold play %s' to set the first high score!\n", mode)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(mode)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Best: %d  Runs: %d  Avg: %.0f\n", stats.HighScore, stats.RunsCount, stats.AvgScore)
	fmt.Fprintf(out, "Levels won: %d  Skipped: %d  Best level: %d  Avg moves: %.1f\n",
		stats.LevelsWon, stats.LevelsSkip, stats.BestLevel, stats.AvgMoves)
	return nil
}

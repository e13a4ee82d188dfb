package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	foldcore "github.com/vovakirdan/fold/internal/games/fold/core"
	"github.com/vovakirdan/fold/internal/metrics"
	"github.com/vovakirdan/fold/internal/platform/tui"
	"github.com/vovakirdan/fold/internal/registry"
	"github.com/vovakirdan/fold/internal/storage"
)

var (
	flagLevel int
	flagBell  bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode (default: fold).

Controls:
  Arrows/WASD  - Move cursor, or fold the grabbed tile
  Space/Enter  - Grab or release the tile under the cursor
  Mouse drag   - Fold a tile towards the drag
  U            - Undo the last fold
  N            - Skip the level (costs points in fold mode)
  P/Esc        - Pause
  R            - Start a new run
  Q/Ctrl+C     - Quit and save the score

Difficulty options:
  easy   - Start at level 1 with slow folds
  normal - Start at level 3
  hard   - Start at level 7 with fast folds

Examples:
  fold play
  fold play fold_practice
  fold play --difficulty hard
  fold play --level 10 --seed 7
  fold play --metrics-addr :9090`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start level (overrides difficulty)")
	playCmd.Flags().BoolVar(&flagBell, "bell", false, "Ring the terminal bell on each fold")
	playCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Prometheus metrics address (empty = disabled)")
}

func runPlay(_ *cobra.Command, args []string) error {
	mode := "fold"
	if len(args) > 0 {
		mode = args[0]
	}
	if !registry.Exists(mode) {
		return fmt.Errorf("unknown mode %q, run 'fold list' to see available modes", mode)
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if flagLevel > 0 {
		settings.Difficulty.StartLevel = flagLevel
	}
	if flagBell {
		settings.Display.Bell = true
	}

	logger, closeLog, err := newLogger(io.Discard, "fold")
	if err != nil {
		return err
	}
	defer closeLog()

	var obs foldcore.Observer
	if flagMetricsAddr != "" {
		collector := metrics.NewCollector()
		obs = collector.Observer(mode)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := collector.Serve(ctx, flagMetricsAddr, logger); err != nil {
				logger.Error("metrics server stopped", "err", err)
			}
		}()
	}

	game, err := tui.NewGame(mode, settings, obs, logger)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return tui.Run(game, tui.Options{
		Store:  store,
		Config: runtimeConfig(width, height, settings),
		Bell:   settings.Display.Bell,
		Logger: logger,
	})
}

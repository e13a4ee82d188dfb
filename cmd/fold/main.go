// fold is a tile-folding puzzle for the terminal.
//
// Usage:
//
//	fold                  - Pick a mode from the menu
//	fold play [mode]      - Play a mode directly (default: fold)
//	fold list             - List available modes
//	fold gen              - Print generated puzzle layouts
//	fold scores [mode]    - Show high scores and stats
//	fold serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible puzzles
//	--db <path>        - Set database path (default: ~/.fold/scores.db)
//	--config <path>    - Load tuning from a YAML file
//	--log-file <path>  - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/fold/internal/config"
	"github.com/vovakirdan/fold/internal/core"

	// Import modes to register them
	_ "github.com/vovakirdan/fold/internal/games/fold"
)

var (
	// Global flags
	flagFPS         int
	flagSeed        int64
	flagDBPath      string
	flagConfig      string
	flagDifficulty  string
	flagLogFile     string
	flagLogLevel    string
	flagMetricsAddr string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fold",
	Short: "Fold - a tile-folding puzzle in your terminal",
	Long: `Fold every tile onto its neighbours until only the top tile
rests on the bottom one. Each level adds tiles and grows the board.

Available commands:
  play     - Play a mode directly
  list     - Show all available modes
  gen      - Print generated layouts
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  fold
  fold play --difficulty hard
  fold play fold_practice --seed 42
  fold gen 5 --count 3
  fold serve --ssh :2222 --metrics-addr :9090`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.fold/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadSettings reads file and environment configuration, then applies the
// --difficulty preset.
func loadSettings() (config.FoldConfig, error) {
	cfg, err := config.LoadFold(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyFoldPreset(&cfg, preset)
	}
	return cfg, nil
}

// newLogger builds the process logger. Interactive commands log to
// --log-file only, so the terminal stays clean.
func newLogger(w io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	closer := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// runtimeConfig builds the platform config for a terminal of the given size.
func runtimeConfig(w, h int, settings config.FoldConfig) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:    w,
		ScreenH:    h,
		TickRate:   flagFPS,
		Seed:       flagSeed,
		StartLevel: settings.Difficulty.StartLevel,
	}
}

// Package config provides YAML-based configuration loading, environment
// overrides and difficulty presets for the fold puzzle.
package config

import (
	"errors"
	"fmt"
)

// FoldConfig contains all configuration for the fold puzzle.
type FoldConfig struct {
	Fold       FoldTuning       `yaml:"fold"`
	Input      InputConfig      `yaml:"input"`
	Rules      RulesConfig      `yaml:"rules"`
	Display    DisplayConfig    `yaml:"display"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FoldTuning defines fold geometry and animation timing.
type FoldTuning struct {
	SnapAngle      float64 `yaml:"snap_angle" env:"SNAP_ANGLE"`
	SnapThreshold  float64 `yaml:"snap_threshold" env:"SNAP_THRESHOLD"`
	FullFoldAngle  float64 `yaml:"full_fold_angle" env:"FULL_FOLD_ANGLE"`
	FoldSpeed      float64 `yaml:"fold_speed" env:"FOLD_SPEED"` // Folds per second
	BlockSize      float64 `yaml:"block_size" env:"BLOCK_SIZE"`
	StackHeight    float64 `yaml:"stack_height" env:"STACK_HEIGHT"`
	ShakeDuration  float64 `yaml:"shake_duration" env:"SHAKE_DURATION"`
	ShakeMagnitude float64 `yaml:"shake_magnitude" env:"SHAKE_MAGNITUDE"`
	Easing         string  `yaml:"easing" env:"EASING"` // linear, ease_in_out, ease_out_quad
}

// InputConfig defines how pointer drags become folds.
type InputConfig struct {
	DragThreshold float64 `yaml:"drag_threshold" env:"DRAG_THRESHOLD"` // Cells of drag for full strength
}

// RulesConfig defines scoring and history limits.
type RulesConfig struct {
	HistoryCapacity int     `yaml:"history_capacity" env:"HISTORY_CAPACITY"`
	WinDelay        float64 `yaml:"win_delay" env:"WIN_DELAY"` // Seconds
	SkipPenalty     int     `yaml:"skip_penalty" env:"SKIP_PENALTY"`
}

// DisplayConfig defines terminal rendering.
type DisplayConfig struct {
	TileWidth  int  `yaml:"tile_width" env:"TILE_WIDTH"`
	TileHeight int  `yaml:"tile_height" env:"TILE_HEIGHT"`
	Bell       bool `yaml:"bell" env:"BELL"` // Ring the terminal bell on each fold
}

// DifficultyConfig selects where a run starts.
type DifficultyConfig struct {
	Preset     DifficultyPreset `yaml:"preset" env:"DIFFICULTY"`
	StartLevel int              `yaml:"start_level" env:"START_LEVEL"`
}

// Validate rejects values the game cannot run with.
func (c FoldConfig) Validate() error {
	var errs []error
	if c.Fold.SnapAngle <= 0 {
		errs = append(errs, fmt.Errorf("fold.snap_angle must be positive, got %v", c.Fold.SnapAngle))
	}
	if c.Fold.SnapThreshold <= 0 || c.Fold.SnapThreshold > 1 {
		errs = append(errs, fmt.Errorf("fold.snap_threshold must be in (0,1], got %v", c.Fold.SnapThreshold))
	}
	if c.Fold.FullFoldAngle <= 0 || c.Fold.FullFoldAngle > 180 {
		errs = append(errs, fmt.Errorf("fold.full_fold_angle must be in (0,180], got %v", c.Fold.FullFoldAngle))
	}
	if c.Fold.FoldSpeed <= 0 {
		errs = append(errs, fmt.Errorf("fold.fold_speed must be positive, got %v", c.Fold.FoldSpeed))
	}
	if c.Fold.BlockSize <= 0 {
		errs = append(errs, fmt.Errorf("fold.block_size must be positive, got %v", c.Fold.BlockSize))
	}
	if c.Input.DragThreshold <= 0 {
		errs = append(errs, fmt.Errorf("input.drag_threshold must be positive, got %v", c.Input.DragThreshold))
	}
	if c.Rules.HistoryCapacity < 2 {
		errs = append(errs, fmt.Errorf("rules.history_capacity must be at least 2, got %d", c.Rules.HistoryCapacity))
	}
	if c.Rules.WinDelay < 0 {
		errs = append(errs, fmt.Errorf("rules.win_delay must not be negative, got %v", c.Rules.WinDelay))
	}
	if c.Difficulty.StartLevel < 1 {
		errs = append(errs, fmt.Errorf("difficulty.start_level must be at least 1, got %d", c.Difficulty.StartLevel))
	}
	if c.Display.TileWidth < 1 || c.Display.TileHeight < 1 {
		errs = append(errs, fmt.Errorf("display tile must be at least 1x1, got %dx%d", c.Display.TileWidth, c.Display.TileHeight))
	}
	return errors.Join(errs...)
}

package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the known presets from easiest to hardest.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset resolves a preset name case-insensitively.
func ParsePreset(name string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", name)
}

// StartLevelForPreset returns the first level of a run.
// Each step of two levels grows the board and adds a filler.
func StartLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyNormal:
		return 3
	case DifficultyHard:
		return 7
	default:
		return 1
	}
}

// ApplyFoldPreset sets the start level from a difficulty preset.
func ApplyFoldPreset(cfg *FoldConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset
	cfg.Difficulty.StartLevel = StartLevelForPreset(preset)
}

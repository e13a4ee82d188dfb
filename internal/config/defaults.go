package config

import (
	_ "embed"
)

//go:embed defaults/fold.yaml
var defaultFoldYAML []byte

// DefaultFoldConfig returns the hardcoded configuration used when the
// embedded YAML cannot be parsed.
func DefaultFoldConfig() FoldConfig {
	return FoldConfig{
		Fold: FoldTuning{
			SnapAngle:      45,
			SnapThreshold:  0.8,
			FullFoldAngle:  179,
			FoldSpeed:      2,
			BlockSize:      1,
			StackHeight:    0.07,
			ShakeDuration:  0.3,
			ShakeMagnitude: 0.1,
			Easing:         "ease_in_out",
		},
		Input: InputConfig{
			DragThreshold: 3,
		},
		Rules: RulesConfig{
			HistoryCapacity: 20,
			WinDelay:        2,
			SkipPenalty:     50,
		},
		Display: DisplayConfig{
			TileWidth:  6,
			TileHeight: 3,
		},
		Difficulty: DifficultyConfig{
			Preset:     DifficultyEasy,
			StartLevel: 1,
		},
	}
}

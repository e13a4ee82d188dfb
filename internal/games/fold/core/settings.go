package core

// Settings tune fold geometry and timing.
type Settings struct {
	SnapAngle      float64 // Degrees reached at full drag strength
	SnapThreshold  float64 // Fraction of SnapAngle at which a fold snaps shut
	FullFoldAngle  float64 // Canonical closed angle, just short of flat
	FoldSpeed      float64 // Folds per second
	BlockSize      float64
	StackHeight    float64 // Vertical offset per stacked block
	ShakeDuration  float64 // Seconds
	ShakeMagnitude float64 // Max jitter per axis, in block units
	Ease           Easing
}

// DefaultSettings returns the stock fold tuning.
func DefaultSettings() Settings {
	return Settings{
		SnapAngle:      45,
		SnapThreshold:  0.8,
		FullFoldAngle:  179,
		FoldSpeed:      2,
		BlockSize:      1,
		StackHeight:    0.07,
		ShakeDuration:  0.3,
		ShakeMagnitude: 0.1,
		Ease:           EaseInOut,
	}
}

// FoldDuration returns the length of one fold animation in seconds.
func (s Settings) FoldDuration() float64 {
	if s.FoldSpeed <= 0 {
		return 0
	}
	return 1 / s.FoldSpeed
}

// PlanFold returns the angle a drag of the given strength folds to and
// whether it snapped to the full fold angle.
func PlanFold(s Settings, strength float64) (angle float64, snapped bool) {
	angle = lerp(0, s.SnapAngle, clamp01(strength))
	if angle >= s.SnapAngle*s.SnapThreshold {
		return s.FullFoldAngle, true
	}
	return angle, false
}

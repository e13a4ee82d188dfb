package core

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 {
	return t
}

// EaseInOut is a cubic Hermite curve with flat tangents at both ends.
func EaseInOut(t float64) float64 {
	t = clamp01(t)
	return t * t * (3 - 2*t)
}

// EaseOutQuad provides smooth deceleration.
func EaseOutQuad(t float64) float64 {
	t = clamp01(t)
	return t * (2 - t)
}

// EasingByName resolves a configured easing name. Unknown names fall back to EaseInOut.
func EasingByName(name string) Easing {
	switch name {
	case "linear":
		return Linear
	case "ease_out_quad":
		return EaseOutQuad
	default:
		return EaseInOut
	}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

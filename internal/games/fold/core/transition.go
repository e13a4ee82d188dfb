package core

// Transition is a timed state change advanced by the Scheduler.
type Transition interface {
	// Advance moves the transition forward by dt seconds and reports
	// whether it has finished. Completion side effects run inside Advance.
	Advance(dt float64) bool
}

// Jitter supplies random offsets for shake feedback. *math/rand.Rand satisfies it.
type Jitter interface {
	Float64() float64
}

// FoldTransition rotates a block about an axis while moving it from start to
// end. It holds everything needed to resume between ticks.
type FoldTransition struct {
	Elapsed  float64
	Duration float64
	Start    Transform
	End      Transform
	Axis     Vec3
	Angle    float64 // Degrees at completion
	Ease     Easing

	block  *Block
	onStep func(world Transform)
	onDone func()
}

// Progress returns eased progress in [0,1].
func (f *FoldTransition) Progress() float64 {
	if f.Duration <= 0 {
		return 1
	}
	return f.Ease(clamp01(f.Elapsed / f.Duration))
}

// PoseAt returns the block pose at eased progress t.
func (f *FoldTransition) PoseAt(t float64) Transform {
	return Transform{
		Position: f.Start.Position.Lerp(f.End.Position, t),
		Rotation: AxisAngle(f.Axis, f.Angle*t).Mul(f.Start.Rotation).Normalize(),
	}
}

// Advance implements Transition.
func (f *FoldTransition) Advance(dt float64) bool {
	f.Elapsed += dt
	done := f.Elapsed >= f.Duration

	t := f.Progress()
	if done {
		t = 1
	}
	pose := f.PoseAt(t)
	f.block.SetWorld(pose)
	f.block.State.FoldAngle = f.Angle * t
	if f.onStep != nil {
		f.onStep(pose)
	}

	if done && f.onDone != nil {
		f.onDone()
	}
	return done
}

// ShakeTransition jitters a block around its resting pose, then restores it.
type ShakeTransition struct {
	Elapsed   float64
	Duration  float64
	Magnitude float64
	Origin    Transform

	block  *Block
	jitter Jitter
	onStep func(world Transform)
	onDone func()
}

// Advance implements Transition.
func (s *ShakeTransition) Advance(dt float64) bool {
	if s.Elapsed >= s.Duration {
		s.block.SetWorld(s.Origin)
		if s.onStep != nil {
			s.onStep(s.Origin)
		}
		if s.onDone != nil {
			s.onDone()
		}
		return true
	}

	offset := Vec3{
		X: (s.jitter.Float64()*2 - 1) * s.Magnitude,
		Z: (s.jitter.Float64()*2 - 1) * s.Magnitude,
	}
	pose := Transform{Position: s.Origin.Position.Add(offset), Rotation: s.Origin.Rotation}
	s.block.SetWorld(pose)
	if s.onStep != nil {
		s.onStep(pose)
	}
	s.Elapsed += dt
	return false
}

// Delay runs fn once after a fixed number of seconds.
type Delay struct {
	Remaining float64
	fn        func()
}

// NewDelay creates a timer transition.
func NewDelay(seconds float64, fn func()) *Delay {
	return &Delay{Remaining: seconds, fn: fn}
}

// Advance implements Transition.
func (d *Delay) Advance(dt float64) bool {
	d.Remaining -= dt
	if d.Remaining > 0 {
		return false
	}
	if d.fn != nil {
		d.fn()
	}
	return true
}

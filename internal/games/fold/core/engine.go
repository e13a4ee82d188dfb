package core

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
)

var (
	// ErrNilBlock is returned when an engine is built without its block.
	ErrNilBlock = errors.New("fold engine requires a block")
	// ErrMissingDependency is returned when an engine lacks adjacency or a scheduler.
	ErrMissingDependency = errors.New("fold engine requires adjacency and a scheduler")
)

// PoseSink receives a block's board-space pose on every animated tick.
type PoseSink interface {
	ApplyPose(b *Block, world Transform)
}

// AudioCue is fired once per completed fold.
type AudioCue interface {
	FoldCue()
}

// EngineDeps are the collaborators an Engine needs from its host.
type EngineDeps struct {
	Adjacency Adjacency
	Scheduler *Scheduler
	Jitter    Jitter
	Poses     PoseSink    // Optional
	Audio     AudioCue    // Optional
	Logger    *log.Logger // Optional
}

// Engine is the fold state machine of one block:
// Idle -> Folding -> Folded, and Idle -> Shaking -> Idle for rejected folds.
// Folded is terminal here; only the coordinator's undo unfolds a block.
type Engine struct {
	block    *Block
	settings Settings
	deps     EngineDeps
	logger   *log.Logger

	listeners []func(*Block)
	fold      *FoldTransition
	shaking   bool
	shakeRest Transform
	locked    bool
}

// NewEngine wires a fold engine to its block.
func NewEngine(b *Block, s Settings, deps EngineDeps) (*Engine, error) {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if b == nil {
		logger.Error("fold engine construction aborted", "err", ErrNilBlock)
		return nil, ErrNilBlock
	}
	if deps.Adjacency == nil || deps.Scheduler == nil {
		logger.Error("fold engine construction aborted", "block", b.ID, "err", ErrMissingDependency)
		return nil, ErrMissingDependency
	}
	if s.Ease == nil {
		s.Ease = EaseInOut
	}
	return &Engine{
		block:    b,
		settings: s,
		deps:     deps,
		logger:   logger.With("block", b.ID),
	}, nil
}

// Block returns the block this engine drives.
func (e *Engine) Block() *Block {
	if !e.wired("Block") {
		return nil
	}
	return e.block
}

// OnFolded subscribes fn to fold completion.
func (e *Engine) OnFolded(fn func(*Block)) {
	if fn == nil || !e.wired("OnFolded") {
		return
	}
	e.listeners = append(e.listeners, fn)
}

// Lock makes every subsequent fold attempt inert.
func (e *Engine) Lock() {
	if e.wired("Lock") {
		e.locked = true
	}
}

// Locked reports whether the engine ignores fold attempts.
func (e *Engine) Locked() bool {
	return e != nil && e.locked
}

// Folding reports whether a fold animation is in progress.
func (e *Engine) Folding() bool {
	return e != nil && e.fold != nil
}

// Shaking reports whether invalid-fold feedback is in progress.
func (e *Engine) Shaking() bool {
	return e != nil && e.shaking
}

// RestPose returns the world pose the block held before its running fold or
// shake began. ok is false when the block is idle.
func (e *Engine) RestPose() (pose Transform, ok bool) {
	switch {
	case e == nil:
		return Transform{}, false
	case e.fold != nil:
		return e.fold.Start, true
	case e.shaking:
		return e.shakeRest, true
	}
	return Transform{}, false
}

// Target returns the block a fold in dir would land on, or nil.
func (e *Engine) Target(dir Direction) *Block {
	if !e.wired("Target") {
		return nil
	}
	return e.deps.Adjacency.Neighbor(e.block, dir)
}

// CanFold reports whether dir is permitted and has a neighbour.
// It does not look at the fold state; ExecuteFold does.
func (e *Engine) CanFold(dir Direction) bool {
	if !e.wired("CanFold") {
		return false
	}
	if !e.block.Permissions.Allows(dir) {
		return false
	}
	return e.deps.Adjacency.Neighbor(e.block, dir) != nil
}

// ExecuteFold starts folding in dir with a drag strength in [0,1].
// It reports whether a fold was started.
func (e *Engine) ExecuteFold(dir Direction, strength float64) bool {
	if !e.wired("ExecuteFold") {
		return false
	}
	b := e.block
	if e.locked || b.State.Folding || b.State.Folded || !e.CanFold(dir) {
		return false
	}
	target := e.deps.Adjacency.Neighbor(b, dir)
	if target.State.Folding || target.ChainContains(b) {
		e.logger.Debug("fold rejected", "dir", dir, "target", target.ID)
		return false
	}

	angle, snapped := PlanFold(e.settings, strength)
	start := b.World()
	stacks := target.StackCount() + b.StackCount()
	end := Transform{
		Position: start.Position.
			Add(dir.Vector().Scale(e.settings.BlockSize)).
			Add(AxisY.Scale(e.settings.StackHeight * float64(stacks))),
		Rotation: start.Rotation,
	}

	b.State.Folding = true
	b.State.Selectable = false
	b.State.FoldDirection = dir

	tr := &FoldTransition{
		Duration: e.settings.FoldDuration(),
		Start:    start,
		End:      end,
		Axis:     foldAxis(dir),
		Angle:    angle,
		Ease:     e.settings.Ease,
		block:    b,
		onStep:   e.applyPose,
	}
	tr.onDone = func() { e.commit(tr, target, snapped) }
	e.fold = tr
	e.deps.Scheduler.Start(tr)

	e.logger.Debug("fold started", "dir", dir, "target", target.ID, "angle", angle, "snapped", snapped)
	return true
}

// commit attaches the block to its target once the animation ends.
func (e *Engine) commit(tr *FoldTransition, target *Block, snapped bool) {
	b := e.block
	if !snapped {
		full := *tr
		full.Angle = e.settings.FullFoldAngle
		b.SetWorld(full.PoseAt(1))
	}

	b.AttachTo(target)
	b.SetCollidable(false)
	b.State.Folded = true
	b.State.Selectable = false
	b.State.Folding = false
	b.State.FoldAngle = e.settings.FullFoldAngle
	e.fold = nil

	e.logger.Debug("fold committed", "target", target.ID)
	for _, fn := range e.listeners {
		fn(b)
	}
	if e.deps.Audio != nil {
		e.deps.Audio.FoldCue()
	}
}

// InvalidFold plays the rejection shake. Fold state is left untouched.
// It reports whether a shake was started.
func (e *Engine) InvalidFold() bool {
	if !e.wired("InvalidFold") {
		return false
	}
	if e.shaking || e.fold != nil || e.deps.Jitter == nil {
		return false
	}
	e.shaking = true
	e.shakeRest = e.block.World()
	e.deps.Scheduler.Start(&ShakeTransition{
		Duration:  e.settings.ShakeDuration,
		Magnitude: e.settings.ShakeMagnitude,
		Origin:    e.block.World(),
		block:     e.block,
		jitter:    e.deps.Jitter,
		onStep:    e.applyPose,
		onDone:    func() { e.shaking = false },
	})
	return true
}

// Reset drops any in-flight animation bookkeeping after the board is
// restored externally.
func (e *Engine) Reset() {
	if e == nil {
		return
	}
	e.fold = nil
	e.shaking = false
}

func (e *Engine) applyPose(world Transform) {
	if e.deps.Poses != nil {
		e.deps.Poses.ApplyPose(e.block, world)
	}
}

// wired logs and reports false when the engine was never given a block.
func (e *Engine) wired(op string) bool {
	if e == nil || e.block == nil {
		log.Error("fold engine used without a block", "op", op, "err", ErrNilBlock)
		return false
	}
	return true
}

// foldAxis returns the hinge axis of a fold, signed so a positive angle
// lifts the block over towards dir.
func foldAxis(dir Direction) Vec3 {
	switch dir {
	case DirUp:
		return AxisX
	case DirDown:
		return AxisX.Scale(-1)
	case DirLeft:
		return AxisZ
	case DirRight:
		return AxisZ.Scale(-1)
	default:
		return Vec3{}
	}
}

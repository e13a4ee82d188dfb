package core_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/fold/internal/games/fold/core"
)

const eps = 1e-9

type board struct {
	blocks  []*core.Block
	engines []*core.Engine
	sched   *core.Scheduler
	audio   *countingAudio
}

type countingAudio struct{ cues int }

func (a *countingAudio) FoldCue() { a.cues++ }

// newBoard places one block per cell and wires an engine to each.
func newBoard(t *testing.T, cells ...core.Coord) *board {
	t.Helper()
	b := &board{sched: core.NewScheduler(), audio: &countingAudio{}}
	for i, c := range cells {
		b.blocks = append(b.blocks, core.NewBlock(core.BlockID(i), core.KindFiller, c, 1))
	}
	adj := core.NewBoardAdjacency(b.blocks)
	for _, blk := range b.blocks {
		e, err := core.NewEngine(blk, core.DefaultSettings(), core.EngineDeps{
			Adjacency: adj,
			Scheduler: b.sched,
			Jitter:    rand.New(rand.NewSource(1)),
			Audio:     b.audio,
		})
		require.NoError(t, err)
		b.engines = append(b.engines, e)
	}
	return b
}

// settle ticks until no transition is running.
func (b *board) settle(t *testing.T) {
	t.Helper()
	for i := 0; b.sched.Active() > 0; i++ {
		require.Less(t, i, 100, "transitions never finished")
		b.sched.Tick(0.25)
	}
}

func TestFoldCommitsOntoNeighbour(t *testing.T) {
	b := newBoard(t, core.C(-1, 0), core.C(0, 0))
	mover, target := b.blocks[0], b.blocks[1]

	var completed []*core.Block
	b.engines[0].OnFolded(func(blk *core.Block) { completed = append(completed, blk) })

	require.True(t, b.engines[0].ExecuteFold(core.DirRight, 1))
	assert.True(t, mover.State.Folding)
	assert.False(t, mover.State.Selectable)
	assert.Equal(t, core.DirRight, mover.State.FoldDirection)

	b.settle(t)

	assert.Equal(t, []*core.Block{mover}, completed)
	assert.Equal(t, 1, b.audio.cues)
	assert.Same(t, target, mover.AttachedTo())
	assert.False(t, mover.Collidable())
	assert.True(t, mover.State.Folded)
	assert.False(t, mover.State.Folding)
	assert.False(t, mover.State.Selectable)
	assert.InDelta(t, 179, mover.State.FoldAngle, eps)
	assert.Equal(t, 2, target.StackCount())

	// Two blocks in the stack lift the mover by two stack heights.
	world := mover.World()
	assert.True(t, world.Position.ApproxEqual(core.V(0, 0.14, 0), 1e-9), "position %v", world.Position)
	assert.True(t, world.Rotation.ApproxEqual(core.AxisAngle(core.AxisZ.Scale(-1), 179), 1e-9))
}

func TestFoldIgnoredWhileFoldingOrFolded(t *testing.T) {
	b := newBoard(t, core.C(-1, 0), core.C(0, 0), core.C(-1, 1))

	require.True(t, b.engines[0].ExecuteFold(core.DirRight, 1))
	assert.False(t, b.engines[0].ExecuteFold(core.DirUp, 1), "second fold while folding")
	assert.Equal(t, 1, b.sched.Active())

	b.settle(t)
	assert.False(t, b.engines[0].ExecuteFold(core.DirUp, 1), "fold of a folded block")
}

func TestCanFoldNeedsPermissionAndNeighbour(t *testing.T) {
	b := newBoard(t, core.C(0, 0), core.C(1, 0))

	assert.True(t, b.engines[0].CanFold(core.DirRight))
	assert.False(t, b.engines[0].CanFold(core.DirLeft), "no neighbour")
	assert.False(t, b.engines[0].CanFold(core.DirNone))

	b.blocks[0].Permissions.Set(core.DirRight, false)
	assert.False(t, b.engines[0].CanFold(core.DirRight))
	assert.False(t, b.engines[0].ExecuteFold(core.DirRight, 1))
	assert.Zero(t, b.sched.Active())
}

func TestFoldOntoFoldingTargetRejected(t *testing.T) {
	b := newBoard(t, core.C(0, 0), core.C(1, 0))

	require.True(t, b.engines[0].ExecuteFold(core.DirRight, 1))
	assert.False(t, b.engines[1].ExecuteFold(core.DirLeft, 1))
	b.settle(t)
	assert.Nil(t, b.blocks[1].AttachedTo())
}

func TestFoldCycleGuard(t *testing.T) {
	a := core.NewBlock(0, core.KindFiller, core.C(0, 0), 1)
	c := core.NewBlock(1, core.KindFiller, core.C(1, 0), 1)
	c.AttachTo(a)

	adj := core.AdjacencyFunc(func(b *core.Block, dir core.Direction) *core.Block {
		if b == a && dir == core.DirRight {
			return c
		}
		return nil
	})
	e, err := core.NewEngine(a, core.DefaultSettings(), core.EngineDeps{Adjacency: adj, Scheduler: core.NewScheduler()})
	require.NoError(t, err)

	assert.True(t, e.CanFold(core.DirRight))
	assert.False(t, e.ExecuteFold(core.DirRight, 1))
}

func TestFoldedStackMovesRigidly(t *testing.T) {
	b := newBoard(t, core.C(-1, 0), core.C(0, 0), core.C(1, 0))
	a, mid, end := b.blocks[0], b.blocks[1], b.blocks[2]

	require.True(t, b.engines[0].ExecuteFold(core.DirRight, 1))
	b.settle(t)
	require.True(t, b.engines[1].ExecuteFold(core.DirRight, 1))
	b.settle(t)

	assert.Same(t, end, a.Root())
	assert.Same(t, mid, a.AttachedTo())
	assert.Equal(t, 3, end.StackCount())
	assert.InDelta(t, 1, a.World().Position.X, 0.01)
	assert.InDelta(t, 1, mid.World().Position.X, 0.01)
}

func TestPartialFoldCanonicalised(t *testing.T) {
	b := newBoard(t, core.C(0, 0), core.C(0, 1))

	angle, snapped := core.PlanFold(core.DefaultSettings(), 0.5)
	require.False(t, snapped)
	require.InDelta(t, 22.5, angle, eps)

	require.True(t, b.engines[0].ExecuteFold(core.DirUp, 0.5))
	b.settle(t)

	blk := b.blocks[0]
	assert.True(t, blk.State.Folded)
	assert.InDelta(t, 179, blk.State.FoldAngle, eps)
	assert.True(t, blk.World().Rotation.ApproxEqual(core.AxisAngle(core.AxisX, 179), 1e-9))
}

func TestPlanFold(t *testing.T) {
	s := core.DefaultSettings()
	tests := []struct {
		strength float64
		angle    float64
		snapped  bool
	}{
		{0, 0, false},
		{0.5, 22.5, false},
		{0.79, 35.55, false},
		{0.8, 179, true},
		{1, 179, true},
		{3, 179, true},
		{-1, 0, false},
	}

	for _, tt := range tests {
		angle, snapped := core.PlanFold(s, tt.strength)
		assert.InDelta(t, tt.angle, angle, 1e-6, "strength %v", tt.strength)
		assert.Equal(t, tt.snapped, snapped, "strength %v", tt.strength)
	}
}

func TestInvalidFoldShakesAndRestores(t *testing.T) {
	b := newBoard(t, core.C(0, 0))
	blk := b.blocks[0]
	origin := blk.World()

	require.True(t, b.engines[0].InvalidFold())
	assert.True(t, b.engines[0].Shaking())
	assert.False(t, b.engines[0].InvalidFold(), "ignored while shaking")

	b.sched.Tick(0.1)
	moved := blk.World().Position
	assert.InDelta(t, 0, moved.Y, eps)
	assert.LessOrEqual(t, moved.Sub(origin.Position).Len(), 0.1*1.5)

	b.settle(t)
	assert.False(t, b.engines[0].Shaking())
	assert.Equal(t, origin, blk.World())
	assert.Equal(t, core.State{Selectable: true}, blk.State)
}

func TestInvalidFoldNeedsJitter(t *testing.T) {
	blk := core.NewBlock(0, core.KindFiller, core.C(0, 0), 1)
	e, err := core.NewEngine(blk, core.DefaultSettings(), core.EngineDeps{
		Adjacency: core.NewBoardAdjacency([]*core.Block{blk}),
		Scheduler: core.NewScheduler(),
	})
	require.NoError(t, err)
	assert.False(t, e.InvalidFold())
}

func TestLockedEngineIgnoresFolds(t *testing.T) {
	b := newBoard(t, core.C(0, 0), core.C(1, 0))
	b.engines[0].Lock()

	assert.True(t, b.engines[0].Locked())
	assert.False(t, b.engines[0].ExecuteFold(core.DirRight, 1))
}

func TestNewEngineRequiresWiring(t *testing.T) {
	_, err := core.NewEngine(nil, core.DefaultSettings(), core.EngineDeps{})
	assert.ErrorIs(t, err, core.ErrNilBlock)

	blk := core.NewBlock(0, core.KindFiller, core.C(0, 0), 1)
	_, err = core.NewEngine(blk, core.DefaultSettings(), core.EngineDeps{})
	assert.ErrorIs(t, err, core.ErrMissingDependency)

	var unwired *core.Engine
	assert.False(t, unwired.ExecuteFold(core.DirUp, 1))
	assert.False(t, unwired.CanFold(core.DirUp))
	assert.Nil(t, unwired.Block())
}

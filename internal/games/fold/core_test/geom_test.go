package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/fold/internal/games/fold/core"
)

func TestQuatRotate(t *testing.T) {
	tests := []struct {
		name string
		q    core.Quat
		in   core.Vec3
		want core.Vec3
	}{
		{"identity", core.IdentityQuat(), core.V(1, 2, 3), core.V(1, 2, 3)},
		{"quarter turn about X", core.AxisAngle(core.AxisX, 90), core.V(0, 1, 0), core.V(0, 0, 1)},
		{"quarter turn about Z", core.AxisAngle(core.AxisZ, 90), core.V(1, 0, 0), core.V(0, 1, 0)},
		{"half turn about Y", core.AxisAngle(core.AxisY, 180), core.V(1, 0, 0), core.V(-1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.q.Rotate(tt.in)
			assert.True(t, got.ApproxEqual(tt.want, 1e-9), "got %v, want %v", got, tt.want)
		})
	}
}

func TestTransformInverseRoundTrip(t *testing.T) {
	pose := core.Transform{
		Position: core.V(1, 0.5, -2),
		Rotation: core.AxisAngle(core.AxisZ.Scale(-1), 179),
	}
	child := core.Transform{Position: core.V(0.3, 0.1, 0), Rotation: core.AxisAngle(core.AxisX, 30)}

	world := pose.Compose(child)
	back := pose.Inverse().Compose(world)

	assert.True(t, back.Position.ApproxEqual(child.Position, 1e-9))
	assert.True(t, back.Rotation.ApproxEqual(child.Rotation, 1e-9))
}

func TestAttachKeepsWorldPose(t *testing.T) {
	parent := core.NewBlock(0, core.KindBottom, core.C(2, 1), 1)
	parent.SetLocal(core.Transform{Position: core.V(2, 0, 1), Rotation: core.AxisAngle(core.AxisX, 45)})
	child := core.NewBlock(1, core.KindFiller, core.C(2, 2), 1)
	before := child.World()

	child.AttachTo(parent)
	after := child.World()
	assert.True(t, after.Position.ApproxEqual(before.Position, 1e-9))
	assert.True(t, after.Rotation.ApproxEqual(before.Rotation, 1e-9))
	assert.Equal(t, []*core.Block{child}, parent.Children())

	child.AttachTo(nil)
	assert.Nil(t, child.AttachedTo())
	assert.Empty(t, parent.Children())
	assert.True(t, child.World().Position.ApproxEqual(before.Position, 1e-9))
}

func TestDirectionVectors(t *testing.T) {
	assert.Equal(t, core.V(0, 0, 1), core.DirUp.Vector())
	assert.Equal(t, core.V(0, 0, -1), core.DirDown.Vector())
	assert.Equal(t, core.V(-1, 0, 0), core.DirLeft.Vector())
	assert.Equal(t, core.V(1, 0, 0), core.DirRight.Vector())
	for _, d := range core.Directions {
		assert.Equal(t, d, d.Opposite().Opposite())
		assert.Equal(t, core.C(0, 0), core.C(0, 0).Step(d).Step(d.Opposite()))
	}
}

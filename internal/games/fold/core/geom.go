package core

import (
	"fmt"
	"math"
)

// Vec3 is a point or offset in board space. X runs left to right, Z runs
// bottom to top of the board and Y is height above the board.
type Vec3 struct {
	X, Y, Z float64
}

// V is a convenience constructor for Vec3.
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Lerp interpolates from v to o by t (unclamped).
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return v.Add(o.Sub(v).Scale(t))
}

// Len returns the Euclidean length.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// ApproxEqual reports whether every component differs by at most eps.
func (v Vec3) ApproxEqual(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.3f,%.3f,%.3f)", v.X, v.Y, v.Z)
}

// Unit axes.
var (
	AxisX = Vec3{X: 1}
	AxisY = Vec3{Y: 1}
	AxisZ = Vec3{Z: 1}
)

// Quat is a unit quaternion rotation.
type Quat struct {
	W, X, Y, Z float64
}

// IdentityQuat is the zero rotation.
func IdentityQuat() Quat {
	return Quat{W: 1}
}

// AxisAngle builds a rotation of deg degrees about a unit axis.
func AxisAngle(axis Vec3, deg float64) Quat {
	half := deg * math.Pi / 360
	s := math.Sin(half)
	return Quat{W: math.Cos(half), X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s}
}

// Mul returns the rotation q applied after r.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
	}
}

// Conj returns the inverse of a unit quaternion.
func (q Quat) Conj() Quat {
	return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Rotate applies q to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	p := Quat{X: v.X, Y: v.Y, Z: v.Z}
	r := q.Mul(p).Mul(q.Conj())
	return Vec3{X: r.X, Y: r.Y, Z: r.Z}
}

// Normalize rescales q to unit length. The zero quaternion becomes identity.
func (q Quat) Normalize() Quat {
	n := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if n == 0 {
		return IdentityQuat()
	}
	return Quat{W: q.W / n, X: q.X / n, Y: q.Y / n, Z: q.Z / n}
}

// ApproxEqual compares two rotations, treating q and -q as equal.
func (q Quat) ApproxEqual(o Quat, eps float64) bool {
	dot := q.W*o.W + q.X*o.X + q.Y*o.Y + q.Z*o.Z
	return math.Abs(math.Abs(dot)-1) <= eps
}

// Transform is a rigid pose: rotation followed by translation.
type Transform struct {
	Position Vec3
	Rotation Quat
}

// IdentityTransform returns a pose at the origin with no rotation.
func IdentityTransform() Transform {
	return Transform{Rotation: IdentityQuat()}
}

// At returns an unrotated pose at p.
func At(p Vec3) Transform {
	return Transform{Position: p, Rotation: IdentityQuat()}
}

// Compose returns the pose of child expressed in t's parent space.
func (t Transform) Compose(child Transform) Transform {
	return Transform{
		Position: t.Position.Add(t.Rotation.Rotate(child.Position)),
		Rotation: t.Rotation.Mul(child.Rotation).Normalize(),
	}
}

// Inverse returns the pose that undoes t.
func (t Transform) Inverse() Transform {
	inv := t.Rotation.Conj()
	return Transform{
		Position: inv.Rotate(t.Position).Scale(-1),
		Rotation: inv,
	}
}

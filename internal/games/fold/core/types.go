// Package core provides the game logic for the fold puzzle: the block model,
// the procedural generator, the per-block fold engine and the coordinator
// that owns scoring, win detection and undo history.
// This package is UI-agnostic and deterministic given a seeded Rand.
package core

import "fmt"

// Direction is a board-local fold direction.
type Direction uint8

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Directions lists the four fold directions in a stable order.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case DirNone:
		return "None"
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Delta returns the grid step for this direction.
// Up increases Z, Down decreases Z (board coordinates, not screen rows).
func (d Direction) Delta() (dx, dz int) {
	switch d {
	case DirUp:
		return 0, 1
	case DirDown:
		return 0, -1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Vector returns the unit board-space vector for this direction.
func (d Direction) Vector() Vec3 {
	dx, dz := d.Delta()
	return Vec3{X: float64(dx), Z: float64(dz)}
}

// Opposite returns the opposite direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return d
	}
}

// Kind is the role of a block in the puzzle.
type Kind uint8

const (
	KindFiller Kind = iota
	KindBottom
	KindTop
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindBottom:
		return "Bottom"
	case KindTop:
		return "Top"
	case KindFiller:
		return "Filler"
	default:
		return "Unknown"
	}
}

// Rune returns the single-letter label used in ASCII layouts.
func (k Kind) Rune() rune {
	switch k {
	case KindBottom:
		return 'B'
	case KindTop:
		return 'T'
	default:
		return 'F'
	}
}

// Coord is an integer position on the board grid.
type Coord struct {
	X int
	Z int
}

// C is a convenience constructor for Coord.
func C(x, z int) Coord {
	return Coord{X: x, Z: z}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Z)
}

// Step returns the neighbouring coordinate in direction d.
func (c Coord) Step(d Direction) Coord {
	dx, dz := d.Delta()
	return Coord{X: c.X + dx, Z: c.Z + dz}
}

// Adjacent reports whether o is one of the four orthogonal neighbours of c.
func (c Coord) Adjacent(o Coord) bool {
	dx := c.X - o.X
	dz := c.Z - o.Z
	return dx*dx+dz*dz == 1
}

// Vec returns the board-space centre of the cell scaled by blockSize.
func (c Coord) Vec(blockSize float64) Vec3 {
	return Vec3{X: float64(c.X) * blockSize, Z: float64(c.Z) * blockSize}
}

// Permissions gates whether a block may ever fold in each direction.
type Permissions struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// AllPermissions allows every direction.
func AllPermissions() Permissions {
	return Permissions{Up: true, Down: true, Left: true, Right: true}
}

// Allows reports whether folding in d is permitted. DirNone is never allowed.
func (p Permissions) Allows(d Direction) bool {
	switch d {
	case DirUp:
		return p.Up
	case DirDown:
		return p.Down
	case DirLeft:
		return p.Left
	case DirRight:
		return p.Right
	default:
		return false
	}
}

// Set updates the permission for d.
func (p *Permissions) Set(d Direction, allowed bool) {
	switch d {
	case DirUp:
		p.Up = allowed
	case DirDown:
		p.Down = allowed
	case DirLeft:
		p.Left = allowed
	case DirRight:
		p.Right = allowed
	}
}

// State is the mutable fold state of a block.
type State struct {
	Selectable    bool
	Folding       bool
	Folded        bool
	FoldDirection Direction
	FoldAngle     float64 // Degrees
}

// CanBeSelected reports whether input may pick this block.
func (s State) CanBeSelected() bool {
	return s.Selectable && !s.Folding
}

package core

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Generator limits.
const (
	MinGridSize = 3
	MaxGridSize = 6
)

var (
	// ErrInvalidLevel is returned when generating a level below 1.
	ErrInvalidLevel = errors.New("level must be at least 1")
	// ErrNoCandidates is returned when no free cell can host the next block.
	ErrNoCandidates = errors.New("no free cell adjacent to placed blocks")
)

// Rand is the randomness the generator draws from. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Placement is one generated block position.
type Placement struct {
	Cell Coord
	Kind Kind
}

// Layout is a generated board: placements in insertion order
// (Bottom, Top, then fillers in placement order).
type Layout struct {
	Level      int
	GridSize   int
	Placements []Placement
	Used       map[Coord]bool
}

// GridSize returns the board edge length for a level.
func GridSize(level int) int {
	return min(MinGridSize+(level-1)/2, MaxGridSize)
}

// FillerCount returns how many filler blocks a level places.
func FillerCount(level int) int {
	n := GridSize(level)
	return min(3+(level-1)/2, n*n-2)
}

// GridCells returns every cell of an n×n board centred on the origin,
// ordered by X then Z.
func GridCells(n int) []Coord {
	shift := int(math.RoundToEven(float64(n-1) / 2))
	cells := make([]Coord, 0, n*n)
	for x := 0; x < n; x++ {
		for z := 0; z < n; z++ {
			cells = append(cells, C(x-shift, z-shift))
		}
	}
	return cells
}

// Generator builds random puzzle layouts.
type Generator struct {
	rng Rand
}

// NewGenerator creates a generator drawing from rng.
func NewGenerator(rng Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate builds the layout for level.
func (g *Generator) Generate(level int) (Layout, error) {
	if level < 1 {
		return Layout{}, fmt.Errorf("generate level %d: %w", level, ErrInvalidLevel)
	}

	size := GridSize(level)
	cells := GridCells(size)
	layout := Layout{
		Level:      level,
		GridSize:   size,
		Placements: make([]Placement, 0, 2+FillerCount(level)),
		Used:       make(map[Coord]bool),
	}

	bottom, err := g.pick(layout.free(cells))
	if err != nil {
		return Layout{}, fmt.Errorf("place bottom: %w", err)
	}
	layout.place(bottom, KindBottom)

	var aroundBottom []Coord
	for _, c := range cells {
		if c.Adjacent(bottom) {
			aroundBottom = append(aroundBottom, c)
		}
	}
	top, err := g.pick(aroundBottom)
	if err != nil {
		return Layout{}, fmt.Errorf("place top: %w", err)
	}
	layout.place(top, KindTop)

	for i := 0; i < FillerCount(level); i++ {
		cell, err := g.pick(layout.frontier(cells))
		if err != nil {
			return Layout{}, fmt.Errorf("place filler %d: %w", i+1, err)
		}
		layout.place(cell, KindFiller)
	}

	return layout, nil
}

func (g *Generator) pick(candidates []Coord) (Coord, error) {
	if len(candidates) == 0 {
		return Coord{}, ErrNoCandidates
	}
	return candidates[g.rng.Intn(len(candidates))], nil
}

func (l *Layout) place(c Coord, k Kind) {
	l.Placements = append(l.Placements, Placement{Cell: c, Kind: k})
	l.Used[c] = true
}

// free returns unused cells in board order.
func (l *Layout) free(cells []Coord) []Coord {
	var out []Coord
	for _, c := range cells {
		if !l.Used[c] {
			out = append(out, c)
		}
	}
	return out
}

// frontier returns unused cells adjacent to any used cell, each once.
func (l *Layout) frontier(cells []Coord) []Coord {
	var out []Coord
	for _, c := range cells {
		if l.Used[c] {
			continue
		}
		for _, d := range Directions {
			if l.Used[c.Step(d)] {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Count returns the number of placements of kind k.
func (l Layout) Count(k Kind) int {
	n := 0
	for _, p := range l.Placements {
		if p.Kind == k {
			n++
		}
	}
	return n
}

// Validate checks the structural guarantees of a generated layout.
func (l Layout) Validate() error {
	if len(l.Placements) < 2 {
		return fmt.Errorf("layout has %d blocks, need at least 2", len(l.Placements))
	}
	if l.Placements[0].Kind != KindBottom || l.Placements[1].Kind != KindTop {
		return errors.New("layout must start with Bottom then Top")
	}
	if l.Count(KindBottom) != 1 || l.Count(KindTop) != 1 {
		return fmt.Errorf("layout has %d bottom and %d top blocks", l.Count(KindBottom), l.Count(KindTop))
	}
	if !l.Placements[0].Cell.Adjacent(l.Placements[1].Cell) {
		return fmt.Errorf("top %v is not adjacent to bottom %v", l.Placements[1].Cell, l.Placements[0].Cell)
	}

	seen := make(map[Coord]bool, len(l.Placements))
	for i, p := range l.Placements {
		if seen[p.Cell] {
			return fmt.Errorf("cell %v used twice", p.Cell)
		}
		if i >= 2 {
			connected := false
			for _, prev := range l.Placements[:i] {
				if prev.Cell.Adjacent(p.Cell) {
					connected = true
					break
				}
			}
			if !connected {
				return fmt.Errorf("filler %v is not adjacent to an earlier block", p.Cell)
			}
		}
		seen[p.Cell] = true
	}
	return nil
}

// String draws the layout as rows of kind letters, highest Z first.
func (l Layout) String() string {
	kinds := make(map[Coord]Kind, len(l.Placements))
	for _, p := range l.Placements {
		kinds[p.Cell] = p.Kind
	}
	cells := GridCells(l.GridSize)
	if len(cells) == 0 {
		return ""
	}
	lo, hi := cells[0], cells[len(cells)-1]

	var sb strings.Builder
	for z := hi.Z; z >= lo.Z; z-- {
		for x := lo.X; x <= hi.X; x++ {
			if x > lo.X {
				sb.WriteByte(' ')
			}
			if k, ok := kinds[C(x, z)]; ok {
				sb.WriteRune(k.Rune())
			} else {
				sb.WriteByte('.')
			}
		}
		if z > lo.Z {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

package core

// Adjacency answers which block sits next to b in a direction. It stands in
// for the host's spatial query and is authoritative for CanFold.
type Adjacency interface {
	Neighbor(b *Block, dir Direction) *Block
}

// AdjacencyFunc adapts a function to Adjacency.
type AdjacencyFunc func(b *Block, dir Direction) *Block

// Neighbor implements Adjacency.
func (f AdjacencyFunc) Neighbor(b *Block, dir Direction) *Block {
	return f(b, dir)
}

// BoardAdjacency resolves neighbours by grid cell among collidable blocks.
// Folded blocks have their collision disabled, so only stack roots are found.
type BoardAdjacency struct {
	blocks []*Block
}

// NewBoardAdjacency indexes the given blocks.
func NewBoardAdjacency(blocks []*Block) *BoardAdjacency {
	return &BoardAdjacency{blocks: blocks}
}

// Neighbor implements Adjacency.
func (a *BoardAdjacency) Neighbor(b *Block, dir Direction) *Block {
	if b == nil || dir == DirNone {
		return nil
	}
	want := b.Root().Cell.Step(dir)
	for _, other := range a.blocks {
		if other == b || !other.Collidable() {
			continue
		}
		if other.Cell == want {
			return other
		}
	}
	return nil
}

// At returns the collidable block resting on cell, or nil.
func (a *BoardAdjacency) At(cell Coord) *Block {
	for _, b := range a.blocks {
		if b.Collidable() && b.Cell == cell {
			return b
		}
	}
	return nil
}

package core

// BlockID identifies a block within one generated puzzle.
// IDs are the insertion index of the block in its layout.
type BlockID int

// Block is one cube of the puzzle.
//
// A folded block is attached to the block it was folded onto and its pose is
// stored relative to that parent, so a whole stack moves when its root folds.
type Block struct {
	ID          BlockID
	Kind        Kind
	Cell        Coord
	Permissions Permissions
	State       State

	local      Transform // Relative to parent, or board space when unattached
	parent     *Block
	children   []*Block
	collidable bool
}

// NewBlock creates an unattached, collidable block resting on cell.
func NewBlock(id BlockID, kind Kind, cell Coord, blockSize float64) *Block {
	return &Block{
		ID:          id,
		Kind:        kind,
		Cell:        cell,
		Permissions: AllPermissions(),
		State:       State{Selectable: true},
		local:       At(cell.Vec(blockSize)),
		collidable:  true,
	}
}

// AttachedTo returns the block this one is folded onto, or nil.
func (b *Block) AttachedTo() *Block {
	return b.parent
}

// Children returns the blocks directly attached to b.
func (b *Block) Children() []*Block {
	out := make([]*Block, len(b.children))
	copy(out, b.children)
	return out
}

// Root returns the bottom-most block of b's stack.
func (b *Block) Root() *Block {
	r := b
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Descendants counts every block attached below b, transitively.
func (b *Block) Descendants() int {
	n := 0
	for _, c := range b.children {
		n += 1 + c.Descendants()
	}
	return n
}

// StackCount is b plus its descendants.
func (b *Block) StackCount() int {
	return 1 + b.Descendants()
}

// ChainContains reports whether other is b or one of b's ancestors.
func (b *Block) ChainContains(other *Block) bool {
	for cur := b; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}
	return false
}

// Collidable reports whether adjacency queries can see this block.
func (b *Block) Collidable() bool {
	return b.collidable
}

// SetCollidable toggles b's collision surface.
func (b *Block) SetCollidable(on bool) {
	b.collidable = on
}

// Local returns b's pose relative to its parent.
func (b *Block) Local() Transform {
	return b.local
}

// SetLocal replaces b's pose relative to its parent.
func (b *Block) SetLocal(t Transform) {
	b.local = t
}

// World returns b's pose in board space.
func (b *Block) World() Transform {
	if b.parent == nil {
		return b.local
	}
	return b.parent.World().Compose(b.local)
}

// SetWorld moves b so its board-space pose equals t.
func (b *Block) SetWorld(t Transform) {
	if b.parent == nil {
		b.local = t
		return
	}
	b.local = b.parent.World().Inverse().Compose(t)
}

// AttachTo reparents b under parent, keeping its board-space pose.
// A nil parent detaches b.
func (b *Block) AttachTo(parent *Block) {
	world := b.World()
	b.setParent(parent)
	b.SetWorld(world)
}

// setParent relinks the tree without touching the stored local pose.
func (b *Block) setParent(parent *Block) {
	if b.parent == parent {
		return
	}
	if b.parent != nil {
		siblings := b.parent.children
		for i, c := range siblings {
			if c == b {
				b.parent.children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
	b.parent = parent
	if parent != nil {
		parent.children = append(parent.children, b)
	}
}

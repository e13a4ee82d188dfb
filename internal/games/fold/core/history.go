package core

// NoParent marks an unattached block in a snapshot.
const NoParent BlockID = -1

// DefaultHistoryCapacity is how many snapshots undo can reach back through.
const DefaultHistoryCapacity = 20

// BlockSnapshot is the restorable state of one block.
type BlockSnapshot struct {
	ID            BlockID
	Parent        BlockID // NoParent when unattached
	Local         Transform
	Folded        bool
	Selectable    bool
	FoldDirection Direction
	FoldAngle     float64
}

// Snapshot captures the whole board plus score and moves.
type Snapshot struct {
	Blocks []BlockSnapshot
	Score  int
	Moves  int
}

// Capture records the current state of blocks.
func Capture(blocks []*Block, score, moves int) Snapshot {
	snap := Snapshot{
		Blocks: make([]BlockSnapshot, len(blocks)),
		Score:  score,
		Moves:  moves,
	}
	for i, b := range blocks {
		parent := NoParent
		if b.parent != nil {
			parent = b.parent.ID
		}
		snap.Blocks[i] = BlockSnapshot{
			ID:            b.ID,
			Parent:        parent,
			Local:         b.local,
			Folded:        b.State.Folded,
			Selectable:    b.State.Selectable,
			FoldDirection: b.State.FoldDirection,
			FoldAngle:     b.State.FoldAngle,
		}
	}
	return snap
}

// History is a bounded ring of snapshots; the oldest entry is evicted first.
type History struct {
	ring []Snapshot
	head int // Index of the oldest entry
	size int
}

// NewHistory creates an empty history holding at most capacity snapshots.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = DefaultHistoryCapacity
	}
	return &History{ring: make([]Snapshot, capacity)}
}

// Cap returns the maximum number of retained snapshots.
func (h *History) Cap() int {
	return len(h.ring)
}

// Len returns the number of retained snapshots.
func (h *History) Len() int {
	return h.size
}

// Push appends s, evicting the oldest entry when full.
func (h *History) Push(s Snapshot) {
	if h.size == len(h.ring) {
		h.ring[h.head] = s
		h.head = (h.head + 1) % len(h.ring)
		return
	}
	h.ring[(h.head+h.size)%len(h.ring)] = s
	h.size++
}

// At returns the i-th retained snapshot, oldest first.
func (h *History) At(i int) (Snapshot, bool) {
	if i < 0 || i >= h.size {
		return Snapshot{}, false
	}
	return h.ring[(h.head+i)%len(h.ring)], true
}

// DropLast discards the newest snapshot.
func (h *History) DropLast() {
	if h.size == 0 {
		return
	}
	h.size--
	h.ring[(h.head+h.size)%len(h.ring)] = Snapshot{}
}

// Clear removes every snapshot.
func (h *History) Clear() {
	for i := range h.ring {
		h.ring[i] = Snapshot{}
	}
	h.head = 0
	h.size = 0
}

// Entries returns the retained snapshots, oldest first.
func (h *History) Entries() []Snapshot {
	out := make([]Snapshot, 0, h.size)
	for i := 0; i < h.size; i++ {
		s, _ := h.At(i)
		out = append(out, s)
	}
	return out
}

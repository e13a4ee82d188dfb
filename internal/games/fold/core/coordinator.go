package core

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// ErrMissingTopOrBottom is returned when a layout lacks its Top or Bottom block.
var ErrMissingTopOrBottom = errors.New("layout has no top or bottom block")

const (
	// DefaultWinDelay is the pause in seconds between a win and the next level.
	DefaultWinDelay = 2.0
	// DefaultSkipPenalty is subtracted from the score when a level is skipped.
	DefaultSkipPenalty = 50
)

// LevelScore is the bonus for finishing level in moves folds.
func LevelScore(level, moves int) int {
	return level*100 + max(0, (50-moves)*10)
}

// WinMessage is the text shown when a level is complete.
func WinMessage(level, score, moves int) string {
	return fmt.Sprintf("Level %d Complete!\nScore: %d\nMoves: %d", level, score, moves)
}

// UISink displays the HUD and the win overlay.
type UISink interface {
	UpdateHUD(score, level int, undoEnabled bool)
	ShowWin(message string)
	HidePanels()
}

// Observer is told about gameplay events, typically for metrics.
type Observer interface {
	FoldStarted(level int, dir Direction)
	FoldCompleted(level int)
	InvalidFold(level int)
	Undo(level int)
	LevelWon(level, score, moves int)
	LevelSkipped(level int)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) FoldStarted(int, Direction) {}
func (NopObserver) FoldCompleted(int)          {}
func (NopObserver) InvalidFold(int)            {}
func (NopObserver) Undo(int)                   {}
func (NopObserver) LevelWon(int, int, int)     {}
func (NopObserver) LevelSkipped(int)           {}

type nopUI struct{}

func (nopUI) UpdateHUD(int, int, bool) {}
func (nopUI) ShowWin(string)           {}
func (nopUI) HidePanels()              {}

// Config tunes a Coordinator.
type Config struct {
	Settings        Settings
	HistoryCapacity int
	WinDelay        float64 // Seconds
	SkipPenalty     int
}

// DefaultConfig returns the stock rules.
func DefaultConfig() Config {
	return Config{
		Settings:        DefaultSettings(),
		HistoryCapacity: DefaultHistoryCapacity,
		WinDelay:        DefaultWinDelay,
		SkipPenalty:     DefaultSkipPenalty,
	}
}

// Deps are the host collaborators of a Coordinator. Every field is optional.
type Deps struct {
	Rand     Rand
	Jitter   Jitter
	UI       UISink
	Audio    AudioCue
	Poses    PoseSink
	Observer Observer
	Logger   *log.Logger
}

// Coordinator owns one puzzle: its blocks, the folded set, scoring,
// win detection and the undo history.
type Coordinator struct {
	cfg      Config
	deps     Deps
	logger   *log.Logger
	gen      *Generator
	sched    *Scheduler
	history  *History
	adjacent *BoardAdjacency

	level    int
	gridSize int
	score    int
	moves    int
	won      bool

	blocks  []*Block
	engines []*Engine
	folded  map[BlockID]struct{}
	top     *Block
	bottom  *Block
}

// NewCoordinator creates a coordinator with no level loaded.
func NewCoordinator(cfg Config, deps Deps) *Coordinator {
	if cfg.HistoryCapacity < 1 {
		cfg.HistoryCapacity = DefaultHistoryCapacity
	}
	if cfg.WinDelay < 0 {
		cfg.WinDelay = 0
	}
	if deps.UI == nil {
		deps.UI = nopUI{}
	}
	if deps.Observer == nil {
		deps.Observer = NopObserver{}
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	var gen *Generator
	if deps.Rand != nil {
		gen = NewGenerator(deps.Rand)
	}
	return &Coordinator{
		cfg:     cfg,
		deps:    deps,
		logger:  deps.Logger,
		gen:     gen,
		sched:   NewScheduler(),
		history: NewHistory(cfg.HistoryCapacity),
		folded:  make(map[BlockID]struct{}),
	}
}

// Start generates and loads level.
func (c *Coordinator) Start(level int) error {
	if c.gen == nil {
		c.logger.Error("cannot generate a level", "level", level, "err", ErrMissingDependency)
		return fmt.Errorf("start level %d: %w", level, ErrMissingDependency)
	}
	layout, err := c.gen.Generate(level)
	if err != nil {
		c.logger.Error("level generation failed", "level", level, "err", err)
		return err
	}
	return c.Load(layout)
}

// NextLevel advances to the following level.
func (c *Coordinator) NextLevel() error {
	return c.Start(c.level + 1)
}

// Load replaces the board with layout and takes the initial snapshot.
func (c *Coordinator) Load(layout Layout) error {
	c.sched.Clear()
	c.deps.UI.HidePanels()

	blocks := make([]*Block, len(layout.Placements))
	var top, bottom *Block
	for i, p := range layout.Placements {
		b := NewBlock(BlockID(i), p.Kind, p.Cell, c.cfg.Settings.BlockSize)
		b.State.Selectable = p.Kind == KindFiller
		switch p.Kind {
		case KindTop:
			top = b
		case KindBottom:
			bottom = b
		}
		blocks[i] = b
	}
	if top == nil || bottom == nil {
		c.logger.Error("cannot load level", "level", layout.Level, "err", ErrMissingTopOrBottom)
		return fmt.Errorf("load level %d: %w", layout.Level, ErrMissingTopOrBottom)
	}

	adj := NewBoardAdjacency(blocks)
	engines := make([]*Engine, len(blocks))
	for i, b := range blocks {
		e, err := NewEngine(b, c.cfg.Settings, EngineDeps{
			Adjacency: adj,
			Scheduler: c.sched,
			Jitter:    c.deps.Jitter,
			Poses:     c.deps.Poses,
			Audio:     c.deps.Audio,
			Logger:    c.logger,
		})
		if err != nil {
			return fmt.Errorf("load level %d: %w", layout.Level, err)
		}
		e.OnFolded(c.OnFoldCompleted)
		engines[i] = e
	}

	c.level = layout.Level
	c.gridSize = layout.GridSize
	c.blocks = blocks
	c.engines = engines
	c.adjacent = adj
	c.top = top
	c.bottom = bottom
	c.folded = make(map[BlockID]struct{})
	c.moves = 0
	c.won = false
	c.history.Clear()

	c.logger.Info("level loaded", "level", c.level, "grid", c.gridSize, "blocks", len(blocks))
	c.SaveSnapshot()
	return nil
}

// OnFoldCompleted records a finished fold and checks for a win.
func (c *Coordinator) OnFoldCompleted(b *Block) {
	if b == nil {
		c.logger.Warn("fold completed without a block")
		return
	}
	c.folded[b.ID] = struct{}{}
	c.deps.Observer.FoldCompleted(c.level)
	if c.won {
		// The board is frozen; a late landing is not a move.
		return
	}
	c.moves++

	if c.isWin() {
		c.win()
	} else {
		c.updateSelectable()
	}
	c.SaveSnapshot()
}

// OnUnfold removes b from the folded set.
func (c *Coordinator) OnUnfold(b *Block) {
	if b == nil {
		return
	}
	delete(c.folded, b.ID)
	if !c.won {
		c.updateSelectable()
	}
}

func (c *Coordinator) isWin() bool {
	return c.top.State.Folded || c.bottom.State.Folded || len(c.folded) == len(c.blocks)-1
}

func (c *Coordinator) win() {
	c.won = true
	for _, e := range c.engines {
		e.Lock()
	}
	for _, b := range c.blocks {
		b.State.Selectable = false
	}
	c.score += LevelScore(c.level, c.moves)

	c.logger.Info("level complete", "level", c.level, "score", c.score, "moves", c.moves)
	c.deps.UI.ShowWin(WinMessage(c.level, c.score, c.moves))
	c.deps.Observer.LevelWon(c.level, c.score, c.moves)

	c.sched.Start(NewDelay(c.cfg.WinDelay, func() {
		if err := c.NextLevel(); err != nil {
			c.logger.Error("advancing level failed", "err", err)
		}
	}))
}

// updateSelectable unlocks Top and Bottom once every filler is folded.
func (c *Coordinator) updateSelectable() {
	fillers := 0
	for id := range c.folded {
		if c.blocks[id].Kind == KindFiller {
			fillers++
		}
	}
	ready := fillers == len(c.blocks)-2
	c.top.State.Selectable = ready && !c.top.State.Folded
	c.bottom.State.Selectable = ready && !c.bottom.State.Folded
}

// SaveSnapshot appends the current board to the undo history. Blocks still
// folding or shaking are recorded as they were before the animation began.
func (c *Coordinator) SaveSnapshot() {
	snap := Capture(c.blocks, c.score, c.moves)
	for i, e := range c.engines {
		rest, ok := e.RestPose()
		if !ok {
			continue
		}
		bs := &snap.Blocks[i]
		bs.Parent = NoParent
		bs.Local = rest
		if e.Folding() {
			bs.Selectable = true
			bs.FoldDirection = DirNone
			bs.FoldAngle = 0
		}
	}
	c.history.Push(snap)
	c.pushHUD()
}

func (c *Coordinator) pushHUD() {
	c.deps.UI.UpdateHUD(c.score, c.level, c.history.Len() > 1)
}

// Undo restores the board to the previous snapshot. It reports whether
// anything was undone.
func (c *Coordinator) Undo() bool {
	if c.history.Len() <= 1 || c.won || c.Busy() {
		return false
	}
	prev, _ := c.history.At(c.history.Len() - 2)
	if len(prev.Blocks) != len(c.blocks) {
		c.logger.Error("snapshot does not match board", "want", len(c.blocks), "got", len(prev.Blocks))
		return false
	}

	for i, b := range c.blocks {
		s := prev.Blocks[i]
		var parent *Block
		if s.Parent != NoParent {
			parent = c.blocks[s.Parent]
		}
		b.setParent(parent)
		b.SetLocal(s.Local)
		b.State = State{
			Selectable:    s.Selectable,
			Folded:        s.Folded,
			FoldDirection: s.FoldDirection,
			FoldAngle:     s.FoldAngle,
		}
		b.SetCollidable(!s.Folded)
		c.engines[i].Reset()
	}
	for _, b := range c.blocks {
		if _, ok := c.folded[b.ID]; ok && !b.State.Folded {
			c.OnUnfold(b)
		}
	}
	for _, b := range c.blocks {
		if c.deps.Poses != nil {
			c.deps.Poses.ApplyPose(b, b.World())
		}
	}

	c.score = prev.Score
	c.moves = prev.Moves
	c.history.DropLast()
	c.deps.Observer.Undo(c.level)
	c.logger.Debug("undo", "level", c.level, "moves", c.moves, "history", c.history.Len())
	c.pushHUD()
	return true
}

// SkipLevel abandons the current level for a score penalty.
// It reports whether the level was skipped.
func (c *Coordinator) SkipLevel() (bool, error) {
	if c.won {
		return false, nil
	}
	c.score = max(0, c.score-c.cfg.SkipPenalty)
	c.deps.Observer.LevelSkipped(c.level)
	c.logger.Info("level skipped", "level", c.level, "score", c.score)
	return true, c.NextLevel()
}

// Fold starts folding block id towards dir. It reports whether a fold started.
func (c *Coordinator) Fold(id BlockID, dir Direction, strength float64) bool {
	e := c.Engine(id)
	if c.won || e == nil || !e.block.State.CanBeSelected() {
		return false
	}
	if !e.ExecuteFold(dir, strength) {
		return false
	}
	c.deps.Observer.FoldStarted(c.level, dir)
	return true
}

// InvalidFold plays the rejection feedback on block id.
func (c *Coordinator) InvalidFold(id BlockID) bool {
	e := c.Engine(id)
	if c.won || e == nil {
		return false
	}
	if !e.InvalidFold() {
		return false
	}
	c.deps.Observer.InvalidFold(c.level)
	return true
}

// CanFold reports whether block id may be folded towards dir right now.
func (c *Coordinator) CanFold(id BlockID, dir Direction) bool {
	e := c.Engine(id)
	if c.won || e == nil || !e.block.State.CanBeSelected() {
		return false
	}
	return e.CanFold(dir)
}

// Tick advances every animation and timer by dt seconds.
func (c *Coordinator) Tick(dt float64) {
	c.sched.Tick(dt)
}

// Busy reports whether any block is folding or shaking.
func (c *Coordinator) Busy() bool {
	for _, e := range c.engines {
		if e.Folding() || e.Shaking() {
			return true
		}
	}
	return false
}

// Engine returns the engine of block id, or nil.
func (c *Coordinator) Engine(id BlockID) *Engine {
	if id < 0 || int(id) >= len(c.engines) {
		return nil
	}
	return c.engines[id]
}

// Block returns block id, or nil.
func (c *Coordinator) Block(id BlockID) *Block {
	if id < 0 || int(id) >= len(c.blocks) {
		return nil
	}
	return c.blocks[id]
}

// BlockAt returns the unfolded block resting on cell, or nil.
func (c *Coordinator) BlockAt(cell Coord) *Block {
	if c.adjacent == nil {
		return nil
	}
	return c.adjacent.At(cell)
}

// Blocks returns the active blocks in layout order.
func (c *Coordinator) Blocks() []*Block {
	out := make([]*Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// IsFolded reports whether block id is in the folded set.
func (c *Coordinator) IsFolded(id BlockID) bool {
	_, ok := c.folded[id]
	return ok
}

func (c *Coordinator) Level() int       { return c.level }
func (c *Coordinator) GridSize() int    { return c.gridSize }
func (c *Coordinator) Score() int       { return c.score }
func (c *Coordinator) Moves() int       { return c.moves }
func (c *Coordinator) Won() bool        { return c.won }
func (c *Coordinator) FoldedCount() int { return len(c.folded) }
func (c *Coordinator) Top() *Block      { return c.top }
func (c *Coordinator) Bottom() *Block   { return c.bottom }
func (c *Coordinator) History() *History {
	return c.history
}

// Config returns the rules the coordinator was built with.
func (c *Coordinator) Config() Config {
	return c.cfg
}

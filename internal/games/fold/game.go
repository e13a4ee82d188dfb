// Package fold adapts the fold puzzle core to the terminal platform:
// input translation, drag tracking, rendering and the HUD.
package fold

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fold/internal/config"
	platformcore "github.com/vovakirdan/fold/internal/core"
	"github.com/vovakirdan/fold/internal/games/fold/core"
	"github.com/vovakirdan/fold/internal/registry"
)

// Mode selects the rule set of a run.
type Mode string

const (
	ModeCampaign Mode = "fold"
	ModePractice Mode = "fold_practice"
)

// Game implements registry.Game for the fold puzzle.
type Game struct {
	mode     Mode
	settings config.FoldConfig
	observer core.Observer
	logger   *log.Logger

	rng    *rand.Rand
	coord  *core.Coordinator
	hud    *hud
	cue    *cue
	poses  poses
	drag   *DragTracker
	events []platformcore.Event
	dt     float64

	// Keyboard selection
	cursor  core.Coord
	grabbed core.BlockID
	holding bool

	// Screen dimensions
	screenW int
	screenH int

	tick     uint64
	paused   bool
	tooSmall bool
}

func init() {
	registry.Register(string(ModeCampaign), func() registry.Game {
		return New()
	})
	registry.Register(string(ModePractice), func() registry.Game {
		return NewPractice()
	})
}

// New creates a campaign game: levels advance and skipping costs points.
func New() *Game {
	return newGame(ModeCampaign)
}

// NewPractice creates a practice game: skipping is free.
func NewPractice() *Game {
	return newGame(ModePractice)
}

func newGame(mode Mode) *Game {
	return &Game{
		mode:     mode,
		settings: config.DefaultFoldConfig(),
		observer: core.NopObserver{},
		logger:   log.New(io.Discard),
	}
}

// Configure installs tuning, a metrics observer and a logger. Nil values
// keep the current ones. Call before Reset.
func (g *Game) Configure(cfg config.FoldConfig, obs core.Observer, logger *log.Logger) {
	g.settings = cfg
	if obs != nil {
		g.observer = obs
	}
	if logger != nil {
		g.logger = logger.With("mode", string(g.mode))
	}
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModePractice {
		return "Fold (Practice)"
	}
	return "Fold"
}

// Description implements registry.Describer.
func (g *Game) Description() string {
	if g.mode == ModePractice {
		return "Fold tiles onto their neighbours; skipping levels is free"
	}
	return "Fold every tile into one stack, level after level"
}

// CoreConfig converts file configuration into coordinator rules.
func CoreConfig(cfg config.FoldConfig, mode Mode) core.Config {
	c := core.Config{
		Settings: core.Settings{
			SnapAngle:      cfg.Fold.SnapAngle,
			SnapThreshold:  cfg.Fold.SnapThreshold,
			FullFoldAngle:  cfg.Fold.FullFoldAngle,
			FoldSpeed:      cfg.Fold.FoldSpeed,
			BlockSize:      cfg.Fold.BlockSize,
			StackHeight:    cfg.Fold.StackHeight,
			ShakeDuration:  cfg.Fold.ShakeDuration,
			ShakeMagnitude: cfg.Fold.ShakeMagnitude,
			Ease:           core.EasingByName(cfg.Fold.Easing),
		},
		HistoryCapacity: cfg.Rules.HistoryCapacity,
		WinDelay:        cfg.Rules.WinDelay,
		SkipPenalty:     cfg.Rules.SkipPenalty,
	}
	if mode == ModePractice {
		c.SkipPenalty = 0
	}
	return c
}

// Reset starts a new run.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.dt = cfg.Dt()
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.paused = false
	g.holding = false
	g.events = nil

	g.hud = &hud{}
	g.cue = &cue{events: &g.events}
	g.poses = make(poses)
	g.drag = NewDragTracker(g.settings.Input.DragThreshold)
	g.coord = core.NewCoordinator(CoreConfig(g.settings, g.mode), core.Deps{
		Rand:     g.rng,
		Jitter:   g.rng,
		UI:       g.hud,
		Audio:    g.cue,
		Poses:    g.poses,
		Observer: &recorder{next: g.observer, game: g, events: &g.events},
		Logger:   g.logger,
	})

	level := cfg.StartLevel
	if level < 1 {
		level = g.settings.Difficulty.StartLevel
	}
	if err := g.coord.Start(max(level, 1)); err != nil {
		g.logger.Error("cannot start run", "level", level, "err", err)
	}
	g.cursor = core.Coord{}
	g.checkScreenSize()
}

// Coordinator exposes the puzzle state, mainly for tests and tools.
func (g *Game) Coordinator() *core.Coordinator {
	return g.coord
}

// Resize adapts the layout to a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.checkScreenSize()
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++
	g.events = g.events[:0]

	if g.tooSmall {
		return g.result()
	}
	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	g.handleCommands(in)
	g.handleKeys(in)
	for _, ev := range in.Pointer {
		g.handlePointer(ev)
	}

	g.coord.Tick(g.dt)
	g.prunePoses()
	g.cue.tick()
	g.checkScreenSize()
	g.clampCursor()
	return g.result()
}

func (g *Game) result() platformcore.StepResult {
	var events []platformcore.Event
	if len(g.events) > 0 {
		events = append(events, g.events...)
	}
	return platformcore.StepResult{State: g.State(), Events: events}
}

func (g *Game) handleCommands(in platformcore.InputFrame) {
	if in.Has(platformcore.ActionUndo) {
		g.holding = false
		g.coord.Undo()
	}
	if in.Has(platformcore.ActionSkip) {
		g.holding = false
		if _, err := g.coord.SkipLevel(); err != nil {
			g.logger.Error("skip failed", "err", err)
		}
	}
}

// handleKeys moves the cursor, grabs a tile, or folds the grabbed tile.
func (g *Game) handleKeys(in platformcore.InputFrame) {
	dir := actionDirection(in)

	if g.holding {
		switch {
		case dir != core.DirNone:
			g.attemptFold(g.grabbed, dir, 1)
			g.holding = false
		case in.Has(platformcore.ActionSelect):
			g.holding = false
		}
		return
	}

	if dir != core.DirNone {
		g.cursor = g.cursor.Step(dir)
		g.clampCursor()
	}
	if in.Has(platformcore.ActionSelect) {
		b := g.coord.BlockAt(g.cursor)
		switch {
		case b == nil:
		case b.State.CanBeSelected():
			g.grabbed = b.ID
			g.holding = true
		default:
			g.coord.InvalidFold(b.ID)
		}
	}
}

func (g *Game) handlePointer(ev platformcore.PointerEvent) {
	switch ev.Kind {
	case platformcore.PointerDown:
		cell, ok := g.cellAt(ev.X, ev.Y)
		if !ok {
			return
		}
		g.cursor = cell
		b := g.coord.BlockAt(cell)
		if b == nil {
			return
		}
		if !b.State.CanBeSelected() {
			g.coord.InvalidFold(b.ID)
			return
		}
		g.grabbed = b.ID
		g.holding = false
		g.drag.Begin(ev.X, ev.Y)
	case platformcore.PointerMove:
		g.drag.Move(ev.X, ev.Y)
	case platformcore.PointerUp:
		if !g.drag.Active() {
			return
		}
		dir, strength := g.drag.End(ev.X, ev.Y)
		if dir == core.DirNone {
			return
		}
		g.attemptFold(g.grabbed, dir, strength)
	}
}

// attemptFold folds id towards dir, or shakes it when the fold is illegal.
func (g *Game) attemptFold(id core.BlockID, dir core.Direction, strength float64) {
	if g.coord.CanFold(id, dir) {
		g.coord.Fold(id, dir, strength)
		return
	}
	g.coord.InvalidFold(id)
}

func actionDirection(in platformcore.InputFrame) core.Direction {
	switch {
	case in.Has(platformcore.ActionUp):
		return core.DirUp
	case in.Has(platformcore.ActionDown):
		return core.DirDown
	case in.Has(platformcore.ActionLeft):
		return core.DirLeft
	case in.Has(platformcore.ActionRight):
		return core.DirRight
	default:
		return core.DirNone
	}
}

func (g *Game) clampCursor() {
	lo, hi := boardSpan(g.coord.GridSize())
	g.cursor.X = platformcore.Clamp(g.cursor.X, lo, hi)
	g.cursor.Z = platformcore.Clamp(g.cursor.Z, lo, hi)
}

// checkScreenSize checks if the screen can hold the current board.
func (g *Game) checkScreenSize() {
	if g.coord == nil {
		return
	}
	n := max(g.coord.GridSize(), core.MinGridSize)
	minW := n*g.settings.Display.TileWidth + 2
	minH := n*g.settings.Display.TileHeight + hudHeight + footerHeight + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.coord == nil {
		return platformcore.GameState{}
	}
	return platformcore.GameState{
		Score:  g.coord.Score(),
		Level:  g.coord.Level(),
		Moves:  g.coord.Moves(),
		Paused: g.paused || g.tooSmall,
	}
}

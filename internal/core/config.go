package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW    int   // Screen width in characters
	ScreenH    int   // Screen height in characters
	TickRate   int   // Simulation ticks per second (default 60)
	Seed       int64 // RNG seed; 0 means the platform picks one
	StartLevel int   // First puzzle level, at least 1
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		Seed:       0,
		StartLevel: 1,
	}
}

// Dt returns the simulated seconds per tick.
func (c RuntimeConfig) Dt() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Run score across levels
	Level    int  // Current puzzle level
	Moves    int  // Folds made on the current level
	GameOver bool // Whether the run has ended
	Paused   bool // Whether the game is paused
}

// EventKind tags a StepResult event.
type EventKind int

const (
	EventLevelComplete EventKind = iota + 1
	EventLevelSkipped
	EventFoldCue
)

// Event is something the platform may persist or signal, such as a
// finished level.
type Event struct {
	Kind  EventKind
	Level int
	Score int
	Moves int
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

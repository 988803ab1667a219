package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second (default 60)
	Seed     int64  // RNG seed for deterministic gameplay
	Mode     string // Difficulty mode chosen before the run starts
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickDuration returns the wall-clock length of one nominal tick.
func (c RuntimeConfig) TickDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int    // Current score
	Lives    int    // Remaining lives
	Mode     string // Difficulty mode of the run
	GameOver bool   // Whether the run has ended
	Paused   bool   // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// RunResult is the final outcome of a finished run.
type RunResult struct {
	Mode     string
	Score    int
	Ticks    int           // Simulation steps taken
	Elapsed  float64       // Elapsed simulated time in nominal ticks
	Duration time.Duration // Elapsed simulated time
	Reason   string        // "gameover" or "quit"
}

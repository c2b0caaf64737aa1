package core

// RuntimeConfig contains configuration fixed for the duration of a run.
// The grid is derived from the screen size once per run and does not
// change mid-game, even if the terminal is resized.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Display/simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic food placement
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in the platform layer
	}
}

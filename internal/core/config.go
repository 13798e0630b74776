package core

// RuntimeConfig contains configuration passed to the terminal view of a board.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // View refresh ticks per second (default 30)
	Seed     int64 // RNG seed for randomized demos
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Status is what an app running on the board reports to the host.
type Status struct {
	Ticks    uint64 // Step task activations
	Score    int    // App-specific counter (bounces, collisions)
	GameOver bool   // Whether the app reached its terminal state
	Detail   string // One-line diagnostic
}

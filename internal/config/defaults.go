package config

import (
	_ "embed"

	"github.com/vovakirdan/dso-arcade/internal/num"
)

//go:embed defaults/board.yaml
var defaultBoardYAML []byte

// DefaultConfig returns the hardcoded configuration of the reference board:
// a 72 MHz core, 10 ms step period, 5 kHz button sampling and a 240x320 LCD.
func DefaultConfig() Config {
	return Config{
		Board: BoardConfig{
			CoreHz:     72_000_000,
			StepPeriod: 720_000, // 10 ms
			SampleHz:   5000,
			Width:      240,
			Height:     320,
			QueueSize:  4,
			SamplePrio: 2,
			StepPrio:   1,
		},
		Squash: SquashConfig{
			Numeric: num.KindFloat,
			Ball: BallConfig{
				X:  120,
				Y:  160,
				VX: 10,
				VY: 5,
				R:  5,
				DT: 0.1,
			},
			Racket: RacketConfig{
				CX:   120,
				CY:   5,
				HW:   15,
				HH:   5,
				Step: 5,
			},
			Difficulty: "normal",
		},
		Particles: ParticlesConfig{
			Count:      20,
			Radius:     6,
			DT:         0.1,
			Seed:       0,
			StepPeriod: 720_000,
		},
		View: ViewConfig{
			FPS:    30,
			HoldMS: 120,
			Sound:  false,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBoardYAML
}

// Package config provides YAML-based configuration loading for the board,
// its apps and the terminal view.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/dso-arcade/internal/num"
)

// Config is the complete board configuration.
type Config struct {
	Board     BoardConfig     `yaml:"board"`
	Squash    SquashConfig    `yaml:"squash"`
	Particles ParticlesConfig `yaml:"particles"`
	View      ViewConfig      `yaml:"view"`
}

// BoardConfig describes the simulated hardware.
type BoardConfig struct {
	CoreHz     uint64 `yaml:"core_hz"`            // Cycle counter frequency
	StepPeriod uint64 `yaml:"step_period_cycles"` // Step task period in cycles
	SampleHz   int    `yaml:"sample_hz"`          // Button sampling interrupt rate
	Width      int    `yaml:"width"`              // Display width in pixels
	Height     int    `yaml:"height"`             // Display height in pixels
	QueueSize  int    `yaml:"queue_size"`         // Deadline queue capacity
	SamplePrio uint8  `yaml:"sample_priority"`    // Sampling interrupt priority
	StepPrio   uint8  `yaml:"step_priority"`      // Step task priority
}

// SquashConfig defines the squash game.
type SquashConfig struct {
	Numeric    num.Kind     `yaml:"numeric"`
	Ball       BallConfig   `yaml:"ball"`
	Racket     RacketConfig `yaml:"racket"`
	Difficulty string       `yaml:"difficulty"` // easy, normal, hard
}

// BallConfig defines the ball's initial state.
type BallConfig struct {
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
	VX float64 `yaml:"vx"`
	VY float64 `yaml:"vy"`
	R  float64 `yaml:"r"`
	DT float64 `yaml:"dt"`
}

// RacketConfig defines the racket's geometry and per-tick displacement.
type RacketConfig struct {
	CX   float64 `yaml:"cx"`
	CY   float64 `yaml:"cy"`
	HW   float64 `yaml:"hw"`
	HH   float64 `yaml:"hh"`
	Step float64 `yaml:"step"`
}

// ParticlesConfig defines the free-particle demos.
type ParticlesConfig struct {
	Count      int     `yaml:"count"`
	Radius     float64 `yaml:"radius"`
	DT         float64 `yaml:"dt"`
	Seed       int64   `yaml:"seed"` // 0 = time based
	StepPeriod uint64  `yaml:"step_period_cycles"`
}

// ViewConfig defines the terminal view of the board.
type ViewConfig struct {
	FPS    int  `yaml:"fps"`
	HoldMS int  `yaml:"hold_ms"` // How long a key press holds a button down
	Sound  bool `yaml:"sound"`
}

// Validate checks the configuration for values the board cannot run with.
func (c Config) Validate() error {
	var errs []error

	b := c.Board
	if b.CoreHz == 0 {
		errs = append(errs, errors.New("board.core_hz must be positive"))
	}
	if b.StepPeriod == 0 {
		errs = append(errs, errors.New("board.step_period_cycles must be positive"))
	}
	if b.SampleHz <= 0 {
		errs = append(errs, errors.New("board.sample_hz must be positive"))
	}
	if b.Width <= 0 || b.Height <= 0 {
		errs = append(errs, fmt.Errorf("board display %dx%d is empty", b.Width, b.Height))
	}
	if b.QueueSize < 1 {
		errs = append(errs, errors.New("board.queue_size must be at least 1"))
	}
	if b.SamplePrio <= b.StepPrio {
		errs = append(errs, fmt.Errorf("board.sample_priority %d must be above step_priority %d", b.SamplePrio, b.StepPrio))
	}

	s := c.Squash
	if !s.Numeric.Valid() {
		errs = append(errs, fmt.Errorf("squash.numeric %q is not one of int, float, fixed", s.Numeric))
	}
	if s.Ball.R <= 0 || s.Ball.DT <= 0 {
		errs = append(errs, errors.New("squash.ball radius and dt must be positive"))
	}
	if s.Racket.HW <= 0 || s.Racket.HH <= 0 {
		errs = append(errs, errors.New("squash.racket half sizes must be positive"))
	}
	switch DifficultyPreset(s.Difficulty) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
	default:
		errs = append(errs, fmt.Errorf("squash.difficulty %q is not one of easy, normal, hard", s.Difficulty))
	}

	p := c.Particles
	if p.Count < 1 {
		errs = append(errs, errors.New("particles.count must be at least 1"))
	}
	if p.Radius <= 0 || p.DT <= 0 {
		errs = append(errs, errors.New("particles radius and dt must be positive"))
	}

	if c.View.FPS <= 0 {
		errs = append(errs, errors.New("view.fps must be positive"))
	}

	return errors.Join(errs...)
}

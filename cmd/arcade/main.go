// arcade runs the particle board firmware on a developer machine: the LCD
// is shown in the terminal and keys press the board's buttons.
//
// Usage:
//
//	arcade list              - List available apps
//	arcade play <app>        - Run an app on a board in the terminal
//	arcade sim <app>         - Run an app headless on virtual time
//	arcade serve             - Start SSH server, one board per session
//
// Global flags:
//
//	--config <path>     - Board configuration YAML
//	--seed <value>      - RNG seed for randomized demos
//	--numeric <kind>    - Squash numeric representation: int, float, fixed
//	--difficulty <name> - Squash preset: easy, normal, hard
//	--log-level <level> - debug, info, warn, error
//	--log-file <path>   - Write the board log to a file
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dso-arcade/internal/config"
	"github.com/vovakirdan/dso-arcade/internal/num"
	"github.com/vovakirdan/dso-arcade/internal/telemetry"

	// Import apps to register them
	_ "github.com/vovakirdan/dso-arcade/internal/games/particles"
	_ "github.com/vovakirdan/dso-arcade/internal/games/squash"
)

var (
	// Global flags
	flagConfig     string
	flagSeed       int64
	flagNumeric    string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
	flagTelemetry  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Particle board - run the squash and particle firmware in your terminal",
	Long: `Arcade hosts a simulated 72 MHz board with a 240x320 LCD and four
push buttons, and runs the squash game or the particle demos on it.

Available commands:
  list     - Show all available apps
  play     - Run an app, drawing the LCD in the terminal
  sim      - Run an app headless on virtual time
  serve    - Start SSH server for remote play

Examples:
  arcade list
  arcade play squash
  arcade play squash --numeric fixed --difficulty hard
  arcade sim particles-float --steps 1000 --log-level debug
  arcade serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to board config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = config value, then time based)")
	rootCmd.PersistentFlags().StringVar(&flagNumeric, "numeric", "", "Squash numeric representation: int, float, fixed")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Squash difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write the board log to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads the configuration and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagSeed != 0 {
		cfg.Particles.Seed = flagSeed
	}
	if flagNumeric != "" {
		cfg.Squash.Numeric = num.Kind(flagNumeric)
	}
	if flagDifficulty != "" {
		cfg.Squash.Difficulty = flagDifficulty
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// newLogger creates the board logger. It writes to --log-file when set,
// otherwise to fallback. The returned closer releases the file.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	w, closer := fallback, func() {}
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		w = f
		closer = func() {
			//nolint:errcheck // Best-effort close on exit
			f.Close()
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// startTelemetry serves the telemetry stream until ctx is done. It returns
// nil when --telemetry is not set.
func startTelemetry(ctx context.Context, logger *log.Logger) (*telemetry.Hub, error) {
	if flagTelemetry == "" {
		return nil, nil
	}
	hub := telemetry.NewHub(logger.WithPrefix("telemetry"), nil)
	if _, err := telemetry.NewServer(flagTelemetry, hub, logger).Start(ctx); err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}
	return hub, nil
}

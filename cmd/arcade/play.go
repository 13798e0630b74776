package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dso-arcade/internal/buzzer"
	"github.com/vovakirdan/dso-arcade/internal/platform/tui"
	"github.com/vovakirdan/dso-arcade/internal/registry"
)

var (
	flagFPS   int
	flagSound bool
)

var playCmd = &cobra.Command{
	Use:   "play <app>",
	Short: "Run an app on a board in the terminal",
	Long: `Power on a board running the specified app and show its LCD.

The terminal reports key presses but not releases, so a key holds its
button down for view.hold_ms after the last repeat.

Controls:
  Right/D/1  - Button 1 (squash: racket right)
  2, 3       - Buttons 2 and 3
  Left/A/4   - Button 4 (squash: racket left)
  R          - Reset the board
  ?          - Toggle help
  Q/Ctrl+C   - Power off

Examples:
  arcade play squash
  arcade play squash --numeric int --sound
  arcade play particles-fixed --seed 42
  arcade play particles-column --log-file board.log --log-level debug
  arcade play squash --telemetry localhost:8080`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagFPS, "fps", 0, "View refresh rate (0 = config value)")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play buzzer cues on the speaker")
	playCmd.Flags().StringVar(&flagTelemetry, "telemetry", "", "Serve status reports on ws://<addr>/telemetry")
}

func runPlay(cmd *cobra.Command, args []string) error {
	appID := args[0]

	if !registry.Exists(appID) {
		return fmt.Errorf("unknown app %q, run 'arcade list' to see available apps", appID)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagFPS > 0 {
		cfg.View.FPS = flagFPS
	}

	// The TUI owns the terminal: the log goes to --log-file or nowhere.
	logger, closeLog, err := newLogger(io.Discard, appID)
	if err != nil {
		return err
	}
	defer closeLog()

	var buzz buzzer.Buzzer = buzzer.Nop{}
	if flagSound || cfg.View.Sound {
		spk, spkErr := buzzer.NewSpeaker()
		if spkErr != nil {
			logger.Warn("no audio device, buzzer disabled", "err", spkErr)
		} else {
			defer spk.Close()
			buzz = spk
		}
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	opts := tui.Options{
		AppID:  appID,
		Config: cfg,
		Logger: logger,
		Buzzer: buzz,
		Width:  width,
		Height: height,
	}

	hub, err := startTelemetry(ctx, logger)
	if err != nil {
		return err
	}
	if hub != nil {
		opts.Observer = hub.Source("local")
	}

	return tui.Run(ctx, opts)
}

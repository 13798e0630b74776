package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dso-arcade/internal/board"
	"github.com/vovakirdan/dso-arcade/internal/config"
	"github.com/vovakirdan/dso-arcade/internal/core"
	"github.com/vovakirdan/dso-arcade/internal/input"
	"github.com/vovakirdan/dso-arcade/internal/registry"
	"github.com/vovakirdan/dso-arcade/internal/sched"
)

var (
	flagSteps   int
	flagHold    []int
	flagScripts []string
	flagDump    bool
	flagDumpW   int
	flagDumpH   int
)

var simCmd = &cobra.Command{
	Use:   "sim <app>",
	Short: "Run an app headless on virtual time",
	Long: `Run an app on a board whose cycle counter is virtual: every deadline
is met exactly and the buttons are sampled at the configured rate between
steps. The board log goes to stderr.

Buttons are released unless held for the whole run with --hold, or driven
by a level script with --script <button>=<levels>, one level per sampling
tick ('H' released, 'L' pressed; the last level is held).

Examples:
  arcade sim squash --steps 500
  arcade sim squash --hold 1 --dump
  arcade sim squash --script 4=HHHHLLLLLLLLLLLLLLLLLLLLLLLLLLLL
  arcade sim particles-int --seed 7 --steps 100 --log-level debug`,
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSteps, "steps", 1000, "Maximum number of task activations")
	simCmd.Flags().IntSliceVar(&flagHold, "hold", nil, "Buttons (1-4) held down for the whole run")
	simCmd.Flags().StringArrayVar(&flagScripts, "script", nil, "Level script for a button: <1-4>=<H|L...>")
	simCmd.Flags().BoolVar(&flagDump, "dump", false, "Print the final LCD contents")
	simCmd.Flags().IntVar(&flagDumpW, "dump-width", 60, "Width of the LCD dump in characters")
	simCmd.Flags().IntVar(&flagDumpH, "dump-height", 40, "Height of the LCD dump in characters")
}

func runSim(cmd *cobra.Command, args []string) error {
	appID := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := registry.Create(appID, cfg)
	if err != nil {
		return err
	}

	pins, err := simPins(flagHold, flagScripts)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(os.Stderr, appID)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	b := board.NewSim(cfg.Board, pins, logger)
	ran, err := b.Sim(ctx, app, flagSteps)
	if err != nil {
		return err
	}

	printSummary(app, b, ran, cfg)

	if flagDump {
		scr := core.NewScreen(flagDumpW, flagDumpH)
		b.Framebuffer().Downsample(scr)
		fmt.Println(scr.String())
	}
	return nil
}

// simPins builds the button pins for a simulated run.
func simPins(hold []int, scripts []string) ([input.NumButtons]input.Pin, error) {
	var pins [input.NumButtons]input.Pin

	for _, n := range hold {
		if n < 1 || n > input.NumButtons {
			return pins, fmt.Errorf("invalid --hold button %d, want 1-%d", n, input.NumButtons)
		}
		vp := input.NewVirtualPin()
		vp.Set(input.Low)
		pins[n-1] = vp
	}

	for _, s := range scripts {
		btn, levels, ok := strings.Cut(s, "=")
		if !ok {
			return pins, fmt.Errorf("invalid --script %q, want <button>=<levels>", s)
		}
		n, err := strconv.Atoi(btn)
		if err != nil || n < 1 || n > input.NumButtons {
			return pins, fmt.Errorf("invalid --script button %q, want 1-%d", btn, input.NumButtons)
		}
		sp, err := input.ParseScript(levels)
		if err != nil {
			return pins, fmt.Errorf("invalid --script for button %d: %w", n, err)
		}
		pins[n-1] = sp
	}

	return pins, nil
}

func printSummary(app board.App, b *board.Board, ran int, cfg config.Config) {
	st := b.Status()
	stats := b.Stats()
	elapsed := b.Now()

	fmt.Printf("%s: %d steps, %d cycles (%v)\n", app.Title(), ran, elapsed,
		sched.Cycles(elapsed).Duration(cfg.Board.CoreHz))
	fmt.Printf("  ticks %d  score %d  game over %v\n", st.Ticks, st.Score, st.GameOver)
	if st.Detail != "" {
		fmt.Printf("  %s\n", st.Detail)
	}
	fmt.Printf("  fired %d  late %d  pending %d  button samples %d\n",
		stats.Fired, stats.Late, stats.Pending, b.Line().Served())
}

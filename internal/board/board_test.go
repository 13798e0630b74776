package board

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dso-arcade/internal/config"
	"github.com/vovakirdan/dso-arcade/internal/core"
	"github.com/vovakirdan/dso-arcade/internal/input"
	"github.com/vovakirdan/dso-arcade/internal/sched"
)

// probeApp records button 2 at every step and stops after limit steps.
type probeApp struct {
	limit   int
	pressed []bool
	fail    error
}

func (a *probeApp) ID() string    { return "probe" }
func (a *probeApp) Title() string { return "Probe" }

func (a *probeApp) Start(b *Board) error {
	task := &sched.Task{
		Name:     "probe.step",
		Priority: b.StepPriority(),
		Handler: func(cx *sched.Context) error {
			b.Buttons().Lock(cx, func(bank *input.Bank) {
				a.pressed = append(a.pressed, bank.Pressed(input.Button2))
			})
			b.Report(core.Status{Ticks: uint64(len(a.pressed))})
			if a.fail != nil {
				return a.fail
			}
			if len(a.pressed) >= a.limit {
				return nil
			}
			return cx.Every(b.StepPeriod())
		},
	}
	return b.Spawn(task, b.Now())
}

func TestSimSamplesButtonsBetweenSteps(t *testing.T) {
	// One sample before the first step, then 50 per step period.
	script, err := input.ParseScript(strings.Repeat("H", 10) + strings.Repeat("L", 60) + "H")
	if err != nil {
		t.Fatal(err)
	}
	var pins [input.NumButtons]input.Pin
	pins[input.Button2] = script

	var logs bytes.Buffer
	logger := log.NewWithOptions(&logs, log.Options{Level: log.DebugLevel})

	b := NewSim(config.DefaultConfig().Board, pins, logger)
	app := &probeApp{limit: 3}

	ran, err := b.Sim(context.Background(), app, 10)
	if err != nil {
		t.Fatalf("Sim() error: %v", err)
	}
	if ran != 3 {
		t.Errorf("ran %d steps, expected 3", ran)
	}

	want := []bool{false, true, false}
	for i := range want {
		if app.pressed[i] != want[i] {
			t.Fatalf("pressed = %v, expected %v", app.pressed, want)
		}
	}

	if served := b.Line().Served(); served != 101 {
		t.Errorf("served = %d, expected 101", served)
	}
	out := logs.String()
	for _, want := range []string{"button=B2 event=press", "button=B2 event=release", "all tasks finished"} {
		if !strings.Contains(out, want) {
			t.Errorf("log should contain %q:\n%s", want, out)
		}
	}
}

func TestSimRequiresVirtualTime(t *testing.T) {
	b := New(Options{Config: config.DefaultConfig().Board})
	if _, err := b.Sim(context.Background(), &probeApp{limit: 1}, 1); !errors.Is(err, ErrNotSimulated) {
		t.Errorf("Sim() error = %v, expected ErrNotSimulated", err)
	}
}

func TestSimStopsOnTaskError(t *testing.T) {
	var pins [input.NumButtons]input.Pin
	b := NewSim(config.DefaultConfig().Board, pins, nil)
	boom := errors.New("boom")

	_, err := b.Sim(context.Background(), &probeApp{limit: 5, fail: boom}, 10)
	if !errors.Is(err, boom) {
		t.Errorf("Sim() error = %v, expected boom", err)
	}
}

func TestRunKeepsSamplingAfterAppTerminates(t *testing.T) {
	cfg := config.DefaultConfig().Board
	timer := sched.NewManualTimer()
	b := New(Options{
		Config: cfg,
		Clock:  sched.NewFakeClock(0),
		Timer:  timer,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	app := &probeApp{limit: 2}
	go func() { done <- b.Run(ctx, app) }()

	deadline := time.Now().Add(2 * time.Second)
	for b.Stats().Fired < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if b.Stats().Fired != 2 {
		t.Fatalf("fired = %d, expected 2", b.Stats().Fired)
	}

	// The executor drained; the sampling interrupt is still live.
	for b.Line().Served() == 0 && time.Now().Before(deadline) {
		timer.Fire()
		time.Sleep(time.Millisecond)
	}
	if b.Line().Served() == 0 {
		t.Error("sampling line should keep running after the app terminated")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() = %v, expected nil after cancel", err)
	}
}

func TestRunReportsStartError(t *testing.T) {
	cfg := config.DefaultConfig().Board
	cfg.QueueSize = 1
	b := New(Options{Config: cfg, Clock: sched.NewFakeClock(0), Timer: sched.NewManualTimer()})

	app := &twoTaskApp{}
	err := b.Run(context.Background(), app)
	if !errors.Is(err, sched.ErrQueueFull) {
		t.Errorf("Run() error = %v, expected ErrQueueFull", err)
	}
}

type twoTaskApp struct{}

func (twoTaskApp) ID() string    { return "two" }
func (twoTaskApp) Title() string { return "Two" }

func (twoTaskApp) Start(b *Board) error {
	noop := func(*sched.Context) error { return nil }
	if err := b.Spawn(&sched.Task{Name: "a", Handler: noop}, 0); err != nil {
		return err
	}
	return b.Spawn(&sched.Task{Name: "b", Handler: noop}, 0)
}

func TestPressVirtualButton(t *testing.T) {
	var pins [input.NumButtons]input.Pin
	pins[input.Button3] = input.NewScriptPin(input.High)
	b := NewSim(config.DefaultConfig().Board, pins, nil)

	if !b.Press(input.Button1, time.Second) {
		t.Error("Press() on a virtual pin should succeed")
	}
	if b.Press(input.Button3, time.Second) {
		t.Error("Press() on a scripted pin should report false")
	}
}

type observation struct {
	app   string
	at    sched.Instant
	ticks uint64
	fired uint64
}

type recordingObserver struct {
	seen []observation
}

func (o *recordingObserver) Observe(app string, at sched.Instant, s core.Status, stats sched.Stats) {
	o.seen = append(o.seen, observation{app: app, at: at, ticks: s.Ticks, fired: stats.Fired})
}

func TestReportReachesObserver(t *testing.T) {
	cfg := config.DefaultConfig().Board
	b := NewSim(cfg, [input.NumButtons]input.Pin{}, nil)
	obs := &recordingObserver{}
	b.SetObserver(obs)

	if _, err := b.Sim(context.Background(), &probeApp{limit: 2}, 5); err != nil {
		t.Fatalf("Sim() error: %v", err)
	}

	want := []observation{
		{app: "probe", at: 0, ticks: 1, fired: 1},
		{app: "probe", at: sched.Instant(cfg.StepPeriod), ticks: 2, fired: 2},
	}
	if len(obs.seen) != len(want) {
		t.Fatalf("observed %+v, expected %+v", obs.seen, want)
	}
	for i := range want {
		if obs.seen[i] != want[i] {
			t.Errorf("observation %d = %+v, expected %+v", i, obs.seen[i], want[i])
		}
	}
	if st := b.Status(); st.Ticks != 2 {
		t.Errorf("Status().Ticks = %d, expected 2", st.Ticks)
	}
}

// Package board assembles the simulated hardware: a cycle counter, a
// deadline executor, the button bank sampled from a timer interrupt, and
// the LCD. Apps run on a Board through the shared resources it exposes.
package board

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dso-arcade/internal/buzzer"
	"github.com/vovakirdan/dso-arcade/internal/config"
	"github.com/vovakirdan/dso-arcade/internal/core"
	"github.com/vovakirdan/dso-arcade/internal/display"
	"github.com/vovakirdan/dso-arcade/internal/input"
	"github.com/vovakirdan/dso-arcade/internal/sched"
)

// App is firmware that runs on the board.
type App interface {
	// ID returns a unique identifier (e.g., "squash", "particles-float").
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Start draws the initial screen and spawns the app's tasks.
	// It runs before interrupts are enabled.
	Start(b *Board) error
}

// Observer receives every status an app reports. Observe runs on the
// reporting task and must not block.
type Observer interface {
	Observe(app string, at sched.Instant, s core.Status, stats sched.Stats)
}

// Options configures a Board. Zero fields get host defaults.
type Options struct {
	Config   config.BoardConfig
	Clock    sched.Clock
	Timer    sched.Timer
	Pins     [input.NumButtons]input.Pin // nil entries become VirtualPins
	Logger   *log.Logger
	Buzzer   buzzer.Buzzer
	Observer Observer
}

// Board is one instance of the simulated hardware.
type Board struct {
	cfg    config.BoardConfig
	logger *log.Logger
	clock  sched.Clock
	exec   *sched.Executor
	mask   *sched.Mask
	fb     *display.Framebuffer
	lcd    *sched.Resource[display.Surface]
	bank   *sched.Resource[input.Bank]
	timer  sched.Timer
	line   *sched.Line
	pins   [input.NumButtons]input.Pin
	buzz   buzzer.Buzzer
	obs    Observer

	// Sampling interrupt state
	changes [input.NumButtons]input.Change

	mu     sync.Mutex
	appID  string
	status core.Status
}

// New creates a board. Real-time runs use the defaults; deterministic runs
// pass a FakeClock and a ManualTimer (see NewSim).
func New(opts Options) *Board {
	cfg := opts.Config

	b := &Board{
		cfg:    cfg,
		logger: opts.Logger,
		clock:  opts.Clock,
		timer:  opts.Timer,
		pins:   opts.Pins,
		buzz:   opts.Buzzer,
		obs:    opts.Observer,
		mask:   sched.NewMask(),
		fb:     display.NewFramebuffer(cfg.Width, cfg.Height),
	}
	if b.logger == nil {
		b.logger = log.New(io.Discard)
	}
	if b.clock == nil {
		b.clock = sched.NewHostClock(cfg.CoreHz)
	}
	if b.timer == nil {
		b.timer = sched.NewHostTimer(cfg.SampleHz)
	}
	if b.buzz == nil {
		b.buzz = buzzer.Nop{}
	}
	for i := range b.pins {
		if b.pins[i] == nil {
			b.pins[i] = input.NewVirtualPin()
		}
	}

	b.exec = sched.NewExecutor(b.clock, cfg.QueueSize)

	// The LCD is only drawn from the step level; the buttons are shared
	// with the sampling interrupt.
	b.lcd = sched.NewResource[display.Surface]("display", b.mask, b.StepPriority(), b.fb)
	b.bank = sched.NewResource("buttons", b.mask, b.SamplePriority(), *input.NewBank(b.pins))
	b.line = sched.NewLine("TIM3", b.SamplePriority(), b.timer, b.mask, b.sample)

	return b
}

// NewSim creates a board on virtual time, driven by Sim.
func NewSim(cfg config.BoardConfig, pins [input.NumButtons]input.Pin, logger *log.Logger) *Board {
	return New(Options{
		Config: cfg,
		Clock:  sched.NewFakeClock(0),
		Timer:  sched.NewManualTimer(),
		Pins:   pins,
		Logger: logger,
	})
}

// Config returns the hardware description.
func (b *Board) Config() config.BoardConfig { return b.cfg }

// Logger returns the board's debug channel.
func (b *Board) Logger() *log.Logger { return b.logger }

// Now reads the cycle counter.
func (b *Board) Now() sched.Instant { return b.clock.Now() }

// Mask returns the board's priority mask.
func (b *Board) Mask() *sched.Mask { return b.mask }

// Display returns the LCD resource.
func (b *Board) Display() *sched.Resource[display.Surface] { return b.lcd }

// Buttons returns the debounced button bank resource.
func (b *Board) Buttons() *sched.Resource[input.Bank] { return b.bank }

// Framebuffer returns the LCD memory for host-side viewers.
func (b *Board) Framebuffer() *display.Framebuffer { return b.fb }

// Buzzer returns the sound output.
func (b *Board) Buzzer() buzzer.Buzzer { return b.buzz }

// Line returns the button sampling interrupt line.
func (b *Board) Line() *sched.Line { return b.line }

// Stats returns the executor counters.
func (b *Board) Stats() sched.Stats { return b.exec.Stats() }

// SamplePriority is the priority of the button sampling interrupt.
func (b *Board) SamplePriority() sched.Priority { return sched.Priority(b.cfg.SamplePrio) }

// StepPriority is the priority of app step tasks.
func (b *Board) StepPriority() sched.Priority { return sched.Priority(b.cfg.StepPrio) }

// StepPeriod is the default step task period.
func (b *Board) StepPeriod() sched.Cycles { return sched.Cycles(b.cfg.StepPeriod) }

// Spawn queues a task at an absolute deadline.
func (b *Board) Spawn(t *sched.Task, at sched.Instant) error {
	return b.exec.Spawn(t, at)
}

// Press holds a virtual button down. It reports false if the button is
// wired to another kind of pin.
func (b *Board) Press(btn input.Button, hold time.Duration) bool {
	vp, ok := b.pins[btn].(*input.VirtualPin)
	if ok {
		vp.Press(hold)
	}
	return ok
}

// SetObserver attaches a status observer. Call it before Run or Sim.
func (b *Board) SetObserver(o Observer) { b.obs = o }

// Report publishes the app's status to the host.
func (b *Board) Report(s core.Status) {
	b.mu.Lock()
	b.status = s
	app := b.appID
	b.mu.Unlock()

	if b.obs != nil {
		b.obs.Observe(app, b.clock.Now(), s, b.exec.Stats())
	}
}

// Status returns the last reported status.
func (b *Board) Status() core.Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

func (b *Board) boot(app App) {
	b.mu.Lock()
	b.appID = app.ID()
	b.status = core.Status{}
	b.mu.Unlock()
}

// sample is the TIM3 handler: one debounce sample of every button.
func (b *Board) sample(irq *sched.IRQ) {
	n := 0
	b.bank.Lock(irq, func(bank *input.Bank) {
		n = copy(b.changes[:], bank.Sample())
	})
	irq.Ack()

	for _, ch := range b.changes[:n] {
		b.logger.Debug("button", "button", ch.Button, "event", ch.Event)
	}
}

// Run starts app and services the board in real time until ctx is done.
// When every task reaches its terminal state, the buttons keep being
// sampled until ctx is cancelled. The executor's fatal error is returned.
func (b *Board) Run(ctx context.Context, app App) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	b.boot(app)
	if err := app.Start(b); err != nil {
		return fmt.Errorf("start %s: %w", app.ID(), err)
	}
	b.logger.Info("app started", "app", app.ID())

	b.timer.Listen()
	defer b.timer.Unlisten()
	if s, ok := b.timer.(interface{ Start(context.Context) }); ok {
		s.Start(ctx)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		b.line.Run(ctx)
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	if err := b.exec.Run(ctx); err != nil {
		b.logger.Error("executor stopped", "app", app.ID(), "err", err)
		return err
	}
	if ctx.Err() == nil {
		b.logger.Info("all tasks finished", "app", app.ID(), "fired", b.exec.Stats().Fired)
	}

	<-ctx.Done()
	return nil
}

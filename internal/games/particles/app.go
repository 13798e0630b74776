package particles

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/dso-arcade/internal/board"
	"github.com/vovakirdan/dso-arcade/internal/buzzer"
	"github.com/vovakirdan/dso-arcade/internal/config"
	"github.com/vovakirdan/dso-arcade/internal/core"
	"github.com/vovakirdan/dso-arcade/internal/display"
	"github.com/vovakirdan/dso-arcade/internal/num"
	"github.com/vovakirdan/dso-arcade/internal/registry"
	"github.com/vovakirdan/dso-arcade/internal/sched"
)

func init() {
	registry.Register("particles-int", func(cfg config.Config) board.App {
		return NewRandom[num.Int]("particles-int", "Particles (integer)", cfg)
	})
	registry.Register("particles-float", func(cfg config.Config) board.App {
		return NewRandom[num.Float]("particles-float", "Particles (float)", cfg)
	})
	registry.Register("particles-fixed", func(cfg config.Config) board.App {
		return NewRandom[num.Fixed]("particles-fixed", "Particles (fixed point)", cfg)
	})
	registry.Register("particles-column", func(cfg config.Config) board.App {
		return &App[num.Int]{
			id:     "particles-column",
			title:  "Particle column",
			period: sched.Cycles(cfg.Particles.StepPeriod),
			build: func(w, h int) *Demo[num.Int] {
				return Column(w, h)
			},
		}
	})
}

// NewRandom creates a demo over a randomized ensemble. A zero seed is
// replaced with the current time.
func NewRandom[T num.Number[T]](id, title string, cfg config.Config) *App[T] {
	pc := cfg.Particles
	return &App[T]{
		id:     id,
		title:  title,
		period: sched.Cycles(pc.StepPeriod),
		build: func(w, h int) *Demo[T] {
			seed := pc.Seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			rng := rand.New(rand.NewSource(seed))
			return Random[T](rng, pc.Count, pc.Radius, pc.DT, w, h)
		},
	}
}

// App runs a Demo as the board's step task.
type App[T num.Number[T]] struct {
	id, title string
	period    sched.Cycles
	build     func(w, h int) *Demo[T]

	b     *board.Board
	state *sched.Resource[Demo[T]]
	ticks uint64
}

// ID returns the app identifier.
func (a *App[T]) ID() string { return a.id }

// Title returns the app title.
func (a *App[T]) Title() string { return a.title }

// Start builds the ensemble, draws it and schedules the first step.
func (a *App[T]) Start(b *board.Board) error {
	cfg := b.Config()
	a.b = b
	a.state = sched.NewResource("ensemble", b.Mask(), b.StepPriority(), *a.build(cfg.Width, cfg.Height))
	if a.period == 0 {
		a.period = b.StepPeriod()
	}

	boot := sched.PriorityOf(b.StepPriority())
	sched.Lock2(boot, b.Display(), a.state, func(s *display.Surface, d *Demo[T]) {
		d.Draw(*s)
	})

	task := &sched.Task{
		Name:     a.id + ".step",
		Priority: b.StepPriority(),
		Handler:  a.step,
	}
	if err := b.Spawn(task, b.Now()); err != nil {
		return fmt.Errorf("spawn step task: %w", err)
	}
	return nil
}

func (a *App[T]) step(cx *sched.Context) error {
	var (
		energy T
		total  uint64
		n      int
	)
	sched.Lock2(cx, a.b.Display(), a.state, func(s *display.Surface, d *Demo[T]) {
		energy = d.Ensemble().Energy()
		total = d.Ensemble().Collisions()
		n = d.Step(*s)
	})
	a.ticks++

	a.b.Logger().Debug("step", "energy", energy, "collisions", total)
	if n > 0 {
		a.b.Buzzer().Play(buzzer.CueCollision)
	}
	a.b.Report(core.Status{
		Ticks:  a.ticks,
		Score:  int(total) + n,
		Detail: fmt.Sprintf("energy: %v collisions: %d", energy, total+uint64(n)),
	})

	return cx.Every(a.period)
}

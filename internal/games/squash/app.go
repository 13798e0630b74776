package squash

import (
	"fmt"

	"github.com/vovakirdan/dso-arcade/internal/board"
	"github.com/vovakirdan/dso-arcade/internal/buzzer"
	"github.com/vovakirdan/dso-arcade/internal/config"
	"github.com/vovakirdan/dso-arcade/internal/core"
	"github.com/vovakirdan/dso-arcade/internal/display"
	"github.com/vovakirdan/dso-arcade/internal/input"
	"github.com/vovakirdan/dso-arcade/internal/num"
	"github.com/vovakirdan/dso-arcade/internal/registry"
	"github.com/vovakirdan/dso-arcade/internal/sched"
)

// Button bindings.
const (
	ButtonPlus  = input.Button1
	ButtonMinus = input.Button4
)

func init() {
	registry.Register("squash", func(cfg config.Config) board.App {
		return NewApp(cfg, "squash", "Squash")
	})
	registry.Register("squash-int", func(cfg config.Config) board.App {
		cfg.Squash.Numeric = num.KindInt
		return NewApp(cfg, "squash-int", "Squash (integer)")
	})
	registry.Register("squash-fixed", func(cfg config.Config) board.App {
		cfg.Squash.Numeric = num.KindFixed
		return NewApp(cfg, "squash-fixed", "Squash (fixed point)")
	})
}

// NewApp builds the game in the representation named by
// cfg.Squash.Numeric, after applying its difficulty preset.
func NewApp(cfg config.Config, id, title string) board.App {
	sq := cfg.Squash
	if err := config.ApplySquashPreset(&sq, config.DifficultyPreset(sq.Difficulty)); err != nil {
		sq = cfg.Squash
	}

	switch sq.Numeric {
	case num.KindInt:
		return newApp[num.Int](id, title, sq, cfg.Board)
	case num.KindFixed:
		return newApp[num.Fixed](id, title, sq, cfg.Board)
	default:
		return newApp[num.Float](id, title, sq, cfg.Board)
	}
}

// App runs a Game as the board's step task.
type App[T num.Number[T]] struct {
	id, title string
	game      *Game[T]

	b     *board.Board
	state *sched.Resource[Game[T]]
}

func newApp[T num.Number[T]](id, title string, sq config.SquashConfig, bc config.BoardConfig) *App[T] {
	return &App[T]{
		id:    id,
		title: title,
		game:  New[T](sq, bc.Width, bc.Height),
	}
}

// ID returns the app identifier.
func (a *App[T]) ID() string { return a.id }

// Title returns the app title.
func (a *App[T]) Title() string { return a.title }

// Start draws the court and schedules the first step immediately.
func (a *App[T]) Start(b *board.Board) error {
	a.b = b
	a.state = sched.NewResource("squash", b.Mask(), b.StepPriority(), *a.game)
	a.game = nil

	boot := sched.PriorityOf(b.StepPriority())
	sched.Lock2(boot, b.Display(), a.state, func(s *display.Surface, g *Game[T]) {
		g.Draw(*s)
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
	var plus, minus bool
	a.b.Buttons().Lock(cx, func(bank *input.Bank) {
		plus = bank.Pressed(ButtonPlus)
		minus = bank.Pressed(ButtonMinus)
	})

	var (
		out    Outcome
		status core.Status
		bx, by float64
	)
	sched.Lock2(cx, a.b.Display(), a.state, func(s *display.Surface, g *Game[T]) {
		out = g.Step(*s, plus, minus)
		bx, by = g.Ball().X().Float(), g.Ball().Y().Float()
		status = core.Status{
			Ticks:    g.Ticks(),
			Score:    int(g.Bounces()),
			GameOver: g.Over(),
			Detail:   fmt.Sprintf("ball (%.0f, %.0f) racket %.0f", bx, by, g.Racket().CX().Float()),
		}
	})
	a.b.Report(status)

	logger := a.b.Logger()
	if out.Bounced {
		logger.Debug("ball bounced", "x", bx, "y", by)
		a.b.Buzzer().Play(buzzer.CueBounce)
	}
	if out.Over {
		logger.Info("game over", "ticks", status.Ticks, "bounces", status.Score)
		a.b.Buzzer().Play(buzzer.CueGameOver)
		return nil
	}

	return cx.Every(a.b.StepPeriod())
}

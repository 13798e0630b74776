package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/vovakirdan/dso-arcade/internal/sched"
)

// ErrNotSimulated is returned by Sim on a board built with host time.
var ErrNotSimulated = errors.New("board: not on virtual time")

// Sim starts app on a board from NewSim and runs up to steps task
// activations. Between activations the sampling timer fires at its
// configured rate and every update is serviced before the next task
// runs, the way a higher-priority interrupt would preempt it.
// It returns the number of activations run.
func (b *Board) Sim(ctx context.Context, app App, steps int) (int, error) {
	fc, okc := b.clock.(*sched.FakeClock)
	mt, okt := b.timer.(*sched.ManualTimer)
	if !okc || !okt {
		return 0, ErrNotSimulated
	}

	b.boot(app)
	if err := app.Start(b); err != nil {
		return 0, fmt.Errorf("start %s: %w", app.ID(), err)
	}
	b.timer.Listen()
	defer b.timer.Unlisten()

	period := sched.Cycles(b.cfg.CoreHz / uint64(b.cfg.SampleHz))
	if period == 0 {
		period = 1
	}
	nextSample := b.clock.Now()

	ran := 0
	for ran < steps && ctx.Err() == nil {
		at, ok := b.exec.Next()
		if !ok {
			b.logger.Info("all tasks finished", "app", app.ID(), "fired", ran)
			break
		}

		for !at.Before(nextSample) {
			fc.Advance(nextSample.Sub(fc.Now()))
			mt.Fire()
			b.line.Service(ctx)
			nextSample = nextSample.Add(period)
		}

		ok, err := b.exec.RunOnce(ctx)
		if err != nil {
			return ran, err
		}
		if !ok {
			break
		}
		ran++
	}
	return ran, nil
}

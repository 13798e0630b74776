package sched

import (
	"context"
	"sync/atomic"
)

// IRQ is the context handed to an interrupt handler.
type IRQ struct {
	line *Line
}

// Priority returns the line's priority.
func (irq *IRQ) Priority() Priority { return irq.line.prio }

// Ack clears the timer's pending update. A handler that does not
// acknowledge is entered again immediately.
func (irq *IRQ) Ack() { irq.line.timer.ClearPending() }

// Line binds a timer's update interrupt to a handler at a fixed priority.
type Line struct {
	name    string
	prio    Priority
	timer   Timer
	mask    *Mask
	handler func(irq *IRQ)
	served  atomic.Uint64
}

// NewLine creates an interrupt line. The timer is not enabled until Listen.
func NewLine(name string, prio Priority, timer Timer, mask *Mask, handler func(irq *IRQ)) *Line {
	return &Line{
		name:    name,
		prio:    prio,
		timer:   timer,
		mask:    mask,
		handler: handler,
	}
}

// Name returns the line name.
func (l *Line) Name() string { return l.name }

// Priority returns the line priority.
func (l *Line) Priority() Priority { return l.prio }

// Served returns the number of handler invocations.
func (l *Line) Served() uint64 { return l.served.Load() }

// Service runs the handler while an update is pending and the mask admits
// this priority. Returns the number of invocations.
func (l *Line) Service(ctx context.Context) int {
	n := 0
	irq := &IRQ{line: l}
	for l.timer.Pending() && ctx.Err() == nil {
		l.mask.Wait(l.prio)
		l.handler(irq)
		l.served.Add(1)
		n++
	}
	return n
}

// Run services the line on every timer update until ctx is done.
func (l *Line) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.timer.C():
			l.Service(ctx)
		}
	}
}

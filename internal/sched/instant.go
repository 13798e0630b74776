// Package sched is the cooperative real-time core of the board: an
// absolute-deadline task queue serviced by an executor, interrupt lines fed
// by countdown timers, and priority-ceiling protected resources shared
// between them.
//
// Time is measured in core clock cycles. A periodic task reschedules itself
// at its previous scheduled instant plus its period, never at "now plus
// period", so execution jitter does not accumulate into drift.
package sched

import "time"

// Instant is an absolute point on the monotonic cycle counter.
type Instant uint64

// Cycles is a span of core clock cycles.
type Cycles uint64

// Add returns i + c.
func (i Instant) Add(c Cycles) Instant { return i + Instant(c) }

// Sub returns the cycles elapsed from j to i, or 0 if j is later.
func (i Instant) Sub(j Instant) Cycles {
	if j > i {
		return 0
	}
	return Cycles(i - j)
}

// Before reports i < j.
func (i Instant) Before(j Instant) bool { return i < j }

// CyclesFor converts a wall-clock duration to cycles at the given core frequency.
func CyclesFor(d time.Duration, hz uint64) Cycles {
	if d <= 0 {
		return 0
	}
	ns := uint64(d)
	sec := ns / uint64(time.Second)
	rem := ns % uint64(time.Second)
	return Cycles(sec*hz + rem*hz/uint64(time.Second))
}

// Duration converts cycles back to wall-clock time at the given core frequency.
func (c Cycles) Duration(hz uint64) time.Duration {
	if hz == 0 {
		return 0
	}
	sec := uint64(c) / hz
	rem := uint64(c) % hz
	return time.Duration(sec)*time.Second + time.Duration(rem*uint64(time.Second)/hz)
}

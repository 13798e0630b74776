package sched

import (
	"context"
	"sync"
	"time"
)

// Clock is the monotonic cycle counter the executor schedules against.
type Clock interface {
	// Now returns the current cycle count.
	Now() Instant
	// WaitUntil blocks until the counter reaches at or ctx is done.
	WaitUntil(ctx context.Context, at Instant) error
}

// HostClock derives a cycle counter from the host's monotonic wall clock,
// scaled to a nominal core frequency.
type HostClock struct {
	hz    uint64
	start time.Time
}

// NewHostClock starts a counter at zero running at hz cycles per second.
func NewHostClock(hz uint64) *HostClock {
	return &HostClock{hz: hz, start: time.Now()}
}

// Hz returns the nominal core frequency.
func (c *HostClock) Hz() uint64 { return c.hz }

// Now returns the cycles elapsed since the clock was created.
func (c *HostClock) Now() Instant {
	return Instant(CyclesFor(time.Since(c.start), c.hz))
}

// WaitUntil sleeps until the deadline. Deadlines already in the past return immediately.
func (c *HostClock) WaitUntil(ctx context.Context, at Instant) error {
	now := c.Now()
	if !now.Before(at) {
		return ctx.Err()
	}

	timer := time.NewTimer(at.Sub(now).Duration(c.hz))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// FakeClock is a virtual cycle counter. WaitUntil jumps straight to the
// deadline; Advance simulates time spent executing a task body.
type FakeClock struct {
	mu  sync.Mutex
	now Instant
}

// NewFakeClock creates a virtual clock at the given instant.
func NewFakeClock(start Instant) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the virtual time.
func (c *FakeClock) Now() Instant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves virtual time forward.
func (c *FakeClock) Advance(d Cycles) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// WaitUntil moves virtual time to at unless it is already later.
func (c *FakeClock) WaitUntil(ctx context.Context, at Instant) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.now.Before(at) {
		c.now = at
	}
	return nil
}

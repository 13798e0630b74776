package sched

import (
	"context"
	"sync"
	"time"
)

// Timer is a fixed-rate countdown timer with an update interrupt.
type Timer interface {
	// Listen enables the periodic update interrupt.
	Listen()
	// Unlisten disables it; pending state is kept.
	Unlisten()
	// Pending reports whether an update is waiting to be acknowledged.
	Pending() bool
	// ClearPending acknowledges the pending update.
	ClearPending()
	// C delivers a signal whenever an update becomes pending.
	C() <-chan struct{}
}

// timerState is the listen/pending bookkeeping shared by timer implementations.
type timerState struct {
	mu        sync.Mutex
	listening bool
	pending   bool
	overruns  uint64
	c         chan struct{}
}

func (s *timerState) Listen() {
	s.mu.Lock()
	s.listening = true
	s.mu.Unlock()
}

func (s *timerState) Unlisten() {
	s.mu.Lock()
	s.listening = false
	s.mu.Unlock()
}

func (s *timerState) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *timerState) ClearPending() {
	s.mu.Lock()
	s.pending = false
	s.mu.Unlock()
}

func (s *timerState) C() <-chan struct{} { return s.c }

// Overruns counts updates that fired while the previous one was still pending.
func (s *timerState) Overruns() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overruns
}

// update raises the update flag; a second update before acknowledgement
// collapses into the first, as on hardware.
func (s *timerState) update() {
	s.mu.Lock()
	if !s.listening {
		s.mu.Unlock()
		return
	}
	if s.pending {
		s.overruns++
	}
	s.pending = true
	s.mu.Unlock()

	select {
	case s.c <- struct{}{}:
	default:
	}
}

// HostTimer counts down on a host ticker.
type HostTimer struct {
	timerState
	period time.Duration
}

// NewHostTimer creates a timer updating hz times per second.
func NewHostTimer(hz int) *HostTimer {
	if hz <= 0 {
		hz = 1
	}
	t := &HostTimer{period: time.Second / time.Duration(hz)}
	t.c = make(chan struct{}, 1)
	return t
}

// Period returns the update period.
func (t *HostTimer) Period() time.Duration { return t.period }

// Start runs the countdown until ctx is done.
func (t *HostTimer) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(t.period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.update()
			}
		}
	}()
}

// ManualTimer updates only when told to. Used for deterministic runs.
type ManualTimer struct {
	timerState
}

// NewManualTimer creates a stopped timer.
func NewManualTimer() *ManualTimer {
	t := &ManualTimer{}
	t.c = make(chan struct{}, 1)
	return t
}

// Fire produces one update.
func (t *ManualTimer) Fire() { t.update() }

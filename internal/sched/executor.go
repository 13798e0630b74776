package sched

import (
	"context"
	"fmt"
	"sync"
)

// Handler is the body of a task. A non-nil error is fatal and stops the executor.
type Handler func(cx *Context) error

// Task is a schedulable activity with a fixed priority.
type Task struct {
	Name     string
	Priority Priority
	Handler  Handler
}

// Context is handed to a task for one activation.
type Context struct {
	// Scheduled is the deadline this activation was queued for.
	Scheduled Instant
	// Started is the counter value when the body began executing.
	Started Instant

	exec *Executor
	task *Task
}

// Priority returns the running task's priority.
func (cx *Context) Priority() Priority { return cx.task.Priority }

// Task returns the running task.
func (cx *Context) Task() *Task { return cx.task }

// Now reads the cycle counter.
func (cx *Context) Now() Instant { return cx.exec.clock.Now() }

// Schedule re-enqueues the running task at an absolute deadline.
func (cx *Context) Schedule(at Instant) error {
	return cx.exec.enqueue(at, cx.task)
}

// Every re-enqueues the running task one period after its scheduled
// deadline, whatever time the body actually started or took.
func (cx *Context) Every(period Cycles) error {
	return cx.Schedule(cx.Scheduled.Add(period))
}

// Spawn enqueues another task.
func (cx *Context) Spawn(t *Task, at Instant) error {
	return cx.exec.enqueue(at, t)
}

// Stats summarizes executor activity.
type Stats struct {
	Fired      uint64 // Activations run
	Late       uint64 // Activations that started after their deadline
	MaxLatency Cycles // Worst start latency seen
	Pending    int    // Deadlines still queued
}

// Executor services a deadline queue from a single background context.
// Tasks run to completion one at a time in deadline order.
type Executor struct {
	mu    sync.Mutex
	clock Clock
	queue *Queue
	fatal error
	stats Stats
}

// NewExecutor creates an executor with a queue of the given capacity.
func NewExecutor(clock Clock, capacity int) *Executor {
	return &Executor{
		clock: clock,
		queue: NewQueue(capacity),
	}
}

// Clock returns the executor's cycle counter.
func (e *Executor) Clock() Clock { return e.clock }

// Spawn enqueues t at the absolute deadline at.
func (e *Executor) Spawn(t *Task, at Instant) error {
	return e.enqueue(at, t)
}

func (e *Executor) enqueue(at Instant, t *Task) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.queue.Push(at, t); err != nil {
		err = fmt.Errorf("schedule %s at %d: %w", t.Name, at, err)
		if e.fatal == nil {
			e.fatal = err
		}
		return err
	}
	return nil
}

// Stats returns a snapshot of the activity counters.
func (e *Executor) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.stats
	s.Pending = e.queue.Len()
	return s
}

// Pending returns the number of queued deadlines.
func (e *Executor) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.Len()
}

// Next returns the earliest queued deadline.
func (e *Executor) Next() (Instant, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	at, _, ok := e.queue.Peek()
	return at, ok
}

// Run services the queue until it drains, ctx is cancelled or a task
// fails. A failed re-enqueue is reported even if the task ignored it.
func (e *Executor) Run(ctx context.Context) error {
	for {
		ran, err := e.RunOnce(ctx)
		if err != nil {
			return err
		}
		if !ran {
			return nil
		}
	}
}

// RunOnce waits for the earliest deadline and runs that activation.
// Returns false when the queue is empty.
func (e *Executor) RunOnce(ctx context.Context) (bool, error) {
	e.mu.Lock()
	if e.fatal != nil {
		err := e.fatal
		e.mu.Unlock()
		return false, err
	}
	at, t, ok := e.queue.Pop()
	e.mu.Unlock()
	if !ok {
		return false, nil
	}

	if err := e.clock.WaitUntil(ctx, at); err != nil {
		if ctx.Err() != nil {
			return false, nil
		}
		return false, err
	}

	cx := &Context{
		Scheduled: at,
		Started:   e.clock.Now(),
		exec:      e,
		task:      t,
	}
	e.record(cx)

	if err := t.Handler(cx); err != nil {
		return false, fmt.Errorf("task %s: %w", t.Name, err)
	}

	e.mu.Lock()
	err := e.fatal
	e.mu.Unlock()
	if err != nil {
		return false, err
	}
	return true, nil
}

func (e *Executor) record(cx *Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats.Fired++
	if late := cx.Started.Sub(cx.Scheduled); late > 0 {
		e.stats.Late++
		if late > e.stats.MaxLatency {
			e.stats.MaxLatency = late
		}
	}
}

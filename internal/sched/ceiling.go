package sched

import (
	"fmt"
	"sync"
)

// Priority orders execution contexts; a larger value preempts a smaller one.
// Zero is the background (idle) level.
type Priority uint8

// Holder is an execution context that can take a resource.
type Holder interface {
	Priority() Priority
}

// Mask emulates the interrupt priority mask register: while raised to
// level p, interrupt lines at priority p or below stay pending.
type Mask struct {
	mu    sync.Mutex
	cond  *sync.Cond
	level Priority
}

// NewMask creates a mask with nothing masked.
func NewMask() *Mask {
	m := &Mask{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Level returns the current mask level.
func (m *Mask) Level() Priority {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level
}

// Raise masks every priority up to p and returns a function restoring the
// previous level. Raising to a lower level than the current one is a no-op.
func (m *Mask) Raise(p Priority) (restore func()) {
	m.mu.Lock()
	prev := m.level
	if p > m.level {
		m.level = p
	}
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		m.level = prev
		m.mu.Unlock()
		m.cond.Broadcast()
	}
}

// Wait blocks an interrupt at priority p until the mask admits it.
func (m *Mask) Wait(p Priority) {
	m.mu.Lock()
	for m.level >= p {
		m.cond.Wait()
	}
	m.mu.Unlock()
}

// Resource is state shared by contexts of different priorities. Its
// ceiling is the highest priority of any context that uses it.
//
// A holder below the ceiling raises the mask to the ceiling for the length
// of its critical section, so a higher-priority user is held off and never
// observes a partial update. Holders above the ceiling were never declared
// as users and cause a panic.
type Resource[T any] struct {
	name    string
	mu      sync.Mutex
	mask    *Mask
	ceiling Priority
	value   T
}

// NewResource wraps value behind a ceiling lock.
func NewResource[T any](name string, mask *Mask, ceiling Priority, value T) *Resource[T] {
	return &Resource[T]{
		name:    name,
		mask:    mask,
		ceiling: ceiling,
		value:   value,
	}
}

// Name returns the resource name.
func (r *Resource[T]) Name() string { return r.name }

// Ceiling returns the resource's ceiling priority.
func (r *Resource[T]) Ceiling() Priority { return r.ceiling }

// Lock runs fn with exclusive access to the value.
func (r *Resource[T]) Lock(h Holder, fn func(v *T)) {
	p := h.Priority()
	if p > r.ceiling {
		panic(fmt.Sprintf("sched: priority %d above ceiling %d of resource %q", p, r.ceiling, r.name))
	}

	if p < r.ceiling {
		restore := r.mask.Raise(r.ceiling)
		defer restore()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.value)
}

// Lock2 takes two resources in order and runs fn with both.
func Lock2[A, B any](h Holder, a *Resource[A], b *Resource[B], fn func(*A, *B)) {
	a.Lock(h, func(av *A) {
		b.Lock(h, func(bv *B) {
			fn(av, bv)
		})
	})
}

// Lock3 takes three resources in order and runs fn with all of them.
func Lock3[A, B, C any](h Holder, a *Resource[A], b *Resource[B], c *Resource[C], fn func(*A, *B, *C)) {
	a.Lock(h, func(av *A) {
		Lock2(h, b, c, func(bv *B, cv *C) {
			fn(av, bv, cv)
		})
	})
}

// PriorityOf is a Holder at a fixed priority, for init code and tests.
type PriorityOf Priority

// Priority returns p.
func (p PriorityOf) Priority() Priority { return Priority(p) }

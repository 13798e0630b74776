package sched

import (
	"container/heap"
	"errors"
)

// ErrQueueFull is returned when a deadline cannot be enqueued because the
// queue is at capacity. It means the queue was sized wrong and is fatal.
var ErrQueueFull = errors.New("sched: deadline queue full")

// entry is one pending activation.
type entry struct {
	at   Instant
	seq  uint64 // FIFO tie-break for equal deadlines
	task *Task
}

// entries implements heap.Interface ordered by deadline.
type entries []entry

func (e entries) Len() int { return len(e) }

func (e entries) Less(i, j int) bool {
	if e[i].at != e[j].at {
		return e[i].at < e[j].at
	}
	return e[i].seq < e[j].seq
}

func (e entries) Swap(i, j int) { e[i], e[j] = e[j], e[i] }

func (e *entries) Push(x any) { *e = append(*e, x.(entry)) }

func (e *entries) Pop() any {
	old := *e
	n := len(old)
	it := old[n-1]
	old[n-1] = entry{}
	*e = old[:n-1]
	return it
}

// Queue is a bounded min-heap of deadlines. Its storage is allocated once.
type Queue struct {
	items entries
	seq   uint64
}

// NewQueue allocates a queue holding at most capacity deadlines.
func NewQueue(capacity int) *Queue {
	return &Queue{items: make(entries, 0, capacity)}
}

// Len returns the number of pending deadlines.
func (q *Queue) Len() int { return len(q.items) }

// Cap returns the fixed capacity.
func (q *Queue) Cap() int { return cap(q.items) }

// Push enqueues task at the absolute deadline at.
func (q *Queue) Push(at Instant, t *Task) error {
	if len(q.items) == cap(q.items) {
		return ErrQueueFull
	}
	q.seq++
	heap.Push(&q.items, entry{at: at, seq: q.seq, task: t})
	return nil
}

// Peek returns the earliest deadline without removing it.
func (q *Queue) Peek() (Instant, *Task, bool) {
	if len(q.items) == 0 {
		return 0, nil, false
	}
	return q.items[0].at, q.items[0].task, true
}

// Pop removes and returns the earliest deadline.
func (q *Queue) Pop() (Instant, *Task, bool) {
	if len(q.items) == 0 {
		return 0, nil, false
	}
	it := heap.Pop(&q.items).(entry)
	return it.at, it.task, true
}

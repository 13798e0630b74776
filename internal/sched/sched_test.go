package sched

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestCyclesConversion(t *testing.T) {
	const hz = 72_000_000

	if got := CyclesFor(10*time.Millisecond, hz); got != 720_000 {
		t.Errorf("CyclesFor(10ms) = %d, expected 720000", got)
	}
	if got := Cycles(720_000).Duration(hz); got != 10*time.Millisecond {
		t.Errorf("Duration(720000) = %v, expected 10ms", got)
	}
	// Long spans must not overflow.
	if got := CyclesFor(time.Hour, hz); got != 3600*hz {
		t.Errorf("CyclesFor(1h) = %d", got)
	}
	if Instant(5).Sub(Instant(9)) != 0 {
		t.Error("Sub of a later instant should saturate at 0")
	}
}

func TestPeriodicTaskIsDriftFree(t *testing.T) {
	const (
		d0     = Instant(1_000)
		period = Cycles(720_000)
		steps  = 50
	)

	clock := NewFakeClock(0)
	exec := NewExecutor(clock, 4)

	var deadlines []Instant
	task := &Task{Name: "step", Priority: 1}
	task.Handler = func(cx *Context) error {
		deadlines = append(deadlines, cx.Scheduled)
		// Execution time varies and sometimes overruns the period.
		clock.Advance(Cycles(len(deadlines)*37_000) % (period + period/2))
		if len(deadlines) == steps {
			return nil
		}
		return cx.Every(period)
	}

	if err := exec.Spawn(task, d0); err != nil {
		t.Fatal(err)
	}
	if err := exec.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	if len(deadlines) != steps {
		t.Fatalf("ran %d times, expected %d", len(deadlines), steps)
	}
	for k, d := range deadlines {
		if want := d0.Add(Cycles(k) * period); d != want {
			t.Fatalf("deadline %d = %d, expected %d", k, d, want)
		}
	}

	st := exec.Stats()
	if st.Fired != steps {
		t.Errorf("Fired = %d", st.Fired)
	}
	if st.Late == 0 {
		t.Error("overrunning activations should be counted late")
	}
	if st.Pending != 0 {
		t.Errorf("Pending = %d after terminal step", st.Pending)
	}
}

func TestExecutorDeadlineOrder(t *testing.T) {
	clock := NewFakeClock(0)
	exec := NewExecutor(clock, 8)

	var order []string
	mk := func(name string) *Task {
		return &Task{Name: name, Handler: func(cx *Context) error {
			order = append(order, name)
			return nil
		}}
	}

	_ = exec.Spawn(mk("c"), 300)
	_ = exec.Spawn(mk("a"), 100)
	_ = exec.Spawn(mk("b1"), 200)
	_ = exec.Spawn(mk("b2"), 200)

	if at, ok := exec.Next(); !ok || at != 100 {
		t.Fatalf("Next() = %d, %v, expected 100, true", at, ok)
	}

	if err := exec.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	want := []string{"a", "b1", "b2", "c"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, expected %v", order, want)
		}
	}
	if clock.Now() != 300 {
		t.Errorf("clock = %d, expected 300", clock.Now())
	}
	if _, ok := exec.Next(); ok {
		t.Error("Next() on a drained executor should report false")
	}
}

func TestExecutorQueueExhaustionIsFatal(t *testing.T) {
	clock := NewFakeClock(0)
	exec := NewExecutor(clock, 1)

	filler := &Task{Name: "filler", Handler: func(*Context) error { return nil }}
	task := &Task{Name: "step"}
	task.Handler = func(cx *Context) error {
		// Ignore the error on purpose: the executor must still stop.
		_ = cx.Spawn(filler, cx.Scheduled.Add(10))
		_ = cx.Every(5)
		return nil
	}

	_ = exec.Spawn(task, 0)
	err := exec.Run(context.Background())
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("Run() = %v, expected ErrQueueFull", err)
	}
}

func TestExecutorTaskErrorStops(t *testing.T) {
	exec := NewExecutor(NewFakeClock(0), 2)
	boom := errors.New("boom")
	_ = exec.Spawn(&Task{Name: "bad", Handler: func(*Context) error { return boom }}, 0)

	if err := exec.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Run() = %v, expected wrapped boom", err)
	}
}

func TestExecutorStopsOnCancel(t *testing.T) {
	exec := NewExecutor(NewHostClock(1_000_000), 2)
	_ = exec.Spawn(&Task{Name: "far", Handler: func(*Context) error {
		t.Error("task must not run after cancel")
		return nil
	}}, Instant(60_000_000))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	if err := exec.Run(ctx); err != nil {
		t.Errorf("Run() = %v, expected nil on cancel", err)
	}
}

func TestQueueCapacity(t *testing.T) {
	q := NewQueue(2)
	task := &Task{Name: "t"}
	if err := q.Push(5, task); err != nil {
		t.Fatal(err)
	}
	if err := q.Push(3, task); err != nil {
		t.Fatal(err)
	}
	if err := q.Push(4, task); !errors.Is(err, ErrQueueFull) {
		t.Errorf("Push() on full queue = %v", err)
	}
	if at, _, _ := q.Peek(); at != 3 {
		t.Errorf("Peek() = %d, expected 3", at)
	}
	if q.Len() != 2 || q.Cap() != 2 {
		t.Errorf("Len/Cap = %d/%d", q.Len(), q.Cap())
	}
}

type pair struct{ a, b int }

func TestResourceCeilingPreventsTornReads(t *testing.T) {
	mask := NewMask()
	res := NewResource("pair", mask, 2, pair{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	timer := NewManualTimer()
	timer.Listen()

	var torn atomic.Int64
	line := NewLine("sample", 2, timer, mask, func(irq *IRQ) {
		res.Lock(irq, func(p *pair) {
			if p.a != p.b {
				torn.Add(1)
			}
		})
		irq.Ack()
	})
	done := make(chan struct{})
	go func() {
		line.Run(ctx)
		close(done)
	}()

	low := PriorityOf(1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 2000; i++ {
			res.Lock(low, func(p *pair) {
				p.a++
				time.Sleep(time.Microsecond)
				p.b++
			})
		}
	}()

	for i := 0; i < 2000; i++ {
		timer.Fire()
	}
	wg.Wait()
	cancel()
	<-done

	res.Lock(PriorityOf(2), func(p *pair) {
		if p.a != 2000 || p.b != 2000 {
			t.Errorf("final = %+v", *p)
		}
	})
	if n := torn.Load(); n != 0 {
		t.Errorf("high priority handler observed %d partial updates", n)
	}
	if mask.Level() != 0 {
		t.Errorf("mask left raised at %d", mask.Level())
	}
}

func TestResourceAboveCeilingPanics(t *testing.T) {
	res := NewResource("x", NewMask(), 1, 0)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for undeclared higher priority access")
		}
	}()
	res.Lock(PriorityOf(3), func(*int) {})
}

func TestMaskRaiseRestores(t *testing.T) {
	m := NewMask()
	r1 := m.Raise(2)
	r2 := m.Raise(1)
	if m.Level() != 2 {
		t.Errorf("Level() = %d, expected 2", m.Level())
	}
	r2()
	if m.Level() != 2 {
		t.Errorf("Level() = %d after inner restore", m.Level())
	}
	r1()
	if m.Level() != 0 {
		t.Errorf("Level() = %d after outer restore", m.Level())
	}
}

func TestLineServiceRequiresListen(t *testing.T) {
	mask := NewMask()
	timer := NewManualTimer()
	calls := 0
	line := NewLine("t", 2, timer, mask, func(irq *IRQ) {
		calls++
		irq.Ack()
	})

	timer.Fire()
	if n := line.Service(context.Background()); n != 0 {
		t.Errorf("Service() on a disabled timer = %d", n)
	}

	timer.Listen()
	timer.Fire()
	timer.Fire()
	if timer.Overruns() != 1 {
		t.Errorf("Overruns() = %d, expected 1", timer.Overruns())
	}
	if n := line.Service(context.Background()); n != 1 {
		t.Errorf("Service() = %d, expected 1", n)
	}
	if calls != 1 || line.Served() != 1 {
		t.Errorf("calls = %d, served = %d", calls, line.Served())
	}
	if timer.Pending() {
		t.Error("update should be acknowledged")
	}
}

package clock

import (
	"sync"
	"time"
)

// FakeClock is a deterministic Clock. Time stands still until Advance is
// called; scheduled callbacks then fire synchronously on the caller's
// goroutine, in deadline order, with Now() reporting each deadline.
//
// Callbacks may schedule or stop other callbacks. Do not call Advance from
// inside a callback.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
	seq     int
	waiters []*fakeWaiter
}

type fakeWaiter struct {
	deadline time.Time
	interval time.Duration
	fn       func()
	seq      int
	stopped  bool
	fired    bool
}

// Fake returns a FakeClock set to initial.
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{current: initial}
}

// Now returns the fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Set jumps the clock to t without firing anything. Useful for simulating
// a process that was asleep across a day boundary.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// Every registers a periodic callback.
func (c *FakeClock) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		panic("clock: non-positive interval for Every")
	}
	return c.add(d, d, fn)
}

// AfterFunc registers a one-shot callback. A non-positive d fires on the
// next Advance.
func (c *FakeClock) AfterFunc(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	return c.add(d, 0, fn)
}

func (c *FakeClock) add(d, interval time.Duration, fn func()) Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	w := &fakeWaiter{
		deadline: c.current.Add(d),
		interval: interval,
		fn:       fn,
		seq:      c.seq,
	}
	c.waiters = append(c.waiters, w)
	return &fakeHandle{clock: c, waiter: w}
}

// Pending reports how many callbacks are still scheduled.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, w := range c.waiters {
		if !w.stopped && !w.fired {
			n++
		}
	}
	return n
}

// Advance moves time forward by d, firing every callback whose deadline
// falls within the window.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.current.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.nextDue(target)
		if next == nil {
			c.current = target
			c.compact()
			c.mu.Unlock()
			return
		}
		c.current = next.deadline
		if next.interval > 0 {
			next.deadline = next.deadline.Add(next.interval)
		} else {
			next.fired = true
		}
		fn := next.fn
		c.mu.Unlock()

		fn()
	}
}

// nextDue returns the earliest live waiter due at or before target. Ties
// resolve in registration order. Caller holds c.mu.
func (c *FakeClock) nextDue(target time.Time) *fakeWaiter {
	var best *fakeWaiter
	for _, w := range c.waiters {
		if w.stopped || w.fired || w.deadline.After(target) {
			continue
		}
		if best == nil || w.deadline.Before(best.deadline) ||
			(w.deadline.Equal(best.deadline) && w.seq < best.seq) {
			best = w
		}
	}
	return best
}

func (c *FakeClock) compact() {
	live := c.waiters[:0]
	for _, w := range c.waiters {
		if !w.stopped && !w.fired {
			live = append(live, w)
		}
	}
	c.waiters = live
}

type fakeHandle struct {
	clock  *FakeClock
	waiter *fakeWaiter
}

func (h *fakeHandle) Stop() bool {
	h.clock.mu.Lock()
	defer h.clock.mu.Unlock()
	if h.waiter.stopped || h.waiter.fired {
		return false
	}
	h.waiter.stopped = true
	return true
}

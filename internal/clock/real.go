package clock

import (
	"sync"
	"time"
)

// Real returns a Clock backed by the time package. Periodic callbacks run
// on their own goroutine; owners must synchronize shared state.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		panic("clock: non-positive interval for Every")
	}
	h := &realTicker{done: make(chan struct{})}
	ticker := time.NewTicker(d)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-h.done:
				return
			case <-ticker.C:
				select {
				case <-h.done:
					return
				default:
				}
				fn()
			}
		}
	}()
	return h
}

func (realClock) AfterFunc(d time.Duration, fn func()) Handle {
	return realTimer{t: time.AfterFunc(d, fn)}
}

type realTicker struct {
	once sync.Once
	done chan struct{}
}

func (h *realTicker) Stop() bool {
	stopped := false
	h.once.Do(func() {
		close(h.done)
		stopped = true
	})
	return stopped
}

type realTimer struct{ t *time.Timer }

func (r realTimer) Stop() bool { return r.t.Stop() }

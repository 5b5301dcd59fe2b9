package clock

import "time"

// Clock abstracts time so timer-driven services can be tested
// deterministically.
type Clock interface {
	// Now returns the current instant.
	Now() time.Time

	// Every calls fn every interval d until the returned Handle is stopped.
	// Panics if d <= 0.
	Every(d time.Duration, fn func()) Handle

	// AfterFunc calls fn once after d elapses unless the Handle is stopped
	// first.
	AfterFunc(d time.Duration, fn func()) Handle
}

// Handle cancels a scheduled callback.
type Handle interface {
	// Stop cancels future invocations. It reports whether the callback was
	// still pending. Stop is safe to call more than once and from inside
	// the callback itself.
	Stop() bool
}

package timer

import "time"

// Clock reports monotonic elapsed time since an arbitrary origin.
type Clock interface {
	Now() time.Duration
}

// SystemClock measures time since it was created using the runtime's
// monotonic clock.
type SystemClock struct {
	origin time.Time
}

// NewSystemClock returns a clock whose origin is the current instant.
func NewSystemClock() *SystemClock {
	return &SystemClock{origin: time.Now()}
}

// Now returns the elapsed time since the clock was created.
func (clock *SystemClock) Now() time.Duration {
	return time.Since(clock.origin)
}

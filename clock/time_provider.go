// Package clock abstracts time for the countdown so tests can drive it by hand
package clock

import "time"

// TimeProvider reports the current time
type TimeProvider interface {
	Now() time.Time
}

// Timer is the subset of time.Timer the countdown needs
type Timer interface {
	C() <-chan time.Time
	Stop() bool
	Reset(d time.Duration) bool
}

// Clock provides time readings and timers
type Clock interface {
	TimeProvider
	NewTimer(d time.Duration) Timer
}

// MonotonicClock is the real system clock, readings carry the monotonic component
type MonotonicClock struct{}

// NewMonotonicClock creates the system clock
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{}
}

// Now returns the current time with monotonic clock reading
func (c *MonotonicClock) Now() time.Time {
	return time.Now()
}

// NewTimer wraps time.NewTimer
func (c *MonotonicClock) NewTimer(d time.Duration) Timer {
	return &stdTimer{t: time.NewTimer(d)}
}

type stdTimer struct {
	t *time.Timer
}

func (s *stdTimer) C() <-chan time.Time { return s.t.C }

func (s *stdTimer) Stop() bool { return s.t.Stop() }

func (s *stdTimer) Reset(d time.Duration) bool { return s.t.Reset(d) }

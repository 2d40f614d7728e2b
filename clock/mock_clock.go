package clock

import (
	"sync"
	"time"
)

// MockClock provides a controllable time source for testing
// Timers fire only when Advance moves time past their deadline
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
	// timers holds armed timers only, fired or stopped ones rejoin on Reset
	timers []*mockTimer
}

// NewMockClock creates a new mock clock with the given start time
func NewMockClock(startTime time.Time) *MockClock {
	return &MockClock{currentTime: startTime}
}

// Now returns the current mocked time
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTime
}

// SetTime sets the current time without firing timers
func (m *MockClock) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance moves time forward by d and fires every armed timer whose deadline has passed
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
	armed := m.timers[:0]
	for _, t := range m.timers {
		if t.deadline.After(m.currentTime) {
			armed = append(armed, t)
			continue
		}
		t.armed = false
		select {
		case t.ch <- m.currentTime:
		default:
		}
	}
	clear(m.timers[len(armed):])
	m.timers = armed
}

// ArmedTimers returns the number of timers waiting to fire
func (m *MockClock) ArmedTimers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// WaitForTimers blocks until at least n timers are armed or the real-time timeout passes
func (m *MockClock) WaitForTimers(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if m.ArmedTimers() >= n {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return m.ArmedTimers() >= n
}

// NewTimer creates a timer firing when the mock time reaches now+d
func (m *MockClock) NewTimer(d time.Duration) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &mockTimer{
		clock:    m,
		ch:       make(chan time.Time, 1),
		deadline: m.currentTime.Add(d),
		armed:    true,
	}
	m.timers = append(m.timers, t)
	return t
}

type mockTimer struct {
	clock    *MockClock
	ch       chan time.Time
	deadline time.Time
	armed    bool
}

func (t *mockTimer) C() <-chan time.Time { return t.ch }

func (t *mockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	wasArmed := t.armed
	if wasArmed {
		t.armed = false
		t.clock.remove(t)
	}
	return wasArmed
}

func (t *mockTimer) Reset(d time.Duration) bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	wasArmed := t.armed
	t.deadline = t.clock.currentTime.Add(d)
	if !wasArmed {
		t.armed = true
		t.clock.timers = append(t.clock.timers, t)
	}
	return wasArmed
}

// remove drops t from the armed list, caller holds mu
func (m *MockClock) remove(t *mockTimer) {
	for i, armed := range m.timers {
		if armed == t {
			last := len(m.timers) - 1
			m.timers[i] = m.timers[last]
			m.timers[last] = nil
			m.timers = m.timers[:last]
			return
		}
	}
}

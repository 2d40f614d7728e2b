// Package countdown runs cancellable countdown streams that report the
// remaining time once per tick and signal completion at zero
package countdown

import (
	"sync"
	"time"

	"github.com/lixenwraith/countdown/clock"
	"github.com/lixenwraith/countdown/core"
)

// DefaultTick is the tick interval used when none is configured
const DefaultTick = 10 * time.Millisecond

// Service starts countdown streams on a shared clock
type Service struct {
	clock clock.Clock
	tick  time.Duration
	wg    sync.WaitGroup
}

// New creates a countdown service, non-positive tick falls back to DefaultTick
func New(clk clock.Clock, tick time.Duration) *Service {
	if tick <= 0 {
		tick = DefaultTick
	}
	return &Service{clock: clk, tick: tick}
}

// Handle controls one running countdown stream
type Handle struct {
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// Cancel stops the stream, safe to call repeatedly and from any goroutine.
// It does not wait: one callback may still run after Cancel returns, so
// callers tag callbacks with a generation and drop stale ones.
func (h *Handle) Cancel() {
	h.stopOnce.Do(func() {
		close(h.stopChan)
	})
}

// Done is closed when the stream goroutine has exited
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

func (h *Handle) stopped() bool {
	select {
	case <-h.stopChan:
		return true
	default:
		return false
	}
}

// Start begins counting down from total. onTick receives the remaining time
// immediately and then once per tick; onFinish fires once when it reaches zero.
// Both callbacks run on the stream goroutine.
func (s *Service) Start(total time.Duration, onTick func(time.Duration), onFinish func()) *Handle {
	h := &Handle{
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}

	s.wg.Add(1)
	core.Go(func() {
		defer s.wg.Done()
		defer close(h.done)
		s.run(h, total, onTick, onFinish)
	})
	return h
}

// Wait blocks until every started stream has exited
func (s *Service) Wait() {
	s.wg.Wait()
}

// run drives one stream with deadline-based scheduling so late wakeups do not accumulate drift
func (s *Service) run(h *Handle, total time.Duration, onTick func(time.Duration), onFinish func()) {
	if total <= 0 {
		if !h.stopped() {
			onFinish()
		}
		return
	}

	start := s.clock.Now()
	if h.stopped() {
		return
	}
	onTick(total.Truncate(time.Millisecond))

	deadline := start.Add(s.tick)
	timer := s.clock.NewTimer(s.wait(deadline, start, total))
	defer timer.Stop()

	for {
		select {
		case <-h.stopChan:
			return
		case <-timer.C():
		}

		now := s.clock.Now()
		remaining := total - now.Sub(start)

		if h.stopped() {
			return
		}
		if remaining <= 0 {
			onFinish()
			return
		}
		onTick(remaining.Truncate(time.Millisecond))

		deadline = deadline.Add(s.tick)
		if maxBehind := s.tick * 2; now.Sub(deadline) > maxBehind {
			deadline = now.Add(s.tick)
		}
		timer.Reset(s.wait(deadline, now, remaining))
	}
}

// wait returns the sleep until the next deadline, never past the finish point
func (s *Service) wait(deadline, now time.Time, remaining time.Duration) time.Duration {
	d := deadline.Sub(now)
	if d > remaining {
		d = remaining
	}
	if d < 0 {
		d = 0
	}
	return d
}

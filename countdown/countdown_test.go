package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lixenwraith/countdown/clock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	ticks    chan time.Duration
	finished chan struct{}
}

func newRecorder() *recorder {
	return &recorder{
		ticks:    make(chan time.Duration, 64),
		finished: make(chan struct{}, 4),
	}
}

func (r *recorder) onTick(d time.Duration) { r.ticks <- d }
func (r *recorder) onFinish()              { r.finished <- struct{}{} }

func (r *recorder) nextTick(t *testing.T) time.Duration {
	t.Helper()
	select {
	case d := <-r.ticks:
		return d
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for tick")
		return 0
	}
}

func (r *recorder) waitFinish(t *testing.T) {
	t.Helper()
	select {
	case <-r.finished:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for finish")
	}
}

func newMockService(tick time.Duration) (*Service, *clock.MockClock) {
	mock := clock.NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	return New(mock, tick), mock
}

func advance(t *testing.T, mock *clock.MockClock, d time.Duration) {
	t.Helper()
	require.True(t, mock.WaitForTimers(1, time.Second), "stream did not arm its timer")
	mock.Advance(d)
}

func TestCountdownTicksAndFinishes(t *testing.T) {
	svc, mock := newMockService(10 * time.Millisecond)
	rec := newRecorder()

	h := svc.Start(35*time.Millisecond, rec.onTick, rec.onFinish)

	assert.Equal(t, 35*time.Millisecond, rec.nextTick(t), "first tick is immediate")

	advance(t, mock, 10*time.Millisecond)
	assert.Equal(t, 25*time.Millisecond, rec.nextTick(t))

	advance(t, mock, 10*time.Millisecond)
	assert.Equal(t, 15*time.Millisecond, rec.nextTick(t))

	advance(t, mock, 10*time.Millisecond)
	assert.Equal(t, 5*time.Millisecond, rec.nextTick(t))

	// Last wait is capped to the remaining time
	advance(t, mock, 5*time.Millisecond)
	rec.waitFinish(t)

	<-h.Done()
	svc.Wait()
	assert.Empty(t, rec.ticks)
	assert.Empty(t, rec.finished, "finish fires exactly once")
}

func TestCountdownZeroFinishesImmediately(t *testing.T) {
	svc, _ := newMockService(10 * time.Millisecond)
	rec := newRecorder()

	h := svc.Start(0, rec.onTick, rec.onFinish)
	rec.waitFinish(t)
	<-h.Done()
	assert.Empty(t, rec.ticks)
}

func TestCountdownCancel(t *testing.T) {
	svc, mock := newMockService(10 * time.Millisecond)
	rec := newRecorder()

	h := svc.Start(time.Second, rec.onTick, rec.onFinish)
	rec.nextTick(t)

	h.Cancel()
	h.Cancel()
	<-h.Done()

	mock.Advance(2 * time.Second)
	svc.Wait()
	assert.Empty(t, rec.ticks)
	assert.Empty(t, rec.finished)
}

func TestCountdownTruncatesToMillis(t *testing.T) {
	svc, mock := newMockService(10 * time.Millisecond)
	rec := newRecorder()

	h := svc.Start(time.Second+700*time.Microsecond, rec.onTick, rec.onFinish)
	assert.Equal(t, time.Second, rec.nextTick(t))

	advance(t, mock, 10*time.Millisecond+300*time.Microsecond)
	assert.Equal(t, 990*time.Millisecond, rec.nextTick(t))

	h.Cancel()
	svc.Wait()
}

func TestCountdownResyncsWhenBehind(t *testing.T) {
	svc, mock := newMockService(10 * time.Millisecond)
	rec := newRecorder()

	h := svc.Start(time.Second, rec.onTick, rec.onFinish)
	rec.nextTick(t)

	// A single late wakeup 100ms past the first deadline
	advance(t, mock, 100*time.Millisecond)
	assert.Equal(t, 900*time.Millisecond, rec.nextTick(t))

	// Next deadline is rebased to now+tick rather than replaying missed ticks
	advance(t, mock, 10*time.Millisecond)
	assert.Equal(t, 890*time.Millisecond, rec.nextTick(t))

	h.Cancel()
	svc.Wait()
}

func TestCountdownRealClock(t *testing.T) {
	svc := New(clock.NewMonotonicClock(), 5*time.Millisecond)
	rec := newRecorder()

	svc.Start(30*time.Millisecond, rec.onTick, rec.onFinish)
	rec.waitFinish(t)
	svc.Wait()

	last := time.Duration(1<<63 - 1)
	close(rec.ticks)
	for d := range rec.ticks {
		assert.LessOrEqual(t, d, last, "ticks are non-increasing")
		assert.Greater(t, d, time.Duration(0))
		last = d
	}
}

func TestNewDefaultTick(t *testing.T) {
	svc := New(clock.NewMonotonicClock(), 0)
	assert.Equal(t, DefaultTick, svc.tick)
}

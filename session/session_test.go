package session

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/countdown/event"
)

// fakeStream records one StartFunc invocation and lets the test fire its callbacks
type fakeStream struct {
	total     time.Duration
	onTick    func(time.Duration)
	onFinish  func()
	cancelled int
}

func (f *fakeStream) Cancel() { f.cancelled++ }

type harness struct {
	s       *Session
	streams []*fakeStream
	posted  []event.Event
	finishN int
	keyN    int
}

func newHarness(t *testing.T, def time.Duration, opts ...Option) *harness {
	t.Helper()
	h := &harness{}
	start := func(total time.Duration, onTick func(time.Duration), onFinish func()) Canceler {
		f := &fakeStream{total: total, onTick: onTick, onFinish: onFinish}
		h.streams = append(h.streams, f)
		return f
	}
	post := func(ev event.Event) { h.posted = append(h.posted, ev) }
	opts = append([]Option{
		WithFinishHook(func() { h.finishN++ }),
		WithKeyHook(func() { h.keyN++ }),
	}, opts...)
	h.s = New(def, start, post, opts...)
	return h
}

// deliver feeds every posted callback event back into the session
func (h *harness) deliver() {
	pending := h.posted
	h.posted = nil
	for _, ev := range pending {
		h.s.Handle(ev)
	}
}

func (h *harness) last() *fakeStream {
	return h.streams[len(h.streams)-1]
}

func (h *harness) send(types ...event.EventType) {
	for _, et := range types {
		h.s.Handle(event.Of(et))
	}
}

func (h *harness) typeDigits(digits string) {
	for _, d := range digits {
		h.s.Handle(event.Digit(d))
	}
}

func TestInitialState(t *testing.T) {
	h := newHarness(t, 5*time.Minute)
	snap := h.s.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, ViewDisplay, snap.View)
	assert.Equal(t, 5*time.Minute, snap.Remaining)
	assert.Equal(t, 5*time.Minute, snap.Default)
	assert.Empty(t, h.streams, "no stream until start")
}

func TestStartTickFinish(t *testing.T) {
	h := newHarness(t, 3*time.Second)

	require.True(t, h.s.Handle(event.Of(event.EventStartPause)))
	require.Len(t, h.streams, 1)
	assert.Equal(t, 3*time.Second, h.last().total)
	assert.Equal(t, StateRunning, h.s.Snapshot().State)

	h.last().onTick(2500 * time.Millisecond)
	h.deliver()
	assert.Equal(t, 2500*time.Millisecond, h.s.Snapshot().Remaining)

	h.last().onFinish()
	h.deliver()
	snap := h.s.Snapshot()
	assert.Equal(t, StateFinished, snap.State)
	assert.Zero(t, snap.Remaining)
	assert.Equal(t, 1, h.finishN)
}

func TestPauseKeepsRemainingAndResumes(t *testing.T) {
	h := newHarness(t, 10*time.Second)
	h.send(event.EventStartPause)
	first := h.last()
	first.onTick(7 * time.Second)
	h.deliver()

	h.send(event.EventStartPause)
	assert.Equal(t, StatePaused, h.s.Snapshot().State)
	assert.Equal(t, 1, first.cancelled)
	assert.Equal(t, 7*time.Second, h.s.Snapshot().Remaining)

	// A tick already queued by the cancelled stream is dropped
	first.onTick(6 * time.Second)
	h.deliver()
	assert.Equal(t, 7*time.Second, h.s.Snapshot().Remaining)

	h.send(event.EventStartPause)
	require.Len(t, h.streams, 2)
	assert.Equal(t, 7*time.Second, h.last().total, "resume starts from the paused value")
	assert.Equal(t, StateRunning, h.s.Snapshot().State)
}

func TestResetRestoresDefault(t *testing.T) {
	h := newHarness(t, 10*time.Second)
	h.send(event.EventStartPause)
	stream := h.last()
	stream.onTick(4 * time.Second)
	h.deliver()

	h.send(event.EventReset)
	snap := h.s.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, 10*time.Second, snap.Remaining)
	assert.Equal(t, 1, stream.cancelled)

	stream.onFinish()
	h.deliver()
	assert.Equal(t, StateIdle, h.s.Snapshot().State, "stale finish ignored")
	assert.Zero(t, h.finishN)
}

func TestResetFromFinished(t *testing.T) {
	h := newHarness(t, time.Second)
	h.send(event.EventStartPause)
	h.last().onFinish()
	h.deliver()
	require.Equal(t, StateFinished, h.s.Snapshot().State)

	assert.False(t, h.s.Handle(event.Of(event.EventStartPause)), "start hidden when finished")
	assert.False(t, h.s.Handle(event.Of(event.EventEdit)), "keypad unavailable when finished")

	h.send(event.EventReset)
	assert.Equal(t, StateIdle, h.s.Snapshot().State)
	assert.Equal(t, time.Second, h.s.Snapshot().Remaining)
}

func TestKeypadEntryAndConfirm(t *testing.T) {
	h := newHarness(t, 5*time.Minute)
	h.send(event.EventEdit)
	require.Equal(t, ViewKeypad, h.s.Snapshot().View)

	assert.False(t, h.s.Handle(event.Of(event.EventConfirm)), "confirm disabled while empty")

	h.typeDigits("10500")
	snap := h.s.Snapshot()
	assert.Equal(t, "10500", snap.Entry)
	assert.True(t, snap.CanConfirm())
	assert.Equal(t, 1, snap.Packed().Hours)
	assert.Equal(t, 5, snap.Packed().Minutes)
	assert.Equal(t, 5, h.keyN)

	h.send(event.EventConfirm)
	snap = h.s.Snapshot()
	assert.Equal(t, ViewDisplay, snap.View)
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, time.Hour+5*time.Minute, snap.Remaining)
	assert.Equal(t, time.Hour+5*time.Minute, snap.Default)
	assert.Empty(t, snap.Entry)
}

func TestKeypadBoundsAndBackspace(t *testing.T) {
	h := newHarness(t, time.Minute)
	h.send(event.EventEdit)

	h.typeDigits("123456789")
	assert.Equal(t, "123456", h.s.Snapshot().Entry)
	assert.Equal(t, 6, h.keyN, "ignored digits do not click")

	h.send(event.EventBackspace, event.EventBackspace)
	assert.Equal(t, "1234", h.s.Snapshot().Entry)

	for i := 0; i < 10; i++ {
		h.send(event.EventBackspace)
	}
	assert.Empty(t, h.s.Snapshot().Entry)
	assert.False(t, h.s.Handle(event.Of(event.EventBackspace)), "backspace on empty is a no-op")
}

func TestKeypadDismissAbandonsEntry(t *testing.T) {
	h := newHarness(t, time.Minute)
	h.send(event.EventEdit)
	h.typeDigits("99")
	h.send(event.EventDismiss)

	snap := h.s.Snapshot()
	assert.Equal(t, ViewDisplay, snap.View)
	assert.Equal(t, time.Minute, snap.Remaining)

	h.send(event.EventEdit)
	assert.Empty(t, h.s.Snapshot().Entry, "reopened keypad starts empty")
}

func TestKeypadIgnoresDisplayEvents(t *testing.T) {
	h := newHarness(t, time.Minute)
	h.send(event.EventEdit)
	assert.False(t, h.s.Handle(event.Of(event.EventStartPause)))
	assert.False(t, h.s.Handle(event.Of(event.EventReset)))
	assert.Empty(t, h.streams)

	h.send(event.EventDismiss)
	assert.False(t, h.s.Handle(event.Digit('5')), "digits ignored on display")
}

func TestConfirmCancelsRunningCountdown(t *testing.T) {
	h := newHarness(t, time.Minute)
	h.send(event.EventStartPause)
	running := h.last()

	// Keypad may open while counting; ticks keep updating the display value
	h.send(event.EventEdit)
	running.onTick(50 * time.Second)
	h.deliver()
	assert.Equal(t, 50*time.Second, h.s.Snapshot().Remaining)

	h.typeDigits("30")
	h.send(event.EventConfirm)
	assert.Equal(t, 1, running.cancelled)

	running.onTick(49 * time.Second)
	h.deliver()
	snap := h.s.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, 30*time.Second, snap.Remaining)
}

func TestConfirmZeroFinishesOnStart(t *testing.T) {
	h := newHarness(t, time.Minute)
	h.send(event.EventEdit)
	h.typeDigits("0")
	h.send(event.EventConfirm, event.EventStartPause)

	assert.Zero(t, h.last().total)
	h.last().onFinish()
	h.deliver()
	assert.Equal(t, StateFinished, h.s.Snapshot().State)
}

func TestSaturatedEntry(t *testing.T) {
	h := newHarness(t, time.Minute)
	h.send(event.EventEdit)
	h.typeDigits("999999")
	h.send(event.EventConfirm)
	assert.Equal(t, 359999*time.Second, h.s.Snapshot().Remaining)
}

func TestSetDefault(t *testing.T) {
	h := newHarness(t, time.Minute)
	h.s.SetDefault(2 * time.Minute)
	assert.Equal(t, 2*time.Minute, h.s.Snapshot().Remaining, "idle display follows new default")

	h.send(event.EventStartPause)
	h.s.SetDefault(3 * time.Minute)
	assert.Equal(t, 2*time.Minute, h.s.Snapshot().Remaining, "running countdown unaffected")

	h.send(event.EventReset)
	assert.Equal(t, 3*time.Minute, h.s.Snapshot().Remaining)
}

func TestCloseCancels(t *testing.T) {
	h := newHarness(t, time.Minute)
	h.send(event.EventStartPause)
	h.s.Close()
	assert.Equal(t, 1, h.last().cancelled)

	h.last().onTick(time.Second)
	h.deliver()
	assert.Equal(t, time.Minute, h.s.Snapshot().Remaining)
}

func TestTransitionsLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	h := newHarness(t, time.Second, WithLogger(logger))

	h.send(event.EventStartPause)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "StartPause", hook.LastEntry().Data["event"])
	assert.Equal(t, "running", hook.LastEntry().Data["state"])

	h.last().onFinish()
	h.deliver()
	assert.Equal(t, "countdown finished", hook.LastEntry().Message)
}

func TestStateAndViewNames(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "paused", StatePaused.String())
	assert.Equal(t, "finished", StateFinished.String())
	assert.Equal(t, "unknown", State(42).String())
	assert.Equal(t, "display", ViewDisplay.String())
	assert.Equal(t, "keypad", ViewKeypad.String())
}

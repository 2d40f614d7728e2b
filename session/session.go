// Package session holds the countdown timer state machine.
//
// A Session is owned by a single goroutine: every method must be called from
// the loop that consumes the events it posts. Countdown callbacks are never
// applied directly, they are posted back as events tagged with the stream
// generation, so ticks from a cancelled stream are recognized and dropped.
package session

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/countdown/duration"
	"github.com/lixenwraith/countdown/event"
)

// State is the countdown lifecycle state
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// View selects what the screen shows
type View int

const (
	ViewDisplay View = iota
	ViewKeypad
)

func (v View) String() string {
	if v == ViewKeypad {
		return "keypad"
	}
	return "display"
}

// Canceler stops a running countdown stream
type Canceler interface {
	Cancel()
}

// StartFunc starts a countdown stream from total
type StartFunc func(total time.Duration, onTick func(time.Duration), onFinish func()) Canceler

// Session is the timer state machine
type Session struct {
	state State
	view  View

	defaultDuration time.Duration
	remaining       time.Duration
	entry           duration.Entry

	handle Canceler
	gen    uint64

	start StartFunc
	post  func(event.Event)

	onFinished func()
	onKey      func()
	log        logrus.FieldLogger
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the logger, the default discards output
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Session) { s.log = log }
}

// WithFinishHook runs fn when a countdown reaches zero
func WithFinishHook(fn func()) Option {
	return func(s *Session) { s.onFinished = fn }
}

// WithKeyHook runs fn when a keypad key changes the entry
func WithKeyHook(fn func()) Option {
	return func(s *Session) { s.onKey = fn }
}

// New creates an idle session showing def. start launches countdown streams
// and post delivers their callbacks back to the owning loop.
func New(def time.Duration, start StartFunc, post func(event.Event), opts ...Option) *Session {
	s := &Session{
		defaultDuration: def,
		remaining:       def,
		start:           start,
		post:            post,
		onFinished:      func() {},
		onKey:           func() {},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = l
	}
	return s
}

// Handle applies one event, returning true if anything visible changed
func (s *Session) Handle(ev event.Event) bool {
	switch ev.Type {
	case event.EventTick:
		return s.tick(ev.Gen, ev.Remaining)
	case event.EventFinish:
		return s.finish(ev.Gen)
	}

	before := s.Snapshot()
	changed := s.dispatch(ev)
	if changed {
		s.log.WithFields(logrus.Fields{
			"event":     ev.Type.String(),
			"state":     s.state.String(),
			"view":      s.view.String(),
			"remaining": s.remaining,
			"gen":       s.gen,
		}).Debugf("transition from %s", before.State)
	}
	return changed
}

func (s *Session) dispatch(ev event.Event) bool {
	if s.view == ViewKeypad {
		switch ev.Type {
		case event.EventDigit:
			return s.keyed(s.entry.Append(ev.Digit))
		case event.EventBackspace:
			return s.keyed(s.entry.Backspace())
		case event.EventConfirm:
			return s.confirm()
		case event.EventDismiss:
			s.entry.Clear()
			s.view = ViewDisplay
			return true
		}
		return false
	}

	switch ev.Type {
	case event.EventEdit:
		if s.state == StateFinished {
			return false
		}
		s.entry.Clear()
		s.view = ViewKeypad
		return true
	case event.EventStartPause:
		return s.startPause()
	case event.EventReset:
		s.Reset()
		return true
	}
	return false
}

func (s *Session) keyed(changed bool) bool {
	if changed {
		s.onKey()
	}
	return changed
}

// confirm replaces the default and remaining duration with the keypad entry
func (s *Session) confirm() bool {
	if s.entry.Empty() {
		return false
	}
	d := s.entry.Duration()
	s.cancel()
	s.defaultDuration = d
	s.remaining = d
	s.state = StateIdle
	s.entry.Clear()
	s.view = ViewDisplay
	return true
}

func (s *Session) startPause() bool {
	switch s.state {
	case StateIdle, StatePaused:
		s.cancel()
		gen := s.gen
		s.state = StateRunning
		s.handle = s.start(s.remaining,
			func(remaining time.Duration) { s.post(event.Tick(gen, remaining)) },
			func() { s.post(event.Finish(gen)) },
		)
		return true
	case StateRunning:
		s.cancel()
		s.state = StatePaused
		return true
	}
	return false
}

// Reset cancels any running countdown and restores the last confirmed duration
func (s *Session) Reset() {
	s.cancel()
	s.remaining = s.defaultDuration
	s.state = StateIdle
}

// SetDefault replaces the duration restored by Reset, an idle session also shows it
func (s *Session) SetDefault(d time.Duration) {
	s.defaultDuration = d
	if s.state == StateIdle && s.view == ViewDisplay {
		s.remaining = d
	}
}

func (s *Session) tick(gen uint64, remaining time.Duration) bool {
	if gen != s.gen || s.state != StateRunning {
		return false
	}
	s.remaining = remaining
	return true
}

func (s *Session) finish(gen uint64) bool {
	if gen != s.gen || s.state != StateRunning {
		return false
	}
	s.handle = nil
	s.remaining = 0
	s.state = StateFinished
	s.log.WithField("gen", gen).Info("countdown finished")
	s.onFinished()
	return true
}

// cancel stops the current stream and retires its generation
func (s *Session) cancel() {
	if s.handle != nil {
		s.handle.Cancel()
		s.handle = nil
	}
	s.gen++
}

// Close cancels any running countdown
func (s *Session) Close() {
	s.cancel()
}

// Snapshot is a read-only copy of the session for rendering
type Snapshot struct {
	State     State
	View      View
	Remaining time.Duration
	Default   time.Duration
	Entry     string
}

// CanConfirm reports whether the keypad entry may be applied
func (s Snapshot) CanConfirm() bool {
	return s.View == ViewKeypad && s.Entry != ""
}

// Packed returns the keypad preview components
func (s Snapshot) Packed() duration.Components {
	return duration.FormatPacked(s.Entry)
}

// Snapshot returns the current state for rendering
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:     s.state,
		View:      s.view,
		Remaining: s.remaining,
		Default:   s.defaultDuration,
		Entry:     s.entry.String(),
	}
}

// Package app runs the countdown timer: it owns the screen, the session and
// the countdown service, and serializes everything through one event loop.
package app

import (
	"context"
	"io"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/countdown/clock"
	"github.com/lixenwraith/countdown/config"
	"github.com/lixenwraith/countdown/core"
	"github.com/lixenwraith/countdown/countdown"
	"github.com/lixenwraith/countdown/event"
	"github.com/lixenwraith/countdown/session"
	"github.com/lixenwraith/countdown/tui"
	"github.com/lixenwraith/countdown/view"
)

// eventBuffer sizes both the screen and the application event queues
const eventBuffer = 64

// Sound is the audio surface used by the loop, satisfied by *audio.SoundManager
type Sound interface {
	PlayFinish()
	PlayKey()
	SetEnabled(enabled bool)
}

type silent struct{}

func (silent) PlayFinish()     {}
func (silent) PlayKey()        {}
func (silent) SetEnabled(bool) {}

// App is the running timer application
type App struct {
	screen tcell.Screen
	cfg    *config.Config
	opts   view.Options

	clk   clock.Clock
	sound Sound
	log   logrus.FieldLogger

	svc  *countdown.Service
	sess *session.Session

	events chan event.Event
	done   chan struct{}

	hits        view.HitMap
	lastButtons tcell.ButtonMask
}

// Option configures an App
type Option func(*App)

// WithClock replaces the monotonic clock driving countdowns
func WithClock(clk clock.Clock) Option {
	return func(a *App) { a.clk = clk }
}

// WithSound sets the audio output, the default is silent
func WithSound(s Sound) Option {
	return func(a *App) { a.sound = s }
}

// WithLogger sets the logger, the default discards output
func WithLogger(log logrus.FieldLogger) Option {
	return func(a *App) { a.log = log }
}

// New creates an application drawing on an initialized screen
func New(screen tcell.Screen, cfg *config.Config, opts ...Option) *App {
	a := &App{
		screen: screen,
		cfg:    cfg,
		clk:    clock.NewMonotonicClock(),
		sound:  silent{},
		events: make(chan event.Event, eventBuffer),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		a.log = l
	}

	a.opts = view.Options{Theme: tui.DefaultTheme}
	a.applyDisplay(cfg)
	a.sound.SetEnabled(cfg.Sound.Enabled)

	a.svc = countdown.New(a.clk, cfg.Timer.Tick)
	start := func(total time.Duration, onTick func(time.Duration), onFinish func()) session.Canceler {
		return a.svc.Start(total, onTick, onFinish)
	}
	a.sess = session.New(cfg.DefaultDuration(), start, a.Post,
		session.WithLogger(a.log.WithField("component", "session")),
		session.WithFinishHook(a.sound.PlayFinish),
		session.WithKeyHook(a.sound.PlayKey),
	)
	return a
}

// Post queues an event for the loop. Safe from any goroutine; dropped once Run has returned.
func (a *App) Post(ev event.Event) {
	select {
	case a.events <- ev:
	case <-a.done:
	}
}

// Run draws the timer and processes input until quit or ctx is cancelled.
// The screen is finalized before Run returns.
func (a *App) Run(ctx context.Context) error {
	core.SetCrashTerminal(a.screen)
	defer core.SetCrashTerminal(nil)

	a.screen.EnableMouse()
	a.log.WithField("default", a.cfg.DefaultDuration()).Info("countdown started")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	screenEvents := make(chan tcell.Event, eventBuffer)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(core.Guard(func() error {
		return a.poll(gctx, screenEvents)
	}))
	g.Go(core.Guard(func() error {
		defer a.wakePoller()
		defer cancel()
		return a.loop(gctx, screenEvents)
	}))

	err := g.Wait()
	a.shutdown()
	return err
}

// poll forwards screen events until the context ends or the screen is finalized
func (a *App) poll(ctx context.Context, out chan<- tcell.Event) error {
	for {
		ev := a.screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return nil
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return nil
		}
	}
}

// wakePoller unblocks a PollEvent call so poll can observe cancellation
func (a *App) wakePoller() {
	if err := a.screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
		a.log.WithError(err).Debug("poller wakeup not queued")
	}
}

func (a *App) loop(ctx context.Context, screenEvents <-chan tcell.Event) error {
	a.draw()
	for {
		var ev event.Event
		select {
		case <-ctx.Done():
			return nil
		case sev := <-screenEvents:
			var ok bool
			if ev, ok = a.translate(sev); !ok {
				continue
			}
		case ev = <-a.events:
		}

		if a.apply(ev) {
			a.log.Info("quit requested")
			return nil
		}
	}
}

// apply handles one event on the loop goroutine, returning true on quit
func (a *App) apply(ev event.Event) bool {
	switch ev.Type {
	case event.EventQuit:
		return true
	case event.EventResize:
		a.screen.Sync()
		a.draw()
	case event.EventConfigReload:
		a.reconfigure(ev.Config)
		a.draw()
	default:
		if a.sess.Handle(ev) {
			a.draw()
		}
	}
	return false
}

func (a *App) reconfigure(cfg *config.Config) {
	if cfg == nil {
		return
	}
	a.cfg = cfg
	a.applyDisplay(cfg)
	a.sound.SetEnabled(cfg.Sound.Enabled)
	a.sess.SetDefault(cfg.DefaultDuration())
	a.log.WithFields(logrus.Fields{
		"default": cfg.DefaultDuration(),
		"millis":  cfg.Display.Millis,
		"sound":   cfg.Sound.Enabled,
	}).Info("configuration applied")
}

func (a *App) applyDisplay(cfg *config.Config) {
	a.opts.Title = cfg.Display.Title
	a.opts.ShowMillis = cfg.Display.Millis
	a.opts.WrapHours = cfg.Display.WrapHours
}

func (a *App) draw() {
	a.hits = view.Render(tui.NewRegion(a.screen), a.sess.Snapshot(), a.opts)
	a.screen.Show()
}

// shutdown stops the countdown and releases the screen
func (a *App) shutdown() {
	a.sess.Close()
	close(a.done)
	a.svc.Wait()
	a.screen.Fini()
	a.log.Info("countdown stopped")
}

// Package event defines the events consumed by the application loop
package event

import (
	"time"

	"github.com/lixenwraith/countdown/config"
)

// Event is a single input to the application loop
// Only the fields named in the EventType doc are meaningful
type Event struct {
	Type EventType

	Digit     rune
	Gen       uint64
	Remaining time.Duration
	Config    *config.Config
}

// Digit creates a keypad digit event
func Digit(d rune) Event {
	return Event{Type: EventDigit, Digit: d}
}

// Tick creates a countdown tick event for stream generation gen
func Tick(gen uint64, remaining time.Duration) Event {
	return Event{Type: EventTick, Gen: gen, Remaining: remaining}
}

// Finish creates a countdown finish event for stream generation gen
func Finish(gen uint64) Event {
	return Event{Type: EventFinish, Gen: gen}
}

// ConfigReload creates a reload event carrying the new configuration
func ConfigReload(cfg *config.Config) Event {
	return Event{Type: EventConfigReload, Config: cfg}
}

// Of creates a payload-less event
func Of(t EventType) Event {
	return Event{Type: t}
}

package event

// EventType represents the type of timer event
type EventType int

const (
	// === Keypad Event ===

	// EventDigit appends a digit to the keypad entry
	// Trigger: digit key, keypad button | Payload: Digit
	EventDigit EventType = iota + 1

	// EventBackspace drops the last keypad digit
	// Trigger: Backspace key, keypad button | Payload: nil
	EventBackspace

	// EventConfirm converts the keypad entry into the countdown duration
	// Trigger: Enter in keypad, done button | Payload: nil
	EventConfirm

	// EventDismiss closes the keypad without applying the entry
	// Trigger: Esc in keypad | Payload: nil
	EventDismiss

	// === Display Event ===

	// EventEdit opens the keypad
	// Trigger: 'e', Enter on display, click on time display | Payload: nil
	EventEdit

	// EventStartPause toggles between counting down and paused
	// Trigger: Space, 's', start/pause button | Payload: nil
	EventStartPause

	// EventReset restores the last confirmed duration
	// Trigger: 'r', reset button | Payload: nil
	EventReset

	// === Countdown Event ===

	// EventTick reports the remaining time of a running stream
	// Trigger: countdown service | Payload: Gen, Remaining
	EventTick

	// EventFinish reports that a stream reached zero
	// Trigger: countdown service | Payload: Gen
	EventFinish

	// === Application Event ===

	// EventConfigReload carries updated display/sound settings
	// Trigger: config file change | Payload: Config
	EventConfigReload

	// EventResize requests a full redraw
	// Trigger: terminal resize | Payload: nil
	EventResize

	// EventQuit ends the application loop
	// Trigger: 'q', Ctrl+C, Esc on display | Payload: nil
	EventQuit
)

var typeToName = map[EventType]string{
	EventDigit:        "Digit",
	EventBackspace:    "Backspace",
	EventConfirm:      "Confirm",
	EventDismiss:      "Dismiss",
	EventEdit:         "Edit",
	EventStartPause:   "StartPause",
	EventReset:        "Reset",
	EventTick:         "Tick",
	EventFinish:       "Finish",
	EventConfigReload: "ConfigReload",
	EventResize:       "Resize",
	EventQuit:         "Quit",
}

var nameToType = func() map[string]EventType {
	m := make(map[string]EventType, len(typeToName))
	for t, n := range typeToName {
		m[n] = t
	}
	return m
}()

func (t EventType) String() string {
	if n, ok := typeToName[t]; ok {
		return n
	}
	return "Unknown"
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	et, ok := nameToType[name]
	return et, ok
}

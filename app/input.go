package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/countdown/event"
	"github.com/lixenwraith/countdown/session"
)

// runeEvents maps printable keys outside the digit range
var runeEvents = map[rune]event.EventType{
	' ': event.EventStartPause,
	's': event.EventStartPause,
	'r': event.EventReset,
	'e': event.EventEdit,
	'q': event.EventQuit,
}

// translate converts a screen event into a loop event
func (a *App) translate(sev tcell.Event) (event.Event, bool) {
	switch ev := sev.(type) {
	case *tcell.EventKey:
		return a.translateKey(ev)
	case *tcell.EventMouse:
		return a.translateMouse(ev)
	case *tcell.EventResize:
		return event.Of(event.EventResize), true
	}
	return event.Event{}, false
}

func (a *App) translateKey(ev *tcell.EventKey) (event.Event, bool) {
	keypad := a.sess.Snapshot().View == session.ViewKeypad

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return event.Of(event.EventQuit), true
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		return event.Of(event.EventBackspace), true
	case tcell.KeyEnter:
		if keypad {
			return event.Of(event.EventConfirm), true
		}
		return event.Of(event.EventEdit), true
	case tcell.KeyEscape:
		if keypad {
			return event.Of(event.EventDismiss), true
		}
		return event.Of(event.EventQuit), true
	case tcell.KeyRune:
	default:
		return event.Event{}, false
	}

	r := ev.Rune()
	if r >= '0' && r <= '9' {
		return event.Digit(r), true
	}
	if typ, ok := runeEvents[r]; ok {
		// Shortcuts other than quit are inactive on the keypad
		if keypad && typ != event.EventQuit {
			return event.Event{}, false
		}
		return event.Of(typ), true
	}
	return event.Event{}, false
}

// translateMouse reports a click on press of the primary button only
func (a *App) translateMouse(ev *tcell.EventMouse) (event.Event, bool) {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && a.lastButtons&tcell.Button1 == 0
	a.lastButtons = buttons
	if !pressed {
		return event.Event{}, false
	}
	x, y := ev.Position()
	return a.hits.At(x, y)
}

// Package view composes the timer screens from a session snapshot
package view

import (
	"time"

	"github.com/samber/lo"

	"github.com/lixenwraith/countdown/duration"
	"github.com/lixenwraith/countdown/event"
	"github.com/lixenwraith/countdown/session"
	"github.com/lixenwraith/countdown/tui"
)

// Layout constants, in cells
const (
	cardWidth     = 36
	displayHeight = 5
	keypadHeight  = 12

	keyWidth    = 5
	keyGap      = 1
	keypadWidth = 3*keyWidth + 2*keyGap

	buttonGap = 3
)

// FinishedText replaces the time display once a countdown completes
const FinishedText = "Finished!!!"

// Keypad labels for the non-digit keys
const (
	KeyBackspace = "⌫"
	KeyDone      = "✓"
)

var keypadRows = [][]string{
	{"1", "2", "3"},
	{"4", "5", "6"},
	{"7", "8", "9"},
	{KeyBackspace, "0", KeyDone},
}

// Options controls rendering
type Options struct {
	Title      string
	ShowMillis bool
	WrapHours  bool
	Theme      tui.Theme
}

// Render draws the whole screen for snap into r and returns the clickable targets
func Render(r tui.Region, snap session.Snapshot, opts Options) HitMap {
	th := opts.Theme
	r.Fill(th.Base)

	title := r.Sub(0, 0, r.W, 1)
	title.Fill(th.Title)
	title.TextCenter(0, opts.Title, th.Title)

	body := r.Sub(0, 1, r.W, r.H-2)
	var hm HitMap
	if snap.View == session.ViewKeypad {
		renderKeypad(body, snap, opts, &hm)
	} else {
		renderDisplay(body, snap, opts, &hm)
	}

	renderStatus(r.Sub(0, r.H-1, r.W, 1), snap, th)
	return hm
}

func renderDisplay(body tui.Region, snap session.Snapshot, opts Options, hm *HitMap) {
	th := opts.Theme
	card := body.Center(min(body.W, cardWidth), displayHeight)
	border := tui.LineRounded
	if snap.State == session.StateFinished {
		border = tui.LineDouble
	}
	inner := card.Card(snap.State.String(), border, th.Border)

	if snap.State == session.StateFinished {
		inner.TextCenter(1, FinishedText, th.Finished)
	} else {
		segs := timeSegments(components(snap.Remaining, opts.WrapHours), opts.ShowMillis)
		w := segmentsWidth(segs)
		x := (inner.W - w) / 2
		line := inner.Sub(x, 1, w, 1)
		col := 0
		for _, seg := range segs {
			line.Text(col, 0, seg.value, th.Time)
			col += tui.RuneLen(seg.value)
			line.Text(col, 0, seg.unit, th.Unit)
			col += tui.RuneLen(seg.unit)
		}
		hm.add(line.Rect(), event.Of(event.EventEdit))
	}

	buttons := make([]tui.Button, 0, 2)
	events := make([]event.Event, 0, 2)
	if snap.State != session.StateFinished {
		label := "Start"
		if snap.State == session.StateRunning {
			label = "Pause"
		}
		buttons = append(buttons, tui.Button{Label: label, Key: "Space", Focused: snap.State == session.StateRunning})
		events = append(events, event.Of(event.EventStartPause))
	}
	buttons = append(buttons, tui.Button{Label: "Reset", Key: "r"})
	events = append(events, event.Of(event.EventReset))

	rects := body.ButtonBar(body.H-1, buttons, buttonGap, th)
	for i, rc := range rects {
		hm.add(rc, events[i])
	}
}

func renderKeypad(body tui.Region, snap session.Snapshot, opts Options, hm *HitMap) {
	th := opts.Theme
	card := body.Center(min(body.W, cardWidth), keypadHeight)
	inner := card.Card("set duration", tui.LineRounded, th.Border)

	preview := snap.Packed().Text(false)
	inner.Sub((inner.W-tui.RuneLen(preview))/2-1, 0, tui.RuneLen(preview)+2, 1).Fill(th.Preview)
	inner.TextCenter(0, preview, th.Preview)

	x0 := (inner.W - keypadWidth) / 2
	for rowIdx, labels := range keypadRows {
		y := 2 + rowIdx*2
		for col, label := range labels {
			ev, enabled := keyEvent(label, snap)
			rc := inner.KeyButton(x0+col*(keyWidth+keyGap), y, keyWidth, label, enabled, th)
			if enabled {
				hm.add(rc, ev)
			}
		}
	}
}

// keyEvent maps a keypad label to its event and enabled state
func keyEvent(label string, snap session.Snapshot) (event.Event, bool) {
	switch label {
	case KeyBackspace:
		return event.Of(event.EventBackspace), true
	case KeyDone:
		return event.Of(event.EventConfirm), snap.CanConfirm()
	}
	return event.Digit([]rune(label)[0]), true
}

func renderStatus(r tui.Region, snap session.Snapshot, th tui.Theme) {
	r.Fill(th.Status)
	hints := []string{"Space start/pause", "r reset", "e edit", "q quit"}
	if snap.View == session.ViewKeypad {
		hints = []string{"0-9 digits", "Bksp delete", "Enter done", "Esc cancel"}
	}
	r.Text(1, 0, joinHints(hints), th.Status)
}

func joinHints(hints []string) string {
	return lo.Reduce(hints, func(acc string, h string, i int) string {
		if i == 0 {
			return h
		}
		return acc + " · " + h
	}, "")
}

func components(d time.Duration, wrap bool) duration.Components {
	if wrap {
		return duration.Format(d)
	}
	return duration.FormatUnwrapped(d)
}

type segment struct {
	value string
	unit  string
}

func timeSegments(c duration.Components, showMillis bool) []segment {
	hourUnit := "h "
	if c.HoursWrapped {
		hourUnit = "+h "
	}
	segs := []segment{
		{duration.Pad(c.Hours, 2), hourUnit},
		{duration.Pad(c.Minutes, 2), "m "},
		{duration.Pad(c.Seconds, 2), "s"},
	}
	if showMillis {
		segs[2].unit = "s "
		segs = append(segs, segment{duration.Pad(c.Millis, 3), "ms"})
	}
	return segs
}

func segmentsWidth(segs []segment) int {
	return lo.SumBy(segs, func(s segment) int {
		return tui.RuneLen(s.value) + tui.RuneLen(s.unit)
	})
}

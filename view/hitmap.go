package view

import (
	"github.com/samber/lo"

	"github.com/lixenwraith/countdown/event"
	"github.com/lixenwraith/countdown/tui"
)

type target struct {
	rect tui.Rect
	ev   event.Event
}

// HitMap resolves screen coordinates to the event of the control drawn there
type HitMap struct {
	targets []target
}

func (h *HitMap) add(rc tui.Rect, ev event.Event) {
	if rc.Empty() {
		return
	}
	h.targets = append(h.targets, target{rect: rc, ev: ev})
}

// At returns the event for a click at absolute (x, y)
func (h HitMap) At(x, y int) (event.Event, bool) {
	t, ok := lo.Find(h.targets, func(t target) bool {
		return t.rect.Contains(x, y)
	})
	return t.ev, ok
}

// Len returns the number of clickable targets
func (h HitMap) Len() int {
	return len(h.targets)
}

// Rect returns the bounds of the first target producing ev
func (h HitMap) Rect(ev event.Event) (tui.Rect, bool) {
	t, ok := lo.Find(h.targets, func(t target) bool {
		return t.ev == ev
	})
	return t.rect, ok
}

package tui

// Button defines a single button in a button bar
type Button struct {
	Label   string
	Key     string // Keyboard hint (e.g., "Space")
	Focused bool
}

// ButtonBar renders a centered row of buttons at row y and returns each
// button's absolute bounds in order, for mouse hit testing
func (r Region) ButtonBar(y int, buttons []Button, gap int, theme Theme) []Rect {
	rects := make([]Rect, len(buttons))
	if len(buttons) == 0 || y < 0 || y >= r.H {
		return rects
	}
	if gap < 1 {
		gap = 2
	}

	totalW := 0
	for i, btn := range buttons {
		totalW += buttonWidth(btn)
		if i < len(buttons)-1 {
			totalW += gap
		}
	}

	x := (r.W - totalW) / 2
	if x < 0 {
		x = 0
	}

	for i, btn := range buttons {
		style := theme.Button
		if btn.Focused {
			style = theme.ButtonFocus
		}

		start := x
		r.Text(x, y, " "+btn.Label+" ", style)
		x += RuneLen(btn.Label) + 2
		if btn.Key != "" {
			r.Text(x, y, " "+btn.Key, theme.Hint)
			x += RuneLen(btn.Key) + 1
		}
		rects[i] = r.Sub(start, y, x-start, 1).Rect()
		x += gap
	}
	return rects
}

// KeyButton renders a single fixed-size keypad button with a centered label
// and returns its absolute bounds. Disabled buttons are drawn blank.
func (r Region) KeyButton(x, y, w int, label string, enabled bool, theme Theme) Rect {
	cell := r.Sub(x, y, w, 1)
	if !enabled {
		cell.Fill(theme.Base)
		return cell.Rect()
	}
	cell.Fill(theme.Button)
	cell.TextCenter(0, label, theme.Button)
	return cell.Rect()
}

func buttonWidth(btn Button) int {
	w := RuneLen(btn.Label) + 2
	if btn.Key != "" {
		w += RuneLen(btn.Key) + 1
	}
	return w
}

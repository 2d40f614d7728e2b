package tui

import "github.com/gdamore/tcell/v2"

// Region represents a rectangular area within a screen
type Region struct {
	Screen tcell.Screen
	X, Y   int // Absolute position on screen
	W, H   int // Region dimensions
}

// NewRegion creates a region covering the whole screen
func NewRegion(screen tcell.Screen) Region {
	w, h := screen.Size()
	return Region{Screen: screen, W: w, H: h}
}

// Sub returns a nested region with coordinates relative to parent, result is clipped to parent bounds
func (r Region) Sub(x, y, w, h int) Region {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > r.W {
		w = r.W - x
	}
	if y+h > r.H {
		h = r.H - y
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}

	return Region{
		Screen: r.Screen,
		X:      r.X + x,
		Y:      r.Y + y,
		W:      w,
		H:      h,
	}
}

// Inset returns a region shrunk by n cells on all sides
func (r Region) Inset(n int) Region {
	return r.Sub(n, n, r.W-2*n, r.H-2*n)
}

// Center returns a w*h region centered in r
func (r Region) Center(w, h int) Region {
	return r.Sub((r.W-w)/2, (r.H-h)/2, w, h)
}

// Cell sets a single cell with bounds checking
func (r Region) Cell(x, y int, ch rune, style tcell.Style) {
	if x < 0 || x >= r.W || y < 0 || y >= r.H {
		return
	}
	r.Screen.SetContent(r.X+x, r.Y+y, ch, nil, style)
}

// Fill fills entire region with spaces in style
func (r Region) Fill(style tcell.Style) {
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			r.Cell(x, y, ' ', style)
		}
	}
}

// Rect returns the region's absolute bounds
func (r Region) Rect() Rect {
	return Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// Rect is an absolute screen rectangle used for hit testing
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the absolute point lies inside the rectangle
func (rc Rect) Contains(x, y int) bool {
	return x >= rc.X && x < rc.X+rc.W && y >= rc.Y && y < rc.Y+rc.H
}

// Empty reports a zero-area rectangle
func (rc Rect) Empty() bool {
	return rc.W <= 0 || rc.H <= 0
}

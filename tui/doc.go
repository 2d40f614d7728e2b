// Package tui provides clipped drawing primitives over a tcell screen.
//
// A Region is a rectangle within the screen. All coordinates passed to Region
// methods are relative to its origin and writes outside it are dropped, so
// layouts can be computed without bounds checks at call sites.
package tui

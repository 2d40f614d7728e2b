package tui

import "github.com/gdamore/tcell/v2"

// Theme defines semantic styles for the timer screens
type Theme struct {
	Base        tcell.Style
	Title       tcell.Style
	Border      tcell.Style
	Time        tcell.Style
	Unit        tcell.Style
	Finished    tcell.Style
	Preview     tcell.Style
	Button      tcell.Style
	ButtonFocus tcell.Style
	Hint        tcell.Style
	Status      tcell.Style
}

// DefaultTheme provides reasonable defaults
var DefaultTheme = Theme{
	Base:        tcell.StyleDefault.Background(tcell.NewRGBColor(20, 20, 30)).Foreground(tcell.NewRGBColor(200, 200, 200)),
	Title:       tcell.StyleDefault.Background(tcell.NewRGBColor(40, 60, 90)).Foreground(tcell.ColorWhite).Bold(true),
	Border:      tcell.StyleDefault.Background(tcell.NewRGBColor(20, 20, 30)).Foreground(tcell.NewRGBColor(60, 80, 100)),
	Time:        tcell.StyleDefault.Background(tcell.NewRGBColor(20, 20, 30)).Foreground(tcell.ColorWhite).Bold(true),
	Unit:        tcell.StyleDefault.Background(tcell.NewRGBColor(20, 20, 30)).Foreground(tcell.NewRGBColor(140, 140, 140)),
	Finished:    tcell.StyleDefault.Background(tcell.NewRGBColor(20, 20, 30)).Foreground(tcell.NewRGBColor(255, 200, 80)).Bold(true),
	Preview:     tcell.StyleDefault.Background(tcell.NewRGBColor(30, 30, 50)).Foreground(tcell.NewRGBColor(180, 220, 220)).Bold(true),
	Button:      tcell.StyleDefault.Background(tcell.NewRGBColor(50, 50, 60)).Foreground(tcell.NewRGBColor(200, 200, 200)),
	ButtonFocus: tcell.StyleDefault.Background(tcell.NewRGBColor(60, 80, 120)).Foreground(tcell.ColorWhite),
	Hint:        tcell.StyleDefault.Background(tcell.NewRGBColor(20, 20, 30)).Foreground(tcell.NewRGBColor(100, 180, 200)),
	Status:      tcell.StyleDefault.Background(tcell.NewRGBColor(20, 20, 30)).Foreground(tcell.NewRGBColor(140, 140, 140)),
}

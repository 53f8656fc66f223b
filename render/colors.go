package render

import "github.com/gdamore/tcell/v2"

var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38) // Tokyo Night background

	RgbPlace       = tcell.NewRGBColor(100, 150, 255) // Normal Blue
	RgbPeerEnRoute = tcell.NewRGBColor(255, 80, 80)   // Normal Red
	RgbPeerIdle    = tcell.NewRGBColor(180, 50, 50)   // Dark Red

	RgbStatusBar  = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbStatusText = tcell.NewRGBColor(0, 0, 0)
	RgbPausedBg   = tcell.NewRGBColor(255, 165, 0) // Orange
)

const (
	GlyphPlace = '■'
	GlyphPeer  = '•'
)

package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/wander/component"
	"github.com/lixenwraith/wander/engine"
	"github.com/lixenwraith/wander/status"
)

// TerminalRenderer draws snapshots onto a tcell screen
// The last row is the status bar, the rest is the world view
type TerminalRenderer struct {
	screen tcell.Screen
	extent float32
	status *status.Registry
}

// NewTerminalRenderer creates a new terminal renderer; reg may be nil
func NewTerminalRenderer(screen tcell.Screen, extent float32, reg *status.Registry) *TerminalRenderer {
	return &TerminalRenderer{
		screen: screen,
		extent: extent,
		status: reg,
	}
}

// RenderFrame redraws the whole screen from snap; caller calls Show
func (r *TerminalRenderer) RenderFrame(snap engine.Snapshot, paused bool) {
	width, height := r.screen.Size()
	bg := tcell.StyleDefault.Background(RgbBackground)
	r.screen.SetStyle(bg)
	r.screen.Clear()
	if width <= 0 || height <= 0 {
		return
	}

	viewHeight := height - 1

	// Places first so a peer standing on its place stays visible
	placeStyle := bg.Foreground(RgbPlace)
	for _, p := range snap.Places {
		if x, y, ok := Project(p.Pos, r.extent, width, viewHeight); ok {
			r.screen.SetContent(x, y, GlyphPlace, nil, placeStyle)
		}
	}

	enRouteStyle := bg.Foreground(RgbPeerEnRoute)
	idleStyle := bg.Foreground(RgbPeerIdle)
	for _, p := range snap.Peers {
		x, y, ok := Project(p.Pos, r.extent, width, viewHeight)
		if !ok {
			continue
		}
		style := idleStyle
		if p.State == component.RouteEnRoute {
			style = enRouteStyle
		}
		r.screen.SetContent(x, y, GlyphPeer, nil, style)
	}

	r.drawStatusBar(snap, paused, width, height-1)
}

// StatusText formats the status bar contents
func (r *TerminalRenderer) StatusText(snap engine.Snapshot, paused bool) string {
	enRoute := 0
	for _, p := range snap.Peers {
		if p.State == component.RouteEnRoute {
			enRoute++
		}
	}
	text := fmt.Sprintf(" t=%.1fs  frame %d  en route %d/%d  places %d",
		snap.SimTime.Seconds(), snap.Frame, enRoute, len(snap.Peers), len(snap.Places))
	if r.status != nil {
		text += fmt.Sprintf("  arrivals %d  starved %d",
			r.status.Ints.Get(status.KeyArrivals).Load(),
			r.status.Ints.Get(status.KeyStarved).Load())
	}
	if paused {
		text += "  [PAUSED]"
	}
	return text
}

func (r *TerminalRenderer) drawStatusBar(snap engine.Snapshot, paused bool, width, row int) {
	barBg := RgbStatusBar
	if paused {
		barBg = RgbPausedBg
	}
	style := tcell.StyleDefault.Background(barBg).Foreground(RgbStatusText)

	text := []rune(r.StatusText(snap, paused))
	for x := 0; x < width; x++ {
		ch := ' '
		if x < len(text) {
			ch = text[x]
		}
		r.screen.SetContent(x, row, ch, nil, style)
	}
}

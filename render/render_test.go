package render

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/wander/component"
	"github.com/lixenwraith/wander/engine"
	"github.com/lixenwraith/wander/status"
	"github.com/lixenwraith/wander/vmath"
)

func TestProject(t *testing.T) {
	tests := []struct {
		name string
		pos  vmath.Vec2
		x, y int
		ok   bool
	}{
		{"top left", vmath.Vec2{X: -1000, Y: 1000}, 0, 0, true},
		{"center", vmath.Vec2{}, 40, 10, true},
		{"far corner", vmath.Vec2{X: 1000, Y: -1000}, 79, 19, true},
		{"left of world", vmath.Vec2{X: -1001}, 0, 0, false},
		{"below world", vmath.Vec2{Y: -1000.5}, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := Project(tt.pos, 1000, 80, 20)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.x, x)
				assert.Equal(t, tt.y, y)
			}
		})
	}

	_, _, ok := Project(vmath.Vec2{}, 1000, 0, 20)
	assert.False(t, ok)
}

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func rowText(s tcell.Screen, row, width int) string {
	var out []rune
	for x := 0; x < width; x++ {
		c, _, _, _ := s.GetContent(x, row)
		out = append(out, c)
	}
	return string(out)
}

func TestRenderFrame(t *testing.T) {
	screen := newSimScreen(t, 80, 21)
	reg := status.NewRegistry()
	reg.Ints.Get(status.KeyArrivals).Store(5)
	r := NewTerminalRenderer(screen, 1000, reg)

	snap := engine.Snapshot{
		Frame:   7,
		SimTime: 1500 * time.Millisecond,
		Places:  []engine.PlaceView{{Entity: 1, Pos: vmath.Vec2{X: -1000, Y: 1000}}},
		Peers: []engine.PeerView{
			{Entity: 2, Pos: vmath.Vec2{}, State: component.RouteEnRoute, Place: 1},
			{Entity: 3, Pos: vmath.Vec2{X: 500}},
		},
	}
	r.RenderFrame(snap, false)

	ch, _, style, _ := screen.GetContent(0, 0)
	assert.Equal(t, GlyphPlace, ch)
	fg, _, _ := style.Decompose()
	assert.Equal(t, RgbPlace, fg)

	ch, _, style, _ = screen.GetContent(40, 10)
	assert.Equal(t, GlyphPeer, ch)
	fg, _, _ = style.Decompose()
	assert.Equal(t, RgbPeerEnRoute, fg)

	ch, _, style, _ = screen.GetContent(60, 10)
	assert.Equal(t, GlyphPeer, ch)
	fg, _, _ = style.Decompose()
	assert.Equal(t, RgbPeerIdle, fg)

	bar := rowText(screen, 20, 80)
	assert.Contains(t, bar, "t=1.5s")
	assert.Contains(t, bar, "en route 1/2")
	assert.Contains(t, bar, "arrivals 5")
	assert.NotContains(t, bar, "PAUSED")
}

func TestRenderFramePaused(t *testing.T) {
	screen := newSimScreen(t, 60, 4)
	r := NewTerminalRenderer(screen, 1000, nil)
	r.RenderFrame(engine.Snapshot{}, true)

	_, _, style, _ := screen.GetContent(0, 3)
	_, bg, _ := style.Decompose()
	assert.Equal(t, RgbPausedBg, bg)
	assert.Contains(t, rowText(screen, 3, 60), "[PAUSED]")
	assert.NotContains(t, r.StatusText(engine.Snapshot{}, true), "arrivals")
}

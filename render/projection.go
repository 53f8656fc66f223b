package render

import (
	"math"

	"github.com/lixenwraith/wander/vmath"
)

// Project maps a world position in [-extent, extent] on both axes to a cell of a
// width x height grid, with world +Y pointing up the screen
// Returns false for positions outside the world bounds or an empty grid
func Project(pos vmath.Vec2, extent float32, width, height int) (int, int, bool) {
	if width <= 0 || height <= 0 || extent <= 0 {
		return 0, 0, false
	}
	span := float64(2 * extent)
	u := (float64(pos.X) + float64(extent)) / span
	v := (float64(extent) - float64(pos.Y)) / span
	if math.IsNaN(u) || math.IsNaN(v) || u < 0 || u > 1 || v < 0 || v > 1 {
		return 0, 0, false
	}

	x := int(u * float64(width))
	y := int(v * float64(height))
	// Exactly on the far edge
	if x == width {
		x--
	}
	if y == height {
		y--
	}
	return x, y, true
}

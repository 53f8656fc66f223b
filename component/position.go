package component

import (
	"github.com/lixenwraith/wander/vmath"
)

// PositionComponent is the mutable world-space coordinate shared by places and peers
type PositionComponent struct {
	vmath.Vec2
}

// At builds a position from raw coordinates
func At(x, y float32) PositionComponent {
	return PositionComponent{vmath.Vec2{X: x, Y: y}}
}

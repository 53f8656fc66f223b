package physics

import (
	"github.com/lixenwraith/wander/vmath"
)

// Integrate advances pos toward target by at most speed*dt
// When the step reaches or passes the target the result is target exactly,
// so arrival can be detected with exact equality instead of an epsilon
// Zero distance, non-positive or NaN steps leave pos unchanged
func Integrate(pos, target vmath.Vec2, speed, dt float32) vmath.Vec2 {
	delta := vmath.V2Sub(target, pos)
	distance := vmath.V2Mag(delta)
	if distance == 0 {
		return pos
	}

	step := speed * dt
	if !(step > 0) {
		return pos
	}
	if step >= distance {
		return target
	}

	next := vmath.V2Add(pos, vmath.V2Scale(delta, step/distance))

	// Rounding near the target can carry the point past it; treat that as arrival
	remaining := vmath.V2Sub(target, next)
	if remaining.X*delta.X+remaining.Y*delta.Y <= 0 {
		return target
	}
	return next
}

// Arrived reports exact coordinate equality on both axes
func Arrived(pos, target vmath.Vec2) bool {
	return pos.X == target.X && pos.Y == target.Y
}

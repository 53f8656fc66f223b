package vmath

import "math"

// Vec2 is a float32 2D vector in world units
type Vec2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

func V2Add(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func V2Sub(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func V2Scale(v Vec2, s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func V2MagSq(v Vec2) float32 {
	return v.X*v.X + v.Y*v.Y
}

// V2Mag returns the Euclidean length, computed in float64 to avoid float32 overflow on squaring
func V2Mag(v Vec2) float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// V2Dist returns the Euclidean distance between a and b
func V2Dist(a, b Vec2) float32 {
	return V2Mag(V2Sub(b, a))
}

// V2Normalize returns the unit vector, zero-safe
func V2Normalize(v Vec2) Vec2 {
	mag := V2Mag(v)
	if mag == 0 {
		return Vec2{}
	}
	inv := 1 / mag
	return Vec2{v.X * inv, v.Y * inv}
}

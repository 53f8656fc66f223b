package component

import (
	"github.com/lixenwraith/wander/core"
	"github.com/lixenwraith/wander/vmath"
)

// RouteState is the per-peer travel state
type RouteState uint8

const (
	// RouteIdle peers have no destination and are eligible for targeting
	RouteIdle RouteState = iota
	// RouteEnRoute peers move toward Target every tick
	RouteEnRoute
)

func (s RouteState) String() string {
	switch s {
	case RouteIdle:
		return "idle"
	case RouteEnRoute:
		return "en_route"
	default:
		return "unknown"
	}
}

// RouteComponent is a tagged variant: Target and Place are meaningful only when State is RouteEnRoute
type RouteComponent struct {
	State  RouteState
	Target vmath.Vec2  // Place position captured at selection time
	Place  core.Entity // Place the target was read from
}

// Idle returns a route with no destination
func Idle() RouteComponent {
	return RouteComponent{State: RouteIdle}
}

// EnRoute returns a route heading to target, read from place
func EnRoute(place core.Entity, target vmath.Vec2) RouteComponent {
	return RouteComponent{State: RouteEnRoute, Target: target, Place: place}
}

// Destination returns the active target and true, or false when idle
func (r RouteComponent) Destination() (vmath.Vec2, bool) {
	if r.State != RouteEnRoute {
		return vmath.Vec2{}, false
	}
	return r.Target, true
}

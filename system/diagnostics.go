package system

import (
	"sync/atomic"

	"github.com/lixenwraith/wander/engine"
	"github.com/lixenwraith/wander/parameter"
	"github.com/lixenwraith/wander/status"
)

// DiagnosticsSystem publishes settled per-tick gauges after all simulation systems
type DiagnosticsSystem struct {
	engine.SystemBase

	statIdle    *atomic.Int64
	statEnRoute *atomic.Int64
	statSimTime *status.AtomicFloat
}

// NewDiagnosticsSystem creates a new diagnostics system
func NewDiagnosticsSystem(world *engine.World) engine.System {
	base := engine.NewSystemBase(world)
	return &DiagnosticsSystem{
		SystemBase:  base,
		statIdle:    base.Resource.Status.Ints.Get(status.KeyIdle),
		statEnRoute: base.Resource.Status.Ints.Get(status.KeyEnRoute),
		statSimTime: base.Resource.Status.Floats.Get(status.KeySimSeconds),
	}
}

// Name returns system's name
func (s *DiagnosticsSystem) Name() string {
	return "diagnostics"
}

// Priority returns the system's priority (after all others)
func (s *DiagnosticsSystem) Priority() int {
	return parameter.PriorityDiagnostics
}

// Update counts peers per route state
func (s *DiagnosticsSystem) Update() {
	idle, enRoute := 0, 0
	for _, e := range s.Component.Peer.GetAllEntities() {
		route, ok := s.Component.Route.GetComponent(e)
		if !ok {
			continue
		}
		if _, active := route.Destination(); active {
			enRoute++
		} else {
			idle++
		}
	}
	s.statIdle.Store(int64(idle))
	s.statEnRoute.Store(int64(enRoute))
	s.statSimTime.Set(s.Resource.Time.SimTime.Seconds())
}

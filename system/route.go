package system

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/wander/component"
	"github.com/lixenwraith/wander/core"
	"github.com/lixenwraith/wander/engine"
	"github.com/lixenwraith/wander/event"
	"github.com/lixenwraith/wander/parameter"
	"github.com/lixenwraith/wander/physics"
	"github.com/lixenwraith/wander/status"
)

// RouteSystem drives the per-peer Idle/EnRoute state machine
// En-route peers standing exactly on their target are cleared to idle
// Idle peers are handed a destination by the TargetResolver
type RouteSystem struct {
	engine.SystemBase
	logger   *zap.Logger
	resolver *TargetResolver

	// Peers currently idle for lack of candidates, so starvation is reported once
	starved map[core.Entity]struct{}

	statArrivals  *atomic.Int64
	statRetargets *atomic.Int64
	statStarved   *atomic.Int64
}

// NewRouteSystem creates a new route system
func NewRouteSystem(world *engine.World, logger *zap.Logger) engine.System {
	base := engine.NewSystemBase(world)
	return &RouteSystem{
		SystemBase:    base,
		logger:        logger.Named("route"),
		resolver:      NewTargetResolver(world),
		starved:       make(map[core.Entity]struct{}),
		statArrivals:  base.Resource.Status.Ints.Get(status.KeyArrivals),
		statRetargets: base.Resource.Status.Ints.Get(status.KeyRetargets),
		statStarved:   base.Resource.Status.Ints.Get(status.KeyStarved),
	}
}

// Name returns system's name
func (s *RouteSystem) Name() string {
	return "route"
}

// Priority returns the system's priority (after motion)
func (s *RouteSystem) Priority() int {
	return parameter.PriorityRoute
}

// Update runs the arrival and re-targeting pass over every peer
func (s *RouteSystem) Update() {
	peers := s.World.Query().
		With(s.Component.Peer).
		With(s.Component.Route).
		With(s.World.Positions).
		Execute()

	samePass := s.Resource.Sim.RetargetSamePass

	for _, e := range peers {
		route, _ := s.Component.Route.GetComponent(e)

		switch route.State {
		case component.RouteEnRoute:
			pos, _ := s.World.Positions.Vec(e)
			if !physics.Arrived(pos, route.Target) {
				continue
			}
			s.Component.Route.SetComponent(e, component.Idle())
			s.statArrivals.Add(1)
			s.World.PushEvent(event.EventPeerArrived, event.ArrivedPayload{
				Peer:  e,
				Place: route.Place,
				At:    pos,
			})
			if samePass {
				s.assign(e)
			}

		case component.RouteIdle:
			s.assign(e)
		}
	}

	s.statStarved.Store(int64(len(s.starved)))
}

// assign resolves a destination for an idle peer or leaves it idle
func (s *RouteSystem) assign(e core.Entity) {
	route, candidates, ok := s.resolver.Resolve(e)
	if !ok {
		if _, already := s.starved[e]; !already {
			s.starved[e] = struct{}{}
			s.logger.Debug("peer has no candidate places", zap.Uint64("peer", uint64(e)))
			s.World.PushEvent(event.EventPeerStarved, event.StarvedPayload{Peer: e})
		}
		return
	}
	delete(s.starved, e)

	s.Component.Route.SetComponent(e, route)
	s.statRetargets.Add(1)
	s.World.PushEvent(event.EventPeerRetargeted, event.RetargetedPayload{
		Peer:       e,
		Place:      route.Place,
		Target:     route.Target,
		Candidates: candidates,
	})
}

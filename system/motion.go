package system

import (
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/wander/core"
	"github.com/lixenwraith/wander/engine"
	"github.com/lixenwraith/wander/parameter"
	"github.com/lixenwraith/wander/physics"
	"github.com/lixenwraith/wander/status"
	"github.com/lixenwraith/wander/vmath"
)

// MotionSystem advances every en-route peer toward its destination
// Runs before RouteSystem so arrival checks observe this tick's positions
type MotionSystem struct {
	engine.SystemBase
	logger *zap.Logger

	statDistance *status.AtomicFloat
	statMoved    *atomic.Int64
}

// NewMotionSystem creates a new motion system
func NewMotionSystem(world *engine.World, logger *zap.Logger) engine.System {
	base := engine.NewSystemBase(world)
	return &MotionSystem{
		SystemBase:   base,
		logger:       logger.Named("motion"),
		statDistance: base.Resource.Status.Floats.Get(status.KeyDistance),
		statMoved:    base.Resource.Status.Ints.Get(status.KeyMoved),
	}
}

// Name returns system's name
func (s *MotionSystem) Name() string {
	return "motion"
}

// Priority returns the system's priority
func (s *MotionSystem) Priority() int {
	return parameter.PriorityMotion
}

// Update integrates all peers for the current tick delta
func (s *MotionSystem) Update() {
	dt := s.Resource.Time.DeltaSeconds()
	speed := s.Resource.Sim.Speed

	peers := s.World.Query().
		With(s.Component.Route).
		With(s.World.Positions).
		Execute()

	workers := s.Resource.Sim.MotionWorkers
	if workers <= 1 || len(peers) < workers*parameter.MotionParallelThreshold {
		travelled, moved := s.integrate(peers, speed, dt)
		s.statDistance.Add(travelled)
		s.statMoved.Store(int64(moved))
		return
	}

	// Peers share no mutable state, only the stores serialize writes
	chunk := (len(peers) + workers - 1) / workers
	parts := (len(peers) + chunk - 1) / chunk
	dist := make([]float64, parts)
	counts := make([]int, parts)

	var g errgroup.Group
	for i := 0; i < parts; i++ {
		part := peers[i*chunk : min((i+1)*chunk, len(peers))]
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					core.HandleCrash(r)
				}
			}()
			dist[i], counts[i] = s.integrate(part, speed, dt)
			return nil
		})
	}
	_ = g.Wait()

	var travelled float64
	moved := 0
	for i := range parts {
		travelled += dist[i]
		moved += counts[i]
	}
	s.statDistance.Add(travelled)
	s.statMoved.Store(int64(moved))
}

// integrate moves each en-route peer and returns total distance and number of peers moved
func (s *MotionSystem) integrate(peers []core.Entity, speed, dt float32) (float64, int) {
	var travelled float64
	moved := 0
	for _, e := range peers {
		route, ok := s.Component.Route.GetComponent(e)
		if !ok {
			continue
		}
		target, ok := route.Destination()
		if !ok {
			continue
		}
		pos, ok := s.World.Positions.Vec(e)
		if !ok {
			continue
		}
		next := physics.Integrate(pos, target, speed, dt)
		if next == pos {
			continue
		}
		if err := s.World.Positions.Move(e, next); err != nil {
			s.logger.Debug("move failed", zap.Uint64("entity", uint64(e)), zap.Error(err))
			continue
		}
		moved++
		travelled += float64(vmath.V2Dist(pos, next))
	}
	return travelled, moved
}

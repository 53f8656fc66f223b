package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/wander/config"
	"github.com/lixenwraith/wander/engine"
	"github.com/lixenwraith/wander/status"
	"github.com/lixenwraith/wander/system"
	"github.com/lixenwraith/wander/trace"
	"github.com/lixenwraith/wander/vmath"
)

// simulation bundles a populated world with its driver and optional trace
type simulation struct {
	cfg       *config.Config
	world     *engine.World
	status    *status.Registry
	clock     *engine.PausableClock
	scheduler *engine.ClockScheduler
	tracer    *trace.TickLogger
	runID     string
	seed      uint64
	logger    *zap.Logger
}

// newSimulation spawns places then peers and installs the systems
// Trace failures are logged and the run continues without it
func newSimulation(cfg *config.Config, logger *zap.Logger) *simulation {
	seed := cfg.Sim.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	world := engine.NewWorld()
	engine.AddResource(world.Resources, cfg.SimResource())
	engine.AddResource(world.Resources, &engine.RandResource{Source: vmath.NewSharedRand(seed)})

	system.SpawnPlaces(world, cfg.Sim.Places)
	system.SpawnPeers(world, cfg.Sim.Peers, cfg.FavoriteCount())
	system.Install(world, logger)

	clock := engine.NewPausableClock()
	s := &simulation{
		cfg:       cfg,
		world:     world,
		status:    engine.MustGetResource[*status.Registry](world.Resources),
		clock:     clock,
		scheduler: engine.NewClockScheduler(world, clock, cfg.Sim.TickInterval, logger),
		runID:     trace.NewRunID(),
		seed:      seed,
		logger:    logger,
	}

	logger.Info("simulation ready",
		zap.String("run_id", s.runID),
		zap.Uint64("seed", seed),
		zap.Int("places", cfg.Sim.Places),
		zap.Int("peers", cfg.Sim.Peers),
	)

	if cfg.Trace.Dir != "" {
		info := trace.RunInfo{Seed: seed, Places: cfg.Sim.Places, Peers: cfg.Sim.Peers}
		tracer, err := trace.Open(cfg.Trace.Dir, s.runID, cfg.Trace.Index, info, logger)
		if err != nil {
			logger.Warn("trace disabled", zap.Error(err))
		} else {
			s.tracer = tracer
			s.scheduler.AddObserver(tracer)
		}
	}
	return s
}

// close flushes the trace; the scheduler must be stopped first
func (s *simulation) close() {
	if s.tracer == nil {
		return
	}
	if err := s.tracer.Close(); err != nil {
		s.logger.Warn("trace close failed", zap.Error(err))
	}
}

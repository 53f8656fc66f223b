package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/wander/core"
	"github.com/lixenwraith/wander/parameter"
	"github.com/lixenwraith/wander/status"
)

// TickObserver receives the settled world state after every tick
// OnTick runs on the scheduler goroutine and must not block
type TickObserver interface {
	OnTick(snap Snapshot)
}

// TickObserverFunc adapts a function to TickObserver
type TickObserverFunc func(snap Snapshot)

func (f TickObserverFunc) OnTick(snap Snapshot) { f(snap) }

// ClockScheduler drives World.Tick on a fixed real-time interval
// Each tick is fed the simulated time elapsed since the previous one, so pauses and stalls
// do not produce catch-up bursts beyond MaxTickDelta
type ClockScheduler struct {
	world  *World
	clock  *PausableClock
	logger *zap.Logger

	tickInterval time.Duration
	maxDelta     time.Duration

	// Simulated time already fed into ticks
	lastElapsed time.Duration

	observerMu sync.RWMutex
	observers  []TickObserver

	tickCount atomic.Uint64

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// Cached metric pointers
	statTicks   *atomic.Int64
	statDropped *atomic.Int64
	statPaused  *atomic.Bool
}

// NewClockScheduler creates a new clock scheduler with specified tick interval
func NewClockScheduler(world *World, clock *PausableClock, tickInterval time.Duration, logger *zap.Logger) *ClockScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tickInterval <= 0 {
		tickInterval = parameter.TickInterval
	}
	reg := MustGetResource[*status.Registry](world.Resources)

	return &ClockScheduler{
		world:        world,
		clock:        clock,
		logger:       logger.Named("scheduler"),
		tickInterval: tickInterval,
		maxDelta:     parameter.MaxTickDelta,
		lastElapsed:  clock.Elapsed(),
		stopChan:     make(chan struct{}),
		statTicks:    reg.Ints.Get(status.KeyTicks),
		statDropped:  reg.Ints.Get(status.KeyEventsDropped),
		statPaused:   reg.Bools.Get(status.KeyPaused),
	}
}

// AddObserver registers an observer, safe to call while running
func (cs *ClockScheduler) AddObserver(o TickObserver) {
	cs.observerMu.Lock()
	defer cs.observerMu.Unlock()
	cs.observers = append(cs.observers, o)
}

// Step runs a single tick of dt, publishes the snapshot to observers and returns it
// Used directly by fixed-step drivers; the real-time loop calls it with measured deltas
func (cs *ClockScheduler) Step(dt time.Duration) Snapshot {
	var snap Snapshot
	cs.world.RunSafe(func() {
		cs.world.TickLocked(dt)
		snap = cs.world.SnapshotLocked()
	})
	snap.Events = cs.world.ConsumeEvents()

	cs.tickCount.Add(1)
	cs.statTicks.Store(snap.Frame)
	cs.statDropped.Store(int64(cs.world.EventsDropped()))

	cs.observerMu.RLock()
	observers := cs.observers
	cs.observerMu.RUnlock()
	for _, o := range observers {
		o.OnTick(snap)
	}
	return snap
}

// TickCount returns the number of ticks run by this scheduler
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// Clock returns the pausable clock driving the loop
func (cs *ClockScheduler) Clock() *PausableClock {
	return cs.clock
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		core.Go(cs.schedulerLoop)
		cs.logger.Debug("started", zap.Duration("interval", cs.tickInterval))
	}
}

// Stop halts the scheduler loop and waits for the in-flight tick
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		close(cs.stopChan)
		if cs.running.CompareAndSwap(true, false) {
			cs.wg.Wait()
		}
		cs.logger.Debug("stopped", zap.Uint64("ticks", cs.tickCount.Load()))
	})
}

// Run starts the loop and blocks until ctx is cancelled or Stop is called
func (cs *ClockScheduler) Run(ctx context.Context) error {
	cs.Start()
	select {
	case <-ctx.Done():
		cs.Stop()
		return ctx.Err()
	case <-cs.stopChan:
		cs.wg.Wait()
		return nil
	}
}

// schedulerLoop runs the main scheduling loop with pause awareness and drift correction
func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	nextDeadline := time.Now().Add(cs.tickInterval)

	timer := time.NewTimer(cs.tickInterval)
	defer timer.Stop()

	for {
		select {
		case <-cs.stopChan:
			return
		case <-timer.C:
		}

		paused := cs.clock.IsPaused()
		cs.statPaused.Store(paused)
		if paused {
			// Keep the delta baseline at the frozen time so resume does not jump
			cs.lastElapsed = cs.clock.Elapsed()
			nextDeadline = time.Now().Add(cs.tickInterval * 2)
			timer.Reset(cs.tickInterval * 2)
			continue
		}

		elapsed := cs.clock.Elapsed()
		dt := elapsed - cs.lastElapsed
		cs.lastElapsed = elapsed
		if dt > cs.maxDelta {
			cs.logger.Debug("tick delta capped", zap.Duration("delta", dt), zap.Duration("cap", cs.maxDelta))
			dt = cs.maxDelta
		}

		cs.Step(dt)

		now := time.Now()
		nextDeadline = nextDeadline.Add(cs.tickInterval)
		// Fall back to a fresh deadline when too far behind instead of spinning
		if now.Sub(nextDeadline) > cs.tickInterval*2 {
			nextDeadline = now.Add(cs.tickInterval)
		}
		sleep := nextDeadline.Sub(now)
		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
	}
}

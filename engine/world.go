package engine

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/wander/core"
	"github.com/lixenwraith/wander/event"
	"github.com/lixenwraith/wander/status"
	"github.com/lixenwraith/wander/vmath"
)

// World contains all entities and their components using typed stores
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity

	// Global ResourceStore
	Resources *ResourceStore

	// Component stores; Positions kept as a named field since places and peers share it
	Components ComponentStore
	Positions  *PositionStore

	eventQueue *event.EventQueue
	frame      atomic.Int64
	timeRes    *TimeResource

	systems     []System
	updateMutex sync.Mutex
}

// NewWorld creates a world with the reference resources registered
// Replace resources with AddResource before constructing systems, which cache them
func NewWorld() *World {
	w := &World{
		nextEntityID: 1,
		Resources:    NewResourceStore(),
		Components:   newComponentStore(),
		Positions:    NewPositionStore(),
		eventQueue:   event.NewEventQueue(),
		timeRes:      &TimeResource{},
		systems:      make([]System, 0),
	}

	AddResource(w.Resources, w.timeRes)
	AddResource(w.Resources, DefaultSimResource())
	AddResource(w.Resources, &RandResource{Source: vmath.NewSharedRand(0)})
	AddResource(w.Resources, status.NewRegistry())

	return w
}

// CreateEntity reserves a new entity ID
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	return id
}

// DestroyEntity removes all components associated with an entity
func (w *World) DestroyEntity(e core.Entity) {
	w.Positions.RemoveEntity(e)
	for _, store := range w.Components.all() {
		store.RemoveEntity(e)
	}
}

// Clear removes all entities and components from the world
func (w *World) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextEntityID = 1
	w.Positions.ClearAllComponents()
	for _, store := range w.Components.all() {
		store.ClearAllComponents()
	}
}

// AddSystem adds a system to the world and keeps systems ordered by priority
// Systems with equal priority keep registration order
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.systems = append(w.systems, system)
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].Priority() < w.systems[j].Priority()
	})
}

// Systems returns a copy of all registered systems in execution order
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// RunSafe executes a function while holding the world's update lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Tick advances the simulation by dt, running every system once in priority order
func (w *World) Tick(dt time.Duration) {
	w.RunSafe(func() {
		w.TickLocked(dt)
	})
}

// TickLocked runs one tick assuming the caller already holds the update lock
// Negative deltas are treated as zero
func (w *World) TickLocked(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	frame := w.frame.Add(1)
	w.timeRes.Update(dt, frame)

	w.mu.RLock()
	systems := make([]System, len(w.systems))
	copy(systems, w.systems)
	w.mu.RUnlock()

	for _, system := range systems {
		system.Update()
	}
}

// FrameNumber returns the number of ticks executed so far
func (w *World) FrameNumber() int64 {
	return w.frame.Load()
}

// PushEvent emits a simulation event stamped with the current frame
func (w *World) PushEvent(eventType event.EventType, payload any) {
	w.eventQueue.Push(event.GameEvent{
		Type:    eventType,
		Payload: payload,
		Frame:   w.frame.Load(),
	})
}

// ConsumeEvents drains all pending events in FIFO order
func (w *World) ConsumeEvents() []event.GameEvent {
	return w.eventQueue.Consume()
}

// EventsDropped returns the number of events lost to queue overflow
func (w *World) EventsDropped() uint64 {
	return w.eventQueue.Dropped()
}

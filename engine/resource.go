package engine

import (
	"reflect"
	"sync"
	"time"

	"github.com/lixenwraith/wander/parameter"
	"github.com/lixenwraith/wander/status"
	"github.com/lixenwraith/wander/vmath"
)

// ResourceStore is a thread-safe container for global simulation resources
// It allows systems to access shared data (Time, Config, Rand) without coupling to the driver
type ResourceStore struct {
	mu        sync.RWMutex
	resources map[reflect.Type]any
}

// NewResourceStore creates a new empty resource store
func NewResourceStore() *ResourceStore {
	return &ResourceStore{
		resources: make(map[reflect.Type]any),
	}
}

// AddResource registers or replaces a resource keyed by its dynamic type
// Pointer types are recommended so systems observe in-place updates
func AddResource[T any](rs *ResourceStore, resource T) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.resources[reflect.TypeOf(resource)] = resource
}

// GetResource retrieves a resource of type T from the store
// Returns the zero value of T and false if not found
func GetResource[T any](rs *ResourceStore) (T, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	var target T
	val, ok := rs.resources[reflect.TypeOf(target)]
	if !ok {
		return target, false
	}
	return val.(T), true
}

// MustGetResource retrieves a resource or panics if missing
// Useful for core resources (Time, Sim) that must exist
func MustGetResource[T any](rs *ResourceStore) T {
	res, ok := GetResource[T](rs)
	if !ok {
		var target T
		panic("Required resource not found: " + reflect.TypeOf(target).String())
	}
	return res
}

// Resource caches typed pointers to the core resources for system access
type Resource struct {
	Time   *TimeResource
	Sim    *SimResource
	Rand   *RandResource
	Status *status.Registry
}

// GetResourceStore resolves the core resources from world
// Call once during system construction
func GetResourceStore(w *World) Resource {
	return Resource{
		Time:   MustGetResource[*TimeResource](w.Resources),
		Sim:    MustGetResource[*SimResource](w.Resources),
		Rand:   MustGetResource[*RandResource](w.Resources),
		Status: MustGetResource[*status.Registry](w.Resources),
	}
}

// TimeResource wraps time data for systems
// It is updated by World.Tick before any system runs
type TimeResource struct {
	// DeltaTime is the elapsed simulated time for the current tick
	DeltaTime time.Duration

	// SimTime is the total simulated time including the current tick
	SimTime time.Duration

	// FrameNumber is the current tick count, starting at 1 for the first tick
	FrameNumber int64
}

// Update modifies TimeResource fields in-place
// Must be called under world update lock to prevent races with system reads
func (tr *TimeResource) Update(dt time.Duration, frame int64) {
	tr.DeltaTime = dt
	tr.SimTime += dt
	tr.FrameNumber = frame
}

// DeltaSeconds returns the tick delta in seconds
func (tr *TimeResource) DeltaSeconds() float32 {
	return float32(tr.DeltaTime.Seconds())
}

// SimResource holds the simulation policy, fixed before the first tick
type SimResource struct {
	// Speed is the peer travel speed in world units per second
	Speed float32

	// Extent bounds random placement to [-Extent, Extent)
	Extent float32

	// FavoritesEnabled restricts targeting to each peer's favorites
	FavoritesEnabled bool

	// RetargetSamePass lets a peer cleared on arrival receive a target in the same pass
	RetargetSamePass bool

	// MotionWorkers is the number of goroutines used by the motion pass
	MotionWorkers int
}

// DefaultSimResource returns the reference policy
func DefaultSimResource() *SimResource {
	return &SimResource{
		Speed:            parameter.PeerSpeed,
		Extent:           parameter.WorldExtent,
		FavoritesEnabled: parameter.FavoritesEnabled,
		RetargetSamePass: parameter.RetargetSamePass,
		MotionWorkers:    parameter.MotionWorkers,
	}
}

// RandResource wraps the process-wide random source
type RandResource struct {
	Source vmath.RandSource
}

package engine

// System is an interface that all simulation systems implement
// Update reads the tick delta from TimeResource
type System interface {
	Name() string
	Priority() int // Lower values run first
	Update()
}

// SystemBase provides common dependency for all system
// Embed in system struct to eliminate boilerplate
type SystemBase struct {
	World     *World
	Resource  Resource
	Component ComponentStore
}

// NewSystemBase initializes base dependency from world
// Call once in system constructor
func NewSystemBase(w *World) SystemBase {
	return SystemBase{
		World:     w,
		Resource:  GetResourceStore(w),
		Component: w.Components,
	}
}

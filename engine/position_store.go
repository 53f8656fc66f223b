package engine

import (
	"fmt"

	"github.com/lixenwraith/wander/component"
	"github.com/lixenwraith/wander/core"
	"github.com/lixenwraith/wander/vmath"
)

// PositionStore holds the world-space coordinate of every place and peer
// Coordinates are continuous so no spatial index is kept; lookups are by entity only
type PositionStore struct {
	*Store[component.PositionComponent]
}

// NewPositionStore creates an empty position store
func NewPositionStore() *PositionStore {
	return &PositionStore{
		Store: NewStore[component.PositionComponent](),
	}
}

// Vec returns the raw coordinate of an entity
func (ps *PositionStore) Vec(e core.Entity) (vmath.Vec2, bool) {
	pos, ok := ps.GetComponent(e)
	return pos.Vec2, ok
}

// Move updates the coordinate of an entity that already has a position
// Returns an error if the entity was never placed
func (ps *PositionStore) Move(e core.Entity, to vmath.Vec2) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if _, exists := ps.components[e]; !exists {
		return fmt.Errorf("entity %d does not have a position component", e)
	}
	ps.components[e] = component.PositionComponent{Vec2: to}
	return nil
}

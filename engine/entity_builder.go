package engine

import (
	"github.com/lixenwraith/wander/component"
	"github.com/lixenwraith/wander/core"
	"github.com/lixenwraith/wander/vmath"
)

// EntityBuilder provides a fluent, type-safe interface for constructing entities with components.
// It reserves an entity ID upfront; components are written as they are added.
//
// Example usage:
//
//	place := engine.With(
//	    world.NewEntity().At(pos),
//	    world.Components.Place, component.PlaceComponent{},
//	).Build()
type EntityBuilder struct {
	world  *World
	entity core.Entity
	built  bool
}

// NewEntity creates a new EntityBuilder with a reserved entity ID.
func (w *World) NewEntity() *EntityBuilder {
	return &EntityBuilder{
		world:  w,
		entity: w.CreateEntity(),
	}
}

// With adds a component of type T to the entity being built.
// The store type must match the component type.
// Panics if called after Build().
func With[T any](eb *EntityBuilder, store *Store[T], comp T) *EntityBuilder {
	if eb.built {
		panic("entity already built - cannot add components after Build()")
	}
	store.SetComponent(eb.entity, comp)
	return eb
}

// At places the entity in the shared position store.
// Panics if called after Build().
func (eb *EntityBuilder) At(pos vmath.Vec2) *EntityBuilder {
	if eb.built {
		panic("entity already built - cannot add components after Build()")
	}
	eb.world.Positions.SetComponent(eb.entity, component.PositionComponent{Vec2: pos})
	return eb
}

// Build finalizes entity construction and returns the entity ID.
func (eb *EntityBuilder) Build() core.Entity {
	eb.built = true
	return eb.entity
}

package engine

import (
	"sort"

	"github.com/lixenwraith/wander/core"
)

// QueryBuilder provides a fluent interface for querying entities based on component intersection.
// The query optimizes by filtering the smallest store through the larger ones.
// Results keep the insertion order of the smallest store so iteration is deterministic.
type QueryBuilder struct {
	world    *World
	stores   []QueryableStore
	executed bool
	results  []core.Entity
}

// Query creates a new QueryBuilder for finding entities with specific component combinations.
// Use With() to add component filters, then Execute() to get the results.
//
// Example:
//
//	peers := world.Query().
//	    With(world.Positions).
//	    With(world.Components.Route).
//	    Execute()
func (w *World) Query() *QueryBuilder {
	return &QueryBuilder{
		world:  w,
		stores: make([]QueryableStore, 0, 4),
	}
}

// With adds a component store to the query filter.
// Panics if called after Execute().
func (qb *QueryBuilder) With(store QueryableStore) *QueryBuilder {
	if qb.executed {
		panic("query already executed - cannot modify after Execute()")
	}
	qb.stores = append(qb.stores, store)
	return qb
}

// Execute runs the query and returns all entities that have components in all specified stores.
// Calling Execute() multiple times returns the cached result.
func (qb *QueryBuilder) Execute() []core.Entity {
	if qb.executed {
		return qb.results
	}
	qb.executed = true

	if len(qb.stores) == 0 {
		qb.results = make([]core.Entity, 0)
		return qb.results
	}

	if len(qb.stores) == 1 {
		qb.results = qb.stores[0].GetAllEntities()
		return qb.results
	}

	// Smallest store first minimizes HasEntity checks
	sort.SliceStable(qb.stores, func(i, j int) bool {
		return qb.stores[i].CountEntities() < qb.stores[j].CountEntities()
	})

	candidates := qb.stores[0].GetAllEntities()
	for i := 1; i < len(qb.stores); i++ {
		store := qb.stores[i]
		filtered := candidates[:0]
		for _, e := range candidates {
			if store.HasEntity(e) {
				filtered = append(filtered, e)
			}
		}
		candidates = filtered

		if len(candidates) == 0 {
			break
		}
	}

	qb.results = candidates
	return qb.results
}

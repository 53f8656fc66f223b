package system

import (
	"github.com/lixenwraith/wander/component"
	"github.com/lixenwraith/wander/core"
	"github.com/lixenwraith/wander/engine"
	"github.com/lixenwraith/wander/vmath"
)

// Candidate is a place a peer may travel to, with the position read at selection time
type Candidate struct {
	Place core.Entity
	Pos   vmath.Vec2
}

// TargetResolver picks destinations for idle peers
// Place positions are read fresh from the position store on every call
type TargetResolver struct {
	world            *engine.World
	rng              vmath.RandSource
	favoritesEnabled bool

	buf []Candidate // Reused across calls; single-threaded route pass
}

// NewTargetResolver creates a resolver bound to the world's random source and policy
func NewTargetResolver(w *engine.World) *TargetResolver {
	res := engine.GetResourceStore(w)
	return &TargetResolver{
		world:            w,
		rng:              res.Rand.Source,
		favoritesEnabled: res.Sim.FavoritesEnabled,
	}
}

// Candidates returns the places peer may target
// With the favorites policy enabled and a favorites list present, only favorite places
// that still resolve to a positioned place are returned; otherwise every registered place
// The returned slice is only valid until the next call
func (r *TargetResolver) Candidates(peer core.Entity) []Candidate {
	r.buf = r.buf[:0]

	if r.favoritesEnabled {
		if fav, ok := r.world.Components.Favorites.GetComponent(peer); ok {
			for _, place := range fav.Places {
				// Stale references are skipped rather than treated as fatal
				if !r.world.Components.Place.HasEntity(place) {
					continue
				}
				pos, ok := r.world.Positions.Vec(place)
				if !ok {
					continue
				}
				r.buf = append(r.buf, Candidate{Place: place, Pos: pos})
			}
			return r.buf
		}
	}

	places := r.world.Query().
		With(r.world.Components.Place).
		With(r.world.Positions).
		Execute()
	for _, place := range places {
		pos, _ := r.world.Positions.Vec(place)
		r.buf = append(r.buf, Candidate{Place: place, Pos: pos})
	}
	return r.buf
}

// Resolve picks a uniform random candidate for peer
// Returns the en-route component, the candidate count and false when no candidate exists
func (r *TargetResolver) Resolve(peer core.Entity) (component.RouteComponent, int, bool) {
	candidates := r.Candidates(peer)
	if len(candidates) == 0 {
		return component.Idle(), 0, false
	}
	pick := candidates[r.rng.Intn(len(candidates))]
	return component.EnRoute(pick.Place, pick.Pos), len(candidates), true
}

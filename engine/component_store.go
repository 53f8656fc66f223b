package engine

import (
	"github.com/lixenwraith/wander/component"
)

// ComponentStore provides cached pointers to typed component stores
// Initialized once per world; pointers remain valid for application lifetime
type ComponentStore struct {
	Place     *Store[component.PlaceComponent]
	Peer      *Store[component.PeerComponent]
	Route     *Store[component.RouteComponent]
	Favorites *Store[component.FavoritesComponent]
}

func newComponentStore() ComponentStore {
	return ComponentStore{
		Place:     NewStore[component.PlaceComponent](),
		Peer:      NewStore[component.PeerComponent](),
		Route:     NewStore[component.RouteComponent](),
		Favorites: NewStore[component.FavoritesComponent](),
	}
}

// all lists every store for uniform lifecycle operations
func (cs ComponentStore) all() []AnyStore {
	return []AnyStore{cs.Place, cs.Peer, cs.Route, cs.Favorites}
}

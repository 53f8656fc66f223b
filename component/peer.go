package component

import "github.com/lixenwraith/wander/core"

// PeerComponent marks a mobile agent that wanders between places
type PeerComponent struct{}

// FavoritesComponent restricts a peer's destinations to a fixed subset of places
// Entries are place entity ids resolved against the place and position stores at read time
type FavoritesComponent struct {
	Places []core.Entity
}

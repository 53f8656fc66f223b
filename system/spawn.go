package system

import (
	"github.com/lixenwraith/wander/component"
	"github.com/lixenwraith/wander/core"
	"github.com/lixenwraith/wander/engine"
	"github.com/lixenwraith/wander/vmath"
)

// SpawnPlaces creates count places at uniform random positions within the world extent
func SpawnPlaces(w *engine.World, count int) []core.Entity {
	res := engine.GetResourceStore(w)
	places := make([]core.Entity, 0, count)
	for i := 0; i < count; i++ {
		pos := vmath.RandPoint(res.Rand.Source, res.Sim.Extent)
		e := engine.With(w.NewEntity().At(pos), w.Components.Place, component.PlaceComponent{}).Build()
		places = append(places, e)
	}
	return places
}

// SpawnPeers creates count idle peers at uniform random positions
// Each peer samples favoriteCount distinct places from those already registered, so places
// must be spawned first; favoriteCount <= 0 spawns peers without a favorites list
func SpawnPeers(w *engine.World, count, favoriteCount int) []core.Entity {
	res := engine.GetResourceStore(w)
	registered := w.Query().With(w.Components.Place).Execute()

	peers := make([]core.Entity, 0, count)
	for i := 0; i < count; i++ {
		pos := vmath.RandPoint(res.Rand.Source, res.Sim.Extent)
		eb := w.NewEntity().At(pos)
		engine.With(eb, w.Components.Peer, component.PeerComponent{})
		engine.With(eb, w.Components.Route, component.Idle())

		if favoriteCount > 0 {
			idx := vmath.SampleIndices(res.Rand.Source, len(registered), favoriteCount)
			fav := component.FavoritesComponent{Places: make([]core.Entity, len(idx))}
			for j, k := range idx {
				fav.Places[j] = registered[k]
			}
			engine.With(eb, w.Components.Favorites, fav)
		}
		peers = append(peers, eb.Build())
	}
	return peers
}

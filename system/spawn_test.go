package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/wander/component"
	"github.com/lixenwraith/wander/core"
	"github.com/lixenwraith/wander/engine"
	"github.com/lixenwraith/wander/parameter"
	"github.com/lixenwraith/wander/status"
)

func TestSpawnPlacesWithinExtent(t *testing.T) {
	w := newTestWorld(t, 21, nil)
	places := SpawnPlaces(w, parameter.DefaultPlaceCount)
	require.Len(t, places, parameter.DefaultPlaceCount)

	extent := engine.GetResourceStore(w).Sim.Extent
	for _, p := range places {
		pos := posOf(t, w, p)
		assert.GreaterOrEqual(t, pos.X, -extent)
		assert.Less(t, pos.X, extent)
		assert.GreaterOrEqual(t, pos.Y, -extent)
		assert.Less(t, pos.Y, extent)
		assert.True(t, w.Components.Place.HasEntity(p))
	}
}

func TestSpawnPeersFavorites(t *testing.T) {
	w := newTestWorld(t, 21, nil)
	places := SpawnPlaces(w, 10)
	placeSet := make(map[core.Entity]bool, len(places))
	for _, p := range places {
		placeSet[p] = true
	}

	peers := SpawnPeers(w, 100, 3)
	require.Len(t, peers, 100)
	for _, peer := range peers {
		assert.Equal(t, component.Idle(), routeOf(t, w, peer))

		fav, ok := w.Components.Favorites.GetComponent(peer)
		require.True(t, ok)
		require.Len(t, fav.Places, 3)

		distinct := map[core.Entity]bool{}
		for _, ref := range fav.Places {
			assert.True(t, placeSet[ref], "favorite %d is not a registered place", ref)
			distinct[ref] = true
		}
		assert.Len(t, distinct, 3, "favorites are sampled without replacement")
	}
}

func TestSpawnPeersFavoritesCappedByPlaces(t *testing.T) {
	w := newTestWorld(t, 21, nil)
	SpawnPlaces(w, 2)
	peer := SpawnPeers(w, 1, 5)[0]

	fav, ok := w.Components.Favorites.GetComponent(peer)
	require.True(t, ok)
	assert.Len(t, fav.Places, 2)
}

func TestSpawnPeersWithoutFavorites(t *testing.T) {
	w := newTestWorld(t, 21, nil)
	SpawnPlaces(w, 3)
	peers := SpawnPeers(w, 5, 0)
	for _, p := range peers {
		assert.False(t, w.Components.Favorites.HasEntity(p))
	}
}

func TestSpawnDeterministicForSeed(t *testing.T) {
	layout := func() []float32 {
		w := newTestWorld(t, 77, nil)
		var out []float32
		for _, e := range append(SpawnPlaces(w, 5), SpawnPeers(w, 5, 2)...) {
			pos := posOf(t, w, e)
			out = append(out, pos.X, pos.Y)
		}
		return out
	}
	assert.Equal(t, layout(), layout())
}

func TestSimulationConvergesToFavorites(t *testing.T) {
	w := newTestWorld(t, 8, nil)
	SpawnPlaces(w, 10)
	peers := SpawnPeers(w, 100, 3)

	for i := 0; i < 600; i++ {
		w.Tick(parameter.TickInterval)
	}

	for _, peer := range peers {
		route := routeOf(t, w, peer)
		if route.State != component.RouteEnRoute {
			continue
		}
		fav, _ := w.Components.Favorites.GetComponent(peer)
		assert.Contains(t, fav.Places, route.Place)
	}
	assert.Positive(t, statusOf(w).Ints.Get(status.KeyArrivals).Load())
}

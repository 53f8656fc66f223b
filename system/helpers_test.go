package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lixenwraith/wander/component"
	"github.com/lixenwraith/wander/core"
	"github.com/lixenwraith/wander/engine"
	"github.com/lixenwraith/wander/event"
	"github.com/lixenwraith/wander/status"
	"github.com/lixenwraith/wander/vmath"
)

// newTestWorld builds a seeded world; tweak runs before systems cache the policy
func newTestWorld(t *testing.T, seed uint64, tweak func(*engine.SimResource)) *engine.World {
	t.Helper()
	w := engine.NewWorld()
	engine.AddResource(w.Resources, &engine.RandResource{Source: vmath.NewSharedRand(seed)})
	if tweak != nil {
		tweak(engine.GetResourceStore(w).Sim)
	}
	Install(w, nil)
	require.Len(t, w.Systems(), 3)
	return w
}

func addPlace(w *engine.World, x, y float32) core.Entity {
	return engine.With(w.NewEntity().At(vmath.Vec2{X: x, Y: y}), w.Components.Place, component.PlaceComponent{}).Build()
}

func addPeer(w *engine.World, x, y float32, route component.RouteComponent, favorites ...core.Entity) core.Entity {
	eb := w.NewEntity().At(vmath.Vec2{X: x, Y: y})
	engine.With(eb, w.Components.Peer, component.PeerComponent{})
	engine.With(eb, w.Components.Route, route)
	if len(favorites) > 0 {
		engine.With(eb, w.Components.Favorites, component.FavoritesComponent{Places: favorites})
	}
	return eb.Build()
}

func routeOf(t *testing.T, w *engine.World, e core.Entity) component.RouteComponent {
	t.Helper()
	r, ok := w.Components.Route.GetComponent(e)
	require.True(t, ok, "peer %d has no route", e)
	return r
}

func posOf(t *testing.T, w *engine.World, e core.Entity) vmath.Vec2 {
	t.Helper()
	p, ok := w.Positions.Vec(e)
	require.True(t, ok, "entity %d has no position", e)
	return p
}

func eventsOf(events []event.GameEvent, typ event.EventType) []event.GameEvent {
	var out []event.GameEvent
	for _, ev := range events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

const second = time.Second

func statusOf(w *engine.World) *status.Registry {
	return engine.GetResourceStore(w).Status
}

func zapNop() *zap.Logger {
	return zap.NewNop()
}

package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/wander/component"
	"github.com/lixenwraith/wander/engine"
	"github.com/lixenwraith/wander/event"
	"github.com/lixenwraith/wander/status"
	"github.com/lixenwraith/wander/vmath"
)

func TestRouteArrivalClearsDestination(t *testing.T) {
	w := newTestWorld(t, 7, nil)
	place := addPlace(w, 100, 0)
	peer := addPeer(w, 0, 0, component.EnRoute(place, vmath.Vec2{X: 100, Y: 0}))

	w.Tick(second)

	assert.Equal(t, vmath.Vec2{X: 100, Y: 0}, posOf(t, w, peer), "snap must land exactly on the target")
	_, active := routeOf(t, w, peer).Destination()
	assert.False(t, active, "reached destination must be cleared by the route pass")

	arrived := eventsOf(w.ConsumeEvents(), event.EventPeerArrived)
	require.Len(t, arrived, 1)
	payload := arrived[0].Payload.(event.ArrivedPayload)
	assert.Equal(t, peer, payload.Peer)
	assert.Equal(t, place, payload.Place)
	assert.Equal(t, int64(1), arrived[0].Frame)

	// Idle at the start of the next pass, so it is re-targeted there
	w.Tick(second)
	route := routeOf(t, w, peer)
	assert.Equal(t, component.RouteEnRoute, route.State)
	assert.Equal(t, place, route.Place)
	assert.Equal(t, vmath.Vec2{X: 100, Y: 0}, route.Target)
}

func TestRouteRetargetSamePass(t *testing.T) {
	w := newTestWorld(t, 7, func(s *engine.SimResource) { s.RetargetSamePass = true })
	place := addPlace(w, 100, 0)
	peer := addPeer(w, 0, 0, component.EnRoute(place, vmath.Vec2{X: 100, Y: 0}))

	w.Tick(second)

	route := routeOf(t, w, peer)
	assert.Equal(t, component.RouteEnRoute, route.State, "cleared peer must be assigned within the same pass")

	events := w.ConsumeEvents()
	require.Len(t, events, 2)
	assert.Equal(t, event.EventPeerArrived, events[0].Type)
	assert.Equal(t, event.EventPeerRetargeted, events[1].Type)
}

func TestRouteStaysEnRouteBeforeArrival(t *testing.T) {
	w := newTestWorld(t, 7, nil)
	place := addPlace(w, 300, 0)
	peer := addPeer(w, 0, 0, component.EnRoute(place, vmath.Vec2{X: 300, Y: 0}))

	w.Tick(second)

	assert.Equal(t, vmath.Vec2{X: 100, Y: 0}, posOf(t, w, peer))
	route := routeOf(t, w, peer)
	assert.Equal(t, component.RouteEnRoute, route.State)
	assert.Equal(t, vmath.Vec2{X: 300, Y: 0}, route.Target)
	assert.Empty(t, eventsOf(w.ConsumeEvents(), event.EventPeerArrived))
}

func TestRouteIdlePeerGetsTarget(t *testing.T) {
	w := newTestWorld(t, 11, nil)
	place := addPlace(w, -50, 25)
	peer := addPeer(w, 10, 10, component.Idle())

	w.Tick(second)

	// Motion runs before targeting, so the peer has not moved yet
	assert.Equal(t, vmath.Vec2{X: 10, Y: 10}, posOf(t, w, peer))
	route := routeOf(t, w, peer)
	assert.Equal(t, component.EnRoute(place, vmath.Vec2{X: -50, Y: 25}), route)

	retargeted := eventsOf(w.ConsumeEvents(), event.EventPeerRetargeted)
	require.Len(t, retargeted, 1)
	payload := retargeted[0].Payload.(event.RetargetedPayload)
	assert.Equal(t, 1, payload.Candidates)
}

func TestRouteNoCandidatesIsStable(t *testing.T) {
	w := newTestWorld(t, 3, nil)
	peer := addPeer(w, 5, -5, component.Idle())
	reg := statusOf(w)

	for i := 0; i < 5; i++ {
		w.Tick(second)
		assert.Equal(t, vmath.Vec2{X: 5, Y: -5}, posOf(t, w, peer))
		assert.Equal(t, component.RouteIdle, routeOf(t, w, peer).State)
	}

	starved := eventsOf(w.ConsumeEvents(), event.EventPeerStarved)
	assert.Len(t, starved, 1, "starvation is reported once per transition")
	assert.Equal(t, int64(1), reg.Ints.Get(status.KeyStarved).Load())

	// A place appearing later ends starvation
	addPlace(w, 0, 0)
	w.Tick(second)
	assert.Equal(t, component.RouteEnRoute, routeOf(t, w, peer).State)
	assert.Equal(t, int64(0), reg.Ints.Get(status.KeyStarved).Load())
}

func TestRouteZeroDistanceTargetArrivesImmediately(t *testing.T) {
	w := newTestWorld(t, 3, nil)
	place := addPlace(w, 42, 42)
	peer := addPeer(w, 42, 42, component.EnRoute(place, vmath.Vec2{X: 42, Y: 42}))

	w.Tick(second)

	assert.Equal(t, vmath.Vec2{X: 42, Y: 42}, posOf(t, w, peer))
	assert.Equal(t, component.RouteIdle, routeOf(t, w, peer).State)
}

func TestRouteCounters(t *testing.T) {
	w := newTestWorld(t, 5, nil)
	addPlace(w, 50, 0)
	addPlace(w, -50, 0)
	for i := 0; i < 4; i++ {
		addPeer(w, 0, 0, component.Idle())
	}
	reg := statusOf(w)

	w.Tick(second)
	assert.Equal(t, int64(4), reg.Ints.Get(status.KeyRetargets).Load())
	assert.Equal(t, int64(4), reg.Ints.Get(status.KeyEnRoute).Load())
	assert.Equal(t, int64(0), reg.Ints.Get(status.KeyIdle).Load())

	// Every target is 50 away, one second at speed 100 reaches all of them
	w.Tick(second)
	assert.Equal(t, int64(4), reg.Ints.Get(status.KeyArrivals).Load())
	assert.Equal(t, int64(4), reg.Ints.Get(status.KeyIdle).Load())
	assert.InDelta(t, 200.0, reg.Floats.Get(status.KeyDistance).Get(), 1e-3)
	assert.InDelta(t, 2.0, reg.Floats.Get(status.KeySimSeconds).Get(), 1e-9)
}

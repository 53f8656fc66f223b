package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/wander/component"
	"github.com/lixenwraith/wander/core"
	"github.com/lixenwraith/wander/event"
	"github.com/lixenwraith/wander/vmath"
)

type recordingSystem struct {
	name     string
	priority int
	log      *[]string
	onUpdate func()
}

func (s *recordingSystem) Name() string  { return s.name }
func (s *recordingSystem) Priority() int { return s.priority }
func (s *recordingSystem) Update() {
	*s.log = append(*s.log, s.name)
	if s.onUpdate != nil {
		s.onUpdate()
	}
}

func TestWorldSystemsRunInPriorityOrder(t *testing.T) {
	w := NewWorld()
	var log []string
	w.AddSystem(&recordingSystem{name: "route", priority: 200, log: &log})
	w.AddSystem(&recordingSystem{name: "diag", priority: 1000, log: &log})
	w.AddSystem(&recordingSystem{name: "motion", priority: 100, log: &log})
	w.AddSystem(&recordingSystem{name: "motion2", priority: 100, log: &log})

	w.Tick(time.Second)

	assert.Equal(t, []string{"motion", "motion2", "route", "diag"}, log)
	names := make([]string, 0, 4)
	for _, s := range w.Systems() {
		names = append(names, s.Name())
	}
	assert.Equal(t, log, names)
}

func TestWorldTickUpdatesTime(t *testing.T) {
	w := NewWorld()
	res := GetResourceStore(w)

	var seen []float32
	w.AddSystem(&recordingSystem{name: "probe", log: new([]string), onUpdate: func() {
		seen = append(seen, res.Time.DeltaSeconds())
	}})

	w.Tick(500 * time.Millisecond)
	w.Tick(-time.Second)
	w.Tick(250 * time.Millisecond)

	assert.Equal(t, []float32{0.5, 0, 0.25}, seen)
	assert.Equal(t, int64(3), w.FrameNumber())
	assert.Equal(t, int64(3), res.Time.FrameNumber)
	assert.Equal(t, 750*time.Millisecond, res.Time.SimTime)
}

func TestWorldDestroyEntity(t *testing.T) {
	w := NewWorld()
	eb := w.NewEntity().At(vmath.Vec2{X: 1})
	With(eb, w.Components.Peer, component.PeerComponent{})
	With(eb, w.Components.Route, component.Idle())
	e := eb.Build()

	w.DestroyEntity(e)

	assert.False(t, w.Positions.HasEntity(e))
	assert.False(t, w.Components.Peer.HasEntity(e))
	assert.False(t, w.Components.Route.HasEntity(e))
}

func TestWorldClear(t *testing.T) {
	w := NewWorld()
	With(w.NewEntity().At(vmath.Vec2{}), w.Components.Place, component.PlaceComponent{}).Build()
	w.Clear()

	assert.Zero(t, w.Positions.CountEntities())
	assert.Zero(t, w.Components.Place.CountEntities())
	assert.Equal(t, core.Entity(1), w.CreateEntity(), "ids restart after clear")
}

func TestWorldEventsStampedWithFrame(t *testing.T) {
	w := NewWorld()
	w.AddSystem(&recordingSystem{name: "emit", log: new([]string), onUpdate: func() {
		w.PushEvent(event.EventPeerStarved, event.StarvedPayload{Peer: 7})
	}})

	w.Tick(time.Millisecond)
	w.Tick(time.Millisecond)

	events := w.ConsumeEvents()
	require.Len(t, events, 2)
	assert.Equal(t, int64(1), events[0].Frame)
	assert.Equal(t, int64(2), events[1].Frame)
	assert.Nil(t, w.ConsumeEvents())
}

func TestEntityBuilderPanicsAfterBuild(t *testing.T) {
	w := NewWorld()
	eb := w.NewEntity()
	eb.Build()
	assert.Panics(t, func() { eb.At(vmath.Vec2{}) })
	assert.Panics(t, func() { With(eb, w.Components.Peer, component.PeerComponent{}) })
}

func TestResourceStore(t *testing.T) {
	rs := NewResourceStore()
	_, ok := GetResource[*SimResource](rs)
	assert.False(t, ok)
	assert.Panics(t, func() { MustGetResource[*SimResource](rs) })

	sim := &SimResource{Speed: 5}
	AddResource(rs, sim)
	got, ok := GetResource[*SimResource](rs)
	require.True(t, ok)
	assert.Same(t, sim, got)
}

func TestSnapshotReflectsRoutes(t *testing.T) {
	w := NewWorld()
	place := With(w.NewEntity().At(vmath.Vec2{X: 10}), w.Components.Place, component.PlaceComponent{}).Build()

	idle := w.NewEntity().At(vmath.Vec2{X: 1})
	With(idle, w.Components.Peer, component.PeerComponent{})
	With(idle, w.Components.Route, component.Idle())
	idleID := idle.Build()

	moving := w.NewEntity().At(vmath.Vec2{X: 2})
	With(moving, w.Components.Peer, component.PeerComponent{})
	With(moving, w.Components.Route, component.EnRoute(place, vmath.Vec2{X: 10}))
	movingID := moving.Build()

	snap := w.Snapshot()
	require.Len(t, snap.Places, 1)
	assert.Equal(t, PlaceView{Entity: place, Pos: vmath.Vec2{X: 10}}, snap.Places[0])
	require.Len(t, snap.Peers, 2)
	assert.Equal(t, PeerView{Entity: idleID, Pos: vmath.Vec2{X: 1}}, snap.Peers[0])
	assert.Equal(t, PeerView{
		Entity: movingID,
		Pos:    vmath.Vec2{X: 2},
		State:  component.RouteEnRoute,
		Target: vmath.Vec2{X: 10},
		Place:  place,
	}, snap.Peers[1])
}

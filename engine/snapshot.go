package engine

import (
	"time"

	"github.com/lixenwraith/wander/component"
	"github.com/lixenwraith/wander/core"
	"github.com/lixenwraith/wander/event"
	"github.com/lixenwraith/wander/vmath"
)

// PlaceView is a read-only copy of a place for observers
type PlaceView struct {
	Entity core.Entity
	Pos    vmath.Vec2
}

// PeerView is a read-only copy of a peer for observers
type PeerView struct {
	Entity core.Entity
	Pos    vmath.Vec2
	State  component.RouteState
	Target vmath.Vec2  // Zero when idle
	Place  core.Entity // 0 when idle
}

// Snapshot is the settled state of the world after a tick
// Observers receive it after integration and re-targeting have both completed
type Snapshot struct {
	Frame   int64
	Delta   time.Duration
	SimTime time.Duration
	Places  []PlaceView
	Peers   []PeerView
	Events  []event.GameEvent
}

// SnapshotLocked copies positions and routes; caller must hold the update lock
func (w *World) SnapshotLocked() Snapshot {
	snap := Snapshot{
		Frame:   w.timeRes.FrameNumber,
		Delta:   w.timeRes.DeltaTime,
		SimTime: w.timeRes.SimTime,
	}

	places := w.Query().With(w.Components.Place).With(w.Positions).Execute()
	snap.Places = make([]PlaceView, 0, len(places))
	for _, e := range places {
		pos, _ := w.Positions.Vec(e)
		snap.Places = append(snap.Places, PlaceView{Entity: e, Pos: pos})
	}

	peers := w.Query().With(w.Components.Peer).With(w.Positions).Execute()
	snap.Peers = make([]PeerView, 0, len(peers))
	for _, e := range peers {
		pos, _ := w.Positions.Vec(e)
		view := PeerView{Entity: e, Pos: pos}
		if route, ok := w.Components.Route.GetComponent(e); ok {
			if target, enRoute := route.Destination(); enRoute {
				view.State = component.RouteEnRoute
				view.Target = target
				view.Place = route.Place
			}
		}
		snap.Peers = append(snap.Peers, view)
	}

	return snap
}

// Snapshot copies the world state under the update lock
func (w *World) Snapshot() Snapshot {
	var snap Snapshot
	w.RunSafe(func() {
		snap = w.SnapshotLocked()
	})
	return snap
}

package network

import (
	"github.com/lixenwraith/wander/engine"
	"github.com/lixenwraith/wander/parameter"
	"github.com/lixenwraith/wander/vmath"
)

// Message types sent to observers
const (
	MsgHello = "HELLO"
	MsgFrame = "FRAME"
)

// HelloMsg is the first message of every session
type HelloMsg struct {
	Type            string  `json:"type"`
	ProtocolVersion string  `json:"protocol_version"`
	RunID           string  `json:"run_id"`
	Extent          float32 `json:"extent"`
	MaxFPS          int     `json:"max_fps"`
}

// FrameMsg is the settled world state after one tick
type FrameMsg struct {
	Type       string     `json:"type"`
	Frame      int64      `json:"frame"`
	SimSeconds float64    `json:"sim_seconds"`
	Places     []PlaceMsg `json:"places"`
	Peers      []PeerMsg  `json:"peers"`
	Events     []EventMsg `json:"events,omitempty"`
}

type PlaceMsg struct {
	ID  uint64     `json:"id"`
	Pos vmath.Vec2 `json:"pos"`
}

type PeerMsg struct {
	ID     uint64      `json:"id"`
	Pos    vmath.Vec2  `json:"pos"`
	State  string      `json:"state"`
	Target *vmath.Vec2 `json:"target,omitempty"`
	Place  uint64      `json:"place,omitempty"`
}

type EventMsg struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// NewHello builds the session greeting
func NewHello(runID string, extent float32, maxFPS int) HelloMsg {
	return HelloMsg{
		Type:            MsgHello,
		ProtocolVersion: parameter.ObserverProtocolVersion,
		RunID:           runID,
		Extent:          extent,
		MaxFPS:          maxFPS,
	}
}

// NewFrame converts a snapshot to its wire form
func NewFrame(snap engine.Snapshot) FrameMsg {
	f := FrameMsg{
		Type:       MsgFrame,
		Frame:      snap.Frame,
		SimSeconds: snap.SimTime.Seconds(),
		Places:     make([]PlaceMsg, len(snap.Places)),
		Peers:      make([]PeerMsg, len(snap.Peers)),
	}
	for i, p := range snap.Places {
		f.Places[i] = PlaceMsg{ID: uint64(p.Entity), Pos: p.Pos}
	}
	for i, p := range snap.Peers {
		msg := PeerMsg{ID: uint64(p.Entity), Pos: p.Pos, State: p.State.String()}
		if p.Place != 0 {
			target := p.Target
			msg.Target = &target
			msg.Place = uint64(p.Place)
		}
		f.Peers[i] = msg
	}
	if len(snap.Events) > 0 {
		f.Events = make([]EventMsg, len(snap.Events))
		for i, ev := range snap.Events {
			f.Events[i] = EventMsg{Type: ev.Type.String(), Payload: ev.Payload}
		}
	}
	return f
}

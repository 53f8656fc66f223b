package event

import (
	"github.com/lixenwraith/wander/core"
	"github.com/lixenwraith/wander/vmath"
)

// ArrivedPayload reports the place a peer reached
type ArrivedPayload struct {
	Peer  core.Entity `json:"peer"`
	Place core.Entity `json:"place"`
	At    vmath.Vec2  `json:"at"`
}

// RetargetedPayload reports a newly assigned destination
type RetargetedPayload struct {
	Peer       core.Entity `json:"peer"`
	Place      core.Entity `json:"place"`
	Target     vmath.Vec2  `json:"target"`
	Candidates int         `json:"candidates"`
}

// StarvedPayload reports a peer left idle for lack of candidates
type StarvedPayload struct {
	Peer core.Entity `json:"peer"`
}

package event

// EventType represents the type of simulation event
type EventType int

const (
	// EventPeerArrived marks a peer whose position reached its destination exactly
	// Trigger: RouteSystem arrival check | Payload: ArrivedPayload
	EventPeerArrived EventType = iota

	// EventPeerRetargeted marks an idle peer that received a new destination
	// Trigger: RouteSystem target resolver | Payload: RetargetedPayload
	EventPeerRetargeted

	// EventPeerStarved marks an idle peer that found no candidate place
	// Trigger: RouteSystem target resolver | Payload: StarvedPayload
	EventPeerStarved
)

func (t EventType) String() string {
	switch t {
	case EventPeerArrived:
		return "arrived"
	case EventPeerRetargeted:
		return "retargeted"
	case EventPeerStarved:
		return "starved"
	default:
		return "unknown"
	}
}

// GameEvent is a single event stamped with the frame that produced it
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}

package trace

import (
	"github.com/lixenwraith/wander/component"
	"github.com/lixenwraith/wander/engine"
	"github.com/lixenwraith/wander/event"
)

// TickRecord is one JSONL line of the tick log
type TickRecord struct {
	RunID      string        `json:"run_id"`
	Frame      int64         `json:"frame"`
	DeltaMS    float64       `json:"delta_ms"`
	SimSeconds float64       `json:"sim_seconds"`
	Places     int           `json:"places"`
	Peers      int           `json:"peers"`
	EnRoute    int           `json:"en_route"`
	Events     []EventRecord `json:"events,omitempty"`
}

// EventRecord is a simulation event as written to the log
type EventRecord struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// NewTickRecord summarizes a snapshot; peer positions are not logged
func NewTickRecord(runID string, snap engine.Snapshot) TickRecord {
	rec := TickRecord{
		RunID:      runID,
		Frame:      snap.Frame,
		DeltaMS:    float64(snap.Delta.Microseconds()) / 1000,
		SimSeconds: snap.SimTime.Seconds(),
		Places:     len(snap.Places),
		Peers:      len(snap.Peers),
	}
	for _, p := range snap.Peers {
		if p.State == component.RouteEnRoute {
			rec.EnRoute++
		}
	}
	if len(snap.Events) > 0 {
		rec.Events = make([]EventRecord, len(snap.Events))
		for i, ev := range snap.Events {
			rec.Events[i] = EventRecord{Type: ev.Type.String(), Payload: ev.Payload}
		}
	}
	return rec
}

// arrivals extracts the arrival payloads of a tick
func arrivals(events []event.GameEvent) []event.ArrivedPayload {
	var out []event.ArrivedPayload
	for _, ev := range events {
		if p, ok := ev.Payload.(event.ArrivedPayload); ok {
			out = append(out, p)
		}
	}
	return out
}

package status

// Metric keys written by the simulation systems
const (
	KeyTicks         = "sim.ticks"
	KeyArrivals      = "sim.arrivals"
	KeyRetargets     = "sim.retargets"
	KeyStarved       = "sim.starved"
	KeyEnRoute       = "sim.enroute"
	KeyMoved         = "sim.moved"
	KeyIdle          = "sim.idle"
	KeyDistance      = "sim.distance_travelled"
	KeySimSeconds    = "sim.seconds"
	KeyEventsDropped = "engine.events_dropped"
	KeyPaused        = "engine.paused"
)

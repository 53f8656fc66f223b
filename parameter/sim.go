package parameter

import "time"

// Population defaults
const (
	// DefaultPlaceCount is the size of the fixed place pool created at startup
	DefaultPlaceCount = 10

	// DefaultPeerCount is the size of the fixed peer pool created at startup
	DefaultPeerCount = 100

	// DefaultFavoriteCount is the number of places sampled into each peer's favorites
	DefaultFavoriteCount = 3
)

// Motion
const (
	// PeerSpeed is the peer travel speed in world units per second of simulated time
	PeerSpeed float32 = 100

	// WorldExtent bounds random initial placement to [-WorldExtent, WorldExtent) on each axis
	WorldExtent float32 = 1000
)

// Targeting policy
const (
	// FavoritesEnabled restricts destinations to each peer's favorite places
	FavoritesEnabled = true

	// RetargetSamePass assigns a new destination in the same pass that cleared the old one
	// Off matches the deferred behavior: clear on one pass, assign on the next
	RetargetSamePass = false
)

// Scheduling
const (
	// TickInterval is the real-time scheduler tick interval (~60 Hz)
	TickInterval = 16 * time.Millisecond

	// MaxTickDelta caps the elapsed time fed into a single tick after stalls
	MaxTickDelta = 250 * time.Millisecond

	// MotionWorkers is the default number of goroutines integrating peers, 1 is sequential
	MotionWorkers = 1

	// MotionParallelThreshold is the minimum peers per worker before the motion pass fans out
	MotionParallelThreshold = 256
)

// Event queue
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 2048

	// EventBufferMask is the bitmask for fast modulo operations (2048 - 1)
	EventBufferMask = 2047
)

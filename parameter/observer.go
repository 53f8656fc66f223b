package parameter

import "time"

// Observer stream
const (
	// ObserverAddr is the default loopback listen address for the websocket stream
	ObserverAddr = "127.0.0.1:8787"

	// ObserverMaxFPS caps frames pushed to each subscriber per second
	ObserverMaxFPS = 30

	// ObserverSendBuffer is the per-subscriber frame backlog before frames are dropped
	ObserverSendBuffer = 8

	// ObserverWriteTimeout bounds a single websocket write
	ObserverWriteTimeout = 5 * time.Second

	// ObserverProtocolVersion is the frame protocol revision sent in the hello message
	ObserverProtocolVersion = "1"
)

// Rendering
const (
	// RenderFrameInterval is the terminal redraw interval (~30 FPS)
	RenderFrameInterval = 33 * time.Millisecond
)

// Audio
const (
	// ChimeFrequency is the arrival tone pitch in Hz
	ChimeFrequency = 880.0

	// ChimeDuration is the arrival tone length
	ChimeDuration = 60 * time.Millisecond

	// ChimeMinGap throttles arrival tones when many peers arrive together
	ChimeMinGap = 120 * time.Millisecond

	ChimeAttack  = 5 * time.Millisecond
	ChimeRelease = 45 * time.Millisecond

	// ChimeVolume is the linear gain, 1.0 is unity
	ChimeVolume = 0.4

	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond
)

package audio

import (
	"fmt"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/wander/engine"
	"github.com/lixenwraith/wander/event"
	"github.com/lixenwraith/wander/parameter"
)

// Chime plays a short bell on peer arrivals
// Tones are throttled so a burst of simultaneous arrivals produces a single chime
type Chime struct {
	rate    beep.SampleRate
	play    func(...beep.Streamer)
	limiter *rate.Limiter
	logger  *zap.Logger

	muted  atomic.Bool
	played atomic.Uint64
}

// NewChime initializes the speaker; the error is non-fatal for callers, who run silent
func NewChime(logger *zap.Logger) (*Chime, error) {
	sr := beep.SampleRate(parameter.AudioSampleRate)
	if err := speaker.Init(sr, sr.N(parameter.AudioBufferDuration)); err != nil {
		return nil, fmt.Errorf("speaker init: %w", err)
	}
	return newChime(sr, speaker.Play, logger), nil
}

func newChime(sr beep.SampleRate, play func(...beep.Streamer), logger *zap.Logger) *Chime {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chime{
		rate:    sr,
		play:    play,
		limiter: rate.NewLimiter(rate.Every(parameter.ChimeMinGap), 1),
		logger:  logger.Named("audio"),
	}
}

// Toggle flips mute and returns the new muted state
func (c *Chime) Toggle() bool {
	for {
		old := c.muted.Load()
		if c.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Played returns the number of chimes started
func (c *Chime) Played() uint64 {
	return c.played.Load()
}

// OnTick implements engine.TickObserver
func (c *Chime) OnTick(snap engine.Snapshot) {
	if c.muted.Load() {
		return
	}
	for _, ev := range snap.Events {
		if ev.Type != event.EventPeerArrived {
			continue
		}
		if c.limiter.Allow() {
			c.play(NewBell(c.rate))
			c.played.Add(1)
		}
		return
	}
}

// NewBell builds the arrival tone: a fundamental with an octave overtone
func NewBell(sr beep.SampleRate) beep.Streamer {
	fund := NewOscillator(parameter.ChimeFrequency, parameter.ChimeDuration, WaveSine, sr)
	fundShaped := NewEnvelope(fund, parameter.ChimeDuration, parameter.ChimeAttack, parameter.ChimeRelease, sr)

	over := NewOscillator(parameter.ChimeFrequency*2, parameter.ChimeDuration, WaveSine, sr)
	overShaped := NewEnvelope(over, parameter.ChimeDuration, parameter.ChimeAttack, parameter.ChimeRelease/2, sr)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
	return beep.Take(sr.N(parameter.ChimeDuration), newVolume(mixed, parameter.ChimeVolume))
}

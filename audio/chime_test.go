package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/wander/engine"
	"github.com/lixenwraith/wander/event"
	"github.com/lixenwraith/wander/parameter"
)

const testRate = beep.SampleRate(parameter.AudioSampleRate)

// drain reads s to the end, giving up after a second of audio
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for total < testRate.N(time.Second) {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			break
		}
	}
	return total, peak
}

func TestOscillatorLength(t *testing.T) {
	osc := NewOscillator(440, 10*time.Millisecond, WaveSine, testRate)
	n, peak := drain(osc)
	assert.Equal(t, testRate.N(10*time.Millisecond), n)
	assert.LessOrEqual(t, peak, 1.0)
	assert.Greater(t, peak, 0.9)
}

func TestSquareWaveLevels(t *testing.T) {
	osc := NewOscillator(100, 5*time.Millisecond, WaveSquare, testRate)
	buf := make([][2]float64, 64)
	n, ok := osc.Stream(buf)
	require.True(t, ok)
	for i := 0; i < n; i++ {
		assert.Equal(t, 1.0, math.Abs(buf[i][0]))
	}
}

func TestEnvelopeShapesEdges(t *testing.T) {
	d := 20 * time.Millisecond
	env := NewEnvelope(NewOscillator(0, d, WaveSquare, testRate), d, 5*time.Millisecond, 5*time.Millisecond, testRate)

	buf := make([][2]float64, testRate.N(d))
	n, _ := env.Stream(buf)
	require.Equal(t, len(buf), n)
	assert.Zero(t, buf[0][0], "attack starts from silence")
	assert.Equal(t, 1.0, buf[n/2][0], "sustain is unity")
	assert.Less(t, buf[n-1][0], 0.05, "release fades out")
}

func TestBellIsBounded(t *testing.T) {
	n, peak := drain(NewBell(testRate))
	assert.Equal(t, testRate.N(parameter.ChimeDuration), n)
	assert.Greater(t, peak, 0.0)
	assert.LessOrEqual(t, peak, parameter.ChimeVolume+1e-9)
}

func TestChimeThrottlesArrivals(t *testing.T) {
	var played int
	c := newChime(testRate, func(...beep.Streamer) { played++ }, nil)

	arrival := engine.Snapshot{Events: []event.GameEvent{
		{Type: event.EventPeerArrived},
		{Type: event.EventPeerArrived},
	}}
	quiet := engine.Snapshot{Events: []event.GameEvent{{Type: event.EventPeerRetargeted}}}

	c.OnTick(quiet)
	assert.Zero(t, played)

	c.OnTick(arrival)
	c.OnTick(arrival)
	assert.Equal(t, 1, played, "arrivals within the minimum gap share one chime")
	assert.Equal(t, uint64(1), c.Played())

	assert.True(t, c.Toggle())
	time.Sleep(parameter.ChimeMinGap + 10*time.Millisecond)
	c.OnTick(arrival)
	assert.Equal(t, 1, played, "muted chime stays silent")

	assert.False(t, c.Toggle())
	c.OnTick(arrival)
	assert.Equal(t, 2, played)
}

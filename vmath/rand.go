package vmath

import (
	"sync"
	"time"
)

// RandSource is the uniform random generator used for placement and destination selection
type RandSource interface {
	// Intn returns a uniform int in [0, n), 0 when n <= 0
	Intn(n int) int
	// Float32 returns a uniform float32 in [0, 1)
	Float32() float32
}

// FastRand is a xorshift64 generator, not safe for concurrent use
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Intn uses multiply-shift reduction on the high 32 bits to avoid modulo bias on small n
func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if n <= 1<<31 {
		return int(((r.Next() >> 32) * uint64(n)) >> 32)
	}
	return int(r.Next() % uint64(n))
}

// Float32 uses the top 24 bits so every value is exactly representable
func (r *FastRand) Float32() float32 {
	return float32(r.Next()>>40) / (1 << 24)
}

// SharedRand serializes access to an underlying source for process-wide use
type SharedRand struct {
	mu  sync.Mutex
	src RandSource
}

// NewSharedRand wraps src, a zero seed derives one from the clock
func NewSharedRand(seed uint64) *SharedRand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &SharedRand{src: NewFastRand(seed)}
}

// WrapRand makes an existing source safe for concurrent use
func WrapRand(src RandSource) *SharedRand {
	return &SharedRand{src: src}
}

func (s *SharedRand) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Intn(n)
}

func (s *SharedRand) Float32() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Float32()
}

// RandRange returns a uniform float32 in [lo, hi)
func RandRange(rng RandSource, lo, hi float32) float32 {
	v := lo + rng.Float32()*(hi-lo)
	// Rounding can land exactly on hi for wide ranges
	if v >= hi {
		return lo
	}
	return v
}

// RandPoint returns a point with both axes uniform in [-extent, extent)
func RandPoint(rng RandSource, extent float32) Vec2 {
	return Vec2{
		X: RandRange(rng, -extent, extent),
		Y: RandRange(rng, -extent, extent),
	}
}

// SampleIndices picks min(k, n) distinct indices from [0, n) using a partial Fisher-Yates shuffle
func SampleIndices(rng RandSource, n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k:k]
}

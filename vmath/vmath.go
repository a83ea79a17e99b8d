package vmath

import (
	"math"
	"math/rand/v2"
)

// Epsilon is the arrival and containment tolerance in tile units
const Epsilon = 1e-6

// TwoPi is a full rotation in radians
const TwoPi = 2 * math.Pi

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// EaseInOut is a smoothstep curve mapping [0,1] to [0,1]
func EaseInOut(t float64) float64 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// NormalizeAngle wraps an angle into [0, 2π)
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	return a
}

// AngleDiff returns the signed shortest rotation from a to b, range (-π, π]
func AngleDiff(a, b float64) float64 {
	d := NormalizeAngle(b - a)
	if d > math.Pi {
		d -= TwoPi
	}
	return d
}

// AngleInArc reports whether angle lies within halfWidth of center
func AngleInArc(angle, center, halfWidth float64) bool {
	if halfWidth >= math.Pi {
		return true
	}
	return math.Abs(AngleDiff(center, angle)) <= halfWidth+Epsilon
}

// RandRange returns a uniform sample from [lo, hi)
func RandRange(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// RandSigned returns a uniform sample from [-1, 1)
func RandSigned(rng *rand.Rand) float64 {
	return rng.Float64()*2 - 1
}

// NewRand creates a deterministic PCG-backed generator for a seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RNG is a PCG generator whose state can be saved and restored
// Optimizers restore it when a step is abandoned
type RNG struct {
	*rand.Rand
	src *rand.PCG
}

// NewRNG creates a generator seeded the same way as NewRand
func NewRNG(seed uint64) *RNG {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &RNG{Rand: rand.New(src), src: src}
}

// Save returns the generator state
func (r *RNG) Save() []byte {
	b, err := r.src.MarshalBinary()
	if err != nil {
		panic(err)
	}
	return b
}

// Restore rewinds the generator to a state returned by Save
func (r *RNG) Restore(state []byte) {
	if err := r.src.UnmarshalBinary(state); err != nil {
		panic(err)
	}
}

// Package noise - deterministic random sources for noise injection.
//
// Goals:
//   - Determinism: same seed ⇒ identical augmentation runs.
//   - Injectability: callers may pass any Source; nothing here reads
//     system entropy or the clock.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. A Source belongs to one run.
package noise

import "math/rand"

// defaultSeed is used when callers pass seed==0.
// The value is arbitrary but stable to keep reproducible defaults.
const defaultSeed int64 = 1

// Source yields uniform floats in [0,1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultSeed; otherwise the seed is used verbatim.
func NewSource(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultSeed
	}
	return rand.New(rand.NewSource(s))
}

// Uniform draws from U[lo, hi) using src.
func Uniform(src Source, lo, hi float64) float64 {
	return lo + (hi-lo)*src.Float64()
}

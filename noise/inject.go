package noise

import (
	"fmt"
	"math"

	"github.com/katalvlaran/timbretag/patch"
)

// DefaultAmplitude bounds the perturbation: every channel moves by a value
// drawn from U[-DefaultAmplitude, DefaultAmplitude].
const DefaultAmplitude = 0.15

// Injector perturbs copies of a category with bounded uniform noise.
// Results are NOT clamped to [0,1]; values just outside the unit range are
// an accepted side effect of augmentation.
type Injector struct {
	src       Source
	amplitude float64
}

// Option configures an Injector.
type Option func(*Injector)

// WithAmplitude overrides DefaultAmplitude. Panics on a negative or
// non-finite amplitude (programmer error).
func WithAmplitude(a float64) Option {
	if a < 0 || math.IsNaN(a) || math.IsInf(a, 0) {
		panic("noise: WithAmplitude: amplitude must be finite and non-negative")
	}
	return func(in *Injector) { in.amplitude = a }
}

// NewInjector builds an Injector drawing from src.
// A nil src falls back to NewSource(0).
func NewInjector(src Source, opts ...Option) *Injector {
	if src == nil {
		src = NewSource(0)
	}
	in := &Injector{src: src, amplitude: DefaultAmplitude}
	for _, o := range opts {
		o(in)
	}
	return in
}

// Amplitude returns the configured perturbation bound.
func (in *Injector) Amplitude() float64 { return in.amplitude }

// Perturb returns a noisy deep copy of vs; vs itself is left untouched.
func (in *Injector) Perturb(vs []patch.Vector) []patch.Vector {
	out := patch.CloneAll(vs)
	for _, v := range out {
		for k := range v {
			v[k] += Uniform(in.src, -in.amplitude, in.amplitude)
		}
	}
	return out
}

// Expand returns repeats noisy copies of vs, concatenated copy after copy,
// so the result holds exactly repeats*len(vs) vectors. The loop is sized by
// vs alone. An empty vs yields nil.
//
// Errors:
//   - patch.ErrInvalidConfiguration: repeats < 1.
func (in *Injector) Expand(vs []patch.Vector, repeats int) ([]patch.Vector, error) {
	if repeats < 1 {
		return nil, fmt.Errorf("noise: %w: repeats=%d, want ≥ 1", patch.ErrInvalidConfiguration, repeats)
	}
	if len(vs) == 0 {
		return nil, nil
	}
	out := make([]patch.Vector, 0, repeats*len(vs))
	for r := 0; r < repeats; r++ {
		out = append(out, in.Perturb(vs)...)
	}
	return out, nil
}

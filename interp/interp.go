package interp

import (
	"fmt"

	"github.com/katalvlaran/timbretag/patch"
	"github.com/katalvlaran/timbretag/rank"
)

// MinScaleFactor is the smallest accepted scale factor; 1 is the
// degenerate anchor-only case.
const MinScaleFactor = 1

// Interpolator expands one domain's categories.
type Interpolator struct {
	domain   patch.Domain
	channels []int // nil ⇒ every channel of the input
}

// Option configures an Interpolator.
type Option func(*Interpolator)

// WithChannels restricts interpolation to the given channel positions, in
// the given order. Channels left out are carried from the leading anchor.
func WithChannels(idx ...int) Option {
	sel := append([]int(nil), idx...)
	return func(in *Interpolator) { in.channels = sel }
}

// WithAllChannels interpolates every channel of the input vectors.
func WithAllChannels() Option {
	return func(in *Interpolator) { in.channels = nil }
}

// New builds an Interpolator for d with the domain's default selection.
func New(d patch.Domain, opts ...Option) *Interpolator {
	switch d {
	case patch.Temporal:
		return NewTemporal(opts...)
	default:
		return NewSpectral(opts...)
	}
}

// Domain returns the domain this interpolator serves.
func (in *Interpolator) Domain() patch.Domain { return in.domain }

// Channels returns the explicit selection, or nil when every channel is used.
func (in *Interpolator) Channels() []int {
	if in.channels == nil {
		return nil
	}
	return append([]int(nil), in.channels...)
}

// anchorPair names two magnitude-adjacent positions of a ranking.
type anchorPair struct{ lead, next int }

// anchorPairs lists the n-1 adjacent pairs of n ranked vectors. Every pair
// the expansion visits comes from here, so no index past n-1 is formed.
func anchorPairs(n int) []anchorPair {
	if n < 2 {
		return nil
	}
	pairs := make([]anchorPair, n-1)
	for i := range pairs {
		pairs[i] = anchorPair{lead: i, next: i + 1}
	}
	return pairs
}

// Interpolate expands a ranked category by scaleFactor samples per pair.
// The ranking's vectors are never modified; every output vector is new.
// Within a pair, sample k=0 equals the leading (higher-magnitude) anchor on
// every selected channel and, when s > 1, sample k=s-1 equals the lower one.
//
// Errors:
//   - patch.ErrInvalidConfiguration: scaleFactor < MinScaleFactor.
//   - patch.ErrInsufficientData    : fewer than two vectors, or a ranking
//     whose magnitudes do not match its vectors.
//   - patch.ErrChannelMismatch     : mixed widths or a selected channel
//     outside the vector width.
//
// Complexity: O(n·s·w) time and space for n vectors of width w.
func (in *Interpolator) Interpolate(r rank.Ranking, scaleFactor int) ([]patch.Vector, error) {
	if scaleFactor < MinScaleFactor {
		return nil, fmt.Errorf("interp: %w: scale factor %d, want ≥ %d",
			patch.ErrInvalidConfiguration, scaleFactor, MinScaleFactor)
	}
	n := len(r.Vectors)
	if n < 2 {
		return nil, fmt.Errorf("interp: %s: %w: %d vectors, need at least 2 anchors",
			in.domain, patch.ErrInsufficientData, n)
	}
	if len(r.Magnitudes) != n {
		return nil, fmt.Errorf("interp: %w: %d vectors but %d magnitudes",
			patch.ErrInsufficientData, n, len(r.Magnitudes))
	}
	w, err := patch.UniformWidth(r.Vectors)
	if err != nil {
		return nil, fmt.Errorf("interp: %w", err)
	}
	channels, err := in.resolve(w)
	if err != nil {
		return nil, err
	}

	pairs := anchorPairs(n)

	// Stage 1+2: one interpolated sequence per selected channel.
	series := make([][]float64, len(channels))
	for ci, ch := range channels {
		series[ci] = expandChannel(patch.Column(r.Vectors, ch), r.Magnitudes, pairs, scaleFactor)
	}

	// Stage 3: reassemble, pair-major.
	out := make([]patch.Vector, 0, len(pairs)*scaleFactor)
	for pi, p := range pairs {
		for k := 0; k < scaleFactor; k++ {
			v := r.Vectors[p.lead].Clone()
			j := pi*scaleFactor + k
			for ci, ch := range channels {
				v[ch] = series[ci][j]
			}
			out = append(out, v)
		}
	}
	return out, nil
}

// resolve returns the channel positions to interpolate for width w.
func (in *Interpolator) resolve(w int) ([]int, error) {
	if in.channels == nil {
		all := make([]int, w)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	for _, ch := range in.channels {
		if ch < 0 || ch >= w {
			return nil, fmt.Errorf("interp: %s: %w: selected channel %d, vectors have %d channels",
				in.domain, patch.ErrChannelMismatch, ch, w)
		}
	}
	return in.channels, nil
}

// expandChannel interpolates one channel across every anchor pair and
// clamps to the channel's range over the whole category.
func expandChannel(values, mags []float64, pairs []anchorPair, s int) []float64 {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	out := make([]float64, 0, len(pairs)*s)
	for _, p := range pairs {
		x0, x1 := mags[p.lead], mags[p.next]
		y0, y1 := values[p.lead], values[p.next]
		for k := 0; k < s; k++ {
			t := step(k, s)
			x := x0 + (x1-x0)*t
			y := line(x0, y0, x1, y1, x, t)
			out = append(out, clamp(y, lo, hi))
		}
	}
	return out
}

// step returns k/(s-1), or 0 for the single-sample case.
func step(k, s int) float64 {
	if s <= 1 {
		return 0
	}
	return float64(k) / float64(s-1)
}

// line evaluates the straight line through (x0,y0) and (x1,y1) at x.
// When both anchors share a magnitude, t (the sample's parametric position)
// stands in for the undefined slope.
func line(x0, y0, x1, y1, x, t float64) float64 {
	if x1 != x0 {
		t = (x - x0) / (x1 - x0)
	}
	return y0 + (y1-y0)*t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

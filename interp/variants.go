package interp

import "github.com/katalvlaran/timbretag/patch"

// DefaultSpectralChannels is the spectral selection: frequency, emphasis,
// contour and modulation mix. OscDetune is stored but carried unchanged.
var DefaultSpectralChannels = []string{
	patch.FilterFrequency,
	patch.FilterEmphasis,
	patch.FilterContour,
	patch.OscModMix,
}

// NewSpectral returns the spectral-domain interpolator. Without options it
// interpolates DefaultSpectralChannels.
func NewSpectral(opts ...Option) *Interpolator {
	sel, _ := patch.ChannelIndices(patch.Spectral, DefaultSpectralChannels)
	in := &Interpolator{domain: patch.Spectral, channels: sel}
	for _, o := range opts {
		o(in)
	}
	return in
}

// NewTemporal returns the temporal-domain interpolator. Without options it
// interpolates every envelope channel.
func NewTemporal(opts ...Option) *Interpolator {
	in := &Interpolator{domain: patch.Temporal}
	for _, o := range opts {
		o(in)
	}
	return in
}

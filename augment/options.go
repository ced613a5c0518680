// SPDX-License-Identifier: MIT

// Package augment: functional configuration for the Engine.
//
// Defaults live in one place (constants below). WithX constructors panic
// only on values that can never be meaningful (nil logger, nil source);
// run-level settings that may come from user configuration (scale factor,
// mode, channel selection) are validated by Run and reported as
// patch.ErrInvalidConfiguration instead.
package augment

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/timbretag/noise"
	"github.com/katalvlaran/timbretag/outlier"
)

// ---------- Defaults ----------

const (
	// DefaultMode is the strategy used when WithMode is not given.
	DefaultMode = Interpolate

	// DefaultScaleFactor is the number of samples per anchor pair
	// (Interpolate) or noisy copies per category (InjectNoise).
	DefaultScaleFactor = 3

	// DefaultSeed feeds noise.NewSource; 0 maps to the package default seed.
	DefaultSeed int64 = 0
)

const (
	panicNilLogger = "augment: WithLogger: logger must not be nil"
	panicNilSource = "augment: WithSource: source must not be nil"
)

// ---------- Option type ----------

// Option mutates engine options.
type Option func(*Options)

// Options is the resolved engine configuration.
type Options struct {
	mode        Mode
	scaleFactor int
	table       outlier.Table
	src         noise.Source
	noiseOpts   []noise.Option

	spectral    []int
	temporal    []int
	spectralSet bool
	temporalSet bool

	logger *zap.Logger
}

func defaultOptions() Options {
	return Options{
		mode:        DefaultMode,
		scaleFactor: DefaultScaleFactor,
		table:       outlier.DefaultTable(),
		logger:      zap.NewNop(),
	}
}

func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.src == nil {
		o.src = noise.NewSource(DefaultSeed)
	}
	return o
}

// ---------- Constructors ----------

// WithMode selects the augmentation strategy.
func WithMode(m Mode) Option {
	return func(o *Options) { o.mode = m }
}

// WithScaleFactor sets the per-category expansion factor (validated by Run).
func WithScaleFactor(s int) Option {
	return func(o *Options) { o.scaleFactor = s }
}

// WithThresholds substitutes the outlier threshold table.
func WithThresholds(t outlier.Table) Option {
	return func(o *Options) { o.table = t }
}

// WithSource injects the random source used by InjectNoise.
func WithSource(src noise.Source) Option {
	if src == nil {
		panic(panicNilSource)
	}
	return func(o *Options) { o.src = src }
}

// WithSeed is shorthand for WithSource(noise.NewSource(seed)).
func WithSeed(seed int64) Option {
	return func(o *Options) { o.src = noise.NewSource(seed) }
}

// WithNoiseAmplitude overrides noise.DefaultAmplitude.
// Panics on a negative or non-finite amplitude.
func WithNoiseAmplitude(a float64) Option {
	n := noise.WithAmplitude(a)
	return func(o *Options) { o.noiseOpts = append(o.noiseOpts, n) }
}

// WithSpectralChannels selects the spectral channels to interpolate.
// An empty call selects every channel.
func WithSpectralChannels(idx ...int) Option {
	sel := selection(idx)
	return func(o *Options) { o.spectral, o.spectralSet = sel, true }
}

// WithTemporalChannels selects the temporal channels to interpolate.
// An empty call selects every channel.
func WithTemporalChannels(idx ...int) Option {
	sel := selection(idx)
	return func(o *Options) { o.temporal, o.temporalSet = sel, true }
}

// WithLogger routes engine logs to l.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}
	return func(o *Options) { o.logger = l }
}

// selection copies idx; an empty list means "all channels" (nil).
func selection(idx []int) []int {
	if len(idx) == 0 {
		return nil
	}
	return append([]int(nil), idx...)
}

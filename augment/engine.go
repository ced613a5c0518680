package augment

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/timbretag/interp"
	"github.com/katalvlaran/timbretag/noise"
	"github.com/katalvlaran/timbretag/outlier"
	"github.com/katalvlaran/timbretag/patch"
	"github.com/katalvlaran/timbretag/rank"
)

// Engine runs the correction → ranking → augmentation pipeline.
type Engine struct {
	opts     Options
	injector *noise.Injector
	interps  map[patch.Domain]*interp.Interpolator
}

// CategoryReport describes what one run did to one category.
type CategoryReport struct {
	Category    patch.Category
	Before      int // vectors before augmentation
	After       int // vectors after augmentation
	Corrections outlier.Report
	Comparison  Comparison
}

// Added returns the number of vectors appended to the category.
func (c CategoryReport) Added() int { return c.After - c.Before }

// Report summarises a run.
type Report struct {
	Mode        Mode
	ScaleFactor int
	Categories  []CategoryReport
}

// Added returns the number of vectors appended across all categories.
func (r Report) Added() int {
	n := 0
	for _, c := range r.Categories {
		n += c.Added()
	}
	return n
}

// Category returns the report entry for c, if the run visited it.
func (r Report) Category(c patch.Category) (CategoryReport, bool) {
	for _, cr := range r.Categories {
		if cr.Category == c {
			return cr, true
		}
	}
	return CategoryReport{}, false
}

// New builds an Engine. Configuration is validated by Run.
func New(opts ...Option) *Engine {
	o := gatherOptions(opts...)

	spectral := interp.NewSpectral()
	if o.spectralSet {
		spectral = interp.NewSpectral(channelsOption(o.spectral))
	}
	temporal := interp.NewTemporal()
	if o.temporalSet {
		temporal = interp.NewTemporal(channelsOption(o.temporal))
	}

	return &Engine{
		opts:     o,
		injector: noise.NewInjector(o.src, o.noiseOpts...),
		interps: map[patch.Domain]*interp.Interpolator{
			patch.Spectral: spectral,
			patch.Temporal: temporal,
		},
	}
}

func channelsOption(sel []int) interp.Option {
	if sel == nil {
		return interp.WithAllChannels()
	}
	return interp.WithChannels(sel...)
}

// Mode returns the configured strategy.
func (e *Engine) Mode() Mode { return e.opts.mode }

// ScaleFactor returns the configured expansion factor.
func (e *Engine) ScaleFactor() int { return e.opts.scaleFactor }

// Thresholds returns the threshold table in use.
func (e *Engine) Thresholds() outlier.Table { return e.opts.table }

// Run augments every category of store in place.
//
// Implementation:
//   - Stage 1: validate configuration (mode, scale factor, table, selection).
//   - Stage 2: validate every category against what the run will do to it.
//   - Stage 3: per category in fixed order: Correct → Rank → dispatch → Append.
//
// Nothing is written to store unless Stages 1 and 2 succeed.
func (e *Engine) Run(store *patch.Store) (Report, error) {
	if store == nil {
		return Report{}, fmt.Errorf("augment: %w: nil store", patch.ErrInvalidConfiguration)
	}
	if err := e.validateConfig(); err != nil {
		return Report{}, err
	}
	if err := e.validateStore(store); err != nil {
		return Report{}, err
	}

	log := e.opts.logger.With(
		zap.Stringer("mode", e.opts.mode),
		zap.Int("scale_factor", e.opts.scaleFactor),
	)
	rep := Report{Mode: e.opts.mode, ScaleFactor: e.opts.scaleFactor}

	for _, c := range patch.Categories() {
		cr, err := e.runCategory(store, c, log)
		if err != nil {
			return rep, err
		}
		rep.Categories = append(rep.Categories, cr)
	}

	log.Info("augmentation complete", zap.Int("added", rep.Added()))
	return rep, nil
}

func (e *Engine) runCategory(store *patch.Store, c patch.Category, log *zap.Logger) (CategoryReport, error) {
	originals := store.Vectors(c)
	cr := CategoryReport{Category: c, Before: len(originals)}

	corr, err := outlier.Correct(originals, e.opts.table.Rules(c))
	if err != nil {
		return cr, fmt.Errorf("augment: %s: %w", c, err)
	}
	cr.Corrections = corr
	for _, fix := range corr.Corrections {
		if fix.Replaced == 0 {
			continue
		}
		log.Debug("outliers replaced",
			zap.Stringer("category", c),
			zap.String("channel", patch.ChannelName(c.Domain(), fix.Rule.Channel)),
			zap.Stringer("direction", fix.Rule.Direction),
			zap.Float64("threshold", fix.Rule.Threshold),
			zap.Float64("mean", fix.Mean),
			zap.Int("replaced", fix.Replaced),
		)
	}

	var generated []patch.Vector
	switch e.opts.mode {
	case Interpolate:
		ranking, err := rank.Rank(originals)
		if err != nil {
			return cr, fmt.Errorf("augment: %s: %w", c, err)
		}
		generated, err = e.interps[c.Domain()].Interpolate(ranking, e.opts.scaleFactor)
		if err != nil {
			return cr, fmt.Errorf("augment: %s: %w", c, err)
		}
	case InjectNoise:
		generated, err = e.injector.Expand(originals, e.opts.scaleFactor)
		if err != nil {
			return cr, fmt.Errorf("augment: %s: %w", c, err)
		}
	}

	if err := store.Append(c, generated...); err != nil {
		return cr, fmt.Errorf("augment: %w", err)
	}
	cr.After = store.Len(c)
	cr.Comparison = Compare(originals, store.Vectors(c))

	log.Info("category augmented",
		zap.Stringer("category", c),
		zap.Int("before", cr.Before),
		zap.Int("after", cr.After),
		zap.Float64("mean_magnitude_original", cr.Comparison.Original),
		zap.Float64("mean_magnitude_augmented", cr.Comparison.Augmented),
		zap.Float64("mean_magnitude_generated", cr.Comparison.Generated),
	)
	return cr, nil
}

func (e *Engine) validateConfig() error {
	if !e.opts.mode.Valid() {
		return fmt.Errorf("augment: %w: unknown mode %d", patch.ErrInvalidConfiguration, int(e.opts.mode))
	}
	if e.opts.scaleFactor < interp.MinScaleFactor {
		return fmt.Errorf("augment: %w: scale factor %d, want ≥ %d",
			patch.ErrInvalidConfiguration, e.opts.scaleFactor, interp.MinScaleFactor)
	}
	if err := e.opts.table.Validate(); err != nil {
		return fmt.Errorf("augment: %w", err)
	}
	for _, d := range patch.Domains {
		for _, ch := range e.interps[d].Channels() {
			if ch < 0 || ch >= patch.Width(d) {
				return fmt.Errorf("augment: %w: %s channel %d outside schema of %d channels",
					patch.ErrInvalidConfiguration, d, ch, patch.Width(d))
			}
		}
	}
	return nil
}

// validateStore rejects, before any mutation, every condition that would
// make a later stage fail on some category.
func (e *Engine) validateStore(store *patch.Store) error {
	if err := store.Validate(); err != nil {
		return fmt.Errorf("augment: %w", err)
	}
	for _, c := range patch.Categories() {
		vs := store.Vectors(c)
		if e.opts.mode == Interpolate && len(vs) < 2 {
			return fmt.Errorf("augment: %s: %w: %d vectors, interpolation needs at least 2",
				c, patch.ErrInsufficientData, len(vs))
		}
		if len(vs) == 0 {
			continue
		}
		w := len(vs[0])
		for _, r := range e.opts.table.Rules(c) {
			if r.Channel >= w {
				return fmt.Errorf("augment: %s: %w: rule on channel %d, vectors have %d channels",
					c, patch.ErrChannelMismatch, r.Channel, w)
			}
		}
		if e.opts.mode != Interpolate {
			continue
		}
		if w < rank.MinChannels {
			return fmt.Errorf("augment: %s: %w: vectors have %d channels, ranking needs %d",
				c, patch.ErrInsufficientData, w, rank.MinChannels)
		}
		for _, ch := range e.interps[c.Domain()].Channels() {
			if ch >= w {
				return fmt.Errorf("augment: %s: %w: selected channel %d, vectors have %d channels",
					c, patch.ErrChannelMismatch, ch, w)
			}
		}
	}
	return nil
}

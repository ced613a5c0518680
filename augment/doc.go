// Package augment is the entry point of the core: it runs outlier
// correction, magnitude ranking and one augmentation strategy over every
// category of a patch.Store, appending the synthesised vectors in place.
//
// 🚀 Pipeline (per category, spectral categories first, fixed order):
//
//	Correct (outlier.Table rules) → Rank (rank.Rank) → dispatch on Mode
//	  Interpolate → interp.Interpolator.Interpolate(ranking, scaleFactor)
//	  InjectNoise → noise.Injector.Expand(category, scaleFactor)
//	→ patch.Store.Append → Compare (logged, read-only)
//
// ⚙️ Configuration (functional options, see options.go):
//
//	WithMode            Interpolate (default) or InjectNoise
//	WithScaleFactor     samples per anchor pair / noisy copies (default 3)
//	WithThresholds      substitute threshold table (default outlier.DefaultTable)
//	WithSeed/WithSource injectable random source for noise
//	WithSpectralChannels / WithTemporalChannels  interpolation selection
//	WithLogger          *zap.Logger (default zap.NewNop)
//
// ✅ Guarantees:
//   - A run that returns an error leaves the store untouched: configuration,
//     widths, rule channels and (for Interpolate) anchor counts are
//     validated for every category before the first mutation.
//   - Original vectors are never modified by augmentation; only outlier
//     correction rewrites values, and only failing ones.
//   - Noise copies are sized from each category's own vector count.
//
// ⚠️ Errors (match with errors.Is):
//
//	patch.ErrInvalidConfiguration  bad scale factor, mode or selection
//	patch.ErrInsufficientData      Interpolate on a category with < 2 vectors
//	patch.ErrChannelMismatch       mixed widths or a rule beyond the width
//
// Engines are not safe for concurrent use: the random source is shared.
package augment
